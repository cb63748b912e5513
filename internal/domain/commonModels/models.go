package commonModels

import (
	"path/filepath"
	"strings"
	"time"
)

// Document is an uploaded file and the text derived from it. Text is set once by the
// extractor and not changed afterwards.
type Document struct {
	Id          string    `json:"id"`
	Name        string    `json:"doc_name"`
	Size        int64     `json:"size"`
	ContentType DocType   `json:"contentType"`
	Text        string    `json:"text"`
	ExtractedAt time.Time `json:"extracted_at"`
}

type DocType string

var PDF DocType = "PDF"
var DOCX DocType = "DOCX"
var TXT DocType = "TXT"
var ERR DocType = "ERROR"

// GetDocType maps a file name to the extractor that can read it. A name without
// extension is treated as a pdf, the upload endpoints only accept pdf by default.
func GetDocType(fileName string) DocType {
	if fileName == "" {
		return PDF
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".pdf", "":
		return PDF
	case ".docx", ".odt", ".rtf":
		return DOCX
	case ".txt":
		return TXT
	default:
		return ERR
	}
}
