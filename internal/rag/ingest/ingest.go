package ingest

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/akolanti/GoPDFChat/internal/config"
	"github.com/akolanti/GoPDFChat/internal/domain/chatModel"
	"github.com/akolanti/GoPDFChat/internal/domain/commonModels"
	"github.com/akolanti/GoPDFChat/pkg/logger_i"
)

// Extractor turns an uploaded file into plain text.
type Extractor interface {
	Extract(ctx context.Context, fileName string, data []byte) (string, error)
}

type rawPage struct {
	Number  int    `json:"number"`
	Content string `json:"content"`
}

// pages are separated by a blank line in the extracted text
const pageSeparator = "\n\n"

type documentExtractor struct {
	pageTimeout time.Duration
	logger      *logger_i.Logger
}

// NewExtractor returns the default Extractor. It holds no per-document state and can be
// shared between concurrent requests.
func NewExtractor() Extractor {
	return NewExtractorWithTimeout(config.PageExtractionTimeout)
}

func NewExtractorWithTimeout(pageTimeout time.Duration) Extractor {
	return &documentExtractor{
		pageTimeout: pageTimeout,
		logger:      logger_i.NewLogger("Document Extraction"),
	}
}

func (e *documentExtractor) Extract(ctx context.Context, fileName string, data []byte) (string, error) {
	log := e.logger.WithTrace(ctx).With("filename", fileName, "bytes", len(data))

	if len(data) == 0 {
		return "", chatModel.NewExtractionError("empty payload", nil)
	}

	docType := commonModels.GetDocType(fileName)
	log.Debug("Extracting document", "type", docType)

	var pages []rawPage
	var err error
	switch docType {
	case commonModels.PDF:
		pages, err = e.extractPDF(ctx, data, log)
	case commonModels.DOCX:
		pages, err = extractDocxOdtRtf(data)
	case commonModels.TXT:
		pages, err = extractPlainText(data)
	default:
		err = errors.New("unsupported content type")
	}
	if err != nil {
		log.Error("Error extracting document", "error", err)
		var ce *chatModel.CoreError
		if errors.As(err, &ce) {
			return "", err
		}
		return "", chatModel.NewExtractionError("could not read document", err)
	}

	text := joinPages(pages)
	if strings.TrimSpace(text) == "" {
		log.Warn("Document has no extractable text", "pages", len(pages))
		return "", chatModel.NewExtractionError("no extractable text", nil)
	}

	log.Debug("Document extracted", "pages", len(pages), "chars", len(text))
	return text, nil
}

func joinPages(pages []rawPage) string {
	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		parts = append(parts, p.Content)
	}
	return strings.Join(parts, pageSeparator)
}
