package validation

import (
	"fmt"
	"strings"

	"github.com/akolanti/GoPDFChat/internal/config"
	"github.com/akolanti/GoPDFChat/internal/domain/chatModel"
)

// UploadRules bound what may be handed to the extractor.
type UploadRules struct {
	MaxSizeMB      int64
	AllowedFormats []string
}

func DefaultUploadRules() UploadRules {
	return UploadRules{
		MaxSizeMB:      config.MaxUploadSizeMB,
		AllowedFormats: []string{config.AllowedUploadFormats},
	}
}

func (r UploadRules) MaxSizeBytes() int64 {
	return r.MaxSizeMB * 1024 * 1024
}

// ValidateFile checks size first, then the extension.
func ValidateFile(name string, size int64, rules UploadRules) error {
	if size > rules.MaxSizeBytes() {
		return chatModel.NewValidationError(
			fmt.Sprintf("File size exceeds the maximum limit of %d MB.", rules.MaxSizeMB))
	}

	ext := FileExtension(name)
	for _, allowed := range rules.AllowedFormats {
		if ext == strings.ToLower(allowed) {
			return nil
		}
	}
	return chatModel.NewValidationError(
		fmt.Sprintf("Invalid file format. Only %s are allowed.", strings.Join(rules.AllowedFormats, ", ")))
}

// FileExtension is the lower-cased text after the last dot, or the whole name without one.
func FileExtension(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return strings.ToLower(name[i+1:])
	}
	return strings.ToLower(name)
}

// ValidateQuestion rejects questions with nothing to answer.
func ValidateQuestion(question string) error {
	if strings.TrimSpace(question) == "" {
		return chatModel.NewClientRequestError(chatModel.MissingFieldsMessage, nil)
	}
	return nil
}
