package bootstrap

import (
	"context"
	"os"
	"path/filepath"

	"github.com/akolanti/GoPDFChat/internal/domain/chatModel"
	"github.com/akolanti/GoPDFChat/internal/domain/commonModels"
	"github.com/akolanti/GoPDFChat/internal/validation"
)

// ExtractFile applies the upload rules to a local file and extracts its text.
func (c *Container) ExtractFile(ctx context.Context, path string) (commonModels.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return commonModels.Document{}, chatModel.NewClientRequestError(chatModel.NoFileMessage, err)
	}
	if info.IsDir() {
		return commonModels.Document{}, chatModel.NewClientRequestError(chatModel.NoFileMessage, nil)
	}

	name := filepath.Base(path)
	if err := validation.ValidateFile(name, info.Size(), c.UploadRules); err != nil {
		return commonModels.Document{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return commonModels.Document{}, chatModel.NewExtractionError("could not read file", err)
	}
	return c.RAGService.ExtractText(ctx, name, data)
}
