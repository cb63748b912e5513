package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/akolanti/GoPDFChat/pkg/logger_i"
	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"
)

func (e *documentExtractor) extractPDF(ctx context.Context, data []byte, log *logger_i.Logger) (pages []rawPage, err error) {
	// the parser panics on some malformed streams
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	numPages := reader.NumPage()
	log.Debug("extractPDF", "number of pages", numPages)
	if numPages == 0 {
		return nil, errors.New("pdf has no pages")
	}

	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			log.Debug("extractPDF", "page value is null", i)
			continue
		}

		content, err := e.protectExtract(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}

		pages = append(pages, rawPage{
			Number:  i,
			Content: content,
		})
	}
	return pages, nil
}

// protectExtract bounds the time spent on one page, a broken content stream can make the
// parser spin.
func (e *documentExtractor) protectExtract(ctx context.Context, page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				resChan <- result{"", fmt.Errorf("page parser panic: %v", r)}
			}
		}()
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()

	timer := time.NewTimer(e.pageTimeout)
	defer timer.Stop()

	select {
	case r := <-resChan:
		return r.content, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	case <-timer.C:
		return "", errors.New("page extraction timeout")
	}
}

// .docx, .odt and .rtf have no reliable page boundaries, the text lands on one page
func extractDocxOdtRtf(data []byte) ([]rawPage, error) {
	text, err := cat.FromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to extract document: %w", err)
	}
	return []rawPage{{Number: 1, Content: text}}, nil
}

func extractPlainText(data []byte) ([]rawPage, error) {
	if !utf8.Valid(data) {
		return nil, errors.New("text file is not valid utf-8")
	}
	return []rawPage{{Number: 1, Content: string(data)}}, nil
}
