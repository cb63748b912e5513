package chatModel

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure surfaced by the core wraps exactly one of them.
var (
	ErrValidation    = errors.New("validation error")
	ErrExtraction    = errors.New("extraction error")
	ErrGeneration    = errors.New("generation error")
	ErrClientRequest = errors.New("client request error")
)

// messages that reach the user for kinds whose detail stays in the logs
const (
	ExtractionFailedMessage = "Failed to extract text from PDF"
	GenerationFailedMessage = "Failed to process chat request"
	MissingFieldsMessage    = "Missing required fields"
	NoFileMessage           = "No PDF file uploaded"
	InvalidBodyMessage      = "Invalid request body"
	InvalidHistoryMessage   = "Invalid chat history"
)

type CoreError struct {
	Kind    error
	Message string
	Err     error
	index   int
}

func (e *CoreError) Error() string {
	msg := e.Kind.Error() + ": " + e.Message
	if e.index >= 0 {
		msg = fmt.Sprintf("%s (item %d)", msg, e.index)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CoreError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func (e *CoreError) withIndex(i int) *CoreError {
	e.index = i
	return e
}

func newError(kind error, message string, err error) *CoreError {
	return &CoreError{Kind: kind, Message: message, Err: err, index: -1}
}

func NewValidationError(message string) *CoreError {
	return newError(ErrValidation, message, nil)
}

func NewExtractionError(message string, err error) *CoreError {
	return newError(ErrExtraction, message, err)
}

func NewGenerationError(message string, err error) *CoreError {
	return newError(ErrGeneration, message, err)
}

func NewClientRequestError(message string, err error) *CoreError {
	return newError(ErrClientRequest, message, err)
}

// UserMessage is the text shown to the user for err. Validation and client request
// messages are specific, extraction and generation failures are reported generically.
func UserMessage(err error) string {
	var ce *CoreError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation), errors.Is(err, ErrClientRequest):
		if errors.As(err, &ce) {
			return ce.Message
		}
		return MissingFieldsMessage
	case errors.Is(err, ErrExtraction):
		return ExtractionFailedMessage
	default:
		return GenerationFailedMessage
	}
}
