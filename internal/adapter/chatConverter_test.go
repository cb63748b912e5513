package adapter

import (
	"errors"
	"net/http"
	"testing"

	"github.com/akolanti/GoPDFChat/internal/api"
	"github.com/akolanti/GoPDFChat/internal/domain/chatModel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToSession(t *testing.T) {
	session, err := ToSession(api.ChatRequest{
		PdfText: "doc",
		Message: "q",
		ChatHistory: []chatModel.Turn{
			chatModel.UserTurn("q0"),
			chatModel.AssistantTurn("a0"),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "doc", session.DocumentText())
	assert.Equal(t, 2, session.Len())

	tests := []struct {
		name string
		req  api.ChatRequest
		want string
	}{
		{"missing text", api.ChatRequest{Message: "q"}, chatModel.MissingFieldsMessage},
		{"missing message", api.ChatRequest{PdfText: "doc"}, chatModel.MissingFieldsMessage},
		{"blank message", api.ChatRequest{PdfText: "doc", Message: "  \n"}, chatModel.MissingFieldsMessage},
		{"bad role", api.ChatRequest{PdfText: "doc", Message: "q", ChatHistory: []chatModel.Turn{{Role: "bot", Content: "x"}}}, chatModel.InvalidHistoryMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToSession(tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.want, chatModel.UserMessage(err))
		})
	}
}

func TestToErrorResponse(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"validation", chatModel.NewValidationError("File size exceeds the maximum limit of 5 MB."), http.StatusBadRequest, "File size exceeds the maximum limit of 5 MB."},
		{"client", chatModel.NewClientRequestError(chatModel.MissingFieldsMessage, nil), http.StatusBadRequest, chatModel.MissingFieldsMessage},
		{"extraction", chatModel.NewExtractionError("bad xref", errors.New("eof")), http.StatusInternalServerError, chatModel.ExtractionFailedMessage},
		{"generation", chatModel.NewGenerationError("provider call failed", errors.New("quota")), http.StatusInternalServerError, chatModel.GenerationFailedMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := ToErrorResponse(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantBody, body.Error)
		})
	}
}
