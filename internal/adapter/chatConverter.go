package adapter

import (
	"errors"
	"net/http"

	"github.com/akolanti/GoPDFChat/internal/api"
	"github.com/akolanti/GoPDFChat/internal/domain/chatModel"
	"github.com/akolanti/GoPDFChat/internal/domain/commonModels"
	"github.com/akolanti/GoPDFChat/internal/validation"
)

// ToSession turns a chat request into a Session. The request must carry document text
// and a non blank message.
func ToSession(req api.ChatRequest) (chatModel.Session, error) {
	if err := validation.ValidateQuestion(req.Message); err != nil {
		return chatModel.Session{}, err
	}
	session, err := chatModel.NewSession(req.PdfText)
	if err != nil {
		return chatModel.Session{}, err
	}
	return session.WithHistory(req.ChatHistory)
}

func ToExtractTextResponse(doc commonModels.Document) api.ExtractTextResponse {
	return api.ExtractTextResponse{Text: doc.Text}
}

func ToChatResponse(answer string) api.ChatResponse {
	return api.ChatResponse{Response: answer}
}

// ToErrorResponse maps err to its status code and the message the client may see.
func ToErrorResponse(err error) (int, api.ErrorResponse) {
	body := api.ErrorResponse{Error: chatModel.UserMessage(err)}
	switch {
	case errors.Is(err, chatModel.ErrValidation), errors.Is(err, chatModel.ErrClientRequest):
		return http.StatusBadRequest, body
	default:
		return http.StatusInternalServerError, body
	}
}

func BadRequest(message string) api.ErrorResponse {
	return api.ErrorResponse{Error: message}
}
