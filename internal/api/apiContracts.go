package api

import "github.com/akolanti/GoPDFChat/internal/domain/chatModel"

// responses---------------------

type ExtractTextResponse struct {
	Text string `json:"text" example:"Invoice total: $42."`
}

type ChatResponse struct {
	Response string `json:"response" example:"The invoice total is $42."`
}

type ErrorResponse struct {
	Error string `json:"error" example:"Missing required fields"`
}

type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Provider string `json:"provider" example:"gemini/gemini-2.5-pro"`
}

// requests---------------------

type ChatRequest struct {
	PdfText     string           `json:"pdfText" validate:"required"`
	Message     string           `json:"message" validate:"required"`
	ChatHistory []chatModel.Turn `json:"chatHistory"`
}
