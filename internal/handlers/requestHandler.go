package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/akolanti/GoPDFChat/internal/adapter"
	"github.com/akolanti/GoPDFChat/internal/api"
	"github.com/akolanti/GoPDFChat/internal/config"
	"github.com/akolanti/GoPDFChat/internal/domain/chatModel"
	"github.com/akolanti/GoPDFChat/internal/domain/commonModels"
	"github.com/akolanti/GoPDFChat/internal/rag"
	"github.com/akolanti/GoPDFChat/internal/validation"
	"github.com/akolanti/GoPDFChat/internal/worker"
	"github.com/akolanti/GoPDFChat/pkg/logger_i"
)

// multipart boundaries and headers on top of the file itself
const multipartOverhead = 1 << 20

// maximum size of a chat request body, it carries the whole document text
const maxChatBodyBytes = 16 << 20

type ChatHandler struct {
	service      rag.Service
	runner       worker.Runner
	rules        validation.UploadRules
	providerName string
	logger       *logger_i.Logger
}

func NewChatHandler(service rag.Service, runner worker.Runner, rules validation.UploadRules, providerName string) *ChatHandler {
	return &ChatHandler{
		service:      service,
		runner:       runner,
		rules:        rules,
		providerName: providerName,
		logger:       logger_i.NewLogger("ChatHandler"),
	}
}

// Health godoc
// @Summary      Health check
// @Tags         Health
// @Produce      json
// @Success      200  {object}  api.HealthResponse
// @Router       /health [get]
func (h *ChatHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, api.HealthResponse{Status: "ok", Provider: h.providerName})
}

// ExtractText godoc
// @Summary      Extract the text of a PDF
// @Description  Receives a PDF via multipart/form-data and returns its plain text, pages in reading order.
// @Tags         Documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        pdf  formData  file  true  "The PDF to read"
// @Success      200  {object}  api.ExtractTextResponse  "Extracted text"
// @Failure      400  {object}  api.ErrorResponse        "No file, file too large or wrong format"
// @Failure      500  {object}  api.ErrorResponse        "The file could not be parsed"
// @Router       /api/extract-text [post]
func (h *ChatHandler) ExtractText(w http.ResponseWriter, r *http.Request) {
	log := h.logger.WithTrace(r.Context())

	sizeLimit := h.rules.MaxSizeBytes() + multipartOverhead
	if r.ContentLength > sizeLimit {
		writeCoreError(w, validation.ValidateFile("", r.ContentLength, h.rules))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, sizeLimit)

	if err := r.ParseMultipartForm(config.MultipartMemoryLimit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeCoreError(w, validation.ValidateFile("", sizeLimit+1, h.rules))
			return
		}
		log.Warn("Could not parse upload", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, chatModel.NoFileMessage)
		return
	}
	defer r.MultipartForm.RemoveAll()

	fileReader, fileMetadata, err := r.FormFile(config.UploadFormField)
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, chatModel.NoFileMessage)
		return
	}
	defer fileReader.Close()

	if err := validation.ValidateFile(fileMetadata.Filename, fileMetadata.Size, h.rules); err != nil {
		log.Warn("Upload rejected", "filename", fileMetadata.Filename, "size", fileMetadata.Size, "error", err)
		writeCoreError(w, err)
		return
	}

	data, err := io.ReadAll(fileReader)
	if err != nil {
		log.Error("Could not read upload", "error", err)
		writeCoreError(w, chatModel.NewExtractionError("could not read upload", err))
		return
	}

	var doc commonModels.Document
	var extractErr error
	err = h.runner.Submit(r.Context(), func(ctx context.Context) {
		doc, extractErr = h.service.ExtractText(ctx, fileMetadata.Filename, data)
	})
	if err != nil {
		log.Error("Extraction task did not complete", "error", err)
		writeCoreError(w, chatModel.NewExtractionError("task failed", err))
		return
	}
	if extractErr != nil {
		writeCoreError(w, extractErr)
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToExtractTextResponse(doc))
}

// Chat godoc
// @Summary      Answer a question about a document
// @Description  Builds a prompt from the document text, the previous turns and the new message and returns the model answer.
// @Tags         Messaging
// @Accept       json
// @Produce      json
// @Param        request  body      api.ChatRequest    true  "Document text, message and chat history"
// @Success      200      {object}  api.ChatResponse   "The answer"
// @Failure      400      {object}  api.ErrorResponse  "Invalid body or missing fields"
// @Failure      500      {object}  api.ErrorResponse  "Generation failed"
// @Router       /api/chat [post]
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	log := h.logger.WithTrace(r.Context())

	var requestData api.ChatRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxChatBodyBytes))
	if err := decoder.Decode(&requestData); err != nil {
		log.Warn("Bad chat request", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, chatModel.InvalidBodyMessage)
		return
	}

	session, err := adapter.ToSession(requestData)
	if err != nil {
		log.Warn("Chat request rejected", "error", err)
		writeCoreError(w, err)
		return
	}

	var answer string
	var answerErr error
	err = h.runner.Submit(r.Context(), func(ctx context.Context) {
		answer, answerErr = h.service.Answer(ctx, session.DocumentText(), session.Turns(), requestData.Message)
	})
	if err != nil {
		log.Error("Chat task did not complete", "error", err)
		writeCoreError(w, chatModel.NewGenerationError("task failed", err))
		return
	}
	if answerErr != nil {
		writeCoreError(w, answerErr)
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToChatResponse(answer))
}
