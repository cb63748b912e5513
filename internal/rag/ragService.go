package rag

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/akolanti/GoPDFChat/internal/adapter/utils"
	"github.com/akolanti/GoPDFChat/internal/config"
	"github.com/akolanti/GoPDFChat/internal/domain/chatModel"
	"github.com/akolanti/GoPDFChat/internal/domain/commonModels"
	"github.com/akolanti/GoPDFChat/internal/metrics"
	"github.com/akolanti/GoPDFChat/internal/rag/ingest"
	"github.com/akolanti/GoPDFChat/internal/rag/llm"
	"github.com/akolanti/GoPDFChat/pkg/logger_i"
)

/*
ARCHITECTURE NOTE: OPAQUE INTERFACE PATTERN
---------------------------------------------------------

1. Service (Interface):
  - This is the PUBLIC contract the handlers, the cli and the mcp tools call.
  - It defines the behavior: extract a document, answer one turn.

2. service (Private Struct):
  - Holds the extractor and the LLM provider.
  - Lowercase so callers cannot reach the provider directly and skip the
    precondition checks, the timeout or the error mapping.

3. Dependency Injection (NewService):
  - The constructor links the private struct to the public interface so
    tests can swap the extractor and the provider for mocks.
*/

// Service is the document question answering core. It keeps no session state,
// the caller owns the Session and passes it in on every turn.
type Service interface {
	ExtractText(ctx context.Context, fileName string, data []byte) (commonModels.Document, error)
	Answer(ctx context.Context, documentText string, history []chatModel.Turn, question string) (string, error)
	Ask(ctx context.Context, session chatModel.Session, question string) (chatModel.Session, error)
}

type Options struct {
	GenerationTimeout time.Duration
	MaxDocumentChars  int
}

func DefaultOptions() Options {
	return Options{
		GenerationTimeout: config.GenerationTimeout,
		MaxDocumentChars:  config.MaxDocumentChars,
	}
}

type service struct {
	extractor   ingest.Extractor
	llmProvider llm.Provider
	opts        Options
	logger      *logger_i.Logger
}

func NewService(extractor ingest.Extractor, provider llm.Provider, opts Options) Service {
	if opts.GenerationTimeout <= 0 {
		opts.GenerationTimeout = config.GenerationTimeout
	}
	return &service{
		extractor:   extractor,
		llmProvider: provider,
		opts:        opts,
		logger:      logger_i.NewLogger("RAG Service"),
	}
}

func (s *service) ExtractText(ctx context.Context, fileName string, data []byte) (commonModels.Document, error) {
	log := s.logger.WithTrace(ctx).With("filename", fileName)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("pdf_extraction", time.Since(start)) }()

	text, err := s.extractor.Extract(ctx, fileName, data)
	if err != nil {
		log.Error("Extraction failed", "error", err)
		metrics.RecordOutcome("extraction", "error")
		return commonModels.Document{}, err
	}

	metrics.RecordOutcome("extraction", "success")
	log.Info("Document extracted", "chars", len(text))
	return commonModels.Document{
		Id:          utils.GetNewUUID(),
		Name:        fileName,
		Size:        int64(len(data)),
		ContentType: commonModels.GetDocType(fileName),
		Text:        text,
		ExtractedAt: time.Now().UTC(),
	}, nil
}

func (s *service) Answer(ctx context.Context, documentText string, history []chatModel.Turn, question string) (string, error) {
	log := s.logger.WithTrace(ctx)

	if strings.TrimSpace(documentText) == "" || strings.TrimSpace(question) == "" {
		return "", chatModel.NewClientRequestError(chatModel.MissingFieldsMessage, nil)
	}

	documentText = s.boundDocument(documentText, log)
	prompt := BuildPrompt(documentText, history, question)

	generationCtx, cancel := context.WithTimeout(ctx, s.opts.GenerationTimeout)
	defer cancel()

	start := time.Now()
	answer, err := s.llmProvider.Generate(generationCtx, prompt)
	metrics.CaptureExecutionMetrics("llm_generation", time.Since(start))

	if err != nil {
		reason := failureReason(err)
		metrics.RecordOutcome("generation", reason)
		log.Error("LLM generation failed", "provider", s.llmProvider.Name(), "reason", reason, "error", err)
		return "", chatModel.NewGenerationError("provider call failed", err)
	}
	if answer == "" {
		metrics.RecordOutcome("generation", reasonEmptyResponse)
		return "", chatModel.NewGenerationError("provider call failed", llm.ErrEmptyResponse)
	}

	metrics.RecordOutcome("generation", "success")
	log.Debug("Answer generated", "provider", s.llmProvider.Name(), "historyTurns", len(history))
	return answer, nil
}

// Ask answers question against the session and returns the session with the question and
// the answer appended. On error the session is returned unchanged.
func (s *service) Ask(ctx context.Context, session chatModel.Session, question string) (chatModel.Session, error) {
	if !session.IsReady() {
		return session, chatModel.NewClientRequestError(chatModel.MissingFieldsMessage, errors.New("session has no document text"))
	}

	answer, err := s.Answer(ctx, session.DocumentText(), session.Turns(), question)
	if err != nil {
		return session, err
	}
	return session.Append(chatModel.UserTurn(question), chatModel.AssistantTurn(answer)), nil
}

func (s *service) boundDocument(text string, log *logger_i.Logger) string {
	bounded, truncated := truncateRunes(text, s.opts.MaxDocumentChars)
	if truncated {
		log.Warn("Document text truncated before prompting", "limit", s.opts.MaxDocumentChars)
	}
	return bounded
}
