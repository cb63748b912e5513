package mcptools

import (
	"context"
	"errors"
	"strings"

	"github.com/akolanti/GoPDFChat/internal/bootstrap"
	"github.com/akolanti/GoPDFChat/internal/domain/chatModel"
	"github.com/akolanti/GoPDFChat/pkg/logger_i"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	ExtractToolName = "extract_pdf_text"
	AskToolName     = "ask_document"
)

type ExtractInput struct {
	Path string `json:"path" jsonschema:"path of the PDF file to read"`
}

type ExtractOutput struct {
	Text  string `json:"text" jsonschema:"plain text of the document, pages separated by a blank line"`
	Chars int    `json:"chars" jsonschema:"number of characters in text"`
}

type AskInput struct {
	Path         string           `json:"path,omitempty" jsonschema:"path of the PDF file, used when documentText is empty"`
	DocumentText string           `json:"documentText,omitempty" jsonschema:"text returned by extract_pdf_text"`
	Question     string           `json:"question" jsonschema:"the question about the document"`
	History      []chatModel.Turn `json:"history,omitempty" jsonschema:"previous turns, oldest first"`
}

type AskOutput struct {
	Answer  string           `json:"answer" jsonschema:"the model answer"`
	History []chatModel.Turn `json:"history" jsonschema:"the history including this question and answer, pass it to the next call"`
}

type Tools struct {
	container *bootstrap.Container
	logger    *logger_i.Logger
}

func NewTools(container *bootstrap.Container) *Tools {
	return &Tools{
		container: container,
		logger:    logger_i.NewLogger("mcp"),
	}
}

func (t *Tools) Extract(ctx context.Context, _ *mcp.CallToolRequest, in ExtractInput) (*mcp.CallToolResult, ExtractOutput, error) {
	doc, err := t.container.ExtractFile(ctx, in.Path)
	if err != nil {
		t.logger.Error("Extract tool failed", "path", in.Path, "error", err)
		return nil, ExtractOutput{}, errors.New(chatModel.UserMessage(err))
	}
	return nil, ExtractOutput{Text: doc.Text, Chars: len(doc.Text)}, nil
}

func (t *Tools) Ask(ctx context.Context, _ *mcp.CallToolRequest, in AskInput) (*mcp.CallToolResult, AskOutput, error) {
	text := in.DocumentText
	if strings.TrimSpace(text) == "" && in.Path != "" {
		doc, err := t.container.ExtractFile(ctx, in.Path)
		if err != nil {
			t.logger.Error("Ask tool could not read the document", "path", in.Path, "error", err)
			return nil, AskOutput{}, errors.New(chatModel.UserMessage(err))
		}
		text = doc.Text
	}

	session, err := chatModel.NewSession(text)
	if err == nil {
		session, err = session.WithHistory(in.History)
	}
	if err == nil {
		session, err = t.container.RAGService.Ask(ctx, session, in.Question)
	}
	if err != nil {
		t.logger.Error("Ask tool failed", "error", err)
		return nil, AskOutput{}, errors.New(chatModel.UserMessage(err))
	}

	answer, _ := session.LastAnswer()
	return nil, AskOutput{Answer: answer, History: session.Turns()}, nil
}

// NewServer exposes the tools on an mcp server. Run it with a transport, e.g. stdio.
func NewServer(tools *Tools, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "pdfchat", Version: version}, nil)
	mcp.AddTool(server, &mcp.Tool{
		Name:        ExtractToolName,
		Description: "Extract the plain text of a PDF file",
	}, tools.Extract)
	mcp.AddTool(server, &mcp.Tool{
		Name:        AskToolName,
		Description: "Answer a question about a PDF using only its content",
	}, tools.Ask)
	return server
}
