package mcptools

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/akolanti/GoPDFChat/internal/bootstrap"
	"github.com/akolanti/GoPDFChat/internal/domain/chatModel"
	"github.com/akolanti/GoPDFChat/internal/rag"
	"github.com/akolanti/GoPDFChat/internal/rag/ingest"
	"github.com/akolanti/GoPDFChat/internal/testutil"
	"github.com/akolanti/GoPDFChat/internal/validation"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	answer string
	err    error
}

func (s stubProvider) Generate(ctx context.Context, prompt string) (string, error) {
	return s.answer, s.err
}

func (s stubProvider) Name() string { return "stub" }

func newTools(t *testing.T, provider stubProvider) (*Tools, string) {
	t.Helper()
	container := &bootstrap.Container{
		Provider:    provider,
		RAGService:  rag.NewService(ingest.NewExtractor(), provider, rag.DefaultOptions()),
		UploadRules: validation.DefaultUploadRules(),
	}
	path := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, os.WriteFile(path, testutil.BuildPDF("Invoice total: $42."), 0o600))
	return NewTools(container), path
}

func TestExtractTool(t *testing.T) {
	tools, path := newTools(t, stubProvider{})

	_, out, err := tools.Extract(context.Background(), nil, ExtractInput{Path: path})
	require.NoError(t, err)
	assert.Contains(t, out.Text, "Invoice total: $42.")
	assert.Equal(t, len(out.Text), out.Chars)

	_, _, err = tools.Extract(context.Background(), nil, ExtractInput{Path: path + ".missing"})
	require.Error(t, err)
	assert.Equal(t, chatModel.NoFileMessage, err.Error())
}

func TestAskTool(t *testing.T) {
	tools, path := newTools(t, stubProvider{answer: "The total is $42."})

	_, out, err := tools.Ask(context.Background(), nil, AskInput{Path: path, Question: "What is the total?"})
	require.NoError(t, err)
	assert.Equal(t, "The total is $42.", out.Answer)
	assert.Equal(t, []chatModel.Turn{
		chatModel.UserTurn("What is the total?"),
		chatModel.AssistantTurn("The total is $42."),
	}, out.History)

	_, next, err := tools.Ask(context.Background(), nil, AskInput{
		DocumentText: "Invoice total: $42.",
		Question:     "And the currency?",
		History:      out.History,
	})
	require.NoError(t, err)
	assert.Len(t, next.History, 4)
}

func TestAskTool_Failures(t *testing.T) {
	tools, _ := newTools(t, stubProvider{err: errors.New("quota exceeded")})

	_, _, err := tools.Ask(context.Background(), nil, AskInput{DocumentText: "doc", Question: "q"})
	require.Error(t, err)
	assert.Equal(t, chatModel.GenerationFailedMessage, err.Error())

	_, _, err = tools.Ask(context.Background(), nil, AskInput{Question: "q"})
	require.Error(t, err)
	assert.Equal(t, chatModel.MissingFieldsMessage, err.Error())
}

func TestServer_InMemory(t *testing.T) {
	tools, path := newTools(t, stubProvider{answer: "stubbed"})
	ctx := context.Background()

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := NewServer(tools, "test").Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer serverSession.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "test"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer session.Close()

	listed, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	names := make([]string, 0, len(listed.Tools))
	for _, tool := range listed.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{ExtractToolName, AskToolName}, names)

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      AskToolName,
		Arguments: map[string]any{"path": path, "question": "What is the total?"},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "stubbed")
}
