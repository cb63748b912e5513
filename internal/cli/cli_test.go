package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/akolanti/GoPDFChat/internal/bootstrap"
	"github.com/akolanti/GoPDFChat/internal/config"
	"github.com/akolanti/GoPDFChat/internal/domain/chatModel"
	"github.com/akolanti/GoPDFChat/internal/rag"
	"github.com/akolanti/GoPDFChat/internal/rag/ingest"
	"github.com/akolanti/GoPDFChat/internal/testutil"
	"github.com/akolanti/GoPDFChat/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedProvider answers from a list and fails when the answer is empty
type scriptedProvider struct {
	mu      sync.Mutex
	answers []string
	prompts []string
}

func (p *scriptedProvider) Generate(ctx context.Context, prompt string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prompts = append(p.prompts, prompt)
	if len(p.answers) == 0 {
		return "", errors.New("no scripted answer")
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	if answer == "" {
		return "", errors.New("provider down")
	}
	return answer, nil
}

func (p *scriptedProvider) Name() string { return "scripted" }

func useProvider(t *testing.T, provider *scriptedProvider) {
	t.Helper()
	original := newContainer
	newContainer = func(settings config.Settings) *bootstrap.Container {
		return &bootstrap.Container{
			Settings:    settings,
			Provider:    provider,
			RAGService:  rag.NewService(ingest.NewExtractor(), provider, rag.DefaultOptions()),
			UploadRules: validation.DefaultUploadRules(),
		}
	}
	t.Cleanup(func() { newContainer = original })
}

func writePDF(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, os.WriteFile(path, testutil.BuildPDF(text), 0o600))
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestExtractCommand(t *testing.T) {
	useProvider(t, &scriptedProvider{})
	path := writePDF(t, "Invoice total: $42.")

	out, err := run(t, "", "extract", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Invoice total: $42.")

	_, err = run(t, "", "extract", filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)
	assert.Equal(t, chatModel.NoFileMessage, err.Error())
}

func TestAskCommand(t *testing.T) {
	provider := &scriptedProvider{answers: []string{"The total is $42."}}
	useProvider(t, provider)
	path := writePDF(t, "Invoice total: $42.")

	out, err := run(t, "", "ask", path, "-q", "What is the total?")
	require.NoError(t, err)
	assert.Equal(t, "The total is $42.\n", out)
	require.Len(t, provider.prompts, 1)
	assert.Contains(t, provider.prompts[0], "User Question: What is the total?")

	_, err = run(t, "", "ask", path)
	assert.Error(t, err, "the question flag is required")
}

func TestChatCommand_KeepsHistoryAcrossTurns(t *testing.T) {
	provider := &scriptedProvider{answers: []string{"first answer", "", "second answer"}}
	useProvider(t, provider)
	path := writePDF(t, "Invoice total: $42.")

	out, err := run(t, "first question\n\nfailing question\nsecond question\nexit\n", "chat", path)
	require.NoError(t, err)

	assert.Contains(t, out, "first answer")
	assert.Contains(t, out, chatModel.GenerationFailedMessage)
	assert.Contains(t, out, "second answer")

	require.Len(t, provider.prompts, 3)
	last := provider.prompts[2]
	assert.Contains(t, last, "user: first question\nassistant: first answer")
	assert.NotContains(t, last, "failing question", "a failed turn must not enter the history")
}

func TestInvalidConfig(t *testing.T) {
	useProvider(t, &scriptedProvider{})
	t.Setenv("LLM_PROVIDER", "unknown")

	_, err := run(t, "", "extract", "doc.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown llm provider")
}
