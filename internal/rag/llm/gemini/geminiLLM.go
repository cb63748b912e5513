package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/akolanti/GoPDFChat/internal/config"
	"github.com/akolanti/GoPDFChat/internal/rag/llm"
	"github.com/akolanti/GoPDFChat/pkg/logger_i"
	"google.golang.org/genai"
)

type Config struct {
	ModelName  string
	APIKey     llm.KeyFunc
	HTTPClient *http.Client
	// BaseURL overrides the Gemini endpoint, empty uses the SDK default
	BaseURL string
}

type llmClient struct {
	cfg    Config
	logger *logger_i.Logger

	mu        sync.Mutex
	client    *genai.Client
	clientKey string
}

// NewGeminiProvider creates the provider. The SDK client is built on the first call that
// finds a key and reused while the key stays the same.
func NewGeminiProvider(cfg Config) llm.Provider {
	if cfg.ModelName == "" {
		cfg.ModelName = config.GeminiModelName
	}
	if cfg.APIKey == nil {
		cfg.APIKey = func() string { return config.APIKey(config.LLMProviderGemini) }
	}
	return &llmClient{
		cfg:    cfg,
		logger: logger_i.NewLogger("llm_gemini"),
	}
}

func (c *llmClient) Name() string {
	return config.LLMProviderGemini + "/" + c.cfg.ModelName
}

func (c *llmClient) getClient(ctx context.Context) (*genai.Client, error) {
	key := c.cfg.APIKey()
	if key == "" {
		return nil, llm.ErrMissingCredential
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil && c.clientKey == key {
		return c.client, nil
	}

	clientConfig := &genai.ClientConfig{
		APIKey:     key,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.cfg.HTTPClient,
	}
	if c.cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: c.cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	c.client = client
	c.clientKey = key
	c.logger.Info("Gemini client created", "model", c.cfg.ModelName)
	return client, nil
}

func (c *llmClient) Generate(ctx context.Context, prompt string) (string, error) {
	log := c.logger.WithTrace(ctx)

	client, err := c.getClient(ctx)
	if err != nil {
		log.Error("Gemini client unavailable", "error", err)
		return "", err
	}

	result, err := client.Models.GenerateContent(ctx, c.cfg.ModelName, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	if result == nil || len(result.Candidates) == 0 {
		if result != nil && result.PromptFeedback != nil {
			return "", fmt.Errorf("%w: prompt blocked: %s", llm.ErrEmptyResponse, result.PromptFeedback.BlockReason)
		}
		return "", llm.ErrEmptyResponse
	}

	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: finish reason %s", llm.ErrEmptyResponse, result.Candidates[0].FinishReason)
	}
	log.Debug("Gemini answered", "chars", len(text))
	return text, nil
}
