package openaiLLM

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/akolanti/GoPDFChat/internal/config"
	"github.com/akolanti/GoPDFChat/internal/rag/llm"
	"github.com/akolanti/GoPDFChat/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type Config struct {
	ModelName  string
	APIKey     llm.KeyFunc
	HTTPClient *http.Client
	BaseURL    string
}

type llmClient struct {
	cfg    Config
	logger *logger_i.Logger

	mu        sync.Mutex
	client    *openai.Client
	clientKey string
}

func NewOpenAIProvider(cfg Config) llm.Provider {
	if cfg.ModelName == "" {
		cfg.ModelName = config.OpenAIModelName
	}
	if cfg.APIKey == nil {
		cfg.APIKey = func() string { return config.APIKey(config.LLMProviderOpenAI) }
	}
	return &llmClient{
		cfg:    cfg,
		logger: logger_i.NewLogger("llm_openai"),
	}
}

func (c *llmClient) Name() string {
	return config.LLMProviderOpenAI + "/" + c.cfg.ModelName
}

func (c *llmClient) getClient() (*openai.Client, error) {
	key := c.cfg.APIKey()
	if key == "" {
		return nil, llm.ErrMissingCredential
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil && c.clientKey == key {
		return c.client, nil
	}

	opts := []option.RequestOption{
		option.WithAPIKey(key),
		// a single attempt, the caller decides whether the user retries
		option.WithMaxRetries(0),
	}
	if c.cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(c.cfg.HTTPClient))
	}
	if c.cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(c.cfg.BaseURL))
	}
	client := openai.NewClient(opts...)
	c.client = &client
	c.clientKey = key
	c.logger.Info("OpenAI client created", "model", c.cfg.ModelName)
	return c.client, nil
}

func (c *llmClient) Generate(ctx context.Context, prompt string) (string, error) {
	log := c.logger.WithTrace(ctx)

	client, err := c.getClient()
	if err != nil {
		log.Error("OpenAI client unavailable", "error", err)
		return "", err
	}

	completion, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.cfg.ModelName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", llm.ErrEmptyResponse
	}

	text := completion.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: finish reason %s", llm.ErrEmptyResponse, completion.Choices[0].FinishReason)
	}
	log.Debug("OpenAI answered", "chars", len(text))
	return text, nil
}
