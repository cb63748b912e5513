package bootstrap

import (
	"context"

	"github.com/akolanti/GoPDFChat/internal/config"
	"github.com/akolanti/GoPDFChat/internal/customHttpClient"
	"github.com/akolanti/GoPDFChat/internal/data/redisStore"
	"github.com/akolanti/GoPDFChat/internal/middleware"
	"github.com/akolanti/GoPDFChat/internal/rag"
	"github.com/akolanti/GoPDFChat/internal/rag/ingest"
	"github.com/akolanti/GoPDFChat/internal/rag/llm"
	"github.com/akolanti/GoPDFChat/internal/rag/llm/gemini"
	"github.com/akolanti/GoPDFChat/internal/rag/llm/openaiLLM"
	"github.com/akolanti/GoPDFChat/internal/validation"
	"github.com/akolanti/GoPDFChat/pkg/logger_i"
)

// Container holds the core services shared by the http server, the cli and the mcp tools.
type Container struct {
	Settings    config.Settings
	Provider    llm.Provider
	RAGService  rag.Service
	UploadRules validation.UploadRules
}

func NewContainer(settings config.Settings) *Container {
	provider := NewProvider(settings)
	return &Container{
		Settings: settings,
		Provider: provider,
		RAGService: rag.NewService(ingest.NewExtractor(), provider, rag.Options{
			GenerationTimeout: settings.GenerationTimeout,
			MaxDocumentChars:  settings.MaxDocumentChars,
		}),
		UploadRules: validation.UploadRules{
			MaxSizeMB:      settings.MaxUploadSizeMB,
			AllowedFormats: settings.AllowedFormats,
		},
	}
}

// NewProvider picks the generation backend. A missing API key is not an error here,
// every call reports it instead.
func NewProvider(settings config.Settings) llm.Provider {
	logger := logger_i.NewLogger("bootstrap")

	var provider llm.Provider
	switch settings.LLMProvider {
	case config.LLMProviderOpenAI:
		provider = openaiLLM.NewOpenAIProvider(openaiLLM.Config{
			ModelName:  settings.OpenAIModel,
			HTTPClient: customHttpClient.GetPooledClient(),
		})
	default:
		provider = gemini.NewGeminiProvider(gemini.Config{
			ModelName:  settings.GeminiModel,
			HTTPClient: customHttpClient.GetPooledClient(),
		})
	}

	if config.APIKey(settings.LLMProvider) == "" {
		logger.Warn("LLM API key is not set, chat requests will fail until it is", "provider", provider.Name())
	}
	logger.Info("LLM provider configured", "provider", provider.Name())
	return provider
}

// NewRateLimiter returns nil when rate limiting is off, the redis limiter when redis is
// reachable and the in-memory limiter otherwise. Redis connections close with ctx.
func NewRateLimiter(ctx context.Context, settings config.Settings) middleware.Limiter {
	if !settings.RateLimitEnabled {
		return nil
	}
	logger := logger_i.NewLogger("bootstrap")

	if settings.RedisAddr != "" {
		store := redisStore.GetRedisStore(ctx, redisStore.Options{
			Addr:     settings.RedisAddr,
			Password: settings.RedisPassword,
			DB:       config.RedisRateLimitStore,
		})
		if store != nil {
			logger.Info("Using redis rate limiter", "addr", settings.RedisAddr)
			return middleware.NewRedisRateLimiter(store, config.RedisRateLimitPerWindow, config.RedisRateLimitWindow)
		}
		logger.Warn("Redis unavailable, falling back to in-memory rate limiter")
	}
	return middleware.NewDefaultIPRateLimiter()
}
