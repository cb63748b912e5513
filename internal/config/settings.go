package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings holds the runtime configuration. Secrets are not part of it, providers read
// their API key from the environment on every call.
type Settings struct {
	ListenAddr        string
	IsProd            bool
	LogLevel          string
	LLMProvider       string
	GeminiModel       string
	OpenAIModel       string
	GenerationTimeout time.Duration
	MaxDocumentChars  int
	MaxUploadSizeMB   int64
	AllowedFormats    []string
	RateLimitEnabled  bool
	RedisAddr         string
	RedisPassword     string
	MaxWorkers        int64
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen_addr", ServerListenAddr)
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "debug")
	v.SetDefault("llm_provider", DefaultLLMProvider)
	v.SetDefault("gemini_model", GeminiModelName)
	v.SetDefault("openai_model", OpenAIModelName)
	v.SetDefault("generation_timeout", GenerationTimeout)
	v.SetDefault("max_document_chars", MaxDocumentChars)
	v.SetDefault("max_upload_size_mb", MaxUploadSizeMB)
	v.SetDefault("allowed_formats", AllowedUploadFormats)
	v.SetDefault("rate_limit_enabled", false)
	v.SetDefault("redis_addr", RedisAddr)
	v.SetDefault("redis_password", "")
	v.SetDefault("max_workers", MaxWorkerCount)
}

// Load reads defaults, then the optional yaml file, then the environment.
func Load(configFile string) (Settings, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	s := Settings{
		ListenAddr:        v.GetString("listen_addr"),
		IsProd:            strings.EqualFold(v.GetString("app_env"), "production"),
		LogLevel:          v.GetString("log_level"),
		LLMProvider:       strings.ToLower(v.GetString("llm_provider")),
		GeminiModel:       v.GetString("gemini_model"),
		OpenAIModel:       v.GetString("openai_model"),
		GenerationTimeout: v.GetDuration("generation_timeout"),
		MaxDocumentChars:  v.GetInt("max_document_chars"),
		MaxUploadSizeMB:   v.GetInt64("max_upload_size_mb"),
		AllowedFormats:    splitFormats(v.GetString("allowed_formats")),
		RateLimitEnabled:  v.GetBool("rate_limit_enabled"),
		RedisAddr:         v.GetString("redis_addr"),
		RedisPassword:     v.GetString("redis_password"),
		MaxWorkers:        v.GetInt64("max_workers"),
	}

	if s.LLMProvider != LLMProviderGemini && s.LLMProvider != LLMProviderOpenAI {
		return Settings{}, fmt.Errorf("unknown llm provider %q", s.LLMProvider)
	}
	if s.MaxUploadSizeMB <= 0 {
		return Settings{}, fmt.Errorf("max_upload_size_mb must be positive, got %d", s.MaxUploadSizeMB)
	}
	if len(s.AllowedFormats) == 0 {
		return Settings{}, fmt.Errorf("allowed_formats must list at least one extension")
	}
	if s.GenerationTimeout <= 0 {
		s.GenerationTimeout = GenerationTimeout
	}
	if s.MaxWorkers < MinWorkerCount {
		s.MaxWorkers = MinWorkerCount
	}
	return s, nil
}

// viper splits string slices on whitespace, formats come comma separated
func splitFormats(raw string) []string {
	var formats []string
	for _, f := range strings.Split(raw, ",") {
		f = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(f), "."))
		if f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}

// APIKey returns the credential of the given provider as currently set in the environment.
func APIKey(provider string) string {
	switch provider {
	case LLMProviderOpenAI:
		return os.Getenv(OpenAIAPIKeyEnv)
	default:
		return os.Getenv(GeminiAPIKeyEnv)
	}
}
