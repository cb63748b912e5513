package config

import (
	"log/slog"
	"time"
)

const (
	LOG_LEVEL_PROD              = slog.LevelInfo
	TRACE_ID_KEY                = "traceId"
	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//redis limiter: requests per window per IP
	RedisRateLimitPerWindow int64 = 120
	RedisRateLimitWindow          = 1 * time.Minute

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute

	//serverTimeouts
	ReadTimeout = 10 * time.Second
	//must outlive GenerationTimeout, the chat endpoint blocks on the llm call
	WriteTimeout           = 75 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//task queue buffer limit
	BufferLimit = 100

	//uploads
	MaxUploadSizeMB      int64 = 5
	AllowedUploadFormats       = "pdf"
	UploadFormField            = "pdf"
	MultipartMemoryLimit int64 = 32 << 20

	//extraction
	PageExtractionTimeout = 10 * time.Second

	//llm
	LLMProviderGemini  = "gemini"
	LLMProviderOpenAI  = "openai"
	DefaultLLMProvider = LLMProviderGemini
	GeminiModelName    = "gemini-2.5-pro"
	OpenAIModelName    = "gpt-4o-mini"
	GeminiAPIKeyEnv    = "GEMINI_API_KEY"
	OpenAIAPIKeyEnv    = "OPENAI_API_KEY"
	GenerationTimeout  = 60 * time.Second
	MaxDocumentChars   = 1_000_000 //runes of pdf text embedded in a prompt, 0 disables

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis, an empty address keeps rate limiting in memory
	RedisAddr = ""

	//redis has 16 DB we can use
	RedisRateLimitStore = 2
)
