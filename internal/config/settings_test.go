package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ServerListenAddr, s.ListenAddr)
	assert.Equal(t, LLMProviderGemini, s.LLMProvider)
	assert.Equal(t, GeminiModelName, s.GeminiModel)
	assert.Equal(t, MaxUploadSizeMB, s.MaxUploadSizeMB)
	assert.Equal(t, []string{"pdf"}, s.AllowedFormats)
	assert.Equal(t, GenerationTimeout, s.GenerationTimeout)
	assert.False(t, s.IsProd)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MAX_UPLOAD_SIZE_MB", "10")
	t.Setenv("ALLOWED_FORMATS", "PDF, .docx ,txt")
	t.Setenv("LLM_PROVIDER", "OpenAI")
	t.Setenv("APP_ENV", "production")
	t.Setenv("GENERATION_TIMEOUT", "90s")

	s, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, int64(10), s.MaxUploadSizeMB)
	assert.Equal(t, []string{"pdf", "docx", "txt"}, s.AllowedFormats)
	assert.Equal(t, LLMProviderOpenAI, s.LLMProvider)
	assert.True(t, s.IsProd)
	assert.Equal(t, 90*time.Second, s.GenerationTimeout)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pdfchat.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen_addr: \":8080\"\nmax_document_chars: 500\n"), 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", s.ListenAddr)
	assert.Equal(t, 500, s.MaxDocumentChars)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown provider", "LLM_PROVIDER", "llama"},
		{"zero upload size", "MAX_UPLOAD_SIZE_MB", "0"},
		{"no formats", "ALLOWED_FORMATS", " , "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load("")
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestAPIKey_ReadAtCallTime(t *testing.T) {
	t.Setenv(GeminiAPIKeyEnv, "")
	assert.Empty(t, APIKey(LLMProviderGemini))

	t.Setenv(GeminiAPIKeyEnv, "g-key")
	t.Setenv(OpenAIAPIKeyEnv, "o-key")
	assert.Equal(t, "g-key", APIKey(LLMProviderGemini))
	assert.Equal(t, "o-key", APIKey(LLMProviderOpenAI))
}
