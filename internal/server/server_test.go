package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akolanti/GoPDFChat/internal/adapter/utils"
	"github.com/akolanti/GoPDFChat/internal/api"
	"github.com/akolanti/GoPDFChat/internal/handlers"
	"github.com/akolanti/GoPDFChat/internal/job"
	"github.com/akolanti/GoPDFChat/internal/rag"
	"github.com/akolanti/GoPDFChat/internal/rag/ingest"
	"github.com/akolanti/GoPDFChat/internal/validation"
	"github.com/akolanti/GoPDFChat/internal/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoProvider struct{}

func (echoProvider) Generate(ctx context.Context, prompt string) (string, error) {
	return "stubbed answer", nil
}

func (echoProvider) Name() string { return "echo" }

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	pool := worker.NewPool(job.InitJobService(job.ServiceConfig{
		TaskChannel:       make(chan *job.Task, 4),
		DispatcherChannel: make(chan bool, 1),
	}), worker.PoolConfig{MinWorkers: 1, MaxWorkers: 2})
	t.Cleanup(func() { _ = pool.Shutdown(context.Background()) })

	service := rag.NewService(ingest.NewExtractor(), echoProvider{}, rag.DefaultOptions())
	h := handlers.NewChatHandler(service, pool, validation.DefaultUploadRules(), "echo")

	r := utils.NewRouter()
	registerRoutes(r, h)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestRoutes(t *testing.T) {
	srv := newTestServer(t)

	t.Run("health", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/health")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, resp.Header.Get("X-Trace-Id"))
	})

	t.Run("chat through the worker pool", func(t *testing.T) {
		body, _ := json.Marshal(api.ChatRequest{PdfText: "Invoice total: $42.", Message: "What is the total?"})
		resp, err := http.Post(srv.URL+"/api/chat", "application/json", bytes.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var out api.ChatResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, "stubbed answer", out.Response)
	})

	t.Run("metrics", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("unknown method", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/chat")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})
}
