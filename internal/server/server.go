package server

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/akolanti/GoPDFChat/internal/adapter/utils"
	"github.com/akolanti/GoPDFChat/internal/config"
	"github.com/akolanti/GoPDFChat/internal/customHttpClient"
	"github.com/akolanti/GoPDFChat/internal/handlers"
	"github.com/akolanti/GoPDFChat/internal/middleware"
	"github.com/akolanti/GoPDFChat/internal/worker"
	"github.com/akolanti/GoPDFChat/pkg/logger_i"
	"github.com/go-chi/chi/v5"
)

var (
	server  *http.Server
	_logger = logger_i.NewLogger("Server")
)

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	Pool             *worker.Pool
	CloseServices    context.CancelFunc
}

func registerRoutes(r chi.Router, h *handlers.ChatHandler) {
	r.Get("/health", middleware.Wrap(h.Health))
	r.Route("/api", func(api chi.Router) {
		api.Post("/extract-text", middleware.Wrap(h.ExtractText))
		api.Post("/chat", middleware.Wrap(h.Chat))
	})
}

func CreateServer(listenAddr string, h *handlers.ChatHandler) {
	r := utils.GetRouter()
	registerRoutes(r.Router, h)

	server = &http.Server{
		Addr:         listenAddr,
		Handler:      r.Router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	_logger.Info("Server is listening at", "address", listenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_logger.Error("Server crashed", "error", err.Error(), "addr", listenAddr)
		os.Exit(1)
	}
}

func ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	_logger.Info("Server is shutting down", "signal", state.String())

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		if server != nil {
			server.SetKeepAlivesEnabled(false)
			if err := server.Shutdown(ctx); err != nil {
				_logger.Error("Could not shutdown gracefully", "error", err)
			}
		}

		//close workers
		if err := shutdownParams.Pool.Shutdown(ctx); err != nil {
			_logger.Error("Worker pool did not drain", "error", err)
		}
		shutdownParams.CloseServices()
		customHttpClient.CloseIdle()
		close(done)
	}()

	select {
	case <-done:
		_logger.Info("Gracefully shut down")
		close(shutdownParams.StopExecution)
	case <-ctx.Done():
		_logger.Error("Force shut down")
		os.Exit(1)
	}
}
