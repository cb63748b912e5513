// @title           PDF Chat API
// @version         1.0
// @description     Extracts the text of an uploaded PDF and answers questions about it with an LLM
// @termsOfService  http://swagger.io/terms/

// @contact.name    API Support
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/akolanti/GoPDFChat/internal/bootstrap"
	"github.com/akolanti/GoPDFChat/internal/config"
	"github.com/akolanti/GoPDFChat/internal/handlers"
	"github.com/akolanti/GoPDFChat/internal/job"
	"github.com/akolanti/GoPDFChat/internal/middleware"
	"github.com/akolanti/GoPDFChat/internal/server"
	"github.com/akolanti/GoPDFChat/internal/worker"
	"github.com/akolanti/GoPDFChat/pkg/logger_i"
	"github.com/joho/godotenv"
)

var (
	listenAddr string
	configFile string
)

func main() {
	// a missing .env is fine, the environment may already be set
	_ = godotenv.Load()

	flag.StringVar(&listenAddr, "listen-addr", "", "server listen address, overrides LISTEN_ADDR")
	flag.StringVar(&configFile, "config", "", "optional yaml config file")
	flag.Parse()

	settings, err := config.Load(configFile)
	if err != nil {
		logger_i.Init(false, "error")
		logger_i.NewLogger("main").Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	if listenAddr != "" {
		settings.ListenAddr = listenAddr
	}

	logger_i.Init(settings.IsProd, settings.LogLevel)
	var logger = logger_i.NewLogger("main")

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	container := bootstrap.NewContainer(settings)
	middleware.InitRateLimiter(bootstrap.NewRateLimiter(serviceContext, settings))

	//init buffered task channel
	jobService := job.InitJobService(job.ServiceConfig{
		TaskChannel:       make(chan *job.Task, config.BufferLimit),
		DispatcherChannel: make(chan bool, 1),
	})
	poolConfig := worker.DefaultPoolConfig()
	poolConfig.MaxWorkers = settings.MaxWorkers
	pool := worker.NewPool(jobService, poolConfig)

	chatHandler := handlers.NewChatHandler(container.RAGService, pool, container.UploadRules, container.Provider.Name())

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		Pool:             pool,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(settings.ListenAddr, chatHandler)

	<-stopExecution
	logger.Info("Server stopped")
}
