package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redhat-appstudio/statuspage-mirror/internal/config"
	"github.com/redhat-appstudio/statuspage-mirror/internal/server"
	"github.com/redhat-appstudio/statuspage-mirror/internal/version"
	"github.com/redhat-appstudio/statuspage-mirror/pkg/logger"

	"github.com/joho/godotenv"
)

const shutdownTimeout = 30 * time.Second

// main is the entry point for the Status Page Mirror.
// It performs the following operations:
//  1. Loads environment variables from .env file if present
//  2. Loads configuration from YAML and environment variables
//  3. Validates the configuration, exiting non-zero when it is unusable
//  4. Initializes the incident store, Discord sink and monitor
//  5. Starts status page monitoring and the HTTP server
//  6. Shuts down gracefully on SIGINT or SIGTERM
func main() {
	os.Exit(run())
}

func run() int {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration from YAML and environment variables (cached for performance)
	cfg := config.LoadCached()
	if err := cfg.Validate(); err != nil {
		log.Printf("Configuration error: %v", err)
		return 1
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Printf("Failed to initialize server: %v", err)
		return 1
	}
	defer logger.Sync()

	logger.Infof("Status Page Mirror %s", version.GetBuildInfo())
	logger.Infof(" Starting on port %s", cfg.Port)
	logger.Infof(" Environment: %s", cfg.Environment)
	logger.Infof("Log level: %s", cfg.LogLevel)
	logger.Infof("Storage backend: %s", cfg.Storage.Backend)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("Server failed: %v", err)
			exitCode = 1
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Shutdown error: %v", err)
		exitCode = 1
	}

	logger.Info("Status Page Mirror stopped")
	return exitCode
}
