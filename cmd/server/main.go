// Package main implements the entry point for the Eylül Akademi flashcard
// API server, which builds audience-specific prompts, proxies them to an
// LLM completion service and returns normalized flashcard batches.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/businessfurkan/eylulakademi-api/internal/config"
	"github.com/businessfurkan/eylulakademi-api/internal/platform/logger"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	router := app.setupRouter()
	if err := app.startHTTPServer(context.Background(), router); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration, sets up logging and wires the
// application dependencies. Returns the application or any initialization
// error.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server)

	slog.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"upstream_model", cfg.Upstream.Model,
		"rate_limit_backend", cfg.RateLimit.Backend)

	// The credential is reported, not required: health checks expose its
	// absence and generation requests fail per-request until it is set.
	if cfg.Upstream.APIKey == "" {
		slog.Warn("no upstream API key configured, generation requests will be rejected")
	}

	return newApplication(cfg, appLogger)
}
