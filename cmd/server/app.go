package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/businessfurkan/eylulakademi-api/internal/config"
	"github.com/businessfurkan/eylulakademi-api/internal/generation"
	"github.com/businessfurkan/eylulakademi-api/internal/platform/openai"
	"github.com/businessfurkan/eylulakademi-api/internal/ratelimit"
)

// application holds the wired dependencies of the running server.
type application struct {
	config    *config.Config
	logger    *slog.Logger
	generator generation.Generator
	limiter   ratelimit.Limiter

	// cleanupFuncs run in order during graceful shutdown.
	cleanupFuncs []func()
}

// newApplication wires the generator and rate limiter from configuration.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	generator, err := openai.NewGenerator(logger, cfg.Upstream)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}
	app.generator = generator

	limiter, err := app.setupLimiter()
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limiter: %w", err)
	}
	app.limiter = limiter

	return app, nil
}

// setupLimiter selects the admission-control backend from configuration:
// disabled, in-process memory map, or shared Redis counters.
func (app *application) setupLimiter() (ratelimit.Limiter, error) {
	cfg := app.config.RateLimit
	window := time.Duration(cfg.WindowSeconds) * time.Second

	if !cfg.Enabled {
		app.logger.Warn("rate limiting is disabled")
		return ratelimit.NoopLimiter{}, nil
	}

	switch cfg.Backend {
	case "redis":
		rdb := ratelimit.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		app.cleanupFuncs = append(app.cleanupFuncs, func() {
			if err := rdb.Close(); err != nil {
				app.logger.Error("failed to close redis client", "error", err)
			}
		})
		return ratelimit.NewRedisLimiter(rdb, app.logger, cfg.Limit, window), nil

	case "memory":
		limiter := ratelimit.NewMemoryLimiter(cfg.Limit, window)
		app.cleanupFuncs = append(app.cleanupFuncs, limiter.Stop)
		return limiter, nil

	default:
		return nil, fmt.Errorf("unknown rate limit backend %q", cfg.Backend)
	}
}

// cleanup releases application resources during shutdown.
func (app *application) cleanup() {
	for _, fn := range app.cleanupFuncs {
		fn()
	}
}
