package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/businessfurkan/eylulakademi-api/internal/api"
	apiMiddleware "github.com/businessfurkan/eylulakademi-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware) // trace IDs for error correlation

	flashcardHandler := api.NewFlashcardHandler(app.generator, app.limiter, app.logger)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		r.Post("/flashcards/generate", flashcardHandler.Generate)
		r.Get("/flashcards/generate", flashcardHandler.Health)
	})

	// Liveness endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
