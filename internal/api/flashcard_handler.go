package api

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/businessfurkan/eylulakademi-api/internal/api/shared"
	"github.com/businessfurkan/eylulakademi-api/internal/domain"
	"github.com/businessfurkan/eylulakademi-api/internal/generation"
	"github.com/businessfurkan/eylulakademi-api/internal/ratelimit"
)

// unknownClientKey is the shared throttling bucket for requests that carry
// no identifiable client address. Deployments behind a proxy must set
// X-Forwarded-For or X-Real-IP per real client, or all unidentified clients
// share this one budget.
const unknownClientKey = "unknown"

// GenerateFlashcardsRequest represents the request body for flashcard
// generation. Count is optional; zero means "use the default".
type GenerateFlashcardsRequest struct {
	Subject string `json:"subject" validate:"required,min=1"`
	Topic   string `json:"topic"   validate:"required,min=1"`
	Count   int    `json:"count"   validate:"omitempty,lte=10"`
}

// GenerateFlashcardsResponse represents a successful generation response.
// Count is the actual number of cards returned, which may be fewer than
// requested when the upstream under-delivers.
type GenerateFlashcardsResponse struct {
	Success    bool               `json:"success"`
	Flashcards []domain.Flashcard `json:"flashcards"`
	Count      int                `json:"count"`
	Topic      string             `json:"topic"`
	Subject    string             `json:"subject"`
}

// HealthResponse represents the stateless health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	HasAPIKey bool   `json:"hasApiKey"`
	Timestamp string `json:"timestamp"`
}

// FlashcardHandler handles flashcard generation HTTP requests. Per request
// it sequences admission control, input validation, credential presence,
// generation and response assembly, mapping every failure mode to a distinct
// client-facing error.
type FlashcardHandler struct {
	generator generation.Generator
	limiter   ratelimit.Limiter
	logger    *slog.Logger
}

// NewFlashcardHandler creates a new FlashcardHandler.
func NewFlashcardHandler(
	generator generation.Generator,
	limiter ratelimit.Limiter,
	logger *slog.Logger,
) *FlashcardHandler {
	return &FlashcardHandler{
		generator: generator,
		limiter:   limiter,
		logger:    logger,
	}
}

// Generate handles POST /api/flashcards/generate requests.
func (h *FlashcardHandler) Generate(w http.ResponseWriter, r *http.Request) {
	// Admission first: a throttled client costs no upstream work.
	key := clientKey(r)
	allowed, retryAfter := h.limiter.Allow(r.Context(), key)
	if !allowed {
		w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(retryAfter)))
		shared.RespondWithErrorAndLog(w, r, http.StatusTooManyRequests,
			"Çok fazla istek gönderildi, lütfen bir dakika sonra tekrar deneyin",
			nil)
		return
	}

	var req GenerateFlashcardsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Geçersiz istek formatı")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, validationMessage(err))
		return
	}

	// Credential presence is checked before any prompt work is wasted. A
	// missing key is a deployment defect, not a client error, but the client
	// cannot recover either way.
	if !h.generator.Configured() {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			GetSafeErrorMessage(generation.ErrMissingCredential),
			generation.ErrMissingCredential)
		return
	}

	count := req.Count
	if count == 0 {
		count = domain.DefaultCount
	} else if count < 1 {
		count = 1
	}

	cards, err := h.generator.GenerateFlashcards(r.Context(), req.Subject, req.Topic, count)
	if err != nil {
		// Client mistakes (validation, throttling) were rejected above, so
		// every pipeline failure is a server-side fault.
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, GenerateFlashcardsResponse{
		Success:    true,
		Flashcards: cards,
		Count:      len(cards),
		Topic:      req.Topic,
		Subject:    req.Subject,
	})
}

// Health handles GET /api/flashcards/generate requests. It reports whether
// the upstream credential is configured and never touches the rate limiter
// or the upstream.
func (h *FlashcardHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:    "ok",
		HasAPIKey: h.generator.Configured(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// clientKey derives the throttling key from forwarded-address headers,
// falling back to the shared unknown bucket.
func clientKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		// The header may carry a proxy chain; the first entry is the client.
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		if key := strings.TrimSpace(fwd); key != "" {
			return key
		}
	}
	if real := strings.TrimSpace(r.Header.Get("X-Real-IP")); real != "" {
		return real
	}
	return unknownClientKey
}

// validationMessage maps a validation failure to a client-facing message
// naming the offending field without leaking validator internals.
func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		switch fieldErrs[0].Field() {
		case "Subject", "Topic":
			return "Konu ve başlık alanları zorunludur"
		case "Count":
			return "En fazla 10 kart istenebilir"
		}
	}
	return "Geçersiz istek"
}

// retryAfterSeconds rounds a retry duration up to whole seconds, with a
// floor of 1 so clients never receive Retry-After: 0.
func retryAfterSeconds(d time.Duration) int {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return secs
}
