package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/businessfurkan/eylulakademi-api/internal/domain"
	"github.com/businessfurkan/eylulakademi-api/internal/generation"
)

// stubGenerator implements generation.Generator for handler tests, recording
// call counts so admission and validation short-circuits can be asserted.
type stubGenerator struct {
	cards      []domain.Flashcard
	err        error
	configured bool
	calls      int
}

func (s *stubGenerator) GenerateFlashcards(
	_ context.Context,
	subject, topic string,
	count int,
) ([]domain.Flashcard, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.cards, nil
}

func (s *stubGenerator) Configured() bool {
	return s.configured
}

// stubLimiter implements ratelimit.Limiter with a fixed verdict.
type stubLimiter struct {
	allowed    bool
	retryAfter time.Duration
	calls      int
}

func (s *stubLimiter) Allow(context.Context, string) (bool, time.Duration) {
	s.calls++
	return s.allowed, s.retryAfter
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func admittingLimiter() *stubLimiter {
	return &stubLimiter{allowed: true}
}

func postGenerate(t *testing.T, handler *FlashcardHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/flashcards/generate",
		bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.Generate(w, req)
	return w
}

func TestGenerateSuccess(t *testing.T) {
	gen := &stubGenerator{
		configured: true,
		cards: []domain.Flashcard{
			{ID: 1700000000000, Question: "Mitoz nedir?", Answer: "Somatik hücre bölünmesi",
				Category: "Hücre Bölünmesi", Difficulty: domain.DifficultyEasy, Subject: "yks"},
			{ID: 1700000000001, Question: "Mayoz nedir?", Answer: "Eşey hücresi bölünmesi",
				Category: "Hücre Bölünmesi", Difficulty: domain.DifficultyMedium, Subject: "yks"},
		},
	}
	handler := NewFlashcardHandler(gen, admittingLimiter(), testLogger())

	w := postGenerate(t, handler, `{"subject": "yks", "topic": "Hücre Bölünmesi", "count": 2}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp GenerateFlashcardsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Count)
	assert.Len(t, resp.Flashcards, 2)
	assert.Equal(t, "Hücre Bölünmesi", resp.Topic)
	assert.Equal(t, "yks", resp.Subject)
	for _, card := range resp.Flashcards {
		assert.Equal(t, "Hücre Bölünmesi", card.Category)
		assert.Equal(t, "yks", card.Subject)
	}
	assert.Equal(t, 1, gen.calls)
}

func TestGenerateValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing subject", body: `{"topic": "Hücre Bölünmesi"}`},
		{name: "missing topic", body: `{"subject": "yks"}`},
		{name: "empty subject", body: `{"subject": "", "topic": "Hücre"}`},
		{name: "count over the maximum", body: `{"subject": "yks", "topic": "Hücre", "count": 11}`},
		{name: "malformed JSON", body: `{"subject": `},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gen := &stubGenerator{configured: true}
			handler := NewFlashcardHandler(gen, admittingLimiter(), testLogger())

			w := postGenerate(t, handler, tc.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Zero(t, gen.calls,
				"invalid input must be rejected before any upstream call")

			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestGenerateCountEleven(t *testing.T) {
	// count=11 is always InvalidInput regardless of subject/topic validity.
	gen := &stubGenerator{configured: true}
	handler := NewFlashcardHandler(gen, admittingLimiter(), testLogger())

	w := postGenerate(t, handler, `{"subject": "tus", "topic": "Farmakoloji", "count": 11}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, gen.calls)
}

func TestGenerateRateLimited(t *testing.T) {
	gen := &stubGenerator{configured: true}
	limiter := &stubLimiter{allowed: false, retryAfter: 42 * time.Second}
	handler := NewFlashcardHandler(gen, limiter, testLogger())

	w := postGenerate(t, handler, `{"subject": "yks", "topic": "Hücre", "count": 2}`)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "42", w.Header().Get("Retry-After"))
	assert.Zero(t, gen.calls, "a throttled request incurs no upstream cost")
}

func TestGenerateMissingCredential(t *testing.T) {
	gen := &stubGenerator{configured: false}
	handler := NewFlashcardHandler(gen, admittingLimiter(), testLogger())

	w := postGenerate(t, handler, `{"subject": "yks", "topic": "Hücre"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Zero(t, gen.calls, "no prompt work is wasted on a misconfigured deployment")
}

func TestGenerateCountDefaultsAndClamps(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		expectedCount int
	}{
		{name: "absent count defaults", body: `{"subject": "yks", "topic": "Hücre"}`, expectedCount: domain.DefaultCount},
		{name: "negative count clamps to one", body: `{"subject": "yks", "topic": "Hücre", "count": -5}`, expectedCount: 1},
		{name: "maximum passes through", body: `{"subject": "yks", "topic": "Hücre", "count": 10}`, expectedCount: 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotCount int
			gen := &countingGenerator{onGenerate: func(count int) { gotCount = count }}
			handler := NewFlashcardHandler(gen, admittingLimiter(), testLogger())

			w := postGenerate(t, handler, tc.body)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tc.expectedCount, gotCount)
		})
	}
}

// countingGenerator reports the count it was invoked with.
type countingGenerator struct {
	onGenerate func(count int)
}

func (c *countingGenerator) GenerateFlashcards(
	_ context.Context,
	subject, topic string,
	count int,
) ([]domain.Flashcard, error) {
	c.onGenerate(count)
	return []domain.Flashcard{}, nil
}

func (c *countingGenerator) Configured() bool { return true }

func TestGenerateUpstreamFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "unreachable", err: generation.ErrUpstreamUnreachable},
		{name: "rejected", err: generation.ErrUpstreamRejected},
		{name: "malformed envelope", err: generation.ErrMalformedEnvelope},
		{name: "parse failure", err: generation.ErrParseFailed},
		{name: "shape mismatch", err: generation.ErrShapeMismatch},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gen := &stubGenerator{configured: true, err: tc.err}
			handler := NewFlashcardHandler(gen, admittingLimiter(), testLogger())

			w := postGenerate(t, handler, `{"subject": "yks", "topic": "Hücre"}`)

			assert.Equal(t, http.StatusInternalServerError, w.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotContains(t, resp["error"], tc.err.Error(),
				"internal error detail must not leak to the client")
		})
	}
}

func TestGenerateFewerCardsThanRequested(t *testing.T) {
	gen := &stubGenerator{
		configured: true,
		cards: []domain.Flashcard{
			{ID: 1, Question: "tek soru", Answer: "tek cevap",
				Category: "Konu", Difficulty: domain.DifficultyMedium, Subject: "lgs"},
		},
	}
	handler := NewFlashcardHandler(gen, admittingLimiter(), testLogger())

	w := postGenerate(t, handler, `{"subject": "lgs", "topic": "Konu", "count": 5}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp GenerateFlashcardsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count, "count reflects the actual batch length")
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		configured bool
	}{
		{name: "with api key", configured: true},
		{name: "without api key", configured: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gen := &stubGenerator{configured: tc.configured}
			limiter := &stubLimiter{allowed: false} // must not be consulted
			handler := NewFlashcardHandler(gen, limiter, testLogger())

			req := httptest.NewRequest(http.MethodGet, "/api/flashcards/generate", nil)
			w := httptest.NewRecorder()
			handler.Health(w, req)

			require.Equal(t, http.StatusOK, w.Code)

			var resp HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "ok", resp.Status)
			assert.Equal(t, tc.configured, resp.HasAPIKey)
			assert.NotEmpty(t, resp.Timestamp)

			assert.Zero(t, limiter.calls, "health never touches the rate limiter")
			assert.Zero(t, gen.calls, "health never touches the upstream")
		})
	}
}

func TestClientKey(t *testing.T) {
	tests := []struct {
		name     string
		headers  map[string]string
		expected string
	}{
		{
			name:     "x-forwarded-for wins",
			headers:  map[string]string{"X-Forwarded-For": "203.0.113.7", "X-Real-IP": "198.51.100.1"},
			expected: "203.0.113.7",
		},
		{
			name:     "first entry of a proxy chain",
			headers:  map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1, 10.0.0.2"},
			expected: "203.0.113.7",
		},
		{
			name:     "x-real-ip fallback",
			headers:  map[string]string{"X-Real-IP": "198.51.100.1"},
			expected: "198.51.100.1",
		},
		{
			name:     "shared unknown bucket",
			headers:  nil,
			expected: "unknown",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/flashcards/generate", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tc.expected, clientKey(req))
		})
	}
}
