package generation

import (
	"context"

	"github.com/businessfurkan/eylulakademi-api/internal/domain"
)

// Generator defines the interface for producing flashcards for a given
// audience and topic. This interface is the boundary between the HTTP layer
// and the external LLM service, so handlers can be tested against a stub.
type Generator interface {
	// GenerateFlashcards builds the audience-specific prompt, calls the
	// completion service and normalizes its answer into at most count
	// flashcards. count is assumed to be pre-validated to [1, MaxCount].
	//
	// Failures are reported through the sentinel errors in this package
	// (ErrMissingCredential, ErrUpstreamUnreachable, ErrUpstreamRejected,
	// ErrMalformedEnvelope, ErrParseFailed, ErrShapeMismatch).
	GenerateFlashcards(ctx context.Context, subject, topic string, count int) ([]domain.Flashcard, error)

	// Configured reports whether an upstream credential is present. Used by
	// the health check and by the per-request admission gate so that no
	// prompt work is wasted on a misconfigured deployment.
	Configured() bool
}
