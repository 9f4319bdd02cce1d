package api

import (
	"errors"

	"github.com/businessfurkan/eylulakademi-api/internal/generation"
)

// GetSafeErrorMessage returns a sanitized, user-friendly error message based
// on the error type. This prevents leaking sensitive internal details such
// as upstream status codes or raw provider error bodies.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "Beklenmeyen bir hata oluştu"
	}

	switch {
	case errors.Is(err, generation.ErrMissingCredential):
		return "Servis yapılandırması eksik, lütfen daha sonra tekrar deneyin"

	case errors.Is(err, generation.ErrUpstreamUnreachable),
		errors.Is(err, generation.ErrUpstreamRejected),
		errors.Is(err, generation.ErrMalformedEnvelope):
		return "Flashcard oluşturulamadı, lütfen tekrar deneyin"

	case errors.Is(err, generation.ErrParseFailed),
		errors.Is(err, generation.ErrShapeMismatch):
		return "Üretilen içerik işlenemedi, lütfen tekrar deneyin"

	default:
		return "Beklenmeyen bir hata oluştu"
	}
}
