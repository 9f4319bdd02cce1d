package api

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/businessfurkan/eylulakademi-api/internal/generation"
)

func TestGetSafeErrorMessage(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		assert.Equal(t, "Beklenmeyen bir hata oluştu", GetSafeErrorMessage(nil))
	})

	t.Run("distinct messages per failure class", func(t *testing.T) {
		credential := GetSafeErrorMessage(generation.ErrMissingCredential)
		upstream := GetSafeErrorMessage(generation.ErrUpstreamRejected)
		format := GetSafeErrorMessage(generation.ErrShapeMismatch)

		assert.NotEqual(t, credential, upstream)
		assert.NotEqual(t, upstream, format)
	})

	t.Run("never echoes internal detail", func(t *testing.T) {
		err := fmt.Errorf("%w: status 503, body {\"secret\": \"sk-abc\"}", generation.ErrUpstreamRejected)
		msg := GetSafeErrorMessage(err)

		assert.NotContains(t, msg, "503")
		assert.NotContains(t, msg, "sk-abc")
	})
}
