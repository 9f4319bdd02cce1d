package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)

	assert.Empty(t, cfg.Upstream.APIKey, "a credential is not required to load")
	assert.Equal(t, "https://api.openai.com/v1", cfg.Upstream.BaseURL)
	assert.Equal(t, "gpt-4o-mini", cfg.Upstream.Model)
	assert.Equal(t, 2000, cfg.Upstream.MaxTokens)
	assert.InDelta(t, 0.7, cfg.Upstream.Temperature, 0.0001)
	assert.Equal(t, 60, cfg.Upstream.TimeoutSeconds)

	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, "memory", cfg.RateLimit.Backend)
	assert.Equal(t, 10, cfg.RateLimit.Limit)
	assert.Equal(t, 60, cfg.RateLimit.WindowSeconds)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("EYLUL_SERVER_PORT", "9090")
	t.Setenv("EYLUL_SERVER_LOG_LEVEL", "debug")
	t.Setenv("EYLUL_UPSTREAM_API_KEY", "test-api-key")
	t.Setenv("EYLUL_UPSTREAM_MODEL", "gpt-4o")
	t.Setenv("EYLUL_RATE_LIMIT_LIMIT", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "test-api-key", cfg.Upstream.APIKey)
	assert.Equal(t, "gpt-4o", cfg.Upstream.Model)
	assert.Equal(t, 5, cfg.RateLimit.Limit)
}

func TestLoadCredentialFromEnvironmentOnly(t *testing.T) {
	// The credential is the one key with no meaningful default; it must
	// still resolve when supplied solely through the environment.
	t.Setenv("EYLUL_UPSTREAM_API_KEY", "env-only-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "env-only-key", cfg.Upstream.APIKey)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "port out of range", key: "EYLUL_SERVER_PORT", value: "70000"},
		{name: "unknown log level", key: "EYLUL_SERVER_LOG_LEVEL", value: "loud"},
		{name: "unknown limiter backend", key: "EYLUL_RATE_LIMIT_BACKEND", value: "memcached"},
		{name: "zero window", key: "EYLUL_RATE_LIMIT_WINDOW_SECONDS", value: "0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadRedisBackendRequiresAddr(t *testing.T) {
	t.Setenv("EYLUL_RATE_LIMIT_BACKEND", "redis")

	_, err := Load()
	require.Error(t, err, "redis backend without an address must fail validation")

	t.Setenv("EYLUL_RATE_LIMIT_REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.RateLimit.Backend)
	assert.Equal(t, "localhost:6379", cfg.RateLimit.RedisAddr)
}
