package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"     validate:"required"`
	Upstream  UpstreamConfig  `mapstructure:"upstream"   validate:"required"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// UpstreamConfig contains settings for the chat-completion service that
// generates flashcard content.
//
// APIKey is deliberately not marked required: the server must start and
// answer health checks without a credential, reporting its absence there
// and rejecting generation requests per-request instead.
type UpstreamConfig struct {
	APIKey         string  `mapstructure:"api_key"`
	BaseURL        string  `mapstructure:"base_url"        validate:"required,url"`
	Model          string  `mapstructure:"model"           validate:"required"`
	MaxTokens      int     `mapstructure:"max_tokens"      validate:"required,gt=0"`
	Temperature    float64 `mapstructure:"temperature"     validate:"gte=0,lte=2"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
}

// RateLimitConfig contains admission-control settings for the generation
// endpoint. The memory backend is the single-instance default; the redis
// backend shares the counters across instances.
type RateLimitConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	Backend       string `mapstructure:"backend"        validate:"required,oneof=memory redis"`
	Limit         int    `mapstructure:"limit"          validate:"required,gt=0"`
	WindowSeconds int    `mapstructure:"window_seconds" validate:"required,gt=0"`
	RedisAddr     string `mapstructure:"redis_addr"     validate:"required_if=Backend redis"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
}
