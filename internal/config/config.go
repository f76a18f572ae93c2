package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"     validate:"required"`
	LLM        LLMConfig        `mapstructure:"llm"        validate:"required"`
	Generation GenerationConfig `mapstructure:"generation" validate:"required"`
	Store      StoreConfig      `mapstructure:"store"      validate:"required"`
	Auth       AuthConfig       `mapstructure:"auth"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// RequestTimeoutSeconds bounds each generation request, including the
	// provider round trip.
	RequestTimeoutSeconds  int `mapstructure:"request_timeout_seconds"  validate:"gt=0"`
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	Provider string `mapstructure:"provider" validate:"required,oneof=openai gemini"`

	// APIKey is deliberately not required at load time: a missing key is
	// reported per request as a configuration error, without any network call.
	APIKey string `mapstructure:"api_key"`

	// ModelName and BaseURL fall back to provider defaults when empty.
	ModelName string `mapstructure:"model_name"`
	BaseURL   string `mapstructure:"base_url"   validate:"omitempty,url"`

	Temperature float64 `mapstructure:"temperature" validate:"gte=0,lte=2"`
	MaxTokens   int     `mapstructure:"max_tokens"  validate:"gte=0"`
	JSONMode    bool    `mapstructure:"json_mode"`

	// Profile selects the full-kit schema: "extended" adds sample logos,
	// typography systems, posters and social posts.
	Profile string `mapstructure:"profile" validate:"required,oneof=standard extended"`
}

// GenerationConfig is the caller-side retry policy around the generation
// client. MaxAttempts of 1 means no retry.
type GenerationConfig struct {
	MaxAttempts       int `mapstructure:"max_attempts"        validate:"gte=1,lte=5"`
	RetryDelaySeconds int `mapstructure:"retry_delay_seconds" validate:"gte=0"`
}

// StoreConfig selects and configures the brand kit persistence backend.
type StoreConfig struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=memory file postgres redis mongo"`

	FileDir string `mapstructure:"file_dir" validate:"required_if=Backend file"`

	DatabaseURL string `mapstructure:"database_url" validate:"required_if=Backend postgres"`

	RedisURL       string `mapstructure:"redis_url"        validate:"required_if=Backend redis"`
	RedisKeyPrefix string `mapstructure:"redis_key_prefix"`
	RedisTTLHours  int    `mapstructure:"redis_ttl_hours"  validate:"gte=0"`

	MongoURI        string `mapstructure:"mongo_uri"        validate:"required_if=Backend mongo"`
	MongoDatabase   string `mapstructure:"mongo_database"   validate:"required_if=Backend mongo"`
	MongoCollection string `mapstructure:"mongo_collection" validate:"required_if=Backend mongo"`
}

// AuthConfig contains bearer-token settings. An empty JWTSecret disables
// authentication on the API.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"omitempty,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gt=0"`
}

// Enabled reports whether bearer-token authentication is configured.
func (a AuthConfig) Enabled() bool {
	return a.JWTSecret != ""
}

// RequestTimeout is RequestTimeoutSeconds as a duration.
func (s ServerConfig) RequestTimeout() time.Duration {
	return time.Duration(s.RequestTimeoutSeconds) * time.Second
}

// ShutdownTimeout is ShutdownTimeoutSeconds as a duration.
func (s ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSeconds) * time.Second
}
