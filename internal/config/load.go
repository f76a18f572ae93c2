package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. BRANDKIT_LLM_API_KEY.
const EnvPrefix = "BRANDKIT"

// ConfigFileEnv names an explicit config file, overriding the search paths.
const ConfigFileEnv = "BRANDKIT_CONFIG_FILE"

// keys lists every setting so that environment variables bind even for keys
// without a default.
var keys = []string{
	"server.port",
	"server.log_level",
	"server.request_timeout_seconds",
	"server.shutdown_timeout_seconds",
	"llm.provider",
	"llm.api_key",
	"llm.model_name",
	"llm.base_url",
	"llm.temperature",
	"llm.max_tokens",
	"llm.json_mode",
	"llm.profile",
	"generation.max_attempts",
	"generation.retry_delay_seconds",
	"store.backend",
	"store.file_dir",
	"store.database_url",
	"store.redis_url",
	"store.redis_key_prefix",
	"store.redis_ttl_hours",
	"store.mongo_uri",
	"store.mongo_database",
	"store.mongo_collection",
	"auth.jwt_secret",
	"auth.token_lifetime_minutes",
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if path := os.Getenv(ConfigFileEnv); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers default values for every optional setting.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.request_timeout_seconds", 60)
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.temperature", 0.8)
	v.SetDefault("llm.max_tokens", 2048)
	v.SetDefault("llm.json_mode", true)
	v.SetDefault("llm.profile", "standard")

	v.SetDefault("generation.max_attempts", 1)
	v.SetDefault("generation.retry_delay_seconds", 2)

	v.SetDefault("store.backend", "memory")
	v.SetDefault("store.file_dir", "data/brandkits")
	v.SetDefault("store.redis_key_prefix", "brandkit:")
	v.SetDefault("store.redis_ttl_hours", 0)
	v.SetDefault("store.mongo_database", "brandkit")
	v.SetDefault("store.mongo_collection", "brand_kits")

	v.SetDefault("auth.token_lifetime_minutes", 60)
}
