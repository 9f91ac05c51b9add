// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// PlaceholderProviderEndpoint is the development fallback for the identity
// provider endpoint. It must never be trusted in release mode.
const PlaceholderProviderEndpoint = "https://connect.example.com/v1"

// Config holds all configuration for the application.
type Config struct {
	// Server Configuration
	GinMode       string        `mapstructure:"GIN_MODE"`
	ServerHost    string        `mapstructure:"SERVER_HOST"`
	ServerPort    string        `mapstructure:"SERVER_PORT"`
	ServerTimeout time.Duration `mapstructure:"SERVER_TIMEOUT_SECONDS"`

	// Public origin of this gateway, used to build the redirect URLs the
	// identity provider sends the browser back to (OAuth, verification).
	PublicOrigin string `mapstructure:"PUBLIC_ORIGIN"`

	// Identity Provider Configuration
	ProviderEndpoint  string        `mapstructure:"PROVIDER_ENDPOINT"`
	ProviderProjectID string        `mapstructure:"PROVIDER_PROJECT_ID"`
	ProviderTimeout   time.Duration `mapstructure:"PROVIDER_TIMEOUT_SECONDS"`

	// Logging Configuration
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Cron Jobs
	SessionRefreshSchedule string `mapstructure:"SESSION_REFRESH_SCHEDULE"`
}

// Load attempts to load configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()

	// Set default values
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_TIMEOUT_SECONDS", 30)

	v.SetDefault("PUBLIC_ORIGIN", "http://localhost:8080")

	v.SetDefault("PROVIDER_ENDPOINT", PlaceholderProviderEndpoint)
	v.SetDefault("PROVIDER_PROJECT_ID", "")
	v.SetDefault("PROVIDER_TIMEOUT_SECONDS", 15)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("SESSION_REFRESH_SCHEDULE", "@every 5m")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	// Convert duration fields
	cfg.ServerTimeout = time.Duration(v.GetInt("SERVER_TIMEOUT_SECONDS")) * time.Second
	cfg.ProviderTimeout = time.Duration(v.GetInt("PROVIDER_TIMEOUT_SECONDS")) * time.Second

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate enforces the critical settings. The project ID is always required;
// the placeholder endpoint is tolerated in debug mode only, so a misconfigured
// production deployment fails at startup instead of silently talking to a
// non-existent provider.
func (cfg *Config) Validate() error {
	if strings.TrimSpace(cfg.ProviderProjectID) == "" {
		return fmt.Errorf("FATAL: PROVIDER_PROJECT_ID is not set. This is required to authenticate requests to the identity provider")
	}
	endpoint := strings.TrimSpace(cfg.ProviderEndpoint)
	if endpoint == "" {
		return fmt.Errorf("FATAL: PROVIDER_ENDPOINT is not set")
	}
	if cfg.GinMode == "release" && endpoint == PlaceholderProviderEndpoint {
		return fmt.Errorf("FATAL: PROVIDER_ENDPOINT is still the placeholder %q in release mode", PlaceholderProviderEndpoint)
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		return fmt.Errorf("FATAL: PROVIDER_ENDPOINT %q must be an http(s) URL", endpoint)
	}
	return nil
}
