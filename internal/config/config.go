package config

import (
	"errors"
	"os"
	"time"
)

// Defaults for the bundled snapshot profile: the identifier the packaged
// data describes and the forecast model variant fetched when a request
// names none.
const (
	DefaultLocationID = "400a5792-7432-4ab5-a280-97dd91b21621"
	DefaultProvider   = "XGBoost"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Observation API configuration. An empty or placeholder base URL
	// disables remote access entirely; the bundled snapshots then serve
	// every request.
	APIBaseURL     string
	RequestTimeout time.Duration
	BulkTimeout    time.Duration

	DefaultLocationID string
	DefaultProvider   string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, errors.New("invalid SHUTDOWN_TIMEOUT")
	}
	requestTimeout, err := parseDuration("WEATHER_API_TIMEOUT", "10s")
	if err != nil {
		return nil, errors.New("invalid WEATHER_API_TIMEOUT")
	}
	bulkTimeout, err := parseDuration("WEATHER_API_BULK_TIMEOUT", "25s")
	if err != nil {
		return nil, errors.New("invalid WEATHER_API_BULK_TIMEOUT")
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		APIBaseURL:     os.Getenv("WEATHER_API_URL"),
		RequestTimeout: requestTimeout,
		BulkTimeout:    bulkTimeout,

		DefaultLocationID: envOrDefault("DEFAULT_LOCATION_ID", DefaultLocationID),
		DefaultProvider:   envOrDefault("DEFAULT_PROVIDER", DefaultProvider),
	}

	if cfg.DefaultLocationID == "" {
		return nil, errors.New("DEFAULT_LOCATION_ID must not be empty")
	}
	if cfg.DefaultProvider == "" {
		return nil, errors.New("DEFAULT_PROVIDER must not be empty")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, errors.New("invalid duration")
	}
	return d, nil
}
