package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Environment represents the deployment environment
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
)

// Config holds all application configuration
type Config struct {
	Env      Environment `envconfig:"ENV" default:"development"`
	LogLevel string      `envconfig:"LOG_LEVEL" default:"info"`

	App    AppConfig
	Server ServerConfig
	Engine EngineConfig
	CORS   CORSConfig
}

// AppConfig holds application metadata
type AppConfig struct {
	Name    string `envconfig:"APP_NAME" default:"clickwise"`
	Version string `envconfig:"APP_VERSION" default:"1.0.0"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
}

// EngineConfig holds prediction-engine settings
type EngineConfig struct {
	// ContextCacheSize bounds the CPC estimator's per-URL cache.
	ContextCacheSize int `envconfig:"ENGINE_CONTEXT_CACHE_SIZE" default:"512"`

	// MatcherTolerance is the coordinate-bucket tolerance in pixels.
	MatcherTolerance float64 `envconfig:"ENGINE_MATCHER_TOLERANCE" default:"20"`

	// MaxBatchItems caps one batch-prediction request.
	MaxBatchItems int `envconfig:"ENGINE_MAX_BATCH_ITEMS" default:"25"`
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	Enabled        bool     `envconfig:"CORS_ENABLED" default:"true"`
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// Load reads configuration from the environment, with .env as a
// convenience fallback for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("clickwise", &cfg); err != nil {
		return nil, fmt.Errorf("processing env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks configuration invariants
func (c *Config) Validate() error {
	switch c.Env {
	case EnvDevelopment, EnvStaging, EnvProduction:
	default:
		return fmt.Errorf("invalid environment: %s", c.Env)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Engine.ContextCacheSize < 1 {
		return fmt.Errorf("context cache size must be positive, got %d", c.Engine.ContextCacheSize)
	}
	if c.Engine.MatcherTolerance <= 0 {
		return fmt.Errorf("matcher tolerance must be positive, got %f", c.Engine.MatcherTolerance)
	}
	return nil
}

// IsDevelopment reports whether the app runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}
