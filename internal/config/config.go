// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Import   ImportConfig
	Scrape   ScrapeConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string (required)
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL" required:"true"`

	// MaxConns is the maximum number of connections in the pool (default: 10)
	MaxConns int `env:"DB_MAX_CONNS" default:"10"`

	// MinConns is the minimum number of connections to keep open (default: 2)
	MinConns int `env:"DB_MIN_CONNS" default:"2"`
}

// ImportConfig holds stats import processing settings.
type ImportConfig struct {
	// MaxPayloadSize is the maximum accepted request body in bytes (default: 10MB)
	MaxPayloadSize int64 `env:"IMPORT_MAX_PAYLOAD_SIZE" default:"10485760"`

	// MaxConcurrent is the maximum number of parallel imports (default: 4)
	MaxConcurrent int `env:"IMPORT_MAX_CONCURRENT" default:"4"`

	// MaxSlotWait is how long to wait for an import slot (default: 30s)
	MaxSlotWait time.Duration `env:"IMPORT_MAX_SLOT_WAIT" default:"30s"`

	// Timeout is the maximum duration for a single import transaction (default: 2m)
	Timeout time.Duration `env:"IMPORT_TIMEOUT" default:"2m"`
}

// ScrapeConfig holds settings for the boardgamearena.com scraper.
type ScrapeConfig struct {
	// Enabled controls whether the scrape endpoints are registered (default: false)
	Enabled bool `env:"SCRAPE_ENABLED" default:"false"`

	// BaseURL is the site to pull stats pages from
	BaseURL string `env:"SCRAPE_BASE_URL" default:"https://boardgamearena.com"`

	// Email and Password authenticate the scrape session when set
	Email    string `env:"SCRAPE_EMAIL"`
	Password string `env:"SCRAPE_PASSWORD"`

	// SessionFile is where login cookies are persisted between runs
	SessionFile string `env:"SCRAPE_SESSION_FILE" default:".bga_session/session_state.json"`

	// MinDelay is the minimum pause between page loads (default: 2s)
	MinDelay time.Duration `env:"SCRAPE_MIN_DELAY" default:"2s"`

	// PageTimeout is the per-page navigation timeout (default: 30s)
	PageTimeout time.Duration `env:"SCRAPE_PAGE_TIMEOUT" default:"30s"`

	// Headless controls whether the browser runs without a display (default: true)
	Headless bool `env:"SCRAPE_HEADLESS" default:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}
