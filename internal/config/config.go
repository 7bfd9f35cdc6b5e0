// Package config provides centralized configuration management for the
// station. It loads configuration from environment variables with sensible
// defaults and validates all settings on startup to fail fast on
// misconfiguration.
package config

import (
	"time"

	"github.com/partbench/dimstation/internal/export"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Export   ExportConfig
	Security SecurityConfig
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

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the maximum idle time before a connection is closed (default: 30m)
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// ExportConfig holds the measurement feed settings handed to the export
// engine, plus where and how often feed files are produced.
type ExportConfig struct {
	// DimUnit is the dimension unit for the feed: "in" or "cm" (default: in)
	DimUnit string `env:"EXPORT_DIM_UNIT" default:"in"`

	// WgtUnit is the weight unit for the feed: "lb" or "kg" (default: lb)
	WgtUnit string `env:"EXPORT_WGT_UNIT" default:"lb"`

	// VolUnit is the volume unit reported in the feed (default: in)
	VolUnit string `env:"EXPORT_VOL_UNIT" default:"in"`

	// DimFactor is the dimensional-weight divisor (default: 166, the
	// inch/pound carrier standard)
	DimFactor float64 `env:"EXPORT_DIM_FACTOR" default:"166"`

	// SiteID is the SITE_ID column value (default: 733)
	SiteID string `env:"EXPORT_SITE_ID" default:"733"`

	// OptInfo2 and OptInfo3 are pass-through flags for the consumer (default: Y)
	OptInfo2 string `env:"EXPORT_OPT_INFO_2" default:"Y"`
	OptInfo3 string `env:"EXPORT_OPT_INFO_3" default:"Y"`

	// OutputDir is where feed files are written (default: exports)
	OutputDir string `env:"EXPORT_OUTPUT_DIR" default:"exports"`

	// FeedEnabled controls the periodic feed scheduler (default: true)
	FeedEnabled bool `env:"EXPORT_FEED_ENABLED" default:"true"`

	// FeedInterval is how often the scheduler emits a feed file (default: 1h)
	FeedInterval time.Duration `env:"EXPORT_FEED_INTERVAL" default:"1h"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// RequireAPIKey enables X-API-Key validation on API routes (default: false)
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false"`

	// APIKeys is a comma-separated list of accepted API keys
	APIKeys []string `env:"API_KEYS"`

	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Settings builds the immutable per-run engine settings snapshot.
func (c *ExportConfig) Settings() export.Settings {
	return export.Settings{
		DimUnit:  c.DimUnit,
		WgtUnit:  c.WgtUnit,
		VolUnit:  c.VolUnit,
		Factor:   c.DimFactor,
		SiteID:   c.SiteID,
		OptInfo2: c.OptInfo2,
		OptInfo3: c.OptInfo3,
	}
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + itoa(c.Port)
	}
	return c.Host + ":" + itoa(c.Port)
}

// itoa converts an int to string without importing strconv in this file.
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var b [20]byte
	n := len(b)
	neg := i < 0
	if neg {
		i = -i
	}
	for i > 0 {
		n--
		b[n] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		n--
		b[n] = '-'
	}
	return string(b[n:])
}
