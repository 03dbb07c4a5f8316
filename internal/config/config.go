// Package config provides centralized configuration management for the
// orders loader and report engine. It loads configuration from environment
// variables with sensible defaults and validates all settings on startup to
// fail fast on misconfiguration.
package config

import "time"

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Database DatabaseConfig
	Input    InputConfig
	Report   ReportConfig
	Logging  LoggingConfig
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string (required).
	// DB_URL is accepted as a fallback, see Load.
	URL string `envconfig:"DATABASE_URL"`

	// MaxConns is the maximum number of connections in the pool (default: 4)
	MaxConns int `envconfig:"DB_MAX_CONNS" default:"4"`

	// MinConns is the minimum number of connections to keep open (default: 0)
	MinConns int `envconfig:"DB_MIN_CONNS" default:"0"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `envconfig:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the maximum idle time before a connection is closed (default: 30m)
	MaxConnIdleTime time.Duration `envconfig:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// InputConfig holds loader settings.
type InputConfig struct {
	// Path is the delimited order file read by "orders load".
	Path string `envconfig:"ORDERS_CSV" default:"data/orders.csv"`

	// Timeout bounds a whole load, parse through commit (default: 10m)
	Timeout time.Duration `envconfig:"LOAD_TIMEOUT" default:"10m"`
}

// ReportConfig holds report engine settings.
type ReportConfig struct {
	// Dir receives the generated report files; created if absent.
	Dir string `envconfig:"REPORTS_DIR" default:"reports"`

	// Timeout bounds a whole report run (default: 5m)
	Timeout time.Duration `envconfig:"REPORT_TIMEOUT" default:"5m"`

	// Workbook additionally writes reports.xlsx with one sheet per table.
	Workbook bool `envconfig:"REPORT_WORKBOOK" default:"false"`

	// Source selects where "orders report" reads from: "postgres" reads the
	// loaded table, "csv" aggregates ORDERS_CSV in memory without a database.
	Source string `envconfig:"REPORT_SOURCE" default:"postgres"`
}

// Report sources.
const (
	SourcePostgres = "postgres"
	SourceCSV      = "csv"
)

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `envconfig:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `envconfig:"LOG_FORMAT" default:"text"`
}
