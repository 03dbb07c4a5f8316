package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Load reads configuration from environment variables.
// It applies defaults for unset values and validates the result.
// Returns an error if required values are missing or validation fails.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	// DB_URL is kept for compatibility with older .env files
	if cfg.Database.URL == "" {
		cfg.Database.URL = os.Getenv("DB_URL")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	// Database validation
	// A csv report source never opens the database; "orders load" checks
	// the URL itself.
	if c.Database.URL == "" && c.Report.Source != SourceCSV {
		errs = append(errs, "DATABASE_URL is required")
	}
	if c.Database.MaxConns <= 0 {
		errs = append(errs, "DB_MAX_CONNS must be positive")
	}
	if c.Database.MinConns < 0 {
		errs = append(errs, "DB_MIN_CONNS must be non-negative")
	}
	if c.Database.MaxConns < c.Database.MinConns {
		errs = append(errs, fmt.Sprintf("DB_MAX_CONNS (%d) must be >= DB_MIN_CONNS (%d)",
			c.Database.MaxConns, c.Database.MinConns))
	}

	// Input validation
	if strings.TrimSpace(c.Input.Path) == "" {
		errs = append(errs, "ORDERS_CSV must not be empty")
	}
	if c.Input.Timeout <= 0 {
		errs = append(errs, "LOAD_TIMEOUT must be positive")
	}

	// Report validation
	if strings.TrimSpace(c.Report.Dir) == "" {
		errs = append(errs, "REPORTS_DIR must not be empty")
	}
	if c.Report.Timeout <= 0 {
		errs = append(errs, "REPORT_TIMEOUT must be positive")
	}
	if c.Report.Source != SourcePostgres && c.Report.Source != SourceCSV {
		errs = append(errs, fmt.Sprintf("REPORT_SOURCE (%q) must be one of: postgres, csv", c.Report.Source))
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a safe string representation of the config for logging.
// The database URL is masked.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Database: {URL: [MASKED], MaxConns: %d, MinConns: %d}, ",
		c.Database.MaxConns, c.Database.MinConns))
	b.WriteString(fmt.Sprintf("Input: {Path: %q, Timeout: %s}, ", c.Input.Path, c.Input.Timeout))
	b.WriteString(fmt.Sprintf("Report: {Dir: %q, Timeout: %s, Workbook: %v, Source: %q}, ",
		c.Report.Dir, c.Report.Timeout, c.Report.Workbook, c.Report.Source))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q}",
		c.Logging.Level, c.Logging.Format))
	b.WriteString("}")
	return b.String()
}
