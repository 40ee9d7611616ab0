// Package config provides configuration loading for the stock tracker.
// Settings come from environment variables, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults
const (
	DefaultQuoteBaseURL    = "https://query1.finance.yahoo.com"
	DefaultHistoryRange    = "1mo"
	DefaultHistoryInterval = "1d"
	DefaultRequestTimeout  = 15 * time.Second
	DefaultLogFile         = "tracker.log"
)

// Config holds all application configuration
type Config struct {
	// Quote provider
	QuoteBaseURL    string
	HistoryRange    string
	HistoryInterval string
	RequestTimeout  time.Duration

	// UI
	DarkMode      bool
	DefaultSymbol string
	LogFile       string

	// Optional snapshot archive; empty disables it
	DatabaseURL string
}

// ArchiveEnabled reports whether a database is configured.
func (c *Config) ArchiveEnabled() bool {
	return c.DatabaseURL != ""
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		QuoteBaseURL:    envOr("TRACKER_QUOTE_BASE_URL", DefaultQuoteBaseURL),
		HistoryRange:    envOr("TRACKER_HISTORY_RANGE", DefaultHistoryRange),
		HistoryInterval: envOr("TRACKER_HISTORY_INTERVAL", DefaultHistoryInterval),
		RequestTimeout:  DefaultRequestTimeout,
		DefaultSymbol:   strings.TrimSpace(os.Getenv("TRACKER_DEFAULT_SYMBOL")),
		LogFile:         envOr("TRACKER_LOG_FILE", DefaultLogFile),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
	}
	cfg.QuoteBaseURL = strings.TrimRight(cfg.QuoteBaseURL, "/")

	if v := os.Getenv("TRACKER_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parse TRACKER_REQUEST_TIMEOUT: %w", err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("TRACKER_REQUEST_TIMEOUT must be positive, got %s", d)
		}
		cfg.RequestTimeout = d
	}

	if v := os.Getenv("TRACKER_DARK_MODE"); v != "" {
		dark, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("parse TRACKER_DARK_MODE: %w", err)
		}
		cfg.DarkMode = dark
	}

	return cfg, nil
}

// Load reads an optional .env file and then the environment.
// Variables already set in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	cfg, err := LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("load from env: %w", err)
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
