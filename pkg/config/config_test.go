package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var trackerVars = []string{
	"TRACKER_QUOTE_BASE_URL",
	"TRACKER_HISTORY_RANGE",
	"TRACKER_HISTORY_INTERVAL",
	"TRACKER_REQUEST_TIMEOUT",
	"TRACKER_DARK_MODE",
	"TRACKER_DEFAULT_SYMBOL",
	"TRACKER_LOG_FILE",
	"DATABASE_URL",
}

// clearEnv blanks every tracker variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range trackerVars {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	if cfg.QuoteBaseURL != DefaultQuoteBaseURL {
		t.Errorf("QuoteBaseURL = %v, want %v", cfg.QuoteBaseURL, DefaultQuoteBaseURL)
	}
	if cfg.HistoryRange != "1mo" {
		t.Errorf("HistoryRange = %v, want 1mo", cfg.HistoryRange)
	}
	if cfg.HistoryInterval != "1d" {
		t.Errorf("HistoryInterval = %v, want 1d", cfg.HistoryInterval)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Errorf("RequestTimeout = %v, want 15s", cfg.RequestTimeout)
	}
	if cfg.DarkMode {
		t.Error("DarkMode should default to false")
	}
	if cfg.ArchiveEnabled() {
		t.Error("ArchiveEnabled() should be false without DATABASE_URL")
	}
}

func TestLoadFromEnv_WithAllVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRACKER_QUOTE_BASE_URL", "http://localhost:9999/")
	t.Setenv("TRACKER_REQUEST_TIMEOUT", "3s")
	t.Setenv("TRACKER_DARK_MODE", "true")
	t.Setenv("TRACKER_DEFAULT_SYMBOL", " BBCA.JK ")
	t.Setenv("DATABASE_URL", "postgres://localhost/tracker")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	if cfg.QuoteBaseURL != "http://localhost:9999" {
		t.Errorf("QuoteBaseURL = %v, want trailing slash trimmed", cfg.QuoteBaseURL)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Errorf("RequestTimeout = %v, want 3s", cfg.RequestTimeout)
	}
	if !cfg.DarkMode {
		t.Error("DarkMode = false, want true")
	}
	if cfg.DefaultSymbol != "BBCA.JK" {
		t.Errorf("DefaultSymbol = %q, want BBCA.JK", cfg.DefaultSymbol)
	}
	if !cfg.ArchiveEnabled() {
		t.Error("ArchiveEnabled() = false, want true")
	}
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad timeout", "TRACKER_REQUEST_TIMEOUT", "soon"},
		{"negative timeout", "TRACKER_REQUEST_TIMEOUT", "-1s"},
		{"bad dark mode", "TRACKER_DARK_MODE", "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			if _, err := LoadFromEnv(); err == nil {
				t.Errorf("LoadFromEnv() should fail for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	content := "TRACKER_DEFAULT_SYMBOL=TLKM.JK\nTRACKER_DARK_MODE=1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Cleanup(func() {
		os.Unsetenv("TRACKER_DEFAULT_SYMBOL")
		os.Unsetenv("TRACKER_DARK_MODE")
	})

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DefaultSymbol != "TLKM.JK" {
		t.Errorf("DefaultSymbol = %q, want TLKM.JK", cfg.DefaultSymbol)
	}
	if !cfg.DarkMode {
		t.Error("DarkMode = false, want true")
	}
}

func TestLoad_MissingEnvFile(t *testing.T) {
	clearEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("Load() with missing file error = %v, want nil", err)
	}
}
