package database

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("postgres://localhost/tracker")

	if cfg.URL != "postgres://localhost/tracker" {
		t.Errorf("DefaultConfig() URL = %v", cfg.URL)
	}

	if cfg.MaxOpenConns != 4 {
		t.Errorf("DefaultConfig() MaxOpenConns = %v, want 4", cfg.MaxOpenConns)
	}

	if cfg.MaxIdleConns != 2 {
		t.Errorf("DefaultConfig() MaxIdleConns = %v, want 2", cfg.MaxIdleConns)
	}

	if cfg.ConnMaxLifetime != 5*time.Minute {
		t.Errorf("DefaultConfig() ConnMaxLifetime = %v, want 5m", cfg.ConnMaxLifetime)
	}
}

func TestNew_MissingURL(t *testing.T) {
	_, err := New(context.Background(), DefaultConfig(""))
	if err == nil {
		t.Error("New() should return error for empty URL")
	}
}

func TestSchema_KeysOnTickerAndDay(t *testing.T) {
	if !strings.Contains(schema, "PRIMARY KEY (ticker, trade_date)") {
		t.Error("schema must key quote_history on (ticker, trade_date) for upserts")
	}
}
