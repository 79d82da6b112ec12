package config

import (
	"log/slog"
	"path/filepath"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("QDRANT_VECTOR_SIZE", "768")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "test.db"))
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.QdrantCollection != "law_data" {
		t.Errorf("QdrantCollection = %q, want law_data", cfg.QdrantCollection)
	}
	if cfg.ScoreThreshold != 0.60 {
		t.Errorf("ScoreThreshold = %v, want 0.60", cfg.ScoreThreshold)
	}
	if cfg.HistoryLimit != 10 {
		t.Errorf("HistoryLimit = %d, want 10", cfg.HistoryLimit)
	}
	if cfg.APIPort != "9000" {
		t.Errorf("APIPort = %q, want 9000", cfg.APIPort)
	}
	if cfg.LLMTimeout != 60*time.Second {
		t.Errorf("LLMTimeout = %v, want 60s", cfg.LLMTimeout)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
}

func TestLoadRequiresVectorSize(t *testing.T) {
	t.Setenv("QDRANT_VECTOR_SIZE", "")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "test.db"))

	if _, err := Load(); err == nil {
		t.Error("Load() expected error for missing QDRANT_VECTOR_SIZE")
	}
}

func TestLoadRejectsInvalidVectorSize(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"not a number", "abc"},
		{"zero", "0"},
		{"negative", "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("QDRANT_VECTOR_SIZE", tt.value)
			t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "test.db"))

			if _, err := Load(); err == nil {
				t.Errorf("Load() expected error for QDRANT_VECTOR_SIZE=%q", tt.value)
			}
		})
	}
}

func TestLoadRejectsOutOfRangeThreshold(t *testing.T) {
	tests := []string{"-0.1", "1.5", "abc"}

	for _, value := range tests {
		t.Run(value, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv("SCORE_THRESHOLD", value)

			if _, err := Load(); err == nil {
				t.Errorf("Load() expected error for SCORE_THRESHOLD=%q", value)
			}
		})
	}
}

func TestLoadCustomThreshold(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SCORE_THRESHOLD", "0.75")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ScoreThreshold != 0.75 {
		t.Errorf("ScoreThreshold = %v, want 0.75", cfg.ScoreThreshold)
	}
}

func TestLoadRejectsInvalidLogLevel(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LOG_LEVEL", "loud")

	if _, err := Load(); err == nil {
		t.Error("Load() expected error for invalid LOG_LEVEL")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"ERROR", slog.LevelError, false},
		{"loud", 0, true},
	}

	for _, tt := range tests {
		got, err := parseLogLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseLogLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
