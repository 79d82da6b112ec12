package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	LLMBaseURL         string
	LLMModelName       string
	LLMAPIKey          string
	LLMTimeout         time.Duration
	EmbeddingBaseURL   string
	EmbeddingModelName string
	DBPath             string
	QdrantURL          string
	QdrantCollection   string
	QdrantVectorSize   int
	ScoreThreshold     float32
	HistoryLimit       int
	APIPort            string
	LogLevel           slog.Level
	LogFormat          string
}

// Load reads configuration from environment variables and returns a Config.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or a parent, it is loaded
// automatically; variables already set take precedence over .env values.
func Load() (*Config, error) {
	_ = godotenv.Load() // current directory first

	// Walk up to the project root looking for a .env.
	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		LLMBaseURL:         getEnv("LLM_BASE_URL", "http://localhost:8080"),
		LLMModelName:       getEnv("LLM_MODEL", "gemini-pro"),
		LLMAPIKey:          getEnv("LLM_API_KEY", "dummy-key"),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "granite-embedding-278m-multilingual"),
		DBPath:             getEnv("DB_PATH", "./data/lawadvisor.db"),
		QdrantURL:          getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection:   getEnv("QDRANT_COLLECTION", "law_data"),
		APIPort:            getEnv("API_PORT", "9000"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
	}

	// Must match the output dimensionality of the embedding model; a mismatch
	// makes every similarity score meaningless, so there is no default.
	vectorSizeStr := getEnv("QDRANT_VECTOR_SIZE", "")
	if vectorSizeStr == "" {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE is required")
	}
	vectorSize, err := strconv.Atoi(vectorSizeStr)
	if err != nil {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be a valid integer: %w", err)
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be greater than 0")
	}
	cfg.QdrantVectorSize = vectorSize

	threshold, err := parseFloat(getEnv("SCORE_THRESHOLD", "0.60"))
	if err != nil {
		return nil, fmt.Errorf("SCORE_THRESHOLD must be a valid number: %w", err)
	}
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("SCORE_THRESHOLD must be in [0,1], got %v", threshold)
	}
	cfg.ScoreThreshold = threshold

	historyLimit, err := strconv.Atoi(getEnv("HISTORY_LIMIT", "10"))
	if err != nil {
		return nil, fmt.Errorf("HISTORY_LIMIT must be a valid integer: %w", err)
	}
	if historyLimit < 0 {
		return nil, fmt.Errorf("HISTORY_LIMIT must not be negative")
	}
	cfg.HistoryLimit = historyLimit

	timeoutSecs, err := strconv.Atoi(getEnv("LLM_TIMEOUT_SECONDS", "60"))
	if err != nil {
		return nil, fmt.Errorf("LLM_TIMEOUT_SECONDS must be a valid integer: %w", err)
	}
	if timeoutSecs <= 0 {
		return nil, fmt.Errorf("LLM_TIMEOUT_SECONDS must be greater than 0")
	}
	cfg.LLMTimeout = time.Duration(timeoutSecs) * time.Second

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	// Create the data directory if it doesn't exist (for the DB file).
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

func parseFloat(s string) (float32, error) {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, err
	}
	return float32(f), nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error; got %q", s)
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
