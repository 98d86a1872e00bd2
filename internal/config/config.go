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

// Config holds all configuration for the application. It is built once at
// startup and passed explicitly into constructors; nothing reads ambient
// globals after this.
type Config struct {
	LLMBaseURL   string
	LLMModelName string
	LLMAPIKey    string

	EmbeddingBaseURL    string
	EmbeddingModelName  string
	EmbeddingVectorSize int

	DBPath    string
	IndexPath string

	// VectorBackend selects where the index is persisted: "file" (default,
	// atomic replace) or "qdrant" (multi-session deployments).
	VectorBackend    string
	QdrantURL        string
	QdrantCollection string

	APIPort         string
	MaxUploadBytes  int64
	ExternalTimeout time.Duration

	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from environment variables. It applies defaults
// for optional fields and validates required ones. A .env file in the
// current directory or a parent is loaded first; variables already set in
// the environment take precedence.
func Load() (*Config, error) {
	loadDotEnv()

	cfg := &Config{
		LLMBaseURL:   getEnv("LLM_BASE_URL", "https://api.groq.com/openai"),
		LLMModelName: getEnv("LLM_MODEL", "llama-3.3-70b-versatile"),
		LLMAPIKey:    getEnv("GROQ_API_KEY", ""),

		EmbeddingBaseURL: getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		// all-MiniLM-L6-v2 produces 384-dimension sentence embeddings; the
		// vector size below must match whatever model is configured here.
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "all-MiniLM-L6-v2"),

		DBPath:    getEnv("DB_PATH", "./data/pdfchat.db"),
		IndexPath: getEnv("INDEX_PATH", "./data/index.gob"),

		VectorBackend:    getEnv("VECTOR_BACKEND", "file"),
		QdrantURL:        getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection: getEnv("QDRANT_COLLECTION", "chunks"),

		APIPort:   getEnv("API_PORT", "9000"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}

	if cfg.LLMAPIKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY is required")
	}

	switch cfg.VectorBackend {
	case "file", "qdrant":
	default:
		return nil, fmt.Errorf("VECTOR_BACKEND must be \"file\" or \"qdrant\", got %q", cfg.VectorBackend)
	}

	vectorSize, err := intEnv("EMBEDDING_VECTOR_SIZE", 384)
	if err != nil {
		return nil, err
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("EMBEDDING_VECTOR_SIZE must be greater than 0")
	}
	cfg.EmbeddingVectorSize = vectorSize

	maxUpload, err := intEnv("MAX_UPLOAD_BYTES", 32<<20)
	if err != nil {
		return nil, err
	}
	cfg.MaxUploadBytes = int64(maxUpload)

	timeoutSecs, err := intEnv("EXTERNAL_TIMEOUT_SECONDS", 60)
	if err != nil {
		return nil, err
	}
	cfg.ExternalTimeout = time.Duration(timeoutSecs) * time.Second

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	// The index and metadata DB live under the same data directory.
	for _, p := range []string{cfg.DBPath, cfg.IndexPath} {
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	return cfg, nil
}

// loadDotEnv loads a .env file from the current directory, or walks up a few
// levels to find one at the project root.
func loadDotEnv() {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err != nil {
		return
	}
	dir := wd
	for i := 0; i < 5; i++ {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func intEnv(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return value, nil
}

func parseLogLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", raw)
	}
}
