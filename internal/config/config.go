package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth
	OutlinerAPIKey string

	// Batch mode directories
	InputDir  string
	OutputDir string

	// Worker pool
	WorkerCount        int
	MaxQueueSize       int
	MaxConcurrentStore int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// PDF
	PDFFallbackPdftotext bool
	PdftotextBin         string

	// Output labels
	Persona     string
	JobToBeDone string

	// Pathstore connection (optional sink)
	PathstoreURL    string
	PathstoreAPIKey string

	// Postgres (optional sink)
	DatabaseURL string
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		OutlinerAPIKey: os.Getenv("OUTLINER_API_KEY"),

		InputDir:  envOr("INPUT_DIR", "/app/input"),
		OutputDir: envOr("OUTPUT_DIR", "/app/output"),

		WorkerCount:        envInt("WORKER_COUNT", 4),
		MaxQueueSize:       envInt("MAX_QUEUE_SIZE", 100),
		MaxConcurrentStore: envInt("MAX_CONCURRENT_STORE", 4),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", false),
		PdftotextBin:         envOr("PDFTOTEXT_BIN", "pdftotext"),

		Persona:     os.Getenv("PERSONA"),
		JobToBeDone: os.Getenv("JOB_TO_BE_DONE"),

		PathstoreURL:    os.Getenv("PATHSTORE_URL"),
		PathstoreAPIKey: os.Getenv("PATHSTORE_API_KEY"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxConcurrentStore <= 0 {
		cfg.MaxConcurrentStore = 4
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

// Validate checks the settings the HTTP server needs. Batch mode needs none.
func (c Config) Validate() error {
	if c.OutlinerAPIKey == "" {
		return fmt.Errorf("OUTLINER_API_KEY is required")
	}
	if c.PathstoreURL != "" && c.PathstoreAPIKey == "" {
		return fmt.Errorf("PATHSTORE_API_KEY is required when PATHSTORE_URL is set")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
