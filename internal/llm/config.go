package llm

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the judgment pipeline.
type Config struct {
	// BaseURL is the OpenAI-compatible endpoint serving /v1.
	BaseURL string
	// Model is the fallback identifier used when discovery yields none.
	Model string
	// TimeoutMs bounds the total wall time of both network calls.
	TimeoutMs int
	// MaxDiffBytes caps the collected diff; larger input aborts the run.
	MaxDiffBytes int
}

// DefaultConfig returns a Config with sensible defaults for a local model
// server.
func DefaultConfig() Config {
	return Config{
		BaseURL:      "http://localhost:11434",
		Model:        "llama3.2",
		TimeoutMs:    30000,
		MaxDiffBytes: 500000,
	}
}

// LoadConfig reads configuration from environment variables, falling back
// to defaults for unset or malformed values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("GANDALF_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("GANDALF_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("GANDALF_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("GANDALF_MAX_DIFF_BYTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxDiffBytes = n
		}
	}

	return cfg
}

// Timeout returns the shared deadline for the model exchange.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}
