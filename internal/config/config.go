package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Azure OpenAI connection
	OpenAIEndpoint   string
	OpenAIKey        string
	OpenAIDeployment string
	OpenAIAPIVersion string

	// Vision OCR deployment. Empty means OCR is not configured and image
	// uploads are rejected.
	VisionDeployment string

	// Auth (optional — endpoints are open when unset)
	ServiceAPIKey string

	// Upload limits
	MaxUploadBytes int64

	// Chunking
	MaxTokensPerChunk int

	// Translation calls
	MaxConcurrentTranslate int
	TranslateTimeout       time.Duration
	OCRTimeout             time.Duration

	// Download window
	ResultTTL time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		OpenAIEndpoint:   os.Getenv("AZURE_OPENAI_ENDPOINT"),
		OpenAIKey:        os.Getenv("AZURE_OPENAI_API_KEY"),
		OpenAIDeployment: os.Getenv("AZURE_OPENAI_DEPLOYMENT"),
		OpenAIAPIVersion: envOr("AZURE_OPENAI_API_VERSION", "2024-08-01-preview"),

		VisionDeployment: os.Getenv("AZURE_OPENAI_VISION_DEPLOYMENT"),

		ServiceAPIKey: os.Getenv("SERVICE_API_KEY"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		MaxTokensPerChunk: envInt("MAX_TOKENS_PER_CHUNK", 1500),

		MaxConcurrentTranslate: envInt("MAX_CONCURRENT_TRANSLATE", 4),
		TranslateTimeout:       envDuration("TRANSLATE_TIMEOUT", 120*time.Second),
		OCRTimeout:             envDuration("OCR_TIMEOUT", 90*time.Second),

		ResultTTL: envDuration("RESULT_TTL", 1*time.Hour),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.MaxTokensPerChunk <= 0 {
		cfg.MaxTokensPerChunk = 1500
	}
	if cfg.MaxConcurrentTranslate <= 0 {
		cfg.MaxConcurrentTranslate = 4
	}
	if cfg.TranslateTimeout <= 0 {
		cfg.TranslateTimeout = 120 * time.Second
	}
	if cfg.OCRTimeout <= 0 {
		cfg.OCRTimeout = 90 * time.Second
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 1 * time.Hour
	}

	return cfg
}

// Validate fails fast on missing translation settings. The vision deployment
// is deliberately not required: its absence only disables image uploads.
func (c Config) Validate() error {
	if c.OpenAIEndpoint == "" {
		return fmt.Errorf("AZURE_OPENAI_ENDPOINT is required")
	}
	if c.OpenAIKey == "" {
		return fmt.Errorf("AZURE_OPENAI_API_KEY is required")
	}
	if c.OpenAIDeployment == "" {
		return fmt.Errorf("AZURE_OPENAI_DEPLOYMENT is required")
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

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
