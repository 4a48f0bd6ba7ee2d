package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT",
		"AZURE_OPENAI_ENDPOINT",
		"AZURE_OPENAI_API_KEY",
		"AZURE_OPENAI_DEPLOYMENT",
		"AZURE_OPENAI_API_VERSION",
		"AZURE_OPENAI_VISION_DEPLOYMENT",
		"SERVICE_API_KEY",
		"MAX_UPLOAD_BYTES",
		"MAX_TOKENS_PER_CHUNK",
		"MAX_CONCURRENT_TRANSLATE",
		"TRANSLATE_TIMEOUT",
		"OCR_TIMEOUT",
		"RESULT_TTL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	if cfg.Port != "8090" {
		t.Errorf("Port: got %q", cfg.Port)
	}
	if cfg.OpenAIAPIVersion != "2024-08-01-preview" {
		t.Errorf("APIVersion: got %q", cfg.OpenAIAPIVersion)
	}
	if cfg.MaxUploadBytes != 52428800 {
		t.Errorf("MaxUploadBytes: got %d", cfg.MaxUploadBytes)
	}
	if cfg.MaxTokensPerChunk != 1500 {
		t.Errorf("MaxTokensPerChunk: got %d", cfg.MaxTokensPerChunk)
	}
	if cfg.MaxConcurrentTranslate != 4 {
		t.Errorf("MaxConcurrentTranslate: got %d", cfg.MaxConcurrentTranslate)
	}
	if cfg.TranslateTimeout != 120*time.Second {
		t.Errorf("TranslateTimeout: got %v", cfg.TranslateTimeout)
	}
	if cfg.ResultTTL != time.Hour {
		t.Errorf("ResultTTL: got %v", cfg.ResultTTL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("MAX_TOKENS_PER_CHUNK", "800")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")
	t.Setenv("TRANSLATE_TIMEOUT", "30s")
	t.Setenv("AZURE_OPENAI_VISION_DEPLOYMENT", "gpt-4o-vision")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("Port: got %q", cfg.Port)
	}
	if cfg.MaxTokensPerChunk != 800 {
		t.Errorf("MaxTokensPerChunk: got %d", cfg.MaxTokensPerChunk)
	}
	if cfg.MaxUploadBytes != 1048576 {
		t.Errorf("MaxUploadBytes: got %d", cfg.MaxUploadBytes)
	}
	if cfg.TranslateTimeout != 30*time.Second {
		t.Errorf("TranslateTimeout: got %v", cfg.TranslateTimeout)
	}
	if cfg.VisionDeployment != "gpt-4o-vision" {
		t.Errorf("VisionDeployment: got %q", cfg.VisionDeployment)
	}
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("MAX_TOKENS_PER_CHUNK", "lots")
	t.Setenv("TRANSLATE_TIMEOUT", "soon")
	t.Setenv("MAX_UPLOAD_BYTES", "-5")

	cfg := Load()
	if cfg.MaxTokensPerChunk != 1500 {
		t.Errorf("MaxTokensPerChunk: got %d", cfg.MaxTokensPerChunk)
	}
	if cfg.TranslateTimeout != 120*time.Second {
		t.Errorf("TranslateTimeout: got %v", cfg.TranslateTimeout)
	}
	if cfg.MaxUploadBytes != 52428800 {
		t.Errorf("negative MaxUploadBytes must fall back, got %d", cfg.MaxUploadBytes)
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{
		OpenAIEndpoint:   "https://example.openai.azure.com",
		OpenAIKey:        "key",
		OpenAIDeployment: "gpt-4o",
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	for _, tc := range []struct {
		name string
		mod  func(*Config)
	}{
		{"missing endpoint", func(c *Config) { c.OpenAIEndpoint = "" }},
		{"missing key", func(c *Config) { c.OpenAIKey = "" }},
		{"missing deployment", func(c *Config) { c.OpenAIDeployment = "" }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := cfg
			tc.mod(&c)
			if err := c.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
