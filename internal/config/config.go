// Package config loads application configuration from environment
// variables. Configuration is immutable after process start.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Config holds every runtime setting. Load fills it from the environment.
type Config struct {
	// OpenRouter (extraction, ATS rewrite, job scoring)
	OpenRouterBaseURL string `validate:"required,url"`
	OpenRouterAPIKey  string
	DefaultLLMModel   string  `validate:"required"`
	LLMTemperature    float32 `validate:"gte=0,lte=2"`
	LLMMaxTokens      int     `validate:"gt=0"`

	// Gemini (chat, intent classification)
	GeminiAPIKey string

	// Adzuna (job listings)
	AdzunaAppID  string
	AdzunaAppKey string

	// Storage
	DatabaseURL string

	// HTTP
	Port int `validate:"gt=0,lte=65535"`

	// Uploads
	MaxPDFSizeMB int `validate:"gt=0"`
}

// Load reads configuration from the environment, applying defaults for
// anything unset, and validates the result.
func Load() (*Config, error) {
	cfg := &Config{
		OpenRouterBaseURL: envOr("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		OpenRouterAPIKey:  os.Getenv("OPENROUTER_API_KEY"),
		DefaultLLMModel:   envOr("DEFAULT_LLM_MODEL", "google/gemma-3-12b-it:free"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		AdzunaAppID:       os.Getenv("ADZUNA_APP_ID"),
		AdzunaAppKey:      os.Getenv("ADZUNA_APP_KEY"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
	}

	var err error
	if cfg.LLMTemperature, err = envFloat32("LLM_TEMPERATURE", 0.3); err != nil {
		return nil, err
	}
	if cfg.LLMMaxTokens, err = envInt("LLM_MAX_TOKENS", 8192); err != nil {
		return nil, err
	}
	if cfg.Port, err = envInt("PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.MaxPDFSizeMB, err = envInt("MAX_PDF_SIZE_MB", 10); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func envFloat32(key string, fallback float32) (float32, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return float32(f), nil
}
