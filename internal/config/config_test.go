package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.OpenRouterBaseURL)
	assert.Equal(t, "google/gemma-3-12b-it:free", cfg.DefaultLLMModel)
	assert.InDelta(t, 0.3, float64(cfg.LLMTemperature), 1e-6)
	assert.Equal(t, 8192, cfg.LLMMaxTokens)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 10, cfg.MaxPDFSizeMB)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("OPENROUTER_BASE_URL", "https://llm.internal.example/api/v1")
	t.Setenv("OPENROUTER_API_KEY", "sk-test")
	t.Setenv("DEFAULT_LLM_MODEL", "meta-llama/llama-3.3-70b-instruct:free")
	t.Setenv("LLM_TEMPERATURE", "0.7")
	t.Setenv("LLM_MAX_TOKENS", "4096")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://llm.internal.example/api/v1", cfg.OpenRouterBaseURL)
	assert.Equal(t, "sk-test", cfg.OpenRouterAPIKey)
	assert.Equal(t, "meta-llama/llama-3.3-70b-instruct:free", cfg.DefaultLLMModel)
	assert.InDelta(t, 0.7, float64(cfg.LLMTemperature), 1e-6)
	assert.Equal(t, 4096, cfg.LLMMaxTokens)
	assert.Equal(t, 9090, cfg.Port)
}

func TestLoadRejectsMalformedNumbers(t *testing.T) {
	t.Setenv("LLM_MAX_TOKENS", "lots")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM_MAX_TOKENS")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("PORT", "70000")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadRejectsBadBaseURL(t *testing.T) {
	t.Setenv("OPENROUTER_BASE_URL", "not a url")

	_, err := Load()
	require.Error(t, err)
}
