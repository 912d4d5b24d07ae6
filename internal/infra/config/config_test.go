package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	envVars := []string{
		"ENV",
		"PORT",
		"OPENAI_API_URL",
		"OPENAI_API_KEY",
		"OPENAI_API_KEY_FILE",
		"OPENAI_MODEL",
		"OPENAI_TIMEOUT_SECONDS",
		"GUARDRAIL_ENABLED",
		"GUARDRAIL_MAX_TOKENS",
		"RECOMMEND_MAX_TOKENS",
		"RECOMMEND_TIMEOUT_SECONDS",
		"ENRICH_CONCURRENCY",
		"SCRAPE_TIMEOUT_SECONDS",
		"SCRAPE_CACHE_SIZE",
		"SCRAPE_CACHE_TTL_HOURS",
		"SCRAPE_RATE_PER_SECOND",
		"OTEL_LOGS_ENABLED",
	}
	for _, key := range envVars {
		_ = os.Unsetenv(key)
	}

	cfg := Load()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "9020", cfg.Port)
	assert.Equal(t, "https://api.openai.com/v1/chat/completions", cfg.OpenAI.URL)
	assert.Empty(t, cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-4", cfg.OpenAI.Model)
	assert.Equal(t, 25, cfg.OpenAI.Timeout)
	assert.True(t, cfg.Guard.Enabled, "guardrail should be enabled by default")
	assert.Equal(t, 200, cfg.Guard.MaxTokens)
	assert.Equal(t, 20, cfg.Reco.MaxTokens)
	assert.Equal(t, 30, cfg.Reco.TimeoutSeconds)
	assert.Equal(t, 4, cfg.Reco.Concurrency)
	assert.Equal(t, 15, cfg.Scrape.TimeoutSeconds)
	assert.Equal(t, 256, cfg.Scrape.CacheSize)
	assert.Equal(t, 24, cfg.Scrape.CacheTTLHours)
	assert.Equal(t, 2.0, cfg.Scrape.RatePerSecond)
	assert.False(t, cfg.OTelLogsEnabled)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("GUARDRAIL_ENABLED", "false")
	t.Setenv("RECOMMEND_TIMEOUT_SECONDS", "10")
	t.Setenv("SCRAPE_RATE_PER_SECOND", "0.5")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.False(t, cfg.Guard.Enabled)
	assert.Equal(t, 10, cfg.Reco.TimeoutSeconds)
	assert.Equal(t, 0.5, cfg.Scrape.RatePerSecond)
}

func TestLoad_APIKeyFromFile(t *testing.T) {
	keyFile := filepath.Join(t.TempDir(), "openai_key")
	require.NoError(t, os.WriteFile(keyFile, []byte("sk-test-key\n"), 0o600))

	_ = os.Unsetenv("OPENAI_API_KEY")
	t.Setenv("OPENAI_API_KEY_FILE", keyFile)

	cfg := Load()

	assert.Equal(t, "sk-test-key", cfg.OpenAI.APIKey, "file content should be trimmed")
}

func TestLoad_APIKeyEnvWinsOverFile(t *testing.T) {
	keyFile := filepath.Join(t.TempDir(), "openai_key")
	require.NoError(t, os.WriteFile(keyFile, []byte("sk-from-file"), 0o600))

	t.Setenv("OPENAI_API_KEY", "sk-from-env")
	t.Setenv("OPENAI_API_KEY_FILE", keyFile)

	cfg := Load()

	assert.Equal(t, "sk-from-env", cfg.OpenAI.APIKey)
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		fallback int
		expected int
	}{
		{
			name:     "valid value",
			envValue: "42",
			fallback: 10,
			expected: 42,
		},
		{
			name:     "invalid value uses fallback",
			envValue: "not-a-number",
			fallback: 10,
			expected: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_INT", tt.envValue)

			result := getEnvInt("TEST_INT", tt.fallback)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGetEnvFloat(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		fallback float64
		expected float64
	}{
		{
			name:     "valid value",
			envValue: "1.5",
			fallback: 2.0,
			expected: 1.5,
		},
		{
			name:     "invalid value uses fallback",
			envValue: "invalid",
			fallback: 2.0,
			expected: 2.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_FLOAT", tt.envValue)

			result := getEnvFloat("TEST_FLOAT", tt.fallback)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "true")
	assert.True(t, getEnvBool("TEST_BOOL", false))

	t.Setenv("TEST_BOOL", "not-a-bool")
	assert.True(t, getEnvBool("TEST_BOOL", true), "unparseable value uses fallback")
}
