package config

import (
	"os"
	"strconv"
	"strings"
)

// Config carries every tunable the service reads from the environment.
type Config struct {
	Env             string
	Port            string
	OpenAI          OpenAIConfig
	Guard           GuardrailConfig
	Reco            RecommendConfig
	Scrape          ScrapeConfig
	OTelLogsEnabled bool
}

// OpenAIConfig locates the generative backend.
type OpenAIConfig struct {
	URL     string
	APIKey  string
	Model   string
	Timeout int // seconds
}

// GuardrailConfig tunes the content-safety classifier.
type GuardrailConfig struct {
	Enabled   bool
	MaxTokens int
}

// RecommendConfig tunes the recommendation orchestrator.
type RecommendConfig struct {
	MaxTokens      int
	TimeoutSeconds int
	Concurrency    int
}

// ScrapeConfig tunes the external metadata extractor.
type ScrapeConfig struct {
	TimeoutSeconds int
	CacheSize      int
	CacheTTLHours  int
	RatePerSecond  float64
}

func Load() *Config {
	return &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "9020"),
		OpenAI: OpenAIConfig{
			URL:     getEnv("OPENAI_API_URL", "https://api.openai.com/v1/chat/completions"),
			APIKey:  getSecret("OPENAI_API_KEY", "OPENAI_API_KEY_FILE", ""),
			Model:   getEnv("OPENAI_MODEL", "gpt-4"),
			Timeout: getEnvInt("OPENAI_TIMEOUT_SECONDS", 25),
		},
		Guard: GuardrailConfig{
			Enabled:   getEnvBool("GUARDRAIL_ENABLED", true),
			MaxTokens: getEnvInt("GUARDRAIL_MAX_TOKENS", 200),
		},
		Reco: RecommendConfig{
			MaxTokens:      getEnvInt("RECOMMEND_MAX_TOKENS", 20),
			TimeoutSeconds: getEnvInt("RECOMMEND_TIMEOUT_SECONDS", 30),
			Concurrency:    getEnvInt("ENRICH_CONCURRENCY", 4),
		},
		Scrape: ScrapeConfig{
			TimeoutSeconds: getEnvInt("SCRAPE_TIMEOUT_SECONDS", 15),
			CacheSize:      getEnvInt("SCRAPE_CACHE_SIZE", 256),
			CacheTTLHours:  getEnvInt("SCRAPE_CACHE_TTL_HOURS", 24),
			RatePerSecond:  getEnvFloat("SCRAPE_RATE_PER_SECOND", 2),
		},
		OTelLogsEnabled: getEnvBool("OTEL_LOGS_ENABLED", false),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// getSecret resolves a credential either directly from envKey or from the
// file named by fileEnvKey.
func getSecret(envKey, fileEnvKey, fallback string) string {
	if value, ok := os.LookupEnv(envKey); ok {
		return value
	}
	if filePath, ok := os.LookupEnv(fileEnvKey); ok {
		content, err := os.ReadFile(filePath)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
