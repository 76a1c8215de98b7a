// Package config provides configuration for arcanus.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the server configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Database
	DatabaseURL string

	// Completion provider
	AnthropicAPIKey  string
	AnthropicModel   string
	AnthropicBaseURL string
	MaxTokens        int
	LLMTimeout       time.Duration

	// Portrait generation
	OpenAIAPIKey    string
	PortraitDir     string
	PortraitBaseURL string

	// Auth
	AuthSecret string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:         getEnvInt("HTTP_PORT", 8080),
		DatabaseURL:      getEnv("DATABASE_URL", "file:arcanus.db?cache=shared&mode=rwc"),
		AnthropicAPIKey:  getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:   getEnv("ANTHROPIC_MODEL", ""),
		AnthropicBaseURL: getEnv("ANTHROPIC_BASE_URL", ""),
		MaxTokens:        getEnvInt("MAX_TOKENS", 1024),
		LLMTimeout:       time.Duration(getEnvInt("LLM_TIMEOUT_MS", 60000)) * time.Millisecond,
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		PortraitDir:      getEnv("PORTRAIT_DIR", "data/portraits"),
		PortraitBaseURL:  getEnv("PORTRAIT_BASE_URL", "/portraits"),
		AuthSecret:       getEnv("AUTH_SECRET", "dev-secret-change-me"),
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
