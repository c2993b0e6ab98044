package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds process-wide settings. Per-room OpenRouter API keys arrive
// in the createRoom payload; APIKey here is only a fallback when a client
// omits one.
type Config struct {
	Port     string
	LogLevel string

	ProviderURL     string
	ProviderModel   string
	APIKey          string
	ProviderTimeout time.Duration
}

func Load() *Config {
	_ = godotenv.Load()

	timeout, err := strconv.Atoi(getEnv("PROVIDER_TIMEOUT", "10"))
	if err != nil || timeout <= 0 {
		timeout = 10
	}

	return &Config{
		Port:            getEnv("PORT", "3000"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ProviderURL:     getEnv("OPENROUTER_URL", "https://openrouter.ai/api/v1/chat/completions"),
		ProviderModel:   getEnv("OPENROUTER_MODEL", "google/gemini-2.0-flash-lite-preview-02-05:free"),
		APIKey:          getEnv("OPENROUTER_API_KEY", ""),
		ProviderTimeout: time.Duration(timeout) * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
