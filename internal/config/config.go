// Package config reads engine configuration from the environment.
package config

import "os"

// Config holds everything the CLI needs to reach the remote API.
type Config struct {
	// APIBaseURL is the root of the BetterSplit REST API.
	APIBaseURL string

	// APIToken authenticates every request. Opaque to this client.
	APIToken string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// Load reads configuration from environment variables, falling back to
// development defaults. Callers load a .env file first if they want one.
func Load() *Config {
	return &Config{
		APIBaseURL: getEnv("BETTERSPLIT_API_URL", "http://localhost:8000"),
		APIToken:   getEnv("BETTERSPLIT_API_TOKEN", ""),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
