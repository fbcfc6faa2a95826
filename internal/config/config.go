// Package config centralises configuration parsing for the exercise log service.
package config

import "os"

// Config captures runtime configuration values for the service.
type Config struct {
	HTTPAddress   string
	MongoURI      string // no default: a missing URI is a fatal startup condition
	MongoDatabase string
	LogLevel      string
	LogFormat     string
	StaticDir     string
}

// Load reads environment variables into Config, applying sensible defaults
// for local dev. MongoURI is deliberately left empty when unset; main treats
// that as fatal.
func Load() Config {
	return Config{
		HTTPAddress:   getEnv("HTTP_ADDRESS", ":3000"),
		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDatabase: getEnv("MONGO_DATABASE", "exercise_log"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
		StaticDir:     getEnv("STATIC_DIR", "public"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
