package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"newsvector/internal/logger"
)

// Config represents the application configuration.
type Config struct {
	// Vector store connection
	MilvusAddr string
	DBUsername string
	DBPassword string
	Collection string

	// Embedding provider
	EmbeddingModel string
	EmbeddingDim   int
	AWSRegion      string
}

// Load reads configuration from a .env file (if present) and the
// environment. Values are validated only by downstream failure.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logger.Info("Warning: No .env file found or error loading it")
	}

	return &Config{
		MilvusAddr:     getEnvWithDefault("DB_ADDR", "localhost:19530"),
		DBUsername:     os.Getenv("DB_USERNAME"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		Collection:     getEnvWithDefault("DB_COLLECTION", "articles"),
		EmbeddingModel: getEnvWithDefault("EMBEDDING_MODEL", "amazon.titan-embed-text-v2:0"),
		EmbeddingDim:   getEnvIntWithDefault("EMBEDDING_DIM", 1024),
		AWSRegion:      getEnvWithDefault("AWS_REGION", "us-east-1"),
	}
}

// getEnvWithDefault gets an environment variable or returns a default value.
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvIntWithDefault gets an integer environment variable or returns a
// default value when unset or unparsable.
func getEnvIntWithDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		logger.Warn("Invalid value for %s: %q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
