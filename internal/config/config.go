package config

import (
	"os"
	"strconv"

	"github.com/agustinleonardi/TaskManagerPro/internal/auth"
)

// Config holds the application configuration.
type Config struct {
	// Server settings
	ServerPort string

	// OpenTelemetry settings
	OTLPEndpoint string
	ServiceName  string
	Environment  string

	// Password hashing work factor
	BcryptCost int
}

// Load returns configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		ServiceName:  getEnv("OTEL_SERVICE_NAME", "taskmanagerpro"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		BcryptCost:   getEnvInt("BCRYPT_COST", auth.DefaultBcryptCost),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
