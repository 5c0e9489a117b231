package app

import (
	"os"
	"strconv"
	"time"

	"github.com/tickbox/tickbox/pkg/cryptox"
)

type Config struct {
	MongoURI      string        // MongoDB connection string (default: mongodb://localhost:27017)
	MongoDatabase string        // Database name (default: tickbox)
	JWTSecret     string        // Required: process-wide token signing secret
	TokenHeader   string        // Header carrying the auth token (default: x-auth)
	BcryptCost    int           // Password hashing work factor (default: 10)
	Env           string        // Environment (dev, staging, prod) (default: dev)
	LogLevel      string        // Log level (debug, info, warn, error) (default: info)
	LogFormat     string        // Log format (json, text) (default: json)
	Port          int           // HTTP server port (default: 3000)
	ShutdownGrace time.Duration // Graceful shutdown timeout (default: 10s)
	ConnectGrace  time.Duration // Store connection timeout at startup (default: 10s)
}

func LoadConfig() Config {
	return Config{
		MongoURI:      getEnvOrDefault("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnvOrDefault("MONGODB_DATABASE", "tickbox"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		TokenHeader:   getEnvOrDefault("TOKEN_HEADER", "x-auth"),
		BcryptCost:    getEnvIntOrDefault("BCRYPT_COST", cryptox.DefaultCost),
		Env:           getEnvOrDefault("ENV", "dev"),
		LogLevel:      getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:     getEnvOrDefault("LOG_FORMAT", "json"),
		Port:          getEnvIntOrDefault("PORT", 3000),
		ShutdownGrace: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		ConnectGrace:  getEnvDurationOrDefault("STORE_CONNECT_TIMEOUT", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return defaultValue
}
