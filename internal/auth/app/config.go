package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseFile string // Optional: path to SQLite database file (default: ./coffeelux.db)

	// RedisAddr switches the session/OTP/flow state to a shared Redis
	// instance for multi-instance deployments. Empty keeps it in-process.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// SMTP relay for recovery emails. With no host configured the codes
	// are written to the log instead.
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired-state sweep interval (default: 5m)
}

func LoadConfig() Config {
	return Config{
		DatabaseFile: getEnvOrDefault("AUTH_DATABASE_FILE", "coffeelux.db"),

		RedisAddr:     os.Getenv("AUTH_REDIS_ADDR"),
		RedisPassword: os.Getenv("AUTH_REDIS_PASSWORD"),
		RedisDB:       getEnvIntOrDefault("AUTH_REDIS_DB", 0),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvOrDefault("SMTP_PORT", "587"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),
		SMTPFromName: getEnvOrDefault("SMTP_FROM_NAME", "CoffeeLux System"),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 5*time.Minute),
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

	// Bare integers are read as minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
