// Package config loads server configuration from the environment.
//
// A .env file in the working directory is honored when present, matching
// how the tracker is usually run during development. Real environment
// variables win over .env entries.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs at startup.
type Config struct {
	// Port the HTTP server listens on.
	Port int

	// DBPath is the SQLite database file.
	DBPath string

	// StaticPath is the directory served for non-API routes.
	StaticPath string

	// RedisAddr enables the Redis loan-list cache when non-empty (host:port).
	RedisAddr string
}

// Load reads configuration from a .env file (if any) and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		slog.Debug("Loaded .env file")
	}

	port, err := strconv.Atoi(getEnv("PORT", "4000"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	return &Config{
		Port:       port,
		DBPath:     getEnv("DB_PATH", "./data/loantracker.db"),
		StaticPath: getEnv("STATIC_PATH", "./web/static"),
		RedisAddr:  os.Getenv("REDIS_ADDR"),
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
