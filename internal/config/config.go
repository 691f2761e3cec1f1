// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the settings shared by the attendance commands.
type Config struct {
	BaseURL       string
	ManifestPath  string
	CacheDriver   string
	CacheDSN      string
	FetchTimeout  time.Duration
	Concurrency   int
	ServerPort    string
	JWTSecret     string
	TelegramToken string
	LogLevel      string
	LogFormat     string
}

// Load reads .env files (when present) and then the environment.
// Variables already set in the environment take precedence over .env.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	timeout, err := time.ParseDuration(getEnv("ATTENDANCE_FETCH_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_FETCH_TIMEOUT: %w", err)
	}
	concurrency, err := strconv.Atoi(getEnv("ATTENDANCE_CONCURRENCY", "0"))
	if err != nil || concurrency < 0 {
		return nil, fmt.Errorf("invalid ATTENDANCE_CONCURRENCY: %q", os.Getenv("ATTENDANCE_CONCURRENCY"))
	}

	return &Config{
		BaseURL:       getEnv("ATTENDANCE_BASE_URL", ""),
		ManifestPath:  getEnv("ATTENDANCE_MANIFEST", ""),
		CacheDriver:   getEnv("ATTENDANCE_CACHE_DRIVER", "sqlite3"),
		CacheDSN:      getEnv("ATTENDANCE_CACHE_DSN", defaultCacheDSN()),
		FetchTimeout:  timeout,
		Concurrency:   concurrency,
		ServerPort:    getEnv("PORT", "8080"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		TelegramToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "logfmt"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
