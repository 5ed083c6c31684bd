// Package config loads runtime settings from the environment, with an
// optional .env file for development.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/coelhor/feira/internal/backup"
)

type Config struct {
	Port     string
	DBPath   string
	LogLevel string
	Backup   backup.Config
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() Config {
	godotenv.Load()

	cfg := Config{
		Port:     envOr("FEIRA_PORT", "8080"),
		DBPath:   envOr("FEIRA_DB_PATH", "feira.db"),
		LogLevel: envOr("FEIRA_LOG_LEVEL", "info"),
	}

	cfg.Backup = backup.Config{
		S3: backup.S3Config{
			Endpoint:  os.Getenv("FEIRA_S3_ENDPOINT"),
			Bucket:    os.Getenv("FEIRA_S3_BUCKET"),
			Region:    envOr("FEIRA_S3_REGION", "auto"),
			AccessKey: os.Getenv("FEIRA_S3_ACCESS_KEY"),
			SecretKey: os.Getenv("FEIRA_S3_SECRET_KEY"),
		},
		DBPath:   cfg.DBPath,
		Interval: durationOr("FEIRA_BACKUP_INTERVAL", 24*time.Hour),
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
