// Package config loads server configuration from the environment and client
// configuration (named remotes) from a TOML file.
package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds the trak server configuration.
type Config struct {
	DatabaseURL string // TRAK_DATABASE_URL (required)
	HTTPAddr    string // TRAK_HTTP_ADDR (default ":8080")
	NATSURL     string // TRAK_NATS_URL (optional, empty = no events)
	AuthToken   string // TRAK_AUTH_TOKEN (optional, empty = auth disabled)

	// Backup settings
	BackupInterval   time.Duration // TRAK_BACKUP_INTERVAL (default 0 = disabled)
	BackupS3Bucket   string        // TRAK_BACKUP_S3_BUCKET (enables S3 when set)
	BackupS3Endpoint string        // TRAK_BACKUP_S3_ENDPOINT (custom endpoint for MinIO)
	BackupS3Region   string        // TRAK_BACKUP_S3_REGION (default "us-east-1")
	BackupS3Key      string        // TRAK_BACKUP_S3_KEY (default "trak/backup.jsonl")
}

// Load reads the server configuration from the environment.
func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:      os.Getenv("TRAK_DATABASE_URL"),
		HTTPAddr:         envOrDefault("TRAK_HTTP_ADDR", ":8080"),
		NATSURL:          os.Getenv("TRAK_NATS_URL"),
		AuthToken:        os.Getenv("TRAK_AUTH_TOKEN"),
		BackupS3Bucket:   os.Getenv("TRAK_BACKUP_S3_BUCKET"),
		BackupS3Endpoint: os.Getenv("TRAK_BACKUP_S3_ENDPOINT"),
		BackupS3Region:   envOrDefault("TRAK_BACKUP_S3_REGION", "us-east-1"),
		BackupS3Key:      envOrDefault("TRAK_BACKUP_S3_KEY", "trak/backup.jsonl"),
	}
	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("TRAK_DATABASE_URL is required")
	}

	if intervalStr := os.Getenv("TRAK_BACKUP_INTERVAL"); intervalStr != "" {
		d, err := time.ParseDuration(intervalStr)
		if err != nil {
			return nil, fmt.Errorf("TRAK_BACKUP_INTERVAL: %w", err)
		}
		c.BackupInterval = d
	}

	return c, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
