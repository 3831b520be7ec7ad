package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from environment variables.
//
// An optional .env file in the working directory is loaded first; real
// environment variables are never overwritten by it.
//
// Recognized variables:
//
//	SYNC_BASE_URL    string
//	SHARE_BASE_URL   string
//	DATABASE_PATH    string
//	REQUEST_TIMEOUT  duration string, e.g. "15s"
//
// Malformed durations are ignored so a bad environment cannot prevent the
// CLI from starting with its defaults.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("SYNC_BASE_URL"); v != "" {
		cfg.SyncBaseURL = v
	}
	if v := os.Getenv("SHARE_BASE_URL"); v != "" {
		cfg.ShareBaseURL = v
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
}
