package config

import "time"

// Config holds runtime settings for the journal CLI.
//
// Fields:
//   - SyncBaseURL: base URL of the sync endpoint (POST/GET/DELETE records).
//   - ShareBaseURL: base URL of the share endpoint; defaults to SyncBaseURL's host.
//   - DatabasePath: path to the local SQLite database file.
//   - RequestTimeout: per-request timeout for sync HTTP calls.
type Config struct {
	SyncBaseURL    string
	ShareBaseURL   string
	DatabasePath   string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.SyncBaseURL = "http://127.0.0.1:8787/api/sync"
	c.ShareBaseURL = "http://127.0.0.1:8787/api"
	c.DatabasePath = "data/journal.db"
	c.RequestTimeout = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (including an optional .env file), an optional JSON file,
// and command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
