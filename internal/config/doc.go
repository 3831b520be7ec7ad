// Package config loads runtime configuration for the journal CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, with an optional .env file (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-s string   base URL of the sync endpoint
//	-d string   path to the local database file
//	-t int      request timeout (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for timeouts, so values can be either
// strings like "15s" or integer nanoseconds:
//
//	{
//	  "sync_base_url": "https://sync.example.com/api/sync",
//	  "share_base_url": "https://sync.example.com/api",
//	  "database_path": "data/journal.db",
//	  "request_timeout": "15s"
//	}
//
// Primary API
//
//   - type Config                     — sync endpoint, database path, timeouts
//   - func LoadConfig() *Config       — builds Config by applying all sources
//   - func (*Config) LoadDefaults()   — sets sensible defaults
package config
