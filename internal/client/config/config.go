package config

import "time"

// Config holds runtime settings for the bpkeeper CLI.
type Config struct {
	// MongoURI is the connection string of the remote document store.
	MongoURI string
	// MongoDatabase is the database holding readings and users.
	MongoDatabase string
	// CacheDSN is the SQLite DSN of the local snapshot/session cache.
	CacheDSN string
	// OnlineCheckInterval is how often the client probes reachability.
	OnlineCheckInterval time.Duration
	// SyncTimeout bounds how long the store waits for a
	// server-confirmed snapshot before unblocking the UI.
	SyncTimeout time.Duration
	// SessionTTL is the validity of the cached session token.
	SessionTTL time.Duration
	// ExportDir is where generated reports are written.
	ExportDir string
	// S3Bucket enables report uploads when non-empty.
	S3Bucket string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.MongoURI = "mongodb://127.0.0.1:27017"
	c.MongoDatabase = "bpkeeper"
	c.CacheDSN = "bpkeeper.db"
	c.OnlineCheckInterval = 3 * time.Second
	c.SyncTimeout = 3 * time.Second
	c.SessionTTL = 30 * 24 * time.Hour
	c.ExportDir = "."
	c.S3Bucket = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
