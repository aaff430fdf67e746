package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/bpkeeper/internal/flagx"
	"github.com/dmitrijs2005/bpkeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It
// relies on timex.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	MongoURI            string         `json:"mongo_uri"`
	MongoDatabase       string         `json:"mongo_database"`
	CacheDSN            string         `json:"cache_dsn"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	SyncTimeout         timex.Duration `json:"sync_timeout"`
	SessionTTL          timex.Duration `json:"session_ttl"`
	ExportDir           string         `json:"export_dir"`
	S3Bucket            string         `json:"s3_bucket"`
}

// parseJson overlays Config with values loaded from a JSON file. The
// file path comes from the -c/-config flags; when absent, no JSON is
// loaded. Read or unmarshal errors panic (caller may recover).
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later
// stages override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.MongoURI != "" {
		cfg.MongoURI = jc.MongoURI
	}
	if jc.MongoDatabase != "" {
		cfg.MongoDatabase = jc.MongoDatabase
	}
	if jc.CacheDSN != "" {
		cfg.CacheDSN = jc.CacheDSN
	}
	if jc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.SyncTimeout.Duration > 0 {
		cfg.SyncTimeout = jc.SyncTimeout.Duration
	}
	if jc.SessionTTL.Duration > 0 {
		cfg.SessionTTL = jc.SessionTTL.Duration
	}
	if jc.ExportDir != "" {
		cfg.ExportDir = jc.ExportDir
	}
	if jc.S3Bucket != "" {
		cfg.S3Bucket = jc.S3Bucket
	}
}
