package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/bpkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-m string   mongo connection URI
//	-d string   mongo database name
//	-s string   SQLite DSN of the local cache
//	-i int      online check interval in seconds
//	-t int      sync timeout in milliseconds
//	-e string   directory for generated reports
//	-b string   S3 bucket for report uploads (empty disables)
//
// Note: the function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, to avoid interference with other
// components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-m", "-d", "-s", "-i", "-t", "-e", "-b"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.MongoURI, "m", cfg.MongoURI, "mongo connection URI")
	fs.StringVar(&cfg.MongoDatabase, "d", cfg.MongoDatabase, "mongo database name")
	fs.StringVar(&cfg.CacheDSN, "s", cfg.CacheDSN, "local cache DSN")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	syncTimeout := fs.Int("t", int(cfg.SyncTimeout.Milliseconds()), "sync timeout (in milliseconds)")
	fs.StringVar(&cfg.ExportDir, "e", cfg.ExportDir, "directory for generated reports")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket for report uploads")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	cfg.SyncTimeout = time.Duration(*syncTimeout) * time.Millisecond
}
