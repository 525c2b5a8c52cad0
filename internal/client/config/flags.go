package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/gophnotes/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// os.Args is filtered with flagx.FilterArgs first, so flags owned by other
// components (-c/-config) do not break parsing.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:],
		[]string{"-s", "-f", "-d", "-r", "-b", "-l", "-x"},
		[]string{"-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Storage, "s", cfg.Storage, "storage backend: memory|sqlite|postgres|redis|s3")
	fs.StringVar(&cfg.SQLiteFile, "f", cfg.SQLiteFile, "SQLite database file")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "Redis address")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket")
	fs.BoolVar(&cfg.Encrypt, "e", cfg.Encrypt, "encrypt stored notes with a passphrase")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug|info|warn|error")
	fs.StringVar(&cfg.ExportDir, "x", cfg.ExportDir, "markdown export directory")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
