package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

// Storage backends.
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
	StorageS3       = "s3"
)

var storages = []string{StorageMemory, StorageSQLite, StoragePostgres, StorageRedis, StorageS3}

// Config holds runtime settings for the gophnotes client.
type Config struct {
	Storage string

	DataDir    string
	SQLiteFile string

	DatabaseDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Prefix    string

	// Encrypt wraps the backend so blobs are sealed with a passphrase.
	Encrypt bool
	// BreakerTimeout is how long a tripped breaker stays open for remote
	// backends.
	BreakerTimeout time.Duration

	LogFormat string
	LogLevel  string

	// SessionSecret signs session tokens. Empty means a random secret
	// generated on first run and kept in storage.
	SessionSecret string
	SessionTTL    time.Duration

	ExportDir string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Storage = StorageSQLite
	c.DataDir = "data"
	c.SQLiteFile = ""
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPrefix = "gophnotes:"
	c.S3Region = "us-east-1"
	c.S3Prefix = "gophnotes"
	c.BreakerTimeout = 30 * time.Second
	c.LogFormat = logging.FormatConsole
	c.LogLevel = "info"
	c.SessionSecret = ""
	c.SessionTTL = 30 * 24 * time.Hour
	c.ExportDir = "export"
}

// SQLitePath is SQLiteFile, or gophnotes.db inside DataDir when unset.
func (c *Config) SQLitePath() string {
	if c.SQLiteFile != "" {
		return c.SQLiteFile
	}
	return filepath.Join(c.DataDir, "gophnotes.db")
}

// Validate reports settings the selected backend cannot start with.
func (c *Config) Validate() error {
	if !slices.Contains(storages, c.Storage) {
		return fmt.Errorf("unknown storage %q, want one of %v", c.Storage, storages)
	}
	switch c.Storage {
	case StoragePostgres:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("storage %q requires a database DSN", c.Storage)
		}
	case StorageS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("storage %q requires a bucket", c.Storage)
		}
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", c.SessionTTL)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
