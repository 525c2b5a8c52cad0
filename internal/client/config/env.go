package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "GOPHNOTES_"

// Test seams.
var (
	dotenvFile = ".env"
	lookupEnv  = os.LookupEnv
)

// parseEnv overlays cfg with GOPHNOTES_* variables. Values from the process
// environment win over the .env file; a missing .env file is not an error.
//
// Panics on an unreadable .env file or a malformed number/bool/duration.
func parseEnv(cfg *Config) {
	file, err := godotenv.Read(dotenvFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	get := func(name string) (string, bool) {
		if v, ok := lookupEnv(envPrefix + name); ok {
			return v, true
		}
		v, ok := file[envPrefix+name]
		return v, ok
	}

	str := func(name string, dst *string) {
		if v, ok := get(name); ok {
			*dst = v
		}
	}

	str("STORAGE", &cfg.Storage)
	str("DATA_DIR", &cfg.DataDir)
	str("SQLITE_FILE", &cfg.SQLiteFile)
	str("DATABASE_DSN", &cfg.DatabaseDSN)
	str("REDIS_ADDR", &cfg.RedisAddr)
	str("REDIS_PASSWORD", &cfg.RedisPassword)
	str("REDIS_PREFIX", &cfg.RedisPrefix)
	str("S3_BUCKET", &cfg.S3Bucket)
	str("S3_REGION", &cfg.S3Region)
	str("S3_ENDPOINT", &cfg.S3Endpoint)
	str("S3_ACCESS_KEY", &cfg.S3AccessKey)
	str("S3_SECRET_KEY", &cfg.S3SecretKey)
	str("S3_PREFIX", &cfg.S3Prefix)
	str("LOG_FORMAT", &cfg.LogFormat)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("SESSION_SECRET", &cfg.SessionSecret)
	str("EXPORT_DIR", &cfg.ExportDir)

	if v, ok := get("REDIS_DB"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		cfg.RedisDB = n
	}
	if v, ok := get("ENCRYPT"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(err)
		}
		cfg.Encrypt = b
	}
	if v, ok := get("SESSION_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.SessionTTL = d
	}
	if v, ok := get("BREAKER_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.BreakerTimeout = d
	}
}
