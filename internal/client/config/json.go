package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophnotes/internal/flagx"
	"github.com/dmitrijs2005/gophnotes/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer fields
// distinguish "absent" from zero values, so a partial file only overrides
// what it names.
type JsonConfig struct {
	Storage        *string         `json:"storage"`
	DataDir        *string         `json:"data_dir"`
	SQLiteFile     *string         `json:"sqlite_file"`
	DatabaseDSN    *string         `json:"database_dsn"`
	RedisAddr      *string         `json:"redis_addr"`
	RedisPassword  *string         `json:"redis_password"`
	RedisDB        *int            `json:"redis_db"`
	RedisPrefix    *string         `json:"redis_prefix"`
	S3Bucket       *string         `json:"s3_bucket"`
	S3Region       *string         `json:"s3_region"`
	S3Endpoint     *string         `json:"s3_endpoint"`
	S3AccessKey    *string         `json:"s3_access_key"`
	S3SecretKey    *string         `json:"s3_secret_key"`
	S3Prefix       *string         `json:"s3_prefix"`
	Encrypt        *bool           `json:"encrypt"`
	BreakerTimeout *timex.Duration `json:"breaker_timeout"`
	LogFormat      *string         `json:"log_format"`
	LogLevel       *string         `json:"log_level"`
	SessionSecret  *string         `json:"session_secret"`
	SessionTTL     *timex.Duration `json:"session_ttl"`
	ExportDir      *string         `json:"export_dir"`
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c/-config. Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFile()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	set(&cfg.Storage, jc.Storage)
	set(&cfg.DataDir, jc.DataDir)
	set(&cfg.SQLiteFile, jc.SQLiteFile)
	set(&cfg.DatabaseDSN, jc.DatabaseDSN)
	set(&cfg.RedisAddr, jc.RedisAddr)
	set(&cfg.RedisPassword, jc.RedisPassword)
	set(&cfg.RedisDB, jc.RedisDB)
	set(&cfg.RedisPrefix, jc.RedisPrefix)
	set(&cfg.S3Bucket, jc.S3Bucket)
	set(&cfg.S3Region, jc.S3Region)
	set(&cfg.S3Endpoint, jc.S3Endpoint)
	set(&cfg.S3AccessKey, jc.S3AccessKey)
	set(&cfg.S3SecretKey, jc.S3SecretKey)
	set(&cfg.S3Prefix, jc.S3Prefix)
	set(&cfg.Encrypt, jc.Encrypt)
	set(&cfg.LogFormat, jc.LogFormat)
	set(&cfg.LogLevel, jc.LogLevel)
	set(&cfg.SessionSecret, jc.SessionSecret)
	set(&cfg.ExportDir, jc.ExportDir)
	if jc.BreakerTimeout != nil {
		cfg.BreakerTimeout = jc.BreakerTimeout.Duration
	}
	if jc.SessionTTL != nil {
		cfg.SessionTTL = jc.SessionTTL.Duration
	}
}
