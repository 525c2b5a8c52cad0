// Package config loads runtime configuration for the gophnotes client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A ".env" file in the working directory and GOPHNOTES_* environment
//     variables (process variables win over the file).
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-s string   storage backend: memory|sqlite|postgres|redis|s3
//	-f string   SQLite database file
//	-d string   PostgreSQL DSN
//	-r string   Redis address
//	-b string   S3 bucket
//	-e          encrypt stored blobs with a passphrase
//	-l string   log level
//	-x string   markdown export directory
//
// # JSON schema
//
// Durations use timex.Duration, so "720h" and integer nanoseconds both work:
//
//	{
//	  "storage": "sqlite",
//	  "sqlite_file": "data/gophnotes.db",
//	  "encrypt": true,
//	  "session_ttl": "720h"
//	}
package config
