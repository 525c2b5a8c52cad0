// Package storage opens the blob repository selected by the configuration:
// it connects the backend, applies migrations, and stacks the circuit
// breaker and encryption decorators on top.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/gophnotes/internal/client/config"
	"github.com/dmitrijs2005/gophnotes/internal/client/migrations"
	"github.com/dmitrijs2005/gophnotes/internal/client/repositories/blobs"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/filex"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// PassphraseFunc supplies the encryption passphrase when Config.Encrypt is on.
type PassphraseFunc func() ([]byte, error)

// Test seams.
var (
	openSQL        = sql.Open
	newRedisClient = func(opts *redis.Options) redis.UniversalClient {
		return redis.NewClient(opts)
	}
	newS3Repository = func(ctx context.Context, cfg blobs.S3Config) (blobs.Repository, error) {
		return blobs.NewS3Repository(ctx, cfg)
	}
)

// Store is an opened repository plus the resources behind it.
type Store struct {
	Repo    blobs.Repository
	Backend string
	closers []func() error
}

// Close releases connections and wipes key material.
func (s *Store) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	s.closers = nil
	return errors.Join(errs...)
}

// Open connects the configured backend. Remote backends (postgres, redis,
// s3) sit behind a circuit breaker; with cfg.Encrypt the result is wrapped
// in an EncryptedRepository keyed by the passphrase.
func Open(ctx context.Context, cfg *config.Config, log logging.Logger, passphrase PassphraseFunc) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	st := &Store{Backend: cfg.Storage}
	repo, err := st.openBackend(ctx, cfg)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	switch cfg.Storage {
	case config.StoragePostgres, config.StorageRedis, config.StorageS3:
		bc := blobs.DefaultBreakerConfig(cfg.Storage)
		bc.OpenTimeout = cfg.BreakerTimeout
		repo = blobs.NewBreakerRepository(repo, bc, log)
	}

	if cfg.Encrypt {
		if passphrase == nil {
			_ = st.Close()
			return nil, errors.New("encryption enabled but no passphrase source")
		}
		pass, err := passphrase()
		if err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("read passphrase: %w", err)
		}
		enc, err := blobs.NewEncryptedRepository(ctx, repo, pass)
		common.WipeByteArray(pass)
		if err != nil {
			_ = st.Close()
			return nil, err
		}
		st.closers = append(st.closers, func() error { enc.Close(); return nil })
		repo = enc
	}

	st.Repo = repo
	log.Info(ctx, "storage opened", "backend", cfg.Storage, "encrypted", cfg.Encrypt)
	return st, nil
}

func (st *Store) openBackend(ctx context.Context, cfg *config.Config) (blobs.Repository, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return blobs.NewMemoryRepository(), nil

	case config.StorageSQLite:
		path := cfg.SQLitePath()
		if _, err := filex.EnsureDir(filepath.Dir(path)); err != nil {
			return nil, err
		}
		db, err := openSQL("sqlite", path)
		if err != nil {
			return nil, err
		}
		st.closers = append(st.closers, db.Close)
		// a single connection serialises writers and avoids SQLITE_BUSY
		db.SetMaxOpenConns(1)
		if err := migrations.Up(ctx, db, "sqlite3"); err != nil {
			return nil, err
		}
		return blobs.NewSQLiteRepository(db), nil

	case config.StoragePostgres:
		db, err := openSQL("pgx", cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		st.closers = append(st.closers, db.Close)
		if err := db.PingContext(ctx); err != nil {
			return nil, fmt.Errorf("postgres ping: %w", err)
		}
		if err := migrations.Up(ctx, db, "pgx"); err != nil {
			return nil, err
		}
		return blobs.NewPostgresRepository(db), nil

	case config.StorageRedis:
		client := newRedisClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		st.closers = append(st.closers, client.Close)
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		return blobs.NewRedisRepository(client, cfg.RedisPrefix), nil

	case config.StorageS3:
		return newS3Repository(ctx, blobs.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Prefix:    cfg.S3Prefix,
		})
	}
	return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
}
