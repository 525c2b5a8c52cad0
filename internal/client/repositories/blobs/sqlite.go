package blobs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophnotes/internal/dbx"
)

// SQLiteRepository stores blobs in the "blobs" table of a SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const sqliteUpsert = `
		INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM blobs WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get blob[%s]: %w", key, err)
	}
	if value == nil {
		value = []byte{}
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	return sqliteSet(ctx, r.db, key, value)
}

func sqliteSet(ctx context.Context, db dbx.DBTX, key string, value []byte) error {
	if _, err := db.ExecContext(ctx, sqliteUpsert, key, cloneValue(value)); err != nil {
		return fmt.Errorf("failed to set blob[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) SetMany(ctx context.Context, values map[string][]byte) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, k := range sortedKeys(values) {
			if err := sqliteSet(ctx, tx, k, values[k]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM blobs WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete blob[%s]: %w", key, err)
	}
	return nil
}
