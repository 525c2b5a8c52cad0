package blobs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophnotes/internal/dbx"
)

// PostgresRepository stores blobs in the "blobs" table of a PostgreSQL
// database opened through the pgx stdlib driver.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const postgresUpsert = `INSERT INTO blobs (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

func (r *PostgresRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM blobs WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if value == nil {
		value = []byte{}
	}
	return value, nil
}

func (r *PostgresRepository) Set(ctx context.Context, key string, value []byte) error {
	return postgresSet(ctx, r.db, key, value)
}

func postgresSet(ctx context.Context, db dbx.DBTX, key string, value []byte) error {
	if _, err := db.ExecContext(ctx, postgresUpsert, key, cloneValue(value)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SetMany(ctx context.Context, values map[string][]byte) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, k := range sortedKeys(values) {
			if err := postgresSet(ctx, tx, k, values[k]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PostgresRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM blobs WHERE key = $1`, key); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
