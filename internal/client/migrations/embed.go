// Package migrations embeds the goose schema migrations for the SQL blob
// backends and applies them.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS

// goose keeps its base FS and dialect in package globals.
var mu sync.Mutex

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Up applies every pending migration for dialect ("sqlite3" or "pgx").
func Up(ctx context.Context, db *sql.DB, dialect string) error {
	dir, err := dirFor(dialect)
	if err != nil {
		return err
	}

	sub, err := fs.Sub(Migrations, dir)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()

	goose.SetBaseFS(sub)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	goose.SetLogger(goose.NopLogger())

	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}
	return nil
}

func dirFor(dialect string) (string, error) {
	switch dialect {
	case "sqlite3", "sqlite":
		return "sqlite", nil
	case "pgx", "postgres":
		return "postgres", nil
	default:
		return "", fmt.Errorf("unsupported migration dialect %q", dialect)
	}
}
