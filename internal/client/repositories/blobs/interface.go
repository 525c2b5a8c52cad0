package blobs

import (
	"context"
)

// Well-known keys.
const (
	KeyNotes   = "notes"
	KeyFolders = "folders"
	KeySession = "session"
	// KeySessionSecret holds the generated session signing key.
	KeySessionSecret = "session/secret"
)

// Repository stores opaque values by key.
//
// Get returns (nil, nil) when the key is absent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetMany writes all values, atomically where the backend allows.
	SetMany(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, key string) error
}
