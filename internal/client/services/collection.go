package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/gophnotes/internal/client/repositories/blobs"
	"github.com/dmitrijs2005/gophnotes/internal/common"
)

// loadCollection decodes the JSON array stored under key.
//
// An absent key yields (nil, false, nil). A value that is not a JSON array of
// T yields an error wrapping common.ErrMalformedState; repository failures
// are returned as is.
func loadCollection[T any](ctx context.Context, repo blobs.Repository, key string) ([]T, bool, error) {
	raw, err := repo.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("load %s: %w", key, err)
	}
	if raw == nil {
		return nil, false, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, true, fmt.Errorf("%w: %s: %w", common.ErrMalformedState, key, err)
	}
	return items, true, nil
}

// encodeCollection marshals items as a JSON array; nil becomes [].
func encodeCollection[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}

func saveCollection[T any](ctx context.Context, repo blobs.Repository, key string, items []T) error {
	b, err := encodeCollection(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := repo.Set(ctx, key, b); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
