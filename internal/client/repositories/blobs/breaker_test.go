package blobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyRepository fails every call while err is set.
type flakyRepository struct {
	*MemoryRepository
	err   error
	calls int
}

func (f *flakyRepository) Get(ctx context.Context, key string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.MemoryRepository.Get(ctx, key)
}

func (f *flakyRepository) Set(ctx context.Context, key string, value []byte) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return f.MemoryRepository.Set(ctx, key, value)
}

func TestBreakerRepository_Contract(t *testing.T) {
	exerciseRepository(t, NewBreakerRepository(NewMemoryRepository(), DefaultBreakerConfig("test"), logging.Nop()))
}

func TestBreakerRepository_OpensAfterConsecutiveFailures(t *testing.T) {
	ctx := context.Background()
	inner := &flakyRepository{MemoryRepository: NewMemoryRepository(), err: errors.New("connection refused")}
	cfg := BreakerConfig{Name: "test", ConsecutiveFailures: 2, OpenTimeout: time.Hour, MaxHalfOpen: 1}
	repo := NewBreakerRepository(inner, cfg, logging.Nop())

	for range 2 {
		_, err := repo.Get(ctx, KeyNotes)
		require.Error(t, err)
		assert.NotErrorIs(t, err, common.ErrStorageUnavailable)
	}
	assert.Equal(t, gobreaker.StateOpen, repo.State())

	err := repo.Set(ctx, KeyNotes, []byte("[]"))
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)
	assert.Equal(t, 2, inner.calls, "open breaker must not reach the backend")
}

func TestBreakerRepository_CancellationDoesNotTrip(t *testing.T) {
	ctx := context.Background()
	inner := &flakyRepository{MemoryRepository: NewMemoryRepository(), err: context.Canceled}
	cfg := BreakerConfig{Name: "test", ConsecutiveFailures: 1, OpenTimeout: time.Hour, MaxHalfOpen: 1}
	repo := NewBreakerRepository(inner, cfg, logging.Nop())

	_, err := repo.Get(ctx, KeyNotes)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, gobreaker.StateClosed, repo.State())
}

func TestBreakerRepository_PassesAbsentThrough(t *testing.T) {
	repo := NewBreakerRepository(NewMemoryRepository(), DefaultBreakerConfig("test"), logging.Nop())
	got, err := repo.Get(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Nil(t, got)
}
