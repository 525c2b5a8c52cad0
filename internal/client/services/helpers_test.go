package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/repositories/blobs"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/stretchr/testify/require"
)

var errDiskFull = errors.New("disk full")

// recordingRepository wraps a MemoryRepository, counts writes and can be
// told to fail reads or writes.
type recordingRepository struct {
	*blobs.MemoryRepository

	mu      sync.Mutex
	sets    []string
	failGet error
	failSet error
}

func newRecordingRepository() *recordingRepository {
	return &recordingRepository{MemoryRepository: blobs.NewMemoryRepository()}
}

func (r *recordingRepository) Get(ctx context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	err := r.failGet
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return r.MemoryRepository.Get(ctx, key)
}

func (r *recordingRepository) Set(ctx context.Context, key string, value []byte) error {
	r.mu.Lock()
	err := r.failSet
	r.sets = append(r.sets, key)
	r.mu.Unlock()
	if err != nil {
		return err
	}
	return r.MemoryRepository.Set(ctx, key, value)
}

func (r *recordingRepository) SetMany(ctx context.Context, values map[string][]byte) error {
	r.mu.Lock()
	err := r.failSet
	for k := range values {
		r.sets = append(r.sets, k)
	}
	r.mu.Unlock()
	if err != nil {
		return err
	}
	return r.MemoryRepository.SetMany(ctx, values)
}

func (r *recordingRepository) setCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sets)
}

func (r *recordingRepository) raw(t *testing.T, key string) string {
	t.Helper()
	b, err := r.MemoryRepository.Get(context.Background(), key)
	require.NoError(t, err)
	return string(b)
}

// fakeClock advances by step on every call.
type fakeClock struct {
	mu   sync.Mutex
	t    time.Time
	step time.Duration
}

func newFakeClock(start time.Time, step time.Duration) *fakeClock {
	return &fakeClock{t: start, step: step}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.t
	c.t = c.t.Add(c.step)
	return now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

func sequentialIDs(prefix string) func() (string, error) {
	var mu sync.Mutex
	n := 0
	return func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s%d", prefix, n), nil
	}
}

var baseTime = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T, repo blobs.Repository, opts ...Option) NoteStore {
	t.Helper()
	all := append([]Option{
		WithOwner("user-1"),
		WithClock(newFakeClock(baseTime, time.Second).Now),
		WithIDGenerator(sequentialIDs("n")),
	}, opts...)
	return NewNoteStore(repo, logging.Nop(), all...)
}

func loadedStore(t *testing.T, repo blobs.Repository, opts ...Option) NoteStore {
	t.Helper()
	s := newTestStore(t, repo, opts...)
	require.NoError(t, s.Load(context.Background()))
	return s
}

func ptr[T any](v T) *T { return &v }
