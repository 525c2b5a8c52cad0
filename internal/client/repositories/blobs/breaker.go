package blobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/sony/gobreaker"
)

// BreakerConfig tunes the circuit breaker in front of a remote backend.
type BreakerConfig struct {
	Name string
	// ConsecutiveFailures trips the breaker.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
	// MaxHalfOpen is the number of probe requests allowed while half-open.
	MaxHalfOpen uint32
}

func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:                name,
		ConsecutiveFailures: 3,
		OpenTimeout:         30 * time.Second,
		MaxHalfOpen:         1,
	}
}

// BreakerRepository fails fast with common.ErrStorageUnavailable while the
// wrapped backend keeps failing. It never retries.
type BreakerRepository struct {
	inner Repository
	cb    *gobreaker.CircuitBreaker
}

func NewBreakerRepository(inner Repository, cfg BreakerConfig, log logging.Logger) *BreakerRepository {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxHalfOpen,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn(context.Background(), "storage circuit breaker state changed",
				"name", name, "from", from.String(), "to", to.String())
		},
		IsSuccessful: func(err error) bool {
			// a cancelled caller says nothing about backend health
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
	return &BreakerRepository{inner: inner, cb: cb}
}

// State reports the current breaker state.
func (r *BreakerRepository) State() gobreaker.State {
	return r.cb.State()
}

func (r *BreakerRepository) execute(fn func() (any, error)) (any, error) {
	v, err := r.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}
	return v, err
}

func (r *BreakerRepository) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := r.execute(func() (any, error) {
		return r.inner.Get(ctx, key)
	})
	if err != nil {
		return nil, err
	}
	b, _ := v.([]byte)
	return b, nil
}

func (r *BreakerRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.execute(func() (any, error) {
		return nil, r.inner.Set(ctx, key, value)
	})
	return err
}

func (r *BreakerRepository) SetMany(ctx context.Context, values map[string][]byte) error {
	_, err := r.execute(func() (any, error) {
		return nil, r.inner.SetMany(ctx, values)
	})
	return err
}

func (r *BreakerRepository) Delete(ctx context.Context, key string) error {
	_, err := r.execute(func() (any, error) {
		return nil, r.inner.Delete(ctx, key)
	})
	return err
}
