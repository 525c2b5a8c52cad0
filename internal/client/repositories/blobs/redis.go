package blobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisRepository stores each blob as a plain string value under prefix+key.
type RedisRepository struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisRepository(client redis.UniversalClient, prefix string) *RedisRepository {
	return &RedisRepository{client: client, prefix: prefix}
}

func (r *RedisRepository) key(k string) string {
	return r.prefix + k
}

func (r *RedisRepository) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	if v == nil {
		v = []byte{}
	}
	return v, nil
}

func (r *RedisRepository) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// SetMany writes all values in one MULTI/EXEC transaction.
func (r *RedisRepository) SetMany(ctx context.Context, values map[string][]byte) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, k := range sortedKeys(values) {
			pipe.Set(ctx, r.key(k), values[k], 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis set many: %w", err)
	}
	return nil
}

func (r *RedisRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
