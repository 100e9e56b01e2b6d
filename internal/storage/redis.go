package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores snapshots as plain Redis strings without expiry.
type RedisBackend struct {
	rdb *redis.Client
}

// NewRedisBackend wraps an already connected client. Close closes it.
func NewRedisBackend(rdb *redis.Client) *RedisBackend {
	return &RedisBackend{rdb: rdb}
}

func (*RedisBackend) Name() string { return "redis" }

func (b *RedisBackend) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := b.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, nil
}

func (b *RedisBackend) Save(ctx context.Context, key string, data []byte) error {
	if err := b.rdb.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (b *RedisBackend) Close() error {
	return b.rdb.Close()
}
