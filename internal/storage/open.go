package storage

import (
	"context"
	"fmt"

	"minisocial/internal/cache"
	"minisocial/internal/config"
	"minisocial/internal/database"
)

// Open builds the backend selected by cfg.StorageBackend.
func Open(ctx context.Context, cfg *config.Config) (Backend, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		return NewMemoryBackend(), nil
	case config.BackendFile:
		return NewFileBackend(cfg.StorageDir), nil
	case config.BackendRedis:
		rdb, err := cache.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis backend: %w", err)
		}
		return NewRedisBackend(rdb), nil
	case config.BackendSQLite, config.BackendPostgres:
		db, err := database.Connect(cfg)
		if err != nil {
			return nil, fmt.Errorf("%s backend: %w", cfg.StorageBackend, err)
		}
		return NewGormBackend(db), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
