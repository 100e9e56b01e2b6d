// Package storage mirrors the feed to a local key-value backend as one full
// JSON snapshot and rehydrates it at startup.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Backend when the key holds no snapshot.
var ErrNotFound = errors.New("snapshot not found")

// Backend is a key-value store holding serialized snapshots.
type Backend interface {
	// Name identifies the backend in logs and metrics.
	Name() string
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Close() error
}
