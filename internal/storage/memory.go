package storage

import (
	"context"
	"sync"
)

// MemoryBackend keeps snapshots in process memory. Used by tests and by
// STORAGE_BACKEND=memory.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryBackend creates an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

func (*MemoryBackend) Name() string { return "memory" }

func (m *MemoryBackend) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *MemoryBackend) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := make([]byte, len(data))
	copy(v, data)
	m.data[key] = v
	return nil
}

func (*MemoryBackend) Close() error { return nil }
