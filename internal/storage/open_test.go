package storage

import (
	"context"
	"path/filepath"
	"testing"

	"minisocial/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	dir := t.TempDir()

	tests := []struct {
		name     string
		cfg      config.Config
		wantName string
		wantErr  bool
	}{
		{name: "memory", cfg: config.Config{StorageBackend: config.BackendMemory}, wantName: "memory"},
		{name: "file", cfg: config.Config{StorageBackend: config.BackendFile, StorageDir: dir}, wantName: "file"},
		{name: "redis", cfg: config.Config{StorageBackend: config.BackendRedis, RedisURL: mr.Addr()}, wantName: "redis"},
		{name: "sqlite", cfg: config.Config{StorageBackend: config.BackendSQLite, SQLitePath: filepath.Join(dir, "feed.db")}, wantName: "sqlite"},
		{name: "unknown", cfg: config.Config{StorageBackend: "s3"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend, err := Open(context.Background(), &tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			t.Cleanup(func() { _ = backend.Close() })
			assert.Equal(t, tt.wantName, backend.Name())
			exerciseBackend(t, backend)
		})
	}
}
