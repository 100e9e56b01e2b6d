package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// FileBackend stores each key as a JSON file under dir. Writes go to a
// temporary file first and are renamed into place so a crash never leaves a
// half-written snapshot.
type FileBackend struct {
	fs  afero.Fs
	dir string
}

// NewFileBackend returns a FileBackend rooted at dir on the OS filesystem.
func NewFileBackend(dir string) *FileBackend {
	return NewFileBackendFs(afero.NewOsFs(), dir)
}

// NewFileBackendFs returns a FileBackend over an arbitrary afero filesystem.
func NewFileBackendFs(fsys afero.Fs, dir string) *FileBackend {
	return &FileBackend{fs: fsys, dir: dir}
}

func (*FileBackend) Name() string { return "file" }

func (b *FileBackend) path(key string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, key)
	return filepath.Join(b.dir, safe+".json")
}

func (b *FileBackend) Load(_ context.Context, key string) ([]byte, error) {
	data, err := afero.ReadFile(b.fs, b.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}
	return data, nil
}

func (b *FileBackend) Save(_ context.Context, key string, data []byte) error {
	if err := b.fs.MkdirAll(b.dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	tmp, err := afero.TempFile(b.fs, b.dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = b.fs.Remove(tmpName)
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = b.fs.Remove(tmpName)
		return fmt.Errorf("close temp snapshot: %w", err)
	}
	if err := b.fs.Rename(tmpName, b.path(key)); err != nil {
		_ = b.fs.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

func (*FileBackend) Close() error { return nil }
