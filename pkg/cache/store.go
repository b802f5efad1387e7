package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Store persists cache entries under opaque names. Implementations are
// append-only from the cache's perspective: entries are written once per
// miss and never deleted.
type Store interface {
	Exists(ctx context.Context, name string) (bool, error)
	Get(ctx context.Context, name string) ([]byte, error)
	Put(ctx context.Context, name string, data []byte) error
}

// FilesystemStore keeps one file per entry under a root directory.
type FilesystemStore struct {
	root string
}

// NewFilesystemStore creates the root directory if needed and returns a
// store over it. An unwritable root fails here rather than degrading to
// memory-only caching.
func NewFilesystemStore(root string) (*FilesystemStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory %s: %w", root, err)
	}
	return &FilesystemStore{root: root}, nil
}

func (s *FilesystemStore) path(name string) string {
	return filepath.Join(s.root, name)
}

func (s *FilesystemStore) Exists(ctx context.Context, name string) (bool, error) {
	_, err := os.Stat(s.path(name))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (s *FilesystemStore) Get(ctx context.Context, name string) ([]byte, error) {
	return os.ReadFile(s.path(name))
}

func (s *FilesystemStore) Put(ctx context.Context, name string, data []byte) error {
	return os.WriteFile(s.path(name), data, 0o644)
}
