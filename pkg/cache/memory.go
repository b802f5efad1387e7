package cache

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps entries in process memory. Useful for tests and for
// ephemeral runs that should not touch the filesystem.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string][]byte),
	}
}

func (s *MemoryStore) Exists(ctx context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[name]
	return ok, nil
}

func (s *MemoryStore) Get(ctx context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.entries[name]
	if !ok {
		return nil, fmt.Errorf("no cache entry %s", name)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *MemoryStore) Put(ctx context.Context, name string, data []byte) error {
	stored := make([]byte, len(data))
	copy(stored, data)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[name] = stored
	return nil
}
