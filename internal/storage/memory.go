package storage

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory DocumentStore used in tests and as a
// stand-in where no persistence is wanted.
type MemoryStore struct {
	mu        sync.RWMutex
	documents map[string][]byte
	revisions map[string]uint64
}

var _ DocumentStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		documents: make(map[string][]byte),
		revisions: make(map[string]uint64),
	}
}

// Load reads the document stored under key
func (s *MemoryStore) Load(ctx context.Context, key string) ([]byte, uint64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.documents[key]
	if !ok {
		return nil, 0, ErrNotFound
	}
	return append([]byte(nil), data...), s.revisions[key], nil
}

// Save replaces the document under key if expectedRevision still matches
func (s *MemoryStore) Save(ctx context.Context, key string, data []byte, expectedRevision uint64) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.revisions[key] != expectedRevision {
		return 0, ErrRevisionConflict
	}

	s.documents[key] = append([]byte(nil), data...)
	s.revisions[key] = expectedRevision + 1
	return s.revisions[key], nil
}

// Close is a no-op for the in-memory store
func (s *MemoryStore) Close() error {
	return nil
}
