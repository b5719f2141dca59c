package folder

import (
	"context"
	"sync"
)

// BlobStore is the durable key-value store the collection lives in. One
// logical record, always read and written whole; the store itself offers no
// partial updates and no coordination between writers.
type BlobStore interface {
	// Read returns the blob stored under key. ok is false when no record
	// exists yet, which is not an error.
	Read(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Write replaces the blob stored under key in a single call.
	Write(ctx context.Context, key string, data []byte) error
}

// MemStore is an in-memory BlobStore for tests and ephemeral setups.
type MemStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{blobs: make(map[string][]byte)}
}

// Read implements BlobStore.
func (s *MemStore) Read(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.blobs[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, true, nil
}

// Write implements BlobStore.
func (s *MemStore) Write(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.blobs[key] = cp
	return nil
}
