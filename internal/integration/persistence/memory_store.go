// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"sync"

	"github.com/finance-tracker/lucapp/internal/application/adapter"
	domainerror "github.com/finance-tracker/lucapp/internal/domain/error"
)

// memoryStore implements adapter.KeyValueStore in process memory.
type memoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryStore creates an empty in-memory key-value store.
func NewMemoryStore() adapter.KeyValueStore {
	return &memoryStore{
		entries: make(map[string][]byte),
	}
}

// Get returns a copy of the value stored under key.
func (s *memoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.entries[key]
	if !ok {
		return nil, domainerror.ErrKeyNotFound
	}
	return append([]byte(nil), value...), nil
}

// Set stores a copy of value under key.
func (s *memoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = append([]byte(nil), value...)
	return nil
}

// Delete removes key.
func (s *memoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}
