// Package memory provides a process-local key/value store. Contents vanish
// when the process exits; it backs tests and ephemeral demo runs.
package memory

import (
	"bytes"
	"context"
	"sync"

	"studyspace/pkg/domain"
)

var _ domain.KeyValueStore = (*Store)(nil)

// Store is a map guarded by a RWMutex. Payloads are copied on the way in and
// out so callers cannot mutate stored state.
type Store struct {
	mu      sync.RWMutex
	buckets map[string][]byte
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{buckets: make(map[string][]byte)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payload, ok := s.buckets[key]
	if !ok {
		return nil, false, nil
	}
	return bytes.Clone(payload), true, nil
}

func (s *Store) Set(_ context.Context, key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buckets[key] = bytes.Clone(payload)
	return nil
}

func (s *Store) Delete(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.buckets[key]
	delete(s.buckets, key)
	return ok, nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

// Keys returns the number of stored keys.
func (s *Store) Keys() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.buckets)
}
