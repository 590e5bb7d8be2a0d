// Package blobkv stores key/value payloads as objects in a blob.Store, so the
// feedback log can live on the local filesystem or in an S3 bucket.
package blobkv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sync"

	"studyspace/internal/blob"
	"studyspace/pkg/domain"
)

var _ domain.KeyValueStore = (*Store)(nil)

// DefaultPrefix namespaces key/value objects inside the bucket.
const DefaultPrefix = "kv"

// Store adapts a create-only blob.Store to replace semantics. Set deletes the
// previous object before writing the new one; the mutex serialises reads
// with that pair so Get never lands in the gap between delete and put.
type Store struct {
	mu     sync.Mutex
	blobs  blob.Store
	prefix string
}

// New wraps blobs, storing keys under prefix (DefaultPrefix when empty).
func New(blobs blob.Store, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{blobs: blobs, prefix: prefix}
}

func (s *Store) objectKey(key string) string { return path.Join(s.prefix, key) }

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, rc, err := s.blobs.Get(ctx, s.objectKey(key))
	if errors.Is(err, blob.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	defer func() { _ = rc.Close() }()
	payload, err := io.ReadAll(rc)
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	return payload, true, nil
}

func (s *Store) Set(ctx context.Context, key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	objKey := s.objectKey(key)
	if _, err := s.blobs.Delete(ctx, objKey); err != nil {
		return fmt.Errorf("replace %s: %w", key, err)
	}
	opts := blob.PutOptions{ContentType: "application/json", Metadata: map[string]string{"kv-key": key}}
	if _, err := s.blobs.Put(ctx, objKey, bytes.NewReader(payload), opts); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existed, err := s.blobs.Delete(ctx, s.objectKey(key))
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", key, err)
	}
	return existed, nil
}

// Close is a no-op; the blob store owns no closable resources.
func (s *Store) Close() error { return nil }
