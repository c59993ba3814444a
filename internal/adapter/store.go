package adapter

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Store.Get when nothing was saved under a key.
var ErrNotFound = errors.New("blob not found")

// Store is a small key/value blob store. A blob is addressed by a namespace
// and a one byte tag inside it.
type Store interface {
	Put(ctx context.Context, namespace string, tag byte, blob []byte) error
	Get(ctx context.Context, namespace string, tag byte) ([]byte, error)
	Close() error
}

type blobKey struct {
	namespace string
	tag       byte
}

// MemoryStore keeps blobs in process memory. Contents are lost on exit.
type MemoryStore struct {
	mu    sync.Mutex
	blobs map[blobKey][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[blobKey][]byte)}
}

// Put stores a copy of blob.
func (s *MemoryStore) Put(ctx context.Context, namespace string, tag byte, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[blobKey{namespace: namespace, tag: tag}] = append([]byte{}, blob...)

	return nil
}

// Get returns a copy of the stored blob or ErrNotFound.
func (s *MemoryStore) Get(ctx context.Context, namespace string, tag byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	blob, ok := s.blobs[blobKey{namespace: namespace, tag: tag}]
	if !ok {
		return nil, ErrNotFound
	}

	return append([]byte{}, blob...), nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	return nil
}
