// Package memory provides an in-process storage.BlobStore, used by tests
// and by the ephemeral backend.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/mmynk/tabsplit/internal/storage"
)

var _ storage.BlobStore = (*Store)(nil)

// Store keeps blobs in a map. Contents are lost when the process exits.
type Store struct {
	mu    sync.Mutex
	blobs map[string][]byte
	puts  int

	// FailPut, when set, is returned by every Put. Tests use it to simulate
	// a full disk or a broken backend.
	FailPut error
}

// New creates an empty Store.
func New() *Store {
	return &Store{blobs: make(map[string][]byte)}
}

// Get returns a copy of the stored value.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.blobs[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, key)
	}
	return append([]byte(nil), v...), nil
}

// Put stores a copy of value.
func (s *Store) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailPut != nil {
		return s.FailPut
	}
	s.blobs[key] = append([]byte(nil), value...)
	s.puts++
	return nil
}

// Set writes a raw value, bypassing FailPut. Handy for seeding corrupt data.
func (s *Store) Set(key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = append([]byte(nil), value...)
}

// Puts returns how many successful writes the store has seen.
func (s *Store) Puts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.puts
}

func (s *Store) Close() error { return nil }
