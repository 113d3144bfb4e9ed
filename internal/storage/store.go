// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by BlobStore.Get when nothing is stored under a key.
var ErrNotFound = errors.New("blob not found")

// BlobStore is a durable key-value store of opaque documents.
// The tab store keeps its whole collection under a single well-known key,
// so implementations only need whole-value reads and writes.
type BlobStore interface {
	// Get returns the value stored under key.
	// Returns ErrNotFound (possibly wrapped) if the key has never been written.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put replaces the value stored under key.
	Put(ctx context.Context, key string, value []byte) error

	// Close releases any resources held by the store.
	Close() error
}
