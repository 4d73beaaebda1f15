// Package storage is the persistence shim: named slots holding JSON documents,
// one slot per record collection, behind a small key-value interface.
package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Store.Get when the key has never been written
	// or was deleted.
	ErrNotFound = errors.New("storage: key not found")

	// ErrCorrupt is returned when a slot holds bytes that do not decode.
	ErrCorrupt = errors.New("storage: corrupt value")
)

// Store is a flat key-value store. Values are opaque byte slices; every
// write replaces the whole value for the key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Keys returns every key starting with prefix, sorted.
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}
