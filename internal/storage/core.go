// Package storage defines the storage primitives the auth log is built on.
package storage

import (
	"context"
)

// Core is an append-only log of blocks written by a single device.
// Blocks are addressed by their zero-based index.
type Core interface {
	// Key returns the hex encoded public key of the core
	Key() string

	// Append writes block at the end of the core and returns its index
	Append(ctx context.Context, block []byte) (uint64, error)

	// Get returns the block at index, ErrBlockNotFound past the end
	Get(ctx context.Context, index uint64) ([]byte, error)

	// Length returns the number of blocks in the core
	Length(ctx context.Context) (uint64, error)
}

// CoreStore opens the cores known on this device.
type CoreStore interface {
	// OpenCore returns the core with key, creating an empty one if missing
	OpenCore(ctx context.Context, key string) (Core, error)

	// GetCore returns an existing core, ErrCoreNotFound otherwise
	GetCore(ctx context.Context, key string) (Core, error)

	// ListCores returns the keys of all cores, sorted
	ListCores(ctx context.Context) ([]string, error)
}
