package storage

import "errors"

// Common storage errors
var (
	// ErrBlockNotFound indicates that the requested index is past the end of a core
	ErrBlockNotFound = errors.New("block not found")

	// ErrCoreNotFound indicates that no core with the given key exists
	ErrCoreNotFound = errors.New("core not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")

	// ErrKeyNotFound indicates that no sealed device key is stored
	ErrKeyNotFound = errors.New("sealed key not found")
)
