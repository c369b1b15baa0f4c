package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"
)

// SetMetadata saves a metadata value
func (s *Storage) SetMetadata(ctx context.Context, key, value string) error {
	return s.update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketMetadata).Put([]byte(key), []byte(value)); err != nil {
			return fmt.Errorf("failed to save metadata %s: %w", key, err)
		}
		return nil
	})
}

// GetMetadata retrieves a metadata value
// Returns "" if the key is not set
func (s *Storage) GetMetadata(ctx context.Context, key string) (string, error) {
	var value string

	err := s.view(func(tx *bbolt.Tx) error {
		value = string(tx.Bucket(bucketMetadata).Get([]byte(key)))
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to get metadata %s: %w", key, err)
	}

	return value, nil
}
