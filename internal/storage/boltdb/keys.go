package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/corekeeper/internal/crypto"
	"github.com/iudanet/corekeeper/internal/storage"
)

var deviceKey = []byte("device")

// SaveSealedKey stores the sealed device key, replacing any previous one
func (s *Storage) SaveSealedKey(ctx context.Context, key *crypto.SealedKey) error {
	return s.update(func(tx *bbolt.Tx) error {
		// Сериализуем данные в JSON
		data, err := json.Marshal(key)
		if err != nil {
			return fmt.Errorf("failed to marshal sealed key: %w", err)
		}

		if err := tx.Bucket(bucketKeys).Put(deviceKey, data); err != nil {
			return fmt.Errorf("failed to save sealed key: %w", err)
		}
		return nil
	})
}

// GetSealedKey retrieves the sealed device key
func (s *Storage) GetSealedKey(ctx context.Context) (*crypto.SealedKey, error) {
	var key *crypto.SealedKey

	err := s.view(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketKeys).Get(deviceKey)
		if data == nil {
			return storage.ErrKeyNotFound
		}

		key = &crypto.SealedKey{}
		if err := json.Unmarshal(data, key); err != nil {
			return fmt.Errorf("failed to unmarshal sealed key: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return key, nil
}
