package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/corekeeper/internal/storage"
)

// Core is a storage.Core kept in a nested bucket of the cores bucket.
// Block keys are big-endian indexes, so cursor order is log order.
type Core struct {
	s   *Storage
	key string
}

// OpenCore returns the core with key, creating its bucket if missing.
func (s *Storage) OpenCore(ctx context.Context, key string) (storage.Core, error) {
	err := s.update(func(tx *bbolt.Tx) error {
		if _, err := tx.Bucket(bucketCores).CreateBucketIfNotExists([]byte(key)); err != nil {
			return fmt.Errorf("failed to create core bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Core{s: s, key: key}, nil
}

// GetCore returns an existing core.
func (s *Storage) GetCore(ctx context.Context, key string) (storage.Core, error) {
	err := s.view(func(tx *bbolt.Tx) error {
		if cores := tx.Bucket(bucketCores); cores == nil || cores.Bucket([]byte(key)) == nil {
			return fmt.Errorf("%w: %s", storage.ErrCoreNotFound, key)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Core{s: s, key: key}, nil
}

// ListCores returns the keys of all cores. BoltDB keeps keys sorted.
func (s *Storage) ListCores(ctx context.Context) ([]string, error) {
	var keys []string
	err := s.view(func(tx *bbolt.Tx) error {
		cores := tx.Bucket(bucketCores)
		if cores == nil {
			// read-only файл без buckets
			return nil
		}
		return cores.ForEachBucket(func(k []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list cores: %w", err)
	}
	return keys, nil
}

func (c *Core) Key() string {
	return c.key
}

// bucket возвращает bucket core или ErrCoreNotFound
func (c *Core) bucket(tx *bbolt.Tx) (*bbolt.Bucket, error) {
	cores := tx.Bucket(bucketCores)
	if cores == nil {
		return nil, fmt.Errorf("%w: %s", storage.ErrCoreNotFound, c.key)
	}
	b := cores.Bucket([]byte(c.key))
	if b == nil {
		return nil, fmt.Errorf("%w: %s", storage.ErrCoreNotFound, c.key)
	}
	return b, nil
}

func (c *Core) Append(ctx context.Context, block []byte) (uint64, error) {
	var index uint64
	err := c.s.update(func(tx *bbolt.Tx) error {
		b, err := c.bucket(tx)
		if err != nil {
			return err
		}
		// NextSequence начинается с 1
		seq, err := b.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to allocate block index: %w", err)
		}
		index = seq - 1
		if err := b.Put(indexKey(index), block); err != nil {
			return fmt.Errorf("failed to append block: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return index, nil
}

func (c *Core) Get(ctx context.Context, index uint64) ([]byte, error) {
	var block []byte
	err := c.s.view(func(tx *bbolt.Tx) error {
		b, err := c.bucket(tx)
		if err != nil {
			return err
		}
		data := b.Get(indexKey(index))
		if data == nil {
			return fmt.Errorf("%w: %s/%d", storage.ErrBlockNotFound, c.key, index)
		}
		// данные валидны только внутри транзакции
		block = append([]byte(nil), data...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return block, nil
}

func (c *Core) Length(ctx context.Context) (uint64, error) {
	var length uint64
	err := c.s.view(func(tx *bbolt.Tx) error {
		b, err := c.bucket(tx)
		if err != nil {
			return err
		}
		length = b.Sequence()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return length, nil
}

func indexKey(index uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, index)
	return key
}
