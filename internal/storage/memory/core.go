// Package memory implements storage.CoreStore in memory. Used in tests and
// for ephemeral devices.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/iudanet/corekeeper/internal/storage"
)

// Store is an in-memory storage.CoreStore.
type Store struct {
	cores map[string]*Core
	mu    sync.Mutex
}

// New создает пустое хранилище.
func New() *Store {
	return &Store{cores: make(map[string]*Core)}
}

// OpenCore returns the core with key, creating it if missing.
func (s *Store) OpenCore(ctx context.Context, key string) (storage.Core, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cores[key]
	if !ok {
		c = NewCore(key)
		s.cores[key] = c
	}
	return c, nil
}

// GetCore returns an existing core.
func (s *Store) GetCore(ctx context.Context, key string) (storage.Core, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cores[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrCoreNotFound, key)
	}
	return c, nil
}

// ListCores returns the keys of all cores, sorted.
func (s *Store) ListCores(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.cores))
	for key := range s.cores {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys, nil
}

// Core is an in-memory append-only log.
type Core struct {
	key    string
	blocks [][]byte
	mu     sync.RWMutex
}

// NewCore создает пустой core с ключом key.
func NewCore(key string) *Core {
	return &Core{key: key}
}

func (c *Core) Key() string {
	return c.key
}

func (c *Core) Append(ctx context.Context, block []byte) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.blocks = append(c.blocks, slices.Clone(block))
	return uint64(len(c.blocks) - 1), nil
}

func (c *Core) Get(ctx context.Context, index uint64) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if index >= uint64(len(c.blocks)) {
		return nil, fmt.Errorf("%w: %s/%d", storage.ErrBlockNotFound, c.key, index)
	}
	return slices.Clone(c.blocks[index]), nil
}

func (c *Core) Length(ctx context.Context) (uint64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return uint64(len(c.blocks)), nil
}
