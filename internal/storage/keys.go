package storage

import (
	"context"

	"github.com/iudanet/corekeeper/internal/crypto"
)

// KeyStorage хранит зашифрованный секретный ключ устройства.
// Шифрование и расшифровка выполняются вызывающим кодом (crypto.SealKeyPair).
type KeyStorage interface {
	SaveSealedKey(ctx context.Context, key *crypto.SealedKey) error

	// GetSealedKey returns ErrKeyNotFound if the device was not initialized
	GetSealedKey(ctx context.Context) (*crypto.SealedKey, error)
}

// MetadataStorage хранит небольшие значения конфигурации устройства (id проекта и т.п.)
type MetadataStorage interface {
	SetMetadata(ctx context.Context, key, value string) error

	// GetMetadata returns "" if the key is not set
	GetMetadata(ctx context.Context, key string) (string, error)
}
