package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// KeyPair Ed25519 ключи identity, устройства или core.
type KeyPair struct {
	PublicKey ed25519.PublicKey
	SecretKey ed25519.PrivateKey
}

// GenerateKeyPair создает новую случайную пару ключей.
func GenerateKeyPair() (*KeyPair, error) {
	pub, sec, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate key pair: %w", err)
	}
	return &KeyPair{PublicKey: pub, SecretKey: sec}, nil
}

// KeyPairFromSeed детерминированно восстанавливает пару ключей из 32-байтного seed.
func KeyPairFromSeed(seed []byte) (*KeyPair, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("%w: seed must be %d bytes, got %d", ErrInvalidKey, ed25519.SeedSize, len(seed))
	}
	sec := ed25519.NewKeyFromSeed(seed)
	return &KeyPair{PublicKey: sec.Public().(ed25519.PublicKey), SecretKey: sec}, nil
}

// ID returns the hex encoded public key.
func (k *KeyPair) ID() string {
	return hex.EncodeToString(k.PublicKey)
}

// Sign signs msg with the secret key.
func (k *KeyPair) Sign(msg []byte) []byte {
	return ed25519.Sign(k.SecretKey, msg)
}

// ParsePublicKey decodes a hex encoded Ed25519 public key.
func ParsePublicKey(id string) (ed25519.PublicKey, error) {
	raw, err := hex.DecodeString(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: public key must be %d bytes, got %d", ErrInvalidKey, ed25519.PublicKeySize, len(raw))
	}
	return ed25519.PublicKey(raw), nil
}

// Verify checks signature of msg against the hex encoded public key id.
func Verify(id string, msg, signature []byte) error {
	pub, err := ParsePublicKey(id)
	if err != nil {
		return err
	}
	if len(signature) != ed25519.SignatureSize || !ed25519.Verify(pub, msg, signature) {
		return ErrInvalidSignature
	}
	return nil
}

// Параметры Argon2id для ключа, которым шифруется секретный ключ устройства
const (
	// Argon2Time - количество итераций (time cost)
	Argon2Time = 1
	// Argon2Memory - объем памяти в KB (64MB = 64*1024 KB)
	Argon2Memory = 64 * 1024
	// Argon2Threads - количество параллельных потоков
	Argon2Threads = 4
	// SaltSize - размер соли в байтах
	SaltSize = 32
)

// GenerateSalt генерирует криптографически случайную соль
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// DeriveSealingKey выводит ключ AES-256 из passphrase через Argon2id.
func DeriveSealingKey(passphrase string, salt []byte) ([]byte, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("passphrase cannot be empty")
	}
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("salt must be %d bytes, got %d", SaltSize, len(salt))
	}
	return argon2.IDKey([]byte(passphrase), salt, Argon2Time, Argon2Memory, Argon2Threads, SealingKeySize), nil
}

// SealedKey зашифрованный секретный ключ для хранения на диске.
type SealedKey struct {
	PublicKey  []byte `json:"public_key"`
	Salt       []byte `json:"salt"`
	Ciphertext []byte `json:"ciphertext"`
}

// SealKeyPair шифрует seed секретного ключа ключом, выведенным из passphrase.
// Публичный ключ привязан к шифротексту как additional data.
func SealKeyPair(kp *KeyPair, passphrase string) (*SealedKey, error) {
	salt, err := GenerateSalt()
	if err != nil {
		return nil, err
	}
	key, err := DeriveSealingKey(passphrase, salt)
	if err != nil {
		return nil, err
	}
	ciphertext, err := Encrypt(kp.SecretKey.Seed(), key, kp.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to seal key: %w", err)
	}
	return &SealedKey{
		PublicKey:  append([]byte(nil), kp.PublicKey...),
		Salt:       salt,
		Ciphertext: ciphertext,
	}, nil
}

// OpenSealedKey расшифровывает пару ключей; ErrDecryptFailed при неверной passphrase.
func OpenSealedKey(sealed *SealedKey, passphrase string) (*KeyPair, error) {
	key, err := DeriveSealingKey(passphrase, sealed.Salt)
	if err != nil {
		return nil, err
	}
	seed, err := Decrypt(sealed.Ciphertext, key, sealed.PublicKey)
	if err != nil {
		return nil, err
	}
	return KeyPairFromSeed(seed)
}
