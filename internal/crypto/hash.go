package crypto

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// discoveryNamespace - сообщение, которое хешируется ключом core для discovery key
var discoveryNamespace = []byte("hypercore")

// StatementID возвращает hex BLAKE2b-256 от подписанного payload и подписи.
// Одинаковый statement всегда получает одинаковый ID на любом пире.
func StatementID(payload, signature []byte) string {
	h, _ := blake2b.New256(nil)
	h.Write(payload)
	h.Write(signature)
	return hex.EncodeToString(h.Sum(nil))
}

// DiscoveryKey returns the keyed BLAKE2b-256 hash of "hypercore" under coreKey.
// Peers announce discovery keys so the core key itself is never revealed.
func DiscoveryKey(coreKey []byte) []byte {
	h, err := blake2b.New256(coreKey)
	if err != nil {
		// ключ длиннее 64 байт: хешируем без ключа, чтобы не паниковать
		sum := blake2b.Sum256(append(append([]byte(nil), coreKey...), discoveryNamespace...))
		return sum[:]
	}
	h.Write(discoveryNamespace)
	return h.Sum(nil)
}

// ProjectID derives the project id from the hex identity id of the project creator.
func ProjectID(creatorID string) string {
	sum := blake2b.Sum256([]byte("project\x00" + creatorID))
	return hex.EncodeToString(sum[:])
}
