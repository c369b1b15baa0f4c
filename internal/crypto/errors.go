package crypto

import "errors"

var (
	// ErrInvalidSignature indicates that a signature does not verify
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrInvalidKey indicates a malformed public or secret key
	ErrInvalidKey = errors.New("invalid key")

	// ErrDecryptFailed indicates wrong passphrase or corrupted sealed data
	ErrDecryptFailed = errors.New("failed to decrypt: authentication failed or corrupted data")
)
