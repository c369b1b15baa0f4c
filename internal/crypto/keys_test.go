package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSalt(t *testing.T) {
	salt, err := GenerateSalt()
	require.NoError(t, err)
	assert.Len(t, salt, SaltSize)

	other, err := GenerateSalt()
	require.NoError(t, err)
	assert.NotEqual(t, salt, other)
}

func TestKeyPair_SignVerify(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)

	sig := kp.Sign([]byte("hello"))
	require.NoError(t, Verify(kp.ID(), []byte("hello"), sig))

	assert.ErrorIs(t, Verify(kp.ID(), []byte("hello!"), sig), ErrInvalidSignature)
	assert.ErrorIs(t, Verify(kp.ID(), []byte("hello"), sig[:10]), ErrInvalidSignature)
	assert.ErrorIs(t, Verify("zz", []byte("hello"), sig), ErrInvalidKey)
	assert.ErrorIs(t, Verify("abcd", []byte("hello"), sig), ErrInvalidKey)
}

func TestKeyPairFromSeed(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)

	a, err := KeyPairFromSeed(seed)
	require.NoError(t, err)
	b, err := KeyPairFromSeed(seed)
	require.NoError(t, err)
	assert.Equal(t, a.ID(), b.ID())

	_, err = KeyPairFromSeed([]byte{1, 2})
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestDeriveSealingKey(t *testing.T) {
	salt := bytes.Repeat([]byte{1}, SaltSize)

	tests := []struct {
		name       string
		passphrase string
		salt       []byte
		errMsg     string
	}{
		{name: "success", passphrase: "correct horse", salt: salt},
		{name: "empty passphrase", passphrase: "", salt: salt, errMsg: "passphrase cannot be empty"},
		{name: "short salt", passphrase: "correct horse", salt: []byte{1}, errMsg: "salt must be"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := DeriveSealingKey(tt.passphrase, tt.salt)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Len(t, key, SealingKeySize)

			// детерминированность
			again, err := DeriveSealingKey(tt.passphrase, tt.salt)
			require.NoError(t, err)
			assert.Equal(t, key, again)
		})
	}
}

func TestSealOpenKeyPair(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)

	sealed, err := SealKeyPair(kp, "passphrase-1")
	require.NoError(t, err)
	assert.Equal(t, []byte(kp.PublicKey), sealed.PublicKey)
	assert.NotContains(t, string(sealed.Ciphertext), string(kp.SecretKey.Seed()))

	opened, err := OpenSealedKey(sealed, "passphrase-1")
	require.NoError(t, err)
	assert.Equal(t, kp.ID(), opened.ID())
	assert.Equal(t, kp.SecretKey, opened.SecretKey)

	_, err = OpenSealedKey(sealed, "wrong")
	assert.ErrorIs(t, err, ErrDecryptFailed)
}
