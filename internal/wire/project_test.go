package wire

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/corekeeper/internal/models"
)

func key(b byte) []byte {
	return bytes.Repeat([]byte{b}, CoreKeySize)
}

func TestProjectExtension_RoundTrip(t *testing.T) {
	m := &ProjectExtension{
		WantCoreKeys: [][]byte{key(1)},
		AuthCoreKeys: [][]byte{key(2), key(3)},
		DataCoreKeys: [][]byte{key(4)},
		BlobCoreKeys: [][]byte{key(5)},
	}

	b, err := m.Marshal()
	require.NoError(t, err)
	// первый тег: поле 1, bytes
	assert.Equal(t, byte(0x0a), b[0])

	var decoded ProjectExtension
	require.NoError(t, decoded.Unmarshal(b))
	assert.Equal(t, m.WantCoreKeys, decoded.WantCoreKeys)
	assert.Equal(t, m.AuthCoreKeys, decoded.AuthCoreKeys)
	assert.Equal(t, m.DataCoreKeys, decoded.DataCoreKeys)
	assert.Equal(t, m.BlobCoreKeys, decoded.BlobCoreKeys)
	assert.Empty(t, decoded.ConfigCoreKeys)
	assert.Empty(t, decoded.BlobIndexCoreKeys)
}

func TestProjectExtension_RejectsShortKeys(t *testing.T) {
	m := &ProjectExtension{AuthCoreKeys: [][]byte{{1, 2, 3}}}
	_, err := m.Marshal()
	require.Error(t, err)

	var decoded ProjectExtension
	err = decoded.Unmarshal([]byte{0x12, 0x03, 1, 2, 3})
	assert.ErrorIs(t, err, ErrCorruptData)
}

type fakeIndex map[models.Namespace][]string

func (f fakeIndex) GetByStoreNamespace(ns models.Namespace) []string {
	return f[ns]
}

func TestProjectExtensionFromRegistry(t *testing.T) {
	index := fakeIndex{
		models.NamespaceAuth: {hex.EncodeToString(key(7)), hex.EncodeToString(key(8))},
		models.NamespaceBlob: {hex.EncodeToString(key(9))},
	}

	m, err := ProjectExtensionFromRegistry(index)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{key(7), key(8)}, m.KeysFor(models.NamespaceAuth))
	assert.Equal(t, [][]byte{key(9)}, m.KeysFor(models.NamespaceBlob))
	assert.Empty(t, m.KeysFor(models.NamespaceData))
	assert.Empty(t, m.WantCoreKeys)

	_, err = ProjectExtensionFromRegistry(fakeIndex{models.NamespaceData: {"zz"}})
	assert.Error(t, err)
}
