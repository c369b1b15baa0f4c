package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/iudanet/corekeeper/internal/models"
)

func TestHaveExtension_MarshalLayout(t *testing.T) {
	m := NewHave([]byte{1, 2}, 5, bytes.Repeat([]byte{0xFF}, 10), models.NamespaceData)

	got, err := m.Marshal()
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0x0a, 0x02, 0x01, 0x02, // discoveryKey
		0x10, 0x05, // start
		0x1a, 0x01, 43, // encodedBitfield
		0x20, 0x02, // namespace = data
	}, got)
}

func TestHaveExtension_DefaultsOmitted(t *testing.T) {
	m := &HaveExtension{Namespace: models.NamespaceAuth}
	got, err := m.Marshal()
	require.NoError(t, err)
	assert.Empty(t, got)

	var decoded HaveExtension
	require.NoError(t, decoded.Unmarshal(got))
	assert.Equal(t, models.NamespaceAuth, decoded.Namespace)
	assert.Equal(t, uint32(0), decoded.Start)
}

func TestHaveExtension_RoundTrip(t *testing.T) {
	bits := append(make([]byte, 40), 0x0F, 0xFF, 0xFF, 0x01)
	for _, ns := range models.Namespaces {
		t.Run(string(ns), func(t *testing.T) {
			m := NewHave(bytes.Repeat([]byte{0xAB}, 32), 1<<31, bits, ns)
			b, err := m.Marshal()
			require.NoError(t, err)

			var decoded HaveExtension
			require.NoError(t, decoded.Unmarshal(b))
			assert.Equal(t, m.DiscoveryKey, decoded.DiscoveryKey)
			assert.Equal(t, m.Start, decoded.Start)
			assert.Equal(t, ns, decoded.Namespace)

			got, err := decoded.Bitfield()
			require.NoError(t, err)
			assert.Equal(t, bits, got)
		})
	}
}

func TestHaveExtension_SkipsUnknownFields(t *testing.T) {
	b := protowire.AppendTag(nil, 9, protowire.BytesType)
	b = protowire.AppendBytes(b, []byte("future"))
	b = protowire.AppendTag(b, haveFieldStart, protowire.VarintType)
	b = protowire.AppendVarint(b, 7)

	var m HaveExtension
	require.NoError(t, m.Unmarshal(b))
	assert.Equal(t, uint32(7), m.Start)
}

func TestHaveExtension_Corrupt(t *testing.T) {
	tests := []struct {
		name string
		b    []byte
	}{
		{name: "truncated tag", b: []byte{0x80}},
		{name: "truncated bytes", b: []byte{0x0a, 0x05, 0x01}},
		{name: "wrong wire type for start", b: []byte{0x12, 0x01, 0x00}},
		{name: "unknown namespace", b: []byte{0x20, 0x09}},
		{name: "start overflows uint32", b: protowire.AppendVarint([]byte{0x10}, 1<<32)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m HaveExtension
			assert.ErrorIs(t, m.Unmarshal(tt.b), ErrCorruptData)
		})
	}
}

func TestHaveExtension_BitfieldCorrupt(t *testing.T) {
	m := &HaveExtension{EncodedBitfield: []byte{4, 0x01}}
	_, err := m.Bitfield()
	assert.ErrorIs(t, err, ErrCorruptData)
}

func TestHaveExtension_MarshalUnknownNamespace(t *testing.T) {
	m := &HaveExtension{Namespace: "blobs"}
	_, err := m.Marshal()
	assert.Error(t, err)
}
