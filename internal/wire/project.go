package wire

import (
	"encoding/hex"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/iudanet/corekeeper/internal/models"
)

// CoreKeySize - длина ключа core в байтах
const CoreKeySize = 32

// ProjectExtension announces core keys per namespace, plus the keys the
// sender wants but does not have.
type ProjectExtension struct {
	WantCoreKeys      [][]byte
	AuthCoreKeys      [][]byte
	ConfigCoreKeys    [][]byte
	DataCoreKeys      [][]byte
	BlobIndexCoreKeys [][]byte
	BlobCoreKeys      [][]byte
}

// fields returns the repeated fields in field number order, starting at 1.
func (m *ProjectExtension) fields() []*[][]byte {
	return []*[][]byte{
		&m.WantCoreKeys,
		&m.AuthCoreKeys,
		&m.ConfigCoreKeys,
		&m.DataCoreKeys,
		&m.BlobIndexCoreKeys,
		&m.BlobCoreKeys,
	}
}

// KeysFor returns the announced keys of namespace ns.
func (m *ProjectExtension) KeysFor(ns models.Namespace) [][]byte {
	switch ns {
	case models.NamespaceAuth:
		return m.AuthCoreKeys
	case models.NamespaceConfig:
		return m.ConfigCoreKeys
	case models.NamespaceData:
		return m.DataCoreKeys
	case models.NamespaceBlobIndex:
		return m.BlobIndexCoreKeys
	case models.NamespaceBlob:
		return m.BlobCoreKeys
	default:
		return nil
	}
}

// SetKeysFor replaces the announced keys of namespace ns.
func (m *ProjectExtension) SetKeysFor(ns models.Namespace, keys [][]byte) {
	switch ns {
	case models.NamespaceAuth:
		m.AuthCoreKeys = keys
	case models.NamespaceConfig:
		m.ConfigCoreKeys = keys
	case models.NamespaceData:
		m.DataCoreKeys = keys
	case models.NamespaceBlobIndex:
		m.BlobIndexCoreKeys = keys
	case models.NamespaceBlob:
		m.BlobCoreKeys = keys
	}
}

// Marshal encodes the message; every key must be CoreKeySize bytes.
func (m *ProjectExtension) Marshal() ([]byte, error) {
	var b []byte
	for i, field := range m.fields() {
		num := protowire.Number(i + 1)
		for _, key := range *field {
			if len(key) != CoreKeySize {
				return nil, fmt.Errorf("field %d: core key must be %d bytes, got %d", num, CoreKeySize, len(key))
			}
			b = protowire.AppendTag(b, num, protowire.BytesType)
			b = protowire.AppendBytes(b, key)
		}
	}
	return b, nil
}

// Unmarshal decodes b into m. Keys of the wrong size make the message corrupt.
func (m *ProjectExtension) Unmarshal(b []byte) error {
	*m = ProjectExtension{}
	fields := m.fields()
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num < 1 || int(num) > len(fields) {
			return skipField(num, typ, b)
		}
		v, n, err := consumeBytes(typ, b)
		if err != nil {
			return n, err
		}
		if len(v) != CoreKeySize {
			return n, fmt.Errorf("%w: field %d: core key of %d bytes", ErrCorruptData, num, len(v))
		}
		field := fields[num-1]
		*field = append(*field, v)
		return n, nil
	})
}

// NamespaceIndex is the read side of the core ownership registry.
type NamespaceIndex interface {
	GetByStoreNamespace(ns models.Namespace) []string
}

// ProjectExtensionFromRegistry announces every core known to index, per namespace.
func ProjectExtensionFromRegistry(index NamespaceIndex) (*ProjectExtension, error) {
	m := &ProjectExtension{}
	for _, ns := range models.Namespaces {
		ids := index.GetByStoreNamespace(ns)
		keys := make([][]byte, 0, len(ids))
		for _, id := range ids {
			key, err := hex.DecodeString(id)
			if err != nil || len(key) != CoreKeySize {
				return nil, fmt.Errorf("invalid core id %q in namespace %s", id, ns)
			}
			keys = append(keys, key)
		}
		m.SetKeysFor(ns, keys)
	}
	return m, nil
}
