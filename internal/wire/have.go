// Package wire contains the binary extension messages exchanged on open
// replication connections. Field numbers and wire types are an interop
// contract with existing peers and must not change.
package wire

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/iudanet/corekeeper/internal/bitfield"
	"github.com/iudanet/corekeeper/internal/models"
)

// Номера полей HaveExtension
const (
	haveFieldDiscoveryKey    protowire.Number = 1
	haveFieldStart           protowire.Number = 2
	haveFieldEncodedBitfield protowire.Number = 3
	haveFieldNamespace       protowire.Number = 4
)

// namespaceNumbers - значения enum Namespace на проводе
var namespaceNumbers = map[models.Namespace]uint64{
	models.NamespaceAuth:      0,
	models.NamespaceConfig:    1,
	models.NamespaceData:      2,
	models.NamespaceBlobIndex: 3,
	models.NamespaceBlob:      4,
}

func namespaceFromNumber(v uint64) (models.Namespace, bool) {
	for ns, n := range namespaceNumbers {
		if n == v {
			return ns, true
		}
	}
	return "", false
}

// HaveExtension announces which blocks of a core the sender has,
// starting at block Start, as a run-length encoded bitfield.
type HaveExtension struct {
	Namespace       models.Namespace
	DiscoveryKey    []byte
	EncodedBitfield []byte
	Start           uint32
}

// NewHave builds a HaveExtension, encoding bits with the bitfield codec.
func NewHave(discoveryKey []byte, start uint32, bits []byte, ns models.Namespace) *HaveExtension {
	return &HaveExtension{
		DiscoveryKey:    discoveryKey,
		Start:           start,
		EncodedBitfield: bitfield.Encode(bits),
		Namespace:       ns,
	}
}

// Bitfield decodes EncodedBitfield.
func (m *HaveExtension) Bitfield() ([]byte, error) {
	bits, err := bitfield.Decode(m.EncodedBitfield)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptData, err)
	}
	return bits, nil
}

// Marshal encodes the message. Zero values are omitted.
func (m *HaveExtension) Marshal() ([]byte, error) {
	nsNumber, ok := namespaceNumbers[m.Namespace]
	if !ok && m.Namespace != "" {
		return nil, fmt.Errorf("unknown namespace %q", m.Namespace)
	}

	var b []byte
	if len(m.DiscoveryKey) > 0 {
		b = protowire.AppendTag(b, haveFieldDiscoveryKey, protowire.BytesType)
		b = protowire.AppendBytes(b, m.DiscoveryKey)
	}
	if m.Start != 0 {
		b = protowire.AppendTag(b, haveFieldStart, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(m.Start))
	}
	if len(m.EncodedBitfield) > 0 {
		b = protowire.AppendTag(b, haveFieldEncodedBitfield, protowire.BytesType)
		b = protowire.AppendBytes(b, m.EncodedBitfield)
	}
	if nsNumber != 0 {
		b = protowire.AppendTag(b, haveFieldNamespace, protowire.VarintType)
		b = protowire.AppendVarint(b, nsNumber)
	}
	return b, nil
}

// Unmarshal decodes b into m. Unknown fields are skipped.
func (m *HaveExtension) Unmarshal(b []byte) error {
	*m = HaveExtension{Namespace: models.NamespaceAuth}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case haveFieldDiscoveryKey:
			v, n, err := consumeBytes(typ, b)
			m.DiscoveryKey = v
			return n, err
		case haveFieldStart:
			v, n, err := consumeVarint(typ, b)
			if err == nil && v > math.MaxUint32 {
				err = fmt.Errorf("%w: start %d overflows uint32", ErrCorruptData, v)
			}
			m.Start = uint32(v)
			return n, err
		case haveFieldEncodedBitfield:
			v, n, err := consumeBytes(typ, b)
			m.EncodedBitfield = v
			return n, err
		case haveFieldNamespace:
			v, n, err := consumeVarint(typ, b)
			if err != nil {
				return n, err
			}
			ns, ok := namespaceFromNumber(v)
			if !ok {
				return n, fmt.Errorf("%w: unknown namespace %d", ErrCorruptData, v)
			}
			m.Namespace = ns
			return n, nil
		default:
			return skipField(num, typ, b)
		}
	})
}
