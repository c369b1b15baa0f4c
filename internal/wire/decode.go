package wire

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// consumeFields проходит по всем полям сообщения и вызывает fn для значения каждого.
// fn возвращает количество прочитанных байт значения.
func consumeFields(b []byte, fn func(num protowire.Number, typ protowire.Type, b []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %w", ErrCorruptData, protowire.ParseError(n))
		}
		b = b[n:]

		m, err := fn(num, typ, b)
		if err != nil {
			return err
		}
		b = b[m:]
	}
	return nil
}

func consumeBytes(typ protowire.Type, b []byte) ([]byte, int, error) {
	if typ != protowire.BytesType {
		return nil, 0, fmt.Errorf("%w: expected bytes, got wire type %d", ErrCorruptData, typ)
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, 0, fmt.Errorf("%w: %w", ErrCorruptData, protowire.ParseError(n))
	}
	// копируем, чтобы сообщение не ссылалось на буфер транспорта
	return append([]byte(nil), v...), n, nil
}

func consumeVarint(typ protowire.Type, b []byte) (uint64, int, error) {
	if typ != protowire.VarintType {
		return 0, 0, fmt.Errorf("%w: expected varint, got wire type %d", ErrCorruptData, typ)
	}
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, 0, fmt.Errorf("%w: %w", ErrCorruptData, protowire.ParseError(n))
	}
	return v, n, nil
}

func skipField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	n := protowire.ConsumeFieldValue(num, typ, b)
	if n < 0 {
		return 0, fmt.Errorf("%w: %w", ErrCorruptData, protowire.ParseError(n))
	}
	return n, nil
}
