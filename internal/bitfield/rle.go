// Package bitfield implements the run-length codec used to announce which
// blocks of a core a peer has.
//
// The encoding is a sequence of varint tagged tokens:
//
//	literal run: tag 2*N, followed by N raw bytes
//	repeat run:  tag 4*N + 1 (+2 when the bytes are 0xFF), N bytes of 0x00 or 0xFF
//
// Trailing zero bytes are never encoded; the decoder zero-fills them.
package bitfield

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// MaxDecodedLength ограничивает размер декодированного bitfield,
// чтобы короткое сообщение не могло заставить выделить гигабайты памяти.
const MaxDecodedLength = 1 << 26

// ErrCorruptData indicates a malformed token stream.
var ErrCorruptData = errors.New("bitfield: corrupt data")

const (
	tagRepeat  = 1
	tagAllOnes = 2
)

type token struct {
	start  int // для literal: начало во входе
	length int
	repeat bool
	ones   bool
}

// Encode returns the run-length encoding of bits.
func Encode(bits []byte) []byte {
	tokens := plan(bits)
	out := make([]byte, 0, encodedSize(tokens))
	for _, tok := range tokens {
		if tok.repeat {
			out = protowire.AppendVarint(out, repeatTag(tok.length, tok.ones))
			continue
		}
		out = protowire.AppendVarint(out, uint64(2*tok.length))
		out = append(out, bits[tok.start:tok.start+tok.length]...)
	}
	return out
}

// EncodingLength returns len(Encode(bits)) without allocating the output.
func EncodingLength(bits []byte) int {
	return encodedSize(plan(bits))
}

// plan делает один жадный проход слева направо и возвращает токены.
func plan(bits []byte) []token {
	n := len(bits)
	// хвостовые нулевые байты не кодируются
	for n > 0 && bits[n-1] == 0x00 {
		n--
	}

	var tokens []token
	litStart := 0
	flushLiteral := func(end int) {
		if end > litStart {
			tokens = append(tokens, token{start: litStart, length: end - litStart})
		}
	}

	i := 0
	for i < n {
		b := bits[i]
		if b != 0x00 && b != 0xFF {
			i++
			continue
		}
		j := i + 1
		for j < n && bits[j] == b {
			j++
		}
		runLen := j - i

		// Повтор выгоден, только если его тег плюс заголовок literal,
		// который придется открыть после него, строго меньше длины серии.
		cost := protowire.SizeVarint(repeatTag(runLen, b == 0xFF))
		if i > litStart && j < n {
			cost += protowire.SizeVarint(uint64(2 * (n - j)))
		}
		if cost < runLen {
			flushLiteral(i)
			tokens = append(tokens, token{length: runLen, repeat: true, ones: b == 0xFF})
			litStart = j
		}
		i = j
	}
	flushLiteral(n)
	return tokens
}

func encodedSize(tokens []token) int {
	size := 0
	for _, tok := range tokens {
		if tok.repeat {
			size += protowire.SizeVarint(repeatTag(tok.length, tok.ones))
			continue
		}
		size += protowire.SizeVarint(uint64(2*tok.length)) + tok.length
	}
	return size
}

func repeatTag(n int, ones bool) uint64 {
	tag := uint64(4*n) + tagRepeat
	if ones {
		tag += tagAllOnes
	}
	return tag
}

// DecodingLength returns the number of bytes the token stream describes.
func DecodingLength(enc []byte) (int, error) {
	total := 0
	err := walk(enc, func(length int, _ []byte, _ bool, _ bool) error {
		total += length
		if total > MaxDecodedLength {
			return fmt.Errorf("%w: decoded length exceeds %d", ErrCorruptData, MaxDecodedLength)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// Decode reconstructs exactly DecodingLength(enc) bytes.
func Decode(enc []byte) ([]byte, error) {
	length, err := DecodingLength(enc)
	if err != nil {
		return nil, err
	}
	out := make([]byte, length)
	if err := DecodeInto(out, enc); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeInto replays the tokens of enc into dst and zero-fills the rest.
// It fails with ErrCorruptData when the tokens run past len(dst); dst
// is left untouched in that case.
func DecodeInto(dst, enc []byte) error {
	length, err := DecodingLength(enc)
	if err != nil {
		return err
	}
	if length > len(dst) {
		return fmt.Errorf("%w: tokens describe %d bytes, buffer holds %d", ErrCorruptData, length, len(dst))
	}

	offset := 0
	_ = walk(enc, func(n int, literal []byte, repeat bool, ones bool) error {
		switch {
		case !repeat:
			copy(dst[offset:], literal)
		case ones:
			fill(dst[offset:offset+n], 0xFF)
		default:
			fill(dst[offset:offset+n], 0x00)
		}
		offset += n
		return nil
	})
	fill(dst[offset:], 0x00)
	return nil
}

// walk разбирает поток токенов и вызывает fn для каждого.
func walk(enc []byte, fn func(length int, literal []byte, repeat bool, ones bool) error) error {
	for len(enc) > 0 {
		tag, n := protowire.ConsumeVarint(enc)
		if n < 0 {
			return fmt.Errorf("%w: %w", ErrCorruptData, protowire.ParseError(n))
		}
		enc = enc[n:]

		if tag&tagRepeat == 0 {
			length := tag >> 1
			if length > uint64(len(enc)) {
				return fmt.Errorf("%w: literal run of %d bytes, %d available", ErrCorruptData, length, len(enc))
			}
			if err := fn(int(length), enc[:length], false, false); err != nil {
				return err
			}
			enc = enc[length:]
			continue
		}

		length := tag >> 2
		if length > MaxDecodedLength {
			return fmt.Errorf("%w: repeat run of %d bytes", ErrCorruptData, length)
		}
		if err := fn(int(length), nil, true, tag&tagAllOnes != 0); err != nil {
			return err
		}
	}
	return nil
}

func fill(b []byte, v byte) {
	for i := range b {
		b[i] = v
	}
}
