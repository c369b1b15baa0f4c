package wire

import "errors"

var (
	// ErrCorruptData indicates a malformed message; the whole message is dropped
	ErrCorruptData = errors.New("wire: corrupt data")
)
