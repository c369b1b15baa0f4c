package gossip

import "errors"

// ErrCorruptData indicates a shareAuth message that is not a list of core ids
var ErrCorruptData = errors.New("gossip: corrupt data")
