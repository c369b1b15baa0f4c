package gossip

import (
	"encoding/json"
	"fmt"

	"github.com/iudanet/corekeeper/internal/validation"
)

// MaxCoreIDs ограничивает число ids в одном сообщении
const MaxCoreIDs = 4096

// EncodeCoreIDs returns the shareAuth payload: a JSON array of hex core ids.
func EncodeCoreIDs(ids []string) ([]byte, error) {
	if ids == nil {
		ids = []string{}
	}
	payload, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal core ids: %w", err)
	}
	return payload, nil
}

// DecodeCoreIDs parses a shareAuth payload. Duplicates are dropped, the order
// of first occurrence is kept. Any malformed id rejects the whole message.
func DecodeCoreIDs(payload []byte) ([]string, error) {
	var ids []string
	if err := json.Unmarshal(payload, &ids); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptData, err)
	}
	if ids == nil {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrCorruptData)
	}
	if len(ids) > MaxCoreIDs {
		return nil, fmt.Errorf("%w: %d core ids, at most %d allowed", ErrCorruptData, len(ids), MaxCoreIDs)
	}

	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if err := validation.ValidateHexKey("core_id", id); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptData, err)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}
