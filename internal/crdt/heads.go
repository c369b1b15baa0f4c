package crdt

import (
	"slices"
	"sync"

	"github.com/iudanet/corekeeper/internal/models"
)

// HeadSet is a fork-aware multi-value register per register key.
//
// The heads of a key are the statements written to it that no other statement
// of the same key names in its links. Concurrent writes leave several heads;
// the winner is the greatest head in models.Compare order. The result depends
// only on the set of added statements, not on the order they were added in.
type HeadSet struct {
	registers map[string]*register
	mu        sync.RWMutex
}

type register struct {
	heads      map[string]*models.Statement
	superseded map[string]struct{} // ids, упомянутые в links statements этого ключа
}

// NewHeadSet создает пустой HeadSet.
func NewHeadSet() *HeadSet {
	return &HeadSet{
		registers: make(map[string]*register),
	}
}

// Add merges s into the register of s.RegisterKey().
// Returns true if the winner of that register changed.
func (h *HeadSet) Add(s *models.Statement) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	key := s.RegisterKey()
	r, ok := h.registers[key]
	if !ok {
		r = &register{
			heads:      make(map[string]*models.Statement),
			superseded: make(map[string]struct{}),
		}
		h.registers[key] = r
	}

	if _, exists := r.heads[s.ID]; exists {
		return false
	}
	before := r.winner()

	for _, link := range s.Links {
		r.superseded[link] = struct{}{}
		delete(r.heads, link)
	}
	// уже перекрыт statement, добавленным раньше
	if _, ok := r.superseded[s.ID]; !ok {
		r.heads[s.ID] = s
	}

	return before != r.winner()
}

// Heads возвращает heads ключа, от победителя к проигравшим.
func (h *HeadSet) Heads(key string) []*models.Statement {
	h.mu.RLock()
	defer h.mu.RUnlock()

	r, ok := h.registers[key]
	if !ok {
		return nil
	}
	heads := make([]*models.Statement, 0, len(r.heads))
	for _, s := range r.heads {
		heads = append(heads, s)
	}
	slices.SortFunc(heads, func(a, b *models.Statement) int {
		return models.Compare(b, a)
	})
	return heads
}

// HeadIDs возвращает id heads ключа в том же порядке, что и Heads.
func (h *HeadSet) HeadIDs(key string) []string {
	heads := h.Heads(key)
	ids := make([]string, len(heads))
	for i, s := range heads {
		ids[i] = s.ID
	}
	return ids
}

// Winner returns the winning statement of key, or nil if nothing was written.
// The returned statement must not be modified.
func (h *HeadSet) Winner(key string) *models.Statement {
	h.mu.RLock()
	defer h.mu.RUnlock()

	r, ok := h.registers[key]
	if !ok {
		return nil
	}
	return r.winner()
}

func (r *register) winner() *models.Statement {
	var best *models.Statement
	for _, s := range r.heads {
		if best == nil || s.IsNewerThan(best) {
			best = s
		}
	}
	return best
}

// Clear удаляет все регистры.
// Используется при перестроении состояния.
func (h *HeadSet) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.registers = make(map[string]*register)
}
