// Package coreindex keeps the ids of known cores grouped by namespace.
// It is fed by the current ownership records of the auth store: a core that
// is claimed again under another namespace moves to that namespace.
package coreindex

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/iudanet/corekeeper/internal/models"
)

//go:generate moq -out source_mock_test.go . OwnershipSource

// OwnershipSource - источник записей о владении cores (authstore.Store)
type OwnershipSource interface {
	SubscribeCoreOwnership(fn func(models.CoreOwnership)) (unsubscribe func())
	CoreOwnerships() []models.CoreOwnership
}

// Registry maps a namespace to the ids of cores currently owned in it.
// Safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	byNamespace map[models.Namespace]map[string]struct{}
	byCore      map[string]models.Namespace
	touched     map[string]struct{} // cores из событий, пришедших во время Attach
	unsubscribe func()
	logger      *slog.Logger
}

// New creates an empty registry.
func New(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Registry{
		byNamespace: make(map[models.Namespace]map[string]struct{}),
		byCore:      make(map[string]models.Namespace),
		logger:      logger,
	}
}

// Attach subscribes the registry to source and loads the records source already has.
// Attaching again replaces the previous subscription.
func (r *Registry) Attach(source OwnershipSource) {
	// сначала подписка, потом snapshot. Core, о котором событие пришло
	// раньше snapshot, не перезаписывается: события приходят в порядке
	// изменений, и последнее из них актуально
	r.mu.Lock()
	r.touched = make(map[string]struct{})
	r.mu.Unlock()

	unsubscribe := source.SubscribeCoreOwnership(r.Add)
	snapshot := source.CoreOwnerships()

	r.mu.Lock()
	for _, o := range snapshot {
		if _, ok := r.touched[o.CoreID]; !ok {
			r.add(o)
		}
	}
	r.touched = nil
	previous := r.unsubscribe
	r.unsubscribe = unsubscribe
	cores := len(r.byCore)
	r.mu.Unlock()

	if previous != nil {
		previous()
	}
	r.logger.Debug("Core registry attached", "cores", cores)
}

// Close stops receiving updates. The collected ids stay readable.
func (r *Registry) Close() {
	r.mu.Lock()
	unsubscribe := r.unsubscribe
	r.unsubscribe = nil
	r.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// Add records the current owner of a core. A core already known under
// another namespace is moved. Records with an unknown namespace are ignored.
func (r *Registry) Add(o models.CoreOwnership) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.add(o)
}

func (r *Registry) add(o models.CoreOwnership) {
	if !o.StoreType.Valid() || o.CoreID == "" {
		r.logger.Warn("Ignoring core ownership record", "core_id", o.CoreID, "store_type", o.StoreType)
		return
	}

	if r.touched != nil {
		r.touched[o.CoreID] = struct{}{}
	}
	previous, ok := r.byCore[o.CoreID]
	if ok && previous == o.StoreType {
		return
	}
	if ok {
		delete(r.byNamespace[previous], o.CoreID)
		r.logger.Debug("Core moved to another namespace", "core_id", o.CoreID, "from", previous, "to", o.StoreType)
	}

	ids, exists := r.byNamespace[o.StoreType]
	if !exists {
		ids = make(map[string]struct{})
		r.byNamespace[o.StoreType] = ids
	}
	ids[o.CoreID] = struct{}{}
	r.byCore[o.CoreID] = o.StoreType
}

// GetByStoreNamespace returns a sorted copy of the core ids claimed in ns.
func (r *Registry) GetByStoreNamespace(ns models.Namespace) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.byNamespace[ns]))
	for id := range r.byNamespace[ns] {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Namespaces returns the namespaces that have at least one core, in canonical order.
func (r *Registry) Namespaces() []models.Namespace {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Namespace
	for _, ns := range models.Namespaces {
		if len(r.byNamespace[ns]) > 0 {
			out = append(out, ns)
		}
	}
	return out
}

// Len returns the number of distinct cores across all namespaces.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byCore)
}
