// Package replication tracks which namespaces of a replication session are
// actively replicating and which peers are connected to it.
//
// A Machine is not safe for concurrent use: one instance belongs to one
// session and is driven from a single control flow.
package replication

import (
	"log/slog"
	"slices"

	"github.com/iudanet/corekeeper/internal/events"
	"github.com/iudanet/corekeeper/internal/models"
)

//go:generate moq -out replicator_mock_test.go . Replicator PeerListener

// Replicator wires the cores of a namespace into the replication stream
// and takes them out again.
type Replicator interface {
	EnableNamespace(ns models.Namespace)
	DisableNamespace(ns models.Namespace)
}

// State - снимок включенных namespaces в порядке models.Namespaces
type State struct {
	Enabled []models.Namespace
}

// Has reports whether ns is enabled in the snapshot.
func (s State) Has(ns models.Namespace) bool {
	return slices.Contains(s.Enabled, ns)
}

// Machine is the replication state of one session.
type Machine struct {
	replicator Replicator
	logger     *slog.Logger
	enabled    map[models.Namespace]struct{}
	changes    events.Feed[State]

	peers     map[string]Peer
	listeners events.Feed[peerEvent]
}

// New creates a machine in the initial state: only auth is enabled.
// The replicator is not called for the initial auth namespace.
func New(replicator Replicator, logger *slog.Logger) *Machine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Machine{
		replicator: replicator,
		logger:     logger,
		enabled:    map[models.Namespace]struct{}{models.NamespaceAuth: {}},
		peers:      make(map[string]Peer),
	}
}

// EnableNamespace starts replicating ns. Enabling an enabled namespace does nothing.
func (m *Machine) EnableNamespace(ns models.Namespace) {
	if _, ok := m.enabled[ns]; ok {
		return
	}
	m.enabled[ns] = struct{}{}
	m.replicator.EnableNamespace(ns)
	m.logger.Debug("Namespace enabled", "namespace", ns)
	m.changes.Publish(m.State())
}

// DisableNamespace stops replicating ns. auth stays enabled.
func (m *Machine) DisableNamespace(ns models.Namespace) {
	if ns == models.NamespaceAuth {
		return
	}
	if _, ok := m.enabled[ns]; !ok {
		return
	}
	delete(m.enabled, ns)
	m.replicator.DisableNamespace(ns)
	m.logger.Debug("Namespace disabled", "namespace", ns)
	m.changes.Publish(m.State())
}

// DisableAll clears every namespace, auth included, without calling the
// replicator. It is used when the whole stream is being torn down.
func (m *Machine) DisableAll() {
	if len(m.enabled) == 0 {
		return
	}
	clear(m.enabled)
	m.logger.Debug("All namespaces disabled")
	m.changes.Publish(m.State())
}

// State returns a snapshot of the enabled namespaces.
func (m *Machine) State() State {
	enabled := make([]models.Namespace, 0, len(m.enabled))
	for _, ns := range models.Namespaces {
		if _, ok := m.enabled[ns]; ok {
			enabled = append(enabled, ns)
		}
	}
	return State{Enabled: enabled}
}

// Subscribe calls fn with the new state after every change.
func (m *Machine) Subscribe(fn func(State)) (unsubscribe func()) {
	return m.changes.Subscribe(fn)
}
