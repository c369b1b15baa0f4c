// Package gossip implements the shareAuth extension: when a peer connects,
// the device tells it which auth cores it knows, so the peer can start
// replicating them.
package gossip

import (
	"log/slog"
	"sync"

	"github.com/iudanet/corekeeper/internal/models"
	"github.com/iudanet/corekeeper/internal/replication"
)

// ExtensionName is the name the extension is registered under.
const ExtensionName = "shareAuth"

//go:generate moq -out host_mock_test.go . ExtensionHost Extension

// ExtensionHost is the bootstrap core whose replication connections carry
// extension messages.
type ExtensionHost interface {
	RegisterExtension(name string, onMessage func(peer replication.Peer, payload []byte)) Extension
}

// Extension sends messages over a registered extension channel.
// Send is fire-and-forget: delivery is bound to the connection lifetime.
type Extension interface {
	Send(peer replication.Peer, payload []byte)
}

// CoreIndex - источник известных core ids (coreindex.Registry)
type CoreIndex interface {
	GetByStoreNamespace(ns models.Namespace) []string
}

// Handler receives the auth core ids announced by a peer.
type Handler func(peer replication.Peer, coreIDs []string)

// ShareAuth announces local auth cores to every new connection exactly once.
type ShareAuth struct {
	ext     Extension
	index   CoreIndex
	handler Handler
	logger  *slog.Logger

	mu   sync.Mutex
	sent map[string]struct{} // connection id -> список уже отправлен
}

// New registers the shareAuth extension on host.
func New(host ExtensionHost, index CoreIndex, handler Handler, logger *slog.Logger) *ShareAuth {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &ShareAuth{
		index:   index,
		handler: handler,
		logger:  logger,
		sent:    make(map[string]struct{}),
	}
	s.ext = host.RegisterExtension(ExtensionName, s.onMessage)
	return s
}

// OnPeerAdd sends the known auth core ids to peer. Later registry updates
// are not announced on the same connection.
func (s *ShareAuth) OnPeerAdd(peer replication.Peer) {
	s.mu.Lock()
	if _, ok := s.sent[peer.ConnectionID]; ok {
		s.mu.Unlock()
		return
	}
	s.sent[peer.ConnectionID] = struct{}{}
	s.mu.Unlock()

	ids := s.index.GetByStoreNamespace(models.NamespaceAuth)
	payload, err := EncodeCoreIDs(ids)
	if err != nil {
		s.logger.Error("Failed to encode auth core ids", "peer", peer.RemoteKey, "error", err)
		return
	}

	s.ext.Send(peer, payload)
	s.logger.Debug("Auth core ids sent", "peer", peer.RemoteKey, "connection_id", peer.ConnectionID, "count", len(ids))
}

// OnPeerRemove forgets the connection.
func (s *ShareAuth) OnPeerRemove(peer replication.Peer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sent, peer.ConnectionID)
}

func (s *ShareAuth) onMessage(peer replication.Peer, payload []byte) {
	ids, err := DecodeCoreIDs(payload)
	if err != nil {
		s.logger.Warn("Dropping shareAuth message", "peer", peer.RemoteKey, "error", err)
		return
	}
	s.logger.Debug("Auth core ids received", "peer", peer.RemoteKey, "count", len(ids))

	if s.handler != nil {
		s.handler(peer, ids)
	}
}
