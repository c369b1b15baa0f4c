package replication

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Peer is one connection of the session. A peer that reconnects gets a new ConnectionID.
type Peer struct {
	ConnectionID string
	RemoteKey    string // hex ключ удаленного устройства
}

// PeerListener is told about connections opening and closing.
type PeerListener interface {
	OnPeerAdd(peer Peer)
	OnPeerRemove(peer Peer)
}

type peerEvent struct {
	peer  Peer
	added bool
}

// AddPeer registers a new connection to remoteKey and notifies listeners.
func (m *Machine) AddPeer(remoteKey string) Peer {
	peer := Peer{ConnectionID: uuid.NewString(), RemoteKey: remoteKey}
	m.peers[peer.ConnectionID] = peer
	m.logger.Info("Peer connected", "peer", remoteKey, "connection_id", peer.ConnectionID)
	m.listeners.Publish(peerEvent{peer: peer, added: true})
	return peer
}

// RemovePeer forgets the connection and notifies listeners.
// Unknown connection ids are ignored.
func (m *Machine) RemovePeer(connectionID string) {
	peer, ok := m.peers[connectionID]
	if !ok {
		return
	}
	delete(m.peers, connectionID)
	m.logger.Info("Peer disconnected", "peer", peer.RemoteKey, "connection_id", connectionID)
	m.listeners.Publish(peerEvent{peer: peer})
}

// Peers returns the open connections ordered by remote key.
func (m *Machine) Peers() []Peer {
	peers := make([]Peer, 0, len(m.peers))
	for _, p := range m.peers {
		peers = append(peers, p)
	}
	slices.SortFunc(peers, func(a, b Peer) int {
		if c := strings.Compare(a.RemoteKey, b.RemoteKey); c != 0 {
			return c
		}
		return strings.Compare(a.ConnectionID, b.ConnectionID)
	})
	return peers
}

// AddPeerListener subscribes l to connection changes. Already open
// connections are not replayed.
func (m *Machine) AddPeerListener(l PeerListener) (remove func()) {
	return m.listeners.Subscribe(func(e peerEvent) {
		if e.added {
			l.OnPeerAdd(e.peer)
			return
		}
		l.OnPeerRemove(e.peer)
	})
}
