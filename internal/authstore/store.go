// Package authstore materializes the signed authorization log of a project.
//
// Statements arrive from the local device (AppendStatement) or from replicated
// cores (Ingest, Sync). Every statement is checked against its causal past: the
// set of accepted statements reachable through its links. Statements whose links
// are not yet accepted wait in a causal barrier. Accepted statements are merged
// into fork-aware registers, so the materialized state depends only on the set
// of accepted statements and not on the order they arrived in.
package authstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/iudanet/corekeeper/internal/crdt"
	"github.com/iudanet/corekeeper/internal/crypto"
	"github.com/iudanet/corekeeper/internal/events"
	"github.com/iudanet/corekeeper/internal/models"
	"github.com/iudanet/corekeeper/internal/storage"
)

// entry - statement в arena вместе с состоянием обработки
type entry struct {
	stmt    *models.Statement
	err     error               // причина для rejected и unresolvable
	missing map[string]struct{} // для pending: links, которые еще не приняты
	past    vclock              // для accepted: causal past вместе с самим statement
	from    *blockRef           // блок core, из которого statement пришел через Sync
	status  Status
	// время постановки в очередь ожидания, для PendingTTL
	receivedAt time.Time
}

// blockRef - позиция блока в реплицированном core
type blockRef struct {
	core  string
	index uint64
}

// position - место statement в цепочке устройства
type position struct {
	device string
	index  uint64
}

// outcome - изменение статуса, о котором нужно сообщить после снятия блокировки
type outcome struct {
	stmt      *models.Statement
	err       error
	ownership *models.CoreOwnership // текущий владелец core после accept coreOwnership
	status    Status
}

// Store is the AuthStore of one device.
type Store struct {
	cfg    Config
	logger *slog.Logger
	clock  *crdt.LamportClock
	heads  *crdt.HeadSet

	mu        sync.Mutex
	publishMu sync.Mutex // порядок доставки событий совпадает с порядком изменений
	closed    bool
	arena     map[string]*entry
	pending   map[string]*entry
	waiting   map[string]map[string]struct{} // missing id -> ожидающие statements
	projects  map[string][]string            // project id -> genesis statements
	registers map[string][]*entry            // register key -> accepted, по models.Compare
	authored  map[string][]*entry            // author id -> accepted, по AuthorIndex
	positions map[position]*entry
	cores     []string          // claimed core ids в порядке первого claim
	cursors   map[string]uint64 // core key -> следующий индекс для Sync
	localHead string

	accepted  events.Feed[*models.Statement]
	ownership events.Feed[models.CoreOwnership]
	dropped   events.Feed[Dropped]
}

// New creates the store and replays the device's own core.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Store, error) {
	if cfg.Device == nil {
		return nil, fmt.Errorf("device key pair is required")
	}
	if cfg.Core == nil {
		return nil, fmt.Errorf("device core is required")
	}
	cfg.withDefaults()

	s := &Store{
		cfg:    cfg,
		logger: discardLogger(logger),
		clock:  crdt.NewLamportClock(),
		heads:  crdt.NewHeadSet(),
	}
	s.reset()

	result, err := s.Sync(ctx, cfg.Core)
	if err != nil {
		return nil, fmt.Errorf("failed to replay device core: %w", err)
	}

	s.logger.Info("Auth store opened",
		"identity_id", cfg.IdentityID,
		"device_id", cfg.Device.ID(),
		"accepted", result.Accepted,
		"pending", result.Pending,
		"rejected", result.Rejected)

	return s, nil
}

// reset очищает материализованное состояние. Вызывается под s.mu или до публикации s.
func (s *Store) reset() {
	s.arena = make(map[string]*entry)
	s.pending = make(map[string]*entry)
	s.waiting = make(map[string]map[string]struct{})
	s.projects = make(map[string][]string)
	s.registers = make(map[string][]*entry)
	s.authored = make(map[string][]*entry)
	s.positions = make(map[position]*entry)
	s.cores = nil
	s.cursors = make(map[string]uint64)
	s.localHead = ""
	s.heads.Clear()
	s.clock.SetTimestamp(0)
}

// IdentityID returns the identity the local device writes as.
func (s *Store) IdentityID() string {
	return s.cfg.IdentityID
}

// DeviceID returns the key that signs local statements.
func (s *Store) DeviceID() string {
	return s.cfg.Device.ID()
}

// Close drops every pending statement and rejects further calls.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true

	var outs []outcome
	for _, id := range sortedKeys(s.pending) {
		outs = append(outs, s.drop(s.pending[id], fmt.Errorf("%w: %w", ErrUnresolvable, ErrClosed)))
	}
	s.finish(context.Background(), outs)
	return nil
}

// finish releases s.mu, then records and publishes outcomes in order.
// Subscribers run synchronously and must not call mutating methods of the store.
func (s *Store) finish(ctx context.Context, outs []outcome) {
	s.publishMu.Lock()
	s.mu.Unlock()
	defer s.publishMu.Unlock()

	for _, o := range outs {
		s.record(ctx, o)

		switch o.status {
		case StatusAccepted:
			s.logger.Debug("Statement accepted",
				"statement_id", o.stmt.ID,
				"type", o.stmt.Type,
				"register_key", o.stmt.RegisterKey())
			s.accepted.Publish(o.stmt.Clone())
			if o.ownership != nil {
				s.ownership.Publish(*o.ownership)
			}
		case StatusRejected:
			s.logger.Warn("Statement rejected", "statement_id", o.stmt.ID, "error", o.err)
		case StatusUnresolvable:
			s.logger.Warn("Statement dropped", "statement_id", o.stmt.ID, "error", o.err)
			s.dropped.Publish(Dropped{StatementID: o.stmt.ID, Err: o.err})
		}
	}
}

func (s *Store) record(ctx context.Context, o outcome) {
	if s.cfg.Audit == nil {
		return
	}

	rec := storage.AuditRecord{
		RecordedAt:  s.cfg.Now(),
		StatementID: o.stmt.ID,
		Type:        string(o.stmt.Type),
		Action:      string(o.stmt.Action),
		AuthorID:    o.stmt.AuthorID,
		DeviceID:    o.stmt.DeviceID,
		RegisterKey: o.stmt.RegisterKey(),
		Timestamp:   o.stmt.Timestamp,
	}
	switch o.status {
	case StatusAccepted:
		rec.Status = storage.AuditAccepted
	case StatusRejected:
		rec.Status = storage.AuditRejected
	case StatusUnresolvable:
		rec.Status = storage.AuditUnresolvable
	default:
		return
	}
	if o.err != nil {
		rec.Reason = o.err.Error()
	}

	if err := s.cfg.Audit.RecordStatement(ctx, rec); err != nil {
		s.logger.Warn("Failed to record statement audit", "statement_id", o.stmt.ID, "error", err)
	}
}

// SubscribeAccepted calls fn with every accepted statement.
func (s *Store) SubscribeAccepted(fn func(*models.Statement)) (unsubscribe func()) {
	return s.accepted.Subscribe(fn)
}

// SubscribeCoreOwnership calls fn with the current owner of a core each time a
// coreOwnership statement for it is accepted, even if the winner did not change.
func (s *Store) SubscribeCoreOwnership(fn func(models.CoreOwnership)) (unsubscribe func()) {
	return s.ownership.Subscribe(fn)
}

// SubscribeDropped calls fn for every statement dropped from the causal barrier.
func (s *Store) SubscribeDropped(fn func(Dropped)) (unsubscribe func()) {
	return s.dropped.Subscribe(fn)
}

// isGenesis reports whether s creates the project of its author.
// Genesis statements are the only source of the project-creator role.
func isGenesis(s *models.Statement) bool {
	return s.Type == models.StatementRole &&
		s.Role == models.RoleProjectCreator &&
		s.IdentityID == s.AuthorID &&
		s.ProjectID == crypto.ProjectID(s.AuthorID)
}

func decodeStatement(raw []byte) (*models.Statement, error) {
	var stmt models.Statement
	if err := json.Unmarshal(raw, &stmt); err != nil {
		return nil, fmt.Errorf("failed to decode statement: %w", err)
	}
	return &stmt, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
