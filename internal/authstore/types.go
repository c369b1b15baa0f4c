package authstore

import (
	"context"
	"log/slog"
	"time"

	"github.com/iudanet/corekeeper/internal/crypto"
	"github.com/iudanet/corekeeper/internal/storage"
)

// Значения по умолчанию для causal barrier
const (
	DefaultMaxPending = 10000
	DefaultPendingTTL = 10 * time.Minute
)

// Status is the processing state of a statement known to the store.
type Status string

const (
	StatusUnknown      Status = ""
	StatusPending      Status = "pending"
	StatusAccepted     Status = "accepted"
	StatusRejected     Status = "rejected"
	StatusUnresolvable Status = "unresolvable"
)

// Result is the outcome of ingesting one statement.
type Result int

const (
	ResultAccepted Result = iota
	ResultPending
	ResultRejected
	ResultDuplicate
)

func (r Result) String() string {
	switch r {
	case ResultAccepted:
		return "accepted"
	case ResultPending:
		return "pending"
	case ResultRejected:
		return "rejected"
	case ResultDuplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

//go:generate moq -out audit_mock_test.go . AuditRecorder

// AuditRecorder receives the outcome of every processed statement.
type AuditRecorder interface {
	RecordStatement(ctx context.Context, rec storage.AuditRecord) error
}

// Config содержит зависимости и ограничения AuthStore
type Config struct {
	// Device - ключ устройства, которым подписываются локальные statements
	Device *crypto.KeyPair

	// IdentityID - hex ключ identity; пусто, если устройство и есть identity
	IdentityID string

	// Core - собственный auth core устройства
	Core storage.Core

	// Audit - необязательный индекс аудита
	Audit AuditRecorder

	// MaxPending ограничивает число statements, ожидающих предшественников
	MaxPending int

	// PendingTTL - время ожидания предшественников; 0 - без ограничения
	PendingTTL time.Duration

	// Now возвращает текущее время, по умолчанию time.Now
	Now func() time.Time
}

// Dropped reports a statement removed from the causal barrier without being accepted.
type Dropped struct {
	StatementID string
	Err         error
}

// SyncResult counts the outcomes of one Sync call.
type SyncResult struct {
	Accepted  int // принято
	Pending   int // ожидают предшественников
	Rejected  int // отклонено
	Duplicate int // уже известны
}

func (c *Config) withDefaults() {
	if c.MaxPending <= 0 {
		c.MaxPending = DefaultMaxPending
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.IdentityID == "" && c.Device != nil {
		c.IdentityID = c.Device.ID()
	}
}

func discardLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
