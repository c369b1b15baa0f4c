package storage

import (
	"context"
	"time"
)

// AuditStatus - итог обработки statement
type AuditStatus string

const (
	AuditAccepted     AuditStatus = "accepted"
	AuditRejected     AuditStatus = "rejected"
	AuditUnresolvable AuditStatus = "unresolvable"
)

// AuditRecord describes what happened to one statement.
type AuditRecord struct {
	RecordedAt  time.Time
	StatementID string
	Type        string
	Action      string
	AuthorID    string
	DeviceID    string
	RegisterKey string
	Status      AuditStatus
	Reason      string
	Timestamp   int64
}

// AuditFilter ограничивает выборку записей аудита. Пустые поля не фильтруют.
type AuditFilter struct {
	Status   AuditStatus
	AuthorID string
	Limit    int
}

// AuditStorage is an append-only index of statement outcomes.
type AuditStorage interface {
	RecordStatement(ctx context.Context, rec AuditRecord) error
	ListStatements(ctx context.Context, filter AuditFilter) ([]AuditRecord, error)
}
