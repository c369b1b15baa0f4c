package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/corekeeper/internal/storage"
)

// RecordStatement stores the outcome of a statement.
// A later outcome for the same statement replaces the earlier one,
// except that an accepted statement stays accepted.
func (s *Storage) RecordStatement(ctx context.Context, rec storage.AuditRecord) error {
	query := `
		INSERT INTO statement_audit
			(statement_id, type, action, author_id, device_id, register_key, status, reason, timestamp, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(statement_id) DO UPDATE SET
			status = excluded.status,
			reason = excluded.reason,
			recorded_at = excluded.recorded_at
		WHERE statement_audit.status != 'accepted'
	`

	recordedAt := rec.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, query,
		rec.StatementID,
		rec.Type,
		rec.Action,
		rec.AuthorID,
		rec.DeviceID,
		rec.RegisterKey,
		string(rec.Status),
		rec.Reason,
		rec.Timestamp,
		recordedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to record statement %s: %w", rec.StatementID, err)
	}

	return nil
}

// ListStatements returns audit records, newest first.
func (s *Storage) ListStatements(ctx context.Context, filter storage.AuditFilter) ([]storage.AuditRecord, error) {
	var (
		conditions []string
		args       []any
	)
	if filter.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.AuthorID != "" {
		conditions = append(conditions, "author_id = ?")
		args = append(args, filter.AuthorID)
	}

	query := `
		SELECT statement_id, type, action, author_id, device_id, register_key, status, reason, timestamp, recorded_at
		FROM statement_audit
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY recorded_at DESC, statement_id"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit records: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []storage.AuditRecord
	for rows.Next() {
		var (
			rec        storage.AuditRecord
			status     string
			recordedAt int64
		)
		if err := rows.Scan(
			&rec.StatementID,
			&rec.Type,
			&rec.Action,
			&rec.AuthorID,
			&rec.DeviceID,
			&rec.RegisterKey,
			&status,
			&rec.Reason,
			&rec.Timestamp,
			&recordedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit record: %w", err)
		}
		rec.Status = storage.AuditStatus(status)
		rec.RecordedAt = time.UnixMilli(recordedAt)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit records: %w", err)
	}

	return records, nil
}
