package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/corekeeper/internal/storage"
)

func setupTestStorage(t *testing.T) *Storage {
	t.Helper()

	// Используем in-memory database для тестов
	s, err := New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func record(id, author string, status storage.AuditStatus, at time.Time) storage.AuditRecord {
	return storage.AuditRecord{
		StatementID: id,
		Type:        "role",
		Action:      "role:set",
		AuthorID:    author,
		DeviceID:    author,
		RegisterKey: "role/p/" + author,
		Status:      status,
		Timestamp:   1,
		RecordedAt:  at,
	}
}

func TestAudit_RecordAndList(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)
	base := time.UnixMilli(1_700_000_000_000)

	require.NoError(t, s.RecordStatement(ctx, record("s1", "alice", storage.AuditAccepted, base)))
	rejected := record("s2", "bob", storage.AuditRejected, base.Add(time.Second))
	rejected.Reason = "permission denied"
	require.NoError(t, s.RecordStatement(ctx, rejected))
	require.NoError(t, s.RecordStatement(ctx, record("s3", "alice", storage.AuditUnresolvable, base.Add(2*time.Second))))

	all, err := s.ListStatements(ctx, storage.AuditFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "s3", all[0].StatementID, "newest first")
	assert.Equal(t, base.Add(2*time.Second).UnixMilli(), all[0].RecordedAt.UnixMilli())

	tests := []struct {
		name   string
		filter storage.AuditFilter
		want   []string
	}{
		{name: "by status", filter: storage.AuditFilter{Status: storage.AuditRejected}, want: []string{"s2"}},
		{name: "by author", filter: storage.AuditFilter{AuthorID: "alice"}, want: []string{"s3", "s1"}},
		{name: "limit", filter: storage.AuditFilter{Limit: 1}, want: []string{"s3"}},
		{name: "no match", filter: storage.AuditFilter{AuthorID: "carol"}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := s.ListStatements(ctx, tt.filter)
			require.NoError(t, err)

			var ids []string
			for _, r := range records {
				ids = append(ids, r.StatementID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	got, err := s.ListStatements(ctx, storage.AuditFilter{Status: storage.AuditRejected})
	require.NoError(t, err)
	assert.Equal(t, "permission denied", got[0].Reason)
}

func TestAudit_AcceptedIsFinal(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)
	now := time.Now()

	// pending statement истек, а затем все-таки был принят после повторной доставки
	require.NoError(t, s.RecordStatement(ctx, record("s1", "alice", storage.AuditUnresolvable, now)))
	require.NoError(t, s.RecordStatement(ctx, record("s1", "alice", storage.AuditAccepted, now)))
	require.NoError(t, s.RecordStatement(ctx, record("s1", "alice", storage.AuditRejected, now)))

	records, err := s.ListStatements(ctx, storage.AuditFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, storage.AuditAccepted, records[0].Status)
}

func TestAudit_RejectsUnknownStatus(t *testing.T) {
	s := setupTestStorage(t)
	err := s.RecordStatement(context.Background(), record("s1", "alice", "pending", time.Now()))
	assert.Error(t, err)
}
