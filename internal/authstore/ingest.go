package authstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/corekeeper/internal/crypto"
	"github.com/iudanet/corekeeper/internal/models"
	"github.com/iudanet/corekeeper/internal/storage"
	"github.com/iudanet/corekeeper/internal/validation"
)

// Ingest processes one raw statement received from a replicated core.
//
// A statement that fails validation is rejected: the error wraps ErrValidation
// and the precise reason. A statement whose links are not accepted yet is
// buffered and ResultPending is returned with a nil error.
func (s *Store) Ingest(ctx context.Context, raw []byte) (Result, error) {
	return s.ingestBlock(ctx, raw, nil)
}

func (s *Store) ingestBlock(ctx context.Context, raw []byte, from *blockRef) (Result, error) {
	stmt, err := decodeStatement(raw)
	if err != nil {
		return ResultRejected, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ResultRejected, ErrClosed
	}

	outs := s.expirePending()
	result, more, err := s.ingest(stmt, from)
	s.finish(ctx, append(outs, more...))

	return result, err
}

// ingest выполняет pipeline под s.mu.
func (s *Store) ingest(stmt *models.Statement, from *blockRef) (Result, []outcome, error) {
	if err := verifyIntegrity(stmt); err != nil {
		// id не заслуживает доверия, поэтому statement не попадает в arena
		err = fmt.Errorf("%w: %w", ErrValidation, err)
		return ResultRejected, []outcome{{stmt: stmt, status: StatusRejected, err: err}}, err
	}

	if e, ok := s.arena[stmt.ID]; ok {
		switch e.status {
		case StatusAccepted:
			return ResultDuplicate, nil, nil
		case StatusPending:
			if e.from == nil {
				e.from = from
			}
			return ResultPending, nil, nil
		case StatusRejected:
			return ResultRejected, nil, e.err
		case StatusUnresolvable:
			// повторная доставка: пробуем еще раз
			delete(s.arena, stmt.ID)
		}
	}

	e, outs := s.admit(stmt, from)
	switch e.status {
	case StatusAccepted:
		return ResultAccepted, outs, nil
	case StatusPending:
		return ResultPending, outs, nil
	default:
		return ResultRejected, outs, e.err
	}
}

// verifyIntegrity проверяет структуру, content address и подпись устройства.
func verifyIntegrity(stmt *models.Statement) error {
	if err := validation.ValidateStatement(stmt); err != nil {
		return err
	}
	payload, err := stmt.SigningPayload()
	if err != nil {
		return err
	}
	if id := crypto.StatementID(payload, stmt.Signature); id != stmt.ID {
		return fmt.Errorf("statement id %s does not match content %s", stmt.ID, id)
	}
	if err := crypto.Verify(stmt.DeviceID, payload, stmt.Signature); err != nil {
		return fmt.Errorf("device signature: %w", err)
	}
	return nil
}

// Sync ingests every block of core appended since the previous Sync of the same core.
// Rejected statements are counted, not returned as errors. A block whose statement
// is later dropped as unresolvable is read again by the next Sync of its core.
func (s *Store) Sync(ctx context.Context, core storage.Core) (SyncResult, error) {
	var result SyncResult

	length, err := core.Length(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to get core length: %w", err)
	}

	s.mu.Lock()
	start := s.cursors[core.Key()]
	s.mu.Unlock()

	for index := start; index < length; index++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		raw, err := core.Get(ctx, index)
		if err != nil {
			return result, fmt.Errorf("failed to read block %d of core %s: %w", index, core.Key(), err)
		}

		// курсор двигается, только если его не откатил drop
		s.mu.Lock()
		if s.cursors[core.Key()] == index {
			s.cursors[core.Key()] = index + 1
		}
		s.mu.Unlock()

		res, err := s.ingestBlock(ctx, raw, &blockRef{core: core.Key(), index: index})
		if errors.Is(err, ErrClosed) {
			return result, err
		}
		switch res {
		case ResultAccepted:
			result.Accepted++
		case ResultPending:
			result.Pending++
		case ResultRejected:
			result.Rejected++
		case ResultDuplicate:
			result.Duplicate++
		}

		if core.Key() == s.cfg.Core.Key() {
			if stmt, err := decodeStatement(raw); err == nil {
				s.mu.Lock()
				s.localHead = stmt.ID
				s.mu.Unlock()
			}
		}
	}

	return result, nil
}

// Rebuild discards the materialized state and replays the device core and cores
// from the beginning. Pending statements are discarded without notification.
func (s *Store) Rebuild(ctx context.Context, cores ...storage.Core) (SyncResult, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return SyncResult{}, ErrClosed
	}
	s.reset()
	s.mu.Unlock()

	s.logger.Info("Rebuilding auth state", "cores", len(cores)+1)

	total, err := s.Sync(ctx, s.cfg.Core)
	if err != nil {
		return total, err
	}
	for _, core := range cores {
		if core.Key() == s.cfg.Core.Key() {
			continue
		}
		result, err := s.Sync(ctx, core)
		total.Accepted += result.Accepted
		total.Pending += result.Pending
		total.Rejected += result.Rejected
		total.Duplicate += result.Duplicate
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// ExpirePending drops statements that waited longer than PendingTTL and
// returns how many were dropped.
func (s *Store) ExpirePending(ctx context.Context) int {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0
	}
	outs := s.expirePending()
	s.finish(ctx, outs)
	return len(outs)
}
