package authstore

import (
	"cmp"
	"container/heap"
	"fmt"
	"slices"

	"github.com/iudanet/corekeeper/internal/models"
)

// readyQueue - statements, у которых приняты все links, в порядке models.Compare.
// Обработка в фиксированном порядке делает порядок событий одинаковым на всех пирах.
type readyQueue []*entry

func (q readyQueue) Len() int           { return len(q) }
func (q readyQueue) Less(i, j int) bool { return models.Compare(q[i].stmt, q[j].stmt) < 0 }
func (q readyQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *readyQueue) Push(x any)        { *q = append(*q, x.(*entry)) }
func (q *readyQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return e
}

// admit ставит проверенный statement в arena: либо сразу проверяет его,
// либо оставляет ждать недостающие links. Вызывается под s.mu.
func (s *Store) admit(stmt *models.Statement, from *blockRef) (*entry, []outcome) {
	e := &entry{stmt: stmt, from: from, status: StatusPending}
	s.arena[stmt.ID] = e

	missing := make(map[string]struct{})
	for _, link := range stmt.Links {
		le, ok := s.arena[link]
		switch {
		case ok && le.status == StatusAccepted:
		case ok && le.status == StatusRejected:
			return e, s.reject(e, fmt.Errorf("%w: links rejected statement %s", ErrUnknownReference, link))
		default:
			missing[link] = struct{}{}
		}
	}

	if len(missing) == 0 {
		ready := &readyQueue{e}
		return e, s.settle(ready)
	}

	if len(s.pending) >= s.cfg.MaxPending {
		return e, []outcome{s.drop(e, fmt.Errorf("%w: pending limit of %d reached", ErrUnresolvable, s.cfg.MaxPending))}
	}

	e.missing = missing
	e.receivedAt = s.cfg.Now()
	s.pending[stmt.ID] = e
	for link := range missing {
		waiters, ok := s.waiting[link]
		if !ok {
			waiters = make(map[string]struct{})
			s.waiting[link] = waiters
		}
		waiters[stmt.ID] = struct{}{}
	}
	return e, nil
}

// settle проверяет готовые statements в порядке models.Compare и
// разблокирует тех, кто их ждал. Очередь вместо рекурсии: длина цепочки
// зависимостей не ограничена.
func (s *Store) settle(ready *readyQueue) []outcome {
	var outs []outcome
	for ready.Len() > 0 {
		e := heap.Pop(ready).(*entry)

		v, err := s.validateCausal(e.stmt)
		if err != nil {
			outs = append(outs, s.reject(e, err)...)
			continue
		}

		outs = append(outs, s.accept(e, v))
		for _, id := range sortedKeys(s.waiting[e.stmt.ID]) {
			w := s.arena[id]
			if w == nil || w.status != StatusPending {
				continue
			}
			delete(w.missing, e.stmt.ID)
			if len(w.missing) == 0 {
				delete(s.pending, id)
				w.missing = nil
				heap.Push(ready, w)
			}
		}
		delete(s.waiting, e.stmt.ID)
	}
	return outs
}

// accept сливает statement в материализованное состояние и индексы,
// по которым отвечает view. v - causal past его links, e забирает v.past.
func (s *Store) accept(e *entry, v *view) outcome {
	stmt := e.stmt
	e.status = StatusAccepted
	e.err = nil
	delete(s.pending, stmt.ID)

	e.past = v.past
	e.past[stmt.DeviceID] = stmt.DeviceIndex + 1
	s.positions[position{device: stmt.DeviceID, index: stmt.DeviceIndex}] = e
	key := stmt.RegisterKey()
	s.registers[key] = insertSorted(s.registers[key], e, func(a, b *entry) int {
		return models.Compare(a.stmt, b.stmt)
	})
	s.authored[stmt.AuthorID] = insertSorted(s.authored[stmt.AuthorID], e, func(a, b *entry) int {
		return cmp.Compare(a.stmt.AuthorIndex, b.stmt.AuthorIndex)
	})

	s.heads.Add(stmt)
	if isGenesis(stmt) {
		s.projects[stmt.ProjectID] = append(s.projects[stmt.ProjectID], stmt.ID)
	}

	out := outcome{stmt: stmt, status: StatusAccepted}
	if stmt.Type == models.StatementCoreOwnership {
		if len(s.registers[key]) == 1 {
			s.cores = append(s.cores, stmt.CoreID)
		}
		owner := models.OwnershipFromStatement(s.heads.Winner(key))
		out.ownership = &owner
	}
	return out
}

func insertSorted(list []*entry, e *entry, compare func(a, b *entry) int) []*entry {
	i, _ := slices.BinarySearchFunc(list, e, compare)
	return slices.Insert(list, i, e)
}

// reject отклоняет statement и, транзитивно, всех, кто его ждет:
// ссылка на отклоненный statement никогда не станет принятой.
func (s *Store) reject(e *entry, err error) []outcome {
	var outs []outcome

	e.err = fmt.Errorf("%w: %w", ErrValidation, err)
	queue := []*entry{e}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		s.unlinkWaiter(cur)
		delete(s.pending, cur.stmt.ID)
		cur.status = StatusRejected
		outs = append(outs, outcome{stmt: cur.stmt, status: StatusRejected, err: cur.err})

		for _, id := range sortedKeys(s.waiting[cur.stmt.ID]) {
			w := s.arena[id]
			if w == nil || w.status != StatusPending {
				continue
			}
			w.err = fmt.Errorf("%w: %w: links rejected statement %s", ErrValidation, ErrUnknownReference, cur.stmt.ID)
			w.status = StatusRejected
			queue = append(queue, w)
		}
		delete(s.waiting, cur.stmt.ID)
	}
	return outs
}

// drop убирает statement из барьера как unresolvable. Ожидающие его
// statements остаются ждать: он может прийти повторно. Курсор core, из
// которого он пришел, откатывается, и следующий Sync прочитает его снова.
func (s *Store) drop(e *entry, err error) outcome {
	if e.from != nil && s.cursors[e.from.core] > e.from.index {
		s.cursors[e.from.core] = e.from.index
	}
	s.unlinkWaiter(e)
	delete(s.pending, e.stmt.ID)
	e.status = StatusUnresolvable
	e.err = err
	return outcome{stmt: e.stmt, status: StatusUnresolvable, err: err}
}

func (s *Store) unlinkWaiter(e *entry) {
	for link := range e.missing {
		waiters := s.waiting[link]
		delete(waiters, e.stmt.ID)
		if len(waiters) == 0 {
			delete(s.waiting, link)
		}
	}
	e.missing = nil
}

// expirePending роняет statements, ждущие дольше PendingTTL. Вызывается под s.mu.
func (s *Store) expirePending() []outcome {
	if s.cfg.PendingTTL <= 0 || len(s.pending) == 0 {
		return nil
	}

	now := s.cfg.Now()
	var outs []outcome
	for _, id := range sortedKeys(s.pending) {
		e := s.pending[id]
		if now.Sub(e.receivedAt) > s.cfg.PendingTTL {
			outs = append(outs, s.drop(e, fmt.Errorf("%w: predecessors missing for more than %s", ErrUnresolvable, s.cfg.PendingTTL)))
		}
	}
	return outs
}
