// Package memstore is an in-process UnitOfWork. Writes are staged per
// transaction and applied on commit; leases are keyed channels held until the
// transaction ends, mirroring transaction-scoped advisory locks.
package memstore

import (
	"context"
	"sync"

	"facility-booking/internal/domain/alert"
	"facility-booking/internal/domain/recurrence"
	"facility-booking/internal/domain/reservation"
	"facility-booking/internal/infra"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var errReadOnly = errs.New("write attempted in read-only transaction")

type Store struct {
	mu           sync.RWMutex
	reservations map[uuid.UUID]reservation.Reservation
	configs      map[uuid.UUID]recurrence.Config
	occurrences  map[uuid.UUID]map[recurrence.Date]recurrence.Occurrence
	alerts       map[uuid.UUID]alert.Alert
	outbox       map[uuid.UUID]shared.OutboxEvent
	outboxOrder  []uuid.UUID

	locks *keyedLocks
}

func New() *Store {
	return &Store{
		reservations: make(map[uuid.UUID]reservation.Reservation),
		configs:      make(map[uuid.UUID]recurrence.Config),
		occurrences:  make(map[uuid.UUID]map[recurrence.Date]recurrence.Occurrence),
		alerts:       make(map[uuid.UUID]alert.Alert),
		outbox:       make(map[uuid.UUID]shared.OutboxEvent),
		locks:        newKeyedLocks(),
	}
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return s.run(ctx, false, fn)
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return s.run(ctx, true, fn)
}

func (s *Store) run(ctx context.Context, readOnly bool, fn func(ctx context.Context, tx shared.Tx) error) error {
	t := newTx(s, readOnly)
	defer t.releaseLocks()

	if err := fn(ctx, t); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if readOnly {
		return nil
	}
	return s.commit(t)
}

func (s *Store) commit(t *tx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkApprovedExclusion(t); err != nil {
		return err
	}

	for id, r := range t.reservations {
		s.reservations[id] = r
	}
	for id := range t.configDeletes {
		delete(s.configs, id)
		delete(s.occurrences, id)
		for rid, r := range s.reservations {
			if rec := r.RecurrenceID(); rec != nil && *rec == id {
				s.reservations[rid] = *reservation.ReconstructReservation(
					r.ID(), r.ResourceID(), r.UserID(), r.TimeSlot(), r.Status(), r.Reason(), nil, r.CreatedAt(), r.UpdatedAt(),
				)
			}
		}
	}
	for id, c := range t.configs {
		s.configs[id] = c
	}
	for _, o := range t.occurrences {
		if s.occurrences[o.ConfigID] == nil {
			s.occurrences[o.ConfigID] = make(map[recurrence.Date]recurrence.Occurrence)
		}
		s.occurrences[o.ConfigID][o.Date] = o
	}
	for id := range t.alertDeletes {
		delete(s.alerts, id)
	}
	for id, a := range t.alerts {
		s.alerts[id] = a
	}
	for _, id := range t.outboxOrder {
		if _, exists := s.outbox[id]; !exists {
			s.outboxOrder = append(s.outboxOrder, id)
		}
		s.outbox[id] = t.outbox[id]
	}
	return nil
}

// checkApprovedExclusion plays the role of the database exclusion constraint:
// no two APPROVED reservations of one resource may overlap after commit.
func (s *Store) checkApprovedExclusion(t *tx) error {
	for id, staged := range t.reservations {
		if staged.Status() != reservation.StatusApproved {
			continue
		}
		for otherID, other := range s.reservations {
			if otherID == id {
				continue
			}
			if next, ok := t.reservations[otherID]; ok {
				other = next
			}
			if other.ResourceID() != staged.ResourceID() || other.Status() != reservation.StatusApproved {
				continue
			}
			if other.TimeSlot().Overlaps(staged.TimeSlot()) {
				return infra.WrapRepoErr("approved reservations overlap", nil, infra.KindConflict)
			}
		}
	}
	return nil
}

// Snapshot helpers used by tests.

func (s *Store) Reservations() []*reservation.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*reservation.Reservation, 0, len(s.reservations))
	for _, r := range s.reservations {
		cp := r
		out = append(out, &cp)
	}
	return out
}

func (s *Store) Alerts() []*alert.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*alert.Alert, 0, len(s.alerts))
	for _, a := range s.alerts {
		cp := a
		out = append(out, &cp)
	}
	return out
}

func (s *Store) OutboxEvents() []shared.OutboxEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]shared.OutboxEvent, 0, len(s.outboxOrder))
	for _, id := range s.outboxOrder {
		out = append(out, s.outbox[id])
	}
	return out
}

type keyedLocks struct {
	mu sync.Mutex
	m  map[string]chan struct{}
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{m: make(map[string]chan struct{})}
}

func (k *keyedLocks) slot(key string) chan struct{} {
	k.mu.Lock()
	defer k.mu.Unlock()
	ch, ok := k.m[key]
	if !ok {
		ch = make(chan struct{}, 1)
		k.m[key] = ch
	}
	return ch
}

func (k *keyedLocks) acquire(ctx context.Context, key string) error {
	select {
	case k.slot(key) <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (k *keyedLocks) tryAcquire(key string) bool {
	select {
	case k.slot(key) <- struct{}{}:
		return true
	default:
		return false
	}
}

func (k *keyedLocks) release(key string) {
	<-k.slot(key)
}
