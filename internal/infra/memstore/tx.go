package memstore

import (
	"context"
	"sort"
	"time"

	"facility-booking/internal/domain/alert"
	"facility-booking/internal/domain/recurrence"
	"facility-booking/internal/domain/reservation"
	"facility-booking/internal/infra"
	"facility-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type tx struct {
	store    *Store
	readOnly bool
	held     []string

	reservations  map[uuid.UUID]reservation.Reservation
	configs       map[uuid.UUID]recurrence.Config
	configDeletes map[uuid.UUID]struct{}
	occurrences   []recurrence.Occurrence
	alerts        map[uuid.UUID]alert.Alert
	alertDeletes  map[uuid.UUID]struct{}
	outbox        map[uuid.UUID]shared.OutboxEvent
	outboxOrder   []uuid.UUID
}

func newTx(s *Store, readOnly bool) *tx {
	return &tx{
		store:         s,
		readOnly:      readOnly,
		reservations:  make(map[uuid.UUID]reservation.Reservation),
		configs:       make(map[uuid.UUID]recurrence.Config),
		configDeletes: make(map[uuid.UUID]struct{}),
		alerts:        make(map[uuid.UUID]alert.Alert),
		alertDeletes:  make(map[uuid.UUID]struct{}),
		outbox:        make(map[uuid.UUID]shared.OutboxEvent),
	}
}

func (t *tx) Reservations() shared.ReservationRepository { return reservationRepo{t} }
func (t *tx) Recurrences() shared.RecurrenceRepository   { return recurrenceRepo{t} }
func (t *tx) Alerts() shared.AlertRepository             { return alertRepo{t} }
func (t *tx) Outbox() shared.OutboxRepository            { return outboxRepo{t} }
func (t *tx) Locks() shared.LockManager                  { return lockManager{t} }

func (t *tx) lock(ctx context.Context, key string) error {
	for _, h := range t.held {
		if h == key {
			return nil
		}
	}
	if err := t.store.locks.acquire(ctx, key); err != nil {
		return infra.WrapRepoErr("failed to acquire lock "+key, err)
	}
	t.held = append(t.held, key)
	return nil
}

func (t *tx) tryLock(key string) bool {
	for _, h := range t.held {
		if h == key {
			return true
		}
	}
	if !t.store.locks.tryAcquire(key) {
		return false
	}
	t.held = append(t.held, key)
	return true
}

func (t *tx) releaseLocks() {
	for i := len(t.held) - 1; i >= 0; i-- {
		t.store.locks.release(t.held[i])
	}
	t.held = nil
}

func (t *tx) writable() error {
	if t.readOnly {
		return infra.WrapRepoErr("memstore", errReadOnly)
	}
	return nil
}

type lockManager struct{ t *tx }

func (l lockManager) LockResource(ctx context.Context, resourceID uuid.UUID) error {
	return l.t.lock(ctx, "resource:"+resourceID.String())
}

func (l lockManager) LockRecurrence(ctx context.Context, configID uuid.UUID) error {
	return l.t.lock(ctx, "recurrence:"+configID.String())
}

// reservations

type reservationRepo struct{ t *tx }

func (r reservationRepo) Create(ctx context.Context, res *reservation.Reservation) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	if _, err := r.FindByID(ctx, res.ID()); err == nil {
		return infra.WrapRepoErr("reservation already exists", nil, infra.KindDuplicateKey)
	}
	r.t.reservations[res.ID()] = *res
	return nil
}

func (r reservationRepo) FindByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	if v, ok := r.t.reservations[id]; ok {
		return &v, nil
	}
	r.t.store.mu.RLock()
	v, ok := r.t.store.reservations[id]
	r.t.store.mu.RUnlock()
	if !ok {
		return nil, infra.NotFound("reservation not found")
	}
	return &v, nil
}

func (r reservationRepo) all() []reservation.Reservation {
	r.t.store.mu.RLock()
	merged := make(map[uuid.UUID]reservation.Reservation, len(r.t.store.reservations))
	for id, v := range r.t.store.reservations {
		merged[id] = v
	}
	r.t.store.mu.RUnlock()
	for id, v := range r.t.reservations {
		merged[id] = v
	}

	out := make([]reservation.Reservation, 0, len(merged))
	for _, v := range merged {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].TimeSlot().Start().Before(out[j].TimeSlot().Start())
	})
	return out
}

func (r reservationRepo) FindOverlapping(_ context.Context, resourceID uuid.UUID, slot reservation.TimeSlot, statuses ...reservation.Status) ([]*reservation.Reservation, error) {
	var out []*reservation.Reservation
	for _, v := range r.all() {
		if v.ResourceID() != resourceID || !v.TimeSlot().Overlaps(slot) {
			continue
		}
		if len(statuses) > 0 && !containsStatus(statuses, v.Status()) {
			continue
		}
		cp := v
		out = append(out, &cp)
	}
	return out, nil
}

func (r reservationRepo) FindByRecurrence(_ context.Context, recurrenceID uuid.UUID) ([]*reservation.Reservation, error) {
	var out []*reservation.Reservation
	for _, v := range r.all() {
		if rec := v.RecurrenceID(); rec != nil && *rec == recurrenceID {
			cp := v
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r reservationRepo) UpdateStatus(ctx context.Context, res *reservation.Reservation) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	if _, err := r.FindByID(ctx, res.ID()); err != nil {
		return err
	}
	r.t.reservations[res.ID()] = *res
	return nil
}

func containsStatus(list []reservation.Status, s reservation.Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// recurrence configs

type recurrenceRepo struct{ t *tx }

func (r recurrenceRepo) Create(_ context.Context, cfg *recurrence.Config) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	r.t.configs[cfg.ID()] = *cfg
	return nil
}

func (r recurrenceRepo) FindByID(_ context.Context, id uuid.UUID) (*recurrence.Config, error) {
	if _, deleted := r.t.configDeletes[id]; deleted {
		return nil, infra.NotFound("recurrence config not found")
	}
	if v, ok := r.t.configs[id]; ok {
		return &v, nil
	}
	r.t.store.mu.RLock()
	v, ok := r.t.store.configs[id]
	r.t.store.mu.RUnlock()
	if !ok {
		return nil, infra.NotFound("recurrence config not found")
	}
	return &v, nil
}

func (r recurrenceRepo) ListActive(_ context.Context) ([]*recurrence.Config, error) {
	r.t.store.mu.RLock()
	merged := make(map[uuid.UUID]recurrence.Config, len(r.t.store.configs))
	for id, v := range r.t.store.configs {
		merged[id] = v
	}
	r.t.store.mu.RUnlock()
	for id, v := range r.t.configs {
		merged[id] = v
	}

	var out []*recurrence.Config
	for id, v := range merged {
		if _, deleted := r.t.configDeletes[id]; deleted || !v.Active() {
			continue
		}
		cp := v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt().Before(out[j].CreatedAt()) })
	return out, nil
}

func (r recurrenceRepo) Update(ctx context.Context, cfg *recurrence.Config) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	if _, err := r.FindByID(ctx, cfg.ID()); err != nil {
		return err
	}
	r.t.configs[cfg.ID()] = *cfg
	return nil
}

func (r recurrenceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	if _, err := r.FindByID(ctx, id); err != nil {
		return err
	}
	delete(r.t.configs, id)
	r.t.configDeletes[id] = struct{}{}
	return nil
}

func (r recurrenceRepo) RecordOccurrence(ctx context.Context, occ recurrence.Occurrence) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	existing, err := r.ListOccurrences(ctx, occ.ConfigID)
	if err != nil {
		return err
	}
	for _, o := range existing {
		if o.Date == occ.Date {
			return infra.WrapRepoErr("occurrence already recorded", nil, infra.KindDuplicateKey)
		}
	}
	r.t.occurrences = append(r.t.occurrences, occ)
	return nil
}

func (r recurrenceRepo) ListOccurrences(_ context.Context, configID uuid.UUID) ([]recurrence.Occurrence, error) {
	r.t.store.mu.RLock()
	var out []recurrence.Occurrence
	for _, o := range r.t.store.occurrences[configID] {
		out = append(out, o)
	}
	r.t.store.mu.RUnlock()
	for _, o := range r.t.occurrences {
		if o.ConfigID == configID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// alerts

type alertRepo struct{ t *tx }

func (r alertRepo) Create(_ context.Context, a *alert.Alert) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	r.t.alerts[a.ID()] = *a
	return nil
}

func (r alertRepo) get(id uuid.UUID) (*alert.Alert, error) {
	if _, deleted := r.t.alertDeletes[id]; deleted {
		return nil, infra.NotFound("alert not found")
	}
	if v, ok := r.t.alerts[id]; ok {
		return &v, nil
	}
	r.t.store.mu.RLock()
	v, ok := r.t.store.alerts[id]
	r.t.store.mu.RUnlock()
	if !ok {
		return nil, infra.NotFound("alert not found")
	}
	return &v, nil
}

func (r alertRepo) all() []alert.Alert {
	r.t.store.mu.RLock()
	merged := make(map[uuid.UUID]alert.Alert, len(r.t.store.alerts))
	for id, v := range r.t.store.alerts {
		merged[id] = v
	}
	r.t.store.mu.RUnlock()
	for id, v := range r.t.alerts {
		merged[id] = v
	}

	out := make([]alert.Alert, 0, len(merged))
	for id, v := range merged {
		if _, deleted := r.t.alertDeletes[id]; deleted {
			continue
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ScheduledAt().Equal(out[j].ScheduledAt()) {
			return out[i].ID().String() < out[j].ID().String()
		}
		return out[i].ScheduledAt().Before(out[j].ScheduledAt())
	})
	return out
}

func (r alertRepo) FindDue(_ context.Context, now time.Time, limit int) ([]*alert.Alert, error) {
	var out []*alert.Alert
	for _, v := range r.all() {
		if !v.IsDue(now) {
			continue
		}
		cp := v
		out = append(out, &cp)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r alertRepo) ClaimForSend(_ context.Context, id uuid.UUID) (*alert.Alert, error) {
	if !r.t.tryLock("alert:" + id.String()) {
		return nil, infra.NotFound("alert locked by another transaction")
	}
	return r.get(id)
}

func (r alertRepo) LockForUpdate(ctx context.Context, id uuid.UUID) (*alert.Alert, error) {
	if err := r.t.lock(ctx, "alert:"+id.String()); err != nil {
		return nil, err
	}
	return r.get(id)
}

func (r alertRepo) LockActiveByReservation(ctx context.Context, reservationID uuid.UUID) ([]*alert.Alert, error) {
	var ids []uuid.UUID
	for _, v := range r.all() {
		if v.ReservationID() == reservationID && !v.State().IsTerminal() {
			ids = append(ids, v.ID())
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	var out []*alert.Alert
	for _, id := range ids {
		if err := r.t.lock(ctx, "alert:"+id.String()); err != nil {
			return nil, err
		}
		a, err := r.get(id)
		if err != nil {
			continue
		}
		if !a.State().IsTerminal() {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r alertRepo) ListByReservation(_ context.Context, reservationID uuid.UUID) ([]*alert.Alert, error) {
	var out []*alert.Alert
	for _, v := range r.all() {
		if v.ReservationID() == reservationID {
			cp := v
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r alertRepo) Update(_ context.Context, a *alert.Alert) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	if _, err := r.get(a.ID()); err != nil {
		return err
	}
	r.t.alerts[a.ID()] = *a
	return nil
}

func (r alertRepo) DeleteTerminalBefore(_ context.Context, cutoff time.Time) (int64, error) {
	if err := r.t.writable(); err != nil {
		return 0, err
	}
	var n int64
	for _, v := range r.all() {
		if v.State().IsTerminal() && v.UpdatedAt().Before(cutoff) {
			delete(r.t.alerts, v.ID())
			r.t.alertDeletes[v.ID()] = struct{}{}
			n++
		}
	}
	return n, nil
}

// outbox

type outboxRepo struct{ t *tx }

func (r outboxRepo) Append(_ context.Context, ev shared.OutboxEvent) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	r.t.outbox[ev.ID] = ev
	r.t.outboxOrder = append(r.t.outboxOrder, ev.ID)
	return nil
}

func (r outboxRepo) FetchUnpublished(_ context.Context, limit int) ([]shared.OutboxEvent, error) {
	r.t.store.mu.RLock()
	var candidates []shared.OutboxEvent
	for _, id := range r.t.store.outboxOrder {
		if ev := r.t.store.outbox[id]; ev.PublishedAt == nil {
			candidates = append(candidates, ev)
		}
	}
	r.t.store.mu.RUnlock()

	var out []shared.OutboxEvent
	for _, ev := range candidates {
		if !r.t.tryLock("outbox:" + ev.ID.String()) {
			continue
		}
		r.t.store.mu.RLock()
		current := r.t.store.outbox[ev.ID]
		r.t.store.mu.RUnlock()
		if current.PublishedAt != nil {
			continue
		}
		out = append(out, current)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r outboxRepo) MarkPublished(_ context.Context, id uuid.UUID, at time.Time) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	ev, ok := r.t.outbox[id]
	if !ok {
		r.t.store.mu.RLock()
		ev, ok = r.t.store.outbox[id]
		r.t.store.mu.RUnlock()
	}
	if !ok {
		return infra.NotFound("outbox event not found")
	}
	ev.PublishedAt = &at
	if _, staged := r.t.outbox[id]; !staged {
		r.t.outboxOrder = append(r.t.outboxOrder, id)
	}
	r.t.outbox[id] = ev
	return nil
}
