package shared

import (
	"context"
	"time"

	"facility-booking/internal/domain/alert"
	"facility-booking/internal/domain/recurrence"
	"facility-booking/internal/domain/reservation"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Reservations() ReservationRepository
	Recurrences() RecurrenceRepository
	Alerts() AlertRepository
	Outbox() OutboxRepository
	Locks() LockManager
}

// LockManager hands out exclusive leases scoped to the current transaction.
// Leases are released on commit or rollback. Callers that need both take the
// recurrence lease before the resource lease.
type LockManager interface {
	LockResource(ctx context.Context, resourceID uuid.UUID) error
	LockRecurrence(ctx context.Context, configID uuid.UUID) error
}

type ReservationRepository interface {
	Create(ctx context.Context, res *reservation.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	// FindOverlapping returns reservations on resourceID in one of statuses
	// whose slot overlaps slot, ordered by start.
	FindOverlapping(ctx context.Context, resourceID uuid.UUID, slot reservation.TimeSlot, statuses ...reservation.Status) ([]*reservation.Reservation, error)
	FindByRecurrence(ctx context.Context, recurrenceID uuid.UUID) ([]*reservation.Reservation, error)
	UpdateStatus(ctx context.Context, res *reservation.Reservation) error
}

type RecurrenceRepository interface {
	Create(ctx context.Context, cfg *recurrence.Config) error
	FindByID(ctx context.Context, id uuid.UUID) (*recurrence.Config, error)
	ListActive(ctx context.Context) ([]*recurrence.Config, error)
	// Update persists active and generatedCount.
	Update(ctx context.Context, cfg *recurrence.Config) error
	Delete(ctx context.Context, id uuid.UUID) error
	RecordOccurrence(ctx context.Context, occ recurrence.Occurrence) error
	ListOccurrences(ctx context.Context, configID uuid.UUID) ([]recurrence.Occurrence, error)
}

type AlertRepository interface {
	Create(ctx context.Context, a *alert.Alert) error
	// FindDue lists non-terminal alerts scheduled at or before now, oldest first.
	FindDue(ctx context.Context, now time.Time, limit int) ([]*alert.Alert, error)
	// ClaimForSend row-locks one alert for the rest of the transaction. An
	// alert locked by another transaction is reported as not found.
	ClaimForSend(ctx context.Context, id uuid.UUID) (*alert.Alert, error)
	// LockForUpdate row-locks one alert, waiting for any other holder.
	LockForUpdate(ctx context.Context, id uuid.UUID) (*alert.Alert, error)
	// LockActiveByReservation row-locks the non-terminal alerts of a reservation.
	LockActiveByReservation(ctx context.Context, reservationID uuid.UUID) ([]*alert.Alert, error)
	ListByReservation(ctx context.Context, reservationID uuid.UUID) ([]*alert.Alert, error)
	Update(ctx context.Context, a *alert.Alert) error
	DeleteTerminalBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type OutboxRepository interface {
	Append(ctx context.Context, ev OutboxEvent) error
	// FetchUnpublished claims up to limit rows, skipping rows claimed by
	// another transaction.
	FetchUnpublished(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkPublished(ctx context.Context, id uuid.UUID, at time.Time) error
}

// EventHandler reacts to a lifecycle event inside the transaction that
// produced it.
type EventHandler interface {
	HandleEvent(ctx context.Context, tx Tx, ev reservation.Event) error
}
