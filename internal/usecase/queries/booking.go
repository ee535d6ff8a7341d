package queries

import (
	"context"
	"time"

	"facility-booking/internal/domain/alert"
	"facility-booking/internal/domain/recurrence"
	"facility-booking/internal/domain/reservation"
	"facility-booking/internal/infra"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type Availability struct {
	Available bool
	Conflicts []*reservation.Reservation
}

type BookingQueries interface {
	CheckAvailability(ctx context.Context, resourceID uuid.UUID, start, end time.Time) (*Availability, error)
	// PendingOverlaps is informational only; approval never consults it.
	PendingOverlaps(ctx context.Context, resourceID uuid.UUID, start, end time.Time) ([]*reservation.Reservation, error)
	GetReservation(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	GetRecurrence(ctx context.Context, id uuid.UUID) (*recurrence.Config, error)
	ListAlerts(ctx context.Context, reservationID uuid.UUID) ([]*alert.Alert, error)
}

type bookingQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewBookingQueries(uow shared.UnitOfWork) BookingQueries {
	return &bookingQueriesImpl{uow: uow}
}

func (q *bookingQueriesImpl) CheckAvailability(ctx context.Context, resourceID uuid.UUID, start, end time.Time) (*Availability, error) {
	slot, err := reservation.NewTimeSlot(start, end)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	var approved []*reservation.Reservation
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		approved, err = tx.Reservations().FindOverlapping(ctx, resourceID, slot, reservation.StatusApproved)
		return err
	})
	if err != nil {
		return nil, readErr(err, "failed to check availability")
	}

	conflicts := reservation.Conflicts(slot, approved, uuid.Nil)
	return &Availability{Available: len(conflicts) == 0, Conflicts: conflicts}, nil
}

func (q *bookingQueriesImpl) PendingOverlaps(ctx context.Context, resourceID uuid.UUID, start, end time.Time) ([]*reservation.Reservation, error) {
	slot, err := reservation.NewTimeSlot(start, end)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	var pending []*reservation.Reservation
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		pending, err = tx.Reservations().FindOverlapping(ctx, resourceID, slot, reservation.StatusPending)
		return err
	})
	if err != nil {
		return nil, readErr(err, "failed to list pending overlaps")
	}
	return pending, nil
}

func (q *bookingQueriesImpl) GetReservation(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	var res *reservation.Reservation
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		res, err = tx.Reservations().FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, readErr(err, "reservation not found")
	}
	return res, nil
}

func (q *bookingQueriesImpl) GetRecurrence(ctx context.Context, id uuid.UUID) (*recurrence.Config, error) {
	var cfg *recurrence.Config
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		cfg, err = tx.Recurrences().FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, readErr(err, "recurrence not found")
	}
	return cfg, nil
}

func (q *bookingQueriesImpl) ListAlerts(ctx context.Context, reservationID uuid.UUID) ([]*alert.Alert, error) {
	var alerts []*alert.Alert
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reservations().FindByID(ctx, reservationID); err != nil {
			return err
		}
		var err error
		alerts, err = tx.Alerts().ListByReservation(ctx, reservationID)
		return err
	})
	if err != nil {
		return nil, readErr(err, "failed to list alerts")
	}
	return alerts, nil
}

func readErr(err error, msg string) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(errs.Wrap(err, msg), errs.ErrNotFound)
	}
	return errs.Mark(errs.Wrap(err, msg), errs.ErrDatabaseOperationFailed)
}
