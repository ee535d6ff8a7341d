package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"facility-booking/internal/domain/reservation"
	"facility-booking/internal/pkg/clock"
	"facility-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateReservationInput struct {
	ResourceID uuid.UUID
	UserID     uuid.UUID
	Start      time.Time
	End        time.Time
}

type ApprovalResult struct {
	Reservation  *reservation.Reservation
	AutoRejected []*reservation.Reservation
}

type BookingCommands interface {
	CreateReservation(ctx context.Context, in CreateReservationInput) (*reservation.Reservation, error)
	ApproveReservation(ctx context.Context, id uuid.UUID) (*ApprovalResult, error)
	RejectReservation(ctx context.Context, id uuid.UUID, reason string) (*reservation.Reservation, error)
	CancelReservation(ctx context.Context, id uuid.UUID, reason string) (*reservation.Reservation, error)
}

type BookingService struct {
	uow       shared.UnitOfWork
	clock     clock.Clock
	policy    reservation.DurationPolicy
	lifecycle lifecycle
}

func NewBookingService(
	uow shared.UnitOfWork,
	clk clock.Clock,
	policy reservation.DurationPolicy,
	handlers []shared.EventHandler,
) *BookingService {
	return &BookingService{
		uow:       uow,
		clock:     clk,
		policy:    policy,
		lifecycle: lifecycle{handlers: handlers},
	}
}

// CreateReservation creates a PENDING reservation unless the slot is already
// held by an APPROVED one.
func (s *BookingService) CreateReservation(ctx context.Context, in CreateReservationInput) (*reservation.Reservation, error) {
	slot, err := reservation.NewTimeSlot(in.Start, in.End)
	if err != nil {
		return nil, validationErr(err)
	}

	var created *reservation.Reservation
	err = s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Locks().LockResource(ctx, in.ResourceID); err != nil {
			return repoErr(err, "failed to lock resource")
		}

		approved, err := tx.Reservations().FindOverlapping(ctx, in.ResourceID, slot, reservation.StatusApproved)
		if err != nil {
			return repoErr(err, "failed to check availability")
		}
		if conflicts := reservation.Conflicts(slot, approved, uuid.Nil); len(conflicts) > 0 {
			return newConflictError(conflicts)
		}

		res, ev, err := reservation.NewReservation(s.clock.Now(), s.policy, in.ResourceID, in.UserID, slot, nil)
		if err != nil {
			return validationErr(err)
		}
		if err := s.lifecycle.created(ctx, tx, res, ev); err != nil {
			return err
		}
		created = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("reservation created",
		"reservation_id", created.ID(),
		"resource_id", created.ResourceID(),
		"user_id", created.UserID())
	return created, nil
}

// ApproveReservation re-checks conflicts under the resource lease, approves,
// and auto-rejects every PENDING reservation the approval now overlaps.
func (s *BookingService) ApproveReservation(ctx context.Context, id uuid.UUID) (*ApprovalResult, error) {
	var result *ApprovalResult
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := s.lockAndLoad(ctx, tx, id)
		if err != nil {
			return err
		}
		if !res.Status().CanTransitionTo(reservation.StatusApproved) {
			return transitionErr(fmt.Errorf("%w: %s -> %s", reservation.ErrTransitionRejected, res.Status(), reservation.StatusApproved))
		}

		approved, err := tx.Reservations().FindOverlapping(ctx, res.ResourceID(), res.TimeSlot(), reservation.StatusApproved)
		if err != nil {
			return repoErr(err, "failed to check conflicts")
		}
		if conflicts := reservation.Conflicts(res.TimeSlot(), approved, res.ID()); len(conflicts) > 0 {
			return newConflictError(conflicts)
		}

		now := s.clock.Now()
		ev, err := res.Approve(now)
		if err != nil {
			return transitionErr(err)
		}
		if err := s.lifecycle.transitioned(ctx, tx, res, ev); err != nil {
			return err
		}

		pending, err := tx.Reservations().FindOverlapping(ctx, res.ResourceID(), res.TimeSlot(), reservation.StatusPending)
		if err != nil {
			return repoErr(err, "failed to load overlapping pending reservations")
		}

		result = &ApprovalResult{Reservation: res}
		reason := fmt.Sprintf("conflicts with approved reservation %s", res.ID())
		for _, p := range reservation.PendingOverlapping(res, pending) {
			ev, err := p.AutoReject(now, reason)
			if err != nil {
				return transitionErr(err)
			}
			if err := s.lifecycle.transitioned(ctx, tx, p, ev); err != nil {
				return err
			}
			result.AutoRejected = append(result.AutoRejected, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("reservation approved",
		"reservation_id", id,
		"auto_rejected", len(result.AutoRejected))
	return result, nil
}

func (s *BookingService) RejectReservation(ctx context.Context, id uuid.UUID, reason string) (*reservation.Reservation, error) {
	return s.transition(ctx, id, func(r *reservation.Reservation, now time.Time) (reservation.Event, error) {
		return r.Reject(now, reason)
	})
}

func (s *BookingService) CancelReservation(ctx context.Context, id uuid.UUID, reason string) (*reservation.Reservation, error) {
	return s.transition(ctx, id, func(r *reservation.Reservation, now time.Time) (reservation.Event, error) {
		return r.Cancel(now, reason)
	})
}

func (s *BookingService) transition(
	ctx context.Context,
	id uuid.UUID,
	step func(r *reservation.Reservation, now time.Time) (reservation.Event, error),
) (*reservation.Reservation, error) {
	var updated *reservation.Reservation
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := s.lockAndLoad(ctx, tx, id)
		if err != nil {
			return err
		}
		ev, err := step(res, s.clock.Now())
		if err != nil {
			return transitionErr(err)
		}
		if err := s.lifecycle.transitioned(ctx, tx, res, ev); err != nil {
			return err
		}
		updated = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("reservation status changed",
		"reservation_id", updated.ID(),
		"status", updated.Status())
	return updated, nil
}

// lockAndLoad takes the resource lease and re-reads the reservation so the
// caller acts on the state as of the lease.
func (s *BookingService) lockAndLoad(ctx context.Context, tx shared.Tx, id uuid.UUID) (*reservation.Reservation, error) {
	res, err := tx.Reservations().FindByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, "reservation not found")
	}
	if err := tx.Locks().LockResource(ctx, res.ResourceID()); err != nil {
		return nil, repoErr(err, "failed to lock resource")
	}
	res, err = tx.Reservations().FindByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, "reservation not found")
	}
	return res, nil
}
