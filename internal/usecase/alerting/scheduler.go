package alerting

import (
	"context"
	"errors"
	"log/slog"

	"facility-booking/internal/domain/alert"
	"facility-booking/internal/domain/reservation"
	"facility-booking/internal/pkg/clock"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type SchedulerConfig struct {
	Channels  []alert.Channel
	Reminders []alert.Type
	// AdminRecipient receives NEW_RESERVATION_FOR_ADMIN by email. Empty disables it.
	AdminRecipient string
}

type AlertCommands interface {
	CancelAlertsForReservation(ctx context.Context, reservationID uuid.UUID) (int, error)
}

// Scheduler turns lifecycle events into alert rows. It runs inside the
// transaction of the event, so an alert is committed with its transition.
type Scheduler struct {
	uow   shared.UnitOfWork
	clock clock.Clock
	cfg   SchedulerConfig
}

func NewScheduler(uow shared.UnitOfWork, clk clock.Clock, cfg SchedulerConfig) *Scheduler {
	return &Scheduler{uow: uow, clock: clk, cfg: cfg}
}

func (s *Scheduler) HandleEvent(ctx context.Context, tx shared.Tx, ev reservation.Event) error {
	now := s.clock.Now()

	if ev.IsCreation() {
		return s.scheduleForNewReservation(ctx, tx, ev)
	}

	if ev.To.IsTerminal() {
		if _, err := s.cancelActive(ctx, tx, ev.ReservationID); err != nil {
			return err
		}
	}

	typ, ok := alert.TypeForTransition(ev.To)
	if !ok {
		return nil
	}
	for _, ch := range s.cfg.Channels {
		a := alert.NewImmediate(ev.ReservationID, typ, ch, ev.UserID.String(), now)
		if err := tx.Alerts().Create(ctx, a); err != nil {
			return errs.Wrap(err, "failed to enqueue transition alert")
		}
	}
	return nil
}

func (s *Scheduler) scheduleForNewReservation(ctx context.Context, tx shared.Tx, ev reservation.Event) error {
	now := s.clock.Now()

	if s.cfg.AdminRecipient != "" {
		a := alert.NewImmediate(ev.ReservationID, alert.TypeNewReservation, alert.ChannelEmail, s.cfg.AdminRecipient, now)
		if err := tx.Alerts().Create(ctx, a); err != nil {
			return errs.Wrap(err, "failed to enqueue admin alert")
		}
	}

	for _, typ := range s.cfg.Reminders {
		for _, ch := range s.cfg.Channels {
			a, err := alert.NewReminder(ev.ReservationID, typ, ch, ev.UserID.String(), ev.Slot.Start(), now)
			if errors.Is(err, alert.ErrReminderElapsed) {
				continue
			}
			if err != nil {
				return err
			}
			if err := tx.Alerts().Create(ctx, a); err != nil {
				return errs.Wrap(err, "failed to schedule reminder")
			}
		}
	}
	return nil
}

// CancelAlertsForReservation cancels every alert of the reservation that has
// not been sent yet and returns how many were cancelled.
func (s *Scheduler) CancelAlertsForReservation(ctx context.Context, reservationID uuid.UUID) (int, error) {
	var cancelled int
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reservations().FindByID(ctx, reservationID); err != nil {
			return markNotFound(err, "reservation not found")
		}
		n, err := s.cancelActive(ctx, tx, reservationID)
		cancelled = n
		return err
	})
	if err != nil {
		return 0, err
	}

	slog.Info("alerts cancelled", "reservation_id", reservationID, "count", cancelled)
	return cancelled, nil
}

func (s *Scheduler) cancelActive(ctx context.Context, tx shared.Tx, reservationID uuid.UUID) (int, error) {
	active, err := tx.Alerts().LockActiveByReservation(ctx, reservationID)
	if err != nil {
		return 0, errs.Wrap(err, "failed to lock alerts")
	}

	now := s.clock.Now()
	for _, a := range active {
		if err := a.Cancel(now); err != nil {
			return 0, err
		}
		if err := tx.Alerts().Update(ctx, a); err != nil {
			return 0, errs.Wrap(err, "failed to cancel alert")
		}
	}
	return len(active), nil
}
