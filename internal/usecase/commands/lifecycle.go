package commands

import (
	"context"
	"fmt"
	"strings"

	"facility-booking/internal/domain/reservation"
	"facility-booking/internal/infra"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// ConflictError lists the APPROVED reservations that block a slot.
type ConflictError struct {
	Conflicts []uuid.UUID
}

func (e *ConflictError) Error() string {
	ids := make([]string, len(e.Conflicts))
	for i, id := range e.Conflicts {
		ids[i] = id.String()
	}
	return fmt.Sprintf("slot conflicts with approved reservation(s) %s", strings.Join(ids, ", "))
}

func newConflictError(conflicts []*reservation.Reservation) error {
	ids := make([]uuid.UUID, len(conflicts))
	for i, c := range conflicts {
		ids[i] = c.ID()
	}
	return errs.Mark(&ConflictError{Conflicts: ids}, errs.ErrConflict)
}

// lifecycle persists a transition and hands its event to every handler in
// the same transaction.
type lifecycle struct {
	handlers []shared.EventHandler
}

func (l lifecycle) created(ctx context.Context, tx shared.Tx, res *reservation.Reservation, ev reservation.Event) error {
	if err := tx.Reservations().Create(ctx, res); err != nil {
		return repoErr(err, "failed to create reservation")
	}
	return l.emit(ctx, tx, ev)
}

func (l lifecycle) transitioned(ctx context.Context, tx shared.Tx, res *reservation.Reservation, ev reservation.Event) error {
	if err := tx.Reservations().UpdateStatus(ctx, res); err != nil {
		return repoErr(err, "failed to update reservation status")
	}
	return l.emit(ctx, tx, ev)
}

func (l lifecycle) emit(ctx context.Context, tx shared.Tx, ev reservation.Event) error {
	for _, h := range l.handlers {
		if err := h.HandleEvent(ctx, tx, ev); err != nil {
			return errs.Mark(errs.Wrap(err, "failed to handle lifecycle event"), errs.ErrDatabaseOperationFailed)
		}
	}
	return nil
}

// repoErr maps repository kinds onto the usecase error taxonomy.
func repoErr(err error, msg string) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(errs.Wrap(err, msg), errs.ErrNotFound)
	case infra.IsKind(err, infra.KindConflict):
		return errs.Mark(errs.Wrap(err, msg), errs.ErrConflict)
	default:
		return errs.Mark(errs.Wrap(err, msg), errs.ErrDatabaseOperationFailed)
	}
}

func transitionErr(err error) error {
	return errs.Mark(err, errs.ErrInvalidTransition)
}

func validationErr(err error) error {
	return errs.Mark(err, errs.ErrValidation)
}
