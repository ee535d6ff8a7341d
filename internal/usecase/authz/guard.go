package authz

import (
	"context"

	"facility-booking/internal/domain/recurrence"
	"facility-booking/internal/domain/reservation"
	"facility-booking/internal/usecase/alerting"
	"facility-booking/internal/usecase/commands"
	"facility-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

// BookingGuard checks permissions before delegating to the wrapped commands.
type BookingGuard struct {
	next    commands.BookingCommands
	queries queries.BookingQueries
}

func NewBookingGuard(next commands.BookingCommands, q queries.BookingQueries) *BookingGuard {
	return &BookingGuard{next: next, queries: q}
}

func (g *BookingGuard) CreateReservation(ctx context.Context, in commands.CreateReservationInput) (*reservation.Reservation, error) {
	if err := Authorize(ctx, Target{OwnerID: in.UserID}, ActionCreateReservation); err != nil {
		return nil, err
	}
	return g.next.CreateReservation(ctx, in)
}

func (g *BookingGuard) ApproveReservation(ctx context.Context, id uuid.UUID) (*commands.ApprovalResult, error) {
	if err := g.authorizeReservation(ctx, id, ActionApproveReservation); err != nil {
		return nil, err
	}
	return g.next.ApproveReservation(ctx, id)
}

func (g *BookingGuard) RejectReservation(ctx context.Context, id uuid.UUID, reason string) (*reservation.Reservation, error) {
	if err := g.authorizeReservation(ctx, id, ActionRejectReservation); err != nil {
		return nil, err
	}
	return g.next.RejectReservation(ctx, id, reason)
}

func (g *BookingGuard) CancelReservation(ctx context.Context, id uuid.UUID, reason string) (*reservation.Reservation, error) {
	if err := g.authorizeReservation(ctx, id, ActionCancelReservation); err != nil {
		return nil, err
	}
	return g.next.CancelReservation(ctx, id, reason)
}

func (g *BookingGuard) authorizeReservation(ctx context.Context, id uuid.UUID, action Action) error {
	if _, ok := ActorFrom(ctx); !ok {
		return Authorize(ctx, Target{}, action)
	}
	res, err := g.queries.GetReservation(ctx, id)
	if err != nil {
		return err
	}
	return Authorize(ctx, Target{OwnerID: res.UserID()}, action)
}

// RecurrenceGuard checks permissions before delegating to the wrapped commands.
type RecurrenceGuard struct {
	next    commands.RecurrenceCommands
	queries queries.BookingQueries
}

func NewRecurrenceGuard(next commands.RecurrenceCommands, q queries.BookingQueries) *RecurrenceGuard {
	return &RecurrenceGuard{next: next, queries: q}
}

func (g *RecurrenceGuard) PreviewRecurrence(ctx context.Context, p recurrence.Params) ([]commands.PreviewItem, error) {
	if err := Authorize(ctx, Target{OwnerID: p.UserID}, ActionManageRecurrence); err != nil {
		return nil, err
	}
	return g.next.PreviewRecurrence(ctx, p)
}

func (g *RecurrenceGuard) CreateRecurrence(ctx context.Context, p recurrence.Params) (*commands.CreateRecurrenceResult, error) {
	if err := Authorize(ctx, Target{OwnerID: p.UserID}, ActionManageRecurrence); err != nil {
		return nil, err
	}
	return g.next.CreateRecurrence(ctx, p)
}

func (g *RecurrenceGuard) GenerateOccurrences(ctx context.Context, configID uuid.UUID, limit recurrence.Date) (*commands.GenerationResult, error) {
	if err := g.authorizeConfig(ctx, configID); err != nil {
		return nil, err
	}
	return g.next.GenerateOccurrences(ctx, configID, limit)
}

func (g *RecurrenceGuard) GeneratePendingOccurrences(ctx context.Context) (*commands.GenerationSummary, error) {
	if err := Authorize(ctx, Target{}, ActionRunMaintenance); err != nil {
		return nil, err
	}
	return g.next.GeneratePendingOccurrences(ctx)
}

func (g *RecurrenceGuard) ActivateRecurrence(ctx context.Context, id uuid.UUID) (*recurrence.Config, error) {
	if err := g.authorizeConfig(ctx, id); err != nil {
		return nil, err
	}
	return g.next.ActivateRecurrence(ctx, id)
}

func (g *RecurrenceGuard) DeactivateRecurrence(ctx context.Context, id uuid.UUID) (*recurrence.Config, error) {
	if err := g.authorizeConfig(ctx, id); err != nil {
		return nil, err
	}
	return g.next.DeactivateRecurrence(ctx, id)
}

func (g *RecurrenceGuard) DeleteRecurrence(ctx context.Context, id uuid.UUID, cascade bool) (*commands.DeleteRecurrenceResult, error) {
	if err := g.authorizeConfig(ctx, id); err != nil {
		return nil, err
	}
	return g.next.DeleteRecurrence(ctx, id, cascade)
}

func (g *RecurrenceGuard) authorizeConfig(ctx context.Context, id uuid.UUID) error {
	if _, ok := ActorFrom(ctx); !ok {
		return Authorize(ctx, Target{}, ActionManageRecurrence)
	}
	cfg, err := g.queries.GetRecurrence(ctx, id)
	if err != nil {
		return err
	}
	return Authorize(ctx, Target{OwnerID: cfg.UserID()}, ActionManageRecurrence)
}

type AlertGuard struct {
	next alerting.AlertCommands
}

func NewAlertGuard(next alerting.AlertCommands) *AlertGuard {
	return &AlertGuard{next: next}
}

func (g *AlertGuard) CancelAlertsForReservation(ctx context.Context, reservationID uuid.UUID) (int, error) {
	if err := Authorize(ctx, Target{}, ActionManageAlerts); err != nil {
		return 0, err
	}
	return g.next.CancelAlertsForReservation(ctx, reservationID)
}

var (
	_ commands.BookingCommands    = (*BookingGuard)(nil)
	_ commands.RecurrenceCommands = (*RecurrenceGuard)(nil)
	_ alerting.AlertCommands      = (*AlertGuard)(nil)
)
