package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Querier interface {
	AcquireXactLock(ctx context.Context, db DBTX, lockKey string) error
	ClaimAlert(ctx context.Context, db DBTX, id uuid.UUID) (Alerts, error)
	CreateAlert(ctx context.Context, db DBTX, arg CreateAlertParams) error
	CreateRecurrenceConfig(ctx context.Context, db DBTX, arg CreateRecurrenceConfigParams) error
	CreateReservation(ctx context.Context, db DBTX, arg CreateReservationParams) error
	DeleteRecurrenceConfig(ctx context.Context, db DBTX, id uuid.UUID) (int64, error)
	DeleteTerminalAlertsBefore(ctx context.Context, db DBTX, cutoff pgtype.Timestamptz) (int64, error)
	FetchUnpublishedOutboxEvents(ctx context.Context, db DBTX, maxRows int32) ([]OutboxEvents, error)
	FindOverlappingReservations(ctx context.Context, db DBTX, arg FindOverlappingReservationsParams) ([]Reservations, error)
	GetRecurrenceConfig(ctx context.Context, db DBTX, id uuid.UUID) (RecurrenceConfigs, error)
	GetReservation(ctx context.Context, db DBTX, id uuid.UUID) (Reservations, error)
	GetUserContact(ctx context.Context, db DBTX, userID uuid.UUID) (UserContacts, error)
	InsertOutboxEvent(ctx context.Context, db DBTX, arg InsertOutboxEventParams) error
	InsertRecurrenceOccurrence(ctx context.Context, db DBTX, arg InsertRecurrenceOccurrenceParams) error
	ListActiveRecurrenceConfigs(ctx context.Context, db DBTX) ([]RecurrenceConfigs, error)
	ListAlertsByReservation(ctx context.Context, db DBTX, reservationID uuid.UUID) ([]Alerts, error)
	ListDueAlerts(ctx context.Context, db DBTX, arg ListDueAlertsParams) ([]Alerts, error)
	ListRecurrenceOccurrences(ctx context.Context, db DBTX, configID uuid.UUID) ([]RecurrenceOccurrences, error)
	ListReservationsByRecurrence(ctx context.Context, db DBTX, recurrenceID pgtype.UUID) ([]Reservations, error)
	LockActiveAlertsByReservation(ctx context.Context, db DBTX, reservationID uuid.UUID) ([]Alerts, error)
	LockAlert(ctx context.Context, db DBTX, id uuid.UUID) (Alerts, error)
	MarkOutboxEventPublished(ctx context.Context, db DBTX, arg MarkOutboxEventPublishedParams) (int64, error)
	UpdateAlert(ctx context.Context, db DBTX, arg UpdateAlertParams) (int64, error)
	UpdateRecurrenceConfig(ctx context.Context, db DBTX, arg UpdateRecurrenceConfigParams) (int64, error)
	UpdateReservationStatus(ctx context.Context, db DBTX, arg UpdateReservationStatusParams) (int64, error)
	UpsertUserContact(ctx context.Context, db DBTX, arg UpsertUserContactParams) error
}

var _ Querier = (*Queries)(nil)
