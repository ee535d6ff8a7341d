package sqlc

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Alerts struct {
	ID            uuid.UUID
	ReservationID uuid.UUID
	Type          string
	Channel       string
	Recipient     string
	ScheduledAt   pgtype.Timestamptz
	State         string
	AttemptCount  int32
	FailureReason pgtype.Text
	SentAt        pgtype.Timestamptz
	ClaimedUntil  pgtype.Timestamptz
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

type OutboxEvents struct {
	ID          uuid.UUID
	Topic       string
	AggregateID uuid.UUID
	Payload     []byte
	OccurredAt  pgtype.Timestamptz
	PublishedAt pgtype.Timestamptz
}

type RecurrenceConfigs struct {
	ID             uuid.UUID
	ResourceID     uuid.UUID
	UserID         uuid.UUID
	Pattern        string
	StartDate      pgtype.Date
	EndDate        pgtype.Date
	StartTime      pgtype.Time
	EndTime        pgtype.Time
	Weekdays       []int16
	DayOfMonth     pgtype.Int2
	IntervalCount  int32
	MaxOccurrences int32
	GeneratedCount int32
	Active         bool
	CreatedAt      pgtype.Timestamptz
	UpdatedAt      pgtype.Timestamptz
}

type RecurrenceOccurrences struct {
	ConfigID       uuid.UUID
	OccurrenceDate pgtype.Date
	ReservationID  pgtype.UUID
	SkipReason     pgtype.Text
	CreatedAt      pgtype.Timestamptz
}

type Reservations struct {
	ID           uuid.UUID
	ResourceID   uuid.UUID
	UserID       uuid.UUID
	StartAt      pgtype.Timestamptz
	EndAt        pgtype.Timestamptz
	Status       string
	Reason       pgtype.Text
	RecurrenceID pgtype.UUID
	CreatedAt    pgtype.Timestamptz
	UpdatedAt    pgtype.Timestamptz
}

type UserContacts struct {
	UserID       uuid.UUID
	Email        pgtype.Text
	Phone        pgtype.Text
	PushEndpoint pgtype.Text
	UpdatedAt    pgtype.Timestamptz
}
