//go:build unit || e2e

package builder

import (
	"time"

	"facility-booking/internal/domain/reservation"
	reqdto "facility-booking/internal/handler/dto/request"
	sqlc "facility-booking/internal/infra/sqlc/generated"
	"facility-booking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationBuilder struct {
	ID           uuid.UUID
	ResourceID   uuid.UUID
	UserID       uuid.UUID
	Start        time.Time
	End          time.Time
	Status       reservation.Status
	Reason       string
	RecurrenceID *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Now().UTC().Truncate(time.Second)
	start := now.Add(48 * time.Hour).Truncate(time.Hour)
	return &ReservationBuilder{
		ID:         uuid.New(),
		ResourceID: uuid.New(),
		UserID:     uuid.New(),
		Start:      start,
		End:        start.Add(time.Hour),
		Status:     reservation.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) WithSlot(start, end time.Time) *ReservationBuilder {
	b.Start, b.End = start, end
	return b
}

func (b *ReservationBuilder) WithStatus(s reservation.Status) *ReservationBuilder {
	b.Status = s
	return b
}

// Build methods
func (b *ReservationBuilder) BuildDomain() *reservation.Reservation {
	slot, err := reservation.NewTimeSlot(b.Start, b.End)
	if err != nil {
		panic(err)
	}
	return reservation.ReconstructReservation(
		b.ID, b.ResourceID, b.UserID, slot, b.Status, b.Reason, b.RecurrenceID, b.CreatedAt, b.UpdatedAt,
	)
}

func (b *ReservationBuilder) BuildInfra() sqlc.Reservations {
	row := sqlc.Reservations{
		ID:         b.ID,
		ResourceID: b.ResourceID,
		UserID:     b.UserID,
		StartAt:    pgtype.Timestamptz{Time: b.Start, Valid: true},
		EndAt:      pgtype.Timestamptz{Time: b.End, Valid: true},
		Status:     b.Status.String(),
		Reason:     pgtype.Text{String: b.Reason, Valid: b.Reason != ""},
		CreatedAt:  pgtype.Timestamptz{Time: b.CreatedAt, Valid: true},
		UpdatedAt:  pgtype.Timestamptz{Time: b.UpdatedAt, Valid: true},
	}
	if b.RecurrenceID != nil {
		row.RecurrenceID = pgtype.UUID{Bytes: *b.RecurrenceID, Valid: true}
	}
	return row
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		ResourceID: b.ResourceID,
		StartTime:  b.Start,
		EndTime:    b.End,
	}
}

func (b *ReservationBuilder) BuildInput() commands.CreateReservationInput {
	return commands.CreateReservationInput{
		ResourceID: b.ResourceID,
		UserID:     b.UserID,
		Start:      b.Start,
		End:        b.End,
	}
}
