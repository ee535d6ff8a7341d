package repository

import (
	"context"

	"facility-booking/internal/domain/reservation"
	"facility-booking/internal/infra"
	"facility-booking/internal/infra/repository/converter"
	sqlc "facility-booking/internal/infra/sqlc/generated"
	"facility-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationQueries interface {
	CreateReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateReservationParams) error
	GetReservation(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Reservations, error)
	FindOverlappingReservations(ctx context.Context, db sqlc.DBTX, arg sqlc.FindOverlappingReservationsParams) ([]sqlc.Reservations, error)
	ListReservationsByRecurrence(ctx context.Context, db sqlc.DBTX, recurrenceID pgtype.UUID) ([]sqlc.Reservations, error)
	UpdateReservationStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateReservationStatusParams) (int64, error)
}

type ReservationRepository struct {
	queries ReservationQueries
	db      sqlc.DBTX
}

func NewReservationRepository(queries ReservationQueries, db sqlc.DBTX) *ReservationRepository {
	return &ReservationRepository{
		queries: queries,
		db:      db,
	}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	if err := r.queries.CreateReservation(ctx, r.db, converter.ReservationToInfra(res)); err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	return nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row, err := r.queries.GetReservation(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}
	res, err := converter.ReservationToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode reservation", err)
	}
	return res, nil
}

func (r *ReservationRepository) FindOverlapping(ctx context.Context, resourceID uuid.UUID, slot reservation.TimeSlot, statuses ...reservation.Status) ([]*reservation.Reservation, error) {
	if len(statuses) == 0 {
		statuses = reservation.AllStatuses()
	}
	rows, err := r.queries.FindOverlappingReservations(ctx, r.db, sqlc.FindOverlappingReservationsParams{
		ResourceID: resourceID,
		EndAt:      pgconv.TimeToPgtype(slot.End()),
		StartAt:    pgconv.TimeToPgtype(slot.Start()),
		Statuses:   converter.StatusesToInfra(statuses),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find overlapping reservations", err)
	}
	out, err := converter.ReservationsToDomain(rows)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode reservations", err)
	}
	return out, nil
}

func (r *ReservationRepository) FindByRecurrence(ctx context.Context, recurrenceID uuid.UUID) ([]*reservation.Reservation, error) {
	rows, err := r.queries.ListReservationsByRecurrence(ctx, r.db, pgconv.UUIDToPgtype(recurrenceID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list recurrence reservations", err)
	}
	out, err := converter.ReservationsToDomain(rows)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode reservations", err)
	}
	return out, nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, res *reservation.Reservation) error {
	n, err := r.queries.UpdateReservationStatus(ctx, r.db, converter.ReservationStatusToInfra(res))
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation status", err)
	}
	if n == 0 {
		return infra.NotFound("reservation not found")
	}
	return nil
}
