package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const createReservation = `-- name: CreateReservation :exec
INSERT INTO reservations (
    id, resource_id, user_id, start_at, end_at, status, reason, recurrence_id, created_at, updated_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $10
)
`

type CreateReservationParams struct {
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

func (q *Queries) CreateReservation(ctx context.Context, db DBTX, arg CreateReservationParams) error {
	_, err := db.Exec(ctx, createReservation,
		arg.ID,
		arg.ResourceID,
		arg.UserID,
		arg.StartAt,
		arg.EndAt,
		arg.Status,
		arg.Reason,
		arg.RecurrenceID,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const findOverlappingReservations = `-- name: FindOverlappingReservations :many
SELECT id, resource_id, user_id, start_at, end_at, status, reason, recurrence_id, created_at, updated_at FROM reservations
WHERE resource_id = $1
  AND start_at < $2
  AND end_at > $3
  AND status = ANY($4::text[])
ORDER BY start_at, id
`

type FindOverlappingReservationsParams struct {
	ResourceID uuid.UUID
	EndAt      pgtype.Timestamptz
	StartAt    pgtype.Timestamptz
	Statuses   []string
}

func (q *Queries) FindOverlappingReservations(ctx context.Context, db DBTX, arg FindOverlappingReservationsParams) ([]Reservations, error) {
	rows, err := db.Query(ctx, findOverlappingReservations,
		arg.ResourceID,
		arg.EndAt,
		arg.StartAt,
		arg.Statuses,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Reservations
	for rows.Next() {
		var i Reservations
		if err := rows.Scan(
			&i.ID,
			&i.ResourceID,
			&i.UserID,
			&i.StartAt,
			&i.EndAt,
			&i.Status,
			&i.Reason,
			&i.RecurrenceID,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getReservation = `-- name: GetReservation :one
SELECT id, resource_id, user_id, start_at, end_at, status, reason, recurrence_id, created_at, updated_at FROM reservations
WHERE id = $1
`

func (q *Queries) GetReservation(ctx context.Context, db DBTX, id uuid.UUID) (Reservations, error) {
	row := db.QueryRow(ctx, getReservation, id)
	var i Reservations
	err := row.Scan(
		&i.ID,
		&i.ResourceID,
		&i.UserID,
		&i.StartAt,
		&i.EndAt,
		&i.Status,
		&i.Reason,
		&i.RecurrenceID,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listReservationsByRecurrence = `-- name: ListReservationsByRecurrence :many
SELECT id, resource_id, user_id, start_at, end_at, status, reason, recurrence_id, created_at, updated_at FROM reservations
WHERE recurrence_id = $1
ORDER BY start_at
`

func (q *Queries) ListReservationsByRecurrence(ctx context.Context, db DBTX, recurrenceID pgtype.UUID) ([]Reservations, error) {
	rows, err := db.Query(ctx, listReservationsByRecurrence, recurrenceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Reservations
	for rows.Next() {
		var i Reservations
		if err := rows.Scan(
			&i.ID,
			&i.ResourceID,
			&i.UserID,
			&i.StartAt,
			&i.EndAt,
			&i.Status,
			&i.Reason,
			&i.RecurrenceID,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateReservationStatus = `-- name: UpdateReservationStatus :execrows
UPDATE reservations
SET status = $1,
    reason = $2,
    updated_at = $3
WHERE id = $4
`

type UpdateReservationStatusParams struct {
	Status    string
	Reason    pgtype.Text
	UpdatedAt pgtype.Timestamptz
	ID        uuid.UUID
}

func (q *Queries) UpdateReservationStatus(ctx context.Context, db DBTX, arg UpdateReservationStatusParams) (int64, error) {
	result, err := db.Exec(ctx, updateReservationStatus,
		arg.Status,
		arg.Reason,
		arg.UpdatedAt,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
