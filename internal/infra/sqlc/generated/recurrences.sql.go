package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const createRecurrenceConfig = `-- name: CreateRecurrenceConfig :exec
INSERT INTO recurrence_configs (
    id, resource_id, user_id, pattern, start_date, end_date, start_time, end_time,
    weekdays, day_of_month, interval_count, max_occurrences, generated_count, active,
    created_at, updated_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8,
    $9, $10, $11, $12, $13, $14,
    $15, $16
)
`

type CreateRecurrenceConfigParams struct {
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

func (q *Queries) CreateRecurrenceConfig(ctx context.Context, db DBTX, arg CreateRecurrenceConfigParams) error {
	_, err := db.Exec(ctx, createRecurrenceConfig,
		arg.ID,
		arg.ResourceID,
		arg.UserID,
		arg.Pattern,
		arg.StartDate,
		arg.EndDate,
		arg.StartTime,
		arg.EndTime,
		arg.Weekdays,
		arg.DayOfMonth,
		arg.IntervalCount,
		arg.MaxOccurrences,
		arg.GeneratedCount,
		arg.Active,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const deleteRecurrenceConfig = `-- name: DeleteRecurrenceConfig :execrows
DELETE FROM recurrence_configs
WHERE id = $1
`

func (q *Queries) DeleteRecurrenceConfig(ctx context.Context, db DBTX, id uuid.UUID) (int64, error) {
	result, err := db.Exec(ctx, deleteRecurrenceConfig, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getRecurrenceConfig = `-- name: GetRecurrenceConfig :one
SELECT id, resource_id, user_id, pattern, start_date, end_date, start_time, end_time, weekdays, day_of_month, interval_count, max_occurrences, generated_count, active, created_at, updated_at FROM recurrence_configs
WHERE id = $1
`

func (q *Queries) GetRecurrenceConfig(ctx context.Context, db DBTX, id uuid.UUID) (RecurrenceConfigs, error) {
	row := db.QueryRow(ctx, getRecurrenceConfig, id)
	var i RecurrenceConfigs
	err := row.Scan(
		&i.ID,
		&i.ResourceID,
		&i.UserID,
		&i.Pattern,
		&i.StartDate,
		&i.EndDate,
		&i.StartTime,
		&i.EndTime,
		&i.Weekdays,
		&i.DayOfMonth,
		&i.IntervalCount,
		&i.MaxOccurrences,
		&i.GeneratedCount,
		&i.Active,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const insertRecurrenceOccurrence = `-- name: InsertRecurrenceOccurrence :exec
INSERT INTO recurrence_occurrences (
    config_id, occurrence_date, reservation_id, skip_reason, created_at
) VALUES (
    $1, $2, $3, $4, $5
)
`

type InsertRecurrenceOccurrenceParams struct {
	ConfigID       uuid.UUID
	OccurrenceDate pgtype.Date
	ReservationID  pgtype.UUID
	SkipReason     pgtype.Text
	CreatedAt      pgtype.Timestamptz
}

func (q *Queries) InsertRecurrenceOccurrence(ctx context.Context, db DBTX, arg InsertRecurrenceOccurrenceParams) error {
	_, err := db.Exec(ctx, insertRecurrenceOccurrence,
		arg.ConfigID,
		arg.OccurrenceDate,
		arg.ReservationID,
		arg.SkipReason,
		arg.CreatedAt,
	)
	return err
}

const listActiveRecurrenceConfigs = `-- name: ListActiveRecurrenceConfigs :many
SELECT id, resource_id, user_id, pattern, start_date, end_date, start_time, end_time, weekdays, day_of_month, interval_count, max_occurrences, generated_count, active, created_at, updated_at FROM recurrence_configs
WHERE active
ORDER BY created_at
`

func (q *Queries) ListActiveRecurrenceConfigs(ctx context.Context, db DBTX) ([]RecurrenceConfigs, error) {
	rows, err := db.Query(ctx, listActiveRecurrenceConfigs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []RecurrenceConfigs
	for rows.Next() {
		var i RecurrenceConfigs
		if err := rows.Scan(
			&i.ID,
			&i.ResourceID,
			&i.UserID,
			&i.Pattern,
			&i.StartDate,
			&i.EndDate,
			&i.StartTime,
			&i.EndTime,
			&i.Weekdays,
			&i.DayOfMonth,
			&i.IntervalCount,
			&i.MaxOccurrences,
			&i.GeneratedCount,
			&i.Active,
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

const listRecurrenceOccurrences = `-- name: ListRecurrenceOccurrences :many
SELECT config_id, occurrence_date, reservation_id, skip_reason, created_at FROM recurrence_occurrences
WHERE config_id = $1
ORDER BY occurrence_date
`

func (q *Queries) ListRecurrenceOccurrences(ctx context.Context, db DBTX, configID uuid.UUID) ([]RecurrenceOccurrences, error) {
	rows, err := db.Query(ctx, listRecurrenceOccurrences, configID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []RecurrenceOccurrences
	for rows.Next() {
		var i RecurrenceOccurrences
		if err := rows.Scan(
			&i.ConfigID,
			&i.OccurrenceDate,
			&i.ReservationID,
			&i.SkipReason,
			&i.CreatedAt,
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

const updateRecurrenceConfig = `-- name: UpdateRecurrenceConfig :execrows
UPDATE recurrence_configs
SET active = $1,
    generated_count = $2,
    updated_at = $3
WHERE id = $4
`

type UpdateRecurrenceConfigParams struct {
	Active         bool
	GeneratedCount int32
	UpdatedAt      pgtype.Timestamptz
	ID             uuid.UUID
}

func (q *Queries) UpdateRecurrenceConfig(ctx context.Context, db DBTX, arg UpdateRecurrenceConfigParams) (int64, error) {
	result, err := db.Exec(ctx, updateRecurrenceConfig,
		arg.Active,
		arg.GeneratedCount,
		arg.UpdatedAt,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
