package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const claimAlert = `-- name: ClaimAlert :one
SELECT id, reservation_id, type, channel, recipient, scheduled_at, state, attempt_count, failure_reason, sent_at, claimed_until, created_at, updated_at FROM alerts
WHERE id = $1
FOR UPDATE SKIP LOCKED
`

func (q *Queries) ClaimAlert(ctx context.Context, db DBTX, id uuid.UUID) (Alerts, error) {
	row := db.QueryRow(ctx, claimAlert, id)
	var i Alerts
	err := row.Scan(
		&i.ID,
		&i.ReservationID,
		&i.Type,
		&i.Channel,
		&i.Recipient,
		&i.ScheduledAt,
		&i.State,
		&i.AttemptCount,
		&i.FailureReason,
		&i.SentAt,
		&i.ClaimedUntil,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createAlert = `-- name: CreateAlert :exec
INSERT INTO alerts (
    id, reservation_id, type, channel, recipient, scheduled_at, state,
    attempt_count, failure_reason, sent_at, created_at, updated_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7,
    $8, $9, $10, $11, $12
)
`

type CreateAlertParams struct {
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
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

func (q *Queries) CreateAlert(ctx context.Context, db DBTX, arg CreateAlertParams) error {
	_, err := db.Exec(ctx, createAlert,
		arg.ID,
		arg.ReservationID,
		arg.Type,
		arg.Channel,
		arg.Recipient,
		arg.ScheduledAt,
		arg.State,
		arg.AttemptCount,
		arg.FailureReason,
		arg.SentAt,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const deleteTerminalAlertsBefore = `-- name: DeleteTerminalAlertsBefore :execrows
DELETE FROM alerts
WHERE state IN ('SENT', 'FAILED', 'CANCELLED')
  AND updated_at < $1
`

func (q *Queries) DeleteTerminalAlertsBefore(ctx context.Context, db DBTX, cutoff pgtype.Timestamptz) (int64, error) {
	result, err := db.Exec(ctx, deleteTerminalAlertsBefore, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const listAlertsByReservation = `-- name: ListAlertsByReservation :many
SELECT id, reservation_id, type, channel, recipient, scheduled_at, state, attempt_count, failure_reason, sent_at, claimed_until, created_at, updated_at FROM alerts
WHERE reservation_id = $1
ORDER BY scheduled_at, id
`

func (q *Queries) ListAlertsByReservation(ctx context.Context, db DBTX, reservationID uuid.UUID) ([]Alerts, error) {
	rows, err := db.Query(ctx, listAlertsByReservation, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Alerts
	for rows.Next() {
		var i Alerts
		if err := rows.Scan(
			&i.ID,
			&i.ReservationID,
			&i.Type,
			&i.Channel,
			&i.Recipient,
			&i.ScheduledAt,
			&i.State,
			&i.AttemptCount,
			&i.FailureReason,
			&i.SentAt,
			&i.ClaimedUntil,
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

const listDueAlerts = `-- name: ListDueAlerts :many
SELECT id, reservation_id, type, channel, recipient, scheduled_at, state, attempt_count, failure_reason, sent_at, claimed_until, created_at, updated_at FROM alerts
WHERE state IN ('PENDING', 'SCHEDULED')
  AND scheduled_at <= $1
  AND (claimed_until IS NULL OR claimed_until <= $1)
ORDER BY scheduled_at, id
LIMIT $2
`

type ListDueAlertsParams struct {
	Now     pgtype.Timestamptz
	MaxRows int32
}

func (q *Queries) ListDueAlerts(ctx context.Context, db DBTX, arg ListDueAlertsParams) ([]Alerts, error) {
	rows, err := db.Query(ctx, listDueAlerts, arg.Now, arg.MaxRows)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Alerts
	for rows.Next() {
		var i Alerts
		if err := rows.Scan(
			&i.ID,
			&i.ReservationID,
			&i.Type,
			&i.Channel,
			&i.Recipient,
			&i.ScheduledAt,
			&i.State,
			&i.AttemptCount,
			&i.FailureReason,
			&i.SentAt,
			&i.ClaimedUntil,
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

const lockActiveAlertsByReservation = `-- name: LockActiveAlertsByReservation :many
SELECT id, reservation_id, type, channel, recipient, scheduled_at, state, attempt_count, failure_reason, sent_at, claimed_until, created_at, updated_at FROM alerts
WHERE reservation_id = $1
  AND state IN ('PENDING', 'SCHEDULED')
ORDER BY id
FOR UPDATE
`

func (q *Queries) LockActiveAlertsByReservation(ctx context.Context, db DBTX, reservationID uuid.UUID) ([]Alerts, error) {
	rows, err := db.Query(ctx, lockActiveAlertsByReservation, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Alerts
	for rows.Next() {
		var i Alerts
		if err := rows.Scan(
			&i.ID,
			&i.ReservationID,
			&i.Type,
			&i.Channel,
			&i.Recipient,
			&i.ScheduledAt,
			&i.State,
			&i.AttemptCount,
			&i.FailureReason,
			&i.SentAt,
			&i.ClaimedUntil,
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

const lockAlert = `-- name: LockAlert :one
SELECT id, reservation_id, type, channel, recipient, scheduled_at, state, attempt_count, failure_reason, sent_at, claimed_until, created_at, updated_at FROM alerts
WHERE id = $1
FOR UPDATE
`

func (q *Queries) LockAlert(ctx context.Context, db DBTX, id uuid.UUID) (Alerts, error) {
	row := db.QueryRow(ctx, lockAlert, id)
	var i Alerts
	err := row.Scan(
		&i.ID,
		&i.ReservationID,
		&i.Type,
		&i.Channel,
		&i.Recipient,
		&i.ScheduledAt,
		&i.State,
		&i.AttemptCount,
		&i.FailureReason,
		&i.SentAt,
		&i.ClaimedUntil,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const updateAlert = `-- name: UpdateAlert :execrows
UPDATE alerts
SET state = $1,
    attempt_count = $2,
    failure_reason = $3,
    sent_at = $4,
    claimed_until = $5,
    updated_at = $6
WHERE id = $7
`

type UpdateAlertParams struct {
	State         string
	AttemptCount  int32
	FailureReason pgtype.Text
	SentAt        pgtype.Timestamptz
	ClaimedUntil  pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
	ID            uuid.UUID
}

func (q *Queries) UpdateAlert(ctx context.Context, db DBTX, arg UpdateAlertParams) (int64, error) {
	result, err := db.Exec(ctx, updateAlert,
		arg.State,
		arg.AttemptCount,
		arg.FailureReason,
		arg.SentAt,
		arg.ClaimedUntil,
		arg.UpdatedAt,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
