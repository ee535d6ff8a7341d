package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const getUserContact = `-- name: GetUserContact :one
SELECT user_id, email, phone, push_endpoint, updated_at FROM user_contacts
WHERE user_id = $1
`

func (q *Queries) GetUserContact(ctx context.Context, db DBTX, userID uuid.UUID) (UserContacts, error) {
	row := db.QueryRow(ctx, getUserContact, userID)
	var i UserContacts
	err := row.Scan(
		&i.UserID,
		&i.Email,
		&i.Phone,
		&i.PushEndpoint,
		&i.UpdatedAt,
	)
	return i, err
}

const upsertUserContact = `-- name: UpsertUserContact :exec
INSERT INTO user_contacts (user_id, email, phone, push_endpoint, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (user_id) DO UPDATE
SET email = EXCLUDED.email,
    phone = EXCLUDED.phone,
    push_endpoint = EXCLUDED.push_endpoint,
    updated_at = EXCLUDED.updated_at
`

type UpsertUserContactParams struct {
	UserID       uuid.UUID
	Email        pgtype.Text
	Phone        pgtype.Text
	PushEndpoint pgtype.Text
	UpdatedAt    pgtype.Timestamptz
}

func (q *Queries) UpsertUserContact(ctx context.Context, db DBTX, arg UpsertUserContactParams) error {
	_, err := db.Exec(ctx, upsertUserContact,
		arg.UserID,
		arg.Email,
		arg.Phone,
		arg.PushEndpoint,
		arg.UpdatedAt,
	)
	return err
}
