package repository

import (
	"context"
	"time"

	"facility-booking/internal/domain/user"
	"facility-booking/internal/infra"
	sqlc "facility-booking/internal/infra/sqlc/generated"
	"facility-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ContactQueries interface {
	GetUserContact(ctx context.Context, db sqlc.DBTX, userID uuid.UUID) (sqlc.UserContacts, error)
	UpsertUserContact(ctx context.Context, db sqlc.DBTX, arg sqlc.UpsertUserContactParams) error
}

type ContactRepository struct {
	queries ContactQueries
	db      sqlc.DBTX
}

func NewContactRepository(queries ContactQueries, db sqlc.DBTX) *ContactRepository {
	return &ContactRepository{
		queries: queries,
		db:      db,
	}
}

func (r *ContactRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*user.Contact, error) {
	row, err := r.queries.GetUserContact(ctx, r.db, userID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("contact not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find contact", err)
	}

	contact, err := user.NewContact(
		row.UserID,
		pgconv.StringFromPgtype(row.Email),
		pgconv.StringFromPgtype(row.Phone),
		pgconv.StringFromPgtype(row.PushEndpoint),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode contact", err)
	}
	return contact, nil
}

func (r *ContactRepository) Upsert(ctx context.Context, c *user.Contact, now time.Time) error {
	params := sqlc.UpsertUserContactParams{
		UserID:       c.UserID(),
		PushEndpoint: pgconv.OptionalText(c.PushEndpoint()),
		UpdatedAt:    pgconv.TimeToPgtype(now),
	}
	if e := c.Email(); e != nil {
		params.Email = pgconv.OptionalText(e.Value())
	}
	if p := c.Phone(); p != nil {
		params.Phone = pgconv.OptionalText(p.Value())
	}

	if err := r.queries.UpsertUserContact(ctx, r.db, params); err != nil {
		return infra.WrapRepoErr("failed to save contact", err)
	}
	return nil
}
