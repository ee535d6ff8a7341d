package repository

import (
	"context"
	"math"
	"time"

	"facility-booking/internal/infra"
	"facility-booking/internal/infra/repository/converter"
	sqlc "facility-booking/internal/infra/sqlc/generated"
	"facility-booking/internal/pkg/pgconv"
	"facility-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type OutboxQueries interface {
	InsertOutboxEvent(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertOutboxEventParams) error
	FetchUnpublishedOutboxEvents(ctx context.Context, db sqlc.DBTX, maxRows int32) ([]sqlc.OutboxEvents, error)
	MarkOutboxEventPublished(ctx context.Context, db sqlc.DBTX, arg sqlc.MarkOutboxEventPublishedParams) (int64, error)
}

type OutboxRepository struct {
	queries OutboxQueries
	db      sqlc.DBTX
}

func NewOutboxRepository(queries OutboxQueries, db sqlc.DBTX) *OutboxRepository {
	return &OutboxRepository{
		queries: queries,
		db:      db,
	}
}

func (r *OutboxRepository) Append(ctx context.Context, ev shared.OutboxEvent) error {
	if err := r.queries.InsertOutboxEvent(ctx, r.db, converter.OutboxToInfra(ev)); err != nil {
		return infra.WrapRepoErr("failed to append outbox event", err)
	}
	return nil
}

func (r *OutboxRepository) FetchUnpublished(ctx context.Context, limit int) ([]shared.OutboxEvent, error) {
	if limit <= 0 || limit > math.MaxInt32 {
		limit = math.MaxInt32
	}
	rows, err := r.queries.FetchUnpublishedOutboxEvents(ctx, r.db, int32(limit)) // #nosec G115 -- clamped above
	if err != nil {
		return nil, infra.WrapRepoErr("failed to fetch outbox events", err)
	}
	out := make([]shared.OutboxEvent, len(rows))
	for i, row := range rows {
		out[i] = converter.OutboxToDomain(row)
	}
	return out, nil
}

func (r *OutboxRepository) MarkPublished(ctx context.Context, id uuid.UUID, at time.Time) error {
	n, err := r.queries.MarkOutboxEventPublished(ctx, r.db, sqlc.MarkOutboxEventPublishedParams{
		PublishedAt: pgconv.TimeToPgtype(at),
		ID:          id,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to mark outbox event published", err)
	}
	if n == 0 {
		return infra.NotFound("outbox event not found")
	}
	return nil
}
