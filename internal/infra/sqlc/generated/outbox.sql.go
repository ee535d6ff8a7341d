package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const fetchUnpublishedOutboxEvents = `-- name: FetchUnpublishedOutboxEvents :many
SELECT id, topic, aggregate_id, payload, occurred_at, published_at FROM outbox_events
WHERE published_at IS NULL
ORDER BY occurred_at, id
LIMIT $1
FOR UPDATE SKIP LOCKED
`

func (q *Queries) FetchUnpublishedOutboxEvents(ctx context.Context, db DBTX, maxRows int32) ([]OutboxEvents, error) {
	rows, err := db.Query(ctx, fetchUnpublishedOutboxEvents, maxRows)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []OutboxEvents
	for rows.Next() {
		var i OutboxEvents
		if err := rows.Scan(
			&i.ID,
			&i.Topic,
			&i.AggregateID,
			&i.Payload,
			&i.OccurredAt,
			&i.PublishedAt,
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

const insertOutboxEvent = `-- name: InsertOutboxEvent :exec
INSERT INTO outbox_events (
    id, topic, aggregate_id, payload, occurred_at
) VALUES (
    $1, $2, $3, $4, $5
)
`

type InsertOutboxEventParams struct {
	ID          uuid.UUID
	Topic       string
	AggregateID uuid.UUID
	Payload     []byte
	OccurredAt  pgtype.Timestamptz
}

func (q *Queries) InsertOutboxEvent(ctx context.Context, db DBTX, arg InsertOutboxEventParams) error {
	_, err := db.Exec(ctx, insertOutboxEvent,
		arg.ID,
		arg.Topic,
		arg.AggregateID,
		arg.Payload,
		arg.OccurredAt,
	)
	return err
}

const markOutboxEventPublished = `-- name: MarkOutboxEventPublished :execrows
UPDATE outbox_events
SET published_at = $1
WHERE id = $2
`

type MarkOutboxEventPublishedParams struct {
	PublishedAt pgtype.Timestamptz
	ID          uuid.UUID
}

func (q *Queries) MarkOutboxEventPublished(ctx context.Context, db DBTX, arg MarkOutboxEventPublishedParams) (int64, error) {
	result, err := db.Exec(ctx, markOutboxEventPublished, arg.PublishedAt, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
