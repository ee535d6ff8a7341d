package converter

import (
	sqlc "facility-booking/internal/infra/sqlc/generated"
	"facility-booking/internal/pkg/pgconv"
	"facility-booking/internal/usecase/shared"
)

func OutboxToInfra(ev shared.OutboxEvent) sqlc.InsertOutboxEventParams {
	return sqlc.InsertOutboxEventParams{
		ID:          ev.ID,
		Topic:       ev.Topic,
		AggregateID: ev.AggregateID,
		Payload:     ev.Payload,
		OccurredAt:  pgconv.TimeToPgtype(ev.OccurredAt),
	}
}

func OutboxToDomain(row sqlc.OutboxEvents) shared.OutboxEvent {
	return shared.OutboxEvent{
		ID:          row.ID,
		Topic:       row.Topic,
		AggregateID: row.AggregateID,
		Payload:     row.Payload,
		OccurredAt:  pgconv.TimeFromPgtype(row.OccurredAt),
		PublishedAt: pgconv.TimePtrFromPgtype(row.PublishedAt),
	}
}
