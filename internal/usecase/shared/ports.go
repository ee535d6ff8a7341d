package shared

import (
	"context"
	"time"

	"facility-booking/internal/domain/alert"

	"github.com/google/uuid"
)

// Message is what a channel transport delivers for one alert.
type Message struct {
	AlertID       uuid.UUID
	ReservationID uuid.UUID
	Type          alert.Type
	Channel       alert.Channel
	Recipient     string
	Subject       string
	Body          string
}

// Sender delivers a message on its channel. Implementations must honour ctx.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// ContactDirectory turns a recipient (user id or literal address) into the
// address used on ch.
type ContactDirectory interface {
	Resolve(ctx context.Context, recipient string, ch alert.Channel) (string, error)
}

type OutboxEvent struct {
	ID          uuid.UUID
	Topic       string
	AggregateID uuid.UUID
	Payload     []byte
	OccurredAt  time.Time
	PublishedAt *time.Time
}

type EventPublisher interface {
	Publish(ctx context.Context, ev OutboxEvent) error
}

// Lease is a cross-instance mutual exclusion used by periodic tasks.
type Lease interface {
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, acquired bool, err error)
}
