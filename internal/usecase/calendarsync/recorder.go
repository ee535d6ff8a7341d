// Package calendarsync feeds lifecycle events to external calendars through
// a transactional outbox.
package calendarsync

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"facility-booking/internal/domain/reservation"
	"facility-booking/internal/pkg/clock"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// Payload is the JSON body of a calendar-sync message.
type Payload struct {
	ReservationID uuid.UUID `json:"reservationId"`
	ResourceID    uuid.UUID `json:"resourceId"`
	UserID        uuid.UUID `json:"userId"`
	From          string    `json:"from,omitempty"`
	To            string    `json:"to"`
	Reason        string    `json:"reason,omitempty"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// Topic is the routing key of an event, e.g. "reservation.approved".
func Topic(status reservation.Status) string {
	return "reservation." + strings.ToLower(status.String())
}

// Recorder appends one outbox row per lifecycle event, in the event's
// transaction.
type Recorder struct {
	clock clock.Clock
}

func NewRecorder(clk clock.Clock) *Recorder {
	return &Recorder{clock: clk}
}

func (r *Recorder) HandleEvent(ctx context.Context, tx shared.Tx, ev reservation.Event) error {
	payload, err := json.Marshal(Payload{
		ReservationID: ev.ReservationID,
		ResourceID:    ev.ResourceID,
		UserID:        ev.UserID,
		From:          ev.From.String(),
		To:            ev.To.String(),
		Reason:        ev.Reason,
		Start:         ev.Slot.Start(),
		End:           ev.Slot.End(),
		OccurredAt:    ev.OccurredAt,
	})
	if err != nil {
		return errs.Wrap(err, "failed to encode calendar event")
	}

	occurredAt := ev.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = r.clock.Now()
	}
	err = tx.Outbox().Append(ctx, shared.OutboxEvent{
		ID:          uuid.New(),
		Topic:       Topic(ev.To),
		AggregateID: ev.ReservationID,
		Payload:     payload,
		OccurredAt:  occurredAt,
	})
	if err != nil {
		return errs.Wrap(err, "failed to append outbox event")
	}
	return nil
}
