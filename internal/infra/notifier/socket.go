package notifier

import (
	"context"
	"encoding/json"

	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
)

type RedisPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

type socketFrame struct {
	AlertID       string `json:"alertId"`
	ReservationID string `json:"reservationId"`
	Type          string `json:"type"`
	Subject       string `json:"subject"`
	Body          string `json:"body"`
}

// SocketSender fans a frame out on the Redis channel the websocket gateway
// subscribes to. Zero subscribers still counts as delivered.
type SocketSender struct {
	rdb RedisPublisher
}

func NewSocketSender(rdb RedisPublisher) *SocketSender {
	return &SocketSender{rdb: rdb}
}

func (s *SocketSender) Send(ctx context.Context, msg shared.Message) error {
	frame, err := json.Marshal(socketFrame{
		AlertID:       msg.AlertID.String(),
		ReservationID: msg.ReservationID.String(),
		Type:          msg.Type.String(),
		Subject:       msg.Subject,
		Body:          msg.Body,
	})
	if err != nil {
		return errs.Wrap(err, "failed to encode socket frame")
	}

	if err := s.rdb.Publish(ctx, msg.Recipient, frame).Err(); err != nil {
		return errs.Wrap(err, "redis publish failed")
	}
	return nil
}
