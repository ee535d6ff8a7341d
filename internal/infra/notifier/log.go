package notifier

import (
	"context"
	"log/slog"

	"facility-booking/internal/usecase/shared"
)

// LogSender only logs. Used for ALERT_DRY_RUN and for channels without
// configured credentials.
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (LogSender) Send(ctx context.Context, msg shared.Message) error {
	slog.InfoContext(ctx, "alert delivered (dry run)",
		"alert_id", msg.AlertID,
		"reservation_id", msg.ReservationID,
		"channel", msg.Channel,
		"recipient", msg.Recipient,
		"type", msg.Type)
	return nil
}
