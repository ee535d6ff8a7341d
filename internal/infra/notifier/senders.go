package notifier

import (
	"context"
	"log/slog"

	"facility-booking/internal/domain/alert"
	"facility-booking/internal/pkg/config"
	"facility-booking/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
)

// NewSenders builds one sender per enabled channel. A channel whose
// credentials are missing falls back to LogSender. rdb may be nil.
func NewSenders(ctx context.Context, cfg config.Config, rdb *redis.Client) (map[alert.Channel]shared.Sender, error) {
	channels, err := alert.ParseChannels(cfg.Alert.Channels)
	if err != nil {
		return nil, err
	}

	senders := make(map[alert.Channel]shared.Sender, len(channels))
	for _, ch := range channels {
		if cfg.Alert.DryRun {
			senders[ch] = NewLogSender()
			continue
		}

		var s shared.Sender
		switch ch {
		case alert.ChannelEmail:
			if cfg.SMTP.Host != "" {
				s = NewEmailSender(cfg.SMTP)
			}
		case alert.ChannelSMS:
			if cfg.Twilio.AccountSID != "" {
				s = NewSMSSender(cfg.Twilio)
			}
		case alert.ChannelPush:
			if cfg.Push.Enabled {
				push, err := NewPushSender(ctx, cfg.Push)
				if err != nil {
					return nil, err
				}
				s = push
			}
		case alert.ChannelSocket:
			if rdb != nil {
				s = NewSocketSender(rdb)
			}
		}
		if s == nil {
			slog.Warn("channel has no transport configured, alerts will only be logged", "channel", ch)
			s = NewLogSender()
		}
		senders[ch] = s
	}
	return senders, nil
}
