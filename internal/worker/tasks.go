package worker

import (
	"context"
	"time"

	"facility-booking/internal/pkg/config"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/usecase/alerting"
	"facility-booking/internal/usecase/calendarsync"
	"facility-booking/internal/usecase/commands"
)

const (
	TaskDispatch = "dispatch"
	TaskGenerate = "generate"
	TaskRelay    = "relay"
	TaskPurge    = "purge"
)

type AlertDispatcher interface {
	DispatchDueAlerts(ctx context.Context) (alerting.DispatchReport, error)
	PurgeTerminalAlerts(ctx context.Context, retention time.Duration) (int64, error)
}

type OccurrenceGenerator interface {
	GeneratePendingOccurrences(ctx context.Context) (*commands.GenerationSummary, error)
}

type OutboxRelay interface {
	RelayOnce(ctx context.Context) (calendarsync.RelayReport, error)
}

func BookingTasks(cfg config.Config, d AlertDispatcher, g OccurrenceGenerator, relay OutboxRelay) []Task {
	return []Task{
		{
			Name:     TaskDispatch,
			Interval: cfg.Alert.DispatchInterval,
			Run: func(ctx context.Context) error {
				_, err := d.DispatchDueAlerts(ctx)
				if errs.Is(err, alerting.ErrCycleInProgress) {
					return nil
				}
				return err
			},
		},
		{
			Name:     TaskGenerate,
			Interval: cfg.Recurrence.GenerationInterval,
			Run: func(ctx context.Context) error {
				_, err := g.GeneratePendingOccurrences(ctx)
				return err
			},
		},
		{
			Name:     TaskRelay,
			Interval: cfg.AMQP.RelayInterval,
			Run: func(ctx context.Context) error {
				_, err := relay.RelayOnce(ctx)
				return err
			},
		},
		{
			Name:     TaskPurge,
			Interval: cfg.Alert.PurgeInterval,
			Run: func(ctx context.Context) error {
				_, err := d.PurgeTerminalAlerts(ctx, cfg.Alert.Retention)
				return err
			},
		},
	}
}
