package components

import (
	"context"
	"log/slog"

	"facility-booking/internal/pkg/config"
	"facility-booking/internal/pkg/tracing"
	"facility-booking/internal/usecase/alerting"
	"facility-booking/internal/usecase/calendarsync"
	"facility-booking/internal/usecase/commands"
	"facility-booking/internal/usecase/shared"
	"facility-booking/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(NewRunner),
	fx.Invoke(startWorker),
)

func NewRunner(
	cfg config.Config,
	lease shared.Lease,
	tracer *tracing.Tracer,
	dispatcher *alerting.Dispatcher,
	recurrences *commands.RecurrenceService,
	relay *calendarsync.Relay,
) *worker.Runner {
	tasks := worker.BookingTasks(cfg, dispatcher, recurrences, relay)
	return worker.NewRunner(lease, cfg.Worker.LeaseTTL, tracer, tasks...)
}

func startWorker(lc fx.Lifecycle, cfg config.Config, runner *worker.Runner, logger *slog.Logger) {
	if !cfg.Worker.Enabled {
		logger.Info("background worker disabled")
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			runner.Start(context.Background())
			return nil
		},
		OnStop: runner.Stop,
	})
}
