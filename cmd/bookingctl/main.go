package main

import (
	"context"
	"log/slog"
	"os"

	"facility-booking/cmd/bootstrap"
	"facility-booking/internal/cli"
	"facility-booking/internal/pkg/config"
	"facility-booking/internal/usecase/alerting"
	"facility-booking/internal/usecase/calendarsync"
	"facility-booking/internal/usecase/commands"
	"facility-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

// open starts the core graph (config, database, usecases) without the HTTP
// server or the background worker.
func open(ctx context.Context) (*cli.Deps, func(), error) {
	var (
		cfg         config.Config
		q           queries.BookingQueries
		recurrences *commands.RecurrenceService
		dispatcher  *alerting.Dispatcher
		relay       *calendarsync.Relay
	)

	app := fx.New(
		bootstrap.CoreModule,
		fx.NopLogger,
		fx.Populate(&cfg, &q, &recurrences, &dispatcher, &relay),
	)
	if err := app.Start(ctx); err != nil {
		return nil, nil, err
	}

	closeFn := func() {
		if err := app.Stop(context.Background()); err != nil {
			slog.Error("failed to stop bookingctl", "error", err)
		}
	}
	return &cli.Deps{
		Queries:     q,
		Recurrences: recurrences,
		Alerts:      dispatcher,
		Relay:       relay,
		Retention:   cfg.Alert.Retention,
	}, closeFn, nil
}

func main() {
	if err := cli.NewRootCmd(open).Execute(); err != nil {
		os.Exit(1)
	}
}
