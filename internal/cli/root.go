// Package cli implements bookingctl, the operator command line for the
// booking engine's maintenance jobs.
package cli

import (
	"context"
	"time"

	"facility-booking/internal/domain/recurrence"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/usecase/commands"
	"facility-booking/internal/usecase/queries"
	"facility-booking/internal/worker"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type RecurrenceRunner interface {
	PreviewRecurrence(ctx context.Context, p recurrence.Params) ([]commands.PreviewItem, error)
	GenerateOccurrences(ctx context.Context, configID uuid.UUID, limit recurrence.Date) (*commands.GenerationResult, error)
	GeneratePendingOccurrences(ctx context.Context) (*commands.GenerationSummary, error)
}

// Deps is what the commands run against. Opening it usually means
// connecting to the database, so it happens after flag parsing.
type Deps struct {
	Queries     queries.BookingQueries
	Recurrences RecurrenceRunner
	Alerts      worker.AlertDispatcher
	Relay       worker.OutboxRelay
	Retention   time.Duration
}

type Opener func(ctx context.Context) (*Deps, func(), error)

type app struct {
	open       Opener
	outputJSON bool
}

func NewRootCmd(open Opener) *cobra.Command {
	a := &app{open: open}

	root := &cobra.Command{
		Use:          "bookingctl",
		Short:        "Maintenance commands for the facility booking engine",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVar(&a.outputJSON, "json", false, "Output JSON")

	root.AddCommand(a.availabilityCmd())
	root.AddCommand(a.previewCmd())
	root.AddCommand(a.generateCmd())
	root.AddCommand(a.dispatchCmd())
	root.AddCommand(a.purgeAlertsCmd())
	root.AddCommand(a.relayCmd())
	return root
}

// run opens the dependencies for the duration of fn.
func (a *app) run(cmd *cobra.Command, fn func(ctx context.Context, d *Deps) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	d, closeFn, err := a.open(ctx)
	if err != nil {
		return errs.Wrap(err, "failed to open booking engine")
	}
	defer closeFn()
	return fn(ctx, d)
}
