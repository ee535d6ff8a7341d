package calendarsync

import (
	"context"
	"log/slog"

	"facility-booking/internal/pkg/clock"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/usecase/shared"
)

type RelayReport struct {
	Published int `json:"published"`
	Pending   int `json:"pending"`
}

// Relay moves committed outbox rows to the event publisher. Delivery is at
// least once: a row is marked published only after Publish returns.
type Relay struct {
	uow       shared.UnitOfWork
	publisher shared.EventPublisher
	clock     clock.Clock
	batchSize int
}

func NewRelay(uow shared.UnitOfWork, publisher shared.EventPublisher, clk clock.Clock, batchSize int) *Relay {
	if batchSize < 1 {
		batchSize = 100
	}
	return &Relay{uow: uow, publisher: publisher, clock: clk, batchSize: batchSize}
}

// RelayOnce publishes one batch. A publish failure stops the batch; rows
// published before it are still marked.
func (r *Relay) RelayOnce(ctx context.Context) (RelayReport, error) {
	var (
		report     RelayReport
		publishErr error
	)
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		report, publishErr = RelayReport{}, nil

		events, err := tx.Outbox().FetchUnpublished(ctx, r.batchSize)
		if err != nil {
			return errs.Wrap(err, "failed to fetch outbox events")
		}
		for i, ev := range events {
			if err := r.publisher.Publish(ctx, ev); err != nil {
				publishErr = errs.Mark(errs.Wrapf(err, "failed to publish %s", ev.ID), errs.ErrTransientSend)
				report.Pending = len(events) - i
				break
			}
			if err := tx.Outbox().MarkPublished(ctx, ev.ID, r.clock.Now()); err != nil {
				return errs.Wrap(err, "failed to mark outbox event published")
			}
			report.Published++
		}
		return nil
	})
	if err != nil {
		return RelayReport{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if report.Published > 0 {
		slog.Info("outbox relayed", "published", report.Published, "pending", report.Pending)
	}
	if publishErr != nil {
		slog.Warn("outbox relay interrupted", "error", publishErr)
		return report, publishErr
	}
	return report, nil
}
