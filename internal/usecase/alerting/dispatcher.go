package alerting

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"facility-booking/internal/domain/alert"
	"facility-booking/internal/domain/reservation"
	"facility-booking/internal/infra"
	"facility-booking/internal/pkg/clock"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type DispatchConfig struct {
	MaxAttempts int
	SendTimeout time.Duration
	BatchSize   int
	Concurrency int
	Location    *time.Location
}

const defaultSendTimeout = 10 * time.Second

type DispatchReport struct {
	Sent    int `json:"sent"`
	Retried int `json:"retried"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

type outcome int

const (
	outcomeSkipped outcome = iota
	outcomeSent
	outcomeRetried
	outcomeFailed
)

func (r *DispatchReport) add(o outcome) {
	switch o {
	case outcomeSent:
		r.Sent++
	case outcomeRetried:
		r.Retried++
	case outcomeFailed:
		r.Failed++
	default:
		r.Skipped++
	}
}

// Dispatcher delivers due alerts. One cycle runs at a time per Dispatcher.
type Dispatcher struct {
	uow     shared.UnitOfWork
	sender  shared.Sender
	clock   clock.Clock
	cfg     DispatchConfig
	running atomic.Bool
}

func NewDispatcher(uow shared.UnitOfWork, sender shared.Sender, clk clock.Clock, cfg DispatchConfig) *Dispatcher {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = defaultSendTimeout
	}
	return &Dispatcher{uow: uow, sender: sender, clock: clk, cfg: cfg}
}

// DispatchDueAlerts runs one cycle. It returns ErrCycleInProgress without
// doing anything when another cycle is still running.
func (d *Dispatcher) DispatchDueAlerts(ctx context.Context) (DispatchReport, error) {
	if !d.running.CompareAndSwap(false, true) {
		return DispatchReport{}, ErrCycleInProgress
	}
	defer d.running.Store(false)

	now := d.clock.Now()
	var due []*alert.Alert
	err := d.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		due, err = tx.Alerts().FindDue(ctx, now, d.cfg.BatchSize)
		return err
	})
	if err != nil {
		return DispatchReport{}, errs.Mark(errs.Wrap(err, "failed to list due alerts"), errs.ErrDatabaseOperationFailed)
	}

	var (
		mu     sync.Mutex
		report DispatchReport
		g      errgroup.Group
	)
	g.SetLimit(d.cfg.Concurrency)
	for _, a := range due {
		id := a.ID()
		g.Go(func() error {
			o := d.deliver(ctx, id)
			mu.Lock()
			report.add(o)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if len(due) > 0 {
		slog.Info("dispatch cycle finished",
			"due", len(due),
			"sent", report.Sent,
			"retried", report.Retried,
			"failed", report.Failed,
			"skipped", report.Skipped)
	}
	return report, nil
}

// deliver runs one attempt in three steps: claim the alert in a short
// transaction, send with no transaction open, then record the result. Row
// locks are never held across a send, so lifecycle transitions cancelling
// the alert do not wait on a slow channel.
func (d *Dispatcher) deliver(ctx context.Context, id uuid.UUID) outcome {
	msg, claimed, err := d.claim(ctx, id)
	if err != nil {
		slog.Error("failed to claim alert", "alert_id", id, "error", err)
		return outcomeSkipped
	}
	if !claimed {
		return outcomeSkipped
	}

	sendErr := d.send(ctx, msg)

	result, err := d.finish(ctx, id, sendErr)
	if err != nil {
		// The claim lapses and the alert is retried by a later cycle.
		slog.Error("failed to record alert delivery", "alert_id", id, "sent", sendErr == nil, "error", err)
		return outcomeSkipped
	}
	return result
}

// claim re-checks the alert under its row lock, so an alert cancelled after
// selection is never sent. Rows locked by another transaction are skipped.
func (d *Dispatcher) claim(ctx context.Context, id uuid.UUID) (shared.Message, bool, error) {
	var (
		msg     shared.Message
		claimed bool
	)
	err := d.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		claimed = false

		a, err := tx.Alerts().ClaimForSend(ctx, id)
		if infra.IsKind(err, infra.KindNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		now := d.clock.Now()
		if !a.IsDue(now) {
			return nil
		}

		res, err := tx.Reservations().FindByID(ctx, a.ReservationID())
		if err != nil {
			return err
		}
		if err := a.Claim(now, now.Add(d.claimTTL())); err != nil {
			return err
		}
		if err := tx.Alerts().Update(ctx, a); err != nil {
			return err
		}
		msg = d.compose(a, res)
		claimed = true
		return nil
	})
	if err != nil {
		return shared.Message{}, false, err
	}
	return msg, claimed, nil
}

// claimTTL outlives one bounded send plus the write that records it.
func (d *Dispatcher) claimTTL() time.Duration {
	return 2 * d.cfg.SendTimeout
}

func (d *Dispatcher) finish(ctx context.Context, id uuid.UUID, sendErr error) (outcome, error) {
	result := outcomeSkipped
	err := d.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result = outcomeSkipped

		a, err := tx.Alerts().LockForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if a.State().IsTerminal() {
			slog.Info("alert left the active states while in flight",
				"alert_id", a.ID(),
				"state", a.State(),
				"delivered", sendErr == nil)
			if sendErr == nil {
				result = outcomeSent
			}
			return nil
		}

		now := d.clock.Now()
		if sendErr == nil {
			if err := a.MarkSent(now); err != nil {
				return err
			}
			result = outcomeSent
			return tx.Alerts().Update(ctx, a)
		}

		exhausted, err := a.RecordFailure(now, sendErr.Error(), d.cfg.MaxAttempts)
		if err != nil {
			return err
		}
		if exhausted {
			result = outcomeFailed
			slog.Error("alert delivery exhausted",
				"alert_id", a.ID(),
				"reservation_id", a.ReservationID(),
				"channel", a.Channel(),
				"attempts", a.AttemptCount(),
				"error", errs.Mark(sendErr, errs.ErrPermanentFailure))
		} else {
			result = outcomeRetried
			slog.Warn("alert delivery failed, will retry",
				"alert_id", a.ID(),
				"channel", a.Channel(),
				"attempt", a.AttemptCount(),
				"error", sendErr)
		}
		return tx.Alerts().Update(ctx, a)
	})
	if err != nil {
		return outcomeSkipped, err
	}
	return result, nil
}

// send bounds a single attempt by SendTimeout even when the transport
// ignores its context.
func (d *Dispatcher) send(ctx context.Context, msg shared.Message) error {
	sendCtx, cancel := context.WithTimeout(ctx, d.cfg.SendTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- d.sender.Send(sendCtx, msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return errs.Mark(err, errs.ErrTransientSend)
		}
		return nil
	case <-sendCtx.Done():
		return errs.Mark(errs.Wrap(sendCtx.Err(), "send timed out"), errs.ErrTransientSend)
	}
}

func (d *Dispatcher) compose(a *alert.Alert, res *reservation.Reservation) shared.Message {
	slot := res.TimeSlot()
	start := slot.Start().In(d.cfg.Location)
	end := slot.End().In(d.cfg.Location)

	body := fmt.Sprintf("Reservation %s on resource %s, %s - %s (%s).",
		res.ID(), res.ResourceID(),
		start.Format("2006-01-02 15:04"), end.Format("15:04"),
		res.Status())
	if res.Reason() != "" {
		body += " Reason: " + res.Reason()
	}

	return shared.Message{
		AlertID:       a.ID(),
		ReservationID: a.ReservationID(),
		Type:          a.Type(),
		Channel:       a.Channel(),
		Recipient:     a.Recipient(),
		Subject:       a.Type().Describe(),
		Body:          body,
	}
}

// PurgeTerminalAlerts deletes SENT, FAILED and CANCELLED alerts last touched
// before now - retention.
func (d *Dispatcher) PurgeTerminalAlerts(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := d.clock.Now().Add(-retention)
	var purged int64
	err := d.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		purged, err = tx.Alerts().DeleteTerminalBefore(ctx, cutoff)
		return err
	})
	if err != nil {
		return 0, errs.Mark(errs.Wrap(err, "failed to purge alerts"), errs.ErrDatabaseOperationFailed)
	}
	slog.Info("terminal alerts purged", "count", purged, "cutoff", cutoff)
	return purged, nil
}
