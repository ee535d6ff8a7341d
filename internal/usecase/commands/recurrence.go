package commands

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"facility-booking/internal/domain/recurrence"
	"facility-booking/internal/domain/reservation"
	"facility-booking/internal/pkg/clock"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var (
	ErrRecurrenceInactive  = errs.New("recurrence is inactive")
	ErrRecurrenceExhausted = errs.New("recurrence already produced its maximum occurrences")
)

type PreviewItem struct {
	Date         recurrence.Date
	Start        time.Time
	End          time.Time
	WillConflict bool
}

type SkippedOccurrence struct {
	Date   recurrence.Date
	Reason string
}

type GenerationResult struct {
	ConfigID    uuid.UUID
	Created     []*reservation.Reservation
	Skipped     []SkippedOccurrence
	Deactivated bool
}

type CreateRecurrenceResult struct {
	Config *recurrence.Config
	GenerationResult
}

type GenerationSummary struct {
	Configs     int                  `json:"configs"`
	Created     int                  `json:"created"`
	Skipped     int                  `json:"skipped"`
	Deactivated int                  `json:"deactivated"`
	Failed      map[uuid.UUID]string `json:"failed,omitempty"`
}

type DeleteRecurrenceResult struct {
	Cancelled int
}

type RecurrenceCommands interface {
	PreviewRecurrence(ctx context.Context, p recurrence.Params) ([]PreviewItem, error)
	CreateRecurrence(ctx context.Context, p recurrence.Params) (*CreateRecurrenceResult, error)
	GenerateOccurrences(ctx context.Context, configID uuid.UUID, limit recurrence.Date) (*GenerationResult, error)
	GeneratePendingOccurrences(ctx context.Context) (*GenerationSummary, error)
	ActivateRecurrence(ctx context.Context, id uuid.UUID) (*recurrence.Config, error)
	DeactivateRecurrence(ctx context.Context, id uuid.UUID) (*recurrence.Config, error)
	DeleteRecurrence(ctx context.Context, id uuid.UUID, cascade bool) (*DeleteRecurrenceResult, error)
}

type RecurrenceSettings struct {
	Location    *time.Location
	Horizon     time.Duration
	Concurrency int
}

type RecurrenceService struct {
	uow       shared.UnitOfWork
	clock     clock.Clock
	policy    reservation.DurationPolicy
	settings  RecurrenceSettings
	lifecycle lifecycle
}

func NewRecurrenceService(
	uow shared.UnitOfWork,
	clk clock.Clock,
	policy reservation.DurationPolicy,
	settings RecurrenceSettings,
	handlers []shared.EventHandler,
) *RecurrenceService {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	if settings.Concurrency < 1 {
		settings.Concurrency = 1
	}
	return &RecurrenceService{
		uow:       uow,
		clock:     clk,
		policy:    policy,
		settings:  settings,
		lifecycle: lifecycle{handlers: handlers},
	}
}

func (s *RecurrenceService) today() recurrence.Date {
	return recurrence.DateOf(s.clock.Now().In(s.settings.Location))
}

func (s *RecurrenceService) horizon() recurrence.Date {
	return recurrence.DateOf(s.clock.Now().Add(s.settings.Horizon).In(s.settings.Location))
}

// newConfig validates params, including the time window against the booking
// duration bounds, before anything is built.
func (s *RecurrenceService) newConfig(p recurrence.Params) (*recurrence.Config, error) {
	cfg, err := recurrence.NewConfig(p, s.clock.Now())
	if err != nil {
		return nil, validationErr(err)
	}
	start, end := cfg.Window(cfg.Rule().StartDate, s.settings.Location)
	slot, err := reservation.NewTimeSlot(start, end)
	if err != nil {
		return nil, validationErr(err)
	}
	if err := s.policy.Validate(slot); err != nil {
		return nil, validationErr(err)
	}
	return cfg, nil
}

// PreviewRecurrence expands params and flags dates blocked by an APPROVED
// reservation. Nothing is persisted.
func (s *RecurrenceService) PreviewRecurrence(ctx context.Context, p recurrence.Params) ([]PreviewItem, error) {
	cfg, err := s.newConfig(p)
	if err != nil {
		return nil, err
	}

	dates := recurrence.Expand(cfg.Rule(), s.today(), recurrence.Date{})
	items := make([]PreviewItem, 0, len(dates))
	err = s.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		for _, d := range dates {
			start, end := cfg.Window(d, s.settings.Location)
			slot, err := reservation.NewTimeSlot(start, end)
			if err != nil {
				return validationErr(err)
			}
			approved, err := tx.Reservations().FindOverlapping(ctx, cfg.ResourceID(), slot, reservation.StatusApproved)
			if err != nil {
				return repoErr(err, "failed to check conflicts")
			}
			items = append(items, PreviewItem{
				Date:         d,
				Start:        start,
				End:          end,
				WillConflict: len(reservation.Conflicts(slot, approved, uuid.Nil)) > 0,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// CreateRecurrence persists the config and generates its occurrences up to
// the generation horizon in the same transaction.
func (s *RecurrenceService) CreateRecurrence(ctx context.Context, p recurrence.Params) (*CreateRecurrenceResult, error) {
	cfg, err := s.newConfig(p)
	if err != nil {
		return nil, err
	}

	var (
		gen     *GenerationResult
		created *recurrence.Config
	)
	err = s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// Work on a copy so a retried transaction starts from a clean counter.
		attempt := *cfg
		if err := tx.Recurrences().Create(ctx, &attempt); err != nil {
			return repoErr(err, "failed to create recurrence")
		}
		if err := tx.Locks().LockRecurrence(ctx, attempt.ID()); err != nil {
			return repoErr(err, "failed to lock recurrence")
		}
		if err := tx.Locks().LockResource(ctx, attempt.ResourceID()); err != nil {
			return repoErr(err, "failed to lock resource")
		}
		var err error
		gen, err = s.generateLocked(ctx, tx, &attempt, s.horizon())
		created = &attempt
		return err
	})
	if err != nil {
		return nil, err
	}
	cfg = created

	slog.Info("recurrence created",
		"recurrence_id", cfg.ID(),
		"pattern", cfg.Pattern(),
		"created", len(gen.Created),
		"skipped", len(gen.Skipped))
	return &CreateRecurrenceResult{Config: cfg, GenerationResult: *gen}, nil
}

// GenerateOccurrences extends one config up to limit. Re-running it never
// duplicates a date already generated or skipped.
func (s *RecurrenceService) GenerateOccurrences(ctx context.Context, configID uuid.UUID, limit recurrence.Date) (*GenerationResult, error) {
	var gen *GenerationResult
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cfg, err := s.lockConfig(ctx, tx, configID)
		if err != nil {
			return err
		}
		if !cfg.Active() {
			return errs.Mark(ErrRecurrenceInactive, errs.ErrValidation)
		}
		if err := tx.Locks().LockResource(ctx, cfg.ResourceID()); err != nil {
			return repoErr(err, "failed to lock resource")
		}
		gen, err = s.generateLocked(ctx, tx, cfg, limit)
		return err
	})
	if err != nil {
		return nil, err
	}
	return gen, nil
}

// GeneratePendingOccurrences extends every active config up to the horizon.
// Each config runs in its own transaction; one failing config does not stop
// the others.
func (s *RecurrenceService) GeneratePendingOccurrences(ctx context.Context) (*GenerationSummary, error) {
	var active []*recurrence.Config
	err := s.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		active, err = tx.Recurrences().ListActive(ctx)
		return err
	})
	if err != nil {
		return nil, repoErr(err, "failed to list active recurrences")
	}

	limit := s.horizon()
	summary := &GenerationSummary{Configs: len(active), Failed: map[uuid.UUID]string{}}
	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(s.settings.Concurrency)
	for _, c := range active {
		id := c.ID()
		g.Go(func() error {
			gen, err := s.generateActive(ctx, id, limit)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				summary.Failed[id] = err.Error()
				slog.Error("occurrence generation failed", "recurrence_id", id, "error", err)
				return nil
			}
			summary.Created += len(gen.Created)
			summary.Skipped += len(gen.Skipped)
			if gen.Deactivated {
				summary.Deactivated++
			}
			return nil
		})
	}
	_ = g.Wait()

	slog.Info("pending occurrences generated",
		"configs", summary.Configs,
		"created", summary.Created,
		"skipped", summary.Skipped,
		"deactivated", summary.Deactivated,
		"failed", len(summary.Failed))
	return summary, nil
}

func (s *RecurrenceService) generateActive(ctx context.Context, id uuid.UUID, limit recurrence.Date) (*GenerationResult, error) {
	gen := &GenerationResult{ConfigID: id}
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cfg, err := s.lockConfig(ctx, tx, id)
		if err != nil {
			return err
		}
		if !cfg.Active() {
			return nil
		}
		if err := tx.Locks().LockResource(ctx, cfg.ResourceID()); err != nil {
			return repoErr(err, "failed to lock resource")
		}
		gen, err = s.generateLocked(ctx, tx, cfg, limit)
		return err
	})
	return gen, err
}

// generateLocked must run with both the recurrence and resource leases held.
func (s *RecurrenceService) generateLocked(ctx context.Context, tx shared.Tx, cfg *recurrence.Config, limit recurrence.Date) (*GenerationResult, error) {
	gen := &GenerationResult{ConfigID: cfg.ID()}
	now := s.clock.Now()
	today := s.today()

	ledger, err := tx.Recurrences().ListOccurrences(ctx, cfg.ID())
	if err != nil {
		return nil, repoErr(err, "failed to load occurrence ledger")
	}
	seen := make(map[recurrence.Date]struct{}, len(ledger))
	for _, o := range ledger {
		seen[o.Date] = struct{}{}
	}

	// Widen the cap by the ledger size so already-recorded dates do not
	// crowd out new candidates; creation still stops at Remaining().
	rule := cfg.Rule()
	rule.MaxOccurrences = cfg.Remaining() + len(ledger)

	configID := cfg.ID()
	for _, d := range recurrence.Expand(rule, today, limit) {
		if cfg.Exhausted() {
			break
		}
		if _, dup := seen[d]; dup {
			continue
		}

		res, reason, err := s.createOccurrence(ctx, tx, cfg, d, now, &configID)
		if err != nil {
			return nil, err
		}
		occ := recurrence.Occurrence{ConfigID: cfg.ID(), Date: d, CreatedAt: now}
		if res == nil {
			occ.SkipReason = reason
			gen.Skipped = append(gen.Skipped, SkippedOccurrence{Date: d, Reason: reason})
		} else {
			id := res.ID()
			occ.ReservationID = &id
			gen.Created = append(gen.Created, res)
			if err := cfg.RecordGenerated(now); err != nil {
				return nil, err
			}
		}
		if err := tx.Recurrences().RecordOccurrence(ctx, occ); err != nil {
			return nil, repoErr(err, "failed to record occurrence")
		}
	}

	if cfg.Active() && (cfg.Exhausted() || cfg.Expired(today)) {
		cfg.Deactivate(now)
		gen.Deactivated = true
	}
	if err := tx.Recurrences().Update(ctx, cfg); err != nil {
		return nil, repoErr(err, "failed to update recurrence")
	}
	return gen, nil
}

// createOccurrence returns the created reservation, or nil and the reason the
// date was skipped. Only infrastructure failures are returned as errors.
func (s *RecurrenceService) createOccurrence(
	ctx context.Context,
	tx shared.Tx,
	cfg *recurrence.Config,
	d recurrence.Date,
	now time.Time,
	configID *uuid.UUID,
) (*reservation.Reservation, string, error) {
	start, end := cfg.Window(d, s.settings.Location)
	slot, err := reservation.NewTimeSlot(start, end)
	if err != nil {
		return nil, err.Error(), nil
	}

	approved, err := tx.Reservations().FindOverlapping(ctx, cfg.ResourceID(), slot, reservation.StatusApproved)
	if err != nil {
		return nil, "", repoErr(err, "failed to check conflicts")
	}
	if conflicts := reservation.Conflicts(slot, approved, uuid.Nil); len(conflicts) > 0 {
		return nil, fmt.Sprintf("conflicts with approved reservation %s", conflicts[0].ID()), nil
	}

	res, ev, err := reservation.NewReservation(now, s.policy, cfg.ResourceID(), cfg.UserID(), slot, configID)
	if err != nil {
		return nil, err.Error(), nil
	}
	if err := s.lifecycle.created(ctx, tx, res, ev); err != nil {
		return nil, "", err
	}
	return res, "", nil
}

func (s *RecurrenceService) ActivateRecurrence(ctx context.Context, id uuid.UUID) (*recurrence.Config, error) {
	return s.update(ctx, id, func(cfg *recurrence.Config, now time.Time) error {
		if cfg.Exhausted() {
			return errs.Mark(ErrRecurrenceExhausted, errs.ErrValidation)
		}
		cfg.Activate(now)
		return nil
	})
}

func (s *RecurrenceService) DeactivateRecurrence(ctx context.Context, id uuid.UUID) (*recurrence.Config, error) {
	return s.update(ctx, id, func(cfg *recurrence.Config, now time.Time) error {
		cfg.Deactivate(now)
		return nil
	})
}

func (s *RecurrenceService) update(ctx context.Context, id uuid.UUID, mutate func(cfg *recurrence.Config, now time.Time) error) (*recurrence.Config, error) {
	var cfg *recurrence.Config
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		cfg, err = s.lockConfig(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := mutate(cfg, s.clock.Now()); err != nil {
			return err
		}
		if err := tx.Recurrences().Update(ctx, cfg); err != nil {
			return repoErr(err, "failed to update recurrence")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slog.Info("recurrence updated", "recurrence_id", id, "active", cfg.Active())
	return cfg, nil
}

// DeleteRecurrence removes the config. With cascade it first cancels the
// occurrences that are still active and have not started.
func (s *RecurrenceService) DeleteRecurrence(ctx context.Context, id uuid.UUID, cascade bool) (*DeleteRecurrenceResult, error) {
	result := &DeleteRecurrenceResult{}
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result.Cancelled = 0
		cfg, err := s.lockConfig(ctx, tx, id)
		if err != nil {
			return err
		}

		if cascade {
			if err := tx.Locks().LockResource(ctx, cfg.ResourceID()); err != nil {
				return repoErr(err, "failed to lock resource")
			}
			occurrences, err := tx.Reservations().FindByRecurrence(ctx, id)
			if err != nil {
				return repoErr(err, "failed to load occurrences")
			}
			now := s.clock.Now()
			for _, res := range occurrences {
				if !res.IsActive() || res.HasStarted(now) {
					continue
				}
				ev, err := res.Cancel(now, "recurrence deleted")
				if err != nil {
					return transitionErr(err)
				}
				if err := s.lifecycle.transitioned(ctx, tx, res, ev); err != nil {
					return err
				}
				result.Cancelled++
			}
		}

		if err := tx.Recurrences().Delete(ctx, id); err != nil {
			return repoErr(err, "failed to delete recurrence")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("recurrence deleted", "recurrence_id", id, "cascade", cascade, "cancelled", result.Cancelled)
	return result, nil
}

func (s *RecurrenceService) lockConfig(ctx context.Context, tx shared.Tx, id uuid.UUID) (*recurrence.Config, error) {
	if err := tx.Locks().LockRecurrence(ctx, id); err != nil {
		return nil, repoErr(err, "failed to lock recurrence")
	}
	cfg, err := tx.Recurrences().FindByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, "recurrence not found")
	}
	return cfg, nil
}
