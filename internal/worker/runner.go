// Package worker runs the periodic booking tasks: alert dispatch, occurrence
// generation, outbox relay and alert housekeeping.
package worker

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/pkg/tracing"
	"facility-booking/internal/usecase/shared"
)

type Task struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

type job struct {
	Task
	running atomic.Bool
}

// Runner drives each task from its own ticker. A tick that fires while the
// previous run of the same task is still going is skipped, and a tick whose
// lease is held by another instance is skipped too.
type Runner struct {
	jobs     []*job
	lease    shared.Lease
	leaseTTL time.Duration
	tracer   *tracing.Tracer

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

func NewRunner(lease shared.Lease, leaseTTL time.Duration, tracer *tracing.Tracer, tasks ...Task) *Runner {
	jobs := make([]*job, 0, len(tasks))
	for _, t := range tasks {
		if t.Interval <= 0 {
			slog.Warn("periodic task disabled, interval not positive", "task", t.Name)
			continue
		}
		jobs = append(jobs, &job{Task: t})
	}
	return &Runner{jobs: jobs, lease: lease, leaseTTL: leaseTTL, tracer: tracer}
}

func (r *Runner) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)
	for _, j := range r.jobs {
		r.wg.Add(1)
		go r.loop(ctx, j)
	}
	slog.Info("worker started", "tasks", len(r.jobs))
}

// Stop cancels in-flight runs and waits for them, bounded by ctx.
func (r *Runner) Stop(ctx context.Context) error {
	if r.cancel == nil {
		return nil
	}
	r.cancel()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		slog.Info("worker stopped")
		return nil
	case <-ctx.Done():
		return errs.Wrap(ctx.Err(), "worker did not stop in time")
	}
}

func (r *Runner) loop(ctx context.Context, j *job) {
	defer r.wg.Done()

	ticker := time.NewTicker(j.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.tick(ctx, j)
		}
	}
}

// tick starts one run in the background and reports whether it did.
func (r *Runner) tick(ctx context.Context, j *job) bool {
	if !j.running.CompareAndSwap(false, true) {
		slog.Debug("previous run still in progress, tick skipped", "task", j.Name)
		return false
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer j.running.Store(false)
		r.run(ctx, j)
	}()
	return true
}

func (r *Runner) run(ctx context.Context, j *job) {
	release, acquired, err := r.lease.TryAcquire(ctx, j.Name, r.leaseTTL)
	if err != nil {
		slog.Error("failed to take task lease", "task", j.Name, "error", err)
		return
	}
	if !acquired {
		slog.Debug("task lease held elsewhere, tick skipped", "task", j.Name)
		return
	}
	defer func() {
		// release even when ctx was cancelled mid-run
		if err := release(context.WithoutCancel(ctx)); err != nil {
			slog.Warn("failed to release task lease", "task", j.Name, "error", err)
		}
	}()

	started := time.Now()
	err = r.tracer.Segment(ctx, "worker."+j.Name, j.Run)
	if err != nil {
		slog.Error("periodic task failed", "task", j.Name, "duration", time.Since(started), "error", err)
		return
	}
	slog.Debug("periodic task finished", "task", j.Name, "duration", time.Since(started))
}
