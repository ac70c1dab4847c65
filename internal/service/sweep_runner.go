package service

import (
	"context"
	"log/slog"
	"time"
)

// SweepRunner drives a SweepService on a fixed interval.
type SweepRunner struct {
	sweeper  SweepService
	interval time.Duration
	clock    Clock
	logger   *slog.Logger
	// afterSweep is a test hook called after every tick.
	afterSweep func()
}

func NewSweepRunner(sweeper SweepService, interval time.Duration, clock Clock, logger *slog.Logger) *SweepRunner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SweepRunner{
		sweeper:  sweeper,
		interval: interval,
		clock:    clockOrDefault(clock),
		logger:   logger,
	}
}

// Run sweeps once immediately and then on every tick until ctx is
// cancelled. It always returns ctx.Err().
func (r *SweepRunner) Run(ctx context.Context) error {
	r.logger.InfoContext(ctx, "sweeper started", "interval", r.interval.String())
	defer r.logger.InfoContext(ctx, "sweeper stopped")

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		r.tick(ctx)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (r *SweepRunner) tick(ctx context.Context) {
	defer func() {
		if r.afterSweep != nil {
			r.afterSweep()
		}
	}()
	if ctx.Err() != nil {
		return
	}
	res, err := r.sweeper.Sweep(ctx, r.clock())
	if err != nil {
		if ctx.Err() == nil {
			r.logger.ErrorContext(ctx, "sweep failed", "error", err)
		}
		return
	}
	if res.Changed() || len(res.Failures) > 0 {
		r.logger.InfoContext(ctx, "sweep applied",
			"escalated", res.Escalated,
			"warned", res.Warned,
			"failures", len(res.Failures),
		)
	}
}
