package jobs

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// AvailabilitySweepJob periodically resets agents stuck in on_delivery.
// An agent whose connection died without a clean disconnect keeps its last
// published availability; the sweep moves such agents back to available once
// their location row goes stale.
type AvailabilitySweepJob struct {
	handler    commands.SweepStaleAvailabilityCommandHandler
	staleAfter time.Duration
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewAvailabilitySweepJob creates a job that sweeps stale availability every
// minute. staleAfter is how old a location row must be before its agent is
// considered stale.
func NewAvailabilitySweepJob(
	handler commands.SweepStaleAvailabilityCommandHandler,
	staleAfter time.Duration,
	logger *slog.Logger,
) *AvailabilitySweepJob {
	return &AvailabilitySweepJob{
		handler:    handler,
		staleAfter: staleAfter,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "availability_sweep_job"),
	}
}

// Start begins the sweep job, running at the top of every minute.
func (j *AvailabilitySweepJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewSweepStaleAvailabilityCommand(j.staleAfter)
		if err != nil {
			j.logger.ErrorContext(ctx, "Availability sweep misconfigured", "error", err)
			return
		}

		reset, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Availability sweep failed", "error", err)
			return
		}

		if reset > 0 {
			j.logger.InfoContext(ctx, "Reset stale on_delivery agents", "count", reset)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Availability sweep job started (running every minute)")
	return nil
}

// Stop stops the sweep job.
func (j *AvailabilitySweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Availability sweep job stopped")
}
