package commands

import (
	"context"
	"time"
)

// SweepStaleAvailabilityCommandHandler resets agents stuck in on_delivery.
// Runs from the background job scheduler; returns how many agents were
// moved back to available so the job can log it.
type SweepStaleAvailabilityCommandHandler struct {
	uowFactory SweepUoWFactory
}

// NewSweepStaleAvailabilityCommandHandler creates a handler for the
// stale availability sweep.
func NewSweepStaleAvailabilityCommandHandler(uowFactory SweepUoWFactory) SweepStaleAvailabilityCommandHandler {
	return SweepStaleAvailabilityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the sweep command.
// Moves every on_delivery agent whose location row is older than the
// cutoff back to available, in one transaction.
func (h SweepStaleAvailabilityCommandHandler) Handle(
	ctx context.Context,
	command SweepStaleAvailabilityCommand,
) (int64, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cutoff := time.Now().UTC().Add(-command.StaleAfter())

	reset, err := uow.AgentLocationRepository().ResetStaleOnDelivery(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return reset, nil
}
