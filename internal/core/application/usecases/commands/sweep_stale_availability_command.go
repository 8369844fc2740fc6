package commands

import (
	"errors"
	"time"

	"dispatch/internal/pkg/guard"
)

var (
	ErrSweepStaleAvailabilityCommandIsNotConstructed = errors.New(
		"SweepStaleAvailabilityCommand must be created via NewSweepStaleAvailabilityCommand constructor",
	)
	ErrStaleAfterIsInvalid = errors.New("staleAfter must be greater than 0")
)

// SweepStaleAvailabilityCommand triggers a cleanup of agents stuck in the
// on_delivery availability. An agent whose connection died without a clean
// disconnect keeps its last published availability; the sweep moves agents
// whose location row has not been touched for staleAfter back to available.
//
// Example:
//
//	cmd, err := NewSweepStaleAvailabilityCommand(10 * time.Minute)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewSweepStaleAvailabilityCommandHandler(uowFactory)
//	reset, err := handler.Handle(ctx, cmd)
type SweepStaleAvailabilityCommand struct { //nolint:recvcheck //using for validation
	staleAfter time.Duration

	guard guard.ConstructorGuard
}

// NewSweepStaleAvailabilityCommand creates a command to reset stale
// availabilities. staleAfter must be positive.
func NewSweepStaleAvailabilityCommand(staleAfter time.Duration) (SweepStaleAvailabilityCommand, error) {
	cmd := SweepStaleAvailabilityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setStaleAfter(staleAfter); err != nil {
		return SweepStaleAvailabilityCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSweepStaleAvailabilityCommandIsNotConstructed if validation fails.
func (c SweepStaleAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSweepStaleAvailabilityCommandIsNotConstructed)
}

// StaleAfter returns how long a location row may go untouched before its
// on_delivery availability is considered stale.
func (c SweepStaleAvailabilityCommand) StaleAfter() time.Duration {
	return c.staleAfter
}

func (c *SweepStaleAvailabilityCommand) setStaleAfter(staleAfter time.Duration) error {
	if staleAfter <= 0 {
		return ErrStaleAfterIsInvalid
	}

	c.staleAfter = staleAfter
	return nil
}
