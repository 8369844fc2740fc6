package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrReportLocationCommandIsNotConstructed = errors.New(
	"ReportLocationCommand must be created via NewReportLocationCommand constructor",
)

// ReportLocationCommand represents one position report from a connected
// agent. Coordinates are validated at construction, so a command that exists
// always carries a well-formed point.
//
// Example:
//
//	cmd, err := NewReportLocationCommand(agentID, 52.52, 13.405)
//	if err != nil {
//	    return fmt.Errorf("invalid coordinates: %w", err)
//	}
//
//	handler := NewReportLocationCommandHandler(uowFactory, hub)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to report location: %w", err)
//	}
type ReportLocationCommand struct { //nolint:recvcheck //using for validation
	agentID      kernel.UUID
	point        kernel.GeoPoint
	availability *agent.Availability

	guard guard.ConstructorGuard
}

// NewReportLocationCommand creates a command carrying an agent's position.
// Latitude must be within [-90, 90] and longitude within [-180, 180];
// out-of-range values are rejected per coordinate.
func NewReportLocationCommand(agentID kernel.UUID, latitude, longitude float64) (ReportLocationCommand, error) {
	cmd := ReportLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	point, err := kernel.NewGeoPoint(latitude, longitude)
	if err != nil {
		return ReportLocationCommand{}, err
	}

	if err = cmd.setAgentID(agentID); err != nil {
		return ReportLocationCommand{}, err
	}

	cmd.point = point
	return cmd, nil
}

// NewReportLocationCommandWithAvailability creates a position report that also
// pins the agent's published availability, overriding the storage layer's
// first-report and repeat-report defaults.
func NewReportLocationCommandWithAvailability(
	agentID kernel.UUID,
	latitude, longitude float64,
	availability agent.Availability,
) (ReportLocationCommand, error) {
	cmd, err := NewReportLocationCommand(agentID, latitude, longitude)
	if err != nil {
		return ReportLocationCommand{}, err
	}

	if err = availability.Validate(); err != nil {
		return ReportLocationCommand{}, errs.NewValueIsInvalidErrorWithCause("availability", err)
	}

	cmd.availability = &availability
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrReportLocationCommandIsNotConstructed if validation fails.
func (c ReportLocationCommand) Validate() error {
	return c.guard.Validate(ErrReportLocationCommandIsNotConstructed)
}

// AgentID returns the reporting agent.
func (c ReportLocationCommand) AgentID() kernel.UUID {
	return c.agentID
}

// Point returns the reported position.
func (c ReportLocationCommand) Point() kernel.GeoPoint {
	return c.point
}

// Availability returns the explicitly requested availability, or nil when the
// report leaves the published state to the storage defaults.
func (c ReportLocationCommand) Availability() *agent.Availability {
	return c.availability
}

func (c *ReportLocationCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("agentID", err)
	}

	c.agentID = agentID
	return nil
}
