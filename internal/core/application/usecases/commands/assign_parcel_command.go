package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrAssignParcelCommandIsNotConstructed = errors.New(
	"AssignParcelCommand must be created via NewAssignParcelCommand constructor",
)

// AssignParcelCommand represents a request to bind a parcel to a delivery
// agent. Assignment is an administrative action; the actor's role is part of
// the command so the handler can reject non-admin callers.
//
// Example:
//
//	cmd, err := NewAssignParcelCommand(parcelID, agentID, adminID, kernel.RoleAdmin)
//	if err != nil {
//	    return fmt.Errorf("invalid assignment request: %w", err)
//	}
//
//	handler := NewAssignParcelCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to assign parcel: %w", err)
//	}
type AssignParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID  kernel.UUID
	agentID   kernel.UUID
	actorID   kernel.UUID
	actorRole kernel.Role

	guard guard.ConstructorGuard
}

// NewAssignParcelCommand creates a command to assign a parcel to an agent.
// Validates that all identifiers are valid UUIDs and the role is known.
func NewAssignParcelCommand(
	parcelID, agentID, actorID kernel.UUID,
	actorRole kernel.Role,
) (AssignParcelCommand, error) {
	cmd := AssignParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setAgentID(agentID),
		cmd.setActorID(actorID),
		cmd.setActorRole(actorRole),
	); err != nil {
		return AssignParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignParcelCommandIsNotConstructed if validation fails.
func (c AssignParcelCommand) Validate() error {
	return c.guard.Validate(ErrAssignParcelCommandIsNotConstructed)
}

// ParcelID returns the parcel being assigned.
func (c AssignParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// AgentID returns the agent receiving the parcel.
func (c AssignParcelCommand) AgentID() kernel.UUID {
	return c.agentID
}

// ActorID returns the identity performing the assignment.
func (c AssignParcelCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the role of the performing identity.
func (c AssignParcelCommand) ActorRole() kernel.Role {
	return c.actorRole
}

func (c *AssignParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("parcelID", err)
	}

	c.parcelID = parcelID
	return nil
}

func (c *AssignParcelCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("agentID", err)
	}

	c.agentID = agentID
	return nil
}

func (c *AssignParcelCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("actorID", err)
	}

	c.actorID = actorID
	return nil
}

func (c *AssignParcelCommand) setActorRole(actorRole kernel.Role) error {
	if err := actorRole.Validate(); err != nil {
		return err
	}

	c.actorRole = actorRole
	return nil
}
