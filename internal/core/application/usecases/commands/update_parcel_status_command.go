package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateParcelStatusCommandIsNotConstructed = errors.New(
	"UpdateParcelStatusCommand must be created via NewUpdateParcelStatusCommand constructor",
)

// UpdateParcelStatusCommand represents a request to move a parcel to a new
// lifecycle status. Whether the move is allowed depends on the actor's role
// and the parcel's current status; that decision belongs to the parcel
// aggregate, the command only carries a well-formed request.
//
// Example:
//
//	cmd, err := NewUpdateParcelStatusCommand(parcelID, agentID, kernel.RoleAgent, parcel.StatusPickedUp)
//	if err != nil {
//	    return fmt.Errorf("invalid status request: %w", err)
//	}
//
//	handler := NewUpdateParcelStatusCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to update status: %w", err)
//	}
type UpdateParcelStatusCommand struct { //nolint:recvcheck //using for validation
	parcelID  kernel.UUID
	actorID   kernel.UUID
	actorRole kernel.Role
	requested parcel.Status

	guard guard.ConstructorGuard
}

// NewUpdateParcelStatusCommand creates a command to change a parcel's status.
// Validates identifiers, the role and that the requested status is a known
// lifecycle status.
func NewUpdateParcelStatusCommand(
	parcelID, actorID kernel.UUID,
	actorRole kernel.Role,
	requested parcel.Status,
) (UpdateParcelStatusCommand, error) {
	cmd := UpdateParcelStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setActorID(actorID),
		cmd.setActorRole(actorRole),
		cmd.setRequested(requested),
	); err != nil {
		return UpdateParcelStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateParcelStatusCommandIsNotConstructed if validation fails.
func (c UpdateParcelStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateParcelStatusCommandIsNotConstructed)
}

// ParcelID returns the parcel whose status is changing.
func (c UpdateParcelStatusCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// ActorID returns the identity requesting the change.
func (c UpdateParcelStatusCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the role of the requesting identity.
func (c UpdateParcelStatusCommand) ActorRole() kernel.Role {
	return c.actorRole
}

// Requested returns the target status.
func (c UpdateParcelStatusCommand) Requested() parcel.Status {
	return c.requested
}

func (c *UpdateParcelStatusCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("parcelID", err)
	}

	c.parcelID = parcelID
	return nil
}

func (c *UpdateParcelStatusCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("actorID", err)
	}

	c.actorID = actorID
	return nil
}

func (c *UpdateParcelStatusCommand) setActorRole(actorRole kernel.Role) error {
	if err := actorRole.Validate(); err != nil {
		return err
	}

	c.actorRole = actorRole
	return nil
}

func (c *UpdateParcelStatusCommand) setRequested(requested parcel.Status) error {
	if err := requested.Validate(); err != nil {
		return err
	}

	c.requested = requested
	return nil
}
