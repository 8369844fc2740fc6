package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/activity"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// UpdateParcelStatusCommandHandler moves a parcel through its lifecycle.
// The transition table on the parcel aggregate decides whether the actor's
// role may perform the move; the handler adds the ownership rule for agents
// and records every successful change in the activity log.
//
// Example:
//
//	handler := NewUpdateParcelStatusCommandHandler(uowFactory)
//	cmd, _ := NewUpdateParcelStatusCommand(parcelID, agentID, kernel.RoleAgent, parcel.StatusPickedUp)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrConflict):
//	    log.Println("Transition not allowed from the current status")
//	case errors.Is(err, errs.ErrPermissionDenied):
//	    log.Println("Agent does not hold this parcel")
//	case err != nil:
//	    log.Printf("Status update failed: %v", err)
//	}
type UpdateParcelStatusCommandHandler struct {
	uowFactory StatusUoWFactory
}

// NewUpdateParcelStatusCommandHandler creates a handler for parcel status updates.
func NewUpdateParcelStatusCommandHandler(uowFactory StatusUoWFactory) UpdateParcelStatusCommandHandler {
	return UpdateParcelStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status update command.
// Agents may only move parcels currently assigned to them; admins may move
// any parcel. The transition itself is validated by the aggregate against
// the role and current status, and a denied move changes nothing. On success
// an activity record named after the new status is appended in the same
// transaction.
func (h UpdateParcelStatusCommandHandler) Handle(ctx context.Context, command UpdateParcelStatusCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()

	target, err := parcelRepo.Get(ctx, command.ParcelID())
	if err != nil {
		return err
	}

	if command.ActorRole() == kernel.RoleAgent {
		binding, bindErr := uow.AssignmentRepository().GetByParcel(ctx, command.ParcelID())
		if errors.Is(bindErr, errs.ErrObjectNotFound) {
			return errs.NewPermissionDeniedError("parcel is not assigned to this agent")
		}
		if bindErr != nil {
			return bindErr
		}
		if !binding.AgentID().IsEqual(command.ActorID()) {
			return errs.NewPermissionDeniedError("parcel is not assigned to this agent")
		}
	}

	if err = target.TransitionTo(command.ActorRole(), command.Requested()); err != nil {
		return err
	}

	if err = parcelRepo.Update(ctx, target); err != nil {
		return err
	}

	record, err := activity.NewActivity(
		command.ParcelID(),
		command.Requested().String(),
		command.ActorID(),
		command.ActorRole(),
	)
	if err != nil {
		return err
	}

	if err = uow.ActivityRepository().Add(ctx, record); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
