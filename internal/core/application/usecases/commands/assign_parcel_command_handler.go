package commands

import (
	"context"

	"dispatch/internal/core/domain/model/activity"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/pkg/errs"
)

// AssignParcelResult describes a completed assignment. Carries the agent's
// display fields so callers can answer without a follow-up lookup.
type AssignParcelResult struct {
	ParcelID         kernel.UUID
	AgentID          kernel.UUID
	AgentName        string
	AgentPhone       string
	AgentVehicleType string
	Status           string
}

// AssignParcelCommandHandler binds a parcel to an agent.
// The assignment row, the parcel's status change and the activity record are
// written in one transaction, so a conflicting parcel state leaves nothing
// behind.
//
// Example:
//
//	handler := NewAssignParcelCommandHandler(uowFactory)
//	cmd, _ := NewAssignParcelCommand(parcelID, agentID, adminID, kernel.RoleAdmin)
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    log.Println("Parcel or agent does not exist")
//	case errors.Is(err, errs.ErrConflict):
//	    log.Println("Parcel is past the assignable stage")
//	case err != nil:
//	    log.Printf("Assignment failed: %v", err)
//	default:
//	    log.Printf("Assigned to %s (%s)", result.AgentName, result.AgentVehicleType)
//	}
type AssignParcelCommandHandler struct {
	uowFactory AssignUoWFactory
}

// NewAssignParcelCommandHandler creates a handler for parcel assignment.
func NewAssignParcelCommandHandler(uowFactory AssignUoWFactory) AssignParcelCommandHandler {
	return AssignParcelCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the assignment command.
// Rejects non-admin actors, verifies the agent exists, moves the parcel to
// assigned, upserts the assignment row and appends an activity record.
// Reassigning an already assigned parcel overwrites the previous agent.
func (h AssignParcelCommandHandler) Handle(
	ctx context.Context,
	command AssignParcelCommand,
) (AssignParcelResult, error) {
	if err := command.Validate(); err != nil {
		return AssignParcelResult{}, err
	}

	if command.ActorRole() != kernel.RoleAdmin {
		return AssignParcelResult{}, errs.NewPermissionDeniedError("only admins may assign parcels")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignParcelResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	agentRepo := uow.AgentRepository()
	parcelRepo := uow.ParcelRepository()
	assignmentRepo := uow.AssignmentRepository()
	activityRepo := uow.ActivityRepository()

	assignee, err := agentRepo.Get(ctx, command.AgentID())
	if err != nil {
		return AssignParcelResult{}, err
	}

	target, err := parcelRepo.Get(ctx, command.ParcelID())
	if err != nil {
		return AssignParcelResult{}, err
	}

	if err = target.MarkAssigned(); err != nil {
		return AssignParcelResult{}, err
	}

	binding, err := assignment.NewAssignment(command.ParcelID(), command.AgentID(), command.ActorID())
	if err != nil {
		return AssignParcelResult{}, err
	}

	if err = assignmentRepo.Upsert(ctx, binding); err != nil {
		return AssignParcelResult{}, err
	}

	if err = parcelRepo.Update(ctx, target); err != nil {
		return AssignParcelResult{}, err
	}

	record, err := activity.NewActivity(
		command.ParcelID(),
		parcel.StatusAssigned.String(),
		command.ActorID(),
		command.ActorRole(),
	)
	if err != nil {
		return AssignParcelResult{}, err
	}

	if err = activityRepo.Add(ctx, record); err != nil {
		return AssignParcelResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AssignParcelResult{}, err
	}

	return AssignParcelResult{
		ParcelID:         target.ID(),
		AgentID:          assignee.ID(),
		AgentName:        assignee.Name(),
		AgentPhone:       assignee.Phone(),
		AgentVehicleType: assignee.VehicleType(),
		Status:           target.Status().String(),
	}, nil
}
