package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/ports"
	"dispatch/internal/core/realtime"
	"dispatch/internal/pkg/errs"
)

var ErrParcelNotAssigned = errors.New("parcel has no assigned agent yet")

// TrackParcelCommandHandler subscribes a customer connection to a parcel's
// location updates. Ownership is checked before anything is joined: a
// customer asking about someone else's parcel is denied and their connection
// never enters a group.
//
// Example:
//
//	handler := NewTrackParcelCommandHandler(uowFactory, hub)
//	cmd, _ := NewTrackParcelCommand(customerID, parcelID, conn)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrPermissionDenied):
//	    log.Println("Parcel belongs to another customer")
//	case errors.Is(err, ErrParcelNotAssigned):
//	    log.Println("No agent assigned yet, nothing to track")
//	case err != nil:
//	    log.Printf("Tracking failed: %v", err)
//	}
type TrackParcelCommandHandler struct {
	uowFactory TrackUoWFactory
	joiner     ports.GroupJoiner
}

// NewTrackParcelCommandHandler creates a handler for tracking subscriptions.
func NewTrackParcelCommandHandler(
	uowFactory TrackUoWFactory,
	joiner ports.GroupJoiner,
) TrackParcelCommandHandler {
	return TrackParcelCommandHandler{
		uowFactory: uowFactory,
		joiner:     joiner,
	}
}

// Handle processes the tracking request.
// Loads the parcel, verifies the requester owns it, requires an assignment,
// then joins the connection to the customer's group and confirms with a
// tracking started event. If the assigned agent is out delivering and has a
// known position, a location snapshot is pushed immediately so the customer
// does not wait for the agent's next report.
func (h TrackParcelCommandHandler) Handle(ctx context.Context, command TrackParcelCommand) error {
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

	target, err := uow.ParcelRepository().Get(ctx, command.ParcelID())
	if err != nil {
		return err
	}

	if !target.CustomerID().IsEqual(command.CustomerID()) {
		return errs.NewPermissionDeniedError("parcel belongs to another customer")
	}

	binding, err := uow.AssignmentRepository().GetByParcel(ctx, command.ParcelID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrParcelNotAssigned
	}
	if err != nil {
		return err
	}

	assignedAgent, err := uow.AgentRepository().Get(ctx, binding.AgentID())
	if err != nil {
		return err
	}

	lastLocation, err := uow.AgentLocationRepository().GetByAgent(ctx, binding.AgentID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.joiner.Join(realtime.CustomerGroup(command.CustomerID()), command.Conn())

	started := realtime.Event{
		Name: realtime.EventTrackingStarted,
		Data: realtime.TrackingStartedPayload{
			ParcelID: command.ParcelID().String(),
			AgentInfo: realtime.AgentInfoPayload{
				Name:        assignedAgent.Name(),
				Phone:       assignedAgent.Phone(),
				VehicleType: assignedAgent.VehicleType(),
			},
		},
	}
	if err = command.Conn().Send(started); err != nil {
		return err
	}

	if lastLocation == nil || lastLocation.Availability() != agent.OnDelivery {
		return nil
	}

	snapshot := realtime.Event{
		Name: realtime.EventParcelLocation,
		Data: realtime.ParcelLocationPayload{
			ParcelID: command.ParcelID().String(),
			AgentLocation: realtime.AgentLocationPayload{
				Latitude:  lastLocation.Point().Latitude(),
				Longitude: lastLocation.Point().Longitude(),
				Status:    lastLocation.Availability().String(),
				UpdatedAt: lastLocation.UpdatedAt(),
			},
		},
	}

	return command.Conn().Send(snapshot)
}
