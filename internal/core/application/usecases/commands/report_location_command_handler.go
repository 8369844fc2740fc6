package commands

import (
	"context"

	"dispatch/internal/core/ports"
	"dispatch/internal/core/realtime"
)

// ReportLocationCommandHandler persists an agent's position and fans it out
// to the customers tracking the agent's live parcels.
// The location upsert and the live-parcel lookup share one transaction;
// events are published only after the transaction commits, so subscribers
// never see a position that was rolled back.
//
// Example:
//
//	handler := NewReportLocationCommandHandler(uowFactory, hub)
//	cmd, _ := NewReportLocationCommand(agentID, 52.52, 13.405)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("Location report failed: %v", err)
//	}
type ReportLocationCommandHandler struct {
	uowFactory LocationUoWFactory
	publisher  ports.EventPublisher
}

// NewReportLocationCommandHandler creates a handler for agent location reports.
func NewReportLocationCommandHandler(
	uowFactory LocationUoWFactory,
	publisher ports.EventPublisher,
) ReportLocationCommandHandler {
	return ReportLocationCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the location report.
// Upserts the agent's position row (a first report marks the agent available,
// a repeat report marks it on delivery), collects the agent's live parcels
// and, after commit, publishes one parcel location event per live parcel to
// its owner's group. Parcels in a terminal or pending status get nothing.
func (h ReportLocationCommandHandler) Handle(ctx context.Context, command ReportLocationCommand) error {
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

	stored, err := uow.AgentLocationRepository().Upsert(ctx, command.AgentID(), command.Point(), command.Availability())
	if err != nil {
		return err
	}

	liveParcels, err := uow.ParcelRepository().GetAllLiveByAgent(ctx, command.AgentID())
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	locationPayload := realtime.AgentLocationPayload{
		Latitude:  stored.Point().Latitude(),
		Longitude: stored.Point().Longitude(),
		Status:    stored.Availability().String(),
		UpdatedAt: stored.UpdatedAt(),
	}

	for _, liveParcel := range liveParcels {
		h.publisher.Publish(realtime.CustomerGroup(liveParcel.CustomerID()), realtime.Event{
			Name: realtime.EventParcelLocation,
			Data: realtime.ParcelLocationPayload{
				ParcelID:      liveParcel.ID().String(),
				AgentLocation: locationPayload,
			},
		})
	}

	return nil
}
