package commands_test

import (
	"context"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/activity"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStatusUoW struct{ mock.Mock }

func (m *MockStatusUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStatusUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStatusUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStatusUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

func (m *MockStatusUoW) AssignmentRepository() ports.AssignmentRepository {
	args := m.Called()
	return args.Get(0).(ports.AssignmentRepository)
}

func (m *MockStatusUoW) ActivityRepository() ports.ActivityRepository {
	args := m.Called()
	return args.Get(0).(ports.ActivityRepository)
}

type MockStatusUoWFactory struct{ mock.Mock }

func (m *MockStatusUoWFactory) Create() commands.StatusUoW {
	args := m.Called()
	return args.Get(0).(commands.StatusUoW)
}

func TestUpdateParcelStatusCommandHandler_Handle_AgentPicksUp(t *testing.T) {
	ctx := t.Context()

	agentID := kernel.NewUUID()
	assignedParcel := newParcelInStatus(t, kernel.NewUUID(), parcel.StatusAssigned)
	binding, err := assignment.NewAssignment(assignedParcel.ID(), agentID, kernel.NewUUID())
	require.NoError(t, err)

	cmd, err := commands.NewUpdateParcelStatusCommand(
		assignedParcel.ID(), agentID, kernel.RoleAgent, parcel.StatusPickedUp,
	)
	require.NoError(t, err)

	parcelRepo := new(MockAssignParcelRepository)
	assignmentRepo := new(MockAssignAssignmentRepository)
	activityRepo := new(MockAssignActivityRepository)
	uow := new(MockStatusUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Get", ctx, assignedParcel.ID()).Return(assignedParcel, nil).Once(),
		uow.On("AssignmentRepository").Return(assignmentRepo).Once(),
		assignmentRepo.On("GetByParcel", ctx, assignedParcel.ID()).Return(binding, nil).Once(),
		parcelRepo.On("Update", ctx, mock.AnythingOfType("*parcel.Parcel")).Return(nil).Once(),
		uow.On("ActivityRepository").Return(activityRepo).Once(),
		activityRepo.On("Add", ctx, mock.AnythingOfType("*activity.Activity")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStatusUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateParcelStatusCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, parcel.StatusPickedUp, assignedParcel.Status())

	recorded := activityRepo.Calls[0].Arguments[1].(*activity.Activity)
	assert.Equal(t, "picked_up", recorded.Action())
	assert.Equal(t, agentID, recorded.ActorID())
	assert.Equal(t, kernel.RoleAgent, recorded.ActorRole())
}

func TestUpdateParcelStatusCommandHandler_Handle_AgentDoesNotHoldParcel(t *testing.T) {
	ctx := t.Context()

	assignedParcel := newParcelInStatus(t, kernel.NewUUID(), parcel.StatusAssigned)
	otherAgentID := kernel.NewUUID()
	binding, err := assignment.NewAssignment(assignedParcel.ID(), kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)

	cmd, err := commands.NewUpdateParcelStatusCommand(
		assignedParcel.ID(), otherAgentID, kernel.RoleAgent, parcel.StatusPickedUp,
	)
	require.NoError(t, err)

	parcelRepo := new(MockAssignParcelRepository)
	assignmentRepo := new(MockAssignAssignmentRepository)
	uow := new(MockStatusUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Get", ctx, assignedParcel.ID()).Return(assignedParcel, nil).Once(),
		uow.On("AssignmentRepository").Return(assignmentRepo).Once(),
		assignmentRepo.On("GetByParcel", ctx, assignedParcel.ID()).Return(binding, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStatusUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateParcelStatusCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrPermissionDenied)
	assert.Equal(t, parcel.StatusAssigned, assignedParcel.Status())
	parcelRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestUpdateParcelStatusCommandHandler_Handle_DeniedTransitionWritesNothing(t *testing.T) {
	ctx := t.Context()

	agentID := kernel.NewUUID()
	// Agents may not jump straight from assigned to delivered.
	assignedParcel := newParcelInStatus(t, kernel.NewUUID(), parcel.StatusAssigned)
	binding, err := assignment.NewAssignment(assignedParcel.ID(), agentID, kernel.NewUUID())
	require.NoError(t, err)

	cmd, err := commands.NewUpdateParcelStatusCommand(
		assignedParcel.ID(), agentID, kernel.RoleAgent, parcel.StatusDelivered,
	)
	require.NoError(t, err)

	parcelRepo := new(MockAssignParcelRepository)
	assignmentRepo := new(MockAssignAssignmentRepository)
	uow := new(MockStatusUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Get", ctx, assignedParcel.ID()).Return(assignedParcel, nil).Once(),
		uow.On("AssignmentRepository").Return(assignmentRepo).Once(),
		assignmentRepo.On("GetByParcel", ctx, assignedParcel.ID()).Return(binding, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStatusUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateParcelStatusCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Equal(t, parcel.StatusAssigned, assignedParcel.Status())
	parcelRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestUpdateParcelStatusCommandHandler_Handle_AdminSkipsOwnershipCheck(t *testing.T) {
	ctx := t.Context()

	adminID := kernel.NewUUID()
	inTransitParcel := newParcelInStatus(t, kernel.NewUUID(), parcel.StatusInTransit)

	cmd, err := commands.NewUpdateParcelStatusCommand(
		inTransitParcel.ID(), adminID, kernel.RoleAdmin, parcel.StatusFailed,
	)
	require.NoError(t, err)

	parcelRepo := new(MockAssignParcelRepository)
	activityRepo := new(MockAssignActivityRepository)
	uow := new(MockStatusUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Get", ctx, inTransitParcel.ID()).Return(inTransitParcel, nil).Once(),
		parcelRepo.On("Update", ctx, mock.AnythingOfType("*parcel.Parcel")).Return(nil).Once(),
		uow.On("ActivityRepository").Return(activityRepo).Once(),
		activityRepo.On("Add", ctx, mock.AnythingOfType("*activity.Activity")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStatusUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateParcelStatusCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, parcel.StatusFailed, inTransitParcel.Status())
	uow.AssertNotCalled(t, "AssignmentRepository")
}

func TestUpdateParcelStatusCommandHandler_Handle_AdminReopensDelivered(t *testing.T) {
	ctx := t.Context()

	adminID := kernel.NewUUID()
	deliveredParcel := newParcelInStatus(t, kernel.NewUUID(), parcel.StatusDelivered)

	cmd, err := commands.NewUpdateParcelStatusCommand(
		deliveredParcel.ID(), adminID, kernel.RoleAdmin, parcel.StatusInTransit,
	)
	require.NoError(t, err)

	parcelRepo := new(MockAssignParcelRepository)
	activityRepo := new(MockAssignActivityRepository)
	uow := new(MockStatusUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Get", ctx, deliveredParcel.ID()).Return(deliveredParcel, nil).Once(),
		parcelRepo.On("Update", ctx, mock.AnythingOfType("*parcel.Parcel")).Return(nil).Once(),
		uow.On("ActivityRepository").Return(activityRepo).Once(),
		activityRepo.On("Add", ctx, mock.AnythingOfType("*activity.Activity")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStatusUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateParcelStatusCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, parcel.StatusInTransit, deliveredParcel.Status())
	assert.Nil(t, deliveredParcel.DeliveredAt())
}

func TestUpdateParcelStatusCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.UpdateParcelStatusCommand{} // not constructed properly

	factory := new(MockStatusUoWFactory)
	handler := commands.NewUpdateParcelStatusCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrUpdateParcelStatusCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
