package agent_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAgent(t *testing.T) {
	t.Run("valid_agent", func(t *testing.T) {
		a, err := agent.NewAgent(kernel.NewUUID(), "Sam Porter", "+15550100", "bike")
		require.NoError(t, err)
		require.NoError(t, a.Validate())

		assert.Equal(t, "Sam Porter", a.Name())
		assert.Equal(t, "+15550100", a.Phone())
		assert.Equal(t, "bike", a.VehicleType())
		assert.WithinDuration(t, time.Now().UTC(), a.LastActiveAt(), time.Minute)
	})

	t.Run("missing_fields", func(t *testing.T) {
		_, err := agent.NewAgent(kernel.NewUUID(), "", "+15550100", "bike")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = agent.NewAgent(kernel.NewUUID(), "Sam Porter", "", "bike")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = agent.NewAgent(kernel.NewUUID(), "Sam Porter", "+15550100", "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero_id", func(t *testing.T) {
		var zero kernel.UUID
		_, err := agent.NewAgent(zero, "Sam Porter", "+15550100", "bike")
		require.Error(t, err)
	})
}

func TestAgent_Touch(t *testing.T) {
	past := time.Now().UTC().Add(-time.Hour)
	a, err := agent.RestoreAgent(kernel.NewUUID(), "Sam Porter", "+15550100", "bike", past)
	require.NoError(t, err)

	a.Touch()
	assert.True(t, a.LastActiveAt().After(past))
}

func TestAgent_Validate(t *testing.T) {
	var nilAgent *agent.Agent
	require.ErrorIs(t, nilAgent.Validate(), agent.ErrAgentIsNotConstructed)

	var zero agent.Agent
	require.ErrorIs(t, zero.Validate(), agent.ErrAgentIsNotConstructed)
}

func TestAvailabilityFromString(t *testing.T) {
	availability, err := agent.AvailabilityFromString("available")
	require.NoError(t, err)
	assert.Equal(t, agent.Available, availability)

	availability, err = agent.AvailabilityFromString("on_delivery")
	require.NoError(t, err)
	assert.Equal(t, agent.OnDelivery, availability)

	_, err = agent.AvailabilityFromString("busy")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestAvailability_Validate(t *testing.T) {
	require.NoError(t, agent.Available.Validate())
	require.NoError(t, agent.OnDelivery.Validate())
	require.Error(t, agent.AvailabilityUnknown.Validate())
	require.Error(t, agent.Availability(7).Validate())
}

func TestNewLocation(t *testing.T) {
	point, err := kernel.NewGeoPoint(12.34, 56.78)
	require.NoError(t, err)

	t.Run("valid_location", func(t *testing.T) {
		loc, locErr := agent.NewLocation(kernel.NewUUID(), point, agent.OnDelivery, time.Now().UTC())
		require.NoError(t, locErr)
		require.NoError(t, loc.Validate())
		assert.Equal(t, agent.OnDelivery, loc.Availability())
		assert.True(t, point.IsEqual(loc.Point()))
	})

	t.Run("invalid_availability", func(t *testing.T) {
		_, locErr := agent.NewLocation(kernel.NewUUID(), point, agent.AvailabilityUnknown, time.Now().UTC())
		require.Error(t, locErr)
	})

	t.Run("zero_point", func(t *testing.T) {
		var zeroPoint kernel.GeoPoint
		_, locErr := agent.NewLocation(kernel.NewUUID(), zeroPoint, agent.Available, time.Now().UTC())
		require.Error(t, locErr)
	})
}
