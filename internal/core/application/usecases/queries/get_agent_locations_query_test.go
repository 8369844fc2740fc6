package queries_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetAgentLocationsQuery_Valid(t *testing.T) {
	query := queries.NewGetAgentLocationsQuery()
	err := query.Validate()
	require.NoError(t, err)
}

func TestGetAgentLocationsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetAgentLocationsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetAgentLocationsQueryIsNotConstructed)
}
