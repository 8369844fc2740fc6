// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetAgentLocationsQueryIsNotConstructed = errors.New(
		"GetAgentLocationsQuery must be created via NewGetAgentLocationsQuery constructor",
	)
)

// GetAgentLocationsQuery retrieves the last known position of every agent
// that has reported one. Feeds the dispatcher's monitoring view.
//
// Example:
//
//	query := NewGetAgentLocationsQuery()
//	handler := NewGetAgentLocationsQueryHandler(db)
//
//	locations, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve agent locations: %w", err)
//	}
//
//	for _, loc := range locations {
//	    fmt.Printf("%s (%s) at (%.4f, %.4f)\n",
//	        loc.Name, loc.Availability, loc.Point.Latitude(), loc.Point.Longitude())
//	}
type GetAgentLocationsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAgentLocationsQuery creates a query to retrieve all agent positions.
// This is a parameterless query that fetches the complete position list.
func NewGetAgentLocationsQuery() GetAgentLocationsQuery {
	return GetAgentLocationsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAgentLocationsQueryIsNotConstructed if validation fails.
func (q GetAgentLocationsQuery) Validate() error {
	return q.guard.Validate(ErrGetAgentLocationsQueryIsNotConstructed)
}

// GetAgentLocationsQueryResponse represents one agent's position in the
// read model, joined with the agent's identity for display.
type GetAgentLocationsQueryResponse struct {
	AgentID      kernel.UUID
	Name         string
	VehicleType  string
	Point        kernel.GeoPoint
	Availability string
	UpdatedAt    time.Time
}
