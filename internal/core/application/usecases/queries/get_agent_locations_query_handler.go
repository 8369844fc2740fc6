package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAgentLocationsQueryHandler retrieves agent positions from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
//
// Example:
//
//	handler := NewGetAgentLocationsQueryHandler(db)
//	query := NewGetAgentLocationsQuery()
//
//	locations, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get agent locations: %v", err)
//	    return err
//	}
//
//	fmt.Printf("Found %d agents with known positions\n", len(locations))
type GetAgentLocationsQueryHandler struct {
	db *gorm.DB
}

// NewGetAgentLocationsQueryHandler creates a handler for agent position queries.
// Requires a GORM database connection for query execution.
func NewGetAgentLocationsQueryHandler(db *gorm.DB) GetAgentLocationsQueryHandler {
	return GetAgentLocationsQueryHandler{db: db}
}

// Handle executes the query to retrieve all known agent positions.
// Agents that have never reported a position are absent from the result.
// Returns a slice of position read models sorted by agent name.
func (h GetAgentLocationsQueryHandler) Handle(
	ctx context.Context,
	query GetAgentLocationsQuery,
) ([]GetAgentLocationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	locations := make([]GetAgentLocationsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			agents.id,
			agents.name,
			agents.vehicle_type,
			agent_locations.latitude,
			agent_locations.longitude,
			agent_locations.availability,
			agent_locations.updated_at
		FROM agent_locations
		JOIN agents ON agents.id = agent_locations.agent_id
		ORDER BY agents.name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var location GetAgentLocationsQueryResponse
		var id uuid.UUID
		var latitude, longitude float64
		var updatedAt time.Time

		err = rows.Scan(
			&id,
			&location.Name,
			&location.VehicleType,
			&latitude,
			&longitude,
			&location.Availability,
			&updatedAt,
		)
		if err != nil {
			return nil, err
		}

		agentID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		location.AgentID = agentID

		point, pointErr := kernel.NewGeoPoint(latitude, longitude)
		if pointErr != nil {
			return nil, pointErr
		}
		location.Point = point
		location.UpdatedAt = updatedAt

		locations = append(locations, location)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return locations, nil
}
