// Package locationrepo provides persistence for the last known position of
// each agent. Positions are last-write-wins: one row per agent, overwritten
// on every report. History is not kept.
package locationrepo

import (
	"time"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AgentLocationDTO represents the database structure for agent positions.
// The agent ID is the primary key, which gives the one-row-per-agent
// invariant for free.
type AgentLocationDTO struct {
	AgentID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Latitude     float64
	Longitude    float64
	Availability string `gorm:"index"`
	UpdatedAt    time.Time
}

// TableName specifies the database table name for agent positions.
// Overrides GORM's default naming convention to use "agent_locations".
func (AgentLocationDTO) TableName() string {
	return "agent_locations"
}

// toDomain converts a database DTO to a location domain value.
func toDomain(dto AgentLocationDTO) (*agent.Location, error) {
	agentID, err := kernel.UUIDFromBytes(dto.AgentID[:])
	if err != nil {
		return nil, err
	}

	point, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}

	availability, err := agent.AvailabilityFromString(dto.Availability)
	if err != nil {
		return nil, err
	}

	return agent.NewLocation(agentID, point, availability, dto.UpdatedAt)
}
