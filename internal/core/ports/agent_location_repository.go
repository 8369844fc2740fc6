package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"
)

// AgentLocationRepository defines the persistence contract for the
// last-write-wins agent position rows.
type AgentLocationRepository interface {
	// Upsert writes the agent's latest position and returns the stored row.
	// availability semantics when nil: a freshly inserted row defaults to
	// available, an existing row is moved to on_delivery (an agent reporting
	// positions without stating otherwise is presumed out delivering).
	Upsert(ctx context.Context, agentID kernel.UUID, point kernel.GeoPoint, availability *agent.Availability) (*agent.Location, error)

	// GetByAgent retrieves an agent's latest position.
	// Returns ObjectNotFoundError when the agent has never reported one.
	GetByAgent(ctx context.Context, agentID kernel.UUID) (*agent.Location, error)

	// SetAvailability overwrites only the published availability, leaving
	// the position untouched. Used when an agent's connection drops.
	SetAvailability(ctx context.Context, agentID kernel.UUID, availability agent.Availability) error

	// ResetStaleOnDelivery moves every agent still published as on_delivery
	// whose row was last updated before the cutoff back to available.
	// Returns the number of rows changed.
	ResetStaleOnDelivery(ctx context.Context, cutoff time.Time) (int64, error)
}
