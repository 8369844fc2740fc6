package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"
)

// AgentRepository defines the persistence contract for delivery agents.
// Only identities with the agent capability live in this repository, so a
// successful Get doubles as the capability check.
type AgentRepository interface {
	// Add persists a new agent.
	Add(ctx context.Context, aggregate *agent.Agent) error

	// Get retrieves an agent by its unique identifier.
	// Returns ObjectNotFoundError when no such agent exists.
	Get(ctx context.Context, id kernel.UUID) (*agent.Agent, error)

	// UpdateLastActive stamps when the agent last opened a connection.
	// Best-effort bookkeeping; callers must not block a connect on it.
	UpdateLastActive(ctx context.Context, id kernel.UUID, lastActiveAt time.Time) error
}
