package ports

import (
	"context"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
)

// AssignmentRepository defines the persistence contract for agent-parcel
// bindings. A parcel has at most one assignment row.
type AssignmentRepository interface {
	// Upsert creates the assignment for a parcel or overwrites the agent,
	// assigning actor and timestamp of an existing one.
	Upsert(ctx context.Context, aggregate *assignment.Assignment) error

	// GetByParcel retrieves the assignment for a parcel.
	// Returns ObjectNotFoundError when the parcel has never been assigned.
	GetByParcel(ctx context.Context, parcelID kernel.UUID) (*assignment.Assignment, error)
}
