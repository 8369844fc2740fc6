package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"
)

// ParcelRepository defines the persistence contract for parcel aggregates.
type ParcelRepository interface {
	// Add persists a new parcel aggregate to storage.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists changes to an existing parcel aggregate.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Get retrieves a parcel aggregate by its unique identifier.
	// Returns ObjectNotFoundError when no such parcel exists.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetByTrackingCode retrieves a parcel by its human-readable code.
	GetByTrackingCode(ctx context.Context, trackingCode string) (*parcel.Parcel, error)

	// GetAllLiveByAgent retrieves the parcels currently assigned to an agent
	// whose status is live (assigned, picked_up or in_transit). The
	// broadcast router fans a location report out to the owners of exactly
	// these parcels.
	GetAllLiveByAgent(ctx context.Context, agentID kernel.UUID) ([]*parcel.Parcel, error)
}
