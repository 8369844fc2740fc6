package ports

import (
	"context"

	"dispatch/internal/core/domain/model/activity"
	"dispatch/internal/core/domain/model/kernel"
)

// ActivityRepository defines the persistence contract for the append-only
// parcel history log.
type ActivityRepository interface {
	// Add appends an activity record. Records are never updated or removed.
	Add(ctx context.Context, record *activity.Activity) error

	// GetAllByParcel retrieves a parcel's history, oldest first.
	GetAllByParcel(ctx context.Context, parcelID kernel.UUID) ([]*activity.Activity, error)
}
