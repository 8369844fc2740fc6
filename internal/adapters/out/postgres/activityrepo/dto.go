// Package activityrepo provides persistence for the append-only parcel
// history log. Rows are written once and never updated.
package activityrepo

import (
	"time"

	"dispatch/internal/core/domain/model/activity"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ActivityDTO represents the database structure for parcel history records.
type ActivityDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParcelID   uuid.UUID `gorm:"type:uuid;index"`
	Action     string    `gorm:"not null"`
	ActorID    uuid.UUID `gorm:"type:uuid"`
	ActorRole  int
	RecordedAt time.Time `gorm:"index"`
}

// TableName specifies the database table name for parcel history records.
// Overrides GORM's default naming convention to use "parcel_activities".
func (ActivityDTO) TableName() string {
	return "parcel_activities"
}

// fromDomain converts an activity record to its database representation.
func fromDomain(record *activity.Activity) ActivityDTO {
	return ActivityDTO{
		ID:         record.ID().Bytes(),
		ParcelID:   record.ParcelID().Bytes(),
		Action:     record.Action(),
		ActorID:    record.ActorID().Bytes(),
		ActorRole:  int(record.ActorRole()),
		RecordedAt: record.RecordedAt(),
	}
}

// toDomain converts a database DTO to an activity record.
func toDomain(dto ActivityDTO) (*activity.Activity, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	parcelID, err := kernel.UUIDFromBytes(dto.ParcelID[:])
	if err != nil {
		return nil, err
	}

	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return nil, err
	}

	return activity.RestoreActivity(id, parcelID, dto.Action, actorID, kernel.Role(dto.ActorRole), dto.RecordedAt)
}
