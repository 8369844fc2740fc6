// Package parcelrepo provides data transfer objects and mapping functions for parcel persistence.
// This package implements the repository pattern for the parcel domain aggregate, handling
// the conversion between domain entities and database representations.
package parcelrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelDTO represents the database structure for persisting parcel aggregates.
// Maps parcel domain entities to relational database tables with proper indexing
// for efficient querying by tracking code, customer and status.
type ParcelDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	TrackingCode string    `gorm:"uniqueIndex;not null"`
	CustomerID   uuid.UUID `gorm:"type:uuid;index"`
	Status       int       `gorm:"index"`
	EstimatedAt  time.Time
	DeliveredAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the database table name for parcel entities.
// Overrides GORM's default naming convention to use "parcels".
func (ParcelDTO) TableName() string {
	return "parcels"
}

// fromDomain converts a parcel domain aggregate to its database representation.
func fromDomain(aggregate *parcel.Parcel) ParcelDTO {
	return ParcelDTO{
		ID:           aggregate.ID().Bytes(),
		TrackingCode: aggregate.TrackingCode(),
		CustomerID:   aggregate.CustomerID().Bytes(),
		Status:       int(aggregate.Status()),
		EstimatedAt:  aggregate.EstimatedAt(),
		DeliveredAt:  aggregate.DeliveredAt(),
		CreatedAt:    aggregate.CreatedAt(),
		UpdatedAt:    aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to a parcel domain aggregate.
// Reconstructs the complete aggregate including status using RestoreParcel.
func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	return parcel.RestoreParcel(
		id,
		dto.TrackingCode,
		customerID,
		parcel.Status(dto.Status),
		dto.EstimatedAt,
		dto.DeliveredAt,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
