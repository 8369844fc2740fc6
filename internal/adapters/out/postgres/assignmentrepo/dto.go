// Package assignmentrepo provides persistence for agent-parcel bindings.
// The parcel ID is the primary key: a parcel has at most one assignment,
// and reassignment overwrites the row in place.
package assignmentrepo

import (
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AssignmentDTO represents the database structure for persisting assignments.
type AssignmentDTO struct {
	ParcelID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	AgentID    uuid.UUID `gorm:"type:uuid;index"`
	AssignedBy uuid.UUID `gorm:"type:uuid"`
	AssignedAt time.Time
}

// TableName specifies the database table name for assignments.
// Overrides GORM's default naming convention to use "assignments".
func (AssignmentDTO) TableName() string {
	return "assignments"
}

// fromDomain converts an assignment domain aggregate to its database representation.
func fromDomain(aggregate *assignment.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ParcelID:   aggregate.ParcelID().Bytes(),
		AgentID:    aggregate.AgentID().Bytes(),
		AssignedBy: aggregate.AssignedBy().Bytes(),
		AssignedAt: aggregate.AssignedAt(),
	}
}

// toDomain converts a database DTO to an assignment domain aggregate.
func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	parcelID, err := kernel.UUIDFromBytes(dto.ParcelID[:])
	if err != nil {
		return nil, err
	}

	agentID, err := kernel.UUIDFromBytes(dto.AgentID[:])
	if err != nil {
		return nil, err
	}

	assignedBy, err := kernel.UUIDFromBytes(dto.AssignedBy[:])
	if err != nil {
		return nil, err
	}

	return assignment.RestoreAssignment(parcelID, agentID, assignedBy, dto.AssignedAt)
}
