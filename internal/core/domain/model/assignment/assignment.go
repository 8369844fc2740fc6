// Package assignment contains the binding of one delivery agent to one
// parcel. A parcel has at most one assignment; reassignment overwrites the
// agent and timestamp but preserves the parcel linkage.
package assignment

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// ErrAssignmentIsNotConstructed is returned when an Assignment instance was
// not created through the NewAssignment or RestoreAssignment factory
// functions.
var ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment or RestoreAssignment")

// Assignment binds a delivery agent to a parcel. assignedBy records the
// dispatcher who performed the binding for the audit trail.
type Assignment struct {
	parcelID   kernel.UUID
	agentID    kernel.UUID
	assignedBy kernel.UUID
	assignedAt time.Time

	isConstructed bool
}

// NewAssignment creates an assignment stamped with the current time.
func NewAssignment(parcelID, agentID, assignedBy kernel.UUID) (*Assignment, error) {
	a := &Assignment{
		assignedAt:    time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		parcelID.Validate(),
		agentID.Validate(),
		assignedBy.Validate(),
	); err != nil {
		return nil, err
	}

	a.parcelID = parcelID
	a.agentID = agentID
	a.assignedBy = assignedBy
	return a, nil
}

// RestoreAssignment reconstructs an assignment from persistence.
func RestoreAssignment(parcelID, agentID, assignedBy kernel.UUID, assignedAt time.Time) (*Assignment, error) {
	a, err := NewAssignment(parcelID, agentID, assignedBy)
	if err != nil {
		return nil, err
	}

	a.assignedAt = assignedAt
	return a, nil
}

// Validate ensures the Assignment was created through a factory function.
func (a *Assignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignmentIsNotConstructed
	}
	return nil
}

// ParcelID returns the assigned parcel's identifier.
func (a *Assignment) ParcelID() kernel.UUID {
	return a.parcelID
}

// AgentID returns the bound agent's identifier.
func (a *Assignment) AgentID() kernel.UUID {
	return a.agentID
}

// AssignedBy returns the identity of the dispatcher who made the binding.
func (a *Assignment) AssignedBy() kernel.UUID {
	return a.assignedBy
}

// AssignedAt returns when the binding was made.
func (a *Assignment) AssignedAt() time.Time {
	return a.assignedAt
}
