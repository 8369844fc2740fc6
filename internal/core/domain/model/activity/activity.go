// Package activity contains the append-only audit trail of parcel lifecycle
// actions. Activity records are never mutated or deleted.
package activity

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrActivityIsNotConstructed is returned when an Activity instance was not
// created through the NewActivity or RestoreActivity factory functions.
var ErrActivityIsNotConstructed = errors.New("Activity must be created via NewActivity or RestoreActivity")

// Activity is one audit entry: who did what to which parcel, and when.
// The action label matches the resulting parcel status for transitions
// ("assigned", "picked_up", ...), keeping the trail greppable.
type Activity struct {
	id         kernel.UUID
	parcelID   kernel.UUID
	action     string
	actorID    kernel.UUID
	actorRole  kernel.Role
	recordedAt time.Time

	isConstructed bool
}

// NewActivity creates an audit entry stamped with the current time.
func NewActivity(parcelID kernel.UUID, action string, actorID kernel.UUID, actorRole kernel.Role) (*Activity, error) {
	a := &Activity{
		id:            kernel.NewUUID(),
		recordedAt:    time.Now().UTC(),
		isConstructed: true,
	}

	if action == "" {
		return nil, errs.NewValueIsRequiredError("action")
	}

	if err := errors.Join(
		parcelID.Validate(),
		actorID.Validate(),
		actorRole.Validate(),
	); err != nil {
		return nil, err
	}

	a.parcelID = parcelID
	a.action = action
	a.actorID = actorID
	a.actorRole = actorRole
	return a, nil
}

// RestoreActivity reconstructs an audit entry from persistence.
func RestoreActivity(
	id kernel.UUID,
	parcelID kernel.UUID,
	action string,
	actorID kernel.UUID,
	actorRole kernel.Role,
	recordedAt time.Time,
) (*Activity, error) {
	a, err := NewActivity(parcelID, action, actorID, actorRole)
	if err != nil {
		return nil, err
	}

	if err = id.Validate(); err != nil {
		return nil, err
	}

	a.id = id
	a.recordedAt = recordedAt
	return a, nil
}

// Validate ensures the Activity was created through a factory function.
func (a *Activity) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrActivityIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (a *Activity) ID() kernel.UUID {
	return a.id
}

// ParcelID returns the affected parcel's identifier.
func (a *Activity) ParcelID() kernel.UUID {
	return a.parcelID
}

// Action returns the action label.
func (a *Activity) Action() string {
	return a.action
}

// ActorID returns the identity that performed the action.
func (a *Activity) ActorID() kernel.UUID {
	return a.actorID
}

// ActorRole returns the role the actor held when acting.
func (a *Activity) ActorRole() kernel.Role {
	return a.actorRole
}

// RecordedAt returns when the action was recorded.
func (a *Activity) RecordedAt() time.Time {
	return a.recordedAt
}
