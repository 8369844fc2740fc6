package parcel

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrParcelIsNotConstructed is returned when a Parcel instance was not
	// created through the NewParcel or RestoreParcel factory functions.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel or RestoreParcel")
)

// Parcel is the aggregate root for a shipment tracked through the delivery
// lifecycle. It owns the status state machine: every status change goes
// through Assign or TransitionTo, which consult the canonical transition
// table and never leave the aggregate in an inconsistent state.
//
// Invariants:
//   - identifier, tracking code and owning customer are set and immutable
//   - status is always one of the valid lifecycle statuses
//   - deliveredAt is set exactly when status is delivered
type Parcel struct {
	id           kernel.UUID
	trackingCode string
	customerID   kernel.UUID
	status       Status
	estimatedAt  time.Time
	deliveredAt  *time.Time
	createdAt    time.Time
	updatedAt    time.Time

	isConstructed bool
}

// NewParcel creates a pending parcel owned by the given customer.
// trackingCode is the human-readable unique code printed on the label;
// estimatedAt is the promised delivery time.
func NewParcel(id kernel.UUID, trackingCode string, customerID kernel.UUID, estimatedAt time.Time) (*Parcel, error) {
	now := time.Now().UTC()
	p := &Parcel{
		status:        StatusPending,
		estimatedAt:   estimatedAt,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setTrackingCode(trackingCode),
		p.setCustomerID(customerID),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreParcel reconstructs a parcel from persistence without replaying the
// lifecycle. All fields are validated; an invalid stored status is rejected.
func RestoreParcel(
	id kernel.UUID,
	trackingCode string,
	customerID kernel.UUID,
	status Status,
	estimatedAt time.Time,
	deliveredAt *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) (*Parcel, error) {
	p := &Parcel{
		estimatedAt:   estimatedAt,
		deliveredAt:   deliveredAt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setTrackingCode(trackingCode),
		p.setCustomerID(customerID),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	p.status = status
	return p, nil
}

// Validate ensures the Parcel was created through a factory function.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

// IsEqual compares two parcels by identity.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the parcel's unique identifier.
func (p *Parcel) ID() kernel.UUID {
	return p.id
}

// TrackingCode returns the human-readable tracking code.
func (p *Parcel) TrackingCode() string {
	return p.trackingCode
}

// CustomerID returns the identity of the owning customer.
func (p *Parcel) CustomerID() kernel.UUID {
	return p.customerID
}

// Status returns the current lifecycle status.
func (p *Parcel) Status() Status {
	return p.status
}

// EstimatedAt returns the promised delivery time.
func (p *Parcel) EstimatedAt() time.Time {
	return p.estimatedAt
}

// DeliveredAt returns the actual delivery time, nil unless delivered.
func (p *Parcel) DeliveredAt() *time.Time {
	return p.deliveredAt
}

// CreatedAt returns the creation timestamp.
func (p *Parcel) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt returns the last modification timestamp.
func (p *Parcel) UpdatedAt() time.Time {
	return p.updatedAt
}

// MarkAssigned moves the parcel to assigned as part of an assignment.
// Allowed only while the current status is pending or assigned, which makes
// reassignment idempotent without letting an assignment skip states.
// Returns a ConflictError for any other status; the aggregate is unchanged
// on error.
func (p *Parcel) MarkAssigned() error {
	if !p.status.IsAssignable() {
		return errs.NewConflictErrorWithCause(
			"parcel status",
			fmt.Errorf("%s is not an assignable status", p.status),
		)
	}

	p.status = StatusAssigned
	p.touch()
	return nil
}

// TransitionTo moves the parcel to the requested status on behalf of the
// given role, consulting the canonical transition table. A denied transition
// returns a ConflictError and leaves the aggregate unchanged. Moving to
// delivered stamps deliveredAt; reopening a delivered parcel clears it.
func (p *Parcel) TransitionTo(role kernel.Role, requested Status) error {
	if err := requested.Validate(); err != nil {
		return err
	}

	if !p.status.CanTransition(role, requested) {
		return errs.NewConflictErrorWithCause(
			"parcel status",
			fmt.Errorf("%s may not move parcel from %s to %s", role, p.status, requested),
		)
	}

	if requested == StatusDelivered {
		now := time.Now().UTC()
		p.deliveredAt = &now
	}
	if p.status == StatusDelivered && requested != StatusDelivered {
		p.deliveredAt = nil
	}

	p.status = requested
	p.touch()
	return nil
}

func (p *Parcel) touch() {
	p.updatedAt = time.Now().UTC()
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setTrackingCode(trackingCode string) error {
	if trackingCode == "" {
		return errs.NewValueIsRequiredError("trackingCode")
	}
	p.trackingCode = trackingCode
	return nil
}

func (p *Parcel) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	p.customerID = customerID
	return nil
}
