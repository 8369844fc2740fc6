package agent

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// ErrLocationIsNotConstructed is returned when a Location instance was not
// created through the NewLocation factory function.
var ErrLocationIsNotConstructed = errors.New("Location must be created via NewLocation")

// Location is the latest reported position of an agent. Exactly one row per
// agent exists; each report overwrites the previous one (last-write-wins, no
// history). The availability carried here is the agent's published state as
// seen by tracking customers.
type Location struct {
	agentID      kernel.UUID
	point        kernel.GeoPoint
	availability Availability
	updatedAt    time.Time

	isConstructed bool
}

// NewLocation creates a location row for an agent.
func NewLocation(agentID kernel.UUID, point kernel.GeoPoint, availability Availability, updatedAt time.Time) (*Location, error) {
	l := &Location{
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		agentID.Validate(),
		point.Validate(),
		availability.Validate(),
	); err != nil {
		return nil, err
	}

	l.agentID = agentID
	l.point = point
	l.availability = availability
	return l, nil
}

// Validate ensures the Location was created through NewLocation.
func (l *Location) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLocationIsNotConstructed
	}
	return nil
}

// AgentID returns the owning agent's identifier.
func (l *Location) AgentID() kernel.UUID {
	return l.agentID
}

// Point returns the reported position.
func (l *Location) Point() kernel.GeoPoint {
	return l.point
}

// Availability returns the agent's published availability.
func (l *Location) Availability() Availability {
	return l.availability
}

// UpdatedAt returns when the position was last reported.
func (l *Location) UpdatedAt() time.Time {
	return l.updatedAt
}
