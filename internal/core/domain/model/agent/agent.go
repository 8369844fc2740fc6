package agent

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrAgentIsNotConstructed is returned when an Agent instance was not created
// through the NewAgent or RestoreAgent factory functions.
var ErrAgentIsNotConstructed = errors.New("Agent must be created via NewAgent or RestoreAgent")

// Agent is a delivery agent: an identity with the "agent" capability plus the
// display fields customers see while tracking (name, phone, vehicle type).
// Presence and current position live elsewhere; the entity itself only tracks
// when the agent was last active on a connection.
type Agent struct {
	id           kernel.UUID
	name         string
	phone        string
	vehicleType  string
	lastActiveAt time.Time

	isConstructed bool
}

// NewAgent creates an agent with the given display fields.
func NewAgent(id kernel.UUID, name, phone, vehicleType string) (*Agent, error) {
	a := &Agent{
		lastActiveAt:  time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setName(name),
		a.setPhone(phone),
		a.setVehicleType(vehicleType),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAgent reconstructs an agent from persistence.
func RestoreAgent(id kernel.UUID, name, phone, vehicleType string, lastActiveAt time.Time) (*Agent, error) {
	a := &Agent{
		lastActiveAt:  lastActiveAt,
		isConstructed: true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setName(name),
		a.setPhone(phone),
		a.setVehicleType(vehicleType),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// Validate ensures the Agent was created through a factory function.
func (a *Agent) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAgentIsNotConstructed
	}
	return nil
}

// ID returns the agent's unique identifier.
func (a *Agent) ID() kernel.UUID {
	return a.id
}

// Name returns the agent's display name.
func (a *Agent) Name() string {
	return a.name
}

// Phone returns the agent's contact phone number.
func (a *Agent) Phone() string {
	return a.phone
}

// VehicleType returns the agent's vehicle type (e.g. "bike", "van").
func (a *Agent) VehicleType() string {
	return a.vehicleType
}

// LastActiveAt returns when the agent last opened a connection.
func (a *Agent) LastActiveAt() time.Time {
	return a.lastActiveAt
}

// Touch stamps the agent as active now. Called when a connection is
// established.
func (a *Agent) Touch() {
	a.lastActiveAt = time.Now().UTC()
}

func (a *Agent) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Agent) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	a.name = name
	return nil
}

func (a *Agent) setPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	a.phone = phone
	return nil
}

func (a *Agent) setVehicleType(vehicleType string) error {
	if vehicleType == "" {
		return errs.NewValueIsRequiredError("vehicleType")
	}
	a.vehicleType = vehicleType
	return nil
}
