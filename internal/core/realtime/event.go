package realtime

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// Event names pushed from the core to connections.
const (
	EventAgentConnected  = "agent:connected"
	EventLocationUpdated = "location:updated"
	EventLocationError   = "location:error"
	EventParcelLocation  = "parcel:location-update"
	EventTrackingStarted = "tracking:started"
	EventTrackingError   = "tracking:error"
)

// Event is one message pushed to a connection. Data is marshaled by the
// transport adapter; payload types below define the wire shapes.
type Event struct {
	Name string
	Data any
}

// Conn is an output channel to one live connection. Implementations must be
// safe for concurrent Send calls; the hub may publish from several
// goroutines.
type Conn interface {
	// ID returns the connection's unique identity, stable for its lifetime.
	ID() string

	// Send delivers one event to the connection. Errors indicate the
	// connection is unusable; callers treat them as non-fatal.
	Send(event Event) error
}

// AgentLocationPayload is the position part of a parcel location event.
type AgentLocationPayload struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ParcelLocationPayload is the payload of EventParcelLocation.
type ParcelLocationPayload struct {
	ParcelID      string               `json:"parcelId"`
	AgentLocation AgentLocationPayload `json:"agentLocation"`
}

// AgentInfoPayload is the agent part of a tracking-started event.
type AgentInfoPayload struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	VehicleType string `json:"vehicleType"`
}

// TrackingStartedPayload is the payload of EventTrackingStarted.
type TrackingStartedPayload struct {
	ParcelID  string           `json:"parcelId"`
	AgentInfo AgentInfoPayload `json:"agentInfo"`
}

// AckPayload is the payload of EventLocationUpdated.
type AckPayload struct {
	Success bool `json:"success"`
}

// ErrorPayload is the payload of error events.
type ErrorPayload struct {
	Message string `json:"message"`
}

// CustomerGroup returns the subscription group name for a customer's parcel
// notifications.
func CustomerGroup(customerID kernel.UUID) string {
	return "customer:" + customerID.String()
}
