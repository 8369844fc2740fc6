// Package ws is the WebSocket transport. It upgrades HTTP requests, verifies
// the credential carried by the first client frame and dispatches subsequent
// frames to the application's command handlers. All frames are JSON envelopes
// of the form {"event": "...", "data": {...}}.
package ws

import "encoding/json"

// Event names accepted from clients.
const (
	EventInAgentConnect   = "agent:connect"
	EventInLocationUpdate = "agent:location-update"
	EventInTrackParcel    = "customer:track-parcel"
)

// Envelope is one inbound client frame. Data stays raw until the event name
// selects the payload shape.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ConnectPayload is the data of an agent:connect frame.
type ConnectPayload struct {
	Token string `json:"token"`
}

// LocationUpdatePayload is the data of an agent:location-update frame.
// Status is optional; when absent the storage defaults decide the agent's
// published availability.
type LocationUpdatePayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Status    string  `json:"status,omitempty"`
}

// TrackParcelPayload is the data of a customer:track-parcel frame. Token is
// required on the first frame of a connection and ignored afterwards.
type TrackParcelPayload struct {
	Token    string `json:"token"`
	ParcelID string `json:"parcelId"`
}
