package agent

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Availability is an agent's self-reported delivery state. It is distinct
// from any parcel status: an agent is either free to take work or currently
// out delivering.
type Availability int

const (
	// AvailabilityUnknown represents an invalid or undefined availability.
	AvailabilityUnknown Availability = iota

	// Available means the agent is online and free to take deliveries.
	// Also the published state after an agent's connection drops.
	Available

	// OnDelivery means the agent is actively delivering parcels.
	OnDelivery
)

func getAvailabilityStrings() map[Availability]string {
	return map[Availability]string{
		AvailabilityUnknown: "unknown",
		Available:           "available",
		OnDelivery:          "on_delivery",
	}
}

func getValidAvailabilityStrings() map[Availability]string {
	//nolint:exhaustive // AvailabilityUnknown is intentionally excluded as it's invalid
	return map[Availability]string{
		Available:  "available",
		OnDelivery: "on_delivery",
	}
}

// AvailabilityFromString parses an availability from its wire representation.
func AvailabilityFromString(s string) (Availability, error) {
	for availability, str := range getValidAvailabilityStrings() {
		if str == s {
			return availability, nil
		}
	}
	return AvailabilityUnknown, errs.NewValueIsInvalidErrorWithCause(
		"availability", fmt.Errorf("%q is not a valid availability", s))
}

// Validate checks that the Availability is one of the defined valid values.
func (a Availability) Validate() error {
	if _, ok := getValidAvailabilityStrings()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"availability", fmt.Errorf("%d is not a valid availability", a))
	}
	return nil
}

// String returns the wire representation, "unknown" for invalid values.
func (a Availability) String() string {
	if str, ok := getAvailabilityStrings()[a]; ok {
		return str
	}
	return "unknown"
}
