package kernel

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Role identifies the capability of an acting identity. Roles gate lifecycle
// transitions and which real-time events a connection may send.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleAgent is a delivery agent: reports locations and advances parcels
	// it is assigned to.
	RoleAgent

	// RoleAdmin is a dispatcher: assigns parcels and may perform corrective
	// transitions, including reopening soft-terminal statuses.
	RoleAdmin

	// RoleCustomer is a parcel owner: may track parcels it owns.
	RoleCustomer
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "unknown",
		RoleAgent:    "agent",
		RoleAdmin:    "admin",
		RoleCustomer: "customer",
	}
}

func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleAgent:    "agent",
		RoleAdmin:    "admin",
		RoleCustomer: "customer",
	}
}

// RoleFromString parses a role from its wire representation.
// Returns an error for any string that is not a valid role.
func RoleFromString(s string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// Validate checks that the Role is one of the defined valid roles.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire representation of the role, "unknown" for invalid values.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}
