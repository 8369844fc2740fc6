package parcel

import (
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a parcel.
// The lifecycle is a state machine whose transitions depend on both the
// current status and the role of the actor requesting the change:
//
//	pending ──> assigned ──> picked_up ──> in_transit ──┬──> delivered
//	   ^            ^                                   └──> failed
//	   └────────────┴── (admin reopening from failed)
//
// delivered and failed are soft-terminal: only an admin may reopen them.
// Agents move parcels forward along the happy path; admins may additionally
// step backward one stage to correct mistakes.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status: the parcel awaits dispatch.
	StatusPending

	// StatusAssigned indicates a delivery agent has been bound to the parcel.
	StatusAssigned

	// StatusPickedUp indicates the agent collected the parcel.
	StatusPickedUp

	// StatusInTransit indicates the parcel is on its way to the customer.
	StatusInTransit

	// StatusDelivered indicates successful delivery. Soft-terminal: an admin
	// may move the parcel back to in_transit to handle a dispute.
	StatusDelivered

	// StatusFailed indicates the delivery attempt failed. Soft-terminal: an
	// admin may reopen the parcel to pending or assigned.
	StatusFailed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "unknown",
		StatusPending:   "pending",
		StatusAssigned:  "assigned",
		StatusPickedUp:  "picked_up",
		StatusInTransit: "in_transit",
		StatusDelivered: "delivered",
		StatusFailed:    "failed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:   "pending",
		StatusAssigned:  "assigned",
		StatusPickedUp:  "picked_up",
		StatusInTransit: "in_transit",
		StatusDelivered: "delivered",
		StatusFailed:    "failed",
	}
}

// getTransitionTable returns the canonical (status, role) -> allowed-next table.
// Any pair absent from the table is denied, as is any role other than agent
// and admin. The table is the single source of truth for lifecycle policy;
// there is no other transition logic anywhere in the codebase.
func getTransitionTable() map[Status]map[kernel.Role][]Status {
	return map[Status]map[kernel.Role][]Status{
		StatusPending: {
			kernel.RoleAdmin: {StatusAssigned},
		},
		StatusAssigned: {
			kernel.RoleAgent: {StatusPickedUp},
			kernel.RoleAdmin: {StatusPickedUp, StatusPending},
		},
		StatusPickedUp: {
			kernel.RoleAgent: {StatusInTransit},
			kernel.RoleAdmin: {StatusInTransit, StatusAssigned},
		},
		StatusInTransit: {
			kernel.RoleAgent: {StatusDelivered, StatusFailed},
			kernel.RoleAdmin: {StatusDelivered, StatusFailed, StatusPickedUp},
		},
		StatusDelivered: {
			kernel.RoleAdmin: {StatusInTransit},
		},
		StatusFailed: {
			kernel.RoleAdmin: {StatusPending, StatusAssigned},
		},
	}
}

// StatusFromString parses a status from its wire representation.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the defined valid statuses.
// StatusUnknown (0) and any other values are invalid. Used to vet Status
// values arriving from the database or the wire before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire representation of the status, "unknown" for
// invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// AllowedNext returns the set of statuses the given role may move this status
// to. The returned slice is a copy; mutating it does not affect the policy.
// An empty slice means the role may not move the parcel at all.
func (s Status) AllowedNext(role kernel.Role) []Status {
	byRole, ok := getTransitionTable()[s]
	if !ok {
		return nil
	}
	allowed, ok := byRole[role]
	if !ok {
		return nil
	}

	out := make([]Status, len(allowed))
	copy(out, allowed)
	return out
}

// CanTransition reports whether the given role may move this status to
// requested. This is a pure lookup over the transition table: deterministic,
// idempotent, no side effects. Denial is the default for every (status, role)
// pair the table does not mention.
func (s Status) CanTransition(role kernel.Role, requested Status) bool {
	for _, allowed := range s.AllowedNext(role) {
		if allowed == requested {
			return true
		}
	}
	return false
}

// IsLive reports whether a parcel in this status is eligible for location
// broadcast: an agent is actively working it. Pending parcels have no agent
// en route yet; delivered and failed parcels are done.
func (s Status) IsLive() bool {
	return s == StatusAssigned || s == StatusPickedUp || s == StatusInTransit
}

// IsAssignable reports whether an assignment may be performed while the
// parcel is in this status. Assigned is included so that reassignment is
// idempotent without illegally skipping states.
func (s Status) IsAssignable() bool {
	return s == StatusPending || s == StatusAssigned
}
