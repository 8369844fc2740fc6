// Package parcel contains the Parcel aggregate and its lifecycle state
// machine.
//
// The lifecycle policy is a single explicit lookup table keyed by
// (current status, actor role); see Status.CanTransition. Handlers never
// branch on roles themselves — they ask the table. Agents advance parcels
// along the happy path (picked_up, in_transit, delivered/failed); admins may
// additionally step one stage backward and reopen the soft-terminal statuses
// delivered and failed.
//
// Agents may only act on parcels they are currently assigned to; that check
// belongs to the caller (the assignment is not part of this aggregate), not
// to the table.
package parcel
