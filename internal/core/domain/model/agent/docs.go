// Package agent contains the delivery agent entity, its self-reported
// availability and its last-known location.
//
// An agent's Location is a single last-write-wins row: the broadcast
// subsystem only ever needs the latest position, so no history is kept.
package agent
