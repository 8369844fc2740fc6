// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ParcelRepoFactory provides access to parcel repository within a transaction.
	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	// AgentRepoFactory provides access to agent repository within a transaction.
	AgentRepoFactory interface {
		AgentRepository() ports.AgentRepository
	}

	// AgentLocationRepoFactory provides access to agent location repository within a transaction.
	AgentLocationRepoFactory interface {
		AgentLocationRepository() ports.AgentLocationRepository
	}

	// AssignmentRepoFactory provides access to assignment repository within a transaction.
	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	// ActivityRepoFactory provides access to activity repository within a transaction.
	ActivityRepoFactory interface {
		ActivityRepository() ports.ActivityRepository
	}

	// AssignUoW manages transactions for parcel assignment.
	// Assignment touches the parcel, the assignment row and the activity log,
	// and checks the agent, so it needs all four repositories atomically.
	AssignUoW interface {
		TxManager
		ParcelRepoFactory
		AgentRepoFactory
		AssignmentRepoFactory
		ActivityRepoFactory
	}

	// AssignUoWFactory creates new assignment unit of work instances.
	AssignUoWFactory interface {
		Create() AssignUoW
	}

	// StatusUoW manages transactions for parcel status updates.
	StatusUoW interface {
		TxManager
		ParcelRepoFactory
		AssignmentRepoFactory
		ActivityRepoFactory
	}

	// StatusUoWFactory creates new status update unit of work instances.
	StatusUoWFactory interface {
		Create() StatusUoW
	}

	// LocationUoW manages transactions for agent location reports.
	// A report upserts the location row and reads the agent's live parcels
	// inside the same transaction so the broadcast set matches what was
	// committed.
	LocationUoW interface {
		TxManager
		AgentLocationRepoFactory
		ParcelRepoFactory
	}

	// LocationUoWFactory creates new location report unit of work instances.
	LocationUoWFactory interface {
		Create() LocationUoW
	}

	// TrackUoW manages transactions for tracking subscriptions.
	// Subscribing only reads, but the reads must see one consistent snapshot
	// of the parcel, its assignment and the agent's position.
	TrackUoW interface {
		TxManager
		ParcelRepoFactory
		AssignmentRepoFactory
		AgentRepoFactory
		AgentLocationRepoFactory
	}

	// TrackUoWFactory creates new tracking unit of work instances.
	TrackUoWFactory interface {
		Create() TrackUoW
	}

	// SweepUoW manages transactions for the stale availability sweep.
	SweepUoW interface {
		TxManager
		AgentLocationRepoFactory
	}

	// SweepUoWFactory creates new sweep unit of work instances.
	SweepUoWFactory interface {
		Create() SweepUoW
	}
)
