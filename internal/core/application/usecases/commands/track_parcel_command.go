package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/realtime"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrTrackParcelCommandIsNotConstructed = errors.New(
		"TrackParcelCommand must be created via NewTrackParcelCommand constructor",
	)
	ErrTrackConnIsRequired = errors.New("conn is required")
)

// TrackParcelCommand represents a customer's request to receive live
// location updates for one of their parcels. The command carries the
// connection that should be joined to the customer's subscription group.
//
// Example:
//
//	cmd, err := NewTrackParcelCommand(customerID, parcelID, conn)
//	if err != nil {
//	    return fmt.Errorf("invalid tracking request: %w", err)
//	}
//
//	handler := NewTrackParcelCommandHandler(uowFactory, hub)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to start tracking: %w", err)
//	}
type TrackParcelCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	parcelID   kernel.UUID
	conn       realtime.Conn

	guard guard.ConstructorGuard
}

// NewTrackParcelCommand creates a command to subscribe a connection to a
// parcel's location updates. Validates both identifiers and requires a
// non-nil connection.
func NewTrackParcelCommand(customerID, parcelID kernel.UUID, conn realtime.Conn) (TrackParcelCommand, error) {
	cmd := TrackParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setParcelID(parcelID),
		cmd.setConn(conn),
	); err != nil {
		return TrackParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrTrackParcelCommandIsNotConstructed if validation fails.
func (c TrackParcelCommand) Validate() error {
	return c.guard.Validate(ErrTrackParcelCommandIsNotConstructed)
}

// CustomerID returns the subscribing customer.
func (c TrackParcelCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// ParcelID returns the parcel to track.
func (c TrackParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Conn returns the connection to subscribe.
func (c TrackParcelCommand) Conn() realtime.Conn {
	return c.conn
}

func (c *TrackParcelCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("customerID", err)
	}

	c.customerID = customerID
	return nil
}

func (c *TrackParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("parcelID", err)
	}

	c.parcelID = parcelID
	return nil
}

func (c *TrackParcelCommand) setConn(conn realtime.Conn) error {
	if conn == nil {
		return ErrTrackConnIsRequired
	}

	c.conn = conn
	return nil
}
