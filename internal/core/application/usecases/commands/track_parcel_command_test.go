package commands_test

import (
	"sync"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/realtime"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorderConn captures events sent to it, standing in for a live
// websocket connection.
type recorderConn struct {
	id   string
	fail bool

	mu     sync.Mutex
	events []realtime.Event
}

func (c *recorderConn) ID() string { return c.id }

func (c *recorderConn) Send(event realtime.Event) error {
	if c.fail {
		return assert.AnError
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

func (c *recorderConn) received() []realtime.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]realtime.Event, len(c.events))
	copy(out, c.events)
	return out
}

func TestNewTrackParcelCommand_Success(t *testing.T) {
	customerID := kernel.NewUUID()
	parcelID := kernel.NewUUID()
	conn := &recorderConn{id: "conn-1"}

	cmd, err := commands.NewTrackParcelCommand(customerID, parcelID, conn)

	require.NoError(t, err)
	assert.Equal(t, customerID, cmd.CustomerID())
	assert.Equal(t, parcelID, cmd.ParcelID())
	assert.Equal(t, realtime.Conn(conn), cmd.Conn())
	assert.NoError(t, cmd.Validate())
}

func TestNewTrackParcelCommand_NilConn(t *testing.T) {
	_, err := commands.NewTrackParcelCommand(kernel.NewUUID(), kernel.NewUUID(), nil)

	require.ErrorIs(t, err, commands.ErrTrackConnIsRequired)
}

func TestNewTrackParcelCommand_EmptyCustomerID(t *testing.T) {
	_, err := commands.NewTrackParcelCommand(kernel.UUID{}, kernel.NewUUID(), &recorderConn{id: "conn-1"})

	require.Error(t, err)
}

func TestNewTrackParcelCommand_EmptyParcelID(t *testing.T) {
	_, err := commands.NewTrackParcelCommand(kernel.NewUUID(), kernel.UUID{}, &recorderConn{id: "conn-1"})

	require.Error(t, err)
}

func TestTrackParcelCommand_Validate_NotConstructed(t *testing.T) {
	var cmd commands.TrackParcelCommand

	err := cmd.Validate()

	require.ErrorIs(t, err, commands.ErrTrackParcelCommandIsNotConstructed)
}
