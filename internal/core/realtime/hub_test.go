package realtime_test

import (
	"errors"
	"log/slog"
	"sync"
	"testing"

	"dispatch/internal/core/realtime"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn records events it receives; optionally fails every Send.
type fakeConn struct {
	id   string
	fail bool

	mu     sync.Mutex
	events []realtime.Event
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: id}
}

func (c *fakeConn) ID() string { return c.id }

func (c *fakeConn) Send(event realtime.Event) error {
	if c.fail {
		return errors.New("connection closed")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

func (c *fakeConn) received() []realtime.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]realtime.Event, len(c.events))
	copy(out, c.events)
	return out
}

func newTestHub() *realtime.Hub {
	return realtime.NewHub(slog.Default())
}

func TestHub_JoinAndPublish(t *testing.T) {
	hub := newTestHub()
	conn := newFakeConn("conn-1")

	hub.Join("customer:c1", conn)
	hub.Publish("customer:c1", realtime.Event{Name: realtime.EventParcelLocation})

	events := conn.received()
	require.Len(t, events, 1)
	assert.Equal(t, realtime.EventParcelLocation, events[0].Name)
}

func TestHub_PublishToEmptyGroupIsDropped(t *testing.T) {
	hub := newTestHub()

	// Nothing to assert beyond "does not panic or block".
	hub.Publish("customer:nobody", realtime.Event{Name: realtime.EventParcelLocation})
}

func TestHub_PublishReachesOnlyTargetGroup(t *testing.T) {
	hub := newTestHub()
	subscriber := newFakeConn("conn-1")
	bystander := newFakeConn("conn-2")

	hub.Join("customer:c1", subscriber)
	hub.Join("customer:c2", bystander)

	hub.Publish("customer:c1", realtime.Event{Name: realtime.EventParcelLocation})

	assert.Len(t, subscriber.received(), 1)
	assert.Empty(t, bystander.received())
}

func TestHub_DoubleJoinDeliversOnce(t *testing.T) {
	hub := newTestHub()
	conn := newFakeConn("conn-1")

	hub.Join("customer:c1", conn)
	hub.Join("customer:c1", conn)

	hub.Publish("customer:c1", realtime.Event{Name: realtime.EventParcelLocation})
	assert.Len(t, conn.received(), 1)
}

func TestHub_LeaveAll(t *testing.T) {
	hub := newTestHub()
	conn := newFakeConn("conn-1")

	hub.Join("customer:c1", conn)
	hub.Join("customer:c2", conn)
	require.Equal(t, 1, hub.MemberCount("customer:c1"))

	hub.LeaveAll(conn.ID())

	assert.Equal(t, 0, hub.MemberCount("customer:c1"))
	assert.Equal(t, 0, hub.MemberCount("customer:c2"))

	hub.Publish("customer:c1", realtime.Event{Name: realtime.EventParcelLocation})
	assert.Empty(t, conn.received())
}

func TestHub_FailingConnDoesNotAffectOthers(t *testing.T) {
	hub := newTestHub()
	broken := newFakeConn("conn-broken")
	broken.fail = true
	healthy := newFakeConn("conn-healthy")

	hub.Join("customer:c1", broken)
	hub.Join("customer:c1", healthy)

	hub.Publish("customer:c1", realtime.Event{Name: realtime.EventParcelLocation})

	assert.Len(t, healthy.received(), 1)
}

func TestHub_ConcurrentJoinPublishLeave(t *testing.T) {
	hub := newTestHub()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			conn := newFakeConn(string(rune('a' + n)))
			hub.Join("customer:c1", conn)
			hub.Publish("customer:c1", realtime.Event{Name: realtime.EventParcelLocation})
			hub.LeaveAll(conn.ID())
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 0, hub.MemberCount("customer:c1"))
}
