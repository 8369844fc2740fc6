package ws

import (
	"errors"
	"sync"
	"time"

	"dispatch/internal/core/realtime"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var (
	// ErrConnectionClosed is returned by Send after the connection shut down.
	ErrConnectionClosed = errors.New("connection is closed")

	// ErrSendBufferFull is returned when the peer cannot keep up and the
	// outbound buffer has no room left. The event is dropped.
	ErrSendBufferFull = errors.New("send buffer is full")
)

const (
	writeWait       = 10 * time.Second
	pingPeriod      = 30 * time.Second
	outboundBufSize = 64
)

// outboundEnvelope is the wire shape of one server-to-client frame.
type outboundEnvelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Connection adapts one websocket to realtime.Conn. Writes go through a
// buffered channel drained by a single pump goroutine, so Send is safe from
// any goroutine and a slow peer never blocks a publisher.
type Connection struct {
	id       string
	ws       *websocket.Conn
	outbound chan realtime.Event

	closeOnce sync.Once
	done      chan struct{}
}

// NewConnection wraps an upgraded websocket. The caller must start the write
// pump with Run before sending.
func NewConnection(ws *websocket.Conn) *Connection {
	return &Connection{
		id:       uuid.NewString(),
		ws:       ws,
		outbound: make(chan realtime.Event, outboundBufSize),
		done:     make(chan struct{}),
	}
}

// ID returns the connection's identity, stable for its lifetime.
func (c *Connection) ID() string {
	return c.id
}

// Send queues one event for delivery. Never blocks: a closed connection or a
// full buffer reports an error and the event is dropped.
func (c *Connection) Send(event realtime.Event) error {
	select {
	case <-c.done:
		return ErrConnectionClosed
	default:
	}

	select {
	case c.outbound <- event:
		return nil
	case <-c.done:
		return ErrConnectionClosed
	default:
		return ErrSendBufferFull
	}
}

// Run drains the outbound buffer onto the websocket and keeps the peer alive
// with pings. Returns when Close is called or a write fails.
func (c *Connection) Run() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case event := <-c.outbound:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteJSON(outboundEnvelope{Event: event.Name, Data: event.Data}); err != nil {
				c.Close()
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.Close()
				return
			}
		case <-c.done:
			return
		}
	}
}

// Close shuts the connection down. Safe to call more than once.
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.ws.Close()
	})
}
