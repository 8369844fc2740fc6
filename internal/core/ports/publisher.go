package ports

import (
	"dispatch/internal/core/realtime"
)

// EventPublisher fans an event out to every connection in a group.
// Delivery is best effort; a slow or broken subscriber never fails
// the publishing operation.
type EventPublisher interface {
	Publish(group string, event realtime.Event)
}

// GroupJoiner adds a connection to a named subscription group.
type GroupJoiner interface {
	Join(group string, conn realtime.Conn)
}
