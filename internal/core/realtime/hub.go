package realtime

import (
	"log/slog"
	"sync"
)

// Hub manages named subscription groups: sets of connections that should
// receive events for a given customer. Membership is tied to the connection's
// lifetime — LeaveAll on disconnect is the only way out, there is no explicit
// unsubscribe.
//
// Publish is fire-and-forget: an empty group drops the event, a failing
// connection is logged and skipped. Once dispatched, a delivery is not
// cancellable; disconnect only prevents future deliveries.
type Hub struct {
	mu     sync.RWMutex
	groups map[string]map[string]Conn // group name -> conn ID -> conn
	conns  map[string][]string        // conn ID -> group names joined

	logger *slog.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		groups: make(map[string]map[string]Conn),
		conns:  make(map[string][]string),
		logger: logger.With("component", "hub"),
	}
}

// Join adds a connection to a group. Joining a group twice is a no-op.
func (h *Hub) Join(group string, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.groups[group]
	if !ok {
		members = make(map[string]Conn)
		h.groups[group] = members
	}

	if _, already := members[conn.ID()]; already {
		return
	}

	members[conn.ID()] = conn
	h.conns[conn.ID()] = append(h.conns[conn.ID()], group)
}

// LeaveAll removes a connection from every group it joined. Called on
// disconnect.
func (h *Hub) LeaveAll(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, group := range h.conns[connID] {
		if members, ok := h.groups[group]; ok {
			delete(members, connID)
			if len(members) == 0 {
				delete(h.groups, group)
			}
		}
	}
	delete(h.conns, connID)
}

// Publish delivers an event to every current member of a group. The member
// set is snapshotted under the read lock and delivery happens outside it, so
// a slow connection never blocks joins or other groups. Send failures are
// logged and do not affect other members or the caller.
func (h *Hub) Publish(group string, event Event) {
	h.mu.RLock()
	members := make([]Conn, 0, len(h.groups[group]))
	for _, conn := range h.groups[group] {
		members = append(members, conn)
	}
	h.mu.RUnlock()

	for _, conn := range members {
		if err := conn.Send(event); err != nil {
			h.logger.Warn("dropping event for unreachable connection",
				"group", group, "event", event.Name, "conn", conn.ID(), "error", err)
		}
	}
}

// MemberCount returns the number of connections in a group.
func (h *Hub) MemberCount(group string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.groups[group])
}
