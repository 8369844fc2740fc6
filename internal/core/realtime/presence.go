package realtime

import "sync"

// PresenceRegistry tracks which agents currently have a live connection,
// mapping agent identity to connection identity. Entries exist only between
// connect and disconnect; nothing is persisted.
//
// Connect and Disconnect are written to survive the reconnect race: when an
// agent's new connection registers before the old one's disconnect arrives,
// the stale disconnect must not remove the new entry. Disconnect therefore
// removes the mapping only if the stored connection identity still matches.
type PresenceRegistry struct {
	mu     sync.Mutex
	byAgent map[string]string // agent ID -> connection ID
	byConn  map[string]string // connection ID -> agent ID
}

// NewPresenceRegistry creates an empty registry.
func NewPresenceRegistry() *PresenceRegistry {
	return &PresenceRegistry{
		byAgent: make(map[string]string),
		byConn:  make(map[string]string),
	}
}

// Connect records agentID as present on connID. A prior connection for the
// same agent is displaced (last connect wins); its reverse mapping is removed
// so its eventual disconnect is recognized as stale.
func (r *PresenceRegistry) Connect(agentID, connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.byAgent[agentID]; ok && prev != connID {
		delete(r.byConn, prev)
	}

	r.byAgent[agentID] = connID
	r.byConn[connID] = agentID
}

// Disconnect removes the presence entry owned by connID and returns the
// agent it belonged to. Returns ok=false when the connection was unknown or
// had already been displaced by a newer connection for the same agent; the
// caller must not touch the agent's published state in that case.
func (r *PresenceRegistry) Disconnect(connID string) (agentID string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	agentID, ok = r.byConn[connID]
	if !ok {
		return "", false
	}
	delete(r.byConn, connID)

	if r.byAgent[agentID] != connID {
		// A newer connection took over between our read and this disconnect.
		return "", false
	}

	delete(r.byAgent, agentID)
	return agentID, true
}

// Lookup returns the connection identity for an agent, if present. Used for
// direct pushes to a single agent; the broadcast path goes through the Hub.
func (r *PresenceRegistry) Lookup(agentID string) (connID string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	connID, ok = r.byAgent[agentID]
	return connID, ok
}

// Len returns the number of agents currently present.
func (r *PresenceRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.byAgent)
}
