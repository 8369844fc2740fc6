// Package realtime contains the in-process state of the live connection
// layer: which agents are present, and which connections subscribe to which
// notification groups.
//
// Both registries are shared mutable state touched by many concurrently
// handled connections. All mutations go through mutex-guarded methods; raw
// maps are never exposed. Operations on a single agent or group key are
// linearizable; publishing to many groups takes no global lock.
//
// The package is deliberately transport-agnostic: a Conn is anything that can
// deliver an Event. The WebSocket adapter provides the production Conn; tests
// use in-memory fakes. All state is ephemeral and single-process — spreading
// the presence registry across processes would need an external broker and is
// out of scope.
package realtime
