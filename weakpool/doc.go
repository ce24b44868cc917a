// Package weakpool groups externally owned objects under caller supplied
// identifiers without keeping them alive.
//
// Every object is held through a weak pointer and registered with a runtime
// cleanup. When the garbage collector reclaims an object the cleanup pushes a
// token into the pool's reclamation queue; the next call on the pool drains
// that queue and drops the dead entry. There is no background goroutine: dead
// entries are only purged by the sweep that runs at the start of every public
// method.
//
// Reclamation follows the garbage collector, so it only happens for objects
// the runtime actually frees. Zero-sized values and small pointer-free values
// packed by the tiny allocator (an *int, a *bool) may never be freed, and
// their entries are never swept.
//
// Typical usage:
//
//	pool := weakpool.New[string, Session, Metadata]()
//	pool.AddDecorated("user-42", session, Metadata{Origin: "ws"})
//	for _, e := range pool.Get("user-42") {
//	    e.Object.Send(msg)
//	}
package weakpool
