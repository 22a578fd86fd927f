package store

// Listener receives every published snapshot.
type Listener[S any] func(S)

// Store defines the interface for holding a snapshot and publishing changes.
//
// Store implementations must be safe for concurrent access. Publishing is
// synchronous: Publish returns after every live listener has been called.
type Store[S any] interface {
	// Get returns the current snapshot.
	Get() S

	// Publish replaces the current snapshot and calls every live listener
	// with it, in subscription order.
	Publish(s S)

	// Subscribe registers a listener and returns a function that removes it.
	// The returned function is safe to call more than once.
	Subscribe(l Listener[S]) (unsubscribe func())

	// Len returns the number of live listeners.
	Len() int
}
