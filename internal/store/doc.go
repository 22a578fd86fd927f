// Package store provides the in-memory snapshot holder and ordered pub/sub
// used by the scanboard state store.
//
// The main components are:
//
//   - [Store]: Interface defining snapshot and subscription operations
//   - [MemoryStore]: In-memory implementation of Store with ordered fan-out
//
// Unlike a channel-based broadcaster, listeners are plain functions invoked
// synchronously, in subscription order, on the publishing goroutine. A
// publish pass iterates over a copy of the subscriber list taken when the
// pass starts, and checks each subscriber's liveness right before calling
// it: a listener unsubscribed during a pass is not called again, and a
// listener subscribed during a pass first hears about the next one.
//
// Users of the scanboard library should not need to interact with this
// package directly.
package store
