package store

import (
	"sync"
	"sync/atomic"
)

// MemoryStore is an in-memory implementation of [Store].
//
// Listener panics are recovered and reported to the panic handler passed to
// [NewMemoryStore]; a panicking listener does not stop the pass.
type MemoryStore[S any] struct {
	mu      sync.RWMutex
	current S

	subMu       sync.Mutex
	subscribers []*subscriber[S]

	onPanic func(recovered any)
}

type subscriber[S any] struct {
	fn   Listener[S]
	live atomic.Bool
}

// NewMemoryStore creates a store holding initial.
//
// onPanic is called with the recovered value when a listener panics. A nil
// onPanic swallows the panic.
func NewMemoryStore[S any](initial S, onPanic func(recovered any)) *MemoryStore[S] {
	return &MemoryStore[S]{
		current: initial,
		onPanic: onPanic,
	}
}

// Get returns the current snapshot.
func (m *MemoryStore[S]) Get() S {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Publish replaces the current snapshot and notifies live listeners in
// subscription order.
func (m *MemoryStore[S]) Publish(s S) {
	m.mu.Lock()
	m.current = s
	m.mu.Unlock()

	m.notifySubscribers(s)
}

// Subscribe appends l to the listener list.
//
// The returned unsubscribe function marks the listener dead and removes it.
// Calling it again is a no-op.
func (m *MemoryStore[S]) Subscribe(l Listener[S]) func() {
	sub := &subscriber[S]{fn: l}
	sub.live.Store(true)

	m.subMu.Lock()
	m.subscribers = append(m.subscribers, sub)
	m.subMu.Unlock()

	return func() {
		if !sub.live.CompareAndSwap(true, false) {
			return
		}
		m.subMu.Lock()
		defer m.subMu.Unlock()
		for i, s := range m.subscribers {
			if s == sub {
				m.subscribers = append(m.subscribers[:i:i], m.subscribers[i+1:]...)
				break
			}
		}
	}
}

// Len returns the number of live listeners.
func (m *MemoryStore[S]) Len() int {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	return len(m.subscribers)
}

// notifySubscribers calls each listener registered when the pass started,
// skipping any that were unsubscribed since.
func (m *MemoryStore[S]) notifySubscribers(s S) {
	m.subMu.Lock()
	subs := make([]*subscriber[S], len(m.subscribers))
	copy(subs, m.subscribers)
	m.subMu.Unlock()

	for _, sub := range subs {
		if !sub.live.Load() {
			continue
		}
		m.invokeSafe(sub.fn, s)
	}
}

// invokeSafe calls a listener with panic recovery.
func (m *MemoryStore[S]) invokeSafe(fn Listener[S], s S) {
	defer func() {
		if r := recover(); r != nil && m.onPanic != nil {
			m.onPanic(r)
		}
	}()
	fn(s)
}
