package scanboard

import (
	"errors"
	"sync"
	"sync/atomic"
)

// Host is the consumer a [Subscription] belongs to, such as a UI widget.
// RequestUpdate is called when the subscription's projection changes.
type Host interface {
	RequestUpdate()
}

// HostFunc adapts a plain function to the [Host] interface.
type HostFunc func()

// RequestUpdate calls f.
func (f HostFunc) RequestUpdate() {
	f()
}

// Subscription binds a host to a projection of the store's state.
//
// On creation the subscription computes the selector over the current
// snapshot without signalling the host. After each dispatch it recomputes
// the projection and signals the host only if equals reports the new value
// differs from the last one; the stored value is replaced only in that case.
//
// A subscription must not outlive its host. Call [Subscription.Dispose] when
// the host goes away; disposing twice is a no-op.
type Subscription[T any] struct {
	store    *Store
	selector func(State) T
	equals   func(a, b T) bool
	host     Host

	mu   sync.Mutex
	last T

	live        atomic.Bool
	unsubscribe func()
	disposeOnce sync.Once
}

// Select subscribes host to selector using == as the equality.
//
// Use [SelectFunc] for projections that are slices, maps or other values
// that need a structural comparison.
//
// Example:
//
//	sub, err := scanboard.Select(store, scanboard.ViewFeature("1"), widget)
//	if err != nil {
//	    return err
//	}
//	defer sub.Dispose()
func Select[T comparable](st *Store, selector func(State) T, host Host) (*Subscription[T], error) {
	return SelectFunc(st, selector, func(a, b T) bool { return a == b }, host)
}

// SelectFunc subscribes host to selector using equals to detect changes.
//
// equals must be an equivalence relation. Helpers such as [SameMembers],
// [SlicesEqual] and [MapsEqual] cover the common projections. A nil host is
// allowed for callers that only read [Subscription.Value].
//
// Returns an error if st, selector or equals is nil.
func SelectFunc[T any](st *Store, selector func(State) T, equals func(a, b T) bool, host Host) (*Subscription[T], error) {
	if st == nil {
		return nil, errors.New("store cannot be nil")
	}
	if selector == nil {
		return nil, errors.New("selector cannot be nil")
	}
	if equals == nil {
		return nil, errors.New("equals cannot be nil")
	}

	sub := &Subscription[T]{
		store:    st,
		selector: selector,
		equals:   equals,
		host:     host,
	}
	sub.last = selector(st.Snapshot())
	sub.live.Store(true)
	sub.unsubscribe = st.Subscribe(sub.notify)
	return sub, nil
}

// Value returns the most recent projection.
func (s *Subscription[T]) Value() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Live reports whether the subscription is still attached to its store.
func (s *Subscription[T]) Live() bool {
	return s.live.Load()
}

// Dispose detaches the subscription from the store. After Dispose returns
// the host is never signalled again. Calling Dispose more than once is safe.
func (s *Subscription[T]) Dispose() {
	s.disposeOnce.Do(func() {
		s.live.Store(false)
		s.unsubscribe()
	})
}

// notify recomputes the projection for a new state.
func (s *Subscription[T]) notify(state State) {
	if !s.live.Load() {
		return
	}
	candidate := s.selector(state)

	s.mu.Lock()
	if s.equals(s.last, candidate) {
		s.mu.Unlock()
		s.store.metrics.observeSubscription(false)
		return
	}
	s.last = candidate
	s.mu.Unlock()

	s.store.metrics.observeSubscription(true)
	if s.host != nil {
		s.host.RequestUpdate()
	}
}
