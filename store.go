package scanboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jpalmerr/scanboard/internal/store"
)

const tracerName = "github.com/jpalmerr/scanboard"

// ErrReentrantDispatch is returned by [Store.Dispatch] under
// [ReentrancyReject] when an event arrives during a notification pass.
var ErrReentrantDispatch = errors.New("dispatch during notification pass")

// Store owns the canonical [State] and applies events to it.
//
// Every dispatch computes the next state with [Transition], replaces the
// current snapshot, and notifies every live listener in subscription order,
// whether or not the state changed. Deduplication is left to subscribers,
// see [Select].
//
// A Store is created with [New] and is safe for concurrent use. Dispatches
// are serialized: an event dispatched while a notification pass is in flight,
// from a listener or from another goroutine, is handled according to the
// [ReentrancyPolicy]. Listeners never observe a state older than one they
// have already seen.
//
// Example:
//
//	store, err := scanboard.New(scanboard.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	unsubscribe := store.Subscribe(func(s scanboard.State) {
//	    fmt.Println(s.Selection.IDs())
//	})
//	defer unsubscribe()
//
//	store.Dispatch(scanboard.ScanToggled{ID: "scan-1"})
type Store struct {
	id         string
	hub        *store.MemoryStore[State]
	logger     *slog.Logger
	metrics    *storeMetrics
	tracer     trace.Tracer
	reentrancy ReentrancyPolicy
	onWarning  []func(Warning)

	mu       sync.Mutex
	queue    []pendingEvent
	draining bool
}

type pendingEvent struct {
	ctx   context.Context
	event Event
}

// New creates a [Store] with the given options.
//
// Without [WithSeed] the store starts from the default state: an empty
// selection over the palette, one view bound to the first feature, and the
// default parameters merged with [WithParameters].
//
// Returns an error if any option is invalid.
func New(opts ...Option) (*Store, error) {
	cfg := &storeConfig{
		palette:    copySlots(DefaultPalette),
		reentrancy: ReentrancyQueue,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	features := DefaultFeatures()
	if cfg.features != nil {
		features = *cfg.features
	}

	var initial State
	if cfg.seed != nil {
		initial = *cfg.seed
		initial.Revision = 0
		initial.LastEvent = nil
	} else {
		s, err := NewState(cfg.palette, features)
		if err != nil {
			return nil, err
		}
		initial = s
	}
	for name, value := range cfg.parameters {
		initial.Parameters = initial.Parameters.With(name, value)
	}

	// default to slog.Default() if no logger provided
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	tracer := cfg.tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}

	st := &Store{
		id:         uuid.NewString(),
		logger:     logger,
		tracer:     tracer,
		reentrancy: cfg.reentrancy,
		onWarning:  cfg.onWarning,
	}

	if cfg.registerer != nil {
		m, err := registerStoreMetrics(cfg.registerer, cfg.constLabels)
		if err != nil {
			return nil, err
		}
		st.metrics = m
	}

	st.hub = store.NewMemoryStore(initial, st.listenerPanicked)
	for _, fn := range cfg.listeners {
		st.Subscribe(fn)
	}

	st.logger.Debug("state store created",
		"store_id", st.id,
		"capacity", initial.Selection.Capacity(),
		"features", initial.Views.Domain().Len(),
		"reentrancy", st.reentrancy.String(),
	)
	return st, nil
}

// ID returns the store's unique identifier, used in logs and traces.
func (s *Store) ID() string {
	return s.id
}

// Snapshot returns the current state.
//
// The returned value shares structure with the store but cannot be used to
// modify it; every accessor on [State] returns copies.
func (s *Store) Snapshot() State {
	return s.hub.Get()
}

// Subscribe registers fn to be called with the new state after every
// dispatch, in subscription order. It returns a function that removes the
// listener; calling it more than once is a no-op.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	remove := s.hub.Subscribe(fn)
	s.metrics.setListeners(s.hub.Len())

	return func() {
		remove()
		s.metrics.setListeners(s.hub.Len())
	}
}

// Listeners returns the number of live listeners.
func (s *Store) Listeners() int {
	return s.hub.Len()
}

// Dispatch applies e. It is shorthand for DispatchContext with
// context.Background().
func (s *Store) Dispatch(e Event) error {
	return s.DispatchContext(context.Background(), e)
}

// DispatchContext applies e and notifies every live listener before
// returning.
//
// If a notification pass is already in flight, e is queued and applied by
// the in-flight dispatch after the current pass, or rejected with
// [ErrReentrantDispatch] under [ReentrancyReject]. A queued event has not yet
// been applied when DispatchContext returns.
//
// ctx parents the dispatch span; dispatch never blocks on it. Events outside
// the vocabulary and rejected feature assignments are not errors: they leave
// the state unchanged and produce a [Warning].
func (s *Store) DispatchContext(ctx context.Context, e Event) error {
	if ctx == nil {
		ctx = context.Background()
	}

	s.mu.Lock()
	if s.draining {
		if s.reentrancy == ReentrancyReject {
			s.mu.Unlock()
			s.metrics.observeReentryRejected()
			s.logger.Warn("dispatch rejected during notification pass",
				"store_id", s.id,
				"kind", kindLabel(kindOf(e)),
			)
			return ErrReentrantDispatch
		}
		s.queue = append(s.queue, pendingEvent{ctx: ctx, event: e})
		s.mu.Unlock()
		s.metrics.observeQueued()
		s.logger.Debug("dispatch queued behind notification pass",
			"store_id", s.id,
			"kind", kindLabel(kindOf(e)),
		)
		return nil
	}
	s.draining = true
	s.queue = append(s.queue, pendingEvent{ctx: ctx, event: e})
	s.mu.Unlock()

	s.drain()
	return nil
}

// drain applies queued events in order until the queue is empty. The
// draining flag is cleared under the same lock that observes the empty
// queue, so no queued event is left behind.
func (s *Store) drain() {
	finished := false
	defer func() {
		if finished {
			return
		}
		s.mu.Lock()
		s.draining = false
		s.queue = nil
		s.mu.Unlock()
	}()

	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.draining = false
			s.mu.Unlock()
			finished = true
			return
		}
		p := s.queue[0]
		s.queue[0] = pendingEvent{}
		s.queue = s.queue[1:]
		s.mu.Unlock()

		s.apply(p.ctx, p.event)
	}
}

// apply runs one transition and notification pass.
func (s *Store) apply(ctx context.Context, e Event) {
	start := time.Now()
	kind := kindOf(e)

	_, span := s.tracer.Start(ctx, "scanboard.dispatch",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("scanboard.store_id", s.id),
			attribute.String("scanboard.event_kind", kindLabel(kind)),
		),
	)
	defer span.End()

	current := s.hub.Get()
	next, outcome := transition(current, e)
	next.Revision = current.Revision + 1
	next.LastEvent = e

	var warning *Warning
	if outcome != OutcomeApplied {
		warning = &Warning{
			StoreID: s.id,
			Kind:    kind,
			Event:   e,
			Outcome: outcome,
			Reason:  warningReason(current, e, outcome),
		}
	}

	s.hub.Publish(next)

	span.SetAttributes(
		attribute.String("scanboard.outcome", outcome.String()),
		attribute.Int64("scanboard.revision", int64(next.Revision)),
		attribute.Int("scanboard.listeners", s.hub.Len()),
	)
	if warning != nil {
		span.RecordError(warning)
		span.SetStatus(codes.Error, warning.Error())
		s.warn(*warning)
	} else {
		span.SetStatus(codes.Ok, "")
	}

	s.metrics.observeDispatch(kind, outcome, time.Since(start))
	s.logger.Debug("event dispatched",
		"store_id", s.id,
		"kind", kindLabel(kind),
		"outcome", outcome.String(),
		"revision", next.Revision,
	)
}

// warn logs w and passes it to every warning handler.
func (s *Store) warn(w Warning) {
	s.logger.Warn("event not applied",
		"store_id", s.id,
		"kind", kindLabel(w.Kind),
		"outcome", w.Outcome.String(),
		"reason", w.Reason,
	)
	for _, fn := range s.onWarning {
		s.invokeWarningSafe(fn, w)
	}
}

// invokeWarningSafe calls a warning handler with panic recovery.
func (s *Store) invokeWarningSafe(fn func(Warning), w Warning) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("warning handler panicked",
				"store_id", s.id,
				"panic", fmt.Sprintf("%v", r),
			)
		}
	}()
	fn(w)
}

// listenerPanicked logs a recovered listener panic with a correlation ID.
func (s *Store) listenerPanicked(r any) {
	s.metrics.observeListenerPanic()
	s.logger.Error("listener panic",
		"store_id", s.id,
		"correlation_id", uuid.NewString(),
		"panic", fmt.Sprintf("%v", r),
		"stack", string(debug.Stack()),
	)
}
