package scanboard

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
)

// ReentrancyPolicy decides what happens to an event dispatched while a
// notification pass is in flight.
type ReentrancyPolicy int

const (
	// ReentrancyQueue queues the event. It is applied by the in-flight
	// dispatch once the current pass has finished, so every listener sees
	// every state in dispatch order. This is the default.
	ReentrancyQueue ReentrancyPolicy = iota

	// ReentrancyReject refuses the event with [ErrReentrantDispatch] and
	// leaves the state untouched.
	ReentrancyReject
)

// String returns the string representation of the policy.
func (p ReentrancyPolicy) String() string {
	switch p {
	case ReentrancyQueue:
		return "queue"
	case ReentrancyReject:
		return "reject"
	default:
		return fmt.Sprintf("ReentrancyPolicy(%d)", int(p))
	}
}

// ParseReentrancyPolicy parses "queue" or "reject".
func ParseReentrancyPolicy(s string) (ReentrancyPolicy, error) {
	switch s {
	case "", "queue":
		return ReentrancyQueue, nil
	case "reject":
		return ReentrancyReject, nil
	default:
		return 0, fmt.Errorf("unknown reentrancy policy %q (want queue or reject)", s)
	}
}

// storeConfig holds mutable state during Store construction.
type storeConfig struct {
	seed        *State
	palette     []Slot
	features    *FeatureSet
	parameters  map[string]string
	logger      *slog.Logger
	reentrancy  ReentrancyPolicy
	listeners   []func(State)
	onWarning   []func(Warning)
	registerer  prometheus.Registerer
	constLabels prometheus.Labels
	tracer      trace.Tracer
}

// Option is a function that configures a [Store] during construction.
//
// Option implements the functional options pattern. Options return an error
// if validation fails, and [New] fails fast on the first error.
type Option func(*storeConfig) error

// WithSeed starts the store from s instead of the default state, typically
// a state decoded from a URL. The seed's palette and feature domain win over
// [WithPalette] and [WithFeatures].
//
// Returns an error if the seed's selection pool violates its invariants.
func WithSeed(s State) Option {
	return func(cfg *storeConfig) error {
		if err := s.Selection.Validate(); err != nil {
			return fmt.Errorf("invalid seed: %w", err)
		}
		if s.Selection.Capacity() == 0 {
			return errors.New("invalid seed: selection pool has no slots")
		}
		seed := s
		cfg.seed = &seed
		return nil
	}
}

// WithPalette sets the slots selected scans are coloured with. The palette
// length is the number of scans that can be selected at once.
// Defaults to [DefaultPalette].
//
// Returns an error if the palette is empty or repeats a slot.
func WithPalette(slots ...Slot) Option {
	return func(cfg *storeConfig) error {
		if err := validatePalette(slots); err != nil {
			return err
		}
		cfg.palette = copySlots(slots)
		return nil
	}
}

// WithFeatures sets the feature domain views can be bound to.
// Defaults to [DefaultFeatures].
//
// Returns an error if the set is empty.
func WithFeatures(fs FeatureSet) Option {
	return func(cfg *storeConfig) error {
		if fs.Len() == 0 {
			return errors.New("feature set cannot be empty")
		}
		cfg.features = &fs
		return nil
	}
}

// WithParameters merges initial plot parameters over the defaults.
//
// Example:
//
//	store, err := scanboard.New(
//	    scanboard.WithParameters(map[string]string{"leftBiomarker": "age"}),
//	)
//
// Returns an error if a parameter name is empty.
func WithParameters(params map[string]string) Option {
	return func(cfg *storeConfig) error {
		for name := range params {
			if name == "" {
				return errors.New("parameter name cannot be empty")
			}
		}
		if cfg.parameters == nil {
			cfg.parameters = make(map[string]string, len(params))
		}
		for k, v := range params {
			cfg.parameters[k] = v
		}
		return nil
	}
}

// WithLogger sets the structured logger used by the store.
// Defaults to slog.Default() if not specified.
//
// Returns an error if logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *storeConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithReentrancy sets how events dispatched during a notification pass are
// handled. Defaults to [ReentrancyQueue].
//
// Returns an error for an unknown policy.
func WithReentrancy(p ReentrancyPolicy) Option {
	return func(cfg *storeConfig) error {
		if p != ReentrancyQueue && p != ReentrancyReject {
			return fmt.Errorf("unknown reentrancy policy: %d", int(p))
		}
		cfg.reentrancy = p
		return nil
	}
}

// WithListener subscribes fn before the store is returned, so it observes
// every dispatch from the first one. Can be called multiple times.
//
// Returns an error if fn is nil.
func WithListener(fn func(State)) Option {
	return func(cfg *storeConfig) error {
		if fn == nil {
			return errors.New("listener cannot be nil")
		}
		cfg.listeners = append(cfg.listeners, fn)
		return nil
	}
}

// WithWarningHandler registers fn to receive a [Warning] whenever an event
// is ignored or rejected. Dispatch itself still returns nil for such events.
// Can be called multiple times.
//
// Returns an error if fn is nil.
func WithWarningHandler(fn func(Warning)) Option {
	return func(cfg *storeConfig) error {
		if fn == nil {
			return errors.New("warning handler cannot be nil")
		}
		cfg.onWarning = append(cfg.onWarning, fn)
		return nil
	}
}

// WithMetrics registers the store's Prometheus collectors with reg.
// constLabels are attached to every collector and may be nil; stores sharing
// a registry must use distinct label values.
//
// Returns an error if reg is nil.
func WithMetrics(reg prometheus.Registerer, constLabels prometheus.Labels) Option {
	return func(cfg *storeConfig) error {
		if reg == nil {
			return errors.New("metrics registerer cannot be nil")
		}
		cfg.registerer = reg
		cfg.constLabels = constLabels
		return nil
	}
}

// WithTracer sets the tracer used to record one span per dispatch.
// Defaults to a tracer from the global OpenTelemetry provider.
//
// Returns an error if tracer is nil.
func WithTracer(tracer trace.Tracer) Option {
	return func(cfg *storeConfig) error {
		if tracer == nil {
			return errors.New("tracer cannot be nil")
		}
		cfg.tracer = tracer
		return nil
	}
}
