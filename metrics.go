package scanboard

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "scanboard"

// storeMetrics holds the Prometheus collectors of one [Store].
//
// A nil *storeMetrics is valid and records nothing, so stores created
// without [WithMetrics] pay no cost.
type storeMetrics struct {
	dispatched      *prometheus.CounterVec
	dispatchSeconds prometheus.Histogram
	queued          prometheus.Counter
	reentryRejected prometheus.Counter
	notifications   prometheus.Counter
	listenerPanics  prometheus.Counter
	listeners       prometheus.Gauge
	subscription    *prometheus.CounterVec
}

// registerStoreMetrics registers the store collectors with reg, turning a
// registration panic (such as a duplicate collector) into an error.
func registerStoreMetrics(reg prometheus.Registerer, constLabels prometheus.Labels) (m *storeMetrics, err error) {
	defer func() {
		if r := recover(); r != nil {
			m = nil
			err = fmt.Errorf("register metrics: %v", r)
		}
	}()
	return newStoreMetrics(reg, constLabels), nil
}

// newStoreMetrics registers the store collectors with reg.
func newStoreMetrics(reg prometheus.Registerer, constLabels prometheus.Labels) *storeMetrics {
	factory := promauto.With(reg)

	return &storeMetrics{
		dispatched: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   metricsNamespace,
			Name:        "events_dispatched_total",
			Help:        "Total number of events applied, by kind and outcome",
			ConstLabels: constLabels,
		}, []string{"kind", "outcome"}),

		dispatchSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   metricsNamespace,
			Name:        "dispatch_duration_seconds",
			Help:        "Time to apply one event and notify every listener",
			ConstLabels: constLabels,
			Buckets:     []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05, .1},
		}),

		queued: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   metricsNamespace,
			Name:        "events_queued_total",
			Help:        "Events queued because a notification pass was in flight",
			ConstLabels: constLabels,
		}),

		reentryRejected: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   metricsNamespace,
			Name:        "events_reentry_rejected_total",
			Help:        "Events rejected because a notification pass was in flight",
			ConstLabels: constLabels,
		}),

		notifications: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   metricsNamespace,
			Name:        "notifications_total",
			Help:        "Total number of listener notification passes",
			ConstLabels: constLabels,
		}),

		listenerPanics: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   metricsNamespace,
			Name:        "listener_panics_total",
			Help:        "Listener invocations that panicked and were recovered",
			ConstLabels: constLabels,
		}),

		listeners: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   metricsNamespace,
			Name:        "listeners",
			Help:        "Current number of live listeners",
			ConstLabels: constLabels,
		}),

		subscription: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   metricsNamespace,
			Name:        "subscription_evaluations_total",
			Help:        "Selector evaluations on notification, by result (signaled or skipped)",
			ConstLabels: constLabels,
		}, []string{"result"}),
	}
}

func (m *storeMetrics) observeDispatch(kind EventKind, outcome Outcome, d time.Duration) {
	if m == nil {
		return
	}
	m.dispatched.WithLabelValues(metricKind(kind), outcome.String()).Inc()
	m.dispatchSeconds.Observe(d.Seconds())
	m.notifications.Inc()
}

func (m *storeMetrics) observeQueued() {
	if m == nil {
		return
	}
	m.queued.Inc()
}

func (m *storeMetrics) observeReentryRejected() {
	if m == nil {
		return
	}
	m.reentryRejected.Inc()
}

func (m *storeMetrics) observeListenerPanic() {
	if m == nil {
		return
	}
	m.listenerPanics.Inc()
}

func (m *storeMetrics) setListeners(n int) {
	if m == nil {
		return
	}
	m.listeners.Set(float64(n))
}

func (m *storeMetrics) observeSubscription(signaled bool) {
	if m == nil {
		return
	}
	result := "skipped"
	if signaled {
		result = "signaled"
	}
	m.subscription.WithLabelValues(result).Inc()
}

// metricKind bounds the kind label to the event vocabulary.
func metricKind(k EventKind) string {
	if !k.Known() {
		return "unknown"
	}
	return k.String()
}
