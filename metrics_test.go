package scanboard

import (
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Collector) float64 {
	t.Helper()
	ch := make(chan prometheus.Metric, 1)
	c.Collect(ch)
	var m dto.Metric
	if err := (<-ch).Write(&m); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if m.Counter != nil {
		return m.Counter.GetValue()
	}
	return m.Gauge.GetValue()
}

func TestWithMetrics_RecordsDispatches(t *testing.T) {
	reg := prometheus.NewRegistry()
	st := newTestStore(t, WithMetrics(reg, nil))
	m := st.metrics

	sub, err := Select(st, ViewFeature("1"), nil)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	_ = st.Dispatch(ScanToggled{ID: "a"})
	_ = st.Dispatch(FeatureSelected{View: "1", Feature: "shape"})
	_ = st.Dispatch(FeatureSelected{View: "1", Feature: "bogus"})

	if got := counterValue(t, m.dispatched.WithLabelValues("SCAN_TOGGLED", "applied")); got != 1 {
		t.Errorf("applied SCAN_TOGGLED = %v, want 1", got)
	}
	if got := counterValue(t, m.dispatched.WithLabelValues("FEATURE_SELECTED", "rejected")); got != 1 {
		t.Errorf("rejected FEATURE_SELECTED = %v, want 1", got)
	}
	if got := counterValue(t, m.notifications); got != 3 {
		t.Errorf("notifications = %v, want 3", got)
	}
	if got := counterValue(t, m.subscription.WithLabelValues("signaled")); got != 1 {
		t.Errorf("signaled = %v, want 1", got)
	}
	if got := counterValue(t, m.subscription.WithLabelValues("skipped")); got != 2 {
		t.Errorf("skipped = %v, want 2", got)
	}
	if got := counterValue(t, m.listeners); got != 1 {
		t.Errorf("listeners = %v, want 1", got)
	}

	sub.Dispose()
	if got := counterValue(t, m.listeners); got != 0 {
		t.Errorf("listeners after Dispose() = %v, want 0", got)
	}
}

func TestWithMetrics_QueuedAndRejected(t *testing.T) {
	reg := prometheus.NewRegistry()
	queueing := newTestStore(t, WithMetrics(reg, prometheus.Labels{"store": "queue"}))
	rejecting := newTestStore(t,
		WithMetrics(reg, prometheus.Labels{"store": "reject"}),
		WithReentrancy(ReentrancyReject),
	)

	for _, st := range []*Store{queueing, rejecting} {
		st := st
		st.Subscribe(func(s State) {
			if s.Revision == 1 {
				_ = st.Dispatch(FeatureAdded{})
			}
		})
		_ = st.Dispatch(FeatureAdded{})
	}

	if got := counterValue(t, queueing.metrics.queued); got != 1 {
		t.Errorf("queued = %v, want 1", got)
	}
	if got := counterValue(t, rejecting.metrics.reentryRejected); got != 1 {
		t.Errorf("reentry rejected = %v, want 1", got)
	}
}

func TestWithMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	newTestStore(t, WithMetrics(reg, nil))

	if _, err := New(WithMetrics(reg, nil)); err == nil {
		t.Error("New() expected error for duplicate collectors, got nil")
	}
}

func TestStoreMetrics_NilIsNoop(t *testing.T) {
	var m *storeMetrics

	m.observeDispatch(KindFeatureAdded, OutcomeApplied, 0)
	m.observeQueued()
	m.observeReentryRejected()
	m.observeListenerPanic()
	m.setListeners(3)
	m.observeSubscription(true)
}

func TestWithMetrics_UnknownKindsShareOneLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	st := newTestStore(t,
		WithMetrics(reg, nil),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	_ = st.Dispatch(unknownEvent{})
	_ = st.Dispatch(nil)
	_ = st.Dispatch((*ScanToggled)(nil))

	if got := counterValue(t, st.metrics.dispatched.WithLabelValues("unknown", "ignored")); got != 3 {
		t.Errorf("ignored unknown = %v, want 3", got)
	}
	ch := make(chan prometheus.Metric, 8)
	st.metrics.dispatched.Collect(ch)
	close(ch)
	if got := len(ch); got != 1 {
		t.Errorf("dispatch series = %d, want 1", got)
	}
}
