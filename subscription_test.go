package scanboard

import (
	"testing"
)

type countingHost struct {
	updates int
}

func (h *countingHost) RequestUpdate() { h.updates++ }

func TestSelect_CreationDoesNotSignal(t *testing.T) {
	st := newTestStore(t)
	host := &countingHost{}

	sub, err := Select(st, ViewFeature("1"), host)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	defer sub.Dispose()

	if host.updates != 0 {
		t.Errorf("host.updates = %v, want 0", host.updates)
	}
	if sub.Value() != "thickness" {
		t.Errorf("Value() = %v, want %v", sub.Value(), "thickness")
	}
	if !sub.Live() {
		t.Error("Live() = false, want true")
	}
}

func TestSelect_SignalsOnlyWhenProjectionChanges(t *testing.T) {
	st := newTestStore(t)
	host := &countingHost{}

	sub, err := Select(st, ViewFeature("1"), host)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	defer sub.Dispose()

	_ = st.Dispatch(ScanToggled{ID: "a"})                             // unrelated
	_ = st.Dispatch(FeatureSelected{View: "1", Feature: "thickness"}) // same value
	if host.updates != 0 {
		t.Errorf("host.updates = %v after no-op changes, want 0", host.updates)
	}

	_ = st.Dispatch(FeatureSelected{View: "1", Feature: "shape"})
	if host.updates != 1 {
		t.Errorf("host.updates = %v, want 1", host.updates)
	}
	if sub.Value() != "shape" {
		t.Errorf("Value() = %v, want %v", sub.Value(), "shape")
	}
}

func TestSelectFunc_StructuralEquality(t *testing.T) {
	st := newTestStore(t, WithPalette("C1", "C2", "C3"))
	host := &countingHost{}

	sub, err := SelectFunc(st, SelectedScanIDs, SameMembers[ScanID], host)
	if err != nil {
		t.Fatalf("SelectFunc() error = %v", err)
	}
	defer sub.Dispose()

	_ = st.Dispatch(ScanToggled{ID: "a"})
	_ = st.Dispatch(ParameterChanged{Parameter: ParamLeftBiomarker, Value: "age"})
	_ = st.Dispatch(ScanToggled{ID: "b"})

	// every dispatch produces a fresh slice, only membership changes signal
	if host.updates != 2 {
		t.Errorf("host.updates = %v, want 2", host.updates)
	}
	if got := sub.Value(); !SameMembers(got, []ScanID{"a", "b"}) {
		t.Errorf("Value() = %v, want [b a]", got)
	}
}

func TestSelectFunc_NeverEqualAlwaysSignals(t *testing.T) {
	st := newTestStore(t)
	host := &countingHost{}

	sub, err := SelectFunc(st, SelectionSize, func(a, b int) bool { return false }, host)
	if err != nil {
		t.Fatalf("SelectFunc() error = %v", err)
	}
	defer sub.Dispose()

	_ = st.Dispatch(unknownEvent{})
	_ = st.Dispatch(unknownEvent{})

	if host.updates != 2 {
		t.Errorf("host.updates = %v, want 2", host.updates)
	}
}

func TestSubscription_DisposeTwice(t *testing.T) {
	st := newTestStore(t)
	host := &countingHost{}

	sub, err := Select(st, FocusedScan, host)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	sub.Dispose()
	sub.Dispose()

	if sub.Live() {
		t.Error("Live() = true after Dispose(), want false")
	}
	if st.Listeners() != 0 {
		t.Errorf("Listeners() = %v, want 0", st.Listeners())
	}

	_ = st.Dispatch(ScanFocused{ID: "a"})
	if host.updates != 0 {
		t.Errorf("host.updates = %v after Dispose(), want 0", host.updates)
	}
}

func TestSubscription_FocusIsTransient(t *testing.T) {
	st := newTestStore(t)
	host := &countingHost{}

	sub, err := Select(st, FocusedScan, host)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	defer sub.Dispose()

	_ = st.Dispatch(ScanFocused{ID: "a"})
	if sub.Value() != "a" {
		t.Errorf("Value() = %v, want %v", sub.Value(), "a")
	}

	_ = st.Dispatch(ScanToggled{ID: "a"})
	if sub.Value() != "" {
		t.Errorf("Value() = %v after another event, want empty", sub.Value())
	}
	if host.updates != 2 {
		t.Errorf("host.updates = %v, want 2", host.updates)
	}
}

func TestSubscription_DisposeFromHostDuringPass(t *testing.T) {
	st := newTestStore(t)

	var sub *Subscription[Feature]
	calls := 0
	host := HostFunc(func() {
		calls++
		sub.Dispose()
	})

	var err error
	sub, err = Select(st, ViewFeature("1"), host)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	_ = st.Dispatch(FeatureSelected{View: "1", Feature: "shape"})
	_ = st.Dispatch(FeatureSelected{View: "1", Feature: "volume"})

	if calls != 1 {
		t.Errorf("host called %d times, want 1", calls)
	}
}

func TestSelectFunc_InvalidArguments(t *testing.T) {
	st := newTestStore(t)

	if _, err := SelectFunc[int](nil, SelectionSize, func(a, b int) bool { return a == b }, nil); err == nil {
		t.Error("SelectFunc() expected error for nil store, got nil")
	}
	if _, err := SelectFunc[int](st, nil, func(a, b int) bool { return a == b }, nil); err == nil {
		t.Error("SelectFunc() expected error for nil selector, got nil")
	}
	if _, err := SelectFunc(st, SelectionSize, nil, nil); err == nil {
		t.Error("SelectFunc() expected error for nil equals, got nil")
	}
}

func TestSelect_NilHost(t *testing.T) {
	st := newTestStore(t)

	sub, err := Select(st, SelectionSize, nil)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	defer sub.Dispose()

	_ = st.Dispatch(ScanToggled{ID: "a"})
	if sub.Value() != 1 {
		t.Errorf("Value() = %v, want 1", sub.Value())
	}
}

func TestEqualityHelpers(t *testing.T) {
	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"same members reordered", SameMembers([]string{"a", "b"}, []string{"b", "a"}), true},
		{"same members different length", SameMembers([]string{"a"}, []string{"a", "a"}), false},
		{"same members repeated", SameMembers([]string{"a", "a"}, []string{"a", "b"}), false},
		{"same members empty", SameMembers([]string{}, nil), true},
		{"slices equal", SlicesEqual([]int{1, 2}, []int{1, 2}), true},
		{"slices reordered", SlicesEqual([]int{1, 2}, []int{2, 1}), false},
		{"maps equal", MapsEqual(map[string]string{"a": "1"}, map[string]string{"a": "1"}), true},
		{"maps differ", MapsEqual(map[string]string{"a": "1"}, map[string]string{"a": "2"}), false},
		{"maps key sets differ", MapsEqual(map[string]string{"a": "1"}, map[string]string{"b": "1"}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}
