package scanboard

import (
	"slices"
	"testing"
)

type unknownEvent struct{}

func (unknownEvent) Kind() EventKind { return "SCAN_DELETED" }

func TestTransition(t *testing.T) {
	seed := DefaultState()

	tests := []struct {
		name  string
		event Event
		check func(t *testing.T, s State)
	}{
		{
			name:  "scan toggled selects",
			event: ScanToggled{ID: "a"},
			check: func(t *testing.T, s State) {
				if !s.Selection.Has("a") {
					t.Error("Selection.Has(a) = false, want true")
				}
			},
		},
		{
			name:  "feature selected rebinds view",
			event: FeatureSelected{View: "1", Feature: "volume"},
			check: func(t *testing.T, s State) {
				if f, _ := s.Views.Get("1"); f != "volume" {
					t.Errorf("Views.Get(1) = %v, want %v", f, "volume")
				}
			},
		},
		{
			name:  "feature added issues next id",
			event: FeatureAdded{},
			check: func(t *testing.T, s State) {
				if ids := s.Views.IDs(); !slices.Equal(ids, []ViewID{"1", "2"}) {
					t.Errorf("Views.IDs() = %v, want [1 2]", ids)
				}
			},
		},
		{
			name:  "feature removed deletes binding",
			event: FeatureRemoved{View: "1"},
			check: func(t *testing.T, s State) {
				if s.Views.Len() != 0 {
					t.Errorf("Views.Len() = %v, want 0", s.Views.Len())
				}
				if s.Views.NextID() != 1 {
					t.Errorf("Views.NextID() = %v, want 1", s.Views.NextID())
				}
			},
		},
		{
			name:  "parameter changed merges",
			event: ParameterChanged{Parameter: ParamLeftBiomarker, Value: "age"},
			check: func(t *testing.T, s State) {
				if v, _ := s.Parameters.Get(ParamLeftBiomarker); v != "age" {
					t.Errorf("Parameters.Get(leftBiomarker) = %v, want %v", v, "age")
				}
				if _, ok := s.Parameters.Get(ParamBottomBiomarker); !ok {
					t.Error("merge dropped bottomBiomarker")
				}
			},
		},
		{
			name:  "scan focused leaves persisted state alone",
			event: ScanFocused{ID: "a"},
			check: func(t *testing.T, s State) {
				if !s.Equal(seed) {
					t.Error("ScanFocused changed persisted state")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := Transition(seed, tt.event)
			tt.check(t, next)

			if !seed.Equal(DefaultState()) {
				t.Error("Transition() mutated its input")
			}
		})
	}
}

func TestTransition_UnknownEventIsNoop(t *testing.T) {
	seed := DefaultState()

	for _, e := range []Event{unknownEvent{}, nil, &ScanToggled{ID: "ptr"}} {
		next, outcome := transition(seed, e)
		if outcome != OutcomeIgnored {
			t.Errorf("transition(%T) outcome = %v, want ignored", e, outcome)
		}
		if !next.Equal(seed) {
			t.Errorf("transition(%T) changed state", e)
		}
	}
}

func TestTransition_OutOfDomainFeatureIsRejected(t *testing.T) {
	seed := DefaultState()

	next, outcome := transition(seed, FeatureSelected{View: "1", Feature: "bogus"})

	if outcome != OutcomeRejected {
		t.Errorf("outcome = %v, want rejected", outcome)
	}
	if !next.Equal(seed) {
		t.Error("rejected event changed state")
	}
}

func TestState_FocusedScan(t *testing.T) {
	s := DefaultState()
	if _, ok := s.FocusedScan(); ok {
		t.Error("FocusedScan() ok = true on seed, want false")
	}

	s.LastEvent = ScanFocused{ID: "a"}
	if id, ok := s.FocusedScan(); !ok || id != "a" {
		t.Errorf("FocusedScan() = %v, %v, want a, true", id, ok)
	}

	s.LastEvent = ScanToggled{ID: "b"}
	if _, ok := s.FocusedScan(); ok {
		t.Error("FocusedScan() ok = true after another event, want false")
	}
}

func TestTransition_UnpersistableValuesAreRejected(t *testing.T) {
	seed := DefaultState()

	tests := []struct {
		name  string
		event Event
	}{
		{"empty scan id", ScanToggled{ID: ""}},
		{"invalid UTF-8 scan id", ScanToggled{ID: "scan-\xff"}},
		{"empty parameter name", ParameterChanged{Parameter: "", Value: "age"}},
		{"invalid UTF-8 parameter name", ParameterChanged{Parameter: "left\xff", Value: "age"}},
		{"invalid UTF-8 parameter value", ParameterChanged{Parameter: ParamLeftBiomarker, Value: "a\xffe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, outcome := transition(seed, tt.event)
			if outcome != OutcomeRejected {
				t.Errorf("outcome = %v, want rejected", outcome)
			}
			if !next.Equal(seed) {
				t.Error("rejected event changed state")
			}
			if reason := warningReason(seed, tt.event, outcome); reason == "event was not applied" {
				t.Errorf("warningReason() = %q, want a specific reason", reason)
			}
		})
	}
}

func TestKindOf_NilPointerEvent(t *testing.T) {
	if got := kindOf((*ScanToggled)(nil)); got != "" {
		t.Errorf("kindOf(nil pointer) = %q, want empty", got)
	}
	if got := kindOf(&ScanToggled{ID: "a"}); got != KindScanToggled {
		t.Errorf("kindOf(pointer) = %q, want %q", got, KindScanToggled)
	}
}
