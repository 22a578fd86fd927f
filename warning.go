package scanboard

import (
	"fmt"
	"reflect"
	"unicode/utf8"
)

// Warning describes an event the store accepted without applying.
//
// Dispatching such an event is not an error: the state is returned
// unchanged and listeners are still notified. Warnings are logged and passed
// to handlers registered with [WithWarningHandler].
type Warning struct {
	StoreID string
	Kind    EventKind
	Event   Event
	Outcome Outcome
	Reason  string
}

// Error implements the error interface so warnings can be recorded on spans.
func (w Warning) Error() string {
	return fmt.Sprintf("%s event %s: %s", w.Outcome, kindLabel(w.Kind), w.Reason)
}

// warningReason explains why transition did not apply e to s.
func warningReason(s State, e Event, outcome Outcome) string {
	if outcome == OutcomeIgnored {
		if e == nil {
			return "nil event"
		}
		return fmt.Sprintf("unrecognized event type %T", e)
	}
	switch ev := e.(type) {
	case ScanToggled:
		if ev.ID == "" {
			return "scan id is empty"
		}
		return fmt.Sprintf("scan id %q is not valid UTF-8", ev.ID)
	case ParameterChanged:
		if ev.Parameter == "" {
			return "parameter name is empty"
		}
		if !utf8.ValidString(ev.Parameter) {
			return fmt.Sprintf("parameter name %q is not valid UTF-8", ev.Parameter)
		}
		return fmt.Sprintf("value of parameter %q is not valid UTF-8", ev.Parameter)
	case FeatureSelected:
		if !s.Views.Domain().Contains(ev.Feature) {
			return fmt.Sprintf("feature %q is not in the feature domain", ev.Feature)
		}
		if _, ok := s.Views.Get(ev.View); !ok {
			return fmt.Sprintf("view %q does not exist", ev.View)
		}
	}
	return "event was not applied"
}

// kindOf returns the kind of e, or "" for a nil event or a nil pointer.
func kindOf(e Event) EventKind {
	if e == nil {
		return ""
	}
	if v := reflect.ValueOf(e); v.Kind() == reflect.Pointer && v.IsNil() {
		return ""
	}
	return e.Kind()
}

func kindLabel(k EventKind) string {
	if k == "" {
		return "<nil>"
	}
	return k.String()
}
