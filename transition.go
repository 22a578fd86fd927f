package scanboard

import "unicode/utf8"

// Outcome classifies how [Transition] handled an event.
type Outcome int

const (
	// OutcomeApplied means the event was recognized and its effect applied.
	// The effect may still leave the state unchanged, as with removing a
	// view that does not exist.
	OutcomeApplied Outcome = iota

	// OutcomeIgnored means the event kind is outside the vocabulary.
	OutcomeIgnored

	// OutcomeRejected means the event was recognized but failed validation
	// and was dropped, as with selecting a feature outside the domain.
	OutcomeRejected
)

// String returns the string representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeIgnored:
		return "ignored"
	case OutcomeRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Transition computes the state that follows s after e.
//
// Transition is pure and total: it never panics, never mutates s, and returns
// s unchanged for events it does not recognize. Scan ids and parameter names
// must be non-empty valid UTF-8, and parameter values valid UTF-8; events
// that break this are dropped so every reachable state can be persisted.
// Revision and LastEvent are left alone; the [Store] maintains them.
func Transition(s State, e Event) State {
	next, _ := transition(s, e)
	return next
}

// transition is Transition reporting the outcome, used by the store to feed
// its warning channel.
func transition(s State, e Event) (State, Outcome) {
	switch ev := e.(type) {
	case ScanToggled:
		if !encodable(string(ev.ID)) {
			return s, OutcomeRejected
		}
		s.Selection = s.Selection.Toggle(ev.ID)
		return s, OutcomeApplied

	case ScanFocused:
		return s, OutcomeApplied

	case FeatureSelected:
		views, ok := s.Views.update(ev.View, ev.Feature)
		if !ok {
			return s, OutcomeRejected
		}
		s.Views = views
		return s, OutcomeApplied

	case FeatureAdded:
		s.Views, _ = s.Views.Add()
		return s, OutcomeApplied

	case FeatureRemoved:
		s.Views = s.Views.Remove(ev.View)
		return s, OutcomeApplied

	case ParameterChanged:
		if !encodable(ev.Parameter) || !utf8.ValidString(ev.Value) {
			return s, OutcomeRejected
		}
		s.Parameters = s.Parameters.With(ev.Parameter, ev.Value)
		return s, OutcomeApplied

	default:
		return s, OutcomeIgnored
	}
}

// encodable reports whether v can be used as a persisted id or name: it must
// be non-empty valid UTF-8.
func encodable(v string) bool {
	return v != "" && utf8.ValidString(v)
}
