package scanboard

// State is an immutable snapshot of the application state.
//
// Selection, Views and Parameters are the persisted fields; they are what the
// URL codec round-trips and what [State.Equal] compares. Revision and
// LastEvent are transient bookkeeping set by the [Store] on each dispatch.
//
// A new State is produced for every dispatched event. Holders of a State must
// treat it as frozen; all of its fields expose copy-returning accessors only.
type State struct {
	Selection  SelectionPool
	Views      ViewRegistry
	Parameters Parameters

	// Revision counts dispatches applied since the store was created.
	Revision uint64

	// LastEvent is the event that produced this snapshot, or nil for the seed.
	LastEvent Event
}

// NewState builds the default seed state: an empty selection over palette,
// a registry with one view bound to the first feature, and the default
// parameters.
func NewState(palette []Slot, features FeatureSet) (State, error) {
	pool, err := NewSelectionPool(palette)
	if err != nil {
		return State{}, err
	}
	return State{
		Selection:  pool,
		Views:      NewViewRegistry(features),
		Parameters: DefaultParameters(),
	}, nil
}

// DefaultState returns the seed state over [DefaultPalette] and [DefaultFeatures].
func DefaultState() State {
	s, _ := NewState(DefaultPalette, DefaultFeatures())
	return s
}

// FocusedScan returns the scan focused by the event that produced this
// snapshot. Focus is not persisted; any later event clears it.
func (s State) FocusedScan() (ScanID, bool) {
	if e, ok := s.LastEvent.(ScanFocused); ok {
		return e.ID, true
	}
	return "", false
}

// Equal reports whether two states hold equal persisted fields.
func (s State) Equal(o State) bool {
	return s.Selection.Equal(o.Selection) &&
		s.Views.Equal(o.Views) &&
		s.Parameters.Equal(o.Parameters)
}
