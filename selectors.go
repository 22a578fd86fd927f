package scanboard

// Selectors are pure projections of [State] for use with [Select] and
// [SelectFunc]. Selectors returning slices or maps need a structural
// equality such as [SameMembers] or [MapsEqual].

// SelectedScanIDs projects the selected scan ids, newest first.
// Pair it with [SameMembers] to ignore reordering.
func SelectedScanIDs(s State) []ScanID {
	return s.Selection.IDs()
}

// SelectedScans projects the selected scans with their slots, newest first.
func SelectedScans(s State) []SelectedScan {
	return s.Selection.Entries()
}

// SelectionSize projects the number of selected scans.
func SelectionSize(s State) int {
	return s.Selection.Len()
}

// ScanSlot returns a selector projecting the slot of id, or "" when id is
// not selected.
func ScanSlot(id ScanID) func(State) Slot {
	return func(s State) Slot {
		slot, _ := s.Selection.Get(id)
		return slot
	}
}

// ScanSelected returns a selector projecting whether id is selected.
func ScanSelected(id ScanID) func(State) bool {
	return func(s State) bool {
		return s.Selection.Has(id)
	}
}

// ViewIDs projects the surviving view ids in insertion order.
// Pair it with [SlicesEqual].
func ViewIDs(s State) []ViewID {
	return s.Views.IDs()
}

// ViewFeature returns a selector projecting the feature bound to id, or ""
// when the view does not exist.
func ViewFeature(id ViewID) func(State) Feature {
	return func(s State) Feature {
		f, _ := s.Views.Get(id)
		return f
	}
}

// Parameter returns a selector projecting one plot parameter.
func Parameter(name string) func(State) string {
	return func(s State) string {
		v, _ := s.Parameters.Get(name)
		return v
	}
}

// AllParameters projects a copy of the plot parameters. Pair it with [MapsEqual].
func AllParameters(s State) map[string]string {
	return s.Parameters.Map()
}

// FocusedScan projects the scan focused by the latest event, or "" when the
// latest event was not a focus event.
func FocusedScan(s State) ScanID {
	id, _ := s.FocusedScan()
	return id
}
