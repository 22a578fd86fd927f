package scanboard

// EventKind names the kind of an [Event].
//
// EventKind is a string type so kinds serialize and log readably. The closed
// vocabulary understood by [Transition] is defined by the constants below.
type EventKind string

const (
	// KindScanToggled selects or deselects a scan.
	KindScanToggled EventKind = "SCAN_TOGGLED"

	// KindScanFocused records the most recently focused scan. Focus is
	// transient: it is carried by the snapshot's last event, not persisted.
	KindScanFocused EventKind = "SCAN_FOCUSED"

	// KindFeatureSelected rebinds a view to another feature.
	KindFeatureSelected EventKind = "FEATURE_SELECTED"

	// KindFeatureAdded adds a view bound to the default feature.
	KindFeatureAdded EventKind = "FEATURE_ADDED"

	// KindFeatureRemoved removes a view.
	KindFeatureRemoved EventKind = "FEATURE_REMOVED"

	// KindParameterChanged merges one value into the plot parameters.
	KindParameterChanged EventKind = "PARAMETER_CHANGED"
)

// String returns the string representation of the kind.
// This implements the fmt.Stringer interface.
func (k EventKind) String() string {
	return string(k)
}

// Known reports whether k belongs to the closed event vocabulary.
func (k EventKind) Known() bool {
	switch k {
	case KindScanToggled, KindScanFocused, KindFeatureSelected,
		KindFeatureAdded, KindFeatureRemoved, KindParameterChanged:
		return true
	}
	return false
}

// Event is a command dispatched to a [Store].
//
// Events carry only the data needed to compute the next state. [Transition]
// treats any event it does not recognize as a no-op.
type Event interface {
	Kind() EventKind
}

// ScanToggled toggles the selection of a scan.
type ScanToggled struct {
	ID ScanID
}

// Kind implements [Event].
func (ScanToggled) Kind() EventKind { return KindScanToggled }

// ScanFocused marks a scan as the focused one.
type ScanFocused struct {
	ID ScanID
}

// Kind implements [Event].
func (ScanFocused) Kind() EventKind { return KindScanFocused }

// FeatureSelected binds a view to a feature.
type FeatureSelected struct {
	View    ViewID
	Feature Feature
}

// Kind implements [Event].
func (FeatureSelected) Kind() EventKind { return KindFeatureSelected }

// FeatureAdded adds a view.
type FeatureAdded struct{}

// Kind implements [Event].
func (FeatureAdded) Kind() EventKind { return KindFeatureAdded }

// FeatureRemoved removes a view.
type FeatureRemoved struct {
	View ViewID
}

// Kind implements [Event].
func (FeatureRemoved) Kind() EventKind { return KindFeatureRemoved }

// ParameterChanged sets a plot parameter.
type ParameterChanged struct {
	Parameter string
	Value     string
}

// Kind implements [Event].
func (ParameterChanged) Kind() EventKind { return KindParameterChanged }
