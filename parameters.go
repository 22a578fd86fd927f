package scanboard

import (
	"maps"
	"slices"
)

// Known plot parameter names.
const (
	ParamLeftBiomarker   = "leftBiomarker"
	ParamBottomBiomarker = "bottomBiomarker"
)

// Parameters is an immutable string key/value map of plot parameters.
//
// [Parameters.With] returns a new map with one key merged in; the receiver
// is never modified.
type Parameters struct {
	values map[string]string
}

// DefaultParameters returns the known parameters, each set to the empty string.
func DefaultParameters() Parameters {
	return NewParameters(map[string]string{
		ParamLeftBiomarker:   "",
		ParamBottomBiomarker: "",
	})
}

// NewParameters creates a parameter map holding a copy of values.
func NewParameters(values map[string]string) Parameters {
	return Parameters{values: copyMap(values)}
}

// With returns a copy of p with name set to value.
func (p Parameters) With(name, value string) Parameters {
	values := make(map[string]string, len(p.values)+1)
	maps.Copy(values, p.values)
	values[name] = value
	return Parameters{values: values}
}

// Get returns the value of name.
func (p Parameters) Get(name string) (string, bool) {
	v, ok := p.values[name]
	return v, ok
}

// Map returns a copy of the parameters.
func (p Parameters) Map() map[string]string {
	return copyMap(p.values)
}

// Names returns the parameter names in sorted order.
func (p Parameters) Names() []string {
	return slices.Sorted(maps.Keys(p.values))
}

// Len returns the number of parameters.
func (p Parameters) Len() int {
	return len(p.values)
}

// Equal reports whether both maps hold the same keys with equal values.
func (p Parameters) Equal(o Parameters) bool {
	return maps.Equal(p.values, o.values)
}

// copyMap returns a copy of the map, or nil if input is nil.
func copyMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	return maps.Clone(m)
}
