package scanboard

import (
	"errors"
	"fmt"
	"slices"
)

// Feature is the key of a measurable scan feature that a view can display.
type Feature string

// String returns the string representation of the feature.
func (f Feature) String() string {
	return string(f)
}

// FeatureInfo carries display metadata for a [Feature].
type FeatureInfo struct {
	Key  Feature
	Name string
	Long string
}

// FeatureSet is the ordered domain of features a view may be bound to.
//
// The first feature is the default binding for new views.
// FeatureSet is immutable once created.
type FeatureSet struct {
	infos []FeatureInfo
	index map[Feature]int
}

// DefaultFeatures returns the built-in feature domain.
func DefaultFeatures() FeatureSet {
	fs, _ := NewFeatureSet(
		FeatureInfo{Key: "thickness", Name: "Cartilage Thickness", Long: "Mean cartilage thickness across the joint surface"},
		FeatureInfo{Key: "shape", Name: "Bone Shape", Long: "Bone surface shape score"},
		FeatureInfo{Key: "volume", Name: "Cartilage Volume", Long: "Total cartilage volume"},
	)
	return fs
}

// NewFeatureSet creates a feature domain from the given entries, in order.
//
// Returns an error if no features are given, or if a key is empty or repeated.
// A missing Name defaults to the key.
func NewFeatureSet(infos ...FeatureInfo) (FeatureSet, error) {
	if len(infos) == 0 {
		return FeatureSet{}, errors.New("at least one feature is required")
	}
	fs := FeatureSet{
		infos: make([]FeatureInfo, 0, len(infos)),
		index: make(map[Feature]int, len(infos)),
	}
	for _, info := range infos {
		if info.Key == "" {
			return FeatureSet{}, errors.New("feature key cannot be empty")
		}
		if _, dup := fs.index[info.Key]; dup {
			return FeatureSet{}, fmt.Errorf("duplicate feature key: %q", info.Key)
		}
		if info.Name == "" {
			info.Name = string(info.Key)
		}
		fs.index[info.Key] = len(fs.infos)
		fs.infos = append(fs.infos, info)
	}
	return fs, nil
}

// Contains reports whether f belongs to the domain.
func (fs FeatureSet) Contains(f Feature) bool {
	_, ok := fs.index[f]
	return ok
}

// Default returns the feature bound to newly added views.
func (fs FeatureSet) Default() Feature {
	if len(fs.infos) == 0 {
		return ""
	}
	return fs.infos[0].Key
}

// Info returns the display metadata for f.
func (fs FeatureSet) Info(f Feature) (FeatureInfo, bool) {
	i, ok := fs.index[f]
	if !ok {
		return FeatureInfo{}, false
	}
	return fs.infos[i], true
}

// Keys returns the feature keys in domain order.
func (fs FeatureSet) Keys() []Feature {
	keys := make([]Feature, len(fs.infos))
	for i, info := range fs.infos {
		keys[i] = info.Key
	}
	return keys
}

// Infos returns a copy of the display metadata in domain order.
func (fs FeatureSet) Infos() []FeatureInfo {
	return slices.Clone(fs.infos)
}

// Len returns the number of features in the domain.
func (fs FeatureSet) Len() int {
	return len(fs.infos)
}
