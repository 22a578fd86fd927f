package scanboard

import (
	"maps"
	"slices"
)

// SameMembers reports whether a and b have the same length and every element
// of a appears in b. Order is ignored. It suits projections of id sets
// such as [SelectedScanIDs].
func SameMembers[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[T]int, len(b))
	for _, v := range b {
		counts[v]++
	}
	for _, v := range a {
		if counts[v] == 0 {
			return false
		}
		counts[v]--
	}
	return true
}

// SlicesEqual reports whether a and b hold equal elements in the same order.
func SlicesEqual[T comparable](a, b []T) bool {
	return slices.Equal(a, b)
}

// MapsEqual reports whether a and b have the same key set with pairwise
// equal values.
func MapsEqual[K, V comparable](a, b map[K]V) bool {
	return maps.Equal(a, b)
}
