package scanboard

import (
	"errors"
	"fmt"
)

// Slot is a visual identity (a CSS colour) assigned to a selected scan.
//
// Slots come from a fixed palette. Every slot of the palette is, at all times,
// either held by exactly one selected scan or waiting in the free queue of a
// [SelectionPool].
type Slot string

// String returns the string representation of the slot.
func (s Slot) String() string {
	return string(s)
}

// DefaultPalette is the palette used when no palette is configured.
// Its length bounds the number of scans that can be selected at once.
var DefaultPalette = []Slot{"#E69F00", "#93CEF1"}

// ErrInvalidPalette is returned when a palette is empty or repeats a slot.
var ErrInvalidPalette = errors.New("invalid palette")

// validatePalette checks that the palette is non-empty and has no duplicates.
func validatePalette(palette []Slot) error {
	if len(palette) == 0 {
		return fmt.Errorf("%w: at least one slot is required", ErrInvalidPalette)
	}
	seen := make(map[Slot]bool, len(palette))
	for _, s := range palette {
		if s == "" {
			return fmt.Errorf("%w: slot cannot be empty", ErrInvalidPalette)
		}
		if seen[s] {
			return fmt.Errorf("%w: duplicate slot %q", ErrInvalidPalette, s)
		}
		seen[s] = true
	}
	return nil
}

func copySlots(s []Slot) []Slot {
	if s == nil {
		return nil
	}
	return append([]Slot(nil), s...)
}
