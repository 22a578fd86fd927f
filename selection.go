package scanboard

import (
	"fmt"
	"slices"
)

// ScanID identifies a scan that can be selected.
type ScanID string

// SelectedScan pairs a selected scan with the slot it was assigned.
type SelectedScan struct {
	ID   ScanID
	Slot Slot
}

// SelectionPool is a fixed-capacity cache mapping selected scans to slots.
//
// The capacity equals the size of the palette the pool was created with.
// Entries are ordered newest-inserted first. When the pool is full, inserting
// a new scan evicts the oldest entry (the tail), regardless of how recently it
// was looked up.
//
// Free slots form a FIFO queue: released slots are appended to the tail and
// allocation takes the head. Slots therefore rotate through the whole palette
// rather than the most recently released slot being reused first.
//
// SelectionPool is immutable. Every operation returns a new pool and leaves
// the receiver untouched, so a pool held by a snapshot never changes.
type SelectionPool struct {
	entries  []SelectedScan
	free     []Slot
	capacity int
}

// NewSelectionPool creates an empty pool whose free queue is the palette, in order.
//
// Returns an error if the palette is empty or contains duplicate or empty slots.
func NewSelectionPool(palette []Slot) (SelectionPool, error) {
	if err := validatePalette(palette); err != nil {
		return SelectionPool{}, err
	}
	return SelectionPool{
		free:     copySlots(palette),
		capacity: len(palette),
	}, nil
}

// RestoreSelectionPool rebuilds a pool from its entries and free queue.
//
// The entries and free slots together must be a permutation of the palette,
// and entry ids must be non-empty and pairwise distinct.
func RestoreSelectionPool(palette []Slot, entries []SelectedScan, free []Slot) (SelectionPool, error) {
	if err := validatePalette(palette); err != nil {
		return SelectionPool{}, err
	}
	p := SelectionPool{
		entries:  slices.Clone(entries),
		free:     copySlots(free),
		capacity: len(palette),
	}
	if err := p.validateAgainst(palette); err != nil {
		return SelectionPool{}, err
	}
	return p, nil
}

// Capacity returns the number of slots managed by the pool.
func (p SelectionPool) Capacity() int {
	return p.capacity
}

// Len returns the number of selected scans.
func (p SelectionPool) Len() int {
	return len(p.entries)
}

// Entries returns a copy of the selected scans, newest first.
func (p SelectionPool) Entries() []SelectedScan {
	return slices.Clone(p.entries)
}

// FreeSlots returns a copy of the free queue, next-to-allocate first.
func (p SelectionPool) FreeSlots() []Slot {
	return copySlots(p.free)
}

// IDs returns the selected scan ids, newest first.
func (p SelectionPool) IDs() []ScanID {
	ids := make([]ScanID, len(p.entries))
	for i, e := range p.entries {
		ids[i] = e.ID
	}
	return ids
}

// Has reports whether id is selected.
func (p SelectionPool) Has(id ScanID) bool {
	return p.index(id) != -1
}

// Get returns the slot assigned to id.
func (p SelectionPool) Get(id ScanID) (Slot, bool) {
	idx := p.index(id)
	if idx == -1 {
		return "", false
	}
	return p.entries[idx].Slot, true
}

// Insert selects id and returns the resulting pool.
//
// If the pool is full, the oldest entry is evicted first and its slot is
// appended to the free queue. The new entry takes the slot at the head of the
// free queue. Inserting an empty id or one that is already selected returns
// the pool unchanged.
func (p SelectionPool) Insert(id ScanID) SelectionPool {
	if id == "" || p.capacity == 0 || p.Has(id) {
		return p
	}
	next := p
	if len(next.entries) >= next.capacity {
		next = next.Remove(next.entries[len(next.entries)-1].ID)
	}

	entries := make([]SelectedScan, 0, len(next.entries)+1)
	entries = append(entries, SelectedScan{ID: id, Slot: next.free[0]})
	entries = append(entries, next.entries...)

	return SelectionPool{
		entries:  entries,
		free:     copySlots(next.free[1:]),
		capacity: next.capacity,
	}
}

// Remove deselects id, returning its slot to the tail of the free queue.
// Removing an id that is not selected returns the pool unchanged.
func (p SelectionPool) Remove(id ScanID) SelectionPool {
	idx := p.index(id)
	if idx == -1 {
		return p
	}
	entries := slices.Delete(slices.Clone(p.entries), idx, idx+1)
	free := append(copySlots(p.free), p.entries[idx].Slot)
	return SelectionPool{
		entries:  entries,
		free:     free,
		capacity: p.capacity,
	}
}

// Toggle removes id if it is selected and inserts it otherwise.
func (p SelectionPool) Toggle(id ScanID) SelectionPool {
	if p.Has(id) {
		return p.Remove(id)
	}
	return p.Insert(id)
}

// Equal reports whether two pools hold the same entries and free queue, in order.
func (p SelectionPool) Equal(o SelectionPool) bool {
	return p.capacity == o.capacity &&
		slices.Equal(p.entries, o.entries) &&
		slices.Equal(p.free, o.free)
}

// Validate checks the pool invariants: entries and free slots add up to the
// capacity, and entry ids are non-empty and pairwise distinct.
func (p SelectionPool) Validate() error {
	if len(p.entries)+len(p.free) != p.capacity {
		return fmt.Errorf("pool holds %d entries and %d free slots, want %d in total",
			len(p.entries), len(p.free), p.capacity)
	}
	seen := make(map[ScanID]bool, len(p.entries))
	for _, e := range p.entries {
		if e.ID == "" {
			return fmt.Errorf("pool entry has empty scan id")
		}
		if seen[e.ID] {
			return fmt.Errorf("duplicate scan id %q in pool", e.ID)
		}
		seen[e.ID] = true
	}
	return nil
}

// validateAgainst checks Validate and that every palette slot is held exactly once.
func (p SelectionPool) validateAgainst(palette []Slot) error {
	if err := p.Validate(); err != nil {
		return err
	}
	held := make(map[Slot]int, len(palette))
	for _, e := range p.entries {
		held[e.Slot]++
	}
	for _, s := range p.free {
		held[s]++
	}
	for _, s := range palette {
		if held[s] != 1 {
			return fmt.Errorf("slot %q held %d times, want 1", s, held[s])
		}
		delete(held, s)
	}
	for s := range held {
		return fmt.Errorf("slot %q is not in the palette", s)
	}
	return nil
}

func (p SelectionPool) index(id ScanID) int {
	return slices.IndexFunc(p.entries, func(e SelectedScan) bool { return e.ID == id })
}
