package scanboard

import (
	"fmt"
	"slices"
	"strconv"
)

// ViewID is a stable identity key for a view.
//
// Ids are the decimal form of the registry counter at the time they were
// issued. An id is never issued twice by the same registry, even after the
// view it named has been removed.
type ViewID string

// String returns the string representation of the view id.
func (id ViewID) String() string {
	return string(id)
}

// ViewBinding pairs a view with the feature it displays.
type ViewBinding struct {
	ID      ViewID
	Feature Feature
}

// ViewRegistry maps stable view ids to features.
//
// The registry is seeded with a single view "1" bound to the default feature.
// Ids are never compacted or recycled: [ViewRegistry.Remove] deletes the
// binding but leaves the counter alone, so the next [ViewRegistry.Add] still
// issues a fresh id.
//
// ViewRegistry is immutable. Every operation returns a new registry.
type ViewRegistry struct {
	order    []ViewID
	bindings map[ViewID]Feature
	nextID   int
	domain   FeatureSet
}

// NewViewRegistry creates a registry seeded with view "1" bound to the
// domain's default feature.
func NewViewRegistry(domain FeatureSet) ViewRegistry {
	return ViewRegistry{
		order:    []ViewID{"1"},
		bindings: map[ViewID]Feature{"1": domain.Default()},
		nextID:   1,
		domain:   domain,
	}
}

// RestoreViewRegistry rebuilds a registry from its bindings and counter.
//
// Bindings must use numeric ids no greater than nextID, without repeats, and
// every feature must belong to the domain.
func RestoreViewRegistry(domain FeatureSet, bindings []ViewBinding, nextID int) (ViewRegistry, error) {
	if nextID < 0 {
		return ViewRegistry{}, fmt.Errorf("view counter cannot be negative, got %d", nextID)
	}
	r := ViewRegistry{
		order:    make([]ViewID, 0, len(bindings)),
		bindings: make(map[ViewID]Feature, len(bindings)),
		nextID:   nextID,
		domain:   domain,
	}
	for _, b := range bindings {
		n, err := strconv.Atoi(string(b.ID))
		if err != nil || n < 1 || strconv.Itoa(n) != string(b.ID) {
			return ViewRegistry{}, fmt.Errorf("invalid view id %q", b.ID)
		}
		if n > nextID {
			return ViewRegistry{}, fmt.Errorf("view id %q was never issued (counter is %d)", b.ID, nextID)
		}
		if _, dup := r.bindings[b.ID]; dup {
			return ViewRegistry{}, fmt.Errorf("duplicate view id %q", b.ID)
		}
		if !domain.Contains(b.Feature) {
			return ViewRegistry{}, fmt.Errorf("view %q bound to unknown feature %q", b.ID, b.Feature)
		}
		r.order = append(r.order, b.ID)
		r.bindings[b.ID] = b.Feature
	}
	return r, nil
}

// Add binds a fresh id to the default feature.
// It returns the new registry and the issued id.
func (r ViewRegistry) Add() (ViewRegistry, ViewID) {
	next := r.clone()
	next.nextID++
	id := ViewID(strconv.Itoa(next.nextID))
	next.order = append(next.order, id)
	next.bindings[id] = r.domain.Default()
	return next, id
}

// Remove deletes the binding for id. The counter is unaffected.
// Removing an unknown id returns the registry unchanged.
func (r ViewRegistry) Remove(id ViewID) ViewRegistry {
	if _, ok := r.bindings[id]; !ok {
		return r
	}
	next := r.clone()
	delete(next.bindings, id)
	next.order = slices.DeleteFunc(next.order, func(v ViewID) bool { return v == id })
	return next
}

// Update rebinds id to f.
//
// The update is silently dropped when f is outside the feature domain or id
// is unknown; the registry is returned unchanged in both cases.
func (r ViewRegistry) Update(id ViewID, f Feature) ViewRegistry {
	next, _ := r.update(id, f)
	return next
}

// update is Update reporting whether the change was accepted.
func (r ViewRegistry) update(id ViewID, f Feature) (ViewRegistry, bool) {
	if !r.domain.Contains(f) {
		return r, false
	}
	if _, ok := r.bindings[id]; !ok {
		return r, false
	}
	next := r.clone()
	next.bindings[id] = f
	return next, true
}

// Get returns the feature bound to id.
func (r ViewRegistry) Get(id ViewID) (Feature, bool) {
	f, ok := r.bindings[id]
	return f, ok
}

// IDs returns the surviving view ids in insertion order.
func (r ViewRegistry) IDs() []ViewID {
	return slices.Clone(r.order)
}

// Bindings returns the surviving bindings in insertion order.
func (r ViewRegistry) Bindings() []ViewBinding {
	out := make([]ViewBinding, len(r.order))
	for i, id := range r.order {
		out[i] = ViewBinding{ID: id, Feature: r.bindings[id]}
	}
	return out
}

// NextID returns the counter value of the most recently issued id.
func (r ViewRegistry) NextID() int {
	return r.nextID
}

// Len returns the number of surviving views.
func (r ViewRegistry) Len() int {
	return len(r.order)
}

// Domain returns the feature domain the registry validates against.
func (r ViewRegistry) Domain() FeatureSet {
	return r.domain
}

// Equal reports whether two registries hold the same bindings, in the same
// order, with the same counter.
func (r ViewRegistry) Equal(o ViewRegistry) bool {
	return r.nextID == o.nextID &&
		slices.Equal(r.Bindings(), o.Bindings())
}

func (r ViewRegistry) clone() ViewRegistry {
	bindings := make(map[ViewID]Feature, len(r.bindings)+1)
	for k, v := range r.bindings {
		bindings[k] = v
	}
	return ViewRegistry{
		order:    slices.Clone(r.order),
		bindings: bindings,
		nextID:   r.nextID,
		domain:   r.domain,
	}
}
