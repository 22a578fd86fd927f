package scanboard

import (
	"slices"
	"testing"
)

func assertBindings(t *testing.T, r ViewRegistry, want []ViewBinding, nextID int) {
	t.Helper()
	if got := r.Bindings(); !slices.Equal(got, want) {
		t.Errorf("Bindings() = %v, want %v", got, want)
	}
	if r.NextID() != nextID {
		t.Errorf("NextID() = %v, want %v", r.NextID(), nextID)
	}
}

func TestNewViewRegistry(t *testing.T) {
	r := NewViewRegistry(DefaultFeatures())

	assertBindings(t, r, []ViewBinding{{"1", "thickness"}}, 1)
}

func TestViewRegistry_StableIdentityScenario(t *testing.T) {
	r := NewViewRegistry(DefaultFeatures())

	r, id := r.Add()
	if id != "2" {
		t.Errorf("Add() id = %v, want %v", id, "2")
	}
	assertBindings(t, r, []ViewBinding{{"1", "thickness"}, {"2", "thickness"}}, 2)

	r = r.Remove("1")
	assertBindings(t, r, []ViewBinding{{"2", "thickness"}}, 2)

	r, id = r.Add()
	if id != "3" {
		t.Errorf("Add() id = %v, want %v", id, "3")
	}
	assertBindings(t, r, []ViewBinding{{"2", "thickness"}, {"3", "thickness"}}, 3)
}

func TestViewRegistry_IDsNeverReused(t *testing.T) {
	r := NewViewRegistry(DefaultFeatures())
	seen := map[ViewID]bool{"1": true}

	for i := 0; i < 50; i++ {
		var id ViewID
		r, id = r.Add()
		if seen[id] {
			t.Fatalf("Add() reissued id %v", id)
		}
		seen[id] = true
		if i%2 == 0 {
			r = r.Remove(id)
		}
	}
}

func TestViewRegistry_RemoveAbsent(t *testing.T) {
	r := NewViewRegistry(DefaultFeatures())

	got := r.Remove("42")
	if !got.Equal(r) {
		t.Errorf("Remove(42) changed registry: %v", got.Bindings())
	}
}

func TestViewRegistry_Update(t *testing.T) {
	r := NewViewRegistry(DefaultFeatures())

	r = r.Update("1", "shape")

	if f, _ := r.Get("1"); f != "shape" {
		t.Errorf("Get(1) = %v, want %v", f, "shape")
	}
}

func TestViewRegistry_UpdateOutOfDomainIsSilentlyDropped(t *testing.T) {
	r := NewViewRegistry(DefaultFeatures())

	got := r.Update("1", "not-a-feature")

	if !got.Equal(r) {
		t.Errorf("Update() with unknown feature changed registry: %v", got.Bindings())
	}
	if f, _ := got.Get("1"); f != "thickness" {
		t.Errorf("Get(1) = %v, want %v", f, "thickness")
	}
}

func TestViewRegistry_UpdateUnknownViewIsDropped(t *testing.T) {
	r := NewViewRegistry(DefaultFeatures())
	r = r.Remove("1")

	got := r.Update("1", "shape")

	if got.Len() != 0 {
		t.Errorf("Update() on removed view resurrected it: %v", got.Bindings())
	}
}

func TestViewRegistry_Immutable(t *testing.T) {
	r := NewViewRegistry(DefaultFeatures())

	_, _ = r.Add()
	_ = r.Update("1", "volume")
	_ = r.Remove("1")

	assertBindings(t, r, []ViewBinding{{"1", "thickness"}}, 1)
}

func TestRestoreViewRegistry_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		bindings []ViewBinding
		next     int
	}{
		{"id above counter", []ViewBinding{{"5", "shape"}}, 4},
		{"non-numeric id", []ViewBinding{{"x", "shape"}}, 4},
		{"padded id", []ViewBinding{{"01", "shape"}}, 4},
		{"duplicate id", []ViewBinding{{"1", "shape"}, {"1", "volume"}}, 4},
		{"unknown feature", []ViewBinding{{"1", "nope"}}, 4},
		{"negative counter", nil, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := RestoreViewRegistry(DefaultFeatures(), tt.bindings, tt.next); err == nil {
				t.Error("RestoreViewRegistry() expected error, got nil")
			}
		})
	}
}

func TestFeatureSet(t *testing.T) {
	fs := DefaultFeatures()

	if fs.Default() != "thickness" {
		t.Errorf("Default() = %v, want %v", fs.Default(), "thickness")
	}
	if !fs.Contains("volume") {
		t.Error("Contains(volume) = false, want true")
	}
	if fs.Contains("weight") {
		t.Error("Contains(weight) = true, want false")
	}
	info, ok := fs.Info("shape")
	if !ok || info.Name != "Bone Shape" {
		t.Errorf("Info(shape) = %v, %v, want Bone Shape", info, ok)
	}
}

func TestNewFeatureSet_Invalid(t *testing.T) {
	if _, err := NewFeatureSet(); err == nil {
		t.Error("NewFeatureSet() expected error for empty set, got nil")
	}
	if _, err := NewFeatureSet(FeatureInfo{Key: "a"}, FeatureInfo{Key: "a"}); err == nil {
		t.Error("NewFeatureSet() expected error for duplicate key, got nil")
	}
	if _, err := NewFeatureSet(FeatureInfo{Name: "no key"}); err == nil {
		t.Error("NewFeatureSet() expected error for empty key, got nil")
	}
}
