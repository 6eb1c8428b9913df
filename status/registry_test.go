package status

import "testing"

func TestRegistryCachedPointers(t *testing.T) {
	r := NewRegistry()
	a := r.Ints.Get("spawn.count")
	b := r.Ints.Get("spawn.count")
	if a != b {
		t.Fatal("Expected same pointer for repeated Get")
	}
	a.Add(3)
	if b.Load() != 3 {
		t.Errorf("Expected 3, got %d", b.Load())
	}
}

func TestRegistrySnapshot(t *testing.T) {
	r := NewRegistry()
	r.Bools.Get("boss.active").Store(true)
	r.Ints.Get("spawn.count").Store(12)
	r.Floats.Get("combat.damage_dealt").Set(1.5)
	r.Strings.Get("boss.name").Store("Radiation")

	snap := r.Snapshot()
	want := map[string]string{
		"boss.active":         "true",
		"spawn.count":         "12",
		"combat.damage_dealt": "1.50",
		"boss.name":           "Radiation",
	}
	for k, v := range want {
		if snap[k] != v {
			t.Errorf("Expected %s=%s, got %s", k, v, snap[k])
		}
	}
}

func TestAtomicFloatAdd(t *testing.T) {
	var f AtomicFloat
	f.Add(1.25)
	if got := f.Add(0.75); got != 2 {
		t.Errorf("Expected 2, got %f", got)
	}
}
