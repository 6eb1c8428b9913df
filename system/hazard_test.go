package system

import (
	"testing"
	"time"

	"github.com/lixenwraith/oncoarena/combat"
	"github.com/lixenwraith/oncoarena/component"
	"github.com/lixenwraith/oncoarena/event"
	"github.com/lixenwraith/oncoarena/vmath"
)

func TestHazardDamage(t *testing.T) {
	ring := &component.HazardComponent{Shape: component.HazardRing, Radius: 100, Width: 20, Damage: 8}
	disc := &component.HazardComponent{Shape: component.HazardDisc, Radius: 60, Damage: 4}
	falloff := &component.HazardComponent{Shape: component.HazardDisc, Radius: 200, Damage: 100, Falloff: true}

	tests := []struct {
		name string
		h    *component.HazardComponent
		d    float64
		want float64
		hit  bool
	}{
		{"ring center", ring, 0, 0, false},
		{"ring inner edge", ring, 81, 8, true},
		{"ring on circle", ring, 100, 8, true},
		{"ring outside band", ring, 120, 0, false},
		{"disc inside", disc, 59, 4, true},
		{"disc edge", disc, 60, 0, false},
		{"falloff center", falloff, 0, 100, true},
		{"falloff half", falloff, 100, 50, true},
		{"falloff edge", falloff, 200, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := HazardDamage(tt.h, tt.d)
			if hit != tt.hit || !near(got, tt.want, 1e-9) {
				t.Errorf("Expected (%v, %v), got (%v, %v)", tt.want, tt.hit, got, hit)
			}
		})
	}
}

func TestHazardCancelledWhenOwnerDies(t *testing.T) {
	w := newTestWorld(t)
	s := NewHazardSystem(w, combat.NewResolver(w))
	owner := quietBoss(w, vmath.V2(100, 100))

	he := w.CreateEntity()
	w.Components.Body.Set(he, &component.BodyComponent{Pos: arenaCenter, Radius: 60})
	w.Components.Hazard.Set(he, &component.HazardComponent{
		Owner: owner, Shape: component.HazardDisc, Radius: 60, Damage: 20,
		Delay: 500 * time.Millisecond, Pulses: 1,
	})

	enemy, _ := w.Components.Enemy.Get(owner)
	enemy.Dead = true
	setDelta(w, time.Second)
	s.Update()

	if w.Components.Hazard.Has(he) {
		t.Error("Expected hazard removed with its owner")
	}
	p, _ := testPlayer(w)
	if p.HP != 100 {
		t.Errorf("Expected no damage from a cancelled hazard, got hp %v", p.HP)
	}
}

func TestHazardWaitsForDelay(t *testing.T) {
	w := newTestWorld(t)
	s := NewHazardSystem(w, combat.NewResolver(w))
	owner := quietBoss(w, vmath.V2(100, 100))

	he := w.CreateEntity()
	w.Components.Body.Set(he, &component.BodyComponent{Pos: arenaCenter, Radius: 25})
	w.Components.Hazard.Set(he, &component.HazardComponent{
		Owner: owner, Shape: component.HazardDisc, Radius: 25, Damage: 9,
		Delay: time.Second, Pulses: 1, Lifetime: time.Second,
	})
	p, _ := testPlayer(w)

	setDelta(w, 500*time.Millisecond)
	s.Update()
	if p.HP != 100 {
		t.Fatalf("Expected no damage before the fuse, got hp %v", p.HP)
	}

	s.Update()
	if p.HP != 91 {
		t.Errorf("Expected hp 91 after detonation, got %v", p.HP)
	}
	if w.Components.Hazard.Has(he) {
		t.Error("Expected hazard removed at the end of its lifetime")
	}
	if n := countEvents(drainEvents(w), event.EventExplosion); n != 1 {
		t.Errorf("Expected 1 hostile explosion event, got %d", n)
	}
}

func TestHazardPulsesOnInterval(t *testing.T) {
	w := newTestWorld(t)
	s := NewHazardSystem(w, combat.NewResolver(w))
	owner := quietBoss(w, vmath.V2(100, 100))

	he := w.CreateEntity()
	w.Components.Body.Set(he, &component.BodyComponent{Pos: vmath.V2(900, 600), Radius: 60})
	w.Components.Hazard.Set(he, &component.HazardComponent{
		Owner: owner, Shape: component.HazardDisc, Radius: 60, Damage: 1,
		Delay: 500 * time.Millisecond, Interval: 500 * time.Millisecond, Pulses: 10, Lifetime: 6 * time.Second,
	})
	h, _ := w.Components.Hazard.Get(he)

	for i := 0; i < 4; i++ {
		setDelta(w, 500*time.Millisecond)
		s.Update()
	}
	// arming pulse at 0.5s, then one every 0.5s
	if h.Pulses != 6 {
		t.Errorf("Expected 4 pulses spent by 2s, got %d left", h.Pulses)
	}

	for i := 0; i < 8; i++ {
		setDelta(w, 500*time.Millisecond)
		s.Update()
	}
	if w.Components.Hazard.Has(he) {
		t.Error("Expected hazard removed at 6s")
	}
}

func TestRingSparesPlayerInside(t *testing.T) {
	w := newTestWorld(t)
	s := NewHazardSystem(w, combat.NewResolver(w))
	owner := quietBoss(w, arenaCenter.Add(vmath.V2(10, 0)))

	he := w.CreateEntity()
	w.Components.Body.Set(he, &component.BodyComponent{Pos: arenaCenter})
	w.Components.Hazard.Set(he, &component.HazardComponent{
		Owner: owner, Shape: component.HazardRing, Radius: 150, Width: 20, Damage: 16,
		Pulses: 1, Lifetime: time.Second,
	})

	setDelta(w, 16*time.Millisecond)
	s.Update()

	p, _ := testPlayer(w)
	if p.HP != 100 {
		t.Errorf("Expected the ring to miss a player at its center, got hp %v", p.HP)
	}
}
