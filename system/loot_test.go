package system

import (
	"math"
	"slices"
	"testing"
	"time"

	"github.com/lixenwraith/oncoarena/component"
	"github.com/lixenwraith/oncoarena/event"
	"github.com/lixenwraith/oncoarena/parameter"
	"github.com/lixenwraith/oncoarena/tuning"
	"github.com/lixenwraith/oncoarena/vmath"
)

func TestDecompose(t *testing.T) {
	tests := []struct {
		total int
		want  []int
	}{
		{0, nil},
		{-3, nil},
		{1, []int{1}},
		{7, []int{5, 1, 1}},
		{25, []int{25}},
		{88, []int{50, 25, 10, 1, 1, 1}},
		{120, []int{50, 50, 10, 10}},
	}
	for _, tt := range tests {
		got := Decompose(tt.total)
		if !slices.Equal(got, tt.want) {
			t.Errorf("Decompose(%d): expected %v, got %v", tt.total, tt.want, got)
		}
	}
}

// fewestOrbs is the coin-change minimum over the orb denominations
func fewestOrbs(total int) []int {
	best := make([]int, total+1)
	for v := 1; v <= total; v++ {
		best[v] = math.MaxInt32
		for _, d := range parameter.XPDenominations {
			if d <= v && best[v-d]+1 < best[v] {
				best[v] = best[v-d] + 1
			}
		}
	}
	return best
}

func TestDecomposeIsMinimal(t *testing.T) {
	const limit = 500
	best := fewestOrbs(limit)
	for total := 1; total <= limit; total++ {
		orbs := Decompose(total)
		sum := 0
		for i, v := range orbs {
			sum += v
			if i > 0 && v > orbs[i-1] {
				t.Fatalf("Decompose(%d): expected non-increasing values, got %v", total, orbs)
			}
		}
		if sum != total {
			t.Fatalf("Decompose(%d): expected sum %d, got %d", total, total, sum)
		}
		if len(orbs) != best[total] {
			t.Fatalf("Decompose(%d): expected %d orbs, got %d", total, best[total], len(orbs))
		}
	}
}

func TestHealthDropChance(t *testing.T) {
	h := tuning.Default().Health
	tests := []struct {
		level int
		want  float64
	}{
		{1, 0.075},
		{4, 0.075},
		{5, 0.075 * 0.9},
		{14, 0.075 * 0.9 * 0.9},
		{100, 0.01},
	}
	for _, tt := range tests {
		if got := HealthDropChance(h, tt.level); !near(got, tt.want, 1e-12) {
			t.Errorf("Level %d: expected %v, got %v", tt.level, tt.want, got)
		}
	}
}

func TestMagnetSpeedContinuous(t *testing.T) {
	const r = 80.0
	if v := MagnetSpeed(r, r); v != 0 {
		t.Errorf("Expected zero speed at the range edge, got %v", v)
	}
	if v := MagnetSpeed(r-1e-6, r); v > 1e-6 {
		t.Errorf("Expected near-zero speed just inside the range, got %v", v)
	}
	if v := MagnetSpeed(parameter.MagnetPickupRadius, r); v != parameter.MagnetMaxSpeed {
		t.Errorf("Expected max speed at the pickup radius, got %v", v)
	}

	prev := 0.0
	for d := r; d >= parameter.MagnetPickupRadius; d -= 0.5 {
		v := MagnetSpeed(d, r)
		if v < prev {
			t.Fatalf("Expected speed to grow as the orb closes in, %v at %v after %v", v, d, prev)
		}
		if v-prev > 30 {
			t.Fatalf("Expected continuous speed, jumped %v at %v", v-prev, d)
		}
		prev = v
	}
}

func TestAttractIsDirectionIndependent(t *testing.T) {
	w := newTestWorld(t)
	s := NewLootSystem(w).(*LootSystem)
	_, target := testPlayer(w)

	offsets := []vmath.Vec2{
		vmath.V2(40, 0),
		vmath.V2(0, -40),
		vmath.V2(40/math.Sqrt2, 40/math.Sqrt2),
	}
	var dists []float64
	for _, off := range offsets {
		body := &component.BodyComponent{Pos: target.Pos.Add(off)}
		s.attract(body, target, 80, 0.016)
		dists = append(dists, vmath.Dist(body.Pos, target.Pos))
	}
	for i := 1; i < len(dists); i++ {
		if !near(dists[i], dists[0], 1e-9) {
			t.Errorf("Expected equal pull in every direction, got %v", dists)
		}
	}
	if dists[0] >= 40 {
		t.Errorf("Expected the orb pulled closer, got %v", dists[0])
	}
}

func TestAttractSnapsInsidePickupRadius(t *testing.T) {
	w := newTestWorld(t)
	s := NewLootSystem(w).(*LootSystem)
	_, target := testPlayer(w)

	body := &component.BodyComponent{Pos: target.Pos.Add(vmath.V2(10, 0))}
	s.attract(body, target, 80, 0.016)
	if body.Pos != target.Pos {
		t.Errorf("Expected orb snapped to %v, got %v", target.Pos, body.Pos)
	}
}

func TestLootCollected(t *testing.T) {
	w := newTestWorld(t)
	s := NewLootSystem(w)
	p, target := testPlayer(w)
	p.HP = 50

	xp := w.CreateEntity()
	w.Components.Body.Set(xp, &component.BodyComponent{Pos: target.Pos, Radius: xpOrbRadius})
	w.Components.Loot.Set(xp, &component.LootComponent{Kind: event.LootXP, Value: 5})
	hp := w.CreateEntity()
	w.Components.Body.Set(hp, &component.BodyComponent{Pos: target.Pos, Radius: healthOrbRadius})
	w.Components.Loot.Set(hp, &component.LootComponent{Kind: event.LootHealth, Lifetime: 30 * time.Second})

	setDelta(w, 16*time.Millisecond)
	s.Update()

	stats := w.Resources.Stats
	if stats.XP != 5 || stats.XPCollected != 5 {
		t.Errorf("Expected 5 xp collected, got xp=%d collected=%d", stats.XP, stats.XPCollected)
	}
	if p.HP != 60 {
		t.Errorf("Expected hp healed to 60, got %v", p.HP)
	}
	if stats.HealthPickups != 1 {
		t.Errorf("Expected 1 health pickup, got %d", stats.HealthPickups)
	}
	if n := w.Components.Loot.Count(); n != 0 {
		t.Errorf("Expected all orbs collected, got %d left", n)
	}
	if n := countEvents(drainEvents(w), event.EventLootCollected); n != 2 {
		t.Errorf("Expected 2 collection events, got %d", n)
	}
}

func TestHealthOrbExpires(t *testing.T) {
	w := newTestWorld(t)
	s := NewLootSystem(w)

	e := w.CreateEntity()
	w.Components.Body.Set(e, &component.BodyComponent{Pos: vmath.V2(100, 100), Radius: healthOrbRadius})
	w.Components.Loot.Set(e, &component.LootComponent{Kind: event.LootHealth, Lifetime: parameter.HealthOrbLifetime})

	setDelta(w, parameter.HealthOrbLifetime)
	s.Update()

	if w.Components.Loot.Has(e) {
		t.Error("Expected health orb removed after its lifetime")
	}
}

func TestBossDropsXPTwice(t *testing.T) {
	w := newTestWorld(t)
	w.Resources.Tuning.Health.DropChance = 0
	w.Resources.Tuning.Health.MinChance = 0
	s := NewLootSystem(w)

	s.HandleEvent(event.GameEvent{Type: event.EventEnemyDied, Payload: &event.EnemyDiedPayload{
		Boss: true, XP: 25, Position: vmath.V2(100, 100),
	}})

	total := 0
	for _, e := range w.Components.Loot.GetAllEntities() {
		orb, _ := w.Components.Loot.Get(e)
		total += orb.Value
	}
	if total != 50 {
		t.Errorf("Expected 50 xp dropped, got %d", total)
	}
	if n := w.Components.Loot.Count(); n != 2 {
		t.Errorf("Expected 2 orbs, got %d", n)
	}
}
