package system

import (
	"testing"
	"time"

	"github.com/lixenwraith/oncoarena/combat"
	"github.com/lixenwraith/oncoarena/component"
	"github.com/lixenwraith/oncoarena/core"
	"github.com/lixenwraith/oncoarena/engine"
	"github.com/lixenwraith/oncoarena/event"
	"github.com/lixenwraith/oncoarena/vmath"
)

// quietBoss adds an active boss whose timers will not fire during a short test
func quietBoss(w *engine.World, pos vmath.Vec2) core.Entity {
	e := addTestBoss(w, pos, event.BossActive)
	enemy, _ := w.Components.Enemy.Get(e)
	enemy.Boss.AttackTimer = time.Minute
	enemy.Boss.SpecialTimer = time.Minute
	return e
}

func hazardCount(w *engine.World, label string) int {
	n := 0
	for _, e := range w.Components.Hazard.GetAllEntities() {
		if h, ok := w.Components.Hazard.Get(e); ok && h.Label == label {
			n++
		}
	}
	return n
}

func TestBossEntranceThenActive(t *testing.T) {
	w := newTestWorld(t)
	s := NewBossSystem(w)
	e := addTestBoss(w, vmath.V2(100, 100), event.BossEntering)
	enemy, _ := w.Components.Enemy.Get(e)
	body, _ := w.Components.Body.Get(e)

	setDelta(w, time.Second)
	s.Update()
	if enemy.Boss.Phase != event.BossEntering {
		t.Fatalf("Expected boss still entering, got %v", enemy.Boss.Phase)
	}
	if body.Pos != vmath.V2(100, 100) {
		t.Errorf("Expected no movement while entering, got %v", body.Pos)
	}

	s.Update()
	if enemy.Boss.Phase != event.BossActive {
		t.Fatalf("Expected boss active after the entrance, got %v", enemy.Boss.Phase)
	}
	if n := countEvents(drainEvents(w), event.EventBossPhase); n != 1 {
		t.Errorf("Expected 1 phase event, got %d", n)
	}
	if w.Components.Projectile.Count() != 0 {
		t.Error("Expected no attack before the first interval")
	}
}

func TestBossLinearAttack(t *testing.T) {
	w := newTestWorld(t)
	s := NewBossSystem(w)
	e := quietBoss(w, vmath.V2(140, 360))
	enemy, _ := w.Components.Enemy.Get(e)
	enemy.Boss.AttackTimer = 0

	setDelta(w, 16*time.Millisecond)
	s.Update()

	shots := w.Components.Projectile.GetAllEntities()
	if len(shots) != 5 {
		t.Fatalf("Expected 5 shots, got %d", len(shots))
	}
	for _, pe := range shots {
		proj, _ := w.Components.Projectile.Get(pe)
		if !proj.Hostile || proj.Damage != 15 || proj.Owner != e {
			t.Errorf("Expected hostile 15 damage shot owned by the boss, got %+v", proj)
		}
	}
	if enemy.Boss.AttackTimer != enemy.Boss.AttackInterval {
		t.Errorf("Expected attack timer reset to %v, got %v", enemy.Boss.AttackInterval, enemy.Boss.AttackTimer)
	}
}

func TestImmunityAbsorbsDamage(t *testing.T) {
	w := newTestWorld(t)
	s := NewBossSystem(w).(*BossSystem)
	resolver := combat.NewResolver(w)
	e := quietBoss(w, vmath.V2(140, 360))

	s.immunity(e)

	if dealt, _ := resolver.DamageEnemy(e, 50, combat.SourceProjectile); dealt != 0 {
		t.Errorf("Expected an immune boss to take no damage, got %v", dealt)
	}
	if n := w.Components.Projectile.Count(); n != 1 {
		t.Errorf("Expected the first barrage shot immediately, got %d", n)
	}
	if n := w.Resources.Scheduler.Len(); n != 7 {
		t.Errorf("Expected 7 queued barrage shots, got %d", n)
	}

	enemy, _ := w.Components.Enemy.Get(e)
	setDelta(w, 5*time.Second)
	s.Update()
	if enemy.Boss.Immune {
		t.Error("Expected immunity to lapse after 5s")
	}
}

func TestScheduledStepsCancelledWithBoss(t *testing.T) {
	w := newTestWorld(t)
	s := NewBossSystem(w).(*BossSystem)
	e := quietBoss(w, vmath.V2(140, 360))

	s.corruption(e)
	if n := hazardCount(w, HazardCorruption); n != 1 {
		t.Fatalf("Expected the first ring immediately, got %d", n)
	}
	if w.Resources.Scheduler.Len() == 0 {
		t.Fatal("Expected later rings queued")
	}

	enemy, _ := w.Components.Enemy.Get(e)
	enemy.Dead = true
	w.Resources.Scheduler.Advance(20*time.Second, nil)

	if n := hazardCount(w, HazardCorruption); n != 1 {
		t.Errorf("Expected no rings after the boss died, got %d", n)
	}
	if n := w.Components.Projectile.Count(); n != 0 {
		t.Errorf("Expected the tracking follow-up cancelled, got %d shots", n)
	}
	if w.Resources.Scheduler.Len() != 0 {
		t.Errorf("Expected the queue drained, got %d", w.Resources.Scheduler.Len())
	}
}

func TestCorruptionRingsExpand(t *testing.T) {
	w := newTestWorld(t)
	s := NewBossSystem(w).(*BossSystem)
	e := quietBoss(w, vmath.V2(140, 360))

	s.corruption(e)
	w.Resources.Scheduler.Advance(15*time.Second, nil)

	var radii []float64
	for _, he := range w.Components.Hazard.GetAllEntities() {
		h, _ := w.Components.Hazard.Get(he)
		if h.Shape != component.HazardRing {
			t.Errorf("Expected ring hazards, got shape %v", h.Shape)
		}
		radii = append(radii, h.Radius)
	}
	want := []float64{50, 100, 150, 200}
	if len(radii) != len(want) {
		t.Fatalf("Expected rings %v, got %v", want, radii)
	}
	for i := range want {
		if radii[i] != want[i] {
			t.Errorf("Expected rings %v, got %v", want, radii)
			break
		}
	}
	if n := w.Components.Projectile.Count(); n != 3 {
		t.Errorf("Expected a 3 shot tracking follow-up, got %d", n)
	}
}

func TestMutateBuffsNearbyEnemies(t *testing.T) {
	w := newTestWorld(t)
	s := NewBossSystem(w).(*BossSystem)
	boss := quietBoss(w, vmath.V2(400, 400))
	near := addTestEnemy(w, vmath.V2(450, 400), 10)
	far := addTestEnemy(w, vmath.V2(700, 400), 10)

	s.mutate(boss)

	n, _ := w.Components.Enemy.Get(near)
	if n.Buff == nil || n.Buff.SpeedMult != 1.5 || n.Buff.DamageMult != 1.3 {
		t.Errorf("Expected 1.5 speed and 1.3 damage buff, got %+v", n.Buff)
	}
	f, _ := w.Components.Enemy.Get(far)
	if f.Buff != nil {
		t.Error("Expected distant enemy unbuffed")
	}
	b, _ := w.Components.Enemy.Get(boss)
	if b.Buff != nil {
		t.Error("Expected the boss not to buff itself")
	}
}

func TestDivideDetonatesOnThePlayer(t *testing.T) {
	w := newTestWorld(t)
	bosses := NewBossSystem(w).(*BossSystem)
	hazards := NewHazardSystem(w, combat.NewResolver(w))
	e := quietBoss(w, vmath.V2(400, 360))

	bosses.divide(e)
	if n := hazardCount(w, HazardDivide); n != 3 {
		t.Fatalf("Expected 3 satellites, got %d", n)
	}

	for i := 0; i < 20; i++ {
		setDelta(w, 100*time.Millisecond)
		hazards.Update()
	}

	p, _ := testPlayer(w)
	// first satellite lands at full falloff damage, the rest hit during invincibility
	if !near(p.HP, 92.5, 1e-6) {
		t.Errorf("Expected hp 92.5, got %v", p.HP)
	}
	if n := hazardCount(w, HazardDivide); n != 0 {
		t.Errorf("Expected satellites spent, got %d", n)
	}
}
