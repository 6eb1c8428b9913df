package combat

import (
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/oncoarena/component"
	"github.com/lixenwraith/oncoarena/core"
	"github.com/lixenwraith/oncoarena/engine"
	"github.com/lixenwraith/oncoarena/event"
	"github.com/lixenwraith/oncoarena/parameter"
	"github.com/lixenwraith/oncoarena/tuning"
	"github.com/lixenwraith/oncoarena/vmath"
)

type recordingDeaths struct {
	enemies []core.Entity
	player  int
}

func (d *recordingDeaths) EnemyDied(e core.Entity, _ *component.EnemyComponent, _ *component.BodyComponent, _ string) {
	d.enemies = append(d.enemies, e)
}

func (d *recordingDeaths) PlayerDied(string) { d.player++ }

func newTestResolver(t *testing.T) (*engine.World, *Resolver, *recordingDeaths) {
	t.Helper()
	w := engine.NewWorld(tuning.Default(), 7)
	pe := w.CreateEntity()
	w.Resources.Player.Entity = pe
	w.Components.Body.Set(pe, &component.BodyComponent{Pos: vmath.V2(640, 360), Radius: 15})
	w.Components.Player.Set(pe, &component.PlayerComponent{
		HP: 100, MaxHP: 100, BaseDamage: 10, InvincibilityGrant: time.Second,
	})
	r := NewResolver(w)
	d := &recordingDeaths{}
	r.SetDeathHandler(d)
	return w, r, d
}

func addEnemy(w *engine.World, pos vmath.Vec2, hp float64) core.Entity {
	e := w.CreateEntity()
	w.Components.Body.Set(e, &component.BodyComponent{Pos: pos, Radius: 6})
	w.Components.Enemy.Set(e, &component.EnemyComponent{Archetype: "red", HP: hp, MaxHP: hp})
	return e
}

func playerOf(w *engine.World) *component.PlayerComponent {
	p, _ := w.Components.Player.Get(w.Resources.Player.Entity)
	return p
}

func TestPlayerHPClamped(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		wantHP float64
	}{
		{"partial", 30, 70},
		{"exact", 100, 0},
		{"overkill", 1e9, 0},
		{"zero", 0, 100},
		{"negative", -50, 100},
		{"nan", math.NaN(), 100},
		{"inf", math.Inf(1), 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, r, _ := newTestResolver(t)
			r.DamagePlayer(tt.amount, SourceContact)
			p := playerOf(w)
			if p.HP != tt.wantHP {
				t.Errorf("Expected hp %v, got %v", tt.wantHP, p.HP)
			}
			if p.HP < 0 || p.HP > p.MaxHP {
				t.Errorf("Expected hp within [0, %v], got %v", p.MaxHP, p.HP)
			}
		})
	}
}

func TestShieldAbsorbsThenOverflows(t *testing.T) {
	w, r, _ := newTestResolver(t)
	p := playerOf(w)
	p.SetShieldLevel(1)
	if p.Shield.Capacity != 50 {
		t.Fatalf("Expected fresh shield 50, got %v", p.Shield.Capacity)
	}

	hit := r.DamagePlayer(70, SourceContact)

	if hit.Absorbed != 50 || hit.Applied != 20 {
		t.Errorf("Expected 50 absorbed and 20 applied, got %v and %v", hit.Absorbed, hit.Applied)
	}
	if p.Shield.Capacity != 0 || !p.Shield.Regenerating {
		t.Errorf("Expected depleted regenerating shield, got %v regen=%v", p.Shield.Capacity, p.Shield.Regenerating)
	}
	if p.Shield.RegenTimer != p.Shield.RegenDuration {
		t.Errorf("Expected regen timer %v, got %v", p.Shield.RegenDuration, p.Shield.RegenTimer)
	}
	if p.HP != 80 {
		t.Errorf("Expected hp 80, got %v", p.HP)
	}
	if !p.Invincible {
		t.Error("Expected invincibility after hp damage")
	}
}

func TestShieldAbsorbGrantsNoInvincibility(t *testing.T) {
	w, r, _ := newTestResolver(t)
	p := playerOf(w)
	p.SetShieldLevel(1)

	r.DamagePlayer(20, SourceContact)
	if p.Invincible {
		t.Error("Expected no invincibility when the shield held")
	}
	if p.Shield.Capacity != 30 || p.HP != 100 {
		t.Errorf("Expected shield 30 and hp 100, got %v and %v", p.Shield.Capacity, p.HP)
	}

	// Second hit is not ignored
	r.DamagePlayer(20, SourceContact)
	if p.Shield.Capacity != 10 {
		t.Errorf("Expected shield 10, got %v", p.Shield.Capacity)
	}
}

func TestInvincibilityIgnoresWholeHit(t *testing.T) {
	w, r, _ := newTestResolver(t)
	r.DamagePlayer(10, SourceContact)
	hit := r.DamagePlayer(50, SourceContact)

	if !hit.Ignored {
		t.Error("Expected second hit ignored")
	}
	if p := playerOf(w); p.HP != 90 {
		t.Errorf("Expected hp 90, got %v", p.HP)
	}
}

func TestPlayerDeathOnce(t *testing.T) {
	w, r, d := newTestResolver(t)
	r.DamagePlayer(500, SourceContact)
	playerOf(w).Invincible = false
	r.DamagePlayer(500, SourceContact)

	if d.player != 1 {
		t.Errorf("Expected one player death, got %d", d.player)
	}
}

func TestEnemyDeathCreditedOnce(t *testing.T) {
	w, r, d := newTestResolver(t)
	e := addEnemy(w, vmath.V2(100, 100), 10)

	for i := 0; i < 5; i++ {
		r.DamageEnemy(e, 8, SourceProjectile)
	}

	if len(d.enemies) != 1 {
		t.Fatalf("Expected one death, got %d", len(d.enemies))
	}
	enemy, _ := w.Components.Enemy.Get(e)
	if enemy.HP != 0 {
		t.Errorf("Expected hp clamped to 0, got %v", enemy.HP)
	}
	if w.Resources.Stats.DamageDealt != 10 {
		t.Errorf("Expected 10 damage credited, got %v", w.Resources.Stats.DamageDealt)
	}
}

func TestBossImmunity(t *testing.T) {
	w, r, _ := newTestResolver(t)
	e := addEnemy(w, vmath.V2(100, 100), 100)
	enemy, _ := w.Components.Enemy.Get(e)
	enemy.Boss = &component.BossState{Name: "Chemoresistance", Phase: event.BossActive, Immune: true}

	if got, _ := r.DamageEnemy(e, 50, SourceProjectile); got != 0 {
		t.Errorf("Expected immune boss to take 0, got %v", got)
	}
	enemy.Boss.Immune = false
	if got, _ := r.DamageEnemy(e, 50, SourceProjectile); got != 50 {
		t.Errorf("Expected 50 after immunity, got %v", got)
	}
}

func TestPiercingDamageDecay(t *testing.T) {
	for level := 0; level <= 3; level++ {
		w, r, _ := newTestResolver(t)
		pe := w.CreateEntity()
		w.Components.Body.Set(pe, &component.BodyComponent{Pos: vmath.V2(0, 0)})
		proj := &component.ProjectileComponent{Damage: 10, OriginalDamage: 10, MaxHits: 1 + level, Visible: true}
		w.Components.Projectile.Set(pe, proj)

		maxHits := 1 + level
		for k := 1; k <= maxHits; k++ {
			e := addEnemy(w, vmath.V2(float64(k)*100, 0), 1000)
			destroyed := r.ProjectileHit(pe, proj, e)

			if destroyed != (k == maxHits) {
				t.Fatalf("Level %d hit %d: expected destroyed=%v, got %v", level, k, k == maxHits, destroyed)
			}
			if !destroyed {
				want := 10 * math.Pow(0.9, float64(k))
				if math.Abs(proj.Damage-want) > 1e-9 {
					t.Errorf("Level %d after %d hits: expected %v, got %v", level, k, want, proj.Damage)
				}
			}
		}
		if w.Components.Projectile.Has(pe) {
			t.Errorf("Level %d: expected projectile destroyed", level)
		}
	}
}

func TestProjectileSkipsSameEnemy(t *testing.T) {
	w, r, _ := newTestResolver(t)
	pe := w.CreateEntity()
	proj := &component.ProjectileComponent{Damage: 10, OriginalDamage: 10, MaxHits: 3}
	w.Components.Projectile.Set(pe, proj)
	e := addEnemy(w, vmath.V2(0, 0), 100)

	r.ProjectileHit(pe, proj, e)
	r.ProjectileHit(pe, proj, e)

	if proj.Hits != 1 {
		t.Errorf("Expected 1 hit, got %d", proj.Hits)
	}
}

func TestExplosionFalloff(t *testing.T) {
	w, r, _ := newTestResolver(t)
	center := vmath.V2(300, 300)
	level := 1 // radius 40
	near := addEnemy(w, center, 100)
	mid := addEnemy(w, center.Add(vmath.V2(20, 0)), 100)
	out := addEnemy(w, center.Add(vmath.V2(41, 0)), 100)

	r.Explode(center, 10, level)

	amp := 1.2
	hp := func(e core.Entity) float64 { en, _ := w.Components.Enemy.Get(e); return en.HP }
	if got := 100 - hp(near); math.Abs(got-10*amp) > 1e-9 {
		t.Errorf("Expected full damage %v at center, got %v", 10*amp, got)
	}
	if got := 100 - hp(mid); math.Abs(got-10*0.5*amp) > 1e-9 {
		t.Errorf("Expected half damage %v at mid radius, got %v", 10*0.5*amp, got)
	}
	if hp(out) != 100 {
		t.Errorf("Expected enemy outside radius untouched, got %v", hp(out))
	}
}

func TestExplosiveRoundsOnFirstHitOnly(t *testing.T) {
	w, r, _ := newTestResolver(t)
	pe := w.CreateEntity()
	w.Components.Body.Set(pe, &component.BodyComponent{Pos: vmath.V2(300, 300)})
	proj := &component.ProjectileComponent{Damage: 10, OriginalDamage: 10, MaxHits: 3, Explodes: 1}
	w.Components.Projectile.Set(pe, proj)

	first := addEnemy(w, vmath.V2(300, 300), 1000)
	bystander := addEnemy(w, vmath.V2(310, 300), 1000)
	r.ProjectileHit(pe, proj, first)

	by, _ := w.Components.Enemy.Get(bystander)
	afterFirst := by.HP
	if afterFirst >= 1000 {
		t.Fatal("Expected bystander caught in explosion")
	}

	second := addEnemy(w, vmath.V2(500, 500), 1000)
	r.ProjectileHit(pe, proj, second)
	if by.HP != afterFirst {
		t.Errorf("Expected no second explosion, bystander hp %v -> %v", afterFirst, by.HP)
	}
}

func TestChainLightningJumps(t *testing.T) {
	w, r, _ := newTestResolver(t)
	p := playerOf(w)
	p.Lightning = 2 // 3 strikes, damage 35, jump range 120

	a := addEnemy(w, vmath.V2(700, 360), 1000)
	b := addEnemy(w, vmath.V2(780, 360), 1000)
	c := addEnemy(w, vmath.V2(860, 360), 1000)
	far := addEnemy(w, vmath.V2(1200, 360), 1000)

	if !r.ChainLightning() {
		t.Fatal("Expected chain to start")
	}
	hp := func(e core.Entity) float64 { en, _ := w.Components.Enemy.Get(e); return en.HP }
	if hp(a) != 965 || hp(b) != 1000 {
		t.Fatalf("Expected only first target hit immediately, got a=%v b=%v", hp(a), hp(b))
	}

	w.Resources.Scheduler.Advance(parameter.LightningJumpDelay, nil)
	if math.Abs((1000-hp(b))-35*0.8) > 1e-9 {
		t.Errorf("Expected second jump for %v, got %v", 35*0.8, 1000-hp(b))
	}
	w.Resources.Scheduler.Advance(2*parameter.LightningJumpDelay, nil)
	if math.Abs((1000-hp(c))-35*0.8*0.8) > 1e-9 {
		t.Errorf("Expected third jump for %v, got %v", 35*0.8*0.8, 1000-hp(c))
	}
	w.Resources.Scheduler.Advance(time.Second, nil)
	if hp(far) != 1000 {
		t.Errorf("Expected chain to stop after 3 strikes, far hp %v", hp(far))
	}
}

func TestChainLightningSkipsDeadTarget(t *testing.T) {
	w, r, _ := newTestResolver(t)
	playerOf(w).Lightning = 1

	addEnemy(w, vmath.V2(700, 360), 1000)
	b := addEnemy(w, vmath.V2(760, 360), 1000)
	r.ChainLightning()

	// Target dies before the scheduled jump lands
	w.DestroyEntity(b)
	if n := w.Resources.Scheduler.Advance(time.Second, nil); n != 0 {
		t.Errorf("Expected jump to be dropped, ran %d", n)
	}
}

func TestAuraScalesWithDelta(t *testing.T) {
	w, r, _ := newTestResolver(t)
	playerOf(w).AuraDamage = 15 // radius 57.5
	inside := addEnemy(w, vmath.V2(690, 360), 100)
	outside := addEnemy(w, vmath.V2(720, 360), 100)

	r.Aura(500 * time.Millisecond)

	in, _ := w.Components.Enemy.Get(inside)
	outE, _ := w.Components.Enemy.Get(outside)
	if in.HP != 92.5 {
		t.Errorf("Expected 7.5 aura damage, hp %v", in.HP)
	}
	if outE.HP != 100 {
		t.Errorf("Expected enemy outside aura untouched, hp %v", outE.HP)
	}
}

func TestRadiotherapyTargetsNearest(t *testing.T) {
	w, r, _ := newTestResolver(t)
	playerOf(w).Radiotherapy = 2

	near := addEnemy(w, vmath.V2(660, 360), 100)
	mid := addEnemy(w, vmath.V2(700, 360), 100)
	far := addEnemy(w, vmath.V2(750, 360), 100)

	if n := r.Radiotherapy(); n != 2 {
		t.Fatalf("Expected 2 rays, got %d", n)
	}
	hp := func(e core.Entity) float64 { en, _ := w.Components.Enemy.Get(e); return en.HP }
	if hp(near) != 90 || hp(mid) != 90 || hp(far) != 100 {
		t.Errorf("Expected two nearest hit, got %v %v %v", hp(near), hp(mid), hp(far))
	}
}
