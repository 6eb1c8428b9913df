// Package combat applies damage and resolves its consequences.
// Every damage source in the simulation goes through the Resolver so that hp
// clamping, shield absorption, invincibility and death crediting are enforced
// in exactly one place.
package combat

import (
	"math"
	"slices"
	"sync/atomic"

	"github.com/lixenwraith/oncoarena/component"
	"github.com/lixenwraith/oncoarena/core"
	"github.com/lixenwraith/oncoarena/engine"
	"github.com/lixenwraith/oncoarena/event"
	"github.com/lixenwraith/oncoarena/parameter"
	"github.com/lixenwraith/oncoarena/status"
	"github.com/lixenwraith/oncoarena/vmath"
)

// Damage source tags carried in events and analytics
const (
	SourceProjectile = "projectile"
	SourceExplosion  = "explosion"
	SourceAura       = "aura"
	SourceLightning  = "lightning"
	SourceRay        = "ray"
	SourceContact    = "contact"
	SourceHazard     = "hazard"
)

// DeathHandler is invoked exactly once per death
type DeathHandler interface {
	EnemyDied(e core.Entity, enemy *component.EnemyComponent, body *component.BodyComponent, source string)
	PlayerDied(source string)
}

// PlayerHit reports the outcome of one DamagePlayer call
type PlayerHit struct {
	Absorbed float64
	Applied  float64
	Ignored  bool
	Died     bool
}

// Resolver is owned by the simulation and handed to the systems that deal damage
type Resolver struct {
	world *engine.World
	death DeathHandler

	statDealt    *status.AtomicFloat
	statTaken    *status.AtomicFloat
	statAbsorbed *status.AtomicFloat
	statDeaths   *atomic.Int64
	statIgnored  *atomic.Int64
}

func NewResolver(world *engine.World) *Resolver {
	reg := world.Resources.Status
	return &Resolver{
		world:        world,
		statDealt:    reg.Floats.Get("combat.damage_dealt"),
		statTaken:    reg.Floats.Get("combat.damage_taken"),
		statAbsorbed: reg.Floats.Get("combat.absorbed"),
		statDeaths:   reg.Ints.Get("combat.deaths"),
		statIgnored:  reg.Ints.Get("combat.ignored"),
	}
}

// SetDeathHandler wires the death routing point
func (r *Resolver) SetDeathHandler(h DeathHandler) {
	r.death = h
}

// Reset clears run metrics
func (r *Resolver) Reset() {
	r.statDealt.Set(0)
	r.statTaken.Set(0)
	r.statAbsorbed.Set(0)
	r.statDeaths.Store(0)
	r.statIgnored.Store(0)
}

func usable(amount float64) bool {
	return amount > 0 && !math.IsNaN(amount) && !math.IsInf(amount, 0)
}

// DamagePlayer applies damage to the player
// A charged shield absorbs first; only damage reaching hp grants invincibility,
// and during invincibility every hit is ignored in full
func (r *Resolver) DamagePlayer(amount float64, source string) PlayerHit {
	var hit PlayerHit
	if !usable(amount) || r.world.Resources.Game.Over() {
		return hit
	}
	pe := r.world.Resources.Player.Entity
	p, ok := r.world.Components.Player.Get(pe)
	if !ok || p.HP <= 0 {
		return hit
	}
	if p.Invincible {
		r.statIgnored.Add(1)
		hit.Ignored = true
		return hit
	}

	if p.Shield.Active() {
		s := &p.Shield
		hit.Absorbed = math.Min(s.Capacity, amount)
		s.Capacity -= hit.Absorbed
		amount -= hit.Absorbed
		if s.Capacity <= 0 {
			s.Capacity = 0
			s.Regenerating = true
			s.RegenTimer = s.RegenDuration
			r.world.PushEvent(event.EventShieldBroken, nil)
		}
		r.statAbsorbed.Add(hit.Absorbed)
	}

	if amount > 0 {
		hit.Applied = math.Min(amount, p.HP)
		p.HP = math.Max(0, p.HP-amount)
		p.Invincible = true
		p.InvincibleTimer = p.InvincibilityGrant
		r.world.Resources.Stats.DamageTaken += hit.Applied
		r.statTaken.Add(hit.Applied)
	}

	r.world.PushEvent(event.EventPlayerDamaged, &event.PlayerDamagedPayload{
		Amount:   hit.Applied,
		Absorbed: hit.Absorbed,
		Source:   source,
		HP:       p.HP,
		Level:    r.world.Resources.Stats.Level,
	})

	if p.HP <= 0 {
		hit.Died = true
		if r.death != nil {
			r.death.PlayerDied(source)
		}
	}
	return hit
}

// aliveEnemy returns the enemy and body of e if it can still take damage
func (r *Resolver) aliveEnemy(e core.Entity) (*component.EnemyComponent, *component.BodyComponent, bool) {
	enemy, ok := r.world.Components.Enemy.Get(e)
	if !ok || enemy.Dead {
		return nil, nil, false
	}
	body, ok := r.world.Components.Body.Get(e)
	if !ok {
		return nil, nil, false
	}
	return enemy, body, true
}

// Alive reports whether e is an enemy that has not died
func (r *Resolver) Alive(e core.Entity) bool {
	_, _, ok := r.aliveEnemy(e)
	return ok
}

// DamageEnemy applies damage and credits the death once
// Returns the hp actually removed and whether this call killed the enemy
func (r *Resolver) DamageEnemy(e core.Entity, amount float64, source string) (float64, bool) {
	if !usable(amount) {
		return 0, false
	}
	enemy, body, ok := r.aliveEnemy(e)
	if !ok {
		return 0, false
	}
	if enemy.Boss != nil && (enemy.Boss.Immune || enemy.Boss.Phase == event.BossEntering) {
		return 0, false
	}

	applied := math.Min(amount, enemy.HP)
	enemy.HP = math.Max(0, enemy.HP-amount)
	enemy.HitFlash = parameter.HitFlashDuration

	r.world.Resources.Stats.DamageDealt += applied
	r.statDealt.Add(applied)
	r.world.PushEvent(event.EventEnemyDamaged, &event.DamagePayload{
		Entity: e,
		Amount: applied,
		Source: source,
		Target: enemy.Tag(),
	})

	if enemy.HP > 0 {
		return applied, false
	}
	enemy.Dead = true
	r.statDeaths.Add(1)
	if r.death != nil {
		r.death.EnemyDied(e, enemy, body, source)
	}
	return applied, true
}

// candidate is an enemy ranked by distance
type candidate struct {
	e    core.Entity
	pos  vmath.Vec2
	dist float64
}

// nearest lists living enemies within reach of from, closest first, skipping excluded ids
func (r *Resolver) nearest(from vmath.Vec2, reach float64, exclude map[core.Entity]struct{}) []candidate {
	var out []candidate
	for _, e := range r.world.Components.Enemy.GetAllEntities() {
		if _, skip := exclude[e]; skip {
			continue
		}
		enemy, body, ok := r.aliveEnemy(e)
		if !ok {
			continue
		}
		// Bosses still entering cannot be targeted
		if enemy.Boss != nil && enemy.Boss.Phase != event.BossActive {
			continue
		}
		d := vmath.Dist(from, body.Pos)
		if d <= reach {
			out = append(out, candidate{e: e, pos: body.Pos, dist: d})
		}
	}
	slices.SortStableFunc(out, func(a, b candidate) int {
		switch {
		case a.dist < b.dist:
			return -1
		case a.dist > b.dist:
			return 1
		}
		return int(a.e) - int(b.e)
	})
	return out
}

func (r *Resolver) player() (*component.PlayerComponent, *component.BodyComponent, bool) {
	pe := r.world.Resources.Player.Entity
	p, ok := r.world.Components.Player.Get(pe)
	if !ok {
		return nil, nil, false
	}
	b, ok := r.world.Components.Body.Get(pe)
	return p, b, ok
}

// rimPoint is where a beam leaves the player body toward target
func rimPoint(center vmath.Vec2, radius float64, target vmath.Vec2) vmath.Vec2 {
	return center.Add(target.Sub(center).Normalize().Scale(radius + parameter.PlayerEdgeOffset))
}
