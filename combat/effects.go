package combat

import (
	"math"
	"time"

	"github.com/lixenwraith/oncoarena/component"
	"github.com/lixenwraith/oncoarena/core"
	"github.com/lixenwraith/oncoarena/event"
	"github.com/lixenwraith/oncoarena/parameter"
	"github.com/lixenwraith/oncoarena/vmath"
)

// ProjectileHit resolves a player projectile striking an enemy
// Returns true when the projectile is used up and has been destroyed
func (r *Resolver) ProjectileHit(pe core.Entity, proj *component.ProjectileComponent, target core.Entity) bool {
	if proj.AlreadyHit(target) || !r.Alive(target) {
		return false
	}
	if proj.HitSet == nil {
		proj.HitSet = make(map[core.Entity]struct{}, proj.MaxHits)
	}
	proj.HitSet[target] = struct{}{}
	proj.Hits++

	var at vmath.Vec2
	if b, ok := r.world.Components.Body.Get(pe); ok {
		at = b.Pos
	}

	hitDamage := proj.Damage
	r.DamageEnemy(target, hitDamage, SourceProjectile)

	if proj.Explodes > 0 && proj.Hits == 1 {
		r.Explode(at, hitDamage*parameter.ExplosionDamageFactor, proj.Explodes)
	}

	if proj.Hits >= proj.MaxHits {
		r.world.DestroyEntity(pe)
		return true
	}
	// Each pass through a cell compounds the reduction from the original damage
	proj.Damage = proj.OriginalDamage * math.Pow(parameter.PierceDamageFactor, float64(proj.Hits))
	return false
}

// ExplosionRadius is the burst radius at an explosive rounds level
func ExplosionRadius(level int) float64 {
	return parameter.ExplosionBaseRadius + parameter.ExplosionRadiusPerLevel*float64(level)
}

// Explode damages every enemy within the level's radius with linear falloff
func (r *Resolver) Explode(center vmath.Vec2, damage float64, level int) int {
	radius := ExplosionRadius(level)
	amp := 1 + parameter.ExplosionLevelAmplifier*float64(level)
	r.world.PushEvent(event.EventExplosion, &event.ExplosionPayload{Position: center, Radius: radius})

	hits := 0
	for _, c := range r.nearest(center, radius, nil) {
		dmg := damage * (1 - c.dist/radius) * amp
		if dmg <= 0 {
			continue
		}
		r.DamageEnemy(c.e, dmg, SourceExplosion)
		hits++
	}
	return hits
}

// Aura damages every enemy inside the player's aura, scaled by the tick delta
func (r *Resolver) Aura(dt time.Duration) int {
	p, body, ok := r.player()
	if !ok || p.AuraDamage <= 0 {
		return 0
	}
	dmg := p.AuraDamage * dt.Seconds()
	hits := 0
	for _, c := range r.nearest(body.Pos, p.AuraRadius(), nil) {
		r.DamageEnemy(c.e, dmg, SourceAura)
		hits++
	}
	return hits
}

// Radiotherapy strikes the nearest enemies in reach, one ray per level
func (r *Resolver) Radiotherapy() int {
	p, body, ok := r.player()
	if !ok || p.Radiotherapy <= 0 {
		return 0
	}
	targets := r.nearest(body.Pos, p.RayRange(), nil)
	if len(targets) > p.Radiotherapy {
		targets = targets[:p.Radiotherapy]
	}
	dmg := p.ProjectileDamage()
	for _, c := range targets {
		r.world.PushEvent(event.EventRay, &event.LightningPayload{
			From:   rimPoint(body.Pos, body.Radius, c.pos),
			To:     c.pos,
			Target: c.e,
			Damage: dmg,
		})
		r.DamageEnemy(c.e, dmg, SourceRay)
	}
	return len(targets)
}

// ChainLightning strikes the nearest enemy, then jumps to the closest unhit enemy
// after a delay, up to 1+level strikes, losing a fifth of its damage per jump
// Jumps are scheduled; each one is dropped if its target died in the meantime
func (r *Resolver) ChainLightning() bool {
	p, body, ok := r.player()
	if !ok || p.Lightning <= 0 {
		return false
	}
	reach := parameter.LightningTargetRange * (1 + p.RangeBonus)
	first := r.nearest(body.Pos, reach, nil)
	if len(first) == 0 {
		return false
	}

	level := p.Lightning
	damage := parameter.LightningBaseDamage + parameter.LightningDamagePerLevel*float64(level)
	jumpRange := (parameter.LightningJumpBase + parameter.LightningJumpPerLevel*float64(level)) * (1 + p.RangeBonus)
	hit := make(map[core.Entity]struct{}, level+1)

	from := rimPoint(body.Pos, body.Radius, first[0].pos)
	r.strike(first[0].e, from, damage, level+1, jumpRange, hit)
	return true
}

// strike hits target and schedules the next jump
func (r *Resolver) strike(target core.Entity, from vmath.Vec2, damage float64, left int, jumpRange float64, hit map[core.Entity]struct{}) {
	_, tb, ok := r.aliveEnemy(target)
	if !ok || left <= 0 {
		return
	}
	hit[target] = struct{}{}
	at := tb.Pos

	r.world.PushEvent(event.EventLightning, &event.LightningPayload{
		From: from, To: at, Target: target, Damage: damage,
	})
	r.DamageEnemy(target, damage, SourceLightning)

	if left <= 1 {
		return
	}
	next := r.nearest(at, jumpRange, hit)
	if len(next) == 0 {
		return
	}
	nextTarget := next[0].e
	r.world.Resources.Scheduler.After(parameter.LightningJumpDelay,
		func() bool { return r.Alive(nextTarget) && !r.world.Resources.Game.Over() },
		func() {
			r.strike(nextTarget, at, damage*parameter.LightningJumpFalloff, left-1, jumpRange, hit)
		},
	)
}
