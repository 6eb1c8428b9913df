package component

import (
	"time"

	"github.com/lixenwraith/oncoarena/core"
	"github.com/lixenwraith/oncoarena/vmath"
)

// ProjectileComponent is a moving damage carrier
type ProjectileComponent struct {
	Owner   core.Entity
	Hostile bool // fired by an enemy, damages the player

	Damage         float64
	OriginalDamage float64

	Age      time.Duration
	Lifetime time.Duration

	// Tracking projectiles re-aim at the player each tick
	Tracking bool
	Speed    float64

	// Player projectiles stay invisible until clear of the player body
	Visible bool
	Origin  vmath.Vec2

	// Piercing bookkeeping, player projectiles only
	Hits     int
	MaxHits  int
	HitSet   map[core.Entity]struct{}
	Explodes int // explosive rounds level at fire time
}

// AlreadyHit reports whether e was struck by this projectile
func (p *ProjectileComponent) AlreadyHit(e core.Entity) bool {
	_, ok := p.HitSet[e]
	return ok
}
