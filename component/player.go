package component

import (
	"math"
	"time"

	"github.com/lixenwraith/oncoarena/parameter"
	"github.com/lixenwraith/oncoarena/vmath"
)

// ShieldComponent absorbs damage before hp and refills after a regen delay
type ShieldComponent struct {
	Level         int
	MaxCapacity   float64
	Capacity      float64
	Regenerating  bool
	RegenTimer    time.Duration // remaining until refill
	RegenDuration time.Duration
}

// Active reports whether the shield is unlocked and charged
func (s *ShieldComponent) Active() bool {
	return s.Level > 0 && !s.Regenerating && s.Capacity > 0
}

// PlayerComponent holds the player's mutable stats and ability levels
// Base values come from tuning; bonuses accumulate through power-ups
type PlayerComponent struct {
	HP    float64
	MaxHP float64

	BaseSpeed  float64 // px/s
	SpeedBonus float64 // additive, one unit = SpeedBonusScale px/s

	BaseProjectiles    int
	ExtraProjectiles   int
	BaseDamage         float64
	DamageBonus        float64
	BaseShotSpeed      float64
	BaseInterval       time.Duration
	IntervalReduction  float64 // fraction of BaseInterval removed
	RangeBonus         float64 // fraction, 0.1 per level
	AuraDamage         float64 // per second
	InvincibilityGrant time.Duration

	// Ability levels, zero when locked
	Radiotherapy int
	Explosive    int
	Lightning    int
	Piercing     int
	Magnet       int

	Shield ShieldComponent

	// Invincible excludes all damage until InvincibleTimer runs out
	Invincible      bool
	InvincibleTimer time.Duration

	// Countdown timers for periodic attacks
	FireTimer      time.Duration
	RayTimer       time.Duration
	LightningTimer time.Duration

	// Intent is the normalized movement direction from input
	Intent vmath.Vec2
	Facing vmath.Vec2
}

// MoveSpeed returns the current movement speed in px/s
func (p *PlayerComponent) MoveSpeed() float64 {
	return p.BaseSpeed + p.SpeedBonus*parameter.SpeedBonusScale
}

func (p *PlayerComponent) ProjectileCount() int {
	return p.BaseProjectiles + p.ExtraProjectiles
}

func (p *PlayerComponent) ProjectileDamage() float64 {
	return p.BaseDamage + p.DamageBonus
}

// ShotSpeed is the projectile speed; movement bonus carries over to projectiles
func (p *PlayerComponent) ShotSpeed() float64 {
	return p.BaseShotSpeed + p.SpeedBonus*parameter.ProjectileSpeedPerSpeedBonus
}

// FireInterval is the auto-fire period after attack speed reduction
func (p *PlayerComponent) FireInterval() time.Duration {
	iv := time.Duration(float64(p.BaseInterval) * (1 - p.IntervalReduction))
	if iv < parameter.MinAttackInterval {
		return parameter.MinAttackInterval
	}
	return iv
}

// ProjectileLifetime grows with speed and range bonuses
func (p *PlayerComponent) ProjectileLifetime() time.Duration {
	return parameter.ProjectileBaseLifetime +
		time.Duration(p.SpeedBonus*float64(parameter.ProjectileLifetimePerSpeed)) +
		time.Duration(p.RangeBonus*float64(parameter.ProjectileLifetimePerRange))
}

// AuraRadius grows one step per AuraRadiusStep damage
func (p *PlayerComponent) AuraRadius() float64 {
	steps := math.Floor(p.AuraDamage / parameter.AuraRadiusStep)
	return parameter.AuraBaseRadius * math.Pow(parameter.AuraRadiusGrowth, steps)
}

// Heal adds hp clamped to MaxHP; returns the amount actually restored
func (p *PlayerComponent) Heal(amount float64) float64 {
	if amount <= 0 || p.HP <= 0 {
		return 0
	}
	before := p.HP
	p.HP = math.Min(p.MaxHP, p.HP+amount)
	return p.HP - before
}

// SetShieldLevel applies the per-level shield curve; a fresh shield starts full
func (p *PlayerComponent) SetShieldLevel(level int) {
	s := &p.Shield
	fresh := s.Level == 0
	s.Level = level
	s.MaxCapacity = parameter.ShieldBaseCapacity + float64(level-1)*parameter.ShieldCapacityPerLevel
	s.RegenDuration = parameter.ShieldRegenBase - time.Duration(level-1)*parameter.ShieldRegenStep
	if s.RegenDuration < parameter.ShieldRegenMin {
		s.RegenDuration = parameter.ShieldRegenMin
	}
	if fresh {
		s.Capacity = s.MaxCapacity
	}
	if s.Capacity > s.MaxCapacity {
		s.Capacity = s.MaxCapacity
	}
}

// RayInterval is the radiotherapy period for the current level
func (p *PlayerComponent) RayInterval() time.Duration {
	iv := parameter.RadiotherapyBaseInterval - time.Duration(p.Radiotherapy-1)*parameter.RadiotherapyIntervalStep
	if iv < parameter.RadiotherapyMinInterval {
		return parameter.RadiotherapyMinInterval
	}
	return iv
}

// RayRange is the radiotherapy reach for the current level
func (p *PlayerComponent) RayRange() float64 {
	return parameter.RadiotherapyBaseRange +
		float64(p.Radiotherapy-1)*parameter.RadiotherapyRangePerLevel +
		parameter.RadiotherapyRangePerBonus*p.RangeBonus
}

// LightningInterval is the chain lightning period for the current level
func (p *PlayerComponent) LightningInterval() time.Duration {
	iv := parameter.LightningBaseInterval - time.Duration(p.Lightning-1)*parameter.LightningIntervalStep
	if iv < parameter.LightningMinInterval {
		return parameter.LightningMinInterval
	}
	return iv
}
