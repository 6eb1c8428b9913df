package parameter

import "time"

// PlayerEdgeOffset is added to the player radius for effect origins on the player rim
const PlayerEdgeOffset = 5.0

// Auto-fire projectiles
const (
	ProjectileSpeedPerSpeedBonus = 50.0
	ProjectileBaseLifetime       = 1500 * time.Millisecond
	ProjectileLifetimePerSpeed   = 200 * time.Millisecond
	ProjectileLifetimePerRange   = 1500 * time.Millisecond

	// ProjectileArmDistance is the travel distance before a player shot becomes visible and can hit
	ProjectileArmDistance = 20.0

	// ProjectileHitRadius is the collision radius between a shot center and an enemy center
	ProjectileHitRadius = 15.0

	// ProjectileCullMargin is the distance outside the arena at which shots are removed
	ProjectileCullMargin = 50.0

	// MinAttackInterval floors the fire interval regardless of attack speed stacking
	MinAttackInterval = 100 * time.Millisecond
)

// Piercing rounds lose this fraction of damage per hit, compounding
const PierceDamageFactor = 0.9

// Explosive rounds
const (
	ExplosionBaseRadius     = 30.0
	ExplosionRadiusPerLevel = 10.0
	ExplosionDamageFactor   = 0.8
	ExplosionLevelAmplifier = 0.2
	ExplosionVisualDuration = 300 * time.Millisecond
)

// RangeBonusPerLevel is granted per level of the range power-up
const RangeBonusPerLevel = 0.1

// Shield
const (
	ShieldBaseCapacity     = 50.0
	ShieldCapacityPerLevel = 25.0
	ShieldRegenBase        = 10 * time.Second
	ShieldRegenStep        = time.Second
	ShieldRegenMin         = 6 * time.Second
)

// Aura
const (
	AuraBaseRadius   = 50.0
	AuraRadiusGrowth = 1.15
	AuraRadiusStep   = 15.0
)

// Radiotherapy rays
const (
	RadiotherapyBaseInterval  = time.Second
	RadiotherapyIntervalStep  = 100 * time.Millisecond
	RadiotherapyMinInterval   = 300 * time.Millisecond
	RadiotherapyBaseRange     = 200.0
	RadiotherapyRangePerLevel = 50.0
	RadiotherapyRangePerBonus = 200.0
	RadiotherapyVisual        = 200 * time.Millisecond
)

// Chain lightning
const (
	LightningBaseInterval   = 2 * time.Second
	LightningIntervalStep   = 200 * time.Millisecond
	LightningMinInterval    = 800 * time.Millisecond
	LightningTargetRange    = 200.0
	LightningBaseDamage     = 15.0
	LightningDamagePerLevel = 10.0
	LightningJumpBase       = 80.0
	LightningJumpPerLevel   = 20.0
	LightningJumpDelay      = 150 * time.Millisecond
	LightningJumpFalloff    = 0.8
	LightningVisual         = 250 * time.Millisecond
)

// SpeedBonusScale converts one unit of speed bonus into px/s of movement
const SpeedBonusScale = 100.0
