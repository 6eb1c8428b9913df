package parameter

import "time"

// Support archetype
const (
	SupportPulseInterval = time.Second
	SupportBuffDuration  = 2 * time.Second
)

// Shooter archetype and enemy projectiles
const (
	ShooterInaccuracy       = 0.3
	EnemyProjectileSpeed    = 100.0
	EnemyProjectileLifetime = 1500 * time.Millisecond
	BossProjectileLifetime  = 4 * time.Second
	TrackingJitter          = 0.2
	EnemyProjectileRadius   = 15.0
)

// HitFlashDuration is how long frontends tint an enemy after it takes damage
const HitFlashDuration = 100 * time.Millisecond
