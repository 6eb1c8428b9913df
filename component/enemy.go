package component

import (
	"time"

	"github.com/lixenwraith/oncoarena/event"
	"github.com/lixenwraith/oncoarena/tuning"
)

// SupportState pulses a speed/damage buff to nearby enemies
type SupportState struct {
	Radius     float64
	Multiplier float64
	Timer      time.Duration // until next pulse
}

// ShooterState fires tracking projectiles at the player
type ShooterState struct {
	Interval time.Duration
	Damage   float64
	Homing   bool
	Timer    time.Duration
}

// BuffState is a temporary speed/damage multiplier; re-applying refreshes it
type BuffState struct {
	SpeedMult  float64
	DamageMult float64
	Remaining  time.Duration
}

// BossState is the boss-only part of an enemy
type BossState struct {
	Name    string
	Index   int // roster position
	Level   int // ordinal used for stat scaling
	Attack  tuning.AttackType
	Special tuning.SpecialAttack
	Phase   event.BossPhase

	AttackInterval time.Duration
	AttackTimer    time.Duration
	SpecialTimer   time.Duration
	PhaseTimer     time.Duration // entrance countdown

	Immune      bool
	ImmuneTimer time.Duration

	// Revived bosses are bonus encounters outside the main slot
	Revived bool
}

// EnemyComponent is a hostile cell; Boss is non-nil for the boss variant
type EnemyComponent struct {
	Archetype string
	Elite     bool

	HP     float64
	MaxHP  float64
	Speed  float64 // px/s before buffs
	Damage float64 // contact damage before buffs
	XP     int     // fixed at spawn
	Size   float64
	Color  string
	Level  int // player level at spawn

	// Dead is set exactly once by the resolver
	Dead bool

	HitFlash time.Duration

	Support *SupportState
	Shooter *ShooterState
	Buff    *BuffState
	Boss    *BossState
}

// IsBoss reports whether the enemy carries boss state
func (e *EnemyComponent) IsBoss() bool {
	return e.Boss != nil
}

// Tag is the analytics label: archetype, elite:archetype or boss name
func (e *EnemyComponent) Tag() string {
	switch {
	case e.Boss != nil:
		return e.Boss.Name
	case e.Elite:
		return "elite:" + e.Archetype
	}
	return e.Archetype
}

func (e *EnemyComponent) buffed() bool {
	return e.Buff != nil && e.Buff.Remaining > 0
}

// CurrentSpeed includes an active buff
func (e *EnemyComponent) CurrentSpeed() float64 {
	if e.buffed() {
		return e.Speed * e.Buff.SpeedMult
	}
	return e.Speed
}

// CurrentDamage includes an active buff
func (e *EnemyComponent) CurrentDamage() float64 {
	if e.buffed() {
		return e.Damage * e.Buff.DamageMult
	}
	return e.Damage
}

// ApplyBuff sets or refreshes the buff without stacking multipliers
// A stronger buff replaces a weaker one; the longer remaining time wins
func (e *EnemyComponent) ApplyBuff(speed, damage float64, d time.Duration) {
	if e.Buff == nil || e.Buff.Remaining <= 0 {
		e.Buff = &BuffState{SpeedMult: speed, DamageMult: damage, Remaining: d}
		return
	}
	b := e.Buff
	b.SpeedMult = max(b.SpeedMult, speed)
	b.DamageMult = max(b.DamageMult, damage)
	if d > b.Remaining {
		b.Remaining = d
	}
}
