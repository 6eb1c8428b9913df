package tuning

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// AttackType selects a boss's basic attack pattern
type AttackType int

const (
	AttackLinear AttackType = iota
	AttackCircle
	AttackTracking
	AttackMulti
	attackTypeCount
)

var attackTypeNames = [...]string{"linear", "circle", "tracking", "multi"}

func (a AttackType) String() string {
	if a.Valid() {
		return attackTypeNames[a]
	}
	return fmt.Sprintf("attack(%d)", int(a))
}

func (a AttackType) Valid() bool {
	return a >= 0 && a < attackTypeCount
}

// UnmarshalYAML decodes the attack type from its name
func (a *AttackType) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	for i, name := range attackTypeNames {
		if name == s {
			*a = AttackType(i)
			return nil
		}
	}
	return fmt.Errorf("line %d: unknown attack type %q", value.Line, s)
}

func (a AttackType) MarshalYAML() (any, error) {
	return a.String(), nil
}

// SpecialAttack selects a boss's scripted special routine
type SpecialAttack int

const (
	SpecialDivide SpecialAttack = iota
	SpecialSpread
	SpecialMutate
	SpecialCorruption
	SpecialGenetic
	SpecialRadiation
	SpecialImmunity
	SpecialApocalypse
	specialCount
)

var specialNames = [...]string{
	"divide", "spread", "mutate", "corruption",
	"genetic", "radiation", "immunity", "apocalypse",
}

func (s SpecialAttack) String() string {
	if s.Valid() {
		return specialNames[s]
	}
	return fmt.Sprintf("special(%d)", int(s))
}

func (s SpecialAttack) Valid() bool {
	return s >= 0 && s < specialCount
}

// UnmarshalYAML decodes the special attack from its name
func (s *SpecialAttack) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	for i, n := range specialNames {
		if n == name {
			*s = SpecialAttack(i)
			return nil
		}
	}
	return fmt.Errorf("line %d: unknown special attack %q", value.Line, name)
}

func (s SpecialAttack) MarshalYAML() (any, error) {
	return s.String(), nil
}

// PowerUpID names a power-up; the simulation switches on it to apply effects
type PowerUpID string

const (
	PowerRadiotherapy    PowerUpID = "radiotherapy"
	PowerExplosive       PowerUpID = "explosive_rounds"
	PowerMagnet          PowerUpID = "xp_magnet"
	PowerLightning       PowerUpID = "lightning_chain"
	PowerPiercing        PowerUpID = "piercing_rounds"
	PowerShield          PowerUpID = "shield"
	PowerSpeed           PowerUpID = "speed_boost"
	PowerAura            PowerUpID = "aura"
	PowerAttackSpeed     PowerUpID = "attack_speed"
	PowerRange           PowerUpID = "range"
	PowerDamage          PowerUpID = "damage_boost"
	PowerMaxHP           PowerUpID = "max_hp"
	PowerProjectileCount PowerUpID = "projectile_count"
)

var knownPowerUps = map[PowerUpID]bool{
	PowerRadiotherapy: true, PowerExplosive: true, PowerMagnet: true,
	PowerLightning: true, PowerPiercing: true, PowerShield: true,
	PowerSpeed: true, PowerAura: true, PowerAttackSpeed: true,
	PowerRange: true, PowerDamage: true, PowerMaxHP: true,
	PowerProjectileCount: true,
}

func (id PowerUpID) Valid() bool {
	return knownPowerUps[id]
}

// PowerUpCategory groups power-ups for presentation
type PowerUpCategory string

const (
	CategoryWeapon    PowerUpCategory = "weapon"
	CategoryUpgrade   PowerUpCategory = "upgrade"
	CategoryPassive   PowerUpCategory = "passive"
	CategoryDefensive PowerUpCategory = "defensive"
)

func (c PowerUpCategory) Valid() bool {
	switch c {
	case CategoryWeapon, CategoryUpgrade, CategoryPassive, CategoryDefensive:
		return true
	}
	return false
}
