// Package tuning holds the static balance table the simulation is parameterized with.
// The table is immutable once loaded; systems read it through the world resources.
package tuning

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid tuning")

// Tuning is the complete balance table for one run
type Tuning struct {
	Arena      ArenaTuning  `yaml:"arena"`
	Player     PlayerTuning `yaml:"player"`
	Archetypes []Archetype  `yaml:"archetypes"`
	Unlocks    []Unlock     `yaml:"unlocks"`
	Bosses     []BossDef    `yaml:"bosses"`
	XP         XPTuning     `yaml:"xp"`
	Health     HealthTuning `yaml:"health"`
	Spawn      SpawnTuning  `yaml:"spawn"`
	Elite      EliteTuning  `yaml:"elite"`
	PowerUps   []PowerUpDef `yaml:"powerups"`
	Offer      OfferTuning  `yaml:"offer"`
}

// ArenaTuning is the playfield size in pixels
type ArenaTuning struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerTuning holds base player stats before any power-up
type PlayerTuning struct {
	HP                 float64       `yaml:"hp"`
	Speed              float64       `yaml:"speed"` // px/s
	Size               float64       `yaml:"size"`
	Projectiles        int           `yaml:"projectiles"`
	ProjectileSpeed    float64       `yaml:"projectile_speed"`
	ProjectileDamage   float64       `yaml:"projectile_damage"`
	ProjectileInterval time.Duration `yaml:"projectile_interval"`
	Invincibility      time.Duration `yaml:"invincibility"`
}

// Archetype is a named enemy template
type Archetype struct {
	ID      string         `yaml:"id"`
	HP      float64        `yaml:"hp"`
	Speed   float64        `yaml:"speed"` // px/s
	Size    float64        `yaml:"size"`
	XP      int            `yaml:"xp"`
	Damage  float64        `yaml:"damage"`
	Color   string         `yaml:"color"`
	Support *SupportTraits `yaml:"support,omitempty"`
	Shooter *ShooterTraits `yaml:"shooter,omitempty"`
}

// SupportTraits buff nearby enemies periodically
type SupportTraits struct {
	Radius     float64 `yaml:"radius"`
	Multiplier float64 `yaml:"multiplier"`
}

// ShooterTraits fire homing projectiles at the player
type ShooterTraits struct {
	Interval time.Duration `yaml:"interval"`
	Damage   float64       `yaml:"damage"`
	Homing   bool          `yaml:"homing"`
}

// Unlock adds an archetype to the spawn pool from a player level onward
type Unlock struct {
	Level     int    `yaml:"level"`
	Archetype string `yaml:"archetype"`
}

// BossDef is one entry of the ordered boss roster
type BossDef struct {
	Name           string        `yaml:"name"`
	HP             float64       `yaml:"hp"`
	Size           float64       `yaml:"size"`
	Speed          float64       `yaml:"speed"` // px/s
	Damage         float64       `yaml:"damage"`
	Attack         AttackType    `yaml:"attack"`
	AttackInterval time.Duration `yaml:"attack_interval"`
	XP             int           `yaml:"xp"`
	Special        SpecialAttack `yaml:"special"`
	Color          string        `yaml:"color"`
}

// XPTuning drives the level curve and orb magnet
type XPTuning struct {
	BaseRequirement float64 `yaml:"base_requirement"`
	Multiplier      float64 `yaml:"multiplier"`
	MagnetRange     float64 `yaml:"magnet_range"`
	MagnetPerLevel  float64 `yaml:"magnet_per_level"`
}

// HealthTuning drives health-orb drops
type HealthTuning struct {
	DropChance   float64 `yaml:"drop_chance"`
	DecayFactor  float64 `yaml:"decay_factor"`
	DecayEvery   int     `yaml:"decay_every"`
	MinChance    float64 `yaml:"min_chance"`
	HealFraction float64 `yaml:"heal_fraction"`
}

// SpawnTuning drives the wave director
type SpawnTuning struct {
	InitialInterval   time.Duration `yaml:"initial_interval"`
	MinInterval       time.Duration `yaml:"min_interval"`
	IntervalDecay     float64       `yaml:"interval_decay"` // interval shrink per unit of elapsed game time
	BaseCap           int           `yaml:"base_cap"`
	CapPerLevel       int           `yaml:"cap_per_level"`
	MaxEnemies        int           `yaml:"max_enemies"`
	DifficultyStep    float64       `yaml:"difficulty_step"`
	XPLevelStep       float64       `yaml:"xp_level_step"`
	BossLevelInterval int           `yaml:"boss_level_interval"`
	RevivalChance     float64       `yaml:"revival_chance"`
	RevivalHPFraction float64       `yaml:"revival_hp_fraction"`
}

// EliteTuning controls elite rolls; StatMultiplier is a balance knob, not a contract
type EliteTuning struct {
	BaseChance     float64 `yaml:"base_chance"`
	ChancePerLevel float64 `yaml:"chance_per_level"`
	MinLevel       int     `yaml:"min_level"`
	StatMultiplier float64 `yaml:"stat_multiplier"`
	SizeMultiplier float64 `yaml:"size_multiplier"`
	XPMultiplier   float64 `yaml:"xp_multiplier"`
}

// PowerUpDef is one selectable upgrade
type PowerUpDef struct {
	ID          PowerUpID       `yaml:"id"`
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Category    PowerUpCategory `yaml:"category"`
	MaxLevel    int             `yaml:"max_level"`
	Value       float64         `yaml:"value"`
}

// OfferTuning controls the level-up choice
type OfferTuning struct {
	Choices int `yaml:"choices"`
}

// Archetype returns the archetype with the given id
func (t *Tuning) Archetype(id string) (*Archetype, bool) {
	for i := range t.Archetypes {
		if t.Archetypes[i].ID == id {
			return &t.Archetypes[i], true
		}
	}
	return nil, false
}

// PowerUp returns the definition for id
func (t *Tuning) PowerUp(id PowerUpID) (*PowerUpDef, bool) {
	for i := range t.PowerUps {
		if t.PowerUps[i].ID == id {
			return &t.PowerUps[i], true
		}
	}
	return nil, false
}

// UnlockedAt lists archetype ids available at the given player level, in table order
func (t *Tuning) UnlockedAt(level int) []string {
	out := make([]string, 0, len(t.Unlocks))
	for _, u := range t.Unlocks {
		if level >= u.Level {
			out = append(out, u.Archetype)
		}
	}
	return out
}

// Validate checks structural and numeric sanity of the table
func (t *Tuning) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if t.Arena.Width <= 0 || t.Arena.Height <= 0 {
		fail("arena: size must be positive, got %vx%v", t.Arena.Width, t.Arena.Height)
	}

	p := t.Player
	if p.HP <= 0 || p.Speed <= 0 || p.Size <= 0 {
		fail("player: hp, speed and size must be positive")
	}
	if p.Projectiles < 1 || p.ProjectileSpeed <= 0 || p.ProjectileDamage < 0 {
		fail("player: projectile stats out of range")
	}
	if p.ProjectileInterval <= 0 || p.Invincibility < 0 {
		fail("player: timers out of range")
	}

	if len(t.Archetypes) == 0 {
		fail("archetypes: at least one required")
	}
	seen := make(map[string]bool, len(t.Archetypes))
	for _, a := range t.Archetypes {
		if a.ID == "" {
			fail("archetypes: empty id")
			continue
		}
		if seen[a.ID] {
			fail("archetypes: duplicate id %q", a.ID)
		}
		seen[a.ID] = true
		if a.HP <= 0 || a.Speed < 0 || a.Size <= 0 || a.XP < 0 || a.Damage < 0 {
			fail("archetype %q: stats out of range", a.ID)
		}
		if a.Support != nil && (a.Support.Radius <= 0 || a.Support.Multiplier < 1) {
			fail("archetype %q: support traits out of range", a.ID)
		}
		if a.Shooter != nil && a.Shooter.Interval <= 0 {
			fail("archetype %q: shooter interval must be positive", a.ID)
		}
	}

	if len(t.Unlocks) == 0 {
		fail("unlocks: at least one required")
	}
	minUnlock := 0
	for i, u := range t.Unlocks {
		if !seen[u.Archetype] {
			fail("unlocks: unknown archetype %q", u.Archetype)
		}
		if i == 0 || u.Level < minUnlock {
			minUnlock = u.Level
		}
	}
	if len(t.Unlocks) > 0 && minUnlock > 1 {
		fail("unlocks: nothing spawnable at level 1")
	}

	if len(t.Bosses) == 0 {
		fail("bosses: at least one required")
	}
	for _, b := range t.Bosses {
		if b.Name == "" || b.HP <= 0 || b.Size <= 0 || b.AttackInterval <= 0 {
			fail("boss %q: stats out of range", b.Name)
		}
		if !b.Attack.Valid() {
			fail("boss %q: unknown attack type", b.Name)
		}
		if !b.Special.Valid() {
			fail("boss %q: unknown special attack", b.Name)
		}
	}

	if t.XP.BaseRequirement <= 0 || t.XP.Multiplier < 1 {
		fail("xp: base requirement must be positive and multiplier >= 1")
	}
	if t.XP.MagnetRange <= 0 || t.XP.MagnetPerLevel < 0 {
		fail("xp: magnet range out of range")
	}

	h := t.Health
	if h.DropChance < 0 || h.DropChance > 1 || h.MinChance <= 0 || h.MinChance > h.DropChance {
		fail("health: chances out of range")
	}
	if h.DecayFactor <= 0 || h.DecayFactor > 1 || h.DecayEvery < 1 || h.HealFraction <= 0 {
		fail("health: decay or heal out of range")
	}

	s := t.Spawn
	if s.InitialInterval <= 0 || s.MinInterval <= 0 || s.MinInterval > s.InitialInterval {
		fail("spawn: intervals out of range")
	}
	if s.IntervalDecay < 0 || s.BaseCap < 1 || s.CapPerLevel < 0 || s.MaxEnemies < 1 {
		fail("spawn: cap or decay out of range")
	}
	if s.DifficultyStep < 0 || s.XPLevelStep < 0 || s.BossLevelInterval < 1 {
		fail("spawn: difficulty or boss interval out of range")
	}
	if s.RevivalChance < 0 || s.RevivalChance > 1 || s.RevivalHPFraction <= 0 {
		fail("spawn: revival out of range")
	}

	e := t.Elite
	if e.BaseChance < 0 || e.ChancePerLevel < 0 || e.StatMultiplier < 1 || e.SizeMultiplier <= 0 || e.XPMultiplier < 1 {
		fail("elite: multipliers out of range")
	}

	if len(t.PowerUps) == 0 {
		fail("powerups: at least one required")
	}
	ids := make(map[PowerUpID]bool, len(t.PowerUps))
	for _, pu := range t.PowerUps {
		if !pu.ID.Valid() {
			fail("powerups: unknown id %q", pu.ID)
		}
		if ids[pu.ID] {
			fail("powerups: duplicate id %q", pu.ID)
		}
		ids[pu.ID] = true
		if pu.MaxLevel < 1 {
			fail("powerup %q: max level must be positive", pu.ID)
		}
		if !pu.Category.Valid() {
			fail("powerup %q: unknown category %q", pu.ID, pu.Category)
		}
	}
	if t.Offer.Choices < 1 {
		fail("offer: choices must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}
