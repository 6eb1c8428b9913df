package event

import (
	"github.com/lixenwraith/oncoarena/core"
	"github.com/lixenwraith/oncoarena/tuning"
	"github.com/lixenwraith/oncoarena/vmath"
)

// PauseReason distinguishes why the freeze gate is closed
type PauseReason int

const (
	PauseNone PauseReason = iota
	PauseMenu
	PauseLevelUp
	PauseGameOver
)

func (r PauseReason) String() string {
	switch r {
	case PauseMenu:
		return "menu"
	case PauseLevelUp:
		return "level_up"
	case PauseGameOver:
		return "game_over"
	}
	return "none"
}

type PausePayload struct {
	Paused bool
	Reason PauseReason
}

// Stats is the run aggregate as seen by collaborators
type Stats struct {
	Level            int
	XP               int
	XPToNext         int
	Score            int
	EnemiesKilled    int
	SurvivalSeconds  int
	BossesDefeated   int
	BossNames        []string
	DamageDealt      float64
	DamageTaken      float64
	XPCollected      int
	HealthPickups    int
	PowerUpsSelected int
}

type GameOverPayload struct {
	Stats    Stats
	Cause    string
	Position vmath.Vec2
	MaxHP    float64
	Enemies  int
	WasBoss  bool
	PowerUps []tuning.PowerUpID
}

type EnemySpawnedPayload struct {
	Entity    core.Entity
	Archetype string // boss name for bosses
	Elite     bool
	Boss      bool
	Revived   bool
	Level     int
	Position  vmath.Vec2
}

type DamagePayload struct {
	Entity core.Entity
	Amount float64
	Source string // "projectile", "explosion", "aura", "lightning", "ray"
	Target string // archetype tag, "elite:red" or boss name
}

type EnemyDiedPayload struct {
	Entity   core.Entity
	Target   string
	Boss     bool
	XP       int
	Level    int
	Position vmath.Vec2
}

type PlayerDamagedPayload struct {
	Amount   float64 // reached hp
	Absorbed float64 // taken by shield
	Source   string
	HP       float64
	Level    int
}

type ProjectileFiredPayload struct {
	Owner core.Entity
	Count int
	Enemy bool
}

type ExplosionPayload struct {
	Position vmath.Vec2
	Radius   float64
	Hostile  bool // damages the player rather than enemies
}

type LightningPayload struct {
	From, To vmath.Vec2
	Target   core.Entity
	Damage   float64
}

// LootKind is the orb type
type LootKind int

const (
	LootXP LootKind = iota
	LootHealth
)

func (k LootKind) String() string {
	if k == LootHealth {
		return "health"
	}
	return "xp"
}

type LootCollectedPayload struct {
	Kind  LootKind
	Value int
}

type LevelUpPayload struct {
	Level    int
	XPToNext int
}

type PowerUpOfferedPayload struct {
	Level    int
	Options  []tuning.PowerUpID
	PlayerHP float64
	Enemies  int
}

type PowerUpSelectedPayload struct {
	ID       tuning.PowerUpID
	NewLevel int
	Options  []tuning.PowerUpID
	Level    int
	PlayerHP float64
	Enemies  int
}

type BossSpawnRequestPayload struct {
	Index int
}

// BossPhase is the boss state machine state
type BossPhase int

const (
	BossEntering BossPhase = iota
	BossActive
	BossDefeated
)

func (p BossPhase) String() string {
	switch p {
	case BossEntering:
		return "entering"
	case BossActive:
		return "active"
	case BossDefeated:
		return "defeated"
	}
	return "unknown"
}

type BossPhasePayload struct {
	Entity  core.Entity
	Name    string
	Phase   BossPhase
	Level   int
	Revived bool
}

type BossSpecialPayload struct {
	Entity  core.Entity
	Special tuning.SpecialAttack
}
