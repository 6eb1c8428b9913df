package audio

import (
	"github.com/lixenwraith/oncoarena/event"
)

// Cue is a short sound effect tied to a simulation event
type Cue int

const (
	CueShot Cue = iota
	CueEnemyHit
	CueEnemyDeath
	CuePlayerHurt
	CueShieldBreak
	CueShieldRestore
	CueExplosion
	CueZap
	CuePickup
	CueHeal
	CueLevelUp
	CueSelect
	CueBossEnter
	CueBossSpecial
	CueBossDefeat
	CueGameOver
	cueCount
)

var cueNames = [cueCount]string{
	CueShot:          "shot",
	CueEnemyHit:      "enemy_hit",
	CueEnemyDeath:    "enemy_death",
	CuePlayerHurt:    "player_hurt",
	CueShieldBreak:   "shield_break",
	CueShieldRestore: "shield_restore",
	CueExplosion:     "explosion",
	CueZap:           "zap",
	CuePickup:        "pickup",
	CueHeal:          "heal",
	CueLevelUp:       "level_up",
	CueSelect:        "select",
	CueBossEnter:     "boss_enter",
	CueBossSpecial:   "boss_special",
	CueBossDefeat:    "boss_defeat",
	CueGameOver:      "game_over",
}

func (c Cue) String() string {
	if c < 0 || c >= cueCount {
		return "unknown"
	}
	return cueNames[c]
}

// ParseCue resolves a cue name as used in volume overrides
func ParseCue(name string) (Cue, bool) {
	for i, n := range cueNames {
		if n == name {
			return Cue(i), true
		}
	}
	return 0, false
}

// CueFor maps a simulation event to its sound; false when the event is silent
func CueFor(ev event.GameEvent) (Cue, bool) {
	switch ev.Type {
	case event.EventProjectileFired:
		if p, ok := ev.Payload.(*event.ProjectileFiredPayload); ok && !p.Enemy {
			return CueShot, true
		}
	case event.EventEnemyDamaged:
		return CueEnemyHit, true
	case event.EventEnemyDied:
		if p, ok := ev.Payload.(*event.EnemyDiedPayload); ok && p.Boss {
			return CueBossDefeat, true
		}
		return CueEnemyDeath, true
	case event.EventPlayerDamaged:
		if p, ok := ev.Payload.(*event.PlayerDamagedPayload); ok && p.Amount > 0 {
			return CuePlayerHurt, true
		}
	case event.EventShieldBroken:
		return CueShieldBreak, true
	case event.EventShieldRestored:
		return CueShieldRestore, true
	case event.EventExplosion:
		return CueExplosion, true
	case event.EventLightning:
		return CueZap, true
	case event.EventLootCollected:
		if p, ok := ev.Payload.(*event.LootCollectedPayload); ok && p.Kind == event.LootHealth {
			return CueHeal, true
		}
		return CuePickup, true
	case event.EventLevelUp:
		return CueLevelUp, true
	case event.EventPowerUpSelected:
		return CueSelect, true
	case event.EventBossPhase:
		if p, ok := ev.Payload.(*event.BossPhasePayload); ok && p.Phase == event.BossEntering {
			return CueBossEnter, true
		}
	case event.EventBossSpecial:
		return CueBossSpecial, true
	case event.EventGameOver:
		return CueGameOver, true
	}
	return 0, false
}
