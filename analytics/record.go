// Package analytics uploads advisory tracking records for a session
// Records are queued without blocking the caller and shipped in msgpack
// batches over a websocket; failures drop records with a log line
package analytics

import (
	"math"

	"github.com/lixenwraith/oncoarena/event"
	"github.com/lixenwraith/oncoarena/tuning"
)

// Record is one tracking call
type Record struct {
	Name  string         `msgpack:"name"`
	Seq   uint64         `msgpack:"seq"`
	At    int64          `msgpack:"at"` // unix milliseconds
	Frame int64          `msgpack:"frame,omitempty"`
	Props map[string]any `msgpack:"props,omitempty"`
}

// Batch is the unit written to the websocket
type Batch struct {
	Session string   `msgpack:"session"`
	Client  string   `msgpack:"client"`
	Records []Record `msgpack:"records"`
}

// Record names
const (
	NameSessionStart   = "session_start"
	NameDamageDealt    = "damage_dealt"
	NameDamageTaken    = "damage_taken"
	NameEnemySpawned   = "enemy_spawned"
	NameEnemyKilled    = "enemy_killed"
	NamePowerUpOffered = "powerup_offered"
	NamePowerUpPicked  = "powerup_selected"
	NameBossEncounter  = "boss_encounter"
	NameBossDefeated   = "boss_defeated"
	NamePlayerDeath    = "player_death"
	NameLevelUp        = "level_up"
)

// FromEvent maps a simulation event to a record
// Events analytics has no interest in return false
func FromEvent(ev event.GameEvent) (string, map[string]any, bool) {
	switch p := ev.Payload.(type) {
	case *event.DamagePayload:
		if ev.Type != event.EventEnemyDamaged {
			return "", nil, false
		}
		return NameDamageDealt, map[string]any{
			"amount": round2(p.Amount),
			"source": p.Source,
			"target": p.Target,
		}, true

	case *event.PlayerDamagedPayload:
		if p.Amount <= 0 && p.Absorbed <= 0 {
			return "", nil, false
		}
		return NameDamageTaken, map[string]any{
			"amount":   round2(p.Amount),
			"absorbed": round2(p.Absorbed),
			"source":   p.Source,
			"hp":       round2(p.HP),
			"level":    p.Level,
		}, true

	case *event.EnemySpawnedPayload:
		if p.Boss {
			return NameBossEncounter, map[string]any{
				"boss":    p.Archetype,
				"level":   p.Level,
				"revived": p.Revived,
			}, true
		}
		return NameEnemySpawned, map[string]any{
			"type":  p.Archetype,
			"elite": p.Elite,
			"level": p.Level,
		}, true

	case *event.EnemyDiedPayload:
		if p.Boss {
			return NameBossDefeated, map[string]any{"boss": p.Target, "level": p.Level}, true
		}
		return NameEnemyKilled, map[string]any{
			"type":  p.Target,
			"xp":    p.XP,
			"level": p.Level,
		}, true

	case *event.PowerUpOfferedPayload:
		return NamePowerUpOffered, map[string]any{
			"level":     p.Level,
			"options":   powerUpNames(p.Options),
			"player_hp": round2(p.PlayerHP),
			"enemies":   p.Enemies,
		}, true

	case *event.PowerUpSelectedPayload:
		return NamePowerUpPicked, map[string]any{
			"id":        string(p.ID),
			"new_level": p.NewLevel,
			"options":   powerUpNames(p.Options),
			"level":     p.Level,
			"player_hp": round2(p.PlayerHP),
			"enemies":   p.Enemies,
		}, true

	case *event.LevelUpPayload:
		return NameLevelUp, map[string]any{"level": p.Level}, true

	case *event.GameOverPayload:
		return NamePlayerDeath, map[string]any{
			"cause":      p.Cause,
			"level":      p.Stats.Level,
			"score":      p.Stats.Score,
			"kills":      p.Stats.EnemiesKilled,
			"survival":   p.Stats.SurvivalSeconds,
			"bosses":     p.Stats.BossNames,
			"x":          round2(p.Position.X),
			"y":          round2(p.Position.Y),
			"max_hp":     round2(p.MaxHP),
			"enemies":    p.Enemies,
			"boss_fight": p.WasBoss,
			"powerups":   powerUpNames(p.PowerUps),
		}, true
	}
	return "", nil, false
}

func powerUpNames(ids []tuning.PowerUpID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
