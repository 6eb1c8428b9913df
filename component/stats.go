package component

import (
	"time"

	"github.com/lixenwraith/oncoarena/event"
)

// GameStats is the per-run aggregate read by collaborators at run end
type GameStats struct {
	Level            int
	XP               int
	XPToNext         int
	Score            int
	EnemiesKilled    int
	Elapsed          time.Duration // game time, excludes pauses
	BossesDefeated   int
	BossNames        []string
	DamageDealt      float64
	DamageTaken      float64
	XPCollected      int
	HealthPickups    int
	PowerUpsSelected int
}

// SurvivalSeconds counts whole seconds of game time
func (s *GameStats) SurvivalSeconds() int {
	return int(s.Elapsed / time.Second)
}

// Export copies the stats into the event payload form
func (s *GameStats) Export() event.Stats {
	names := make([]string, len(s.BossNames))
	copy(names, s.BossNames)
	return event.Stats{
		Level:            s.Level,
		XP:               s.XP,
		XPToNext:         s.XPToNext,
		Score:            s.Score,
		EnemiesKilled:    s.EnemiesKilled,
		SurvivalSeconds:  s.SurvivalSeconds(),
		BossesDefeated:   s.BossesDefeated,
		BossNames:        names,
		DamageDealt:      s.DamageDealt,
		DamageTaken:      s.DamageTaken,
		XPCollected:      s.XPCollected,
		HealthPickups:    s.HealthPickups,
		PowerUpsSelected: s.PowerUpsSelected,
	}
}
