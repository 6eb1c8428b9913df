package system

import (
	"sync/atomic"

	"github.com/lixenwraith/oncoarena/component"
	"github.com/lixenwraith/oncoarena/core"
	"github.com/lixenwraith/oncoarena/engine"
	"github.com/lixenwraith/oncoarena/event"
	"github.com/lixenwraith/oncoarena/parameter"
)

// DeathSystem is the single routing point for deaths
// The resolver calls it exactly once per death; it credits the run and announces the death,
// and its Update sweeps dead enemies after every damage source of the tick has run
type DeathSystem struct {
	world *engine.World

	statKills  *atomic.Int64
	statBosses *atomic.Int64
	statSwept  *atomic.Int64

	enabled bool
}

func NewDeathSystem(world *engine.World) *DeathSystem {
	s := &DeathSystem{
		world: world,
	}

	reg := world.Resources.Status
	s.statKills = reg.Ints.Get("death.kills")
	s.statBosses = reg.Ints.Get("death.bosses")
	s.statSwept = reg.Ints.Get("death.swept")

	s.Init()
	return s
}

func (s *DeathSystem) Init() {
	s.statKills.Store(0)
	s.statBosses.Store(0)
	s.statSwept.Store(0)
	s.enabled = true
}

func (s *DeathSystem) Name() string {
	return "death"
}

func (s *DeathSystem) Priority() int {
	return parameter.PriorityDeath
}

func (s *DeathSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventGameReset,
	}
}

func (s *DeathSystem) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventGameReset {
		s.Init()
	}
}

// Update removes enemies the resolver marked dead
func (s *DeathSystem) Update() {
	if !s.enabled {
		return
	}
	for _, e := range s.world.Components.Enemy.GetAllEntities() {
		enemy, ok := s.world.Components.Enemy.Get(e)
		if ok && enemy.Dead {
			s.world.DestroyEntity(e)
			s.statSwept.Add(1)
		}
	}
}

// EnemyDied credits score and kill count, and closes out a boss encounter
func (s *DeathSystem) EnemyDied(e core.Entity, enemy *component.EnemyComponent, body *component.BodyComponent, source string) {
	stats := s.world.Resources.Stats
	stats.Score += enemy.XP * parameter.ScorePerXP
	stats.EnemiesKilled++
	s.statKills.Add(1)

	if boss := enemy.Boss; boss != nil {
		boss.Phase = event.BossDefeated
		// Bonus encounters do not count toward the roster
		if !boss.Revived {
			stats.BossesDefeated++
			stats.BossNames = append(stats.BossNames, boss.Name)
		}
		s.statBosses.Add(1)
		s.world.PushEvent(event.EventBossPhase, &event.BossPhasePayload{
			Entity:  e,
			Name:    boss.Name,
			Phase:   event.BossDefeated,
			Level:   boss.Level,
			Revived: boss.Revived,
		})
	}

	s.world.PushEvent(event.EventEnemyDied, &event.EnemyDiedPayload{
		Entity:   e,
		Target:   enemy.Tag(),
		Boss:     enemy.IsBoss(),
		XP:       enemy.XP,
		Level:    stats.Level,
		Position: body.Pos,
	})
}

// PlayerDied ends the run; the freeze gate stays closed for good
func (s *DeathSystem) PlayerDied(source string) {
	game := s.world.Resources.Game
	if !game.Pause(event.PauseGameOver) {
		return
	}

	payload := &event.GameOverPayload{
		Stats:    s.world.Resources.Stats.Export(),
		Cause:    source,
		Enemies:  s.livingEnemies(),
		WasBoss:  s.bossAlive(),
		PowerUps: s.world.Resources.PowerUps.Owned(),
	}
	pe := s.world.Resources.Player.Entity
	if b, ok := s.world.Components.Body.Get(pe); ok {
		payload.Position = b.Pos
	}
	if p, ok := s.world.Components.Player.Get(pe); ok {
		payload.MaxHP = p.MaxHP
	}

	s.world.PushEvent(event.EventPauseChanged, &event.PausePayload{Paused: true, Reason: event.PauseGameOver})
	s.world.PushEvent(event.EventGameOver, payload)
}

func (s *DeathSystem) livingEnemies() int {
	n := 0
	for _, e := range s.world.Components.Enemy.GetAllEntities() {
		if enemy, ok := s.world.Components.Enemy.Get(e); ok && !enemy.Dead {
			n++
		}
	}
	return n
}

func (s *DeathSystem) bossAlive() bool {
	for _, e := range s.world.Components.Enemy.GetAllEntities() {
		if enemy, ok := s.world.Components.Enemy.Get(e); ok && !enemy.Dead && enemy.IsBoss() {
			return true
		}
	}
	return false
}
