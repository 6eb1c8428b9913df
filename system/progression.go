package system

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sync/atomic"

	"github.com/lixenwraith/oncoarena/engine"
	"github.com/lixenwraith/oncoarena/event"
	"github.com/lixenwraith/oncoarena/parameter"
	"github.com/lixenwraith/oncoarena/tuning"
)

var (
	// ErrNoOffer is returned by Select when no level-up choice is open
	ErrNoOffer = errors.New("no power-up offer open")
	// ErrNotOffered is returned by Select for an id outside the current offer
	ErrNotOffered = errors.New("power-up not offered")
)

// XPToNext is the xp needed to leave the given level
func XPToNext(t tuning.XPTuning, level int) int {
	if level < 1 {
		level = 1
	}
	return int(math.Floor(t.BaseRequirement * math.Pow(t.Multiplier, float64(level-1))))
}

// ProgressionSystem converts collected xp into levels and gates the run on power-up choices
// Each level gained queues one choice; the world stays frozen until the queue drains
type ProgressionSystem struct {
	world *engine.World

	// Levels awaiting a choice, oldest first
	pending []int
	offer   []tuning.PowerUpID

	statLevels  *atomic.Int64
	statOffers  *atomic.Int64
	statChoices *atomic.Int64

	enabled bool
}

func NewProgressionSystem(world *engine.World) *ProgressionSystem {
	s := &ProgressionSystem{
		world: world,
	}

	reg := world.Resources.Status
	s.statLevels = reg.Ints.Get("progress.levels")
	s.statOffers = reg.Ints.Get("progress.offers")
	s.statChoices = reg.Ints.Get("progress.choices")

	s.Init()
	return s
}

func (s *ProgressionSystem) Init() {
	s.pending = s.pending[:0]
	s.offer = nil
	s.statLevels.Store(0)
	s.statOffers.Store(0)
	s.statChoices.Store(0)

	stats := s.world.Resources.Stats
	if stats.Level < 1 {
		stats.Level = 1
	}
	stats.XPToNext = XPToNext(s.world.Resources.Tuning.XP, stats.Level)
	s.enabled = true
}

func (s *ProgressionSystem) Name() string {
	return "progression"
}

func (s *ProgressionSystem) Priority() int {
	return parameter.PriorityProgression
}

func (s *ProgressionSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventGameReset,
	}
}

func (s *ProgressionSystem) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventGameReset {
		s.Init()
	}
}

func (s *ProgressionSystem) Update() {
	if !s.enabled {
		return
	}

	stats := s.world.Resources.Stats
	xpT := s.world.Resources.Tuning.XP
	for stats.XPToNext > 0 && stats.XP >= stats.XPToNext {
		stats.XP -= stats.XPToNext
		stats.Level++
		stats.XPToNext = XPToNext(xpT, stats.Level)
		s.pending = append(s.pending, stats.Level)
		s.statLevels.Add(1)

		payload := &event.LevelUpPayload{Level: stats.Level, XPToNext: stats.XPToNext}
		s.world.PushEvent(event.EventLevelUp, payload)
		if stats.Level%parameter.MusicVariationEvery == 0 {
			s.world.PushEvent(event.EventMusicVariation, payload)
		}
	}

	if len(s.pending) > 0 && s.offer == nil {
		s.openOffer()
	}
}

// Offer returns the open choice, nil when none
func (s *ProgressionSystem) Offer() []tuning.PowerUpID {
	if s.offer == nil {
		return nil
	}
	return slices.Clone(s.offer)
}

// Pending is the number of level-ups still awaiting a choice
func (s *ProgressionSystem) Pending() int {
	return len(s.pending)
}

// openOffer rolls choices for the oldest pending level and freezes the world
// With nothing left to offer the level resolves immediately
func (s *ProgressionSystem) openOffer() {
	for len(s.pending) > 0 {
		options := s.roll()
		if len(options) > 0 {
			s.offer = options
			s.statOffers.Add(1)
			if s.world.Resources.Game.Pause(event.PauseLevelUp) {
				s.world.PushEvent(event.EventPauseChanged, &event.PausePayload{Paused: true, Reason: event.PauseLevelUp})
			}
			s.world.PushEvent(event.EventPowerUpOffered, &event.PowerUpOfferedPayload{
				Level:    s.pending[0],
				Options:  slices.Clone(options),
				PlayerHP: s.playerHP(),
				Enemies:  s.world.Components.Enemy.Count(),
			})
			return
		}
		s.resolveLevel()
	}
}

// roll picks up to Choices eligible ids without replacement
func (s *ProgressionSystem) roll() []tuning.PowerUpID {
	eligible := s.world.Resources.PowerUps.Eligible()
	k := min(s.world.Resources.Tuning.Offer.Choices, len(eligible))
	rng := s.world.Resources.Rand
	// Partial Fisher-Yates over the eligible list
	for i := 0; i < k; i++ {
		j := i + rng.Intn(len(eligible)-i)
		eligible[i], eligible[j] = eligible[j], eligible[i]
	}
	return eligible[:k]
}

// Select applies a choice from the open offer
// Resumes the world once no level-up remains queued
func (s *ProgressionSystem) Select(id tuning.PowerUpID) error {
	if s.offer == nil {
		return ErrNoOffer
	}
	if !slices.Contains(s.offer, id) {
		return fmt.Errorf("%w: %s", ErrNotOffered, id)
	}
	state := s.world.Resources.PowerUps.Get(id)
	if state == nil || state.Maxed() {
		return fmt.Errorf("%w: %s", ErrNotOffered, id)
	}

	state.Level++
	pe := s.world.Resources.Player.Entity
	if p, ok := s.world.Components.Player.Get(pe); ok {
		ApplyPowerUp(p, state.Def, state.Level)
	}
	s.world.Resources.Stats.PowerUpsSelected++
	s.statChoices.Add(1)

	options := s.offer
	s.offer = nil
	s.world.PushEvent(event.EventPowerUpSelected, &event.PowerUpSelectedPayload{
		ID:       id,
		NewLevel: state.Level,
		Options:  options,
		Level:    s.pending[0],
		PlayerHP: s.playerHP(),
		Enemies:  s.world.Components.Enemy.Count(),
	})

	s.resolveLevel()
	s.openOffer()

	if s.offer == nil && s.world.Resources.Game.Resume(event.PauseLevelUp) {
		s.world.PushEvent(event.EventPauseChanged, &event.PausePayload{Paused: false, Reason: event.PauseLevelUp})
	}
	return nil
}

// resolveLevel pops the oldest pending level and requests its boss when due
func (s *ProgressionSystem) resolveLevel() {
	level := s.pending[0]
	s.pending = s.pending[1:]

	interval := s.world.Resources.Tuning.Spawn.BossLevelInterval
	if interval > 0 && level%interval == 0 {
		s.world.PushEvent(event.EventBossSpawnRequest, &event.BossSpawnRequestPayload{Index: level/interval - 1})
	}
}

func (s *ProgressionSystem) playerHP() float64 {
	if p, ok := s.world.Components.Player.Get(s.world.Resources.Player.Entity); ok {
		return p.HP
	}
	return 0
}
