package system

import (
	"log"
	"math"
	"slices"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/oncoarena/component"
	"github.com/lixenwraith/oncoarena/core"
	"github.com/lixenwraith/oncoarena/engine"
	"github.com/lixenwraith/oncoarena/event"
	"github.com/lixenwraith/oncoarena/parameter"
	"github.com/lixenwraith/oncoarena/tuning"
	"github.com/lixenwraith/oncoarena/vmath"
)

// SpawnSystem is the wave director
// It spawns archetypes on a shrinking interval under a level-scaled cap, owns the single
// main boss slot and rolls the rare revival of a defeated boss
// Waves are suspended while the main boss lives
type SpawnSystem struct {
	world *engine.World

	timer    time.Duration
	waveTime time.Duration // game time spent with waves running
	boss     core.Entity   // main boss slot, zero when free
	defeated []int         // roster indices of defeated main bosses

	statCount    *atomic.Int64
	statElites   *atomic.Int64
	statSkipped  *atomic.Int64
	statInvalid  *atomic.Int64
	statBosses   *atomic.Int64
	statRevivals *atomic.Int64
	statNoop     *atomic.Int64
	statUnsafe   *atomic.Int64
	statSlot     *atomic.Bool

	enabled bool
}

func NewSpawnSystem(world *engine.World) *SpawnSystem {
	s := &SpawnSystem{
		world: world,
	}

	reg := world.Resources.Status
	s.statCount = reg.Ints.Get("spawn.count")
	s.statElites = reg.Ints.Get("spawn.elites")
	s.statSkipped = reg.Ints.Get("spawn.capped")
	s.statInvalid = reg.Ints.Get("spawn.invalid")
	s.statBosses = reg.Ints.Get("spawn.bosses")
	s.statRevivals = reg.Ints.Get("spawn.revivals")
	s.statNoop = reg.Ints.Get("spawn.boss_noop")
	s.statUnsafe = reg.Ints.Get("spawn.boss_unsafe")
	s.statSlot = reg.Bools.Get("boss.active")

	s.Init()
	return s
}

func (s *SpawnSystem) Init() {
	s.timer = s.world.Resources.Tuning.Spawn.InitialInterval
	s.waveTime = 0
	s.boss = 0
	s.defeated = s.defeated[:0]
	s.statCount.Store(0)
	s.statElites.Store(0)
	s.statSkipped.Store(0)
	s.statInvalid.Store(0)
	s.statBosses.Store(0)
	s.statRevivals.Store(0)
	s.statNoop.Store(0)
	s.statUnsafe.Store(0)
	s.statSlot.Store(false)
	s.enabled = true
}

func (s *SpawnSystem) Name() string {
	return "spawn"
}

func (s *SpawnSystem) Priority() int {
	return parameter.PrioritySpawn
}

func (s *SpawnSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventBossSpawnRequest,
		event.EventEnemyDied,
		event.EventGameReset,
	}
}

func (s *SpawnSystem) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventGameReset {
		s.Init()
		return
	}

	if !s.enabled {
		return
	}

	switch ev.Type {
	case event.EventBossSpawnRequest:
		if payload, ok := ev.Payload.(*event.BossSpawnRequestPayload); ok {
			s.SpawnBoss(payload.Index)
		}
	case event.EventEnemyDied:
		if payload, ok := ev.Payload.(*event.EnemyDiedPayload); ok && payload.Boss && payload.Entity == s.boss {
			s.releaseSlot()
		}
	}
}

func (s *SpawnSystem) Update() {
	if !s.enabled {
		return
	}

	// Slot holder removed without a death event, e.g. by a reset of the store
	if s.boss != 0 && !ownerAlive(s.world, s.boss) {
		s.releaseSlot()
	}

	spawn := s.world.Resources.Tuning.Spawn
	if len(s.defeated) > 0 && s.world.Resources.Rand.Chance(spawn.RevivalChance) {
		s.revive()
	}

	if s.BossActive() {
		return
	}

	s.waveTime += s.world.Resources.Time.DeltaTime
	s.timer -= s.world.Resources.Time.DeltaTime
	if s.timer > 0 {
		return
	}
	s.timer = s.Interval()
	s.spawnWave()
}

// BossActive reports whether the main boss slot is held
func (s *SpawnSystem) BossActive() bool {
	return s.boss != 0
}

// MainBoss returns the slot holder
func (s *SpawnSystem) MainBoss() core.Entity {
	return s.boss
}

// Defeated lists roster indices of defeated main bosses
func (s *SpawnSystem) Defeated() []int {
	return slices.Clone(s.defeated)
}

// Interval is the current wave period, shrinking down to the floor with the
// time waves have run; boss fights do not count
func (s *SpawnSystem) Interval() time.Duration {
	spawn := s.world.Resources.Tuning.Spawn
	iv := spawn.InitialInterval - time.Duration(spawn.IntervalDecay*float64(s.waveTime))
	if iv < spawn.MinInterval {
		return spawn.MinInterval
	}
	return iv
}

// Cap is the population limit at the current level
func (s *SpawnSystem) Cap() int {
	spawn := s.world.Resources.Tuning.Spawn
	return min(spawn.MaxEnemies, spawn.BaseCap+spawn.CapPerLevel*s.world.Resources.Stats.Level)
}

func (s *SpawnSystem) spawnWave() {
	if s.world.Components.Enemy.Count() >= s.Cap() {
		s.statSkipped.Add(1)
		return
	}

	t := s.world.Resources.Tuning
	rng := s.world.Resources.Rand
	level := max(1, s.world.Resources.Stats.Level)

	pool := t.UnlockedAt(level)
	if len(pool) == 0 {
		s.statInvalid.Add(1)
		return
	}
	id := pool[rng.Intn(len(pool))]
	arch, ok := t.Archetype(id)
	if !ok {
		s.statInvalid.Add(1)
		log.Printf("[spawn] unknown archetype %q, spawn skipped", id)
		return
	}

	elite := level >= t.Elite.MinLevel &&
		rng.Chance(t.Elite.BaseChance+t.Elite.ChancePerLevel*float64(level-1))
	enemy := ScaleArchetype(t, arch, level, elite)
	pos := s.edgePoint()

	e := s.world.CreateEntity()
	s.world.Components.Body.Set(e, &component.BodyComponent{Pos: pos, Radius: enemy.Size / 2})
	s.world.Components.Enemy.Set(e, enemy)

	s.statCount.Add(1)
	if elite {
		s.statElites.Add(1)
	}
	s.world.PushEvent(event.EventEnemySpawned, &event.EnemySpawnedPayload{
		Entity:    e,
		Archetype: arch.ID,
		Elite:     elite,
		Level:     level,
		Position:  pos,
	})
}

// ScaleArchetype builds an enemy from its template at a player level
// hp and damage scale with difficulty and elite status, speed with difficulty,
// xp with level and elite status; values are fixed from here on
func ScaleArchetype(t *tuning.Tuning, arch *tuning.Archetype, level int, elite bool) *component.EnemyComponent {
	diff := 1 + float64(level-1)*t.Spawn.DifficultyStep
	statMult, sizeMult, xpMult := 1.0, 1.0, 1.0
	if elite {
		statMult = t.Elite.StatMultiplier
		sizeMult = t.Elite.SizeMultiplier
		xpMult = t.Elite.XPMultiplier
	}
	hp := math.Floor(arch.HP * diff * statMult)
	enemy := &component.EnemyComponent{
		Archetype: arch.ID,
		Elite:     elite,
		HP:        hp,
		MaxHP:     hp,
		Speed:     arch.Speed * diff,
		Damage:    math.Floor(arch.Damage * diff * statMult),
		XP:        int(math.Floor(float64(arch.XP) * (1 + float64(level-1)*t.Spawn.XPLevelStep) * xpMult)),
		Size:      arch.Size * sizeMult,
		Color:     arch.Color,
		Level:     level,
	}
	if arch.Support != nil {
		enemy.Support = &component.SupportState{
			Radius:     arch.Support.Radius,
			Multiplier: arch.Support.Multiplier,
			Timer:      parameter.SupportPulseInterval,
		}
	}
	if arch.Shooter != nil {
		enemy.Shooter = &component.ShooterState{
			Interval: arch.Shooter.Interval,
			Damage:   arch.Shooter.Damage,
			Homing:   arch.Shooter.Homing,
			Timer:    arch.Shooter.Interval,
		}
	}
	return enemy
}

// edgePoint picks a uniform side, then a uniform point just outside it
func (s *SpawnSystem) edgePoint() vmath.Vec2 {
	a := s.world.Resources.Arena
	rng := s.world.Resources.Rand
	off := parameter.SpawnEdgeOffset
	switch rng.Intn(4) {
	case 0:
		return vmath.V2(rng.Range(a.Min.X, a.Max.X), a.Min.Y-off)
	case 1:
		return vmath.V2(a.Max.X+off, rng.Range(a.Min.Y, a.Max.Y))
	case 2:
		return vmath.V2(rng.Range(a.Min.X, a.Max.X), a.Max.Y+off)
	default:
		return vmath.V2(a.Min.X-off, rng.Range(a.Min.Y, a.Max.Y))
	}
}

// SpawnBoss fills the main slot with the roster entry at index
// A request while the slot is held is a no-op; indices past the roster clamp to its last entry
func (s *SpawnSystem) SpawnBoss(index int) core.Entity {
	if s.BossActive() || s.world.Resources.Game.Over() {
		s.statNoop.Add(1)
		return 0
	}
	roster := s.world.Resources.Tuning.Bosses
	index = max(0, min(index, len(roster)-1))

	e := s.placeBoss(index, index, 1, false)
	s.boss = e
	s.statSlot.Store(true)
	s.statBosses.Add(1)
	return e
}

// revive brings back a random defeated boss as a bonus encounter outside the slot
func (s *SpawnSystem) revive() {
	index := s.defeated[s.world.Resources.Rand.Intn(len(s.defeated))]
	level := s.world.Resources.Stats.Level / parameter.RevivalLevelDivisor
	s.placeBoss(index, level, s.world.Resources.Tuning.Spawn.RevivalHPFraction, true)
	s.statRevivals.Add(1)
}

func (s *SpawnSystem) placeBoss(index, level int, hpFraction float64, revived bool) core.Entity {
	def := s.world.Resources.Tuning.Bosses[index]
	enemy := ScaleBoss(def, index, level, hpFraction)
	enemy.Boss.Revived = revived
	enemy.Level = s.world.Resources.Stats.Level
	pos := s.bossPoint()

	e := s.world.CreateEntity()
	s.world.Components.Body.Set(e, &component.BodyComponent{Pos: pos, Radius: enemy.Size / 2})
	s.world.Components.Enemy.Set(e, enemy)

	s.world.PushEvent(event.EventEnemySpawned, &event.EnemySpawnedPayload{
		Entity:    e,
		Archetype: def.Name,
		Boss:      true,
		Revived:   revived,
		Level:     level,
		Position:  pos,
	})
	s.world.PushEvent(event.EventBossPhase, &event.BossPhasePayload{
		Entity:  e,
		Name:    def.Name,
		Phase:   event.BossEntering,
		Level:   level,
		Revived: revived,
	})
	return e
}

// ScaleBoss builds a boss from its roster entry; hp, damage and xp grow exponentially with level
func ScaleBoss(def tuning.BossDef, index, level int, hpFraction float64) *component.EnemyComponent {
	lv := float64(level)
	hp := math.Floor(def.HP * hpFraction * math.Pow(parameter.BossHPGrowth, lv))
	return &component.EnemyComponent{
		Archetype: def.Name,
		HP:        hp,
		MaxHP:     hp,
		Speed:     def.Speed,
		Damage:    math.Floor(def.Damage * math.Pow(parameter.BossDamageGrowth, lv)),
		XP:        int(math.Floor(float64(def.XP) * math.Pow(parameter.BossXPGrowth, lv))),
		Size:      def.Size,
		Color:     def.Color,
		Boss: &component.BossState{
			Name:           def.Name,
			Index:          index,
			Level:          level,
			Attack:         def.Attack,
			Special:        def.Special,
			Phase:          event.BossEntering,
			AttackInterval: def.AttackInterval,
			AttackTimer:    def.AttackInterval,
			SpecialTimer:   def.AttackInterval * parameter.BossSpecialFactor,
			PhaseTimer:     parameter.BossEntranceDuration,
		},
	}
}

// bossPoint picks the edge or corner candidate farthest from the player
func (s *SpawnSystem) bossPoint() vmath.Vec2 {
	a := s.world.Resources.Arena
	m := parameter.BossSpawnMargin
	c := a.Center()
	candidates := [...]vmath.Vec2{
		vmath.V2(c.X, a.Min.Y+m),
		vmath.V2(a.Max.X-m, c.Y),
		vmath.V2(c.X, a.Max.Y-m),
		vmath.V2(a.Min.X+m, c.Y),
		vmath.V2(a.Min.X+m, a.Min.Y+m),
		vmath.V2(a.Max.X-m, a.Min.Y+m),
		vmath.V2(a.Max.X-m, a.Max.Y-m),
		vmath.V2(a.Min.X+m, a.Max.Y-m),
	}

	player, ok := playerBody(s.world)
	if !ok {
		return candidates[0]
	}
	best, bestD := candidates[0], -1.0
	for _, p := range candidates {
		if d := vmath.DistSq(p, player.Pos); d > bestD {
			best, bestD = p, d
		}
	}
	if math.Sqrt(bestD) < parameter.BossSpawnSafetyRadius {
		s.statUnsafe.Add(1)
	}
	return best
}

func (s *SpawnSystem) releaseSlot() {
	if s.boss == 0 {
		return
	}
	if enemy, ok := s.world.Components.Enemy.Get(s.boss); ok && enemy.Boss != nil {
		if !slices.Contains(s.defeated, enemy.Boss.Index) {
			s.defeated = append(s.defeated, enemy.Boss.Index)
		}
	}
	s.boss = 0
	s.statSlot.Store(false)
}
