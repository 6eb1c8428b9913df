package system

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/oncoarena/component"
	"github.com/lixenwraith/oncoarena/engine"
	"github.com/lixenwraith/oncoarena/event"
	"github.com/lixenwraith/oncoarena/parameter"
	"github.com/lixenwraith/oncoarena/tuning"
	"github.com/lixenwraith/oncoarena/vmath"
)

// Orb body radii
const (
	xpOrbRadius     = 6.0
	healthOrbRadius = 8.0
)

// LootSystem drops orbs on kills, pulls xp orbs toward the player and collects them
type LootSystem struct {
	world *engine.World

	statDrops    *atomic.Int64
	statActive   *atomic.Int64
	statCollects *atomic.Int64
	statHealth   *atomic.Int64

	enabled bool
}

func NewLootSystem(world *engine.World) engine.System {
	s := &LootSystem{
		world: world,
	}

	s.statDrops = world.Resources.Status.Ints.Get("loot.drops")
	s.statActive = world.Resources.Status.Ints.Get("loot.active")
	s.statCollects = world.Resources.Status.Ints.Get("loot.collects")
	s.statHealth = world.Resources.Status.Ints.Get("loot.health_drops")

	s.Init()
	return s
}

func (s *LootSystem) Init() {
	s.statDrops.Store(0)
	s.statActive.Store(0)
	s.statCollects.Store(0)
	s.statHealth.Store(0)
	s.enabled = true
}

func (s *LootSystem) Name() string {
	return "loot"
}

func (s *LootSystem) Priority() int {
	return parameter.PriorityLoot
}

func (s *LootSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventEnemyDied,
		event.EventGameReset,
	}
}

func (s *LootSystem) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventGameReset {
		s.Init()
		return
	}

	if !s.enabled {
		return
	}

	switch ev.Type {
	case event.EventEnemyDied:
		if payload, ok := ev.Payload.(*event.EnemyDiedPayload); ok {
			s.onEnemyDied(payload)
		}
	}
}

// Decompose splits total into the fewest orbs over the fixed denominations, largest first
func Decompose(total int) []int {
	if total <= 0 {
		return nil
	}
	var orbs []int
	for _, d := range parameter.XPDenominations {
		for total >= d {
			orbs = append(orbs, d)
			total -= d
		}
	}
	return orbs
}

// HealthDropChance decays the base rate every DecayEvery levels down to the floor
func HealthDropChance(h tuning.HealthTuning, level int) float64 {
	steps := 0
	if h.DecayEvery > 0 {
		steps = level / h.DecayEvery
	}
	return math.Max(h.MinChance, h.DropChance*math.Pow(h.DecayFactor, float64(steps)))
}

// MagnetSpeed is the pull speed at distance d for a magnet of the given range
// Zero at the range edge, rising quadratically to the maximum at the pickup radius
func MagnetSpeed(d, rangeR float64) float64 {
	span := rangeR - parameter.MagnetPickupRadius
	if span <= 0 {
		return parameter.MagnetMaxSpeed
	}
	t := vmath.Clamp((rangeR-d)/span, 0, 1)
	return parameter.MagnetMaxSpeed * t * t
}

func (s *LootSystem) onEnemyDied(p *event.EnemyDiedPayload) {
	drops := 1
	// Bosses pay out twice
	if p.Boss {
		drops = 2
	}
	for i := 0; i < drops; i++ {
		s.dropXP(p.Position, p.XP)
	}

	t := s.world.Resources.Tuning
	if s.world.Resources.Rand.Chance(HealthDropChance(t.Health, s.world.Resources.Stats.Level)) {
		s.spawnOrb(p.Position, event.LootHealth, 0, healthOrbRadius, parameter.HealthOrbLifetime)
		s.statHealth.Add(1)
	}
}

func (s *LootSystem) dropXP(at vmath.Vec2, xp int) {
	orbs := Decompose(xp)
	if len(orbs) == 0 {
		return
	}
	rng := s.world.Resources.Rand
	scatter := math.Min(parameter.ScatterMax, float64(len(orbs))*parameter.ScatterPerOrb)
	for _, v := range orbs {
		offset := vmath.V2((rng.Float64()-0.5)*scatter, (rng.Float64()-0.5)*scatter)
		s.spawnOrb(at.Add(offset), event.LootXP, v, xpOrbRadius, 0)
	}
	s.statDrops.Add(int64(len(orbs)))
}

func (s *LootSystem) spawnOrb(at vmath.Vec2, kind event.LootKind, value int, radius float64, lifetime time.Duration) {
	e := s.world.CreateEntity()
	s.world.Components.Body.Set(e, &component.BodyComponent{Pos: at, Radius: radius})
	s.world.Components.Loot.Set(e, &component.LootComponent{Kind: kind, Value: value, Lifetime: lifetime})
}

func (s *LootSystem) Update() {
	if !s.enabled {
		return
	}

	lootEntities := s.world.Components.Loot.GetAllEntities()
	if len(lootEntities) == 0 {
		s.statActive.Store(0)
		return
	}

	pe := s.world.Resources.Player.Entity
	player, ok := s.world.Components.Player.Get(pe)
	if !ok {
		return
	}
	target, ok := s.world.Components.Body.Get(pe)
	if !ok {
		return
	}

	dt := s.world.Resources.Time.DeltaTime
	dts := dt.Seconds()
	xpT := s.world.Resources.Tuning.XP
	magnetRange := xpT.MagnetRange + float64(player.Magnet)*xpT.MagnetPerLevel

	for _, e := range lootEntities {
		orb, ok := s.world.Components.Loot.Get(e)
		if !ok {
			continue
		}
		body, ok := s.world.Components.Body.Get(e)
		if !ok {
			s.world.DestroyEntity(e)
			continue
		}

		orb.Age += dt
		if orb.Lifetime > 0 && orb.Age >= orb.Lifetime {
			s.world.DestroyEntity(e)
			continue
		}

		if orb.Kind == event.LootXP {
			s.attract(body, target, magnetRange, dts)
		}

		if body.Overlaps(target, 0) {
			s.collect(orb, player)
			s.world.DestroyEntity(e)
		}
	}
	s.statActive.Store(int64(s.world.Components.Loot.Count()))
}

// attract moves an xp orb toward the player; speed depends only on distance, never direction
func (s *LootSystem) attract(body, target *component.BodyComponent, magnetRange, dt float64) {
	d := vmath.Dist(body.Pos, target.Pos)
	switch {
	case d <= parameter.MagnetPickupRadius:
		body.Pos = target.Pos
		body.Vel = vmath.Vec2{}
	case d < magnetRange:
		speed := MagnetSpeed(d, magnetRange)
		body.Vel = target.Pos.Sub(body.Pos).Scale(speed / d)
		body.Pos = vmath.MoveTowards(body.Pos, target.Pos, speed*dt)
	default:
		body.Vel = body.Vel.Scale(math.Max(0, 1-parameter.MagnetBrake*dt))
		integrate(body, dt, nil)
	}
}

func (s *LootSystem) collect(orb *component.LootComponent, player *component.PlayerComponent) {
	stats := s.world.Resources.Stats
	value := orb.Value
	switch orb.Kind {
	case event.LootXP:
		stats.XP += value
		stats.XPCollected += value
	case event.LootHealth:
		heal := player.MaxHP * s.world.Resources.Tuning.Health.HealFraction
		value = int(math.Round(player.Heal(heal)))
		stats.HealthPickups++
	}
	s.statCollects.Add(1)
	s.world.PushEvent(event.EventLootCollected, &event.LootCollectedPayload{Kind: orb.Kind, Value: value})
}
