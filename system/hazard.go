package system

import (
	"math"
	"sync/atomic"

	"github.com/lixenwraith/oncoarena/combat"
	"github.com/lixenwraith/oncoarena/component"
	"github.com/lixenwraith/oncoarena/engine"
	"github.com/lixenwraith/oncoarena/event"
	"github.com/lixenwraith/oncoarena/parameter"
	"github.com/lixenwraith/oncoarena/vmath"
)

// HazardSystem arms, pulses and expires boss area effects
// A hazard whose owner died is removed without effect
type HazardSystem struct {
	world    *engine.World
	resolver *combat.Resolver

	statActive    *atomic.Int64
	statPulses    *atomic.Int64
	statHits      *atomic.Int64
	statCancelled *atomic.Int64
	statRejected  *atomic.Int64

	enabled bool
}

func NewHazardSystem(world *engine.World, resolver *combat.Resolver) engine.System {
	s := &HazardSystem{
		world:    world,
		resolver: resolver,
	}

	reg := world.Resources.Status
	s.statActive = reg.Ints.Get("hazard.active")
	s.statPulses = reg.Ints.Get("hazard.pulses")
	s.statHits = reg.Ints.Get("hazard.hits")
	s.statCancelled = reg.Ints.Get("hazard.cancelled")
	s.statRejected = reg.Ints.Get("hazard.rejected_moves")

	s.Init()
	return s
}

func (s *HazardSystem) Init() {
	s.statActive.Store(0)
	s.statPulses.Store(0)
	s.statHits.Store(0)
	s.statCancelled.Store(0)
	s.statRejected.Store(0)
	s.enabled = true
}

func (s *HazardSystem) Name() string {
	return "hazard"
}

func (s *HazardSystem) Priority() int {
	return parameter.PriorityHazard
}

func (s *HazardSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventGameReset,
	}
}

func (s *HazardSystem) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventGameReset {
		s.Init()
	}
}

func (s *HazardSystem) Update() {
	if !s.enabled {
		return
	}

	dt := s.world.Resources.Time.DeltaTime
	entities := s.world.Components.Hazard.GetAllEntities()

	for _, e := range entities {
		if s.world.Frozen() {
			return
		}
		h, ok := s.world.Components.Hazard.Get(e)
		if !ok {
			continue
		}
		body, ok := s.world.Components.Body.Get(e)
		if !ok || !ownerAlive(s.world, h.Owner) {
			s.world.DestroyEntity(e)
			s.statCancelled.Add(1)
			continue
		}

		h.Age += dt
		switch {
		case !h.Armed():
			integrate(body, dt.Seconds(), s.statRejected)
			h.Delay -= dt
			if h.Delay <= 0 {
				h.Delay = 0
				body.Vel = vmath.Vec2{}
				s.pulse(h, body)
				h.Timer = h.Interval
			}
		case h.Pulses > 0 && h.Interval > 0:
			h.Timer -= dt
			if h.Timer <= 0 {
				s.pulse(h, body)
				h.Timer += h.Interval
			}
		case h.Pulses > 0:
			s.pulse(h, body)
		}

		if (h.Lifetime > 0 && h.Age >= h.Lifetime) || (h.Lifetime <= 0 && h.Pulses <= 0) {
			s.world.DestroyEntity(e)
		}
	}
	s.statActive.Store(int64(s.world.Components.Hazard.Count()))
}

// pulse consumes one pulse and damages the player if inside the hazard's shape
func (s *HazardSystem) pulse(h *component.HazardComponent, body *component.BodyComponent) {
	if h.Pulses <= 0 {
		return
	}
	h.Pulses--
	s.statPulses.Add(1)

	if h.Shape == component.HazardDisc && h.Interval <= 0 {
		s.world.PushEvent(event.EventExplosion, &event.ExplosionPayload{
			Position: body.Pos,
			Radius:   h.Radius,
			Hostile:  true,
		})
	}

	target, ok := playerBody(s.world)
	if !ok {
		return
	}
	dmg, hit := HazardDamage(h, vmath.Dist(body.Pos, target.Pos))
	if !hit {
		return
	}
	s.statHits.Add(1)
	s.resolver.DamagePlayer(dmg, combat.SourceHazard)
}

// HazardDamage is the damage a pulse deals at distance d from the hazard center
func HazardDamage(h *component.HazardComponent, d float64) (float64, bool) {
	switch h.Shape {
	case component.HazardRing:
		if math.Abs(d-h.Radius) >= h.Width {
			return 0, false
		}
		return h.Damage, true
	default:
		if d >= h.Radius {
			return 0, false
		}
		if h.Falloff {
			return h.Damage * (1 - d/h.Radius), true
		}
		return h.Damage, true
	}
}
