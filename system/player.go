package system

import (
	"sync/atomic"

	"github.com/lixenwraith/oncoarena/engine"
	"github.com/lixenwraith/oncoarena/event"
	"github.com/lixenwraith/oncoarena/parameter"
)

// PlayerSystem moves the player from the input intent and runs its defensive timers
type PlayerSystem struct {
	world *engine.World

	statRejected *atomic.Int64
	statRegens   *atomic.Int64

	enabled bool
}

func NewPlayerSystem(world *engine.World) engine.System {
	s := &PlayerSystem{
		world: world,
	}

	s.statRejected = world.Resources.Status.Ints.Get("player.rejected_moves")
	s.statRegens = world.Resources.Status.Ints.Get("player.shield_regens")

	s.Init()
	return s
}

func (s *PlayerSystem) Init() {
	s.statRejected.Store(0)
	s.statRegens.Store(0)
	s.enabled = true
}

func (s *PlayerSystem) Name() string {
	return "player"
}

func (s *PlayerSystem) Priority() int {
	return parameter.PriorityPlayer
}

func (s *PlayerSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventGameReset,
	}
}

func (s *PlayerSystem) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventGameReset {
		s.Init()
	}
}

func (s *PlayerSystem) Update() {
	if !s.enabled {
		return
	}

	pe := s.world.Resources.Player.Entity
	p, ok := s.world.Components.Player.Get(pe)
	if !ok || p.HP <= 0 {
		return
	}
	body, ok := s.world.Components.Body.Get(pe)
	if !ok {
		return
	}
	dt := s.world.Resources.Time.DeltaTime

	// Normalized so diagonal input is not faster than axis input
	dir := p.Intent.Normalize()
	if dir.LenSq() > 0 {
		p.Facing = dir
	}
	body.Vel = dir.Scale(p.MoveSpeed())
	if integrate(body, dt.Seconds(), s.statRejected) {
		body.Pos = s.world.Resources.Arena.ClampPoint(body.Pos, body.Radius)
	}

	if p.Invincible {
		p.InvincibleTimer -= dt
		if p.InvincibleTimer <= 0 {
			p.InvincibleTimer = 0
			p.Invincible = false
		}
	}

	shield := &p.Shield
	if shield.Level > 0 && shield.Regenerating {
		shield.RegenTimer -= dt
		if shield.RegenTimer <= 0 {
			shield.RegenTimer = 0
			shield.Regenerating = false
			shield.Capacity = shield.MaxCapacity
			s.statRegens.Add(1)
			s.world.PushEvent(event.EventShieldRestored, nil)
		}
	}
}

