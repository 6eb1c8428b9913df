package system

import (
	"sync/atomic"

	"github.com/lixenwraith/oncoarena/engine"
	"github.com/lixenwraith/oncoarena/event"
	"github.com/lixenwraith/oncoarena/parameter"
	"github.com/lixenwraith/oncoarena/vmath"
)

// ProjectileSystem moves projectiles, re-aims tracking shots and expires them
type ProjectileSystem struct {
	world *engine.World

	statActive   *atomic.Int64
	statExpired  *atomic.Int64
	statRejected *atomic.Int64

	enabled bool
}

func NewProjectileSystem(world *engine.World) engine.System {
	s := &ProjectileSystem{
		world: world,
	}

	reg := world.Resources.Status
	s.statActive = reg.Ints.Get("projectile.active")
	s.statExpired = reg.Ints.Get("projectile.expired")
	s.statRejected = reg.Ints.Get("projectile.rejected_moves")

	s.Init()
	return s
}

func (s *ProjectileSystem) Init() {
	s.statActive.Store(0)
	s.statExpired.Store(0)
	s.statRejected.Store(0)
	s.enabled = true
}

func (s *ProjectileSystem) Name() string {
	return "projectile"
}

func (s *ProjectileSystem) Priority() int {
	return parameter.PriorityProjectile
}

func (s *ProjectileSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventGameReset,
	}
}

func (s *ProjectileSystem) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventGameReset {
		s.Init()
	}
}

func (s *ProjectileSystem) Update() {
	if !s.enabled {
		return
	}

	dt := s.world.Resources.Time.DeltaTime
	arena := s.world.Resources.Arena
	rng := s.world.Resources.Rand
	target, hasTarget := playerBody(s.world)

	for _, e := range s.world.Components.Projectile.GetAllEntities() {
		proj, ok := s.world.Components.Projectile.Get(e)
		if !ok {
			continue
		}
		body, ok := s.world.Components.Body.Get(e)
		if !ok {
			s.world.DestroyEntity(e)
			continue
		}

		proj.Age += dt
		if proj.Hostile && proj.Tracking && hasTarget {
			angle := vmath.AngleBetween(body.Pos, target.Pos) + rng.Jitter(parameter.TrackingJitter)
			body.Vel = vmath.FromAngle(angle, proj.Speed)
		}
		integrate(body, dt.Seconds(), s.statRejected)

		if !proj.Visible && vmath.Dist(body.Pos, proj.Origin) > parameter.ProjectileArmDistance {
			proj.Visible = true
		}

		if proj.Age >= proj.Lifetime || !arena.Contains(body.Pos, parameter.ProjectileCullMargin) {
			s.world.DestroyEntity(e)
			s.statExpired.Add(1)
		}
	}
	s.statActive.Store(int64(s.world.Components.Projectile.Count()))
}
