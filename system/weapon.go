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

// WeaponSystem runs the player's periodic attacks: auto-fire, rays, lightning and aura
type WeaponSystem struct {
	world    *engine.World
	resolver *combat.Resolver

	statVolleys   *atomic.Int64
	statShots     *atomic.Int64
	statRays      *atomic.Int64
	statLightning *atomic.Int64
	statAuraHits  *atomic.Int64

	enabled bool
}

func NewWeaponSystem(world *engine.World, resolver *combat.Resolver) engine.System {
	s := &WeaponSystem{
		world:    world,
		resolver: resolver,
	}

	reg := world.Resources.Status
	s.statVolleys = reg.Ints.Get("weapon.volleys")
	s.statShots = reg.Ints.Get("weapon.shots")
	s.statRays = reg.Ints.Get("weapon.rays")
	s.statLightning = reg.Ints.Get("weapon.lightning")
	s.statAuraHits = reg.Ints.Get("weapon.aura_hits")

	s.Init()
	return s
}

func (s *WeaponSystem) Init() {
	s.statVolleys.Store(0)
	s.statShots.Store(0)
	s.statRays.Store(0)
	s.statLightning.Store(0)
	s.statAuraHits.Store(0)
	s.enabled = true
}

func (s *WeaponSystem) Name() string {
	return "weapon"
}

func (s *WeaponSystem) Priority() int {
	return parameter.PriorityWeapon
}

func (s *WeaponSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventGameReset,
	}
}

func (s *WeaponSystem) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventGameReset {
		s.Init()
	}
}

func (s *WeaponSystem) Update() {
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

	// Timers reload from the current interval; a long frame fires once, never a backlog
	p.FireTimer -= dt
	if p.FireTimer <= 0 {
		s.fireVolley(p, body)
		p.FireTimer += p.FireInterval()
		if p.FireTimer <= 0 {
			p.FireTimer = p.FireInterval()
		}
	}

	if p.Radiotherapy > 0 {
		p.RayTimer -= dt
		if p.RayTimer <= 0 {
			s.statRays.Add(int64(s.resolver.Radiotherapy()))
			p.RayTimer = p.RayInterval()
		}
	}

	if p.Lightning > 0 {
		p.LightningTimer -= dt
		if p.LightningTimer <= 0 {
			if s.resolver.ChainLightning() {
				s.statLightning.Add(1)
			}
			p.LightningTimer = p.LightningInterval()
		}
	}

	if p.AuraDamage > 0 {
		s.statAuraHits.Add(int64(s.resolver.Aura(dt)))
	}
}

// fireVolley spreads the player's projectiles evenly over a full circle
func (s *WeaponSystem) fireVolley(p *component.PlayerComponent, body *component.BodyComponent) {
	n := p.ProjectileCount()
	if n <= 0 {
		return
	}
	speed := p.ShotSpeed()
	damage := p.ProjectileDamage()
	lifetime := p.ProjectileLifetime()
	maxHits := 1 + p.Piercing

	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		e := s.world.CreateEntity()
		s.world.Components.Body.Set(e, &component.BodyComponent{
			Pos:    body.Pos,
			Vel:    vmath.FromAngle(angle, speed),
			Radius: parameter.ProjectileHitRadius,
		})
		s.world.Components.Projectile.Set(e, &component.ProjectileComponent{
			Owner:          s.world.Resources.Player.Entity,
			Damage:         damage,
			OriginalDamage: damage,
			Lifetime:       lifetime,
			Speed:          speed,
			Origin:         body.Pos,
			MaxHits:        maxHits,
			Explodes:       p.Explosive,
		})
	}

	s.statVolleys.Add(1)
	s.statShots.Add(int64(n))
	s.world.PushEvent(event.EventProjectileFired, &event.ProjectileFiredPayload{
		Owner: s.world.Resources.Player.Entity,
		Count: n,
	})
}
