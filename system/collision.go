package system

import (
	"math"
	"sync/atomic"

	"github.com/lixenwraith/oncoarena/combat"
	"github.com/lixenwraith/oncoarena/component"
	"github.com/lixenwraith/oncoarena/core"
	"github.com/lixenwraith/oncoarena/engine"
	"github.com/lixenwraith/oncoarena/event"
	"github.com/lixenwraith/oncoarena/parameter"
	"github.com/lixenwraith/oncoarena/vmath"
)

// CollisionSystem resolves projectile hits and body contact through the resolver
type CollisionSystem struct {
	world    *engine.World
	resolver *combat.Resolver

	statShotHits    *atomic.Int64
	statHostileHits *atomic.Int64
	statContacts    *atomic.Int64

	enabled bool
}

func NewCollisionSystem(world *engine.World, resolver *combat.Resolver) engine.System {
	s := &CollisionSystem{
		world:    world,
		resolver: resolver,
	}

	reg := world.Resources.Status
	s.statShotHits = reg.Ints.Get("collision.shot_hits")
	s.statHostileHits = reg.Ints.Get("collision.hostile_hits")
	s.statContacts = reg.Ints.Get("collision.contacts")

	s.Init()
	return s
}

func (s *CollisionSystem) Init() {
	s.statShotHits.Store(0)
	s.statHostileHits.Store(0)
	s.statContacts.Store(0)
	s.enabled = true
}

func (s *CollisionSystem) Name() string {
	return "collision"
}

func (s *CollisionSystem) Priority() int {
	return parameter.PriorityCollision
}

func (s *CollisionSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventGameReset,
	}
}

func (s *CollisionSystem) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventGameReset {
		s.Init()
	}
}

func (s *CollisionSystem) Update() {
	if !s.enabled {
		return
	}

	player, ok := playerBody(s.world)
	if !ok {
		return
	}
	enemies := s.world.Components.Enemy.GetAllEntities()

	for _, pe := range s.world.Components.Projectile.GetAllEntities() {
		proj, ok := s.world.Components.Projectile.Get(pe)
		if !ok {
			continue
		}
		body, ok := s.world.Components.Body.Get(pe)
		if !ok {
			continue
		}
		if proj.Hostile {
			if s.hostileHit(pe, proj, body, player) {
				return
			}
			continue
		}
		if proj.Visible {
			s.shotHits(pe, proj, body, enemies)
		}
	}

	s.contact(player, enemies)
}

// shotHits tests one player projectile against every enemy until it is used up
func (s *CollisionSystem) shotHits(pe core.Entity, proj *component.ProjectileComponent, body *component.BodyComponent, enemies []core.Entity) {
	for _, e := range enemies {
		enemy, ok := s.world.Components.Enemy.Get(e)
		if !ok || enemy.Dead || proj.AlreadyHit(e) {
			continue
		}
		// Entering bosses are not yet on the field
		if enemy.Boss != nil && enemy.Boss.Phase != event.BossActive {
			continue
		}
		eb, ok := s.world.Components.Body.Get(e)
		if !ok {
			continue
		}
		reach := math.Max(parameter.ProjectileHitRadius, eb.Radius)
		if vmath.DistSq(body.Pos, eb.Pos) >= reach*reach {
			continue
		}
		s.statShotHits.Add(1)
		if s.resolver.ProjectileHit(pe, proj, e) {
			return
		}
	}
}

// hostileHit resolves an enemy projectile against the player; returns true once the run is over
// Shots pass through while the player is invincible
func (s *CollisionSystem) hostileHit(pe core.Entity, proj *component.ProjectileComponent, body, player *component.BodyComponent) bool {
	if vmath.DistSq(body.Pos, player.Pos) >= parameter.EnemyProjectileRadius*parameter.EnemyProjectileRadius {
		return false
	}
	hit := s.resolver.DamagePlayer(proj.Damage, combat.SourceProjectile)
	if hit.Ignored {
		return false
	}
	s.statHostileHits.Add(1)
	s.world.DestroyEntity(pe)
	return hit.Died
}

// contact applies body damage from every enemy touching the player
func (s *CollisionSystem) contact(player *component.BodyComponent, enemies []core.Entity) {
	for _, e := range enemies {
		enemy, ok := s.world.Components.Enemy.Get(e)
		if !ok || enemy.Dead {
			continue
		}
		if enemy.Boss != nil && enemy.Boss.Phase != event.BossActive {
			continue
		}
		eb, ok := s.world.Components.Body.Get(e)
		if !ok || !player.Overlaps(eb, 0) {
			continue
		}
		s.statContacts.Add(1)
		if hit := s.resolver.DamagePlayer(enemy.CurrentDamage(), combat.SourceContact); hit.Died {
			return
		}
	}
}
