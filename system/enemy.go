package system

import (
	"sync/atomic"

	"github.com/lixenwraith/oncoarena/component"
	"github.com/lixenwraith/oncoarena/core"
	"github.com/lixenwraith/oncoarena/engine"
	"github.com/lixenwraith/oncoarena/event"
	"github.com/lixenwraith/oncoarena/parameter"
	"github.com/lixenwraith/oncoarena/vmath"
)

// EnemySystem chases the player and runs support and shooter traits
// Bosses share the timers here but their movement and attacks belong to BossSystem
type EnemySystem struct {
	world *engine.World

	statActive   *atomic.Int64
	statBuffs    *atomic.Int64
	statShots    *atomic.Int64
	statRejected *atomic.Int64

	enabled bool
}

func NewEnemySystem(world *engine.World) engine.System {
	s := &EnemySystem{
		world: world,
	}

	reg := world.Resources.Status
	s.statActive = reg.Ints.Get("enemy.active")
	s.statBuffs = reg.Ints.Get("enemy.buffs")
	s.statShots = reg.Ints.Get("enemy.shots")
	s.statRejected = reg.Ints.Get("enemy.rejected_moves")

	s.Init()
	return s
}

func (s *EnemySystem) Init() {
	s.statActive.Store(0)
	s.statBuffs.Store(0)
	s.statShots.Store(0)
	s.statRejected.Store(0)
	s.enabled = true
}

func (s *EnemySystem) Name() string {
	return "enemy"
}

func (s *EnemySystem) Priority() int {
	return parameter.PriorityEnemy
}

func (s *EnemySystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventGameReset,
	}
}

func (s *EnemySystem) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventGameReset {
		s.Init()
	}
}

func (s *EnemySystem) Update() {
	if !s.enabled {
		return
	}

	target, ok := playerBody(s.world)
	if !ok {
		return
	}
	dt := s.world.Resources.Time.DeltaTime

	entities := s.world.Components.Enemy.GetAllEntities()
	s.statActive.Store(int64(len(entities)))

	for _, e := range entities {
		enemy, ok := s.world.Components.Enemy.Get(e)
		if !ok || enemy.Dead {
			continue
		}
		body, ok := s.world.Components.Body.Get(e)
		if !ok {
			continue
		}

		if enemy.HitFlash > 0 {
			enemy.HitFlash -= dt
		}
		if enemy.Buff != nil && enemy.Buff.Remaining > 0 {
			enemy.Buff.Remaining -= dt
		}
		if enemy.IsBoss() {
			continue
		}

		body.Vel = target.Pos.Sub(body.Pos).Normalize().Scale(enemy.CurrentSpeed())
		integrate(body, dt.Seconds(), s.statRejected)

		if enemy.Support != nil {
			enemy.Support.Timer -= dt
			if enemy.Support.Timer <= 0 {
				s.pulseSupport(e, enemy.Support, body.Pos)
				enemy.Support.Timer += parameter.SupportPulseInterval
				if enemy.Support.Timer <= 0 {
					enemy.Support.Timer = parameter.SupportPulseInterval
				}
			}
		}

		if enemy.Shooter != nil {
			enemy.Shooter.Timer -= dt
			if enemy.Shooter.Timer <= 0 {
				s.shoot(e, enemy.Shooter, body.Pos, target.Pos)
				enemy.Shooter.Timer = enemy.Shooter.Interval
			}
		}
	}
}

// pulseSupport buffs every other normal enemy within the support radius
func (s *EnemySystem) pulseSupport(self core.Entity, sup *component.SupportState, at vmath.Vec2) {
	r2 := sup.Radius * sup.Radius
	for _, e := range s.world.Components.Enemy.GetAllEntities() {
		if e == self {
			continue
		}
		other, ok := s.world.Components.Enemy.Get(e)
		if !ok || other.Dead || other.IsBoss() {
			continue
		}
		body, ok := s.world.Components.Body.Get(e)
		if !ok || vmath.DistSq(at, body.Pos) > r2 {
			continue
		}
		other.ApplyBuff(sup.Multiplier, sup.Multiplier, parameter.SupportBuffDuration)
		s.statBuffs.Add(1)
	}
}

// shoot fires one inaccurate projectile at the player
func (s *EnemySystem) shoot(e core.Entity, sh *component.ShooterState, from, to vmath.Vec2) {
	angle := vmath.AngleBetween(from, to) + s.world.Resources.Rand.Jitter(parameter.ShooterInaccuracy)
	fireEnemyShot(s.world, enemyShot{
		owner:    e,
		from:     from,
		angle:    angle,
		speed:    parameter.EnemyProjectileSpeed,
		damage:   sh.Damage,
		lifetime: parameter.EnemyProjectileLifetime,
		tracking: sh.Homing,
	})
	s.statShots.Add(1)
	announceShots(s.world, e, 1)
}
