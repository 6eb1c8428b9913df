package system

import (
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

// BossSystem drives the boss state machine: entrance, pursuit, basic and special attacks
// Delayed steps of an attack are scheduled with the boss's liveness as their guard
type BossSystem struct {
	world *engine.World

	statAlive    *atomic.Int64
	statAttacks  *atomic.Int64
	statSpecials *atomic.Int64
	statRejected *atomic.Int64

	enabled bool
}

func NewBossSystem(world *engine.World) engine.System {
	s := &BossSystem{
		world: world,
	}

	reg := world.Resources.Status
	s.statAlive = reg.Ints.Get("boss.alive")
	s.statAttacks = reg.Ints.Get("boss.attacks")
	s.statSpecials = reg.Ints.Get("boss.specials")
	s.statRejected = reg.Ints.Get("boss.rejected_moves")

	s.Init()
	return s
}

func (s *BossSystem) Init() {
	s.statAlive.Store(0)
	s.statAttacks.Store(0)
	s.statSpecials.Store(0)
	s.statRejected.Store(0)
	s.enabled = true
}

func (s *BossSystem) Name() string {
	return "boss"
}

func (s *BossSystem) Priority() int {
	return parameter.PriorityBoss
}

func (s *BossSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventGameReset,
	}
}

func (s *BossSystem) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventGameReset {
		s.Init()
	}
}

func (s *BossSystem) Update() {
	if !s.enabled {
		return
	}

	target, ok := playerBody(s.world)
	if !ok {
		return
	}
	dt := s.world.Resources.Time.DeltaTime

	alive := 0
	for _, e := range s.world.Components.Enemy.GetAllEntities() {
		enemy, ok := s.world.Components.Enemy.Get(e)
		if !ok || enemy.Dead || enemy.Boss == nil {
			continue
		}
		body, ok := s.world.Components.Body.Get(e)
		if !ok {
			continue
		}
		alive++
		boss := enemy.Boss

		if boss.Phase == event.BossEntering {
			boss.PhaseTimer -= dt
			if boss.PhaseTimer > 0 {
				continue
			}
			boss.PhaseTimer = 0
			boss.Phase = event.BossActive
			s.world.PushEvent(event.EventBossPhase, &event.BossPhasePayload{
				Entity:  e,
				Name:    boss.Name,
				Phase:   event.BossActive,
				Level:   boss.Level,
				Revived: boss.Revived,
			})
		}

		body.Vel = target.Pos.Sub(body.Pos).Normalize().Scale(enemy.CurrentSpeed())
		integrate(body, dt.Seconds(), s.statRejected)

		if boss.Immune {
			boss.ImmuneTimer -= dt
			if boss.ImmuneTimer <= 0 {
				boss.ImmuneTimer = 0
				boss.Immune = false
			}
		}

		boss.AttackTimer -= dt
		if boss.AttackTimer <= 0 {
			s.basicAttack(e, boss.Attack)
			boss.AttackTimer = boss.AttackInterval
			s.statAttacks.Add(1)
		}

		boss.SpecialTimer -= dt
		if boss.SpecialTimer <= 0 {
			s.specialAttack(e, boss.Special)
			boss.SpecialTimer = boss.AttackInterval * parameter.BossSpecialFactor
			s.statSpecials.Add(1)
		}
	}
	s.statAlive.Store(int64(alive))
}

// bossAt resolves the live state of a boss inside a scheduled step
func (s *BossSystem) bossAt(e core.Entity) (*component.EnemyComponent, *component.BodyComponent, bool) {
	enemy, ok := s.world.Components.Enemy.Get(e)
	if !ok || enemy.Dead {
		return nil, nil, false
	}
	body, ok := s.world.Components.Body.Get(e)
	return enemy, body, ok
}

// later runs step after delay while the boss lives; a zero delay runs it now
func (s *BossSystem) later(e core.Entity, delay time.Duration, step func()) {
	if delay <= 0 {
		step()
		return
	}
	s.world.Resources.Scheduler.After(delay,
		func() bool { return ownerAlive(s.world, e) },
		step,
	)
}

func (s *BossSystem) basicAttack(e core.Entity, attack tuning.AttackType) {
	switch attack {
	case tuning.AttackLinear:
		s.linearAttack(e)
	case tuning.AttackCircle:
		s.circleAttack(e, 0)
	case tuning.AttackTracking:
		s.trackingAttack(e)
	case tuning.AttackMulti:
		s.linearAttack(e)
		s.later(e, parameter.MultiCircleDelay, func() { s.circleAttack(e, 0) })
	}
}

// linearAttack fans shots around the direction of the player
func (s *BossSystem) linearAttack(e core.Entity) {
	enemy, body, ok := s.bossAt(e)
	if !ok {
		return
	}
	target, ok := playerBody(s.world)
	if !ok {
		return
	}
	aim := vmath.AngleBetween(body.Pos, target.Pos)
	half := parameter.LinearShots / 2
	for i := -half; i <= half; i++ {
		fireEnemyShot(s.world, enemyShot{
			owner:    e,
			from:     body.Pos,
			angle:    aim + float64(i)*parameter.LinearSpacing,
			speed:    parameter.LinearSpeed,
			damage:   enemy.CurrentDamage(),
			lifetime: parameter.BossProjectileLifetime,
		})
	}
	announceShots(s.world, e, parameter.LinearShots)
}

// circleAttack fires an evenly spaced ring
func (s *BossSystem) circleAttack(e core.Entity, offset float64) {
	enemy, body, ok := s.bossAt(e)
	if !ok {
		return
	}
	for i := 0; i < parameter.CircleShots; i++ {
		fireEnemyShot(s.world, enemyShot{
			owner:    e,
			from:     body.Pos,
			angle:    offset + fullTurn*float64(i)/parameter.CircleShots,
			speed:    parameter.CircleSpeed,
			damage:   enemy.CurrentDamage(),
			lifetime: parameter.BossProjectileLifetime,
		})
	}
	announceShots(s.world, e, parameter.CircleShots)
}

// trackingAttack fires a staggered volley of homing shots
func (s *BossSystem) trackingAttack(e core.Entity) {
	for i := 0; i < parameter.TrackingShots; i++ {
		s.later(e, time.Duration(i)*parameter.TrackingGap, func() { s.trackingShot(e) })
	}
}

func (s *BossSystem) trackingShot(e core.Entity) {
	enemy, body, ok := s.bossAt(e)
	if !ok {
		return
	}
	target, ok := playerBody(s.world)
	if !ok {
		return
	}
	fireEnemyShot(s.world, enemyShot{
		owner:    e,
		from:     body.Pos,
		angle:    vmath.AngleBetween(body.Pos, target.Pos),
		speed:    parameter.TrackingSpeed,
		damage:   enemy.CurrentDamage(),
		lifetime: parameter.BossProjectileLifetime,
		tracking: true,
	})
	announceShots(s.world, e, 1)
}
