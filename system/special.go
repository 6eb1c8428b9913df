package system

import (
	"math"
	"time"

	"github.com/lixenwraith/oncoarena/component"
	"github.com/lixenwraith/oncoarena/core"
	"github.com/lixenwraith/oncoarena/event"
	"github.com/lixenwraith/oncoarena/parameter"
	"github.com/lixenwraith/oncoarena/tuning"
	"github.com/lixenwraith/oncoarena/vmath"
)

const fullTurn = 2 * math.Pi

// Hazard labels, read by frontends to pick a visual
const (
	HazardDivide     = "divide"
	HazardSpread     = "spread"
	HazardCorruption = "corruption"
	HazardGenetic    = "genetic"
	HazardRadiation  = "radiation"
	HazardApocalypse = "apocalypse"
)

func (s *BossSystem) specialAttack(e core.Entity, special tuning.SpecialAttack) {
	s.world.PushEvent(event.EventBossSpecial, &event.BossSpecialPayload{Entity: e, Special: special})

	switch special {
	case tuning.SpecialDivide:
		s.divide(e)
	case tuning.SpecialSpread:
		s.spread(e)
	case tuning.SpecialMutate:
		s.mutate(e)
	case tuning.SpecialCorruption:
		s.corruption(e)
	case tuning.SpecialGenetic:
		s.genetic(e)
	case tuning.SpecialRadiation:
		s.radiation(e)
	case tuning.SpecialImmunity:
		s.immunity(e)
	case tuning.SpecialApocalypse:
		s.apocalypse(e)
	}
}

// placeHazard creates a hazard entity owned by a boss
func (s *BossSystem) placeHazard(pos, vel vmath.Vec2, h component.HazardComponent) core.Entity {
	he := s.world.CreateEntity()
	s.world.Components.Body.Set(he, &component.BodyComponent{Pos: pos, Vel: vel, Radius: h.Radius})
	s.world.Components.Hazard.Set(he, &h)
	return he
}

// divide launches satellite cells at the player's current position; each detonates on arrival
func (s *BossSystem) divide(e core.Entity) {
	enemy, body, ok := s.bossAt(e)
	if !ok {
		return
	}
	target, ok := playerBody(s.world)
	if !ok {
		return
	}
	travel := parameter.DivideTravel.Seconds()
	for i := 0; i < parameter.DivideChildren; i++ {
		start := body.Pos.Add(vmath.FromAngle(fullTurn*float64(i)/parameter.DivideChildren, parameter.DivideOffset))
		vel := target.Pos.Sub(start).Scale(1 / travel)
		s.placeHazard(start, vel, component.HazardComponent{
			Owner:   e,
			Shape:   component.HazardDisc,
			Radius:  parameter.DivideRadius,
			Damage:  enemy.Damage * parameter.DivideDamageFactor,
			Falloff: true,
			Delay:   parameter.DivideTravel,
			Pulses:  1,
			Label:   HazardDivide,
		})
	}
}

// spread rings the boss with staggered infection marks that detonate after a fuse
func (s *BossSystem) spread(e core.Entity) {
	for i := 0; i < parameter.SpreadMarks; i++ {
		angle := fullTurn * float64(i) / parameter.SpreadMarks
		s.later(e, time.Duration(i)*parameter.SpreadStagger, func() {
			enemy, body, ok := s.bossAt(e)
			if !ok {
				return
			}
			s.placeHazard(body.Pos.Add(vmath.FromAngle(angle, parameter.SpreadOffset)), vmath.Vec2{}, component.HazardComponent{
				Owner:    e,
				Shape:    component.HazardDisc,
				Radius:   parameter.SpreadRadius,
				Damage:   enemy.Damage * parameter.SpreadDamageFactor,
				Delay:    parameter.SpreadFuse,
				Pulses:   1,
				Lifetime: parameter.SpreadFuse,
				Label:    HazardSpread,
			})
		})
	}
}

// mutate empowers every other enemy near the boss
func (s *BossSystem) mutate(e core.Entity) {
	_, body, ok := s.bossAt(e)
	if !ok {
		return
	}
	r2 := parameter.MutateRadius * parameter.MutateRadius
	for _, other := range s.world.Components.Enemy.GetAllEntities() {
		if other == e {
			continue
		}
		enemy, ok := s.world.Components.Enemy.Get(other)
		if !ok || enemy.Dead {
			continue
		}
		ob, ok := s.world.Components.Body.Get(other)
		if !ok || vmath.DistSq(body.Pos, ob.Pos) >= r2 {
			continue
		}
		enemy.ApplyBuff(parameter.MutateSpeedFactor, parameter.MutateDamageFactor, parameter.MutateDuration)
	}
}

// corruption expands damage rings outward from the boss, then follows with a tracking volley
func (s *BossSystem) corruption(e core.Entity) {
	for r := parameter.CorruptionMinRadius; r <= parameter.CorruptionMaxRadius; r += parameter.CorruptionRadiusStep {
		radius := r
		delay := time.Duration(radius-parameter.CorruptionMinRadius) * parameter.CorruptionDelayPerUnit
		s.later(e, delay, func() {
			enemy, body, ok := s.bossAt(e)
			if !ok {
				return
			}
			s.placeHazard(body.Pos, vmath.Vec2{}, component.HazardComponent{
				Owner:    e,
				Shape:    component.HazardRing,
				Radius:   radius,
				Width:    parameter.CorruptionRingWidth,
				Damage:   enemy.Damage * parameter.CorruptionDamageFactor,
				Pulses:   1,
				Lifetime: parameter.CorruptionVisual,
				Label:    HazardCorruption,
			})
		})
	}
	s.later(e, parameter.CorruptionFollowUp, func() { s.trackingAttack(e) })
}

// genetic unrolls staggered helixes of short-lived segments around the boss
func (s *BossSystem) genetic(e core.Entity) {
	for i := 0; i < parameter.GeneticHelixes; i++ {
		angle := fullTurn * float64(i) / parameter.GeneticHelixes
		s.later(e, time.Duration(i)*parameter.GeneticStagger, func() {
			enemy, body, ok := s.bossAt(e)
			if !ok {
				return
			}
			for j := 0; j < parameter.GeneticSegments; j++ {
				progress := float64(j) / parameter.GeneticSegments
				a := angle + progress*fullTurn*parameter.GeneticTurns
				r := parameter.GeneticInnerRadius + progress*parameter.GeneticRadiusGrowth
				s.placeHazard(body.Pos.Add(vmath.FromAngle(a, r)), vmath.Vec2{}, component.HazardComponent{
					Owner:    e,
					Shape:    component.HazardDisc,
					Radius:   parameter.GeneticHitRadius,
					Damage:   enemy.Damage * parameter.GeneticDamageFactor,
					Pulses:   1,
					Lifetime: parameter.GeneticVisual,
					Label:    HazardGenetic,
				})
			}
		})
	}
}

// radiation drops pulsing zones at random arena points
func (s *BossSystem) radiation(e core.Entity) {
	arena := s.world.Resources.Arena
	rng := s.world.Resources.Rand
	for i := 0; i < parameter.RadiationZones; i++ {
		s.later(e, time.Duration(i)*parameter.RadiationStagger, func() {
			enemy, _, ok := s.bossAt(e)
			if !ok {
				return
			}
			pos := vmath.V2(
				rng.Range(arena.Min.X+parameter.RadiationEdgeInset, arena.Max.X-parameter.RadiationEdgeInset),
				rng.Range(arena.Min.Y+parameter.RadiationTopInset, arena.Max.Y-parameter.RadiationEdgeInset),
			)
			s.placeHazard(pos, vmath.Vec2{}, component.HazardComponent{
				Owner:    e,
				Shape:    component.HazardDisc,
				Radius:   parameter.RadiationRadius,
				Damage:   enemy.Damage * parameter.RadiationDamageFactor,
				Delay:    parameter.RadiationPulse,
				Interval: parameter.RadiationPulse,
				Pulses:   parameter.RadiationPulses,
				Lifetime: parameter.RadiationLifetime,
				Label:    HazardRadiation,
			})
		})
	}
}

// immunity makes the boss untouchable for a while and fires a rotating barrage
func (s *BossSystem) immunity(e core.Entity) {
	enemy, _, ok := s.bossAt(e)
	if !ok {
		return
	}
	enemy.Boss.Immune = true
	enemy.Boss.ImmuneTimer = parameter.ImmunityDuration

	for i := 0; i < parameter.ImmunityShots; i++ {
		angle := fullTurn * float64(i) / parameter.ImmunityShots
		s.later(e, time.Duration(i)*parameter.ImmunityGap, func() {
			enemy, body, ok := s.bossAt(e)
			if !ok {
				return
			}
			fireEnemyShot(s.world, enemyShot{
				owner:    e,
				from:     body.Pos,
				angle:    angle,
				speed:    parameter.ImmunitySpeed,
				damage:   enemy.Damage * parameter.ImmunityDamageFactor,
				lifetime: parameter.BossProjectileLifetime,
			})
			announceShots(s.world, e, 1)
		})
	}
}

// apocalypse chains the other specials and ends with a large falloff blast around the boss
func (s *BossSystem) apocalypse(e core.Entity) {
	s.divide(e)
	s.later(e, parameter.ApocalypseRadiationAt, func() { s.radiation(e) })
	s.later(e, parameter.ApocalypseGeneticAt, func() { s.genetic(e) })
	s.later(e, parameter.ApocalypseCorruptionAt, func() { s.corruption(e) })
	s.later(e, parameter.ApocalypseFinaleAt, func() {
		enemy, body, ok := s.bossAt(e)
		if !ok {
			return
		}
		s.placeHazard(body.Pos, vmath.Vec2{}, component.HazardComponent{
			Owner:    e,
			Shape:    component.HazardDisc,
			Radius:   parameter.ApocalypseFinaleRadius,
			Damage:   enemy.Damage,
			Falloff:  true,
			Pulses:   1,
			Lifetime: parameter.ApocalypseVisual,
			Label:    HazardApocalypse,
		})
	})
}
