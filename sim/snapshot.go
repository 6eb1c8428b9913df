package sim

import (
	"time"

	"github.com/lixenwraith/oncoarena/component"
	"github.com/lixenwraith/oncoarena/core"
	"github.com/lixenwraith/oncoarena/event"
	"github.com/lixenwraith/oncoarena/vmath"
)

// PlayerView is the player as presented to frontends
type PlayerView struct {
	Pos    vmath.Vec2
	Facing vmath.Vec2
	Radius float64

	HP    float64
	MaxHP float64

	ShieldLevel        int
	Shield             float64
	ShieldMax          float64
	ShieldRegenerating bool

	Invincible  bool
	AuraRadius  float64 // zero without the aura
	MagnetRange float64
}

type EnemyView struct {
	Entity core.Entity
	Pos    vmath.Vec2
	Radius float64
	Color  string
	Tag    string

	HP    float64
	MaxHP float64

	Elite  bool
	Buffed bool
	Flash  bool

	Boss   bool
	Phase  event.BossPhase
	Immune bool
}

type ProjectileView struct {
	Pos     vmath.Vec2
	Vel     vmath.Vec2
	Hostile bool
}

type LootView struct {
	Pos   vmath.Vec2
	Kind  event.LootKind
	Value int
}

type HazardView struct {
	Pos    vmath.Vec2
	Shape  component.HazardShape
	Radius float64
	Width  float64
	Armed  bool
	Label  string
}

// Snapshot is a copy of the run state; it shares nothing with the simulation
type Snapshot struct {
	Frame int64
	Time  time.Duration
	Arena vmath.Rect

	Player      PlayerView
	Enemies     []EnemyView
	Projectiles []ProjectileView
	Loot        []LootView
	Hazards     []HazardView

	Stats event.Stats

	Menu    bool
	LevelUp bool
	Over    bool
	Offer   []Choice
}

// Snapshot copies the current state for rendering
// Player projectiles still inside the launch radius are left out
func (s *Simulation) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.world
	game := w.Resources.Game
	snap := Snapshot{
		Frame:   w.Resources.Time.FrameNumber,
		Time:    w.Resources.Time.GameTime,
		Arena:   w.Resources.Arena,
		Stats:   w.Resources.Stats.Export(),
		Menu:    game.Holds(event.PauseMenu),
		LevelUp: game.Holds(event.PauseLevelUp),
		Over:    game.Over(),
		Offer:   s.offers(),
	}

	pe := w.Resources.Player.Entity
	if p, ok := w.Components.Player.Get(pe); ok {
		xpT := w.Resources.Tuning.XP
		snap.Player = PlayerView{
			Facing:             p.Facing,
			HP:                 p.HP,
			MaxHP:              p.MaxHP,
			ShieldLevel:        p.Shield.Level,
			Shield:             p.Shield.Capacity,
			ShieldMax:          p.Shield.MaxCapacity,
			ShieldRegenerating: p.Shield.Regenerating,
			Invincible:         p.Invincible,
			MagnetRange:        xpT.MagnetRange + float64(p.Magnet)*xpT.MagnetPerLevel,
		}
		if p.AuraDamage > 0 {
			snap.Player.AuraRadius = p.AuraRadius()
		}
	}
	if b, ok := w.Components.Body.Get(pe); ok {
		snap.Player.Pos = b.Pos
		snap.Player.Radius = b.Radius
	}

	enemies := w.Components.Enemy.GetAllEntities()
	snap.Enemies = make([]EnemyView, 0, len(enemies))
	for _, e := range enemies {
		enemy, ok := w.Components.Enemy.Get(e)
		if !ok || enemy.Dead {
			continue
		}
		body, ok := w.Components.Body.Get(e)
		if !ok {
			continue
		}
		v := EnemyView{
			Entity: e,
			Pos:    body.Pos,
			Radius: body.Radius,
			Color:  enemy.Color,
			Tag:    enemy.Tag(),
			HP:     enemy.HP,
			MaxHP:  enemy.MaxHP,
			Elite:  enemy.Elite,
			Buffed: enemy.Buff != nil && enemy.Buff.Remaining > 0,
			Flash:  enemy.HitFlash > 0,
			Boss:   enemy.IsBoss(),
		}
		if enemy.Boss != nil {
			v.Phase = enemy.Boss.Phase
			v.Immune = enemy.Boss.Immune
		}
		snap.Enemies = append(snap.Enemies, v)
	}

	projectiles := w.Components.Projectile.GetAllEntities()
	snap.Projectiles = make([]ProjectileView, 0, len(projectiles))
	for _, e := range projectiles {
		proj, ok := w.Components.Projectile.Get(e)
		if !ok || !proj.Visible {
			continue
		}
		if body, ok := w.Components.Body.Get(e); ok {
			snap.Projectiles = append(snap.Projectiles, ProjectileView{Pos: body.Pos, Vel: body.Vel, Hostile: proj.Hostile})
		}
	}

	loot := w.Components.Loot.GetAllEntities()
	snap.Loot = make([]LootView, 0, len(loot))
	for _, e := range loot {
		orb, ok := w.Components.Loot.Get(e)
		if !ok {
			continue
		}
		if body, ok := w.Components.Body.Get(e); ok {
			snap.Loot = append(snap.Loot, LootView{Pos: body.Pos, Kind: orb.Kind, Value: orb.Value})
		}
	}

	hazards := w.Components.Hazard.GetAllEntities()
	snap.Hazards = make([]HazardView, 0, len(hazards))
	for _, e := range hazards {
		h, ok := w.Components.Hazard.Get(e)
		if !ok {
			continue
		}
		if body, ok := w.Components.Body.Get(e); ok {
			snap.Hazards = append(snap.Hazards, HazardView{
				Pos:    body.Pos,
				Shape:  h.Shape,
				Radius: h.Radius,
				Width:  h.Width,
				Armed:  h.Armed(),
				Label:  h.Label,
			})
		}
	}

	return snap
}
