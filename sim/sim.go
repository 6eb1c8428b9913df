// Package sim is the entry point frontends drive: one Simulation owns a world,
// its systems and the combat resolver, and exposes stepping, input, the
// level-up selection gate and read-only snapshots.
package sim

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/oncoarena/combat"
	"github.com/lixenwraith/oncoarena/component"
	"github.com/lixenwraith/oncoarena/engine"
	"github.com/lixenwraith/oncoarena/event"
	"github.com/lixenwraith/oncoarena/status"
	"github.com/lixenwraith/oncoarena/system"
	"github.com/lixenwraith/oncoarena/tuning"
	"github.com/lixenwraith/oncoarena/vmath"
)

// Simulation runs one arena at a time; Reset discards the run wholesale
// Methods are safe for concurrent use. Observers run on the stepping goroutine
// with the simulation locked and must not call back into it
type Simulation struct {
	mu sync.Mutex

	world    *engine.World
	resolver *combat.Resolver
	death    *system.DeathSystem
	progress *system.ProgressionSystem
	spawn    *system.SpawnSystem

	seed uint64

	statRuns  *atomic.Int64
	statSteps *atomic.Int64
}

// New validates the tuning table and starts the first run
// A nil table uses the defaults
func New(t *tuning.Tuning, seed uint64) (*Simulation, error) {
	if t == nil {
		t = tuning.Default()
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	w := engine.NewWorld(t, seed)
	s := &Simulation{
		world:    w,
		resolver: combat.NewResolver(w),
		seed:     seed,
	}
	s.statRuns = w.Resources.Status.Ints.Get("sim.runs")
	s.statSteps = w.Resources.Status.Ints.Get("sim.steps")

	s.death = system.NewDeathSystem(w)
	s.resolver.SetDeathHandler(s.death)
	s.progress = system.NewProgressionSystem(w)
	s.spawn = system.NewSpawnSystem(w)

	w.AddSystem(system.NewPlayerSystem(w))
	w.AddSystem(system.NewWeaponSystem(w, s.resolver))
	w.AddSystem(system.NewEnemySystem(w))
	w.AddSystem(system.NewBossSystem(w))
	w.AddSystem(system.NewProjectileSystem(w))
	w.AddSystem(system.NewHazardSystem(w, s.resolver))
	w.AddSystem(system.NewCollisionSystem(w, s.resolver))
	w.AddSystem(s.death)
	w.AddSystem(system.NewLootSystem(w))
	w.AddSystem(s.progress)
	w.AddSystem(s.spawn)

	s.reset(seed)
	return s, nil
}

// Reset starts a fresh run with the given seed
func (s *Simulation) Reset(seed uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset(seed)
}

func (s *Simulation) reset(seed uint64) {
	w := s.world
	w.Clear()
	w.Resources.Rand.Seed(seed)
	s.seed = seed

	s.spawnPlayer()
	s.resolver.Reset()
	s.statSteps.Store(0)
	s.statRuns.Add(1)

	w.PushEvent(event.EventGameReset, nil)
	w.DispatchEvents()
}

// spawnPlayer creates the player at the arena center from the tuning table
func (s *Simulation) spawnPlayer() {
	w := s.world
	pt := w.Resources.Tuning.Player

	pe := w.CreateEntity()
	w.Resources.Player.Entity = pe
	w.Components.Body.Set(pe, &component.BodyComponent{
		Pos:    w.Resources.Arena.Center(),
		Radius: pt.Size / 2,
	})
	w.Components.Player.Set(pe, &component.PlayerComponent{
		HP:                 pt.HP,
		MaxHP:              pt.HP,
		BaseSpeed:          pt.Speed,
		BaseProjectiles:    pt.Projectiles,
		BaseDamage:         pt.ProjectileDamage,
		BaseShotSpeed:      pt.ProjectileSpeed,
		BaseInterval:       pt.ProjectileInterval,
		InvincibilityGrant: pt.Invincibility,
		FireTimer:          pt.ProjectileInterval,
		Facing:             vmath.V2(1, 0),
	})
}

// Step advances the run by dt of game time
// Returns false when frozen; frozen time is dropped, never caught up
func (s *Simulation) Step(dt time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.world.Update(dt) {
		return false
	}
	s.statSteps.Add(1)
	return true
}

// SetIntent sets the movement direction for following steps
// Non-finite input stops the player; longer vectors are clamped to unit length
func (s *Simulation) SetIntent(v vmath.Vec2) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !v.Finite() {
		v = vmath.Vec2{}
	}
	if p, ok := s.world.Components.Player.Get(s.world.Resources.Player.Entity); ok {
		p.Intent = v.ClampLen(1)
	}
}

// TogglePause flips the menu pause and reports whether it is now held
// Has no effect once the run is over
func (s *Simulation) TogglePause() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	game := s.world.Resources.Game
	if game.Over() {
		return false
	}

	paused := !game.Holds(event.PauseMenu)
	if paused {
		game.Pause(event.PauseMenu)
	} else {
		game.Resume(event.PauseMenu)
	}
	s.world.PushEvent(event.EventPauseChanged, &event.PausePayload{Paused: paused, Reason: event.PauseMenu})
	s.world.DispatchEvents()
	return paused
}

// Frozen reports whether any pause reason holds the run
func (s *Simulation) Frozen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world.Frozen()
}

// Over reports whether the player has died
func (s *Simulation) Over() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world.Resources.Game.Over()
}

// Choice is one power-up in the open level-up offer
type Choice struct {
	ID          tuning.PowerUpID
	Name        string
	Description string
	Category    tuning.PowerUpCategory
	// Level is the current level; selecting raises it by one
	Level    int
	MaxLevel int
}

// Offers returns the open level-up choice, nil when the gate is closed
func (s *Simulation) Offers() []Choice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offers()
}

func (s *Simulation) offers() []Choice {
	ids := s.progress.Offer()
	if ids == nil {
		return nil
	}
	book := s.world.Resources.PowerUps
	out := make([]Choice, 0, len(ids))
	for _, id := range ids {
		st := book.Get(id)
		if st == nil {
			continue
		}
		out = append(out, Choice{
			ID:          id,
			Name:        st.Def.Name,
			Description: st.Def.Description,
			Category:    st.Def.Category,
			Level:       st.Level,
			MaxLevel:    st.Def.MaxLevel,
		})
	}
	return out
}

// SelectPowerUp resolves the open offer
// Errors wrap system.ErrNoOffer or system.ErrNotOffered; the gate stays as it was
func (s *Simulation) SelectPowerUp(id tuning.PowerUpID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.progress.Select(id); err != nil {
		return err
	}
	// Deliver boss requests and selection events before the next step
	s.world.DispatchEvents()
	return nil
}

// PendingLevels is the number of level-ups still awaiting a choice
func (s *Simulation) PendingLevels() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress.Pending()
}

// Stats copies the run aggregate
func (s *Simulation) Stats() event.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world.Resources.Stats.Export()
}

// Subscribe registers an observer for every event the run emits
// Observers persist across Reset
func (s *Simulation) Subscribe(fn func(event.GameEvent)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.world.Listen(fn)
}

// BossActive reports whether the main boss slot is held
func (s *Simulation) BossActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spawn.BossActive()
}

// Seed returns the seed of the current run
func (s *Simulation) Seed() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seed
}

// Tuning returns the table the simulation was built with; callers must not modify it
func (s *Simulation) Tuning() *tuning.Tuning {
	return s.world.Resources.Tuning
}

// Status exposes the metrics registry for debug overlays
func (s *Simulation) Status() *status.Registry {
	return s.world.Resources.Status
}
