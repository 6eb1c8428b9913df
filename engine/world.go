package engine

import (
	"time"

	"github.com/lixenwraith/oncoarena/component"
	"github.com/lixenwraith/oncoarena/core"
	"github.com/lixenwraith/oncoarena/event"
	"github.com/lixenwraith/oncoarena/parameter"
	"github.com/lixenwraith/oncoarena/status"
	"github.com/lixenwraith/oncoarena/tuning"
	"github.com/lixenwraith/oncoarena/vmath"
)

// maxDispatchRounds bounds handler cascades within one dispatch
const maxDispatchRounds = 16

// Components groups the typed stores
type Components struct {
	Body       *Store[component.BodyComponent]
	Player     *Store[component.PlayerComponent]
	Enemy      *Store[component.EnemyComponent]
	Projectile *Store[component.ProjectileComponent]
	Loot       *Store[component.LootComponent]
	Hazard     *Store[component.HazardComponent]
}

// World owns every entity of one run plus the systems that advance them
// Not safe for concurrent use; drivers serialize Update with reads
type World struct {
	nextEntityID core.Entity

	Resources  *Resource
	Components Components

	systems   []System
	handlers  map[event.EventType][]System
	listeners []func(event.GameEvent)
}

// NewWorld creates a world for the given tuning and random seed
func NewWorld(t *tuning.Tuning, seed uint64) *World {
	reg := status.NewRegistry()
	w := &World{
		nextEntityID: 1,
		Resources: &Resource{
			Time:      &TimeResource{},
			Tuning:    t,
			Game:      &GameState{},
			Event:     event.NewQueue(),
			Scheduler: NewScheduler(reg),
			Rand:      vmath.NewFastRand(seed),
			Stats:     &component.GameStats{},
			PowerUps:  component.NewPowerUpBook(t.PowerUps),
			Player:    &PlayerResource{},
			Arena: vmath.Rect{
				Max: vmath.V2(t.Arena.Width, t.Arena.Height),
			},
			Status: reg,
		},
		handlers: make(map[event.EventType][]System),
	}
	w.Components = Components{
		Body:       NewStore[component.BodyComponent](),
		Player:     NewStore[component.PlayerComponent](),
		Enemy:      NewStore[component.EnemyComponent](),
		Projectile: NewStore[component.ProjectileComponent](),
		Loot:       NewStore[component.LootComponent](),
		Hazard:     NewStore[component.HazardComponent](),
	}
	return w
}

// CreateEntity reserves a new entity id
func (w *World) CreateEntity() core.Entity {
	id := w.nextEntityID
	w.nextEntityID++
	return id
}

// DestroyEntity removes every component of e
func (w *World) DestroyEntity(e core.Entity) {
	c := &w.Components
	c.Body.Remove(e)
	c.Player.Remove(e)
	c.Enemy.Remove(e)
	c.Projectile.Remove(e)
	c.Loot.Remove(e)
	c.Hazard.Remove(e)
}

// Clear discards all entities, pending events and scheduled tasks for a new run
func (w *World) Clear() {
	w.nextEntityID = 1
	c := &w.Components
	c.Body.Clear()
	c.Player.Clear()
	c.Enemy.Clear()
	c.Projectile.Clear()
	c.Loot.Clear()
	c.Hazard.Clear()

	r := w.Resources
	*r.Time = TimeResource{}
	*r.Stats = component.GameStats{}
	r.PowerUps = component.NewPowerUpBook(r.Tuning.PowerUps)
	r.Player.Entity = 0
	r.Game.Reset()
	r.Scheduler.Reset()
	r.Event.Reset()
}

// AddSystem registers a system, keeps the list sorted by priority and indexes its events
func (w *World) AddSystem(system System) {
	w.systems = append(w.systems, system)

	// Bubble sort, small N
	for i := 0; i < len(w.systems)-1; i++ {
		for j := 0; j < len(w.systems)-i-1; j++ {
			if w.systems[j].Priority() > w.systems[j+1].Priority() {
				w.systems[j], w.systems[j+1] = w.systems[j+1], w.systems[j]
			}
		}
	}

	for _, et := range system.EventTypes() {
		w.handlers[et] = append(w.handlers[et], system)
	}
}

// Systems returns a copy of the registered systems in execution order
func (w *World) Systems() []System {
	result := make([]System, len(w.systems))
	copy(result, w.systems)
	return result
}

// Listen adds an observer that receives every dispatched event after the systems
func (w *World) Listen(fn func(event.GameEvent)) {
	w.listeners = append(w.listeners, fn)
}

// PushEvent queues an event stamped with the current frame
func (w *World) PushEvent(eventType event.EventType, payload any) {
	w.Resources.Event.Push(event.GameEvent{
		Type:    eventType,
		Payload: payload,
		Frame:   w.Resources.Time.FrameNumber,
	})
}

// DispatchEvents delivers queued events to handlers, then listeners
// Events pushed by handlers are delivered in following rounds
func (w *World) DispatchEvents() {
	for round := 0; round < maxDispatchRounds; round++ {
		events := w.Resources.Event.Consume()
		if len(events) == 0 {
			return
		}
		for _, ev := range events {
			for _, s := range w.handlers[ev.Type] {
				s.HandleEvent(ev)
			}
			for _, l := range w.listeners {
				l(ev)
			}
		}
	}
}

// Frozen reports whether the freeze gate is closed
func (w *World) Frozen() bool {
	return w.Resources.Game.Frozen()
}

// Update advances game time by dt and runs every system in priority order
// Nothing executes while frozen and no time accrues, so resuming never catches up
// A system that freezes the world stops the remaining stages of the tick
func (w *World) Update(dt time.Duration) bool {
	if w.Frozen() || dt <= 0 {
		return false
	}
	if dt > parameter.MaxFrameDelta {
		dt = parameter.MaxFrameDelta
	}

	t := w.Resources.Time
	t.DeltaTime = dt
	t.GameTime += dt
	t.FrameNumber++
	w.Resources.Stats.Elapsed = t.GameTime

	w.Resources.Scheduler.Advance(t.GameTime, w.Frozen)
	w.DispatchEvents()

	for _, system := range w.systems {
		if w.Frozen() {
			break
		}
		system.Update()
		w.DispatchEvents()
	}
	return true
}
