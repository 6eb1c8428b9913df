package engine

import (
	"time"

	"github.com/lixenwraith/oncoarena/component"
	"github.com/lixenwraith/oncoarena/core"
	"github.com/lixenwraith/oncoarena/event"
	"github.com/lixenwraith/oncoarena/status"
	"github.com/lixenwraith/oncoarena/tuning"
	"github.com/lixenwraith/oncoarena/vmath"
)

// Resource holds the singletons of one run, accessed via World.Resources
type Resource struct {
	Time      *TimeResource
	Tuning    *tuning.Tuning
	Game      *GameState
	Event     *event.Queue
	Scheduler *Scheduler
	Rand      *vmath.FastRand
	Stats     *component.GameStats
	PowerUps  *component.PowerUpBook
	Player    *PlayerResource
	Arena     vmath.Rect

	// Telemetry
	Status *status.Registry
}

// TimeResource is game time; it only advances while the world is not frozen
type TimeResource struct {
	// GameTime is elapsed run time excluding every pause
	GameTime time.Duration

	// DeltaTime is the clamped step of the current tick
	DeltaTime time.Duration

	FrameNumber int64
}

// PlayerResource references the player entity
type PlayerResource struct {
	Entity core.Entity
}
