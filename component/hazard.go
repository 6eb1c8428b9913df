package component

import (
	"time"

	"github.com/lixenwraith/oncoarena/core"
)

// HazardShape selects the proximity test
type HazardShape int

const (
	// HazardDisc hits within Radius of the center
	HazardDisc HazardShape = iota
	// HazardRing hits within Width of the circle of Radius
	HazardRing
)

// HazardComponent is a boss-spawned area effect
// Delay counts down to the first detonation; pulses repeat every Interval
type HazardComponent struct {
	Owner  core.Entity
	Shape  HazardShape
	Radius float64
	Width  float64
	Damage float64
	// Falloff scales damage linearly from full at the center to zero at Radius
	Falloff bool

	// Hazards drift with Body.Vel until armed, then hold position
	Delay    time.Duration
	Interval time.Duration
	Pulses   int // remaining; with no Lifetime the hazard expires at zero
	Timer    time.Duration

	Age      time.Duration
	Lifetime time.Duration
	Label    string
}

// Armed reports whether the initial delay has elapsed
func (h *HazardComponent) Armed() bool {
	return h.Delay <= 0
}
