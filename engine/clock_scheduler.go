package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/oncoarena/parameter"
)

// ClockScheduler turns wall-clock ticks into clamped simulation steps
// Deltas come from a PausableClock, so paused spans never reach the step,
// and each delta is clamped to MaxFrameDelta after a stall
// The owner supplies the ticks, e.g. from a time.Ticker in its event loop
type ClockScheduler struct {
	clock *PausableClock
	step  func(dt time.Duration)

	mu   sync.Mutex
	last time.Duration

	tickCount atomic.Uint64
}

// NewClockScheduler binds a step function to a clock; step runs on the caller of Tick
func NewClockScheduler(clock *PausableClock, step func(dt time.Duration)) *ClockScheduler {
	return &ClockScheduler{
		clock: clock,
		step:  step,
		last:  clock.Elapsed(),
	}
}

// Tick performs one step with the game time elapsed since the previous tick
// Returns the delta handed to the step, zero when nothing elapsed
func (cs *ClockScheduler) Tick() time.Duration {
	cs.mu.Lock()
	now := cs.clock.Elapsed()
	dt := now - cs.last
	cs.last = now
	cs.mu.Unlock()

	if dt <= 0 {
		return 0
	}
	if dt > parameter.MaxFrameDelta {
		dt = parameter.MaxFrameDelta
	}
	cs.step(dt)
	cs.tickCount.Add(1)
	return dt
}

// TickCount returns the number of steps performed
func (cs *ClockScheduler) TickCount() uint64 {
	return cs.tickCount.Load()
}
