package engine

import (
	"sync"
	"time"
)

// TimeProvider abstracts the wall clock for tests
type TimeProvider interface {
	Now() time.Time
}

type monotonicTimeProvider struct{}

func (monotonicTimeProvider) Now() time.Time { return time.Now() }

// PausableClock maps wall time to game time, excluding paused spans
type PausableClock struct {
	mu sync.RWMutex

	provider    TimeProvider
	start       time.Time
	paused      bool
	pauseStart  time.Time
	totalPaused time.Duration
}

// NewPausableClock creates a running clock on the wall clock
func NewPausableClock() *PausableClock {
	return NewPausableClockWith(monotonicTimeProvider{})
}

// NewPausableClockWith creates a running clock on a custom provider
func NewPausableClockWith(tp TimeProvider) *PausableClock {
	return &PausableClock{provider: tp, start: tp.Now()}
}

// Elapsed returns game time since creation; frozen while paused
func (pc *PausableClock) Elapsed() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.paused {
		return pc.pauseStart.Sub(pc.start) - pc.totalPaused
	}
	return pc.provider.Now().Sub(pc.start) - pc.totalPaused
}

// Pause stops game time
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.paused {
		return
	}
	pc.paused = true
	pc.pauseStart = pc.provider.Now()
}

// Resume continues game time from where it stopped
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if !pc.paused {
		return
	}
	pc.totalPaused += pc.provider.Now().Sub(pc.pauseStart)
	pc.paused = false
	pc.pauseStart = time.Time{}
}

func (pc *PausableClock) IsPaused() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.paused
}

// TotalPaused returns cumulative pause time including an ongoing pause
func (pc *PausableClock) TotalPaused() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	total := pc.totalPaused
	if pc.paused {
		total += pc.provider.Now().Sub(pc.pauseStart)
	}
	return total
}
