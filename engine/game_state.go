package engine

import "github.com/lixenwraith/oncoarena/event"

// GameState is the freeze gate
// Several reasons may hold the gate closed at once; the world runs only when none do
type GameState struct {
	reasons uint8
	over    bool
}

func reasonBit(r event.PauseReason) uint8 {
	return 1 << uint8(r)
}

// Pause closes the gate for r; returns false if r already held it
func (g *GameState) Pause(r event.PauseReason) bool {
	if r == event.PauseNone || g.reasons&reasonBit(r) != 0 {
		return false
	}
	g.reasons |= reasonBit(r)
	if r == event.PauseGameOver {
		g.over = true
	}
	return true
}

// Resume releases r; game over is never released
func (g *GameState) Resume(r event.PauseReason) bool {
	if r == event.PauseGameOver || g.reasons&reasonBit(r) == 0 {
		return false
	}
	g.reasons &^= reasonBit(r)
	return true
}

// Frozen reports whether no stage may execute
func (g *GameState) Frozen() bool {
	return g.reasons != 0
}

// Holds reports whether r is currently holding the gate
func (g *GameState) Holds(r event.PauseReason) bool {
	return g.reasons&reasonBit(r) != 0
}

// Over reports whether the run has ended
func (g *GameState) Over() bool {
	return g.over
}

// Reset opens the gate for a new run
func (g *GameState) Reset() {
	g.reasons = 0
	g.over = false
}
