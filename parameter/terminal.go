package parameter

import "time"

const (
	// TerminalFrameInterval paces redraws independently of the simulation tick
	TerminalFrameInterval = 33 * time.Millisecond

	// KeyHoldWindow keeps a direction active after its last key repeat
	// Terminals report no key release, so a held key is inferred from repeats
	KeyHoldWindow = 180 * time.Millisecond

	// HUDRows is the status area above the arena
	HUDRows = 2

	// TerminalMinCols and TerminalMinRows are the smallest usable screen
	TerminalMinCols = 40
	TerminalMinRows = 12
)
