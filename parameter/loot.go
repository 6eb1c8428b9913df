package parameter

import "time"

// XPDenominations are orb values, largest first, for greedy decomposition
var XPDenominations = [...]int{50, 25, 10, 5, 1}

const (
	// ScatterPerOrb and ScatterMax bound the random spread of a drop
	ScatterPerOrb = 8.0
	ScatterMax    = 40.0

	// MagnetPickupRadius snaps an orb onto the player
	MagnetPickupRadius = 15.0
	// MagnetMaxSpeed is the pull speed reached at the pickup radius
	MagnetMaxSpeed = 650.0
	// MagnetBrake is the per-second velocity decay for orbs outside range
	MagnetBrake = 6.0

	// HealthOrbLifetime removes untouched health orbs
	HealthOrbLifetime = 30 * time.Second
)

// ScorePerXP is credited per point of xp on kill
const ScorePerXP = 10
