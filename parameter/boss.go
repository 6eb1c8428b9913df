package parameter

import "time"

// Boss lifecycle and scaling
const (
	BossEntranceDuration  = 2 * time.Second
	BossSpecialFactor     = 3
	BossHPGrowth          = 1.2
	BossDamageGrowth      = 1.1
	BossXPGrowth          = 1.3
	BossSpawnMargin       = 50.0
	BossSpawnSafetyRadius = 240.0

	// RevivalLevelDivisor maps player level to a revived boss level
	RevivalLevelDivisor = 5
)

// Basic attacks
const (
	LinearShots   = 5
	LinearSpacing = 0.2
	LinearSpeed   = 250.0

	CircleShots = 12
	CircleSpeed = 200.0

	TrackingShots = 3
	TrackingGap   = 500 * time.Millisecond
	TrackingSpeed = 300.0

	MultiCircleDelay = 500 * time.Millisecond
)

// Divide: satellite cells seek the player's position and detonate
const (
	DivideChildren     = 3
	DivideOffset       = 50.0
	DivideTravel       = 2 * time.Second
	DivideRadius       = 30.0
	DivideDamageFactor = 0.5
)

// Spread: infection marks detonate after a fuse
const (
	SpreadMarks        = 8
	SpreadOffset       = 80.0
	SpreadStagger      = 200 * time.Millisecond
	SpreadFuse         = time.Second
	SpreadRadius       = 25.0
	SpreadDamageFactor = 0.6
)

// Mutate: nearby enemies are empowered
const (
	MutateRadius       = 150.0
	MutateSpeedFactor  = 1.5
	MutateDamageFactor = 1.3
	MutateDuration     = 5 * time.Second
)

// Corruption: concentric damage rings followed by a tracking volley
const (
	CorruptionMinRadius    = 50.0
	CorruptionMaxRadius    = 200.0
	CorruptionRadiusStep   = 50.0
	CorruptionDelayPerUnit = 100 * time.Millisecond
	CorruptionRingWidth    = 20.0
	CorruptionDamageFactor = 0.4
	CorruptionVisual       = time.Second
	CorruptionFollowUp     = 2 * time.Second
)

// Genetic: helix segment bursts
const (
	GeneticHelixes      = 6
	GeneticStagger      = 300 * time.Millisecond
	GeneticSegments     = 10
	GeneticTurns        = 2
	GeneticInnerRadius  = 20.0
	GeneticRadiusGrowth = 30.0
	GeneticHitRadius    = 25.0
	GeneticDamageFactor = 0.3
	GeneticVisual       = 2 * time.Second
)

// Radiation: pulsing zones at random arena points
const (
	RadiationZones        = 5
	RadiationStagger      = 400 * time.Millisecond
	RadiationRadius       = 60.0
	RadiationPulse        = 500 * time.Millisecond
	RadiationPulses       = 10
	RadiationLifetime     = 6 * time.Second
	RadiationDamageFactor = 0.2
	RadiationEdgeInset    = 50.0
	RadiationTopInset     = 100.0
)

// Immunity: invulnerable window plus a projectile barrage
const (
	ImmunityDuration     = 5 * time.Second
	ImmunityShots        = 8
	ImmunityGap          = 600 * time.Millisecond
	ImmunitySpeed        = 300.0
	ImmunityDamageFactor = 0.7
)

// Apocalypse: chained specials and a delayed finale
const (
	ApocalypseRadiationAt  = time.Second
	ApocalypseGeneticAt    = 2 * time.Second
	ApocalypseCorruptionAt = 3 * time.Second
	ApocalypseFinaleAt     = 5 * time.Second
	ApocalypseFinaleRadius = 200.0
	ApocalypseVisual       = 2 * time.Second
)
