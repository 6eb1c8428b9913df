package parameter

// System priorities fix the per-tick stage order, lower runs first
const (
	// Stage 1: player movement and ability timers
	PriorityPlayer = 100
	PriorityWeapon = 110

	// Stage 2: enemy and boss AI
	PriorityEnemy = 200
	PriorityBoss  = 210

	// Stage 3: projectile motion, hazard lifetimes
	PriorityProjectile = 300
	PriorityHazard     = 310

	// Stage 4: collision and combat resolution
	PriorityCollision = 400

	// Dead entities are swept after every damage source has run
	PriorityDeath = 450

	// Stage 5: loot magnetism and pickup
	PriorityLoot = 500

	// Leveling reacts to xp gained during stage 5
	PriorityProgression = 550

	// Stage 6: spawn director
	PrioritySpawn = 600
)
