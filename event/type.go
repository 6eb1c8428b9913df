package event

// EventType represents the type of game event
type EventType int

const (
	// EventNone is never pushed
	EventNone EventType = iota

	// === Lifecycle ===

	// EventGameReset signals a fresh run
	// Trigger: Simulation.Reset | Consumer: all systems | Payload: nil
	EventGameReset

	// EventPauseChanged reports the freeze gate opening or closing
	// Trigger: Simulation pause/resume | Consumer: frontends, audio | Payload: *PausePayload
	EventPauseChanged

	// EventGameOver ends the run
	// Trigger: player hp reaches zero | Consumer: persistence, analytics, frontends | Payload: *GameOverPayload
	EventGameOver

	// === Enemies ===

	// EventEnemySpawned announces a new enemy or boss
	// Trigger: SpawnSystem | Consumer: analytics, audio | Payload: *EnemySpawnedPayload
	EventEnemySpawned

	// EventEnemyDamaged reports damage applied to an enemy
	// Trigger: combat Resolver | Consumer: analytics, frontends (hit flash) | Payload: *DamagePayload
	EventEnemyDamaged

	// EventEnemyDied is emitted exactly once per enemy death
	// Trigger: DeathSystem | Consumer: audio, analytics | Payload: *EnemyDiedPayload
	EventEnemyDied

	// === Player ===

	// EventPlayerDamaged reports damage taken, after shield absorption
	// Trigger: combat Resolver | Consumer: audio, analytics, frontends | Payload: *PlayerDamagedPayload
	EventPlayerDamaged

	// EventShieldBroken fires when the shield is depleted and starts regenerating
	// Trigger: combat Resolver | Consumer: audio | Payload: nil
	EventShieldBroken

	// EventShieldRestored fires when regeneration completes
	// Trigger: PlayerSystem | Consumer: audio | Payload: nil
	EventShieldRestored

	// EventProjectileFired reports a volley leaving the player or an enemy
	// Trigger: WeaponSystem, EnemySystem, BossSystem | Consumer: audio | Payload: *ProjectileFiredPayload
	EventProjectileFired

	// === Effects ===

	// EventExplosion marks an area burst for presentation
	// Trigger: combat Resolver, HazardSystem | Consumer: frontends, audio | Payload: *ExplosionPayload
	EventExplosion

	// EventLightning marks one chain-lightning jump
	// Trigger: combat Resolver | Consumer: frontends, audio | Payload: *LightningPayload
	EventLightning

	// EventRay marks a radiotherapy ray
	// Trigger: combat Resolver | Consumer: frontends | Payload: *LightningPayload
	EventRay

	// === Loot and progression ===

	// EventLootCollected reports an orb pickup
	// Trigger: LootSystem | Consumer: audio, analytics | Payload: *LootCollectedPayload
	EventLootCollected

	// EventLevelUp reports one level gained
	// Trigger: ProgressionSystem | Consumer: audio, frontends | Payload: *LevelUpPayload
	EventLevelUp

	// EventPowerUpOffered opens the selection gate
	// Trigger: ProgressionSystem | Consumer: frontends, analytics | Payload: *PowerUpOfferedPayload
	EventPowerUpOffered

	// EventPowerUpSelected closes the selection gate
	// Trigger: Simulation.SelectPowerUp | Consumer: audio, analytics | Payload: *PowerUpSelectedPayload
	EventPowerUpSelected

	// EventMusicVariation asks the audio collaborator to switch ambient pattern
	// Trigger: ProgressionSystem every third level | Consumer: audio | Payload: *LevelUpPayload
	EventMusicVariation

	// === Boss ===

	// EventBossSpawnRequest asks the director to spawn the boss at an ordinal
	// Trigger: ProgressionSystem after selection | Consumer: SpawnSystem | Payload: *BossSpawnRequestPayload
	EventBossSpawnRequest

	// EventBossPhase reports a boss state transition
	// Trigger: BossSystem, DeathSystem | Consumer: audio, frontends, analytics | Payload: *BossPhasePayload
	EventBossPhase

	// EventBossSpecial reports a special attack starting
	// Trigger: BossSystem | Consumer: audio, frontends | Payload: *BossSpecialPayload
	EventBossSpecial
)

// GameEvent is one queued event
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64
}
