package event

var typeNames = map[EventType]string{
	EventGameReset:        "game_reset",
	EventPauseChanged:     "pause_changed",
	EventGameOver:         "game_over",
	EventEnemySpawned:     "enemy_spawned",
	EventEnemyDamaged:     "enemy_damaged",
	EventEnemyDied:        "enemy_died",
	EventPlayerDamaged:    "player_damaged",
	EventShieldBroken:     "shield_broken",
	EventShieldRestored:   "shield_restored",
	EventProjectileFired:  "projectile_fired",
	EventExplosion:        "explosion",
	EventLightning:        "lightning",
	EventRay:              "ray",
	EventLootCollected:    "loot_collected",
	EventLevelUp:          "level_up",
	EventPowerUpOffered:   "powerup_offered",
	EventPowerUpSelected:  "powerup_selected",
	EventMusicVariation:   "music_variation",
	EventBossSpawnRequest: "boss_spawn_request",
	EventBossPhase:        "boss_phase",
	EventBossSpecial:      "boss_special",
}

var nameTypes = func() map[string]EventType {
	m := make(map[string]EventType, len(typeNames))
	for t, n := range typeNames {
		m[n] = t
	}
	return m
}()

// String returns the wire name used by analytics and logs
func (t EventType) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return "none"
}

// Lookup resolves a wire name to its EventType
func Lookup(name string) (EventType, bool) {
	t, ok := nameTypes[name]
	return t, ok
}
