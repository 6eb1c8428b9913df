package tuning

import "time"

// Default returns the reference balance table
// Each call returns a fresh copy that the caller may modify before Validate
func Default() *Tuning {
	return &Tuning{
		Arena: ArenaTuning{Width: 1280, Height: 720},
		Player: PlayerTuning{
			HP:                 100,
			Speed:              112.5,
			Size:               30,
			Projectiles:        4,
			ProjectileSpeed:    150,
			ProjectileDamage:   10,
			ProjectileInterval: time.Second,
			Invincibility:      time.Second,
		},
		Archetypes: []Archetype{
			{ID: "red", HP: 6, Speed: 80, Size: 12, XP: 1, Damage: 6, Color: "#ff3030"},
			{ID: "orange", HP: 25, Speed: 40, Size: 20, XP: 2, Damage: 10, Color: "#ff9020"},
			{ID: "green", HP: 45, Speed: 30, Size: 25, XP: 3, Damage: 15, Color: "#30d030"},
			{
				ID: "purple", HP: 20, Speed: 50, Size: 16, XP: 2, Damage: 4, Color: "#a040ff",
				Support: &SupportTraits{Radius: 80, Multiplier: 1.2},
			},
			{
				ID: "brown", HP: 30, Speed: 30, Size: 22, XP: 3, Damage: 5, Color: "#8b5a2b",
				Shooter: &ShooterTraits{Interval: 4 * time.Second, Damage: 6, Homing: true},
			},
		},
		Unlocks: []Unlock{
			{Level: 1, Archetype: "red"},
			{Level: 2, Archetype: "orange"},
			{Level: 4, Archetype: "green"},
			{Level: 6, Archetype: "purple"},
			{Level: 8, Archetype: "brown"},
		},
		Bosses: []BossDef{
			{Name: "Malignant Cell", HP: 160, Size: 40, Speed: 80, Damage: 15, Attack: AttackLinear, AttackInterval: 3500 * time.Millisecond, XP: 25, Special: SpecialDivide, Color: "#800000"},
			{Name: "Metastasis", HP: 220, Size: 45, Speed: 90, Damage: 25, Attack: AttackCircle, AttackInterval: 2500 * time.Millisecond, XP: 35, Special: SpecialSpread, Color: "#ff4444"},
			{Name: "Oncogene", HP: 300, Size: 50, Speed: 80, Damage: 30, Attack: AttackTracking, AttackInterval: 2000 * time.Millisecond, XP: 45, Special: SpecialMutate, Color: "#00ff80"},
			{Name: "Carcinogenic King", HP: 270, Size: 60, Speed: 70, Damage: 40, Attack: AttackMulti, AttackInterval: 1500 * time.Millisecond, XP: 100, Special: SpecialCorruption, Color: "#8b008b"},
			{Name: "Gene Mutation", HP: 405, Size: 65, Speed: 60, Damage: 65, Attack: AttackTracking, AttackInterval: 1300 * time.Millisecond, XP: 150, Special: SpecialGenetic, Color: "#00c0a0"},
			{Name: "Radiation", HP: 608, Size: 70, Speed: 50, Damage: 80, Attack: AttackCircle, AttackInterval: 1200 * time.Millisecond, XP: 200, Special: SpecialRadiation, Color: "#c0ff00"},
			{Name: "Chemoresistance", HP: 912, Size: 75, Speed: 40, Damage: 100, Attack: AttackLinear, AttackInterval: 1000 * time.Millisecond, XP: 300, Special: SpecialImmunity, Color: "#4060ff"},
			{Name: "Final Tumor", HP: 1368, Size: 80, Speed: 30, Damage: 150, Attack: AttackMulti, AttackInterval: 800 * time.Millisecond, XP: 500, Special: SpecialApocalypse, Color: "#202020"},
		},
		XP: XPTuning{
			BaseRequirement: 10,
			Multiplier:      1.25,
			MagnetRange:     50,
			MagnetPerLevel:  30,
		},
		Health: HealthTuning{
			DropChance:   0.075,
			DecayFactor:  0.9,
			DecayEvery:   5,
			MinChance:    0.01,
			HealFraction: 0.1,
		},
		Spawn: SpawnTuning{
			InitialInterval:   3 * time.Second,
			MinInterval:       600 * time.Millisecond,
			IntervalDecay:     0.005,
			BaseCap:           20,
			CapPerLevel:       2,
			MaxEnemies:        50,
			DifficultyStep:    0.1,
			XPLevelStep:       0.2,
			BossLevelInterval: 5,
			RevivalChance:     0.0001,
			RevivalHPFraction: 0.8,
		},
		Elite: EliteTuning{
			BaseChance:     0.05,
			ChancePerLevel: 0.01,
			MinLevel:       3,
			StatMultiplier: 1.4,
			SizeMultiplier: 1.3,
			XPMultiplier:   3,
		},
		PowerUps: []PowerUpDef{
			{ID: PowerRadiotherapy, Name: "Radiotherapy", Description: "Rays strike the nearest cells", Category: CategoryWeapon, MaxLevel: 5},
			{ID: PowerExplosive, Name: "Proton Rounds", Description: "Shots burst on first impact", Category: CategoryUpgrade, MaxLevel: 5},
			{ID: PowerMagnet, Name: "XP Magnet", Description: "Pull xp from further away", Category: CategoryPassive, MaxLevel: 10},
			{ID: PowerLightning, Name: "Immunotherapy", Description: "Lightning jumps between cells", Category: CategoryWeapon, MaxLevel: 5},
			{ID: PowerPiercing, Name: "Cisplatin", Description: "Shots pass through cells", Category: CategoryUpgrade, MaxLevel: 5},
			{ID: PowerShield, Name: "Immune Shield", Description: "Absorbs damage and regenerates", Category: CategoryDefensive, MaxLevel: 5},
			{ID: PowerSpeed, Name: "Metabolic Booster", Description: "Move faster", Category: CategoryPassive, MaxLevel: 10, Value: 0.1},
			{ID: PowerAura, Name: "Chemotherapy", Description: "Damage cells around you", Category: CategoryPassive, MaxLevel: 10, Value: 15},
			{ID: PowerAttackSpeed, Name: "Rapid Fire", Description: "Shorter attack interval", Category: CategoryPassive, MaxLevel: 10, Value: 0.1},
			{ID: PowerRange, Name: "Long Reach", Description: "Longer range for every attack", Category: CategoryPassive, MaxLevel: 5},
			{ID: PowerDamage, Name: "Damage Boost", Description: "Every attack hits harder", Category: CategoryPassive, MaxLevel: 10, Value: 5},
			{ID: PowerMaxHP, Name: "Vitality", Description: "More maximum hp", Category: CategoryPassive, MaxLevel: 10, Value: 20},
			{ID: PowerProjectileCount, Name: "Multishot", Description: "Fire additional projectiles", Category: CategoryPassive, MaxLevel: 5, Value: 1},
		},
		Offer: OfferTuning{Choices: 3},
	}
}
