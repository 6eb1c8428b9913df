package system

import (
	"github.com/lixenwraith/oncoarena/component"
	"github.com/lixenwraith/oncoarena/parameter"
	"github.com/lixenwraith/oncoarena/tuning"
)

// ApplyPowerUp mutates the player for a power-up that just reached level
// Ability power-ups set their level; stat power-ups add their per-level value
func ApplyPowerUp(p *component.PlayerComponent, def tuning.PowerUpDef, level int) {
	switch def.ID {
	case tuning.PowerRadiotherapy:
		p.Radiotherapy = level
		if level == 1 {
			p.RayTimer = p.RayInterval()
		}
	case tuning.PowerExplosive:
		p.Explosive = level
	case tuning.PowerMagnet:
		p.Magnet = level
	case tuning.PowerLightning:
		p.Lightning = level
		if level == 1 {
			p.LightningTimer = p.LightningInterval()
		}
	case tuning.PowerPiercing:
		p.Piercing = level
	case tuning.PowerShield:
		p.SetShieldLevel(level)
	case tuning.PowerSpeed:
		p.SpeedBonus += def.Value
	case tuning.PowerAura:
		p.AuraDamage += def.Value
	case tuning.PowerAttackSpeed:
		p.IntervalReduction += def.Value
	case tuning.PowerRange:
		if def.Value > 0 {
			p.RangeBonus += def.Value
		} else {
			p.RangeBonus += parameter.RangeBonusPerLevel
		}
	case tuning.PowerDamage:
		p.DamageBonus += def.Value
	case tuning.PowerMaxHP:
		p.MaxHP += def.Value
		p.HP += def.Value
	case tuning.PowerProjectileCount:
		n := int(def.Value)
		if n < 1 {
			n = 1
		}
		p.ExtraProjectiles += n
	}
}
