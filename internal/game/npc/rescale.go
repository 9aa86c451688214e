package npc

import (
	"fmt"

	"github.com/cory-johannsen/percentile/internal/game/character"
	"github.com/cory-johannsen/percentile/internal/game/dice"
	"github.com/cory-johannsen/percentile/internal/game/horde"
	"github.com/cory-johannsen/percentile/internal/game/inventory"
)

// ScaleFlags selects which parts of a profile Rescale touches.
type ScaleFlags struct {
	Characteristics bool `yaml:"characteristics"`
	Wounds          bool `yaml:"wounds"`
	Skills          bool `yaml:"skills"`
	Weapons         bool `yaml:"weapons"`
	Armour          bool `yaml:"armour"`
	Magnitude       bool `yaml:"magnitude"`
}

// AllScaleFlags selects every part.
func AllScaleFlags() ScaleFlags {
	return ScaleFlags{Characteristics: true, Wounds: true, Skills: true, Weapons: true, Armour: true, Magnitude: true}
}

// WeaponUpdate is the rescaled damage and penetration of Profile.Weapons[Index].
type WeaponUpdate struct {
	Index       int    `yaml:"index"`
	Damage      string `yaml:"damage"`
	Penetration int    `yaml:"pen"`
}

// Update is the partial statblock produced by Rescale. Nil and empty fields
// leave the profile unchanged.
type Update struct {
	ThreatLevel     int                   `yaml:"threatLevel"`
	Tier            string                `yaml:"tier"`
	Characteristics map[character.Key]int `yaml:"characteristics,omitempty"`
	Wounds          *Wounds               `yaml:"wounds,omitempty"`
	SkillBonuses    map[string]int        `yaml:"skillBonuses,omitempty"`
	Weapons         []WeaponUpdate        `yaml:"weapons,omitempty"`
	Armour          *int                  `yaml:"armour,omitempty"`
	Magnitude       *horde.Magnitude      `yaml:"magnitude,omitempty"`
}

// ScaleFactor returns the multiplicative factor between two threat levels.
func ScaleFactor(currentThreat, newThreat int) float64 {
	return 1 + float64(ClampThreat(newThreat)-ClampThreat(currentThreat))*0.05
}

// Rescale computes the update that moves p from currentThreat to newThreat.
// Characteristics, wounds, armour and magnitude scale by ScaleFactor; skill
// bonuses shift by 2 per threat level; weapon damage shifts by floor(diff/2)
// and penetration by floor(diff/5).
//
// Precondition: p must be non-nil.
// Postcondition: characteristics stay in [MinCharacteristic, MaxCharacteristic],
// armour in [0, inventory.MaxArmor] and wounds >= 1. Rescale(p, t, t, flags)
// reproduces p's current values.
func Rescale(p *Profile, currentThreat, newThreat int, flags ScaleFlags) (Update, error) {
	cur, next := ClampThreat(currentThreat), ClampThreat(newThreat)
	diff := next - cur
	factor := ScaleFactor(cur, next)
	u := Update{ThreatLevel: next, Tier: TierFor(next).Name}

	if flags.Characteristics {
		u.Characteristics = make(map[character.Key]int, len(p.Characteristics))
		for k, c := range p.Characteristics {
			u.Characteristics[k] = clampCharacteristic(round(float64(c.Base) * factor))
		}
	}

	if flags.Wounds {
		woundsMax := max(1, round(float64(p.Wounds.Max)*factor))
		value := min(woundsMax, max(0, round(float64(p.Wounds.Value)*factor)))
		u.Wounds = &Wounds{Max: woundsMax, Value: value}
	}

	if flags.Skills && len(p.Skills) > 0 {
		u.SkillBonuses = make(map[string]int, len(p.Skills))
		for name, s := range p.Skills {
			u.SkillBonuses[name] = s.Bonus + diff*2
		}
	}

	if flags.Weapons {
		for i, w := range p.Weapons {
			expr, err := dice.Parse(w.Damage)
			if err != nil {
				return Update{}, fmt.Errorf("npc: rescaling weapon %q: %w", w.ID, err)
			}
			u.Weapons = append(u.Weapons, WeaponUpdate{
				Index:       i,
				Damage:      expr.WithModifier(floorDiv(diff, 2)).String(),
				Penetration: max(0, w.Penetration+floorDiv(diff, 5)),
			})
		}
	}

	if flags.Armour {
		armour := inventory.ClampArmor(round(float64(p.Armour) * factor))
		u.Armour = &armour
	}

	if flags.Magnitude && p.Horde != nil {
		magMax := max(1, round(float64(p.Horde.Magnitude.Max)*factor))
		current := min(magMax, max(0, round(float64(p.Horde.Magnitude.Current)*factor)))
		u.Magnitude = &horde.Magnitude{Current: current, Max: magMax}
	}

	return u, nil
}

// Apply writes u into p in place. Movement is recomputed from the new agility bonus.
//
// Precondition: p must be non-nil.
func (u Update) Apply(p *Profile) {
	p.ThreatLevel = u.ThreatLevel
	p.Tier = u.Tier

	for k, v := range u.Characteristics {
		c := p.Characteristics[k]
		c.Base = v
		p.Characteristics[k] = c
	}
	if u.Wounds != nil {
		p.Wounds = *u.Wounds
	}
	for name, bonus := range u.SkillBonuses {
		if s, ok := p.Skills[name]; ok {
			s.Bonus = bonus
			p.Skills[name] = s
		}
	}
	for _, w := range u.Weapons {
		if w.Index < 0 || w.Index >= len(p.Weapons) {
			continue
		}
		p.Weapons[w.Index].Damage = w.Damage
		p.Weapons[w.Index].Penetration = w.Penetration
	}
	if u.Armour != nil {
		p.Armour = *u.Armour
	}
	if u.Magnitude != nil && p.Horde != nil {
		p.Horde.Magnitude = *u.Magnitude
	}

	ab, _ := p.Characteristics.Bonus(character.Agility)
	p.Movement = MovementFor(ab)
}
