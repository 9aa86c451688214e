package npc

import (
	"github.com/cory-johannsen/percentile/internal/game/character"
	"github.com/cory-johannsen/percentile/internal/game/horde"
	"github.com/cory-johannsen/percentile/internal/game/inventory"
)

// Wounds is a combatant's wound track.
type Wounds struct {
	Max   int `yaml:"max"`
	Value int `yaml:"value"`
}

// Weapon is a weapon as carried by a generated combatant, with threat scaling applied.
type Weapon struct {
	ID          string                `yaml:"id"`
	Name        string                `yaml:"name"`
	Class       inventory.WeaponClass `yaml:"class"`
	Range       int                   `yaml:"range,omitempty"`
	RateOfFire  string                `yaml:"rof,omitempty"`
	Damage      string                `yaml:"damage"`
	DamageType  string                `yaml:"damage_type"`
	Penetration int                   `yaml:"pen"`
	Qualities   []string              `yaml:"qualities,omitempty"`
}

// Movement is per-action movement in metres.
type Movement struct {
	Half   int `yaml:"half"`
	Full   int `yaml:"full"`
	Charge int `yaml:"charge"`
	Run    int `yaml:"run"`
}

// MovementFor derives movement from an agility bonus.
func MovementFor(agilityBonus int) Movement {
	ab := max(0, agilityBonus)
	return Movement{Half: ab, Full: 2 * ab, Charge: 3 * ab, Run: 6 * ab}
}

// Profile is a complete combatant statblock.
type Profile struct {
	Name            string                     `yaml:"name"`
	ThreatLevel     int                        `yaml:"threatLevel"`
	Tier            string                     `yaml:"tier"`
	Role            string                     `yaml:"role"`
	Type            string                     `yaml:"type"`
	Preset          string                     `yaml:"preset"`
	Characteristics character.Characteristics  `yaml:"characteristics"`
	Wounds          Wounds                     `yaml:"wounds"`
	Armour          int                        `yaml:"armour"`
	Weapons         []Weapon                   `yaml:"weapons"`
	Skills          map[string]character.Skill `yaml:"skills"`
	Movement        Movement                   `yaml:"movement"`
	Horde           *horde.State               `yaml:"horde,omitempty"`
}

// Sheet returns the profile as a sheet the roll engine can test against.
func (p *Profile) Sheet() *character.Sheet {
	return &character.Sheet{
		Name:            p.Name,
		Kind:            character.KindNPC,
		Characteristics: p.Characteristics,
		Skills:          p.Skills,
	}
}

// IsHorde reports whether the profile currently uses horde rules.
func (p *Profile) IsHorde() bool {
	return p.Horde != nil && p.Horde.Enabled
}

// ConvertToSingleEnemy turns a horde into a single combatant: horde rules are
// disabled and a horde-type combatant is reclassified as a troop.
//
// Postcondition: IsHorde() is false.
func (p *Profile) ConvertToSingleEnemy() {
	if p.Horde != nil {
		p.Horde.Disable()
	}
	if t, ok := Types[p.Type]; ok && t.Horde {
		p.Type = singleEnemyType
	}
}
