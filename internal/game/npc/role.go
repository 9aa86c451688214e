package npc

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cory-johannsen/percentile/internal/game/character"
)

// ErrUnknownRole is returned for a role name that is not in Roles.
var ErrUnknownRole = errors.New("npc: unknown role")

// Role shapes which characteristics and skills a combatant favours.
type Role struct {
	Name      string
	Primary   []character.Key
	Secondary []character.Key
	// Skills are trained at the level the threat grants.
	Skills []string
}

// Roles is keyed by role name.
var Roles = map[string]Role{
	"bruiser": {
		Name:      "bruiser",
		Primary:   []character.Key{character.WeaponSkill, character.Strength, character.Toughness},
		Secondary: []character.Key{character.Agility, character.Willpower},
		Skills:    []string{"athletics", "intimidate", "parry"},
	},
	"sniper": {
		Name:      "sniper",
		Primary:   []character.Key{character.BallisticSkill, character.Perception, character.Agility},
		Secondary: []character.Key{character.Intelligence, character.Willpower},
		Skills:    []string{"stealth", "survival"},
	},
	"caster": {
		Name:      "caster",
		Primary:   []character.Key{character.Willpower, character.Intelligence},
		Secondary: []character.Key{character.Perception, character.Fellowship},
		Skills:    []string{"psyniscience", "forbiddenLore", "scholasticLore"},
	},
	"support": {
		Name:      "support",
		Primary:   []character.Key{character.Intelligence, character.Fellowship},
		Secondary: []character.Key{character.Toughness, character.Perception},
		Skills:    []string{"medicae", "techUse"},
	},
	"commander": {
		Name:      "commander",
		Primary:   []character.Key{character.Fellowship, character.Willpower},
		Secondary: []character.Key{character.WeaponSkill, character.BallisticSkill, character.Influence},
		Skills:    []string{"command", "charm", "scrutiny"},
	},
	"specialist": {
		Name:      "specialist",
		Primary:   []character.Key{character.Agility, character.Intelligence},
		Secondary: []character.Key{character.BallisticSkill, character.Perception},
		Skills:    []string{"techUse", "security", "deceive"},
	},
}

// skillCharacteristics maps every skill the generator can grant to its governing characteristic.
var skillCharacteristics = map[string]character.Key{
	"athletics":      character.Strength,
	"awareness":      character.Perception,
	"charm":          character.Fellowship,
	"command":        character.Fellowship,
	"deceive":        character.Fellowship,
	"dodge":          character.Agility,
	"forbiddenLore":  character.Intelligence,
	"intimidate":     character.Strength,
	"medicae":        character.Intelligence,
	"parry":          character.WeaponSkill,
	"psyniscience":   character.Perception,
	"scholasticLore": character.Intelligence,
	"scrutiny":       character.Perception,
	"security":       character.Intelligence,
	"stealth":        character.Agility,
	"survival":       character.Perception,
	"techUse":        character.Intelligence,
}

// LookupRole returns the role named name.
//
// Postcondition: Returns an error wrapping ErrUnknownRole when name is not in Roles.
func LookupRole(name string) (Role, error) {
	r, ok := Roles[name]
	if !ok {
		return Role{}, fmt.Errorf("%w %q", ErrUnknownRole, name)
	}
	return r, nil
}

// RoleNames returns the role names in sorted order.
func RoleNames() []string {
	names := make([]string, 0, len(Roles))
	for n := range Roles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// bonus returns the role adjustment of characteristic k at threat t.
func (r Role) bonus(k character.Key, t int) int {
	ft := float64(t)
	switch {
	case containsKey(r.Primary, k):
		return round(5 + ft*0.5)
	case containsKey(r.Secondary, k):
		return round(2 + ft*0.2)
	default:
		return -round(3 + ft*0.1)
	}
}

func containsKey(keys []character.Key, k character.Key) bool {
	for _, c := range keys {
		if c == k {
			return true
		}
	}
	return false
}
