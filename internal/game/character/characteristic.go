// Package character defines characteristics, skills and the target numbers
// derived from them.
package character

import "strings"

// Key identifies one of the ten characteristics.
type Key string

const (
	WeaponSkill    Key = "weaponSkill"
	BallisticSkill Key = "ballisticSkill"
	Strength       Key = "strength"
	Toughness      Key = "toughness"
	Agility        Key = "agility"
	Intelligence   Key = "intelligence"
	Perception     Key = "perception"
	Willpower      Key = "willpower"
	Fellowship     Key = "fellowship"
	Influence      Key = "influence"
)

// Keys lists every characteristic in sheet order.
var Keys = []Key{
	WeaponSkill, BallisticSkill, Strength, Toughness, Agility,
	Intelligence, Perception, Willpower, Fellowship, Influence,
}

var shortNames = map[Key]string{
	WeaponSkill:    "WS",
	BallisticSkill: "BS",
	Strength:       "S",
	Toughness:      "T",
	Agility:        "Ag",
	Intelligence:   "Int",
	Perception:     "Per",
	Willpower:      "WP",
	Fellowship:     "Fel",
	Influence:      "Inf",
}

// Short returns the sheet abbreviation for k, e.g. "WS".
//
// Postcondition: Returns "<k>" for unknown keys.
func (k Key) Short() string {
	if s, ok := shortNames[k]; ok {
		return s
	}
	return "<" + string(k) + ">"
}

// ParseKey resolves either the full key ("weaponSkill") or the abbreviation
// ("WS"), case-insensitively.
//
// Postcondition: Returns (key, true) on a match, ("", false) otherwise.
func ParseKey(s string) (Key, bool) {
	s = strings.TrimSpace(s)
	for _, k := range Keys {
		if strings.EqualFold(s, string(k)) || strings.EqualFold(s, shortNames[k]) {
			return k, true
		}
	}
	return "", false
}

// Characteristic holds the stored components of one characteristic.
//
// Unnatural is a multiplier on the bonus; values below 1 mean "no unnatural
// characteristic" and behave as 1.
type Characteristic struct {
	Base      int `yaml:"base"`
	Advance   int `yaml:"advance"` // each step is worth +5
	Modifier  int `yaml:"modifier"`
	Unnatural int `yaml:"unnatural"`
}

// AdvanceStep is the value of one characteristic advance.
const AdvanceStep = 5

// Total returns base + advance*5 + modifier.
func (c Characteristic) Total() int {
	return c.Base + c.Advance*AdvanceStep + c.Modifier
}

// UnnaturalMultiplier returns the effective bonus multiplier.
//
// Postcondition: Returns >= 1.
func (c Characteristic) UnnaturalMultiplier() int {
	if c.Unnatural < 1 {
		return 1
	}
	return c.Unnatural
}

// Bonus returns floor(Total/10) scaled by the unnatural multiplier.
//
// Postcondition: Returns a negative value only when Total is negative.
func (c Characteristic) Bonus() int {
	return floorDiv(c.Total(), 10) * c.UnnaturalMultiplier()
}

// Characteristics maps keys to characteristic values.
type Characteristics map[Key]Characteristic

// Total returns the total of k; missing keys report (0, false).
func (cs Characteristics) Total(k Key) (int, bool) {
	c, ok := cs[k]
	if !ok {
		return 0, false
	}
	return c.Total(), true
}

// Bonus returns the bonus of k; missing keys report (0, false).
func (cs Characteristics) Bonus(k Key) (int, bool) {
	c, ok := cs[k]
	if !ok {
		return 0, false
	}
	return c.Bonus(), true
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
