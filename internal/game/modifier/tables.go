package modifier

import (
	"fmt"
	"sort"
	"strings"
)

// Table is a fixed selection column: exactly one option applies, keyed by name.
type Table struct {
	Key     string
	Default string
	values  map[string]int
}

// Value returns the modifier of option, falling back to the default option
// for an empty name.
//
// Postcondition: Returns an error for unknown options.
func (t Table) Value(option string) (int, error) {
	if option == "" {
		option = t.Default
	}
	v, ok := t.values[option]
	if !ok {
		return 0, fmt.Errorf("modifier: unknown %s option %q, want one of [%s]", t.Key, option, strings.Join(t.Options(), ", "))
	}
	return v, nil
}

// Source returns option as an active source, inactive when the value is zero.
func (t Table) Source(option string) (Source, error) {
	v, err := t.Value(option)
	if err != nil {
		return Source{}, err
	}
	return Source{Key: t.Key, Value: v, Active: v != 0}, nil
}

// Options returns the option names of the table in name order.
func (t Table) Options() []string {
	out := make([]string, 0, len(t.values))
	for k := range t.values {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Aim is the aim action column.
var Aim = Table{Key: KeyAim, Default: "none", values: map[string]int{
	"none": 0,
	"half": 10,
	"full": 20,
}}

// CalledShot is the called-shot column keyed by target location.
var CalledShot = Table{Key: KeyCalledShot, Default: "none", values: map[string]int{
	"none":  0,
	"torso": -10,
	"leg":   -15,
	"arm":   -20,
	"head":  -20,
	"joint": -40,
	"eyes":  -50,
}}

// RateOfFire is the ranged rate-of-fire column.
var RateOfFire = Table{Key: KeyRateOfFire, Default: "single", values: map[string]int{
	"single":      0,
	"semi":        10,
	"full":        20,
	"suppressing": -20,
}}

// MeleeAttack is the melee attack-type column.
var MeleeAttack = Table{Key: KeyAttackType, Default: "standard", values: map[string]int{
	"standard": 0,
	"charge":   10,
	"full":     -10,
	"careful":  10,
	"mounted":  20,
}}

// Stance is the melee stance column.
var Stance = Table{Key: KeyStance, Default: "standard", values: map[string]int{
	"standard":   0,
	"aggressive": 10,
	"defensive":  -10,
}}
