// Package inventory provides weapon and armour definitions and their loaders.
package inventory

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/percentile/internal/game/dice"
)

// WeaponClass is the handling class of a weapon.
type WeaponClass string

const (
	ClassMelee  WeaponClass = "melee"
	ClassPistol WeaponClass = "pistol"
	ClassBasic  WeaponClass = "basic"
	ClassHeavy  WeaponClass = "heavy"
	ClassThrown WeaponClass = "thrown"
)

var validClasses = map[WeaponClass]struct{}{
	ClassMelee: {}, ClassPistol: {}, ClassBasic: {}, ClassHeavy: {}, ClassThrown: {},
}

// WeaponDef defines the static properties of a weapon loaded from YAML.
type WeaponDef struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Class       WeaponClass `yaml:"class"`
	Range       int         `yaml:"range"` // metres; 0 for melee
	RateOfFire  string      `yaml:"rof,omitempty"`
	Damage      string      `yaml:"damage"` // dice expression, e.g. "1d10+3"
	DamageType  string      `yaml:"damage_type"`
	Penetration int         `yaml:"pen"`
	Qualities   []string    `yaml:"qualities,omitempty"`
}

// IsRanged reports whether the weapon makes ranged attacks.
func (w *WeaponDef) IsRanged() bool {
	return w.Class != ClassMelee
}

// DamageExpression parses the damage dice.
//
// Postcondition: Returns the parsed expression or a parse error.
func (w *WeaponDef) DamageExpression() (dice.Expression, error) {
	return dice.Parse(w.Damage)
}

// Validate checks that the WeaponDef satisfies its invariants.
// Precondition: w is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (w *WeaponDef) Validate() error {
	var errs []error
	if w.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if w.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if _, ok := validClasses[w.Class]; !ok {
		errs = append(errs, fmt.Errorf("class %q is not a valid weapon class", w.Class))
	}
	if _, err := dice.Parse(w.Damage); err != nil {
		errs = append(errs, fmt.Errorf("damage: %w", err))
	}
	if w.Penetration < 0 {
		errs = append(errs, errors.New("pen must be >= 0"))
	}
	if w.IsRanged() && w.Class != ClassThrown && w.Range <= 0 {
		errs = append(errs, errors.New("ranged weapon range must be > 0"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("weapon %q validation failed: %v", w.ID, errs)
	}
	return nil
}

// LoadWeaponsDir registers every weapon defined in the *.yaml files of dir
// into reg, one WeaponDef per file, in file-name order. Unknown fields are
// rejected and an id already in reg is an error, so a directory can extend
// an armory but not silently replace its entries.
//
// Precondition: reg must be non-nil.
// Postcondition: Returns the number of weapons registered, or the first error
// naming the offending file.
func LoadWeaponsDir(dir string, reg *Registry) (int, error) {
	if _, err := os.Stat(dir); err != nil {
		return 0, fmt.Errorf("reading weapons dir %q: %w", dir, err)
	}
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return 0, fmt.Errorf("listing weapons in %q: %w", dir, err)
	}
	sort.Strings(paths)

	for i, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return i, fmt.Errorf("reading weapon %q: %w", path, err)
		}
		var w WeaponDef
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&w); err != nil {
			return i, fmt.Errorf("parsing weapon %q: %w", path, err)
		}
		if err := reg.RegisterWeapon(&w); err != nil {
			return i, fmt.Errorf("registering weapon %q: %w", path, err)
		}
	}
	return len(paths), nil
}
