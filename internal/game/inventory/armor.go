package inventory

import (
	"errors"
	"fmt"
)

// MaxArmor is the highest armour value a single piece may provide.
const MaxArmor = 15

// ArmorDef defines a suit or piece of armour.
type ArmorDef struct {
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name"`
	Points    int      `yaml:"points"`
	Locations []string `yaml:"locations,omitempty"` // empty = all locations
	Qualities []string `yaml:"qualities,omitempty"`
}

// Validate reports an error if the ArmorDef is missing required fields or contains illegal values.
// Precondition: def is non-nil.
// Postcondition: Returns nil iff the def is well-formed.
func (a *ArmorDef) Validate() error {
	var errs []error
	if a.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if a.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if a.Points < 0 || a.Points > MaxArmor {
		errs = append(errs, fmt.Errorf("points must be in [0,%d], got %d", MaxArmor, a.Points))
	}
	if len(errs) > 0 {
		return fmt.Errorf("armor %q validation failed: %v", a.ID, errs)
	}
	return nil
}

// ClampArmor clamps an armour value to [0, MaxArmor].
func ClampArmor(points int) int {
	if points < 0 {
		return 0
	}
	if points > MaxArmor {
		return MaxArmor
	}
	return points
}
