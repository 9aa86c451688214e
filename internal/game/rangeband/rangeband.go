// Package rangeband classifies an attack distance into a range bracket and
// its attack modifier.
package rangeband

import (
	"math"

	"github.com/cory-johannsen/percentile/internal/game/inventory"
)

// Bracket is a discrete range classification.
type Bracket string

const (
	Melee      Bracket = "melee"
	Self       Bracket = "self"
	PointBlank Bracket = "pointBlank"
	Short      Bracket = "short"
	Standard   Bracket = "standard"
	Long       Bracket = "long"
	Extreme    Bracket = "extreme"
)

// PointBlankDistance is the flat point-blank threshold in metres.
const PointBlankDistance = 2

// GyroFloor is the worst range modifier a gyro-stabilised weapon suffers.
const GyroFloor = -10

var modifiers = map[Bracket]int{
	Melee:      0,
	Self:       0,
	PointBlank: 30,
	Short:      10,
	Standard:   0,
	Long:       -10,
	Extreme:    -30,
}

// Modifier returns the unadjusted attack modifier of b.
func (b Bracket) Modifier() int {
	return modifiers[b]
}

// Input describes one range classification request.
type Input struct {
	// Distance to the target in metres.
	Distance float64
	// WeaponRange is the weapon or power's base range in metres.
	WeaponRange float64
	// Qualities are the weapon's quality entries, e.g. "Melta", "Gyro-Stabilised".
	Qualities []string
	// IsRanged is false for melee weapons.
	IsRanged bool
}

// Result is the classification of an Input.
type Result struct {
	Bracket  Bracket `yaml:"bracket"`
	Modifier int     `yaml:"modifier"`
	// IsMeltaRange is true for melta weapons at point-blank or short range.
	IsMeltaRange bool `yaml:"isMeltaRange"`
	// ModifiedBy names the quality that overrode the bracket modifier; empty when none did.
	ModifiedBy string `yaml:"modifiedBy,omitempty"`
}

// Calculate classifies in. Negative or NaN distances and ranges are clamped to zero.
//
// Rules, in order:
//   - melee weapons, or weapons with range <= 1, are always in melee
//   - distance 0 is self (self-targeted or area powers)
//   - distance <= 1 is melee
//   - otherwise <= 2m point blank, <= half range short, <= 2x range standard,
//     <= 3x range long, beyond that extreme
//
// Postcondition: Modifier >= GyroFloor when the weapon is gyro-stabilised.
func Calculate(in Input) Result {
	distance := nonNegative(in.Distance)
	weaponRange := nonNegative(in.WeaponRange)

	if !in.IsRanged || weaponRange <= 1 {
		return Result{Bracket: Melee}
	}
	if distance == 0 {
		return Result{Bracket: Self}
	}
	if distance <= 1 {
		return Result{Bracket: Melee}
	}

	var b Bracket
	switch {
	case distance <= PointBlankDistance:
		b = PointBlank
	case distance <= weaponRange*0.5:
		b = Short
	case distance <= weaponRange*2:
		b = Standard
	case distance <= weaponRange*3:
		b = Long
	default:
		b = Extreme
	}

	qualities := inventory.ParseQualities(in.Qualities)
	res := Result{Bracket: b, Modifier: b.Modifier()}
	if qualities.Has(inventory.QualityGyroStabilised) && res.Modifier < GyroFloor {
		res.Modifier = GyroFloor
		res.ModifiedBy = inventory.QualityGyroStabilised
	}
	res.IsMeltaRange = qualities.Has(inventory.QualityMelta) && (b == PointBlank || b == Short)
	return res
}

// Distance combines a grid path distance with an elevation difference.
// Negative inputs are treated by magnitude for elevation and clamped to zero for grid.
//
// Postcondition: Returns sqrt(grid² + elevation²) >= 0.
func Distance(grid, elevation float64) float64 {
	if math.IsNaN(elevation) {
		elevation = 0
	}
	return math.Hypot(nonNegative(grid), elevation)
}

// nonNegative clamps v to [0, +Inf), reading NaN as 0.
func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
