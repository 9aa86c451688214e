package roll

import "github.com/cory-johannsen/percentile/internal/game/dice"

// Location is a body location struck by a successful attack.
type Location string

const (
	LocationHead     Location = "head"
	LocationRightArm Location = "rightArm"
	LocationLeftArm  Location = "leftArm"
	LocationBody     Location = "body"
	LocationRightLeg Location = "rightLeg"
	LocationLeftLeg  Location = "leftLeg"
)

// HitLocation reverses the dice of an attack roll and maps the result onto
// the location table. A reversed 00 reads as 100.
//
// Precondition: total in [1, 100].
func HitLocation(total int) Location {
	tens, units := dice.Digits(total)
	reversed := units*10 + tens
	if reversed == 0 {
		reversed = 100
	}
	switch {
	case reversed <= 10:
		return LocationHead
	case reversed <= 20:
		return LocationRightArm
	case reversed <= 30:
		return LocationLeftArm
	case reversed <= 70:
		return LocationBody
	case reversed <= 85:
		return LocationRightLeg
	default:
		return LocationLeftLeg
	}
}
