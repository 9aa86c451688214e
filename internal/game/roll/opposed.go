package roll

// Winner names the side that wins an opposed test.
type Winner int

const (
	// NoWinner means neither side prevails.
	NoWinner Winner = iota
	SideA
	SideB
)

func (w Winner) String() string {
	switch w {
	case SideA:
		return "a"
	case SideB:
		return "b"
	default:
		return "none"
	}
}

// Opposed compares two independent outcomes. A nil outcome means that side did
// not roll.
//
// Rules, in order:
//   - if only one side rolled, its success stands unopposed
//   - a failing side loses to any succeeding side
//   - if both fail, no one wins
//   - more degrees of success wins
//   - equal degrees go to the higher target
//
// Postcondition: Returns NoWinner when the sides cannot be separated.
func Opposed(a, b *Outcome) Winner {
	switch {
	case a == nil && b == nil:
		return NoWinner
	case b == nil:
		if a.Success {
			return SideA
		}
		return NoWinner
	case a == nil:
		if b.Success {
			return SideB
		}
		return NoWinner
	}

	switch {
	case a.Success && !b.Success:
		return SideA
	case b.Success && !a.Success:
		return SideB
	case !a.Success && !b.Success:
		return NoWinner
	}

	switch {
	case a.DegreesOfSuccess > b.DegreesOfSuccess:
		return SideA
	case b.DegreesOfSuccess > a.DegreesOfSuccess:
		return SideB
	case a.Target > b.Target:
		return SideA
	case b.Target > a.Target:
		return SideB
	default:
		return NoWinner
	}
}
