package character

import "fmt"

// TargetPolicy turns a training level and characteristic total into a base
// skill target. The two implementations are the two untrained-skill rules
// used by player characters and NPCs.
type TargetPolicy interface {
	// Name is the configuration name of the policy.
	Name() string
	// Target returns the skill target before the skill's flat bonus.
	Target(level TrainingLevel, characteristicTotal int) int
}

// UntrainedPenalty is the flat penalty applied by PenaltyPolicy.
const UntrainedPenalty = -20

// PenaltyPolicy tests untrained skills at characteristic - 20.
type PenaltyPolicy struct{}

// Name implements TargetPolicy.
func (PenaltyPolicy) Name() string { return "penalty" }

// Target implements TargetPolicy.
func (PenaltyPolicy) Target(level TrainingLevel, total int) int {
	if level == Untrained {
		return total + UntrainedPenalty
	}
	return total + trainingOffset(level)
}

// HalfCharacteristicPolicy tests untrained skills at floor(characteristic / 2).
type HalfCharacteristicPolicy struct{}

// Name implements TargetPolicy.
func (HalfCharacteristicPolicy) Name() string { return "half" }

// Target implements TargetPolicy.
func (HalfCharacteristicPolicy) Target(level TrainingLevel, total int) int {
	if level == Untrained {
		return floorDiv(total, 2)
	}
	return total + trainingOffset(level)
}

func trainingOffset(level TrainingLevel) int {
	switch {
	case level >= Plus20:
		return 20
	case level == Plus10:
		return 10
	default:
		return 0
	}
}

// PolicyByName returns the policy registered under name ("penalty" or "half").
//
// Postcondition: Returns a non-nil policy or an error naming the valid choices.
func PolicyByName(name string) (TargetPolicy, error) {
	switch name {
	case "penalty":
		return PenaltyPolicy{}, nil
	case "half":
		return HalfCharacteristicPolicy{}, nil
	default:
		return nil, fmt.Errorf("character: unknown skill target policy %q (want penalty or half)", name)
	}
}
