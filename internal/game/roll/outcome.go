// Package roll resolves percentile tests against target numbers.
package roll

// Outcome is the result of one percentile test.
type Outcome struct {
	Total            int  `yaml:"total"`
	Target           int  `yaml:"target"`
	Success          bool `yaml:"success"`
	DegreesOfSuccess int  `yaml:"degreesOfSuccess"`
	DegreesOfFailure int  `yaml:"degreesOfFailure"`
}

// Resolve tests a percentile total against target.
//
// A total of 1 always succeeds. A total of 100 always fails unless target is
// at least 100. Every full 10 points of margin adds one degree.
//
// Precondition: total in [1, 100].
// Postcondition: exactly one of DegreesOfSuccess and DegreesOfFailure is
// non-zero, and it is >= 1.
func Resolve(target, total int) Outcome {
	out := Outcome{Total: total, Target: target}
	out.Success = total == 1 || (total <= target && (total != 100 || target >= 100))
	if out.Success {
		out.DegreesOfSuccess = 1 + degreeStep(target, total)
	} else {
		out.DegreesOfFailure = 1 + degreeStep(total, target)
	}
	return out
}

// degreeStep returns the number of full tens by which high exceeds low, never negative.
func degreeStep(high, low int) int {
	d := high - low
	if d <= 0 {
		return 0
	}
	return d / 10
}

// Degrees returns the signed degree count: positive for success, negative for failure.
func (o Outcome) Degrees() int {
	if o.Success {
		return o.DegreesOfSuccess
	}
	return -o.DegreesOfFailure
}
