package roll

import "github.com/cory-johannsen/percentile/internal/game/modifier"

// Input is the plain record form of a roll resolution.
type Input struct {
	BaseTarget int            `yaml:"baseTarget"`
	Modifiers  map[string]int `yaml:"modifiers"`
	// RolledTotal is nil when no roll has been made yet.
	RolledTotal *int `yaml:"rolledTotal,omitempty"`
}

// Output is the plain record form of a resolved roll.
type Output struct {
	FinalTarget      int  `yaml:"finalTarget"`
	Success          bool `yaml:"success"`
	DegreesOfSuccess int  `yaml:"degreesOfSuccess"`
	DegreesOfFailure int  `yaml:"degreesOfFailure"`
}

// ResolveInput resolves a plain record. limit caps the summed modifiers; 0 disables the cap.
//
// Postcondition: Returns (out, false) with only FinalTarget set when
// RolledTotal is nil or outside [1, 100].
func ResolveInput(in Input, limit int) (Output, bool) {
	final := in.BaseTarget + modifier.FromMap(in.Modifiers).Capped(limit)
	if in.RolledTotal == nil || *in.RolledTotal < 1 || *in.RolledTotal > 100 {
		return Output{FinalTarget: final}, false
	}
	o := Resolve(final, *in.RolledTotal)
	return Output{
		FinalTarget:      final,
		Success:          o.Success,
		DegreesOfSuccess: o.DegreesOfSuccess,
		DegreesOfFailure: o.DegreesOfFailure,
	}, true
}
