package character

import (
	"fmt"
	"strconv"
	"strings"
)

// TrainingLevel is one rung of the skill training ladder.
type TrainingLevel int

const (
	Untrained TrainingLevel = iota
	Trained
	Plus10
	Plus20
)

// String returns the sheet label of the level.
func (l TrainingLevel) String() string {
	switch l {
	case Untrained:
		return "untrained"
	case Trained:
		return "trained"
	case Plus10:
		return "+10"
	case Plus20:
		return "+20"
	default:
		return fmt.Sprintf("TrainingLevel(%d)", int(l))
	}
}

// Training holds the ladder flags as stored on a sheet.
//
// Invariant after SetLevel: Plus20 implies Plus10 implies Trained.
type Training struct {
	Trained bool `yaml:"trained"`
	Plus10  bool `yaml:"plus10"`
	Plus20  bool `yaml:"plus20"`
}

// Level returns the highest rung whose flag is set. A stray higher flag wins
// over missing lower ones, so {Plus20: true} reads as Plus20.
func (t Training) Level() TrainingLevel {
	switch {
	case t.Plus20:
		return Plus20
	case t.Plus10:
		return Plus10
	case t.Trained:
		return Trained
	default:
		return Untrained
	}
}

// SetLevel rewrites the flags so that exactly the rungs up to l are set.
//
// Postcondition: t.Level() == l (levels above Plus20 clamp to Plus20).
func (t *Training) SetLevel(l TrainingLevel) {
	t.Trained = l >= Trained
	t.Plus10 = l >= Plus10
	t.Plus20 = l >= Plus20
}

// Specialization is a named sub-skill with its own ladder. An empty
// Characteristic falls back to the parent skill's.
type Specialization struct {
	Name           string `yaml:"name"`
	Characteristic Key    `yaml:"characteristic,omitempty"`
	Training       `yaml:",inline"`
	Bonus          int `yaml:"bonus"`
}

// Skill is one skill entry on a sheet.
type Skill struct {
	Characteristic Key `yaml:"characteristic"`
	Training       `yaml:",inline"`
	Bonus          int              `yaml:"bonus"`
	Entries        []Specialization `yaml:"entries,omitempty"`
}

// IsSpecialist reports whether the skill carries specialization entries.
func (s Skill) IsSpecialist() bool { return len(s.Entries) > 0 }

// Specialization looks ref up first as a case-insensitive exact name, then
// as a zero-based index.
//
// Postcondition: Returns (entry, true) on a match, (zero, false) otherwise.
func (s Skill) Specialization(ref string) (Specialization, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Specialization{}, false
	}
	for _, e := range s.Entries {
		if strings.EqualFold(e.Name, ref) {
			return e, true
		}
	}
	if idx, err := strconv.Atoi(ref); err == nil && idx >= 0 && idx < len(s.Entries) {
		return s.Entries[idx], true
	}
	return Specialization{}, false
}

// GoverningCharacteristic returns the characteristic a specialization tests,
// falling back to the parent skill's.
func (s Skill) GoverningCharacteristic(spec Specialization) Key {
	if spec.Characteristic != "" {
		return spec.Characteristic
	}
	return s.Characteristic
}

// SkillTarget returns the target number of s against a governing
// characteristic total under policy p.
//
// Precondition: p must be non-nil.
func SkillTarget(s Skill, characteristicTotal int, p TargetPolicy) int {
	return p.Target(s.Level(), characteristicTotal) + s.Bonus
}

// SpecializationTarget returns the target number of one specialization entry.
//
// Precondition: p must be non-nil.
func SpecializationTarget(spec Specialization, characteristicTotal int, p TargetPolicy) int {
	return p.Target(spec.Level(), characteristicTotal) + spec.Bonus
}
