package character

// Kind distinguishes player characters from NPCs; each kind carries its own
// untrained-skill policy.
type Kind string

const (
	KindCharacter Kind = "character"
	KindNPC       Kind = "npc"
)

// Sheet is the slice of an actor's data the engine reads: characteristics and
// skills keyed by name.
type Sheet struct {
	Name            string           `yaml:"name"`
	Kind            Kind             `yaml:"kind"`
	Characteristics Characteristics  `yaml:"characteristics"`
	Skills          map[string]Skill `yaml:"skills"`
}

// SkillLookup is the resolved target of a skill or specialization test.
type SkillLookup struct {
	// Skill is the skill key that was tested.
	Skill string
	// Specialization is the name of the matched entry; empty when the parent skill was used.
	Specialization string
	// Characteristic is the governing characteristic that was read.
	Characteristic Key
	// Target is the skill target before situational modifiers.
	Target int
	// FellBack is true when a specialization was requested but not matched
	// and the parent skill's target was used instead.
	FellBack bool
}

// CharacteristicTarget returns the plain characteristic test target for k.
//
// Postcondition: Returns (0, false) when k is not on the sheet.
func (sh *Sheet) CharacteristicTarget(k Key) (int, bool) {
	return sh.Characteristics.Total(k)
}

// SkillTarget resolves skill (and optionally a specialization by name or
// index) to a target number under policy p. A missing governing
// characteristic reads as 0.
//
// Precondition: p must be non-nil.
// Postcondition: Returns (lookup, false) only when skill is not on the sheet.
// An unmatched specialization returns the parent target with FellBack set.
func (sh *Sheet) SkillTarget(skill, specialization string, p TargetPolicy) (SkillLookup, bool) {
	s, ok := sh.Skills[skill]
	if !ok {
		return SkillLookup{Skill: skill}, false
	}

	if specialization != "" && s.IsSpecialist() {
		if spec, found := s.Specialization(specialization); found {
			key := s.GoverningCharacteristic(spec)
			total, _ := sh.Characteristics.Total(key)
			return SkillLookup{
				Skill:          skill,
				Specialization: spec.Name,
				Characteristic: key,
				Target:         SpecializationTarget(spec, total, p),
			}, true
		}
	}

	total, _ := sh.Characteristics.Total(s.Characteristic)
	return SkillLookup{
		Skill:          skill,
		Characteristic: s.Characteristic,
		Target:         SkillTarget(s, total, p),
		FellBack:       specialization != "",
	}, true
}
