package npc

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/percentile/internal/game/character"
	"github.com/cory-johannsen/percentile/internal/game/horde"
	"github.com/cory-johannsen/percentile/internal/game/inventory"
)

// Characteristic bounds applied to every generated or rescaled value.
const (
	MinCharacteristic = 10
	MaxCharacteristic = 99
)

// Threat thresholds at which the universal skills are granted.
const (
	AwarenessThreat = 4
	DodgeThreat     = 8
)

// Params selects what to generate.
type Params struct {
	// Name labels the statblock; empty derives one from tier and role.
	Name        string `yaml:"name"`
	ThreatLevel int    `yaml:"threatLevel"`
	Role        string `yaml:"role"`
	Type        string `yaml:"type"`
	Preset      string `yaml:"preset"`
	IsHorde     bool   `yaml:"isHorde"`
}

// Generator builds profiles from Params.
type Generator struct {
	armory  *inventory.Registry
	presets *Presets
	logger  *zap.Logger
}

// NewGenerator creates a Generator.
//
// Precondition: armory, presets and logger must be non-nil.
// Postcondition: Returns an error if a preset references an id missing from armory.
func NewGenerator(armory *inventory.Registry, presets *Presets, logger *zap.Logger) (*Generator, error) {
	if err := presets.Check(armory); err != nil {
		return nil, err
	}
	return &Generator{armory: armory, presets: presets, logger: logger}, nil
}

// TrainingFor returns the skill training granted at threat t.
func TrainingFor(t int) character.TrainingLevel {
	switch t = ClampThreat(t); {
	case t >= 21:
		return character.Plus20
	case t >= 11:
		return character.Plus10
	default:
		return character.Trained
	}
}

// MagnitudeFor returns the horde magnitude granted at threat t.
func MagnitudeFor(t int) int {
	return 30 + ClampThreat(t)*5
}

// Generate derives a full statblock. The threat level is clamped to
// [MinThreat, MaxThreat].
//
// Postcondition: Returns an error wrapping ErrUnknownRole, ErrUnknownType or
// ErrUnknownPreset for unknown selections. Every characteristic is in
// [MinCharacteristic, MaxCharacteristic] and Wounds.Max >= 1.
func (g *Generator) Generate(p Params) (*Profile, error) {
	role, err := LookupRole(p.Role)
	if err != nil {
		return nil, err
	}
	typ, err := LookupType(p.Type)
	if err != nil {
		return nil, err
	}
	preset, err := g.presets.Get(p.Preset)
	if err != nil {
		return nil, err
	}

	t := ClampThreat(p.ThreatLevel)
	tier := TierFor(t)
	pos := tier.Position(t)

	prof := &Profile{
		Name:            p.Name,
		ThreatLevel:     t,
		Tier:            tier.Name,
		Role:            role.Name,
		Type:            typ.Name,
		Preset:          preset.ID,
		Characteristics: generateCharacteristics(tier, role, t),
		Skills:          generateSkills(role, t),
	}
	if prof.Name == "" {
		prof.Name = fmt.Sprintf("%s %s", tier.Name, role.Name)
	}

	woundsMax := max(1, round(float64(tier.Wounds+round(pos*5))*typ.WoundFactor))
	prof.Wounds = Wounds{Max: woundsMax, Value: woundsMax}

	for _, id := range preset.Weapons {
		def, _ := g.armory.Weapon(id)
		w, err := scaledWeapon(def, t/5, t/10)
		if err != nil {
			return nil, fmt.Errorf("npc preset %q: %w", preset.ID, err)
		}
		prof.Weapons = append(prof.Weapons, w)
	}
	armour := 0
	if a, ok := g.armory.Armor(preset.Armor); ok {
		armour = a.Points
	}
	prof.Armour = inventory.ClampArmor(armour + t/10)

	ab, _ := prof.Characteristics.Bonus(character.Agility)
	prof.Movement = MovementFor(ab)

	if p.IsHorde || typ.Horde {
		prof.Horde, err = horde.New(MagnitudeFor(t))
		if err != nil {
			return nil, err
		}
	}

	g.logger.Debug("npc generated",
		zap.String("name", prof.Name),
		zap.Int("threat", t),
		zap.String("tier", tier.Name),
		zap.String("role", role.Name),
		zap.String("type", typ.Name),
		zap.String("preset", preset.ID),
		zap.Int("wounds", prof.Wounds.Max),
	)
	return prof, nil
}

func generateCharacteristics(tier Tier, role Role, t int) character.Characteristics {
	base := tier.BaseCharacteristic(t)
	out := make(character.Characteristics, len(character.Keys))
	for _, k := range character.Keys {
		out[k] = character.Characteristic{Base: clampCharacteristic(base + role.bonus(k, t))}
	}
	return out
}

func generateSkills(role Role, t int) map[string]character.Skill {
	names := append([]string(nil), role.Skills...)
	if t >= AwarenessThreat {
		names = append(names, "awareness")
	}
	if t >= DodgeThreat {
		names = append(names, "dodge")
	}
	level := TrainingFor(t)
	out := make(map[string]character.Skill, len(names))
	for _, n := range names {
		s := character.Skill{Characteristic: skillCharacteristics[n]}
		s.SetLevel(level)
		out[n] = s
	}
	return out
}

// scaledWeapon copies def with its damage modifier and penetration shifted.
// Penetration never drops below zero.
func scaledWeapon(def *inventory.WeaponDef, damageDelta, penDelta int) (Weapon, error) {
	expr, err := def.DamageExpression()
	if err != nil {
		return Weapon{}, fmt.Errorf("weapon %q: %w", def.ID, err)
	}
	return Weapon{
		ID:          def.ID,
		Name:        def.Name,
		Class:       def.Class,
		Range:       def.Range,
		RateOfFire:  def.RateOfFire,
		Damage:      expr.WithModifier(damageDelta).String(),
		DamageType:  def.DamageType,
		Penetration: max(0, def.Penetration+penDelta),
		Qualities:   append([]string(nil), def.Qualities...),
	}, nil
}

func clampCharacteristic(v int) int {
	return min(MaxCharacteristic, max(MinCharacteristic, v))
}
