package roll

import (
	"fmt"

	"github.com/cory-johannsen/percentile/internal/game/modifier"
	"github.com/cory-johannsen/percentile/internal/game/rangeband"
)

// Kind identifies a request variant.
type Kind string

const (
	KindSimple     Kind = "simple"
	KindWeapon     Kind = "weapon"
	KindPsychic    Kind = "psychic"
	KindForceField Kind = "forceField"
)

// Request is one of SimpleRequest, WeaponRequest, PsychicRequest or
// ForceFieldRequest. The set is closed.
type Request interface {
	// Kind returns the variant tag.
	Kind() Kind
	// Label names the test for logs and results.
	Label() string
	// BaseTarget is the target before modifiers.
	BaseTarget() int
	// Sources returns the variant's modifier sources in application order.
	Sources() ([]modifier.Source, error)

	request()
}

// Common holds the selections every modifiable test shares.
type Common struct {
	// Name labels the test, e.g. "Awareness" or "Lasgun".
	Name string `yaml:"name"`
	// Difficulty is the selected ladder rung; the zero value is Challenging.
	Difficulty modifier.Difficulty `yaml:"-"`
	// Custom is the free-form modifier entered by the player.
	Custom int `yaml:"custom"`
	// Extra holds further sources such as situational conditions.
	Extra []modifier.Source `yaml:"-"`
}

func (c Common) sources() []modifier.Source {
	d := c.Difficulty
	if d.Name == "" {
		d = modifier.DefaultDifficulty
	}
	out := []modifier.Source{d.Source()}
	out = append(out, modifier.Source{Key: modifier.KeyCustom, Value: c.Custom, Active: c.Custom != 0})
	return append(out, c.Extra...)
}

// SimpleRequest is a characteristic or skill test.
type SimpleRequest struct {
	Common
	Target int `yaml:"target"`
}

func (SimpleRequest) request()          {}
func (SimpleRequest) Kind() Kind        { return KindSimple }
func (r SimpleRequest) Label() string   { return r.Name }
func (r SimpleRequest) BaseTarget() int { return r.Target }

// Sources implements Request.
func (r SimpleRequest) Sources() ([]modifier.Source, error) {
	return r.sources(), nil
}

// WeaponRequest is a melee or ranged attack.
type WeaponRequest struct {
	Common
	// Target is the weapon skill or ballistic skill total.
	Target int `yaml:"target"`
	// Ranged selects the ranged columns (range, rate of fire) over the melee
	// ones (attack type, stance).
	Ranged bool `yaml:"ranged"`
	// Range is the classified distance; read only when Ranged.
	Range      rangeband.Result `yaml:"range"`
	Aim        string           `yaml:"aim"`
	CalledShot string           `yaml:"calledShot"`
	RateOfFire string           `yaml:"rateOfFire"`
	AttackType string           `yaml:"attackType"`
	Stance     string           `yaml:"stance"`
}

func (WeaponRequest) request()          {}
func (WeaponRequest) Kind() Kind        { return KindWeapon }
func (r WeaponRequest) Label() string   { return r.Name }
func (r WeaponRequest) BaseTarget() int { return r.Target }

// Sources implements Request.
//
// Postcondition: Returns an error naming the column of an unknown option.
func (r WeaponRequest) Sources() ([]modifier.Source, error) {
	out := r.sources()

	columns := []column{
		{modifier.Aim, r.Aim},
		{modifier.CalledShot, r.CalledShot},
	}
	if r.Ranged {
		out = append(out, modifier.Source{Key: modifier.KeyRange, Value: r.Range.Modifier, Active: r.Range.Modifier != 0})
		columns = append(columns, column{modifier.RateOfFire, r.RateOfFire})
	} else {
		columns = append(columns,
			column{modifier.MeleeAttack, r.AttackType},
			column{modifier.Stance, r.Stance},
		)
	}

	for _, col := range columns {
		src, err := col.table.Source(col.option)
		if err != nil {
			return nil, fmt.Errorf("roll: weapon %q: %w", r.Name, err)
		}
		out = append(out, src)
	}
	return out, nil
}

type column struct {
	table  modifier.Table
	option string
}

// PsyMode is how hard a psyker draws on the warp.
type PsyMode string

const (
	Fettered   PsyMode = "fettered"
	Unfettered PsyMode = "unfettered"
	Push       PsyMode = "push"
)

// Valid reports whether m is a known mode. The empty mode reads as Fettered.
func (m PsyMode) Valid() bool {
	switch m {
	case "", Fettered, Unfettered, Push:
		return true
	}
	return false
}

// PsychicRequest is a focus power test.
type PsychicRequest struct {
	Common
	// Willpower is the psyker's willpower total.
	Willpower int `yaml:"willpower"`
	// PsyRating is the psyker's rating.
	PsyRating int `yaml:"psyRating"`
	// EffectiveRating is the rating the power is manifested at.
	EffectiveRating int `yaml:"effectiveRating"`
	// Focus is the power's own focus modifier.
	Focus int     `yaml:"focus"`
	Mode  PsyMode `yaml:"mode"`
}

func (PsychicRequest) request()          {}
func (PsychicRequest) Kind() Kind        { return KindPsychic }
func (r PsychicRequest) Label() string   { return r.Name }
func (r PsychicRequest) BaseTarget() int { return r.Willpower }

// Sources implements Request. The rating source is +10 per point the power is
// manifested below the psyker's rating and -10 per point pushed above it.
func (r PsychicRequest) Sources() ([]modifier.Source, error) {
	if !r.Mode.Valid() {
		return nil, fmt.Errorf("roll: unknown psychic mode %q, want %s, %s or %s", r.Mode, Fettered, Unfettered, Push)
	}
	out := r.sources()
	rating := 10 * (r.PsyRating - r.EffectiveRating)
	out = append(out,
		modifier.Source{Key: modifier.KeyFocus, Value: r.Focus, Active: r.Focus != 0},
		modifier.Source{Key: modifier.KeyPsyRating, Value: rating, Active: rating != 0},
	)
	return out, nil
}

// RisksPhenomena reports whether a double on this test triggers psychic phenomena.
func (r PsychicRequest) RisksPhenomena() bool {
	return r.Mode == Push || r.Mode == Unfettered || r.EffectiveRating > r.PsyRating
}

// ForceFieldRequest is a force field protection test. It has no modifiers.
type ForceFieldRequest struct {
	Name string `yaml:"name"`
	// Rating is the field's protection rating.
	Rating int `yaml:"rating"`
	// Overload is the highest roll at which the field overloads; 0 never overloads.
	Overload int `yaml:"overload"`
}

func (ForceFieldRequest) request()          {}
func (ForceFieldRequest) Kind() Kind        { return KindForceField }
func (r ForceFieldRequest) Label() string   { return r.Name }
func (r ForceFieldRequest) BaseTarget() int { return r.Rating }

// Sources implements Request.
func (ForceFieldRequest) Sources() ([]modifier.Source, error) { return nil, nil }
