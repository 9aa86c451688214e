package roll

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/percentile/internal/game/dice"
	"github.com/cory-johannsen/percentile/internal/game/modifier"
)

// ErrIncompleteRoll is returned when a manual roll is missing or malformed.
var ErrIncompleteRoll = errors.New("roll: incomplete roll")

// Subject describes a pending test to modifier providers.
type Subject struct {
	Kind       Kind
	Name       string
	BaseTarget int
}

// ModifierProvider contributes extra sources to every test a Resolver runs.
type ModifierProvider interface {
	Modifiers(s Subject) []modifier.Source
}

// Evaluation is a request's target before the dice are read.
type Evaluation struct {
	Kind       Kind              `yaml:"kind"`
	Name       string            `yaml:"name,omitempty"`
	BaseTarget int               `yaml:"baseTarget"`
	Sources    []modifier.Source `yaml:"sources"`
	// Modifier is the summed offset after the cap.
	Modifier    int `yaml:"modifier"`
	FinalTarget int `yaml:"finalTarget"`
}

// Result is a fully resolved test.
type Result struct {
	Evaluation `yaml:",inline"`
	Outcome    `yaml:",inline"`
	// Location is set for successful weapon attacks.
	Location Location `yaml:"location,omitempty"`
	// MeltaRange is copied from the range classification of ranged attacks.
	MeltaRange bool `yaml:"meltaRange,omitempty"`
	// Phenomena is set for psychic tests that rolled a double while pushing or unfettered.
	Phenomena bool `yaml:"phenomena,omitempty"`
	// Overloaded is set when a force field roll fell at or under its overload threshold.
	Overloaded bool `yaml:"overloaded,omitempty"`
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithModifierCap clamps the summed offset to ±limit; 0 disables the cap.
func WithModifierCap(limit int) Option {
	return func(r *Resolver) { r.cap = limit }
}

// WithProvider adds a ModifierProvider.
func WithProvider(p ModifierProvider) Option {
	return func(r *Resolver) { r.providers = append(r.providers, p) }
}

// Resolver turns requests into results.
type Resolver struct {
	roller    *dice.Roller
	logger    *zap.Logger
	cap       int
	providers []ModifierProvider
}

// NewResolver creates a Resolver.
//
// Precondition: roller and logger must be non-nil.
func NewResolver(roller *dice.Roller, logger *zap.Logger, opts ...Option) *Resolver {
	r := &Resolver{roller: roller, logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Evaluate collects every modifier source of req, including provider
// sources, and computes the final target.
//
// Precondition: req must be non-nil.
// Postcondition: FinalTarget == BaseTarget + Modifier.
func (r *Resolver) Evaluate(req Request) (Evaluation, error) {
	srcs, err := req.Sources()
	if err != nil {
		return Evaluation{}, err
	}
	set := modifier.NewSet(srcs...)
	subject := Subject{Kind: req.Kind(), Name: req.Label(), BaseTarget: req.BaseTarget()}
	for _, p := range r.providers {
		set.Append(p.Modifiers(subject)...)
	}
	mod := set.Capped(r.cap)
	return Evaluation{
		Kind:        req.Kind(),
		Name:        req.Label(),
		BaseTarget:  req.BaseTarget(),
		Sources:     set.Sources(),
		Modifier:    mod,
		FinalTarget: req.BaseTarget() + mod,
	}, nil
}

// Roll evaluates req and rolls the percentile dice.
//
// Postcondition: Returns a Result or the evaluation error.
func (r *Resolver) Roll(req Request) (Result, error) {
	return r.ResolveTotal(req, r.roller.RollPercentile())
}

// ResolveManual evaluates req against manually entered tens and units dice.
//
// Postcondition: Returns ErrIncompleteRoll when either digit is missing or malformed.
func (r *Resolver) ResolveManual(req Request, tens, units string) (Result, error) {
	total, ok := dice.ManualPercentile(tens, units)
	if !ok {
		return Result{}, fmt.Errorf("%w: tens %q units %q", ErrIncompleteRoll, tens, units)
	}
	return r.ResolveTotal(req, total)
}

// ResolveTotal evaluates req against an already known percentile total.
//
// Postcondition: Returns ErrIncompleteRoll when total is outside [1, 100].
func (r *Resolver) ResolveTotal(req Request, total int) (Result, error) {
	if total < 1 || total > 100 {
		return Result{}, fmt.Errorf("%w: total %d outside [1, 100]", ErrIncompleteRoll, total)
	}
	ev, err := r.Evaluate(req)
	if err != nil {
		return Result{}, err
	}

	res := Result{Evaluation: ev, Outcome: Resolve(ev.FinalTarget, total)}
	switch v := req.(type) {
	case WeaponRequest:
		if res.Success {
			res.Location = HitLocation(total)
		}
		res.MeltaRange = v.Ranged && v.Range.IsMeltaRange
	case PsychicRequest:
		res.Phenomena = v.RisksPhenomena() && dice.IsDouble(total)
	case ForceFieldRequest:
		res.Overloaded = v.Overload > 0 && total <= v.Overload
	}

	r.logger.Debug("roll resolved",
		zap.String("kind", string(ev.Kind)),
		zap.String("name", ev.Name),
		zap.Int("base_target", ev.BaseTarget),
		zap.Any("modifiers", modifier.NewSet(ev.Sources...).Breakdown()),
		zap.Int("final_target", ev.FinalTarget),
		zap.Int("roll", total),
		zap.Bool("success", res.Success),
		zap.Int("degrees", res.Degrees()),
	)
	return res, nil
}
