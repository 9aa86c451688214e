package roll_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/percentile/internal/game/dice"
	"github.com/cory-johannsen/percentile/internal/game/modifier"
	"github.com/cory-johannsen/percentile/internal/game/rangeband"
	"github.com/cory-johannsen/percentile/internal/game/roll"
)

func TestResolve_Examples(t *testing.T) {
	o := roll.Resolve(55, 23)
	assert.True(t, o.Success)
	assert.Equal(t, 4, o.DegreesOfSuccess)
	assert.Equal(t, 0, o.DegreesOfFailure)

	o = roll.Resolve(40, 40)
	assert.True(t, o.Success)
	assert.Equal(t, 1, o.DegreesOfSuccess)

	o = roll.Resolve(40, 71)
	assert.False(t, o.Success)
	assert.Equal(t, 4, o.DegreesOfFailure)
	assert.Equal(t, -4, o.Degrees())
}

func TestResolve_EdgeRules(t *testing.T) {
	o := roll.Resolve(-30, 1)
	assert.True(t, o.Success, "1 always succeeds")
	assert.Equal(t, 1, o.DegreesOfSuccess)

	assert.False(t, roll.Resolve(99, 100).Success, "100 fails below target 100")
	assert.True(t, roll.Resolve(100, 100).Success)
	assert.True(t, roll.Resolve(120, 100).Success)
	assert.Equal(t, 3, roll.Resolve(120, 100).DegreesOfSuccess)
}

func TestProperty_Resolve_EdgeRules(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		target := rapid.IntRange(0, 100).Draw(rt, "target")
		assert.True(rt, roll.Resolve(target, 1).Success)
		assert.Equal(rt, target >= 100, roll.Resolve(target, 100).Success)
	})
}

func TestProperty_Resolve_ExactlyOneDegreeKind(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		target := rapid.IntRange(-60, 160).Draw(rt, "target")
		total := rapid.IntRange(1, 100).Draw(rt, "total")
		o := roll.Resolve(target, total)
		if o.Success {
			assert.GreaterOrEqual(rt, o.DegreesOfSuccess, 1)
			assert.Zero(rt, o.DegreesOfFailure)
		} else {
			assert.GreaterOrEqual(rt, o.DegreesOfFailure, 1)
			assert.Zero(rt, o.DegreesOfSuccess)
		}
	})
}

func TestProperty_Resolve_DegreesOfSuccess(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		target := rapid.IntRange(1, 99).Draw(rt, "target")
		total := rapid.IntRange(1, target).Draw(rt, "total")
		o := roll.Resolve(target, total)
		require.True(rt, o.Success)
		assert.Equal(rt, 1+(target-total)/10, o.DegreesOfSuccess)
		if total > 1 {
			assert.GreaterOrEqual(rt, roll.Resolve(target, total-1).DegreesOfSuccess, o.DegreesOfSuccess)
		}
	})
}

func TestOpposed(t *testing.T) {
	win := roll.Resolve(50, 10)   // 5 DoS
	small := roll.Resolve(40, 35) // 1 DoS
	fail := roll.Resolve(30, 80)

	assert.Equal(t, roll.SideA, roll.Opposed(&win, &small))
	assert.Equal(t, roll.SideB, roll.Opposed(&small, &win))
	assert.Equal(t, roll.SideA, roll.Opposed(&small, &fail), "failure loses to any success")
	assert.Equal(t, roll.NoWinner, roll.Opposed(&fail, &fail))
	assert.Equal(t, roll.SideA, roll.Opposed(&small, nil), "unopposed success stands")
	assert.Equal(t, roll.NoWinner, roll.Opposed(nil, &fail))
	assert.Equal(t, roll.NoWinner, roll.Opposed(nil, nil))

	highTarget := roll.Resolve(45, 40)
	assert.Equal(t, roll.SideB, roll.Opposed(&small, &highTarget), "ties go to the higher target")
	assert.Equal(t, roll.NoWinner, roll.Opposed(&small, &small))
}

func TestHitLocation(t *testing.T) {
	assert.Equal(t, roll.LocationHead, roll.HitLocation(10))
	assert.Equal(t, roll.LocationHead, roll.HitLocation(1))
	assert.Equal(t, roll.LocationLeftLeg, roll.HitLocation(100))
	assert.Equal(t, roll.LocationRightArm, roll.HitLocation(21))
	assert.Equal(t, roll.LocationLeftArm, roll.HitLocation(3))
	assert.Equal(t, roll.LocationBody, roll.HitLocation(44))
	assert.Equal(t, roll.LocationRightLeg, roll.HitLocation(37))
	assert.Equal(t, roll.LocationLeftLeg, roll.HitLocation(98))
}

type fixedProvider []modifier.Source

func (p fixedProvider) Modifiers(roll.Subject) []modifier.Source { return p }

func newResolver(t *testing.T, values []int, opts ...roll.Option) (*roll.Resolver, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)
	roller := dice.NewLoggedRoller(&dice.FixedSource{Values: values}, logger)
	return roll.NewResolver(roller, logger, opts...), logs
}

func TestResolver_SimpleRoll(t *testing.T) {
	r, logs := newResolver(t, []int{36})
	difficulty, err := modifier.ParseDifficulty("hard")
	require.NoError(t, err)

	res, err := r.Roll(roll.SimpleRequest{
		Common: roll.Common{Name: "Awareness", Difficulty: difficulty, Custom: 5},
		Target: 55,
	})
	require.NoError(t, err)
	assert.Equal(t, roll.KindSimple, res.Kind)
	assert.Equal(t, -15, res.Modifier)
	assert.Equal(t, 40, res.FinalTarget)
	assert.Equal(t, 37, res.Total)
	assert.True(t, res.Success)
	assert.Equal(t, 1, res.DegreesOfSuccess)

	entries := logs.FilterMessage("roll resolved").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(40), entries[0].ContextMap()["final_target"])
}

func TestResolver_DefaultDifficultyIsChallenging(t *testing.T) {
	r, _ := newResolver(t, nil)
	ev, err := r.Evaluate(roll.SimpleRequest{Target: 30})
	require.NoError(t, err)
	require.NotEmpty(t, ev.Sources)
	assert.Equal(t, modifier.KeyDifficulty, ev.Sources[0].Key)
	assert.Equal(t, 30, ev.FinalTarget)
}

func TestResolver_ModifierCap(t *testing.T) {
	r, _ := newResolver(t, nil, roll.WithModifierCap(60))
	trivial, err := modifier.ParseDifficulty("trivial")
	require.NoError(t, err)
	ev, err := r.Evaluate(roll.SimpleRequest{Common: roll.Common{Difficulty: trivial, Custom: 30}, Target: 20})
	require.NoError(t, err)
	assert.Equal(t, 60, ev.Modifier)
	assert.Equal(t, 80, ev.FinalTarget)
}

func TestResolver_ProviderSources(t *testing.T) {
	r, _ := newResolver(t, nil, roll.WithProvider(fixedProvider{{Key: "talent:sureStrike", Value: 10, Active: true}}))
	ev, err := r.Evaluate(roll.SimpleRequest{Target: 30})
	require.NoError(t, err)
	assert.Equal(t, 40, ev.FinalTarget)
}

func TestResolver_RangedWeapon(t *testing.T) {
	r, _ := newResolver(t, []int{36})
	rng := rangeband.Calculate(rangeband.Input{Distance: 2, WeaponRange: 20, Qualities: []string{"Melta"}, IsRanged: true})

	res, err := r.Roll(roll.WeaponRequest{
		Common:     roll.Common{Name: "Meltagun"},
		Target:     40,
		Ranged:     true,
		Range:      rng,
		Aim:        "half",
		RateOfFire: "single",
	})
	require.NoError(t, err)
	assert.Equal(t, 80, res.FinalTarget)
	assert.True(t, res.Success)
	assert.Equal(t, roll.LocationRightLeg, res.Location)
	assert.True(t, res.MeltaRange)
}

func TestResolver_MeleeWeaponIgnoresRange(t *testing.T) {
	r, _ := newResolver(t, []int{89})
	res, err := r.Roll(roll.WeaponRequest{
		Target:     45,
		Range:      rangeband.Result{Modifier: 30, IsMeltaRange: true},
		AttackType: "charge",
		Stance:     "defensive",
		CalledShot: "head",
	})
	require.NoError(t, err)
	assert.Equal(t, 25, res.FinalTarget)
	assert.False(t, res.Success)
	assert.Empty(t, res.Location)
	assert.False(t, res.MeltaRange)
}

func TestResolver_UnknownTableOption(t *testing.T) {
	r, _ := newResolver(t, nil)
	_, err := r.Evaluate(roll.WeaponRequest{Ranged: true, RateOfFire: "burst"})
	assert.Error(t, err)
}

func TestResolver_Psychic(t *testing.T) {
	r, _ := newResolver(t, []int{32})
	res, err := r.Roll(roll.PsychicRequest{
		Willpower:       40,
		PsyRating:       3,
		EffectiveRating: 5,
		Focus:           10,
		Mode:            roll.Push,
	})
	require.NoError(t, err)
	assert.Equal(t, 30, res.FinalTarget)
	assert.Equal(t, 33, res.Total)
	assert.False(t, res.Success)
	assert.True(t, res.Phenomena)

	r, _ = newResolver(t, []int{32})
	res, err = r.Roll(roll.PsychicRequest{Willpower: 40, PsyRating: 3, EffectiveRating: 2, Mode: roll.Fettered})
	require.NoError(t, err)
	assert.Equal(t, 50, res.FinalTarget)
	assert.False(t, res.Phenomena, "fettered powers never trigger phenomena")
}

func TestResolver_PsychicModes(t *testing.T) {
	r, _ := newResolver(t, nil)
	_, err := r.Evaluate(roll.PsychicRequest{Willpower: 40, Mode: "pushed"})
	assert.ErrorContains(t, err, "pushed")

	ev, err := r.Evaluate(roll.PsychicRequest{Willpower: 40, PsyRating: 2, EffectiveRating: 2})
	require.NoError(t, err, "an empty mode reads as fettered")
	assert.Equal(t, 40, ev.FinalTarget)

	assert.True(t, roll.Unfettered.Valid())
	assert.False(t, roll.PsyMode("Push").Valid(), "modes are case-sensitive")
}

func TestResolver_ForceField(t *testing.T) {
	r, _ := newResolver(t, []int{0})
	res, err := r.Roll(roll.ForceFieldRequest{Name: "Refractor", Rating: 30, Overload: 10})
	require.NoError(t, err)
	assert.Equal(t, 30, res.FinalTarget)
	assert.True(t, res.Success)
	assert.True(t, res.Overloaded)
	assert.Empty(t, res.Sources)
}

func TestResolver_ResolveManual(t *testing.T) {
	r, _ := newResolver(t, nil)
	res, err := r.ResolveManual(roll.SimpleRequest{Target: 99}, "0", "0")
	require.NoError(t, err)
	assert.Equal(t, 100, res.Total)
	assert.False(t, res.Success)

	_, err = r.ResolveManual(roll.SimpleRequest{Target: 50}, "", "4")
	assert.True(t, errors.Is(err, roll.ErrIncompleteRoll))
	_, err = r.ResolveManual(roll.SimpleRequest{Target: 50}, "x", "4")
	assert.ErrorIs(t, err, roll.ErrIncompleteRoll)
	_, err = r.ResolveTotal(roll.SimpleRequest{Target: 50}, 0)
	assert.ErrorIs(t, err, roll.ErrIncompleteRoll)
}

func TestResolveInput(t *testing.T) {
	total := 42
	out, ok := roll.ResolveInput(roll.Input{
		BaseTarget:  40,
		Modifiers:   map[string]int{"difficulty": 10, "aim": 10},
		RolledTotal: &total,
	}, 0)
	require.True(t, ok)
	assert.Equal(t, 60, out.FinalTarget)
	assert.True(t, out.Success)
	assert.Equal(t, 2, out.DegreesOfSuccess)

	out, ok = roll.ResolveInput(roll.Input{BaseTarget: 40, Modifiers: map[string]int{"aim": 20}}, 10)
	assert.False(t, ok)
	assert.Equal(t, 50, out.FinalTarget)
}
