package npc_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/percentile/internal/game/character"
	"github.com/cory-johannsen/percentile/internal/game/dice"
	"github.com/cory-johannsen/percentile/internal/game/inventory"
	"github.com/cory-johannsen/percentile/internal/game/npc"
)

func newGenerator(t testing.TB) *npc.Generator {
	t.Helper()
	g, err := npc.NewGenerator(inventory.Builtin(), npc.BuiltinPresets(), zap.NewNop())
	require.NoError(t, err)
	return g
}

func TestTierFor(t *testing.T) {
	cases := map[int]string{
		-4: "minor", 0: "minor", 1: "minor", 5: "minor",
		6: "standard", 10: "standard",
		11: "tough", 15: "tough",
		16: "elite", 20: "elite",
		21: "boss", 30: "boss", 31: "boss", 99: "boss",
	}
	for threat, want := range cases {
		assert.Equal(t, want, npc.TierFor(threat).Name, "threat %d", threat)
	}
}

func TestTiers_ContiguousCover(t *testing.T) {
	next := npc.MinThreat
	for _, tier := range npc.Tiers {
		assert.Equal(t, next, tier.Min, "tier %s starts where the previous ended", tier.Name)
		assert.GreaterOrEqual(t, tier.Max, tier.Min)
		next = tier.Max + 1
	}
	assert.Equal(t, npc.MaxThreat+1, next)
}

func TestProperty_TierFor_ContainsThreat(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		threat := rapid.IntRange(-50, 100).Draw(rt, "threat")
		tier := npc.TierFor(threat)
		c := npc.ClampThreat(threat)
		assert.LessOrEqual(rt, tier.Min, c)
		assert.GreaterOrEqual(rt, tier.Max, c)
		pos := tier.Position(threat)
		assert.GreaterOrEqual(rt, pos, 0.0)
		assert.LessOrEqual(rt, pos, 1.0)
	})
}

func TestTrainingFor(t *testing.T) {
	assert.Equal(t, character.Trained, npc.TrainingFor(1))
	assert.Equal(t, character.Trained, npc.TrainingFor(10))
	assert.Equal(t, character.Plus10, npc.TrainingFor(11))
	assert.Equal(t, character.Plus10, npc.TrainingFor(20))
	assert.Equal(t, character.Plus20, npc.TrainingFor(21))
}

func TestMovementFor(t *testing.T) {
	assert.Equal(t, npc.Movement{Half: 3, Full: 6, Charge: 9, Run: 18}, npc.MovementFor(3))
	assert.Equal(t, npc.Movement{}, npc.MovementFor(-1))
}

func TestGenerate_BruiserScenario(t *testing.T) {
	g := newGenerator(t)
	p, err := g.Generate(npc.Params{ThreatLevel: 10, Role: "bruiser", Type: "troop", Preset: "melee"})
	require.NoError(t, err)

	assert.Equal(t, "standard", p.Tier)
	assert.Equal(t, "standard bruiser", p.Name)
	ws, _ := p.Characteristics.Total(character.WeaponSkill)
	fel, _ := p.Characteristics.Total(character.Fellowship)
	assert.Equal(t, 45, ws)
	assert.Equal(t, 31, fel)
	assert.Greater(t, ws, fel)

	// (12 + 5) * 0.8
	assert.Equal(t, npc.Wounds{Max: 14, Value: 14}, p.Wounds)
	assert.Equal(t, 5, p.Armour, "flak armour 4 + floor(10/10)")
	require.Len(t, p.Weapons, 2)
	assert.Equal(t, "chainsword", p.Weapons[0].ID)
	assert.Equal(t, "1d10+4", p.Weapons[0].Damage)
	assert.Equal(t, 3, p.Weapons[0].Penetration)
	assert.Nil(t, p.Horde)

	for _, name := range []string{"athletics", "intimidate", "parry", "awareness", "dodge"} {
		s, ok := p.Skills[name]
		require.True(t, ok, name)
		assert.Equal(t, character.Trained, s.Level(), name)
	}

	ag, _ := p.Characteristics.Bonus(character.Agility)
	assert.Equal(t, npc.MovementFor(ag), p.Movement)
}

func TestGenerate_LowThreatSkipsUniversalSkills(t *testing.T) {
	g := newGenerator(t)
	p, err := g.Generate(npc.Params{ThreatLevel: 3, Role: "sniper", Type: "xenos", Preset: "ranged"})
	require.NoError(t, err)
	_, ok := p.Skills["awareness"]
	assert.False(t, ok)
	_, ok = p.Skills["dodge"]
	assert.False(t, ok)
}

func TestGenerate_Horde(t *testing.T) {
	g := newGenerator(t)
	p, err := g.Generate(npc.Params{ThreatLevel: 8, Role: "bruiser", Type: "horde", Preset: "unarmed"})
	require.NoError(t, err)
	require.NotNil(t, p.Horde)
	assert.True(t, p.IsHorde())
	assert.Equal(t, 70, p.Horde.Magnitude.Max)
	assert.Equal(t, 0, p.Armour)

	p, err = g.Generate(npc.Params{ThreatLevel: 2, Role: "support", Type: "troop", Preset: "support", IsHorde: true})
	require.NoError(t, err)
	require.NotNil(t, p.Horde)
	assert.Equal(t, 40, p.Horde.Magnitude.Max)
}

func TestGenerate_ClampsThreat(t *testing.T) {
	g := newGenerator(t)
	p, err := g.Generate(npc.Params{ThreatLevel: 45, Role: "commander", Type: "master", Preset: "heavy", Name: "Warlord"})
	require.NoError(t, err)
	assert.Equal(t, 30, p.ThreatLevel)
	assert.Equal(t, "boss", p.Tier)
	assert.Equal(t, "Warlord", p.Name)
	assert.Equal(t, character.Plus20, p.Skills["command"].Level())
}

func TestGenerate_UnknownSelections(t *testing.T) {
	g := newGenerator(t)
	_, err := g.Generate(npc.Params{ThreatLevel: 5, Role: "bard", Type: "troop", Preset: "melee"})
	assert.True(t, errors.Is(err, npc.ErrUnknownRole))
	_, err = g.Generate(npc.Params{ThreatLevel: 5, Role: "bruiser", Type: "golem", Preset: "melee"})
	assert.ErrorIs(t, err, npc.ErrUnknownType)
	_, err = g.Generate(npc.Params{ThreatLevel: 5, Role: "bruiser", Type: "troop", Preset: "siege"})
	assert.ErrorIs(t, err, npc.ErrUnknownPreset)
}

func TestGenerate_Logs(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	g, err := npc.NewGenerator(inventory.Builtin(), npc.BuiltinPresets(), zap.New(core))
	require.NoError(t, err)
	_, err = g.Generate(npc.Params{ThreatLevel: 12, Role: "caster", Type: "daemon", Preset: "caster"})
	require.NoError(t, err)
	entries := logs.FilterMessage("npc generated").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "tough", entries[0].ContextMap()["tier"])
}

func TestProperty_Generate_Bounds(t *testing.T) {
	g := newGenerator(t)
	rapid.Check(t, func(rt *rapid.T) {
		p, err := g.Generate(npc.Params{
			ThreatLevel: rapid.IntRange(-5, 40).Draw(rt, "threat"),
			Role:        rapid.SampledFrom(npc.RoleNames()).Draw(rt, "role"),
			Type:        rapid.SampledFrom(npc.TypeNames()).Draw(rt, "type"),
			Preset:      rapid.SampledFrom(npc.BuiltinPresets().IDs()).Draw(rt, "preset"),
			IsHorde:     rapid.Bool().Draw(rt, "horde"),
		})
		require.NoError(rt, err)
		for _, k := range character.Keys {
			v, ok := p.Characteristics.Total(k)
			require.True(rt, ok)
			assert.GreaterOrEqual(rt, v, npc.MinCharacteristic)
			assert.LessOrEqual(rt, v, npc.MaxCharacteristic)
		}
		assert.GreaterOrEqual(rt, p.Wounds.Max, 1)
		assert.LessOrEqual(rt, p.Armour, inventory.MaxArmor)
		for _, w := range p.Weapons {
			_, err := dice.Parse(w.Damage)
			assert.NoError(rt, err)
		}
	})
}

func TestRescale_NoChangeIsNoOp(t *testing.T) {
	g := newGenerator(t)
	rapid.Check(t, func(rt *rapid.T) {
		threat := rapid.IntRange(1, 30).Draw(rt, "threat")
		p, err := g.Generate(npc.Params{
			ThreatLevel: threat,
			Role:        rapid.SampledFrom(npc.RoleNames()).Draw(rt, "role"),
			Type:        "horde",
			Preset:      rapid.SampledFrom(npc.BuiltinPresets().IDs()).Draw(rt, "preset"),
		})
		require.NoError(rt, err)
		before := *p
		beforeWeapons := append([]npc.Weapon(nil), p.Weapons...)
		beforeMag := p.Horde.Magnitude

		u, err := npc.Rescale(p, threat, threat, npc.AllScaleFlags())
		require.NoError(rt, err)
		for k, v := range u.Characteristics {
			assert.Equal(rt, p.Characteristics[k].Base, v)
		}
		u.Apply(p)

		assert.Equal(rt, before.Wounds, p.Wounds)
		assert.Equal(rt, before.Armour, p.Armour)
		assert.Equal(rt, beforeMag, p.Horde.Magnitude)
		assert.Equal(rt, beforeWeapons, p.Weapons)
		assert.Equal(rt, before.Tier, p.Tier)
	})
}

func TestRescale_Up(t *testing.T) {
	g := newGenerator(t)
	p, err := g.Generate(npc.Params{ThreatLevel: 10, Role: "bruiser", Type: "troop", Preset: "melee"})
	require.NoError(t, err)

	assert.InDelta(t, 1.5, npc.ScaleFactor(10, 20), 1e-9)
	u, err := npc.Rescale(p, 10, 20, npc.AllScaleFlags())
	require.NoError(t, err)
	assert.Equal(t, 20, u.ThreatLevel)
	assert.Equal(t, "elite", u.Tier)
	assert.Equal(t, 68, u.Characteristics[character.WeaponSkill])
	assert.Equal(t, 47, u.Characteristics[character.Fellowship]) // round(31*1.5)=46.5→47
	require.NotNil(t, u.Wounds)
	assert.Equal(t, 21, u.Wounds.Max)
	assert.Equal(t, 20, u.SkillBonuses["parry"])
	require.Len(t, u.Weapons, 2)
	assert.Equal(t, "1d10+9", u.Weapons[0].Damage)
	assert.Equal(t, 5, u.Weapons[0].Penetration)
	require.NotNil(t, u.Armour)
	assert.Equal(t, 8, *u.Armour) // round(5*1.5)=7.5→8
	assert.Nil(t, u.Magnitude)

	u.Apply(p)
	assert.Equal(t, 20, p.ThreatLevel)
	assert.Equal(t, 20, p.Skills["parry"].Bonus)
	assert.Equal(t, "1d10+9", p.Weapons[0].Damage)
}

func TestRescale_DownClamps(t *testing.T) {
	g := newGenerator(t)
	p, err := g.Generate(npc.Params{ThreatLevel: 30, Role: "bruiser", Type: "troop", Preset: "unarmed"})
	require.NoError(t, err)

	u, err := npc.Rescale(p, 30, 1, npc.AllScaleFlags())
	require.NoError(t, err)
	for k, v := range u.Characteristics {
		assert.GreaterOrEqual(t, v, npc.MinCharacteristic, string(k))
	}
	assert.GreaterOrEqual(t, u.Wounds.Max, 1)
	assert.GreaterOrEqual(t, *u.Armour, 0)
	for _, w := range u.Weapons {
		assert.GreaterOrEqual(t, w.Penetration, 0)
	}
	// floor(-29/2) = -15
	assert.Equal(t, "1d5-11", u.Weapons[0].Damage)
}

func TestRescale_FlagsSelectParts(t *testing.T) {
	g := newGenerator(t)
	p, err := g.Generate(npc.Params{ThreatLevel: 5, Role: "sniper", Type: "troop", Preset: "ranged"})
	require.NoError(t, err)
	u, err := npc.Rescale(p, 5, 15, npc.ScaleFlags{Wounds: true})
	require.NoError(t, err)
	assert.Nil(t, u.Characteristics)
	assert.Nil(t, u.SkillBonuses)
	assert.Nil(t, u.Weapons)
	assert.Nil(t, u.Armour)
	assert.NotNil(t, u.Wounds)

	ws := p.Characteristics[character.BallisticSkill]
	u.Apply(p)
	assert.Equal(t, ws, p.Characteristics[character.BallisticSkill])
	assert.Equal(t, "tough", p.Tier)
}

func TestConvertToSingleEnemy(t *testing.T) {
	g := newGenerator(t)
	p, err := g.Generate(npc.Params{ThreatLevel: 6, Role: "bruiser", Type: "horde", Preset: "melee"})
	require.NoError(t, err)
	p.Horde.ApplyMagnitudeDamage(1000)
	require.True(t, p.Horde.Broken())

	p.ConvertToSingleEnemy()
	assert.False(t, p.IsHorde())
	assert.Equal(t, "troop", p.Type)
}

func TestProfile_Sheet(t *testing.T) {
	g := newGenerator(t)
	p, err := g.Generate(npc.Params{ThreatLevel: 12, Role: "bruiser", Type: "elite", Preset: "melee"})
	require.NoError(t, err)
	sh := p.Sheet()
	assert.Equal(t, character.KindNPC, sh.Kind)
	lookup, ok := sh.SkillTarget("parry", "", character.HalfCharacteristicPolicy{})
	require.True(t, ok)
	ws, _ := p.Characteristics.Total(character.WeaponSkill)
	assert.Equal(t, ws+10, lookup.Target)
}

func TestLoadPresets(t *testing.T) {
	ps, err := npc.LoadPresetsFromBytes([]byte(`
presets:
  - id: duelist
    name: Duelist
    weapons: [chainsword, laspistol]
`))
	require.NoError(t, err)
	p, err := ps.Get("duelist")
	require.NoError(t, err)
	assert.Empty(t, p.Armor)
	assert.NoError(t, ps.Check(inventory.Builtin()))

	_, err = npc.LoadPresetsFromBytes([]byte("presets:\n  - id: x\n    name: X\n"))
	assert.Error(t, err, "a preset needs a weapon")
	_, err = npc.LoadPresetsFromBytes([]byte("presets:\n  - id: x\n    name: X\n    weapons: [a]\n  - id: x\n    name: Y\n    weapons: [b]\n"))
	assert.Error(t, err, "duplicate ids")

	bad, err := npc.LoadPresetsFromBytes([]byte("presets:\n  - id: x\n    name: X\n    weapons: [plasma_cannon]\n"))
	require.NoError(t, err)
	_, err = npc.NewGenerator(inventory.Builtin(), bad, zap.NewNop())
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("presets:\n  - id: a\n    name: A\n    weapons: [lasgun]\n    armor: carapace\n"), 0644))
	ps, err = npc.LoadPresets(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ps.IDs())
}

func TestBuiltinPresets(t *testing.T) {
	ps := npc.BuiltinPresets()
	assert.Equal(t, []string{"caster", "heavy", "melee", "mixed", "ranged", "support", "unarmed"}, ps.IDs())
	assert.NoError(t, ps.Check(inventory.Builtin()))
}
