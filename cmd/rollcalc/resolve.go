package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/percentile/internal/game/character"
	"github.com/cory-johannsen/percentile/internal/game/condition"
	"github.com/cory-johannsen/percentile/internal/game/dice"
	"github.com/cory-johannsen/percentile/internal/game/inventory"
	"github.com/cory-johannsen/percentile/internal/game/modifier"
	"github.com/cory-johannsen/percentile/internal/game/rangeband"
	"github.com/cory-johannsen/percentile/internal/game/roll"
	"github.com/cory-johannsen/percentile/internal/game/session"
	"github.com/cory-johannsen/percentile/internal/scripting"
)

// resolveOutput is what the resolve command prints.
type resolveOutput struct {
	ID     string                 `yaml:"id"`
	Lookup *character.SkillLookup `yaml:"lookup,omitempty"`
	Result roll.Result            `yaml:"result"`
}

func (a *app) resolve(args []string) error {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	kind := fs.String("kind", string(roll.KindSimple), "test kind: simple, weapon, psychic or forceField")
	name := fs.String("name", "", "label for the test")
	target := fs.Int("target", 0, "base target; ignored when -sheet is given")
	sheetPath := fs.String("sheet", "", "YAML sheet to read the base target from")
	skill := fs.String("skill", "", "skill to test on the sheet")
	spec := fs.String("spec", "", "specialization name or index within -skill")
	charKey := fs.String("characteristic", "", "characteristic to test on the sheet, e.g. WS or agility")
	difficulty := fs.String("difficulty", "", "difficulty rung; empty is challenging")
	custom := fs.Int("mod", 0, "custom modifier")
	conditions := fs.String("conditions", "", "comma-separated situational condition ids")
	tens := fs.String("tens", "", "manually entered tens die")
	units := fs.String("units", "", "manually entered units die")
	seed := fs.Uint64("seed", 0, "seed for a deterministic roll; 0 uses crypto/rand")

	weaponID := fs.String("weapon", "", "armory weapon id for weapon tests")
	distance := fs.Float64("distance", 0, "grid distance to the target in metres")
	elevation := fs.Float64("elevation", 0, "elevation difference to the target in metres")
	aim := fs.String("aim", "", "aim: none, half or full")
	called := fs.String("called", "", "called shot location")
	rof := fs.String("rof", "", "rate of fire: single, semi, full or suppressing")
	attack := fs.String("attack", "", "melee attack type")
	stance := fs.String("stance", "", "melee stance")

	psyRating := fs.Int("psy", 0, "psy rating")
	effective := fs.Int("effective", 0, "effective rating the power is manifested at")
	focus := fs.Int("focus", 0, "power focus modifier")
	mode := fs.String("mode", string(roll.Fettered), "psychic mode: fettered, unfettered or push")

	rating := fs.Int("rating", 0, "force field protection rating")
	overload := fs.Int("overload", 0, "force field overload threshold")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var lookup *character.SkillLookup
	base := *target
	if *sheetPath != "" {
		l, err := a.sheetTarget(*sheetPath, *skill, *spec, *charKey)
		if err != nil {
			return err
		}
		lookup = &l
		base = l.Target
	}

	d, err := modifier.ParseDifficulty(*difficulty)
	if err != nil {
		return err
	}
	common := roll.Common{Name: *name, Difficulty: d, Custom: *custom}
	common.Extra, err = a.conditionSources(splitList(*conditions), *kind)
	if err != nil {
		return err
	}

	var req roll.Request
	switch roll.Kind(*kind) {
	case roll.KindSimple:
		req = roll.SimpleRequest{Common: common, Target: base}
	case roll.KindWeapon:
		wr := roll.WeaponRequest{
			Common:     common,
			Target:     base,
			Aim:        *aim,
			CalledShot: *called,
			RateOfFire: *rof,
			AttackType: *attack,
			Stance:     *stance,
		}
		if *weaponID != "" {
			armory, err := a.armory()
			if err != nil {
				return err
			}
			w, ok := armory.Weapon(*weaponID)
			if !ok {
				return fmt.Errorf("unknown weapon %q", *weaponID)
			}
			if wr.Name == "" {
				wr.Name = w.Name
			}
			wr.Ranged = w.IsRanged()
			wr.Range = rangeband.Calculate(rangeband.Input{
				Distance:    rangeband.Distance(*distance, *elevation),
				WeaponRange: float64(w.Range),
				Qualities:   w.Qualities,
				IsRanged:    w.IsRanged(),
			})
		}
		req = wr
	case roll.KindPsychic:
		req = roll.PsychicRequest{
			Common:          common,
			Willpower:       base,
			PsyRating:       *psyRating,
			EffectiveRating: *effective,
			Focus:           *focus,
			Mode:            roll.PsyMode(*mode),
		}
	case roll.KindForceField:
		req = roll.ForceFieldRequest{Name: *name, Rating: *rating, Overload: *overload}
	default:
		return fmt.Errorf("unknown test kind %q", *kind)
	}

	resolver, closeScripts, err := a.newResolver(*seed)
	if err != nil {
		return err
	}
	defer closeScripts()

	var res roll.Result
	if *tens != "" || *units != "" {
		res, err = resolver.ResolveManual(req, *tens, *units)
	} else {
		res, err = resolver.Roll(req)
	}
	if err != nil {
		return err
	}

	store := session.NewStore(a.cfg.Session.MaxAge)
	id := store.Put(res)
	return a.emit(resolveOutput{ID: id, Lookup: lookup, Result: res})
}

func (a *app) armory() (*inventory.Registry, error) {
	reg := inventory.Builtin()
	if path := a.cfg.Content.ArmoryFile; path != "" {
		var err error
		if reg, err = inventory.LoadArmory(path); err != nil {
			return nil, err
		}
	}
	if dir := a.cfg.Content.WeaponsDir; dir != "" {
		n, err := inventory.LoadWeaponsDir(dir, reg)
		if err != nil {
			return nil, err
		}
		a.logger.Debug("weapons loaded", zap.String("dir", dir), zap.Int("count", n))
	}
	return reg, nil
}

func (a *app) newResolver(seed uint64) (*roll.Resolver, func(), error) {
	src := dice.NewCryptoSource()
	if seed != 0 {
		src = dice.NewSeededSource(seed)
	}
	roller := dice.NewLoggedRoller(src, a.logger)
	opts := []roll.Option{roll.WithModifierCap(a.cfg.Rules.ModifierCap)}

	closer := func() {}
	if dir := a.cfg.Scripting.Dir; dir != "" {
		mgr := scripting.NewManager(roller, a.logger)
		if err := mgr.LoadDir(dir, a.cfg.Scripting.InstructionLimit); err != nil {
			return nil, nil, err
		}
		opts = append(opts, roll.WithProvider(mgr))
		closer = mgr.Close
	}
	return roll.NewResolver(roller, a.logger, opts...), closer, nil
}

func (a *app) conditionSources(ids []string, kind string) ([]modifier.Source, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	reg := condition.Builtin()
	if dir := a.cfg.Content.ConditionsDir; dir != "" {
		var err error
		if reg, err = condition.LoadDirectory(dir); err != nil {
			return nil, err
		}
	}
	sources, unknown := condition.Sources(reg, ids, kind)
	if len(unknown) == 0 {
		return sources, nil
	}
	known := make([]string, 0, len(reg.All()))
	for _, def := range reg.All() {
		known = append(known, def.ID)
	}
	for _, id := range unknown {
		a.logger.Warn("unknown situational condition", zap.String("condition", id), zap.Strings("known", known))
	}
	return sources, nil
}

func (a *app) sheetTarget(path, skill, spec, charKey string) (character.SkillLookup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return character.SkillLookup{}, fmt.Errorf("reading sheet %q: %w", path, err)
	}
	var sh character.Sheet
	if err := yaml.Unmarshal(data, &sh); err != nil {
		return character.SkillLookup{}, fmt.Errorf("parsing sheet %q: %w", path, err)
	}

	if skill == "" {
		k, ok := character.ParseKey(charKey)
		if !ok {
			return character.SkillLookup{}, fmt.Errorf("unknown characteristic %q", charKey)
		}
		total, found := sh.CharacteristicTarget(k)
		if !found {
			a.logger.Warn("characteristic missing from sheet", zap.String("characteristic", string(k)))
		}
		return character.SkillLookup{Characteristic: k, Target: total}, nil
	}

	policyName := a.cfg.Rules.CharacterUntrained
	if sh.Kind == character.KindNPC {
		policyName = a.cfg.Rules.NPCUntrained
	}
	policy, err := character.PolicyByName(policyName)
	if err != nil {
		return character.SkillLookup{}, err
	}
	l, ok := sh.SkillTarget(skill, spec, policy)
	if !ok {
		return character.SkillLookup{}, fmt.Errorf("skill %q not on sheet %q", skill, sh.Name)
	}
	if l.FellBack {
		a.logger.Warn("unknown specialization, using parent skill",
			zap.String("skill", skill),
			zap.String("specialization", spec),
		)
	}
	return l, nil
}
