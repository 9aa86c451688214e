package main

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/percentile/internal/game/npc"
	"github.com/cory-johannsen/percentile/internal/game/rangeband"
)

func (a *app) rangeCmd(args []string) error {
	fs := flag.NewFlagSet("range", flag.ContinueOnError)
	distance := fs.Float64("distance", 0, "grid distance to the target in metres")
	elevation := fs.Float64("elevation", 0, "elevation difference to the target in metres")
	weaponRange := fs.Float64("range", 0, "weapon or power base range in metres")
	qualities := fs.String("qualities", "", "comma-separated weapon qualities")
	melee := fs.Bool("melee", false, "the weapon is a melee weapon")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return a.emit(rangeband.Calculate(rangeband.Input{
		Distance:    rangeband.Distance(*distance, *elevation),
		WeaponRange: *weaponRange,
		Qualities:   splitList(*qualities),
		IsRanged:    !*melee,
	}))
}

func (a *app) newGenerator() (*npc.Generator, error) {
	armory, err := a.armory()
	if err != nil {
		return nil, err
	}
	presets := npc.BuiltinPresets()
	if path := a.cfg.Content.PresetsFile; path != "" {
		if presets, err = npc.LoadPresets(path); err != nil {
			return nil, err
		}
	}
	return npc.NewGenerator(armory, presets, a.logger)
}

func (a *app) generate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	var p npc.Params
	fs.StringVar(&p.Name, "name", "", "statblock name; empty derives one")
	fs.IntVar(&p.ThreatLevel, "threat", 5, "threat level (1-30)")
	fs.StringVar(&p.Role, "role", "bruiser", "role")
	fs.StringVar(&p.Type, "type", "troop", "combatant type")
	fs.StringVar(&p.Preset, "preset", "melee", "equipment preset")
	fs.BoolVar(&p.IsHorde, "horde", false, "attach a horde magnitude pool")
	if err := fs.Parse(args); err != nil {
		return err
	}

	g, err := a.newGenerator()
	if err != nil {
		return err
	}
	prof, err := g.Generate(p)
	if err != nil {
		return err
	}
	return a.emit(prof)
}

func (a *app) rescale(args []string) error {
	fs := flag.NewFlagSet("rescale", flag.ContinueOnError)
	in := fs.String("in", "", "YAML statblock produced by generate (required)")
	from := fs.Int("from", 0, "current threat level; 0 reads it from the statblock")
	to := fs.Int("to", 0, "new threat level (required)")
	parts := fs.String("scale", "", "comma-separated parts to scale: characteristics, wounds, skills, weapons, armour, magnitude; empty scales all")
	apply := fs.Bool("apply", false, "print the updated statblock instead of the update")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" || *to == 0 {
		return fmt.Errorf("%w: rescale needs -in and -to", errUsage)
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		return fmt.Errorf("reading statblock %q: %w", *in, err)
	}
	var prof npc.Profile
	if err := yaml.Unmarshal(data, &prof); err != nil {
		return fmt.Errorf("parsing statblock %q: %w", *in, err)
	}

	flags, err := parseScaleFlags(*parts)
	if err != nil {
		return err
	}
	current := *from
	if current == 0 {
		current = prof.ThreatLevel
	}
	u, err := npc.Rescale(&prof, current, *to, flags)
	if err != nil {
		return err
	}
	if *apply {
		u.Apply(&prof)
		return a.emit(&prof)
	}
	return a.emit(u)
}

func parseScaleFlags(s string) (npc.ScaleFlags, error) {
	names := splitList(s)
	if len(names) == 0 {
		return npc.AllScaleFlags(), nil
	}
	var f npc.ScaleFlags
	for _, n := range names {
		switch n {
		case "characteristics":
			f.Characteristics = true
		case "wounds":
			f.Wounds = true
		case "skills":
			f.Skills = true
		case "weapons":
			f.Weapons = true
		case "armour", "armor":
			f.Armour = true
		case "magnitude":
			f.Magnitude = true
		default:
			return npc.ScaleFlags{}, fmt.Errorf("unknown scale part %q", n)
		}
	}
	return f, nil
}
