package npc

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/percentile/internal/game/inventory"
)

//go:embed builtin/presets.yaml
var builtinFS embed.FS

// ErrUnknownPreset is returned for an equipment preset id that is not loaded.
var ErrUnknownPreset = errors.New("npc: unknown equipment preset")

// Preset is a fixed weapon and armour loadout referenced by armory ids.
type Preset struct {
	ID      string   `yaml:"id"`
	Name    string   `yaml:"name"`
	Weapons []string `yaml:"weapons"`
	// Armor is an armory id; empty means unarmoured.
	Armor string `yaml:"armor,omitempty"`
}

// Validate checks the preset's own fields.
//
// Postcondition: Returns nil iff ID and Name are set and at least one weapon is listed.
func (p *Preset) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("npc preset: id must not be empty")
	}
	if p.Name == "" {
		return fmt.Errorf("npc preset %q: name must not be empty", p.ID)
	}
	if len(p.Weapons) == 0 {
		return fmt.Errorf("npc preset %q: at least one weapon is required", p.ID)
	}
	return nil
}

// Check verifies every armory id the preset references exists in reg.
//
// Precondition: reg must be non-nil.
func (p *Preset) Check(reg *inventory.Registry) error {
	for _, id := range p.Weapons {
		if _, ok := reg.Weapon(id); !ok {
			return fmt.Errorf("npc preset %q: unknown weapon %q", p.ID, id)
		}
	}
	if p.Armor != "" {
		if _, ok := reg.Armor(p.Armor); !ok {
			return fmt.Errorf("npc preset %q: unknown armor %q", p.ID, p.Armor)
		}
	}
	return nil
}

// Presets holds equipment presets keyed by id.
type Presets struct {
	byID map[string]*Preset
}

// Get returns the preset with id.
//
// Postcondition: Returns an error wrapping ErrUnknownPreset when id is not loaded.
func (ps *Presets) Get(id string) (*Preset, error) {
	p, ok := ps.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownPreset, id)
	}
	return p, nil
}

// IDs returns the loaded preset ids in sorted order.
func (ps *Presets) IDs() []string {
	ids := make([]string, 0, len(ps.byID))
	for id := range ps.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Check verifies every preset against the armory.
func (ps *Presets) Check(reg *inventory.Registry) error {
	for _, id := range ps.IDs() {
		if err := ps.byID[id].Check(reg); err != nil {
			return err
		}
	}
	return nil
}

type presetFile struct {
	Presets []*Preset `yaml:"presets"`
}

// LoadPresetsFromBytes parses a presets document. Unknown fields are rejected.
//
// Postcondition: Returns validated presets, or an error on parse failure,
// an invalid preset, or a duplicate id.
func LoadPresetsFromBytes(data []byte) (*Presets, error) {
	var f presetFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing presets YAML: %w", err)
	}
	ps := &Presets{byID: make(map[string]*Preset, len(f.Presets))}
	for _, p := range f.Presets {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := ps.byID[p.ID]; dup {
			return nil, fmt.Errorf("npc preset %q: duplicate id", p.ID)
		}
		ps.byID[p.ID] = p
	}
	return ps, nil
}

// LoadPresets reads a presets document from path.
//
// Postcondition: Returns validated presets or an error.
func LoadPresets(path string) (*Presets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading presets %q: %w", path, err)
	}
	ps, err := LoadPresetsFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading presets %q: %w", path, err)
	}
	return ps, nil
}

// BuiltinPresets returns the presets shipped with the engine.
//
// Postcondition: Returns non-nil presets; panics only if the embedded content is malformed.
func BuiltinPresets() *Presets {
	data, err := builtinFS.ReadFile("builtin/presets.yaml")
	if err != nil {
		panic("npc: builtin presets missing: " + err.Error())
	}
	ps, err := LoadPresetsFromBytes(data)
	if err != nil {
		panic("npc: builtin presets are invalid: " + err.Error())
	}
	return ps
}
