// Package condition defines situational conditions: named, YAML-defined
// toggles that each add one all-or-nothing modifier to a test.
package condition

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// ConditionDef is the static definition of a situational condition.
type ConditionDef struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Modifier    int    `yaml:"modifier"`
	// AppliesTo lists the roll kinds the condition affects; empty means every kind.
	AppliesTo []string `yaml:"applies_to"`
}

// Validate checks the definition's invariants.
//
// Postcondition: Returns nil iff ID and Name are non-empty and Modifier is non-zero.
func (d *ConditionDef) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("condition: id must not be empty")
	}
	if d.Name == "" {
		return fmt.Errorf("condition %q: name must not be empty", d.ID)
	}
	if d.Modifier == 0 {
		return fmt.Errorf("condition %q: modifier must not be zero", d.ID)
	}
	return nil
}

// Applies reports whether the condition affects rolls of the given kind.
func (d *ConditionDef) Applies(kind string) bool {
	if len(d.AppliesTo) == 0 {
		return true
	}
	for _, k := range d.AppliesTo {
		if strings.EqualFold(k, kind) {
			return true
		}
	}
	return false
}

// Registry holds all known ConditionDefs keyed by ID.
type Registry struct {
	defs map[string]*ConditionDef
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*ConditionDef)}
}

// Register adds def to the registry, overwriting any existing entry with the same ID.
// Precondition: def must not be nil and def.ID must not be empty.
func (r *Registry) Register(def *ConditionDef) {
	r.defs[def.ID] = def
}

// Get returns the ConditionDef for id, or (nil, false) if not found.
func (r *Registry) Get(id string) (*ConditionDef, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// All returns a snapshot slice of all registered ConditionDefs ordered by ID.
func (r *Registry) All() []*ConditionDef {
	out := make([]*ConditionDef, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LoadDefFromBytes parses and validates a single ConditionDef. Unknown fields are rejected.
//
// Postcondition: Returns a validated definition or an error.
func LoadDefFromBytes(data []byte) (*ConditionDef, error) {
	var def ConditionDef
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("parsing condition YAML: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// LoadFS reads every *.yaml file in dir of fsys as one ConditionDef.
//
// Postcondition: Returns a non-nil Registry, or an error if any file fails to parse or validate.
func LoadFS(fsys fs.FS, dir string) (*Registry, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading condition dir %q: %w", dir, err)
	}
	reg := NewRegistry()
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		p := path.Join(dir, e.Name())
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		def, err := LoadDefFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", p, err)
		}
		reg.Register(def)
	}
	return reg, nil
}

// LoadDirectory reads every *.yaml file in dir and returns a populated Registry.
// Precondition: dir must be a readable directory.
// Postcondition: Returns a non-nil Registry, or an error if any file fails to parse.
func LoadDirectory(dir string) (*Registry, error) {
	return LoadFS(os.DirFS(dir), ".")
}

// Builtin returns the registry of conditions shipped with the engine.
//
// Postcondition: Returns a non-nil Registry; panics only if the embedded content is malformed.
func Builtin() *Registry {
	reg, err := LoadFS(builtinFS, "builtin")
	if err != nil {
		panic("condition: builtin content is invalid: " + err.Error())
	}
	return reg
}
