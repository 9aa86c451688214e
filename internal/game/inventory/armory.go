package inventory

import (
	"bytes"
	"embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed builtin/armory.yaml
var builtinFS embed.FS

// armoryFile is the on-disk layout of an armory: weapons and armour in one document.
type armoryFile struct {
	Weapons []*WeaponDef `yaml:"weapons"`
	Armor   []*ArmorDef  `yaml:"armor"`
}

// LoadArmoryFromBytes parses an armory document and registers every
// definition in reg. Unknown fields are rejected.
//
// Precondition: reg must be non-nil.
// Postcondition: Returns the first parse, validation or duplicate-id error.
func LoadArmoryFromBytes(data []byte, reg *Registry) error {
	var f armoryFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return fmt.Errorf("parsing armory YAML: %w", err)
	}
	for _, w := range f.Weapons {
		if err := reg.RegisterWeapon(w); err != nil {
			return err
		}
	}
	for _, a := range f.Armor {
		if err := reg.RegisterArmor(a); err != nil {
			return err
		}
	}
	return nil
}

// LoadArmory reads the armory document at path into a new Registry.
//
// Postcondition: Returns a populated Registry or an error.
func LoadArmory(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading armory %q: %w", path, err)
	}
	reg := NewRegistry()
	if err := LoadArmoryFromBytes(data, reg); err != nil {
		return nil, fmt.Errorf("loading armory %q: %w", path, err)
	}
	return reg, nil
}

// Builtin returns a Registry holding the armory shipped with the engine.
//
// Postcondition: Returns a non-nil Registry; panics only if the embedded content is malformed.
func Builtin() *Registry {
	data, err := builtinFS.ReadFile("builtin/armory.yaml")
	if err != nil {
		panic("inventory: builtin armory missing: " + err.Error())
	}
	reg := NewRegistry()
	if err := LoadArmoryFromBytes(data, reg); err != nil {
		panic("inventory: builtin armory is invalid: " + err.Error())
	}
	return reg
}
