package inventory

import "fmt"

// Registry holds weapon and armour definitions indexed by ID.
type Registry struct {
	weapons map[string]*WeaponDef
	armors  map[string]*ArmorDef
}

// NewRegistry returns an empty Registry.
//
// Postcondition: all internal maps are initialised.
func NewRegistry() *Registry {
	return &Registry{
		weapons: make(map[string]*WeaponDef),
		armors:  make(map[string]*ArmorDef),
	}
}

// RegisterWeapon validates and adds w to the registry.
//
// Precondition:  w must not be nil.
// Postcondition: Weapon(w.ID) returns w; returns error if w is invalid or w.ID already registered.
func (r *Registry) RegisterWeapon(w *WeaponDef) error {
	if err := w.Validate(); err != nil {
		return err
	}
	if _, exists := r.weapons[w.ID]; exists {
		return fmt.Errorf("inventory: weapon ID %q already registered", w.ID)
	}
	r.weapons[w.ID] = w
	return nil
}

// RegisterArmor validates and adds a to the registry.
//
// Precondition:  a must not be nil.
// Postcondition: Armor(a.ID) returns a; returns error if a is invalid or a.ID already registered.
func (r *Registry) RegisterArmor(a *ArmorDef) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if _, exists := r.armors[a.ID]; exists {
		return fmt.Errorf("inventory: armor ID %q already registered", a.ID)
	}
	r.armors[a.ID] = a
	return nil
}

// Weapon returns the WeaponDef for id and whether it was found.
func (r *Registry) Weapon(id string) (*WeaponDef, bool) {
	w, ok := r.weapons[id]
	return w, ok
}

// Armor returns the ArmorDef for id and whether it was found.
func (r *Registry) Armor(id string) (*ArmorDef, bool) {
	a, ok := r.armors[id]
	return a, ok
}
