package npc

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownType is returned for a combatant type that is not in Types.
var ErrUnknownType = errors.New("npc: unknown type")

// Type classifies what a combatant is and how durable it is.
type Type struct {
	Name string
	// WoundFactor multiplies the tier's wounds.
	WoundFactor float64
	// Horde types always carry a magnitude pool.
	Horde bool
}

// Types is keyed by type name.
var Types = map[string]Type{
	"troop":    {Name: "troop", WoundFactor: 0.8},
	"creature": {Name: "creature", WoundFactor: 1.0},
	"xenos":    {Name: "xenos", WoundFactor: 1.0},
	"elite":    {Name: "elite", WoundFactor: 1.2},
	"daemon":   {Name: "daemon", WoundFactor: 1.3},
	"swarm":    {Name: "swarm", WoundFactor: 1.5},
	"master":   {Name: "master", WoundFactor: 1.8},
	"horde":    {Name: "horde", WoundFactor: 2.0, Horde: true},
}

// singleEnemyType is the type a broken-up horde becomes.
const singleEnemyType = "troop"

// LookupType returns the type named name.
//
// Postcondition: Returns an error wrapping ErrUnknownType when name is not in Types.
func LookupType(name string) (Type, error) {
	t, ok := Types[name]
	if !ok {
		return Type{}, fmt.Errorf("%w %q", ErrUnknownType, name)
	}
	return t, nil
}

// TypeNames returns the type names in sorted order.
func TypeNames() []string {
	names := make([]string, 0, len(Types))
	for n := range Types {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
