package condition

import "github.com/cory-johannsen/percentile/internal/game/modifier"

// SourcePrefix prefixes the modifier key of every condition source.
const SourcePrefix = modifier.KeySituational + ":"

// Sources converts the active condition ids into modifier sources for a roll
// of the given kind. Conditions that do not apply to kind are returned as
// inactive sources so the breakdown still shows them.
//
// Postcondition: len(sources)+len(unknown) == len(active); unknown lists ids
// missing from the registry, in input order.
func Sources(reg *Registry, active []string, kind string) (sources []modifier.Source, unknown []string) {
	for _, id := range active {
		def, ok := reg.Get(id)
		if !ok {
			unknown = append(unknown, id)
			continue
		}
		sources = append(sources, modifier.Source{
			Key:    SourcePrefix + def.ID,
			Value:  def.Modifier,
			Active: def.Applies(kind),
		})
	}
	return sources, unknown
}
