// Package modifier collects named modifier sources into the single signed
// offset applied to a target number.
package modifier

import (
	"fmt"
	"sort"
)

// Well-known source keys. Keys are free-form; these are the ones the engine emits.
const (
	KeyDifficulty  = "difficulty"
	KeySituational = "situational"
	KeyCustom      = "modifier"
	KeyRange       = "range"
	KeyAim         = "aim"
	KeyCalledShot  = "calledShot"
	KeyRateOfFire  = "rateOfFire"
	KeyAttackType  = "attackType"
	KeyStance      = "stance"
	KeyPsyRating   = "psyRating"
	KeyFocus       = "focus"
)

// Source is one named, all-or-nothing contribution to a test.
type Source struct {
	Key    string `yaml:"key"`
	Value  int    `yaml:"value"`
	Active bool   `yaml:"active"`
}

// String renders the source as "key:+10" (inactive sources are suffixed "(off)").
func (s Source) String() string {
	if !s.Active {
		return fmt.Sprintf("%s:%+d(off)", s.Key, s.Value)
	}
	return fmt.Sprintf("%s:%+d", s.Key, s.Value)
}

// Set is an ordered list of sources. Order is kept for auditing only; the
// total does not depend on it. Sources are never mutually exclusive.
type Set struct {
	sources []Source
}

// NewSet returns a Set holding srcs in order.
func NewSet(srcs ...Source) *Set {
	return &Set{sources: append([]Source(nil), srcs...)}
}

// Add appends an active source.
func (s *Set) Add(key string, value int) *Set {
	return s.Append(Source{Key: key, Value: value, Active: true})
}

// Toggle appends a source whose activity is decided by the caller's toggle state.
func (s *Set) Toggle(key string, value int, active bool) *Set {
	return s.Append(Source{Key: key, Value: value, Active: active})
}

// Append appends srcs unchanged.
func (s *Set) Append(srcs ...Source) *Set {
	s.sources = append(s.sources, srcs...)
	return s
}

// Sources returns a copy of the sources in insertion order.
func (s *Set) Sources() []Source {
	return append([]Source(nil), s.sources...)
}

// Len returns the number of sources, active or not.
func (s *Set) Len() int { return len(s.sources) }

// Total returns the sum of every active source.
//
// Postcondition: Total() == Aggregate(s.Sources()).
func (s *Set) Total() int {
	return Aggregate(s.sources)
}

// Capped returns Total clamped to [-limit, +limit]; limit <= 0 disables the cap.
func (s *Set) Capped(limit int) int {
	t := s.Total()
	if limit <= 0 {
		return t
	}
	if t > limit {
		return limit
	}
	if t < -limit {
		return -limit
	}
	return t
}

// Breakdown returns the active sources as a key → value map. Repeated keys are summed.
func (s *Set) Breakdown() map[string]int {
	out := make(map[string]int, len(s.sources))
	for _, src := range s.sources {
		if src.Active {
			out[src.Key] += src.Value
		}
	}
	return out
}

// Aggregate returns sum(value for source if active).
func Aggregate(sources []Source) int {
	total := 0
	for _, src := range sources {
		if src.Active {
			total += src.Value
		}
	}
	return total
}

// FromMap builds a Set of active sources from a key → value record, ordered by key.
func FromMap(m map[string]int) *Set {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	s := &Set{sources: make([]Source, 0, len(keys))}
	for _, k := range keys {
		s.Add(k, m[k])
	}
	return s
}
