// Package horde tracks the magnitude pool of group combatants.
package horde

import (
	"fmt"

	"github.com/cory-johannsen/percentile/internal/game/inventory"
)

// Magnitude is the horde's remaining numbers.
type Magnitude struct {
	Current int `yaml:"current"`
	Max     int `yaml:"max"`
}

// State is a horde's magnitude tracker.
//
// Invariant: 0 <= Magnitude.Current <= Magnitude.Max.
type State struct {
	Enabled   bool      `yaml:"enabled"`
	Magnitude Magnitude `yaml:"magnitude"`
}

// New returns an enabled horde at full magnitude.
//
// Precondition: limit > 0.
// Postcondition: Returns an error when limit <= 0.
func New(limit int) (*State, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("horde: max magnitude must be > 0, got %d", limit)
	}
	return &State{Enabled: true, Magnitude: Magnitude{Current: limit, Max: limit}}, nil
}

// Enable turns horde rules on.
func (s *State) Enable() { s.Enabled = true }

// Disable turns horde rules off. Magnitude is kept.
func (s *State) Disable() { s.Enabled = false }

// Toggle flips Enabled.
func (s *State) Toggle() { s.Enabled = !s.Enabled }

// ApplyMagnitudeDamage removes amount magnitude. Negative amounts are ignored.
//
// Postcondition: Current == max(0, Current-amount); returns the amount removed.
func (s *State) ApplyMagnitudeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	before := s.Magnitude.Current
	s.Magnitude.Current = max(0, before-amount)
	return before - s.Magnitude.Current
}

// RestoreMagnitude adds amount magnitude. Negative amounts are ignored.
//
// Postcondition: Current == min(Max, Current+amount); returns the amount restored.
func (s *State) RestoreMagnitude(amount int) int {
	if amount <= 0 {
		return 0
	}
	before := s.Magnitude.Current
	s.Magnitude.Current = min(s.Magnitude.Max, before+amount)
	return s.Magnitude.Current - before
}

// Broken reports whether the horde has no magnitude left. Callers decide what
// to do with a broken horde; nothing changes automatically.
func (s *State) Broken() bool {
	return s.Magnitude.Current == 0
}

// SetMax changes the maximum magnitude. Damage already taken carries over.
//
// Precondition: limit > 0.
// Postcondition: 0 <= Current <= Max.
func (s *State) SetMax(limit int) error {
	if limit <= 0 {
		return fmt.Errorf("horde: max magnitude must be > 0, got %d", limit)
	}
	damage := s.Magnitude.Max - s.Magnitude.Current
	s.Magnitude.Max = limit
	s.Magnitude.Current = min(limit, max(0, limit-damage))
	return nil
}

// MagnitudeDamage converts damaging hits into magnitude loss: one per hit,
// plus one more per hit for each of the blast and flame qualities.
//
// Postcondition: Returns 0 for hits <= 0.
func MagnitudeDamage(hits int, qualities inventory.QualitySet) int {
	if hits <= 0 {
		return 0
	}
	perHit := 1
	if qualities.Has(inventory.QualityBlast) {
		perHit++
	}
	if qualities.Has(inventory.QualityFlame) {
		perHit++
	}
	return hits * perHit
}
