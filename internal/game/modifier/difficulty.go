package modifier

import (
	"fmt"
	"strings"
)

// Difficulty is one rung of the test difficulty ladder.
type Difficulty struct {
	Name     string
	Label    string
	Modifier int
}

// Difficulties is the ladder from easiest to hardest. Exactly one applies to a test.
var Difficulties = []Difficulty{
	{Name: "trivial", Label: "Trivial", Modifier: 60},
	{Name: "easy", Label: "Easy", Modifier: 40},
	{Name: "routine", Label: "Routine", Modifier: 20},
	{Name: "ordinary", Label: "Ordinary", Modifier: 10},
	{Name: "challenging", Label: "Challenging", Modifier: 0},
	{Name: "difficult", Label: "Difficult", Modifier: -10},
	{Name: "hard", Label: "Hard", Modifier: -20},
	{Name: "veryHard", Label: "Very Hard", Modifier: -30},
	{Name: "hellish", Label: "Hellish", Modifier: -60},
}

// DefaultDifficulty is the difficulty used when none is selected.
var DefaultDifficulty = Difficulties[4]

// ParseDifficulty resolves a difficulty by name or label, case-insensitively,
// ignoring spaces. An empty name selects DefaultDifficulty.
//
// Postcondition: Returns a ladder entry or an error for unknown names.
func ParseDifficulty(name string) (Difficulty, error) {
	norm := strings.ReplaceAll(strings.TrimSpace(name), " ", "")
	if norm == "" {
		return DefaultDifficulty, nil
	}
	for _, d := range Difficulties {
		if strings.EqualFold(norm, d.Name) || strings.EqualFold(norm, strings.ReplaceAll(d.Label, " ", "")) {
			return d, nil
		}
	}
	return Difficulty{}, fmt.Errorf("modifier: unknown difficulty %q", name)
}

// Source returns the difficulty as an always-active source.
func (d Difficulty) Source() Source {
	return Source{Key: KeyDifficulty, Value: d.Modifier, Active: true}
}
