// Package dice provides the randomness abstraction, percentile rolls and
// damage dice expressions used by the rules engine.
package dice

import (
	"fmt"
	"slices"
	"strings"
)

// Source is the randomness provider for dice rolls.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Result records one evaluated dice expression.
//
// Postcondition: Total() == sum(Kept) + Modifier; Dropped holds the dice
// discarded by a keep-highest suffix.
type Result struct {
	Expression string `yaml:"expression"`
	Kept       []int  `yaml:"kept"`
	Dropped    []int  `yaml:"dropped,omitempty"`
	Modifier   int    `yaml:"modifier"`
}

// Total returns the kept dice plus the flat modifier.
func (r Result) Total() int {
	total := r.Modifier
	for _, d := range r.Kept {
		total += d
	}
	return total
}

// String renders the result as "1d10+3: [7] +3 = 10".
func (r Result) String() string {
	var b strings.Builder
	if r.Expression != "" {
		b.WriteString(r.Expression)
		b.WriteString(": ")
	}
	fmt.Fprintf(&b, "%v", r.Kept)
	if len(r.Dropped) > 0 {
		fmt.Fprintf(&b, " (dropped %v)", r.Dropped)
	}
	fmt.Fprintf(&b, " %+d = %d", r.Modifier, r.Total())
	return b.String()
}

// Roll evaluates expr with src.
//
// Precondition: expr must come from Parse; src must be non-nil.
// Postcondition: len(Kept) == KeepHighest when set, else Count; Kept is
// ordered highest first when KeepHighest is set.
func Roll(expr Expression, src Source) Result {
	rolled := make([]int, expr.Count)
	for i := range rolled {
		rolled[i] = src.Intn(expr.Sides) + 1
	}
	res := Result{Expression: expr.Raw, Kept: rolled, Modifier: expr.Modifier}
	if expr.KeepHighest > 0 && expr.KeepHighest < len(rolled) {
		slices.SortFunc(rolled, func(a, b int) int { return b - a })
		kh := expr.KeepHighest
		res.Kept = rolled[:kh:kh]
		res.Dropped = rolled[kh:]
	}
	return res
}

// RollExpr parses expr and rolls it with src.
//
// Postcondition: Returns a Result or a parse error.
func RollExpr(expr string, src Source) (Result, error) {
	e, err := Parse(expr)
	if err != nil {
		return Result{}, err
	}
	return Roll(e, src), nil
}
