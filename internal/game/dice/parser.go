package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// Expression represents a parsed dice expression ready to be rolled.
// Precondition: Count >= 1, Sides >= 2 after successful Parse.
type Expression struct {
	Raw         string // original input string
	Count       int    // number of dice
	Sides       int    // faces per die
	Modifier    int    // flat modifier (may be negative)
	KeepHighest int    // if > 0, keep only the N highest dice (e.g. 2d10kh1)
}

// String renders the expression in canonical form, e.g. "1d10+3" or "2d10kh1-1".
//
// Postcondition: Parse(e.String()) yields an Expression equal to e apart from Raw.
func (e Expression) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%dd%d", e.Count, e.Sides)
	if e.KeepHighest > 0 {
		fmt.Fprintf(&b, "kh%d", e.KeepHighest)
	}
	if e.Modifier != 0 {
		fmt.Fprintf(&b, "%+d", e.Modifier)
	}
	return b.String()
}

// WithModifier returns a copy of e whose flat modifier is shifted by delta.
// Raw is re-rendered so audit strings show the adjusted expression.
func (e Expression) WithModifier(delta int) Expression {
	e.Modifier += delta
	e.Raw = e.String()
	return e
}

// Max returns the highest total the expression can produce.
func (e Expression) Max() int {
	kept := e.Count
	if e.KeepHighest > 0 {
		kept = e.KeepHighest
	}
	return kept*e.Sides + e.Modifier
}

// Parse parses a dice expression string into an Expression.
// Supported forms: "d10", "2d10", "1d10+3", "1d5-1", "2d10kh1", "2d10kh1+4".
// Precondition: expr must be a non-empty string.
// Postcondition: Returns a non-nil Expression or a descriptive error.
func Parse(expr string) (Expression, error) {
	if expr == "" {
		return Expression{}, fmt.Errorf("dice: empty expression")
	}

	raw := expr
	s := strings.ToLower(strings.ReplaceAll(expr, " ", ""))

	dIdx := strings.Index(s, "d")
	if dIdx < 0 {
		return Expression{}, fmt.Errorf("dice: missing 'd' in expression %q", raw)
	}

	count := 1
	if countStr := s[:dIdx]; countStr != "" {
		n, err := strconv.Atoi(countStr)
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid die count in %q: %w", raw, err)
		}
		if n <= 0 {
			return Expression{}, fmt.Errorf("dice: invalid die count in %q: must be >= 1", raw)
		}
		count = n
	}

	body, modStr := splitModifier(s[dIdx+1:])

	sidesStr := body
	keepHighest := 0
	if khIdx := strings.Index(body, "kh"); khIdx >= 0 {
		sidesStr = body[:khIdx]
		kh, err := strconv.Atoi(body[khIdx+2:])
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid kh value in %q: %w", raw, err)
		}
		if kh <= 0 || kh >= count {
			return Expression{}, fmt.Errorf("dice: kh value %d must be > 0 and < count %d in %q", kh, count, raw)
		}
		keepHighest = kh
	}

	sides, err := strconv.Atoi(sidesStr)
	if err != nil {
		return Expression{}, fmt.Errorf("dice: invalid die sides in %q: %w", raw, err)
	}
	if sides < 2 {
		return Expression{}, fmt.Errorf("dice: invalid die sides in %q: must be >= 2", raw)
	}

	modifier := 0
	if modStr != "" {
		modifier, err = strconv.Atoi(modStr)
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid modifier in %q: %w", raw, err)
		}
	}

	return Expression{
		Raw:         raw,
		Count:       count,
		Sides:       sides,
		Modifier:    modifier,
		KeepHighest: keepHighest,
	}, nil
}

// splitModifier splits "10kh1+3" into ("10kh1", "+3"). A sign at position 0
// is treated as part of the body so malformed input reaches Atoi.
func splitModifier(rest string) (string, string) {
	for i := 1; i < len(rest); i++ {
		if rest[i] == '+' || rest[i] == '-' {
			return rest[:i], rest[i:]
		}
	}
	return rest, ""
}

// MustParse parses expr and panics on error. Used for fixed expressions.
//
// Precondition: expr must be a valid dice expression.
func MustParse(expr string) Expression {
	e, err := Parse(expr)
	if err != nil {
		panic("dice: MustParse " + expr + ": " + err.Error())
	}
	return e
}
