package dice

import (
	"strconv"
	"strings"
)

// RollPercentile returns a percentile result in [1, 100].
//
// Precondition: src must be non-nil.
func RollPercentile(src Source) int {
	return src.Intn(100) + 1
}

// ManualPercentile converts a manually entered pair of percentile dice into a
// total. Each digit must be a single decimal digit; "0" and "0" read as 100.
//
// Postcondition: Returns (total in [1,100], true), or (0, false) when either
// digit is missing or malformed.
func ManualPercentile(tens, units string) (int, bool) {
	t, ok := parseDigit(tens)
	if !ok {
		return 0, false
	}
	u, ok := parseDigit(units)
	if !ok {
		return 0, false
	}
	total := t*10 + u
	if total == 0 {
		return 100, true
	}
	return total, true
}

func parseDigit(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if len(s) != 1 {
		return 0, false
	}
	d, err := strconv.Atoi(s)
	if err != nil || d < 0 || d > 9 {
		return 0, false
	}
	return d, true
}

// Digits splits a percentile total into its tens and units dice, mapping 100
// back to 0/0.
//
// Precondition: total in [1, 100].
func Digits(total int) (tens, units int) {
	if total >= 100 {
		return 0, 0
	}
	return total / 10, total % 10
}

// IsDouble reports whether both percentile dice show the same face (11, 22, … 99, 100).
func IsDouble(total int) bool {
	t, u := Digits(total)
	return t == u
}
