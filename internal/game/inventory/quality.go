package inventory

import (
	"strconv"
	"strings"
)

// Well-known weapon qualities read by the engine.
const (
	QualityGyroStabilised = "gyro-stabilised"
	QualityMelta          = "melta"
	QualityBlast          = "blast"
	QualityFlame          = "flame"
)

// Quality is a weapon quality with an optional rating, e.g. "blast(3)".
type Quality struct {
	Name   string
	Rating int // 0 when the quality has no rating
}

// QualitySet indexes qualities by lower-cased name.
type QualitySet map[string]Quality

// ParseQualities parses entries such as "Melta", "blast(3)" or "Gyro-Stabilised".
// Malformed ratings are kept as rating 0.
func ParseQualities(entries []string) QualitySet {
	set := make(QualitySet, len(entries))
	for _, raw := range entries {
		q := parseQuality(raw)
		if q.Name != "" {
			set[q.Name] = q
		}
	}
	return set
}

func parseQuality(raw string) Quality {
	s := strings.ToLower(strings.TrimSpace(raw))
	open := strings.IndexByte(s, '(')
	if open < 0 {
		return Quality{Name: s}
	}
	name := strings.TrimSpace(s[:open])
	inner := strings.TrimSuffix(s[open+1:], ")")
	rating, err := strconv.Atoi(strings.TrimSpace(inner))
	if err != nil {
		rating = 0
	}
	return Quality{Name: name, Rating: rating}
}

// Has reports whether the set carries name (case-insensitive).
func (s QualitySet) Has(name string) bool {
	_, ok := s[strings.ToLower(name)]
	return ok
}

// Get returns the quality named name.
func (s QualitySet) Get(name string) (Quality, bool) {
	q, ok := s[strings.ToLower(name)]
	return q, ok
}
