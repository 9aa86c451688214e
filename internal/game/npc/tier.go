// Package npc derives combatant statblocks from a threat level and rescales
// them between threat levels.
package npc

import "math"

// MinThreat and MaxThreat bound the threat scale. Values outside are clamped.
const (
	MinThreat = 1
	MaxThreat = 30
)

// Tier is a band of threat levels sharing characteristic and wound baselines.
type Tier struct {
	Name string
	// Min and Max are the inclusive threat band.
	Min, Max int
	// CharMin and CharMax bound the base characteristic interpolated across the band.
	CharMin, CharMax int
	// Wounds is the base wound count at the bottom of the band.
	Wounds int
}

// Tiers lists the bands in ascending order. They cover [MinThreat, MaxThreat]
// without gaps or overlaps.
var Tiers = []Tier{
	{Name: "minor", Min: 1, Max: 5, CharMin: 25, CharMax: 30, Wounds: 8},
	{Name: "standard", Min: 6, Max: 10, CharMin: 30, CharMax: 35, Wounds: 12},
	{Name: "tough", Min: 11, Max: 15, CharMin: 35, CharMax: 40, Wounds: 18},
	{Name: "elite", Min: 16, Max: 20, CharMin: 40, CharMax: 45, Wounds: 25},
	{Name: "boss", Min: 21, Max: 30, CharMin: 45, CharMax: 55, Wounds: 40},
}

// ClampThreat clamps t to [MinThreat, MaxThreat].
func ClampThreat(t int) int {
	return min(MaxThreat, max(MinThreat, t))
}

// TierFor returns the tier of threat level t after clamping.
//
// Postcondition: TierFor(t).Min <= ClampThreat(t) <= TierFor(t).Max.
func TierFor(t int) Tier {
	t = ClampThreat(t)
	for _, tier := range Tiers {
		if t <= tier.Max {
			return tier
		}
	}
	return Tiers[len(Tiers)-1]
}

// Position returns where t sits inside its tier band, from 0 at the bottom to 1 at the top.
//
// Postcondition: 0 <= Position(t) <= 1.
func (tier Tier) Position(t int) float64 {
	if tier.Max <= tier.Min {
		return 0
	}
	pos := float64(ClampThreat(t)-tier.Min) / float64(tier.Max-tier.Min)
	return math.Max(0, math.Min(1, pos))
}

// BaseCharacteristic interpolates the tier's characteristic baseline at t.
func (tier Tier) BaseCharacteristic(t int) int {
	return tier.CharMin + round(tier.Position(t)*float64(tier.CharMax-tier.CharMin))
}

func round(f float64) int {
	return int(math.Round(f))
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
