// Package nutrition contains the core value objects shared by the logbook
// and the intelligence engine: macro vectors, profile summaries, and the
// rolling behavior summary.
package nutrition

import "math"

// Macros is the seven-field macro vector tracked for every day.
// All engine code treats the fields as non-negative after clamping.
type Macros struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	SugarG   float64 `json:"sugar_g"`
	SodiumMg float64 `json:"sodium_mg"`
	FiberG   float64 `json:"fiber_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// Clamp returns a copy with every field coerced to a finite, non-negative
// value. Malformed numeric input becomes 0 rather than an error.
func (m Macros) Clamp() Macros {
	return Macros{
		Calories: clampField(m.Calories),
		ProteinG: clampField(m.ProteinG),
		SugarG:   clampField(m.SugarG),
		SodiumMg: clampField(m.SodiumMg),
		FiberG:   clampField(m.FiberG),
		CarbsG:   clampField(m.CarbsG),
		FatG:     clampField(m.FatG),
	}
}

// Add returns the elementwise sum of two vectors.
func (m Macros) Add(other Macros) Macros {
	return Macros{
		Calories: m.Calories + other.Calories,
		ProteinG: m.ProteinG + other.ProteinG,
		SugarG:   m.SugarG + other.SugarG,
		SodiumMg: m.SodiumMg + other.SodiumMg,
		FiberG:   m.FiberG + other.FiberG,
		CarbsG:   m.CarbsG + other.CarbsG,
		FatG:     m.FatG + other.FatG,
	}
}

// RemainingAgainst returns max(0, target-consumed) per field, with the
// receiver as the consumed vector.
func (m Macros) RemainingAgainst(targets Macros) Macros {
	return Macros{
		Calories: remainingField(targets.Calories, m.Calories),
		ProteinG: remainingField(targets.ProteinG, m.ProteinG),
		SugarG:   remainingField(targets.SugarG, m.SugarG),
		SodiumMg: remainingField(targets.SodiumMg, m.SodiumMg),
		FiberG:   remainingField(targets.FiberG, m.FiberG),
		CarbsG:   remainingField(targets.CarbsG, m.CarbsG),
		FatG:     remainingField(targets.FatG, m.FatG),
	}
}

// IsZero reports whether every field is zero.
func (m Macros) IsZero() bool {
	return m == Macros{}
}

func clampField(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func remainingField(target, consumed float64) float64 {
	r := clampField(target) - clampField(consumed)
	if r < 0 {
		return 0
	}
	return r
}

// PctOfMax returns consumed/max, or 0 when max is not positive. Used for
// risk bucketing against target maximums (sugar, sodium).
func PctOfMax(consumed, max float64) float64 {
	consumed = clampField(consumed)
	max = clampField(max)
	if max <= 0 {
		return 0
	}
	return consumed / max
}
