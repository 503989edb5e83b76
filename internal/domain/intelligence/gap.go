package intelligence

import (
	"math"

	"github.com/macromind/v1/internal/domain/nutrition"
)

// riskBucket maps a consumption ratio onto the display buckets.
func riskBucket(pct float64) RiskLevel {
	switch {
	case pct >= 0.85:
		return RiskHigh
	case pct >= 0.65:
		return RiskMedium
	default:
		return RiskLow
	}
}

// ComputeMacroGap distills a DailyVector into the numbers the decision
// pipeline acts on. It carries the vector's confidence through unchanged.
func ComputeMacroGap(v DailyVector) MacroGap {
	sugarPct := nutrition.PctOfMax(v.Consumed.SugarG, v.Targets.SugarG)
	sodiumPct := nutrition.PctOfMax(v.Consumed.SodiumMg, v.Targets.SodiumMg)

	return MacroGap{
		Consumed: v.Consumed,
		Targets:  v.Targets,

		ProteinGapG:       v.Remaining.ProteinG,
		FiberGapG:         v.Remaining.FiberG,
		CaloriesRemaining: v.Remaining.Calories,
		CaloriesExceeded:  math.Max(0, v.Consumed.Calories-v.Targets.Calories),

		SugarRisk:  riskBucket(sugarPct),
		SodiumRisk: riskBucket(sodiumPct),
		SugarPct:   sugarPct,
		SodiumPct:  sodiumPct,

		Confidence: v.Confidence,
	}
}
