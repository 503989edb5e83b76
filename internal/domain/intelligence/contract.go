package intelligence

import (
	"fmt"
	"math"
)

// ContractKind names the single behavioral commitment picked for the day.
type ContractKind string

const (
	ContractProteinClose   ContractKind = "protein-close"
	ContractFiberRescue    ContractKind = "fiber-rescue"
	ContractCalorieCap     ContractKind = "calorie-cap"
	ContractCleanExecution ContractKind = "clean-execution"
)

// ContractStatus is the lifecycle of a daily contract.
type ContractStatus string

const (
	ContractDraft     ContractStatus = "draft"
	ContractActive    ContractStatus = "active"
	ContractCompleted ContractStatus = "completed"
	ContractFailed    ContractStatus = "failed"
	ContractExpired   ContractStatus = "expired"
)

// ContractMetric is the measurable the contract is judged against.
type ContractMetric struct {
	Name     string  `json:"name"`
	Operator string  `json:"operator"`
	Target   float64 `json:"target"`
	Unit     string  `json:"unit"`
}

// ContractProgress is a point-in-time reading against the metric.
type ContractProgress struct {
	Current float64 `json:"current"`
	Target  float64 `json:"target"`
	Pct     int     `json:"pct"`
}

// DailyContract is the one commitment surfaced per day.
type DailyContract struct {
	Kind      ContractKind     `json:"kind"`
	Statement string           `json:"statement"`
	Metric    ContractMetric   `json:"metric"`
	Progress  ContractProgress `json:"progress"`
	Playbook  []string         `json:"playbook"`
	Status    ContractStatus   `json:"status"`
}

// ComputeDailyContract picks exactly one contract for the day, in strict
// priority order: a large protein gap, then a fiber gap, then a calorie
// overage worth capping, then clean execution as the fallback.
func (e *Engine) ComputeDailyContract(gap MacroGap) DailyContract {
	switch {
	case gap.ProteinGapG >= 35:
		target := clampRange(gap.ProteinGapG, 35, 90)
		return DailyContract{
			Kind:      ContractProteinClose,
			Statement: fmt.Sprintf("Close %.0fg of protein before the day ends", target),
			Metric:    ContractMetric{Name: "protein_g", Operator: ">=", Target: target, Unit: "g"},
			Progress:  progressSnapshot(0, target),
			Playbook: []string{
				"Build every remaining meal around a protein",
				"A protein shake counts if dinner runs small",
			},
			Status: ContractDraft,
		}
	case gap.FiberGapG >= 10:
		target := clampRange(gap.FiberGapG, 10, 25)
		return DailyContract{
			Kind:      ContractFiberRescue,
			Statement: fmt.Sprintf("Get %.0fg of fiber in before the day ends", target),
			Metric:    ContractMetric{Name: "fiber_g", Operator: ">=", Target: target, Unit: "g"},
			Progress:  progressSnapshot(0, target),
			Playbook: []string{
				"Add a vegetable or legume side to the next meal",
				"Fruit over dessert tonight",
			},
			Status: ContractDraft,
		}
	case gap.CaloriesExceeded >= 250:
		target := clampRange(gap.CaloriesExceeded, 250, 900)
		return DailyContract{
			Kind:      ContractCalorieCap,
			Statement: fmt.Sprintf("Keep the rest of today under %.0f extra calories", target),
			Metric:    ContractMetric{Name: "calories_over", Operator: "<=", Target: target, Unit: "kcal"},
			Progress:  progressSnapshot(0, target),
			Playbook: []string{
				"Make the next meal the lightest of the day",
				"No liquid calories for the rest of the day",
			},
			Status: ContractDraft,
		}
	default:
		return DailyContract{
			Kind:      ContractCleanExecution,
			Statement: "Log every meal today, no exceptions",
			Metric:    ContractMetric{Name: "meals_logged", Operator: ">=", Target: 2, Unit: "meals"},
			Progress:  progressSnapshot(0, 2),
			Playbook: []string{
				"Log right after eating, not at night",
				"A rough estimate beats a missing entry",
			},
			Status: ContractDraft,
		}
	}
}

// EvaluateContractProgress re-reads progress against the contract's
// metric. It never mutates the contract.
func EvaluateContractProgress(contract DailyContract, current float64) ContractProgress {
	return progressSnapshot(current, contract.Metric.Target)
}

// progressSnapshot tolerates malformed inputs: a non-positive target or a
// NaN reading collapses to zero progress rather than propagating garbage.
func progressSnapshot(current, target float64) ContractProgress {
	if math.IsNaN(current) || math.IsInf(current, 0) || current < 0 {
		current = 0
	}
	p := ContractProgress{Current: current, Target: target}
	if target <= 0 {
		return p
	}
	pct := int(math.Round(current / target * 100))
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	p.Pct = pct
	return p
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
