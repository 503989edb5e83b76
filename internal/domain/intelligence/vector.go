package intelligence

import (
	"fmt"
	"math"

	"github.com/macromind/v1/internal/domain/nutrition"
)

// BuildDailyVector scales targets to the profile, subtracts consumption,
// and classifies at most one deficit, one over-risk, and one warning.
// A nil behavior summary means privacy mode or a brand-new member; the
// vector still computes, just with lower confidence.
func (e *Engine) BuildDailyVector(profile nutrition.ProfileSummary, consumed nutrition.Macros, targetsOverride *nutrition.Macros, behavior *nutrition.BehaviorSummary) DailyVector {
	targets := e.deriveTargets(profile, targetsOverride)
	consumed = consumed.Clamp()
	remaining := consumed.RemainingAgainst(targets)

	th := e.adaptedThresholds(behavior)

	v := DailyVector{
		Targets:   targets,
		Consumed:  consumed,
		Remaining: remaining,
		Behavior:  behavior,
	}
	v.DeficitOfDay = e.classifyDeficit(remaining, th)
	v.OverRisk = e.classifyRisk(consumed, targets, th)
	v.Warning = e.classifyWarning(consumed, targets, th, v.OverRisk)
	v.Confidence = vectorConfidence(profile, consumed, behavior)
	return v
}

// deriveTargets starts from the goal baseline, scales calories and protein
// by intensity then activity (rounding after each), then applies any
// positive per-field override.
func (e *Engine) deriveTargets(profile nutrition.ProfileSummary, override *nutrition.Macros) nutrition.Macros {
	t, ok := e.cfg.TargetsByGoal[profile.NormalizedGoal()]
	if !ok {
		t = e.cfg.TargetsByGoal[nutrition.GoalMaintain]
	}

	if m, ok := e.cfg.IntensityMultipliers[profile.Intensity]; ok && m > 0 {
		t.Calories = math.Round(t.Calories * m)
		t.ProteinG = math.Round(t.ProteinG * m)
	}
	if m, ok := e.cfg.ActivityMultipliers[profile.Activity]; ok && m > 0 {
		t.Calories = math.Round(t.Calories * m)
		t.ProteinG = math.Round(t.ProteinG * m)
	}

	if override != nil {
		if override.Calories > 0 {
			t.Calories = override.Calories
		}
		if override.ProteinG > 0 {
			t.ProteinG = override.ProteinG
		}
		if override.SugarG > 0 {
			t.SugarG = override.SugarG
		}
		if override.SodiumMg > 0 {
			t.SodiumMg = override.SodiumMg
		}
		if override.FiberG > 0 {
			t.FiberG = override.FiberG
		}
		if override.CarbsG > 0 {
			t.CarbsG = override.CarbsG
		}
		if override.FatG > 0 {
			t.FatG = override.FatG
		}
	}
	return t.Clamp()
}

// adaptedThresholds tightens the cut points when the 14-day behavior shows
// a sustained pattern, never past the configured floors.
func (e *Engine) adaptedThresholds(behavior *nutrition.BehaviorSummary) Thresholds {
	th := e.cfg.Thresholds
	if behavior == nil {
		return th
	}
	if behavior.HighSodiumDaysPct >= th.BehaviorSignalMinPct {
		th.SodiumRiskPct = math.Max(th.BehaviorSodiumFloorPct, th.SodiumRiskPct-th.BehaviorSodiumBoostPct)
	}
	if behavior.LowProteinDaysPct >= th.BehaviorSignalMinPct {
		th.ProteinDeficitG = math.Max(th.BehaviorProteinFloorG, th.ProteinDeficitG-th.BehaviorProteinBoostG)
	}
	return th
}

// classifyDeficit picks at most one deficit, protein before fiber.
func (e *Engine) classifyDeficit(remaining nutrition.Macros, th Thresholds) *Finding {
	if remaining.ProteinG >= th.ProteinDeficitG {
		return &Finding{
			Metric: MetricProtein,
			GapG:   remaining.ProteinG,
			Note:   e.capNote(fmt.Sprintf("%.0fg of protein still to go today", remaining.ProteinG)),
		}
	}
	if remaining.FiberG >= th.FiberDeficitG {
		return &Finding{
			Metric: MetricFiber,
			GapG:   remaining.FiberG,
			Note:   e.capNote(fmt.Sprintf("%.0fg of fiber still to go today", remaining.FiberG)),
		}
	}
	return nil
}

// classifyRisk picks at most one over-risk, sodium before sugar.
func (e *Engine) classifyRisk(consumed, targets nutrition.Macros, th Thresholds) *Finding {
	if pct := nutrition.PctOfMax(consumed.SodiumMg, targets.SodiumMg); pct >= th.SodiumRiskPct {
		return &Finding{
			Metric: MetricSodium,
			Pct:    pct,
			Note:   e.capNote(fmt.Sprintf("sodium at %.0f%% of today's cap", pct*100)),
		}
	}
	if pct := nutrition.PctOfMax(consumed.SugarG, targets.SugarG); pct >= th.SugarRiskPct {
		return &Finding{
			Metric: MetricSugar,
			Pct:    pct,
			Note:   e.capNote(fmt.Sprintf("sugar at %.0f%% of today's cap", pct*100)),
		}
	}
	return nil
}

// classifyWarning flags the approach band just above risk. It never
// duplicates the metric already surfaced as the over-risk.
func (e *Engine) classifyWarning(consumed, targets nutrition.Macros, th Thresholds, risk *Finding) *Finding {
	sodiumWarn := math.Min(0.9, th.SodiumRiskPct+0.1)
	if risk == nil || risk.Metric != MetricSodium {
		if pct := nutrition.PctOfMax(consumed.SodiumMg, targets.SodiumMg); pct >= sodiumWarn {
			return &Finding{
				Metric: MetricSodium,
				Pct:    pct,
				Note:   e.capNote("sodium is close to today's cap"),
			}
		}
	}
	if risk == nil || risk.Metric != MetricSugar {
		if pct := nutrition.PctOfMax(consumed.SugarG, targets.SugarG); pct >= 0.9 {
			return &Finding{
				Metric: MetricSugar,
				Pct:    pct,
				Note:   e.capNote("sugar is close to today's cap"),
			}
		}
	}
	return nil
}

// vectorConfidence grades how much signal backs the vector. A day with
// nothing logged starts at the conservative floor; a behavior summary
// and a sync profile each add a bit.
func vectorConfidence(profile nutrition.ProfileSummary, consumed nutrition.Macros, behavior *nutrition.BehaviorSummary) float64 {
	base := 0.35
	if consumed.Calories > 0 {
		base = 0.65
	}
	if behavior != nil {
		base += 0.15
	}
	if profile.Mode == nutrition.ModeSync {
		base += 0.05
	}
	return clamp01(base)
}

func (e *Engine) capNote(s string) string {
	max := e.cfg.UX.MaxSuggestionChars
	if max > 0 && len(s) > max {
		return s[:max]
	}
	return s
}
