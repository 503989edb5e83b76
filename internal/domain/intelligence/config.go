// Package intelligence implements the deterministic nutrition intelligence
// engine: daily vector classification, macro gap analysis, the best-next-meal
// decision pipeline, and the daily contract. Every function is a pure, total
// function of its arguments plus an injectable clock; nothing here performs
// I/O, uses randomness, or retains state between calls.
package intelligence

import "github.com/macromind/v1/internal/domain/nutrition"

// Config holds the static tunable knobs of the engine. A Config is
// immutable once built; callers that need different knobs pass a fresh one.
type Config struct {
	TargetsByGoal map[nutrition.Goal]nutrition.Macros

	// Target multipliers, applied to calories and protein in this order:
	// intensity first, activity second, each result rounded to the nearest
	// integer before the next multiplier is applied.
	IntensityMultipliers map[nutrition.Intensity]float64
	ActivityMultipliers  map[nutrition.Activity]float64

	Thresholds Thresholds
	UX         UXCaps
	Windows    WindowBrackets

	IntentTTLMinutes  int
	DefaultMaxOptions int
}

// WindowBrackets are the hour boundaries of the coarse meal slots. An
// hour below BreakfastUntil is breakfast, below LunchUntil lunch, below
// SnackUntil snack, anything later dinner.
type WindowBrackets struct {
	BreakfastUntil int
	LunchUntil     int
	SnackUntil     int
}

// Thresholds holds the classification cut points.
type Thresholds struct {
	ProteinDeficitG float64
	FiberDeficitG   float64
	SodiumRiskPct   float64
	SugarRiskPct    float64

	// Behavior adaptation: how far a 14-day pattern can tighten the cut
	// points, and the floors it can never cross.
	BehaviorSodiumBoostPct float64
	BehaviorSodiumFloorPct float64
	BehaviorProteinBoostG  float64
	BehaviorProteinFloorG  float64
	BehaviorSignalMinPct   float64
}

// UXCaps bound output shapes so the client never renders clutter.
type UXCaps struct {
	MaxBullets         int
	MaxSuggestionChars int
	MaxTags            int
	MaxConstraints     int
	MaxMicroSteps      int
}

// DefaultConfig returns the representative defaults. Intensity scales the
// calorie/protein targets toward the goal; activity scales them toward
// expenditure.
func DefaultConfig() Config {
	return Config{
		TargetsByGoal: map[nutrition.Goal]nutrition.Macros{
			nutrition.GoalLose:     {Calories: 1800, ProteinG: 130, SugarG: 40, SodiumMg: 2300, FiberG: 28, CarbsG: 180, FatG: 60},
			nutrition.GoalMaintain: {Calories: 2200, ProteinG: 110, SugarG: 40, SodiumMg: 2300, FiberG: 28, CarbsG: 250, FatG: 75},
			nutrition.GoalGain:     {Calories: 2600, ProteinG: 120, SugarG: 40, SodiumMg: 2300, FiberG: 28, CarbsG: 300, FatG: 85},
		},
		IntensityMultipliers: map[nutrition.Intensity]float64{
			nutrition.IntensityLow:      0.95,
			nutrition.IntensityStandard: 1.0,
			nutrition.IntensityHigh:     1.1,
		},
		ActivityMultipliers: map[nutrition.Activity]float64{
			nutrition.ActivitySedentary: 0.95,
			nutrition.ActivityLight:     1.0,
			nutrition.ActivityModerate:  1.05,
			nutrition.ActivityActive:    1.1,
		},
		Thresholds: Thresholds{
			ProteinDeficitG:        25,
			FiberDeficitG:          8,
			SodiumRiskPct:          0.8,
			SugarRiskPct:           0.8,
			BehaviorSodiumBoostPct: 0.1,
			BehaviorSodiumFloorPct: 0.65,
			BehaviorProteinBoostG:  10,
			BehaviorProteinFloorG:  10,
			BehaviorSignalMinPct:   0.6,
		},
		UX: UXCaps{
			MaxBullets:         3,
			MaxSuggestionChars: 160,
			MaxTags:            2,
			MaxConstraints:     6,
			MaxMicroSteps:      6,
		},
		Windows: WindowBrackets{
			BreakfastUntil: 10,
			LunchUntil:     14,
			SnackUntil:     17,
		},
		IntentTTLMinutes:  10,
		DefaultMaxOptions: 3,
	}
}

// normalized fills zero-valued knobs from the defaults so a partially
// overridden Config still behaves.
func (c Config) normalized() Config {
	def := DefaultConfig()
	if len(c.TargetsByGoal) == 0 {
		c.TargetsByGoal = def.TargetsByGoal
	}
	if len(c.IntensityMultipliers) == 0 {
		c.IntensityMultipliers = def.IntensityMultipliers
	}
	if len(c.ActivityMultipliers) == 0 {
		c.ActivityMultipliers = def.ActivityMultipliers
	}
	if c.Thresholds == (Thresholds{}) {
		c.Thresholds = def.Thresholds
	}
	if c.UX == (UXCaps{}) {
		c.UX = def.UX
	}
	if c.Windows == (WindowBrackets{}) {
		c.Windows = def.Windows
	}
	if c.IntentTTLMinutes <= 0 {
		c.IntentTTLMinutes = def.IntentTTLMinutes
	}
	if c.DefaultMaxOptions != 2 && c.DefaultMaxOptions != 3 {
		c.DefaultMaxOptions = def.DefaultMaxOptions
	}
	return c
}

// Engine evaluates the pipeline against one Config.
type Engine struct {
	cfg Config
}

// NewEngine builds an engine with the given knobs; zero-valued sections
// fall back to DefaultConfig.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg.normalized()}
}

// Config returns the engine's effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
