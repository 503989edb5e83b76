package nutrition

// BehaviorSummary is the optional rolling 14-day summary computed from log
// history. The engine only reads it; percentages are 0..1 fractions of
// observed days.
type BehaviorSummary struct {
	DaysObserved int `json:"daysObserved"`

	AvgCalories float64 `json:"avgCalories"`
	AvgProteinG float64 `json:"avgProteinG"`
	AvgSugarG   float64 `json:"avgSugarG"`
	AvgSodiumMg float64 `json:"avgSodiumMg"`
	AvgFiberG   float64 `json:"avgFiberG"`

	HighSodiumDaysPct  float64 `json:"highSodiumDaysPct"`
	HighSugarDaysPct   float64 `json:"highSugarDaysPct"`
	LowProteinDaysPct  float64 `json:"lowProteinDaysPct"`
	LowFiberDaysPct    float64 `json:"lowFiberDaysPct"`
	LateEatingPct      float64 `json:"lateEatingPct"`
	OverCalorieDaysPct float64 `json:"overCalorieDaysPct"`

	CommonCuisine string `json:"commonCuisine,omitempty"`
	CommonWindow  string `json:"commonWindow,omitempty"`
}

// Sanitize clamps every percentage signal into [0,1] and averages to
// non-negative finite values so downstream math stays total.
func (b BehaviorSummary) Sanitize() BehaviorSummary {
	b.AvgCalories = clampField(b.AvgCalories)
	b.AvgProteinG = clampField(b.AvgProteinG)
	b.AvgSugarG = clampField(b.AvgSugarG)
	b.AvgSodiumMg = clampField(b.AvgSodiumMg)
	b.AvgFiberG = clampField(b.AvgFiberG)

	b.HighSodiumDaysPct = clampPct(b.HighSodiumDaysPct)
	b.HighSugarDaysPct = clampPct(b.HighSugarDaysPct)
	b.LowProteinDaysPct = clampPct(b.LowProteinDaysPct)
	b.LowFiberDaysPct = clampPct(b.LowFiberDaysPct)
	b.LateEatingPct = clampPct(b.LateEatingPct)
	b.OverCalorieDaysPct = clampPct(b.OverCalorieDaysPct)

	if b.DaysObserved < 0 {
		b.DaysObserved = 0
	}
	return b
}

func clampPct(v float64) float64 {
	v = clampField(v)
	if v > 1 {
		return 1
	}
	return v
}
