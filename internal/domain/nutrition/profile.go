package nutrition

import "strings"

// Mode controls how much of a profile the backend may read.
type Mode string

const (
	ModePrivacy Mode = "privacy"
	ModeSync    Mode = "sync"
)

// Goal is the user's stated nutrition goal.
type Goal string

const (
	GoalLose     Goal = "lose"
	GoalMaintain Goal = "maintain"
	GoalGain     Goal = "gain"
)

// Intensity is how aggressively the user wants to pursue the goal.
type Intensity string

const (
	IntensityLow      Intensity = "low"
	IntensityStandard Intensity = "standard"
	IntensityHigh     Intensity = "high"
)

// Activity is the user's self-reported activity level.
type Activity string

const (
	ActivitySedentary Activity = "sedentary"
	ActivityLight     Activity = "light"
	ActivityModerate  Activity = "moderate"
	ActivityActive    Activity = "active"
)

// EatingStyle captures where the user usually sources meals.
type EatingStyle string

const (
	StyleBalanced    EatingStyle = "balanced"
	StyleHomeHeavy   EatingStyle = "home-heavy"
	StyleEatOutHeavy EatingStyle = "eat-out-heavy"
)

// ProfileSummary is the read-only view of a profile the engine consumes.
// It is built fresh per request; in privacy mode preference fields are
// empty and only the derived signals survive.
type ProfileSummary struct {
	UserID      string      `json:"userId"`
	MemberID    string      `json:"memberId,omitempty"`
	Mode        Mode        `json:"mode"`
	Goal        Goal        `json:"goal"`
	Intensity   Intensity   `json:"intensity"`
	Activity    Activity    `json:"activity"`
	EatingStyle EatingStyle `json:"eatingStyle"`
	Cuisines    []string    `json:"cuisines,omitempty"`
	Consented   bool        `json:"consented"`
}

// NormalizedGoal coerces an unknown goal to maintain.
func (p ProfileSummary) NormalizedGoal() Goal {
	switch p.Goal {
	case GoalLose, GoalMaintain, GoalGain:
		return p.Goal
	default:
		return GoalMaintain
	}
}

// NormalizeCuisines trims, lowercases, and dedupes a cuisine list while
// preserving first-seen order.
func NormalizeCuisines(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, c := range raw {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
