package intelligence

import (
	"time"

	"github.com/macromind/v1/internal/domain/nutrition"
)

// RiskLevel buckets a confidence or exposure value for display.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Metric names the nutrient a finding is about.
type Metric string

const (
	MetricProtein Metric = "protein"
	MetricFiber   Metric = "fiber"
	MetricSodium  Metric = "sodium"
	MetricSugar   Metric = "sugar"
)

// Finding is one classified signal on the daily vector: the metric, how
// far off it is, and a short human-readable note.
type Finding struct {
	Metric Metric  `json:"metric"`
	GapG   float64 `json:"gap_g,omitempty"`
	Pct    float64 `json:"pct,omitempty"`
	Note   string  `json:"note"`
}

// DailyVector is the classified state of a member's day: targets after
// goal/intensity/activity scaling, consumed totals, remaining room, and at
// most one finding per slot.
type DailyVector struct {
	Targets   nutrition.Macros `json:"targets"`
	Consumed  nutrition.Macros `json:"consumed"`
	Remaining nutrition.Macros `json:"remaining"`

	DeficitOfDay *Finding `json:"deficit_of_day,omitempty"`
	OverRisk     *Finding `json:"over_risk,omitempty"`
	Warning      *Finding `json:"warning,omitempty"`

	Confidence float64 `json:"confidence"`

	Behavior *nutrition.BehaviorSummary `json:"behavior,omitempty"`
}

// MacroGap is the actionable distillation of a DailyVector: what still
// needs closing and what must not be pushed further today.
type MacroGap struct {
	Consumed nutrition.Macros `json:"consumed"`
	Targets  nutrition.Macros `json:"targets"`

	ProteinGapG       float64 `json:"protein_gap_g"`
	FiberGapG         float64 `json:"fiber_gap_g"`
	CaloriesRemaining float64 `json:"calories_remaining"`
	CaloriesExceeded  float64 `json:"calories_exceeded"`

	SugarRisk  RiskLevel `json:"sugar_risk"`
	SodiumRisk RiskLevel `json:"sodium_risk"`
	SugarPct   float64   `json:"sugar_pct"`
	SodiumPct  float64   `json:"sodium_pct"`

	Confidence float64 `json:"confidence"`
}

// TimeWindow is the coarse meal slot derived from local time.
type TimeWindow string

const (
	WindowBreakfast TimeWindow = "breakfast"
	WindowLunch     TimeWindow = "lunch"
	WindowSnack     TimeWindow = "snack"
	WindowDinner    TimeWindow = "dinner"
)

// Fallback behaviors when gap confidence is too low to recommend outright.
const (
	FallbackAskOneQuestion  = "ask-one-question"
	FallbackTwoSafeDefaults = "show-two-safe-defaults"
)

// DecisionPolicy bounds how the client may act on an intent.
type DecisionPolicy struct {
	MaxOptions              int    `json:"max_options"`
	FallbackIfLowConfidence string `json:"fallback_if_low_confidence"`
}

// IntentContext is everything the downstream pipeline needs to synthesize
// options without re-reading the member's state.
type IntentContext struct {
	TimeWindow TimeWindow                 `json:"time_window"`
	Cuisine    string                     `json:"cuisine,omitempty"`
	Goal       nutrition.Goal             `json:"goal"`
	Gap        MacroGap                   `json:"gap"`
	Behavior   *nutrition.BehaviorSummary `json:"behavior,omitempty"`
}

// BestNextMealIntent is the contract between gap analysis and option
// synthesis. It carries a stable identity and a hard expiry.
type BestNextMealIntent struct {
	IntentID    string         `json:"intent_id"`
	Mode        nutrition.Mode `json:"mode"`
	GeneratedAt time.Time      `json:"generated_at"`
	ExpiresAt   time.Time      `json:"expires_at"`

	Context IntentContext  `json:"context"`
	Policy  DecisionPolicy `json:"policy"`

	UserID      string                `json:"user_id,omitempty"`
	MemberID    string                `json:"member_id,omitempty"`
	EatingStyle nutrition.EatingStyle `json:"eating_style,omitempty"`
}

// Channel is how a dish gets onto the member's plate.
type Channel string

const (
	ChannelEatOut Channel = "eatout"
	ChannelHome   Channel = "home"
	ChannelHybrid Channel = "hybrid"
)

// Handoff carries ready-made queries for external surfaces.
type Handoff struct {
	MapsQuery     string `json:"maps_query,omitempty"`
	DeliveryQuery string `json:"delivery_query,omitempty"`
}

// DishOption is one concrete recommendation derived from an intent.
type DishOption struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Why         string   `json:"why"`
	Tags        []string `json:"tags,omitempty"`
	Confidence  float64  `json:"confidence"`
	Channel     Channel  `json:"channel"`
	SearchKey   string   `json:"search_key,omitempty"`
	Constraints []string `json:"constraints,omitempty"`
	Handoff     *Handoff `json:"handoff,omitempty"`
}

// Quantity is one line of a cook plan's shopping/portion list.
type Quantity struct {
	Ingredient string  `json:"ingredient"`
	Grams      float64 `json:"grams"`
	Notes      string  `json:"notes,omitempty"`
}

// PrepStep is one ordered step of a cook plan.
type PrepStep struct {
	Order   int    `json:"order"`
	Text    string `json:"text"`
	TempC   *int   `json:"temp_c,omitempty"`
	Minutes *int   `json:"minutes,omitempty"`
}

// ModularPrepPlan is a home-cooking plan sized from the remaining gaps.
type ModularPrepPlan struct {
	Dish         string     `json:"dish"`
	TotalMinutes int        `json:"total_minutes"`
	Quantities   []Quantity `json:"quantities"`
	Steps        []PrepStep `json:"steps"`
	Constraints  []string   `json:"constraints,omitempty"`
}

// PlanAction is a client affordance attached to an execution plan.
type PlanAction struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
}

// PlanMeta carries the plan's derived confidence and expiry.
type PlanMeta struct {
	Confidence   float64   `json:"confidence"`
	ExpiresAt    time.Time `json:"expires_at"`
	PrimaryRoute Channel   `json:"primary_route"`
}

// ExecutionPlan is the final, renderable output of the pipeline: one
// primary option, an optional secondary, micro-steps, and actions.
type ExecutionPlan struct {
	PlanID   string `json:"plan_id"`
	IntentID string `json:"intent_id"`

	Primary   DishOption  `json:"primary"`
	Secondary *DishOption `json:"secondary,omitempty"`

	MicroSteps []string     `json:"micro_steps"`
	Actions    []PlanAction `json:"actions"`

	CookPlan *ModularPrepPlan `json:"cook_plan,omitempty"`

	Meta PlanMeta `json:"meta"`
}
