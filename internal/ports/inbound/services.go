// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/macromind/v1/internal/domain/intelligence"
	"github.com/macromind/v1/internal/domain/nutrition"
)

// IntelligenceService defines the decision-pipeline use cases
type IntelligenceService interface {
	// GetDailyVector classifies the user's day against their targets.
	GetDailyVector(ctx context.Context, query VectorQuery) (*intelligence.DailyVector, error)

	// GetBestNextMeal runs the full pipeline: vector, gap, intent,
	// options, and execution plan. Intents are cached until they expire,
	// so a second call inside the same window returns the same plan.
	GetBestNextMeal(ctx context.Context, query NextMealQuery) (*NextMealResult, error)

	// GetDailyContract returns today's contract, computing and persisting
	// one if none exists yet.
	GetDailyContract(ctx context.Context, query ContractQuery) (*intelligence.DailyContract, error)

	// RefreshContractProgress re-evaluates the active contract against
	// current consumption.
	RefreshContractProgress(ctx context.Context, query ContractQuery) (*intelligence.DailyContract, error)
}

// VectorQuery identifies whose day to classify.
type VectorQuery struct {
	UserID          string
	MemberID        string
	At              time.Time
	TargetsOverride *nutrition.Macros
}

// NextMealQuery identifies whose next meal to decide.
type NextMealQuery struct {
	UserID   string
	MemberID string
	At       time.Time
}

// NextMealResult bundles the pipeline's artifacts for one response.
type NextMealResult struct {
	Intent  intelligence.BestNextMealIntent `json:"intent"`
	Options []intelligence.DishOption       `json:"options"`
	Plan    intelligence.ExecutionPlan      `json:"plan"`
}

// ContractQuery identifies whose contract to read or refresh.
type ContractQuery struct {
	UserID string
	At     time.Time
}

// LogbookService defines the meal logging use cases
type LogbookService interface {
	AppendLog(ctx context.Context, cmd AppendLogCommand) (*MealLogDTO, error)
	GetTodayTotals(ctx context.Context, userID string, at time.Time) (*DayTotalsDTO, error)
	GetLogsForDay(ctx context.Context, userID, localDay string) ([]*MealLogDTO, error)
	GetBehaviorSummary(ctx context.Context, userID string, at time.Time) (*nutrition.BehaviorSummary, error)
}

// AppendLogCommand contains data for logging one meal
type AppendLogCommand struct {
	UserID      string
	MemberID    string
	Macros      nutrition.Macros
	Description string
	Cuisine     string
	Window      string
	PlanID      string
	Estimate    bool
	LoggedAt    time.Time
}

// MealLogDTO is the transport view of a meal log entry
type MealLogDTO struct {
	ID          uuid.UUID        `json:"id"`
	UserID      string           `json:"user_id"`
	MemberID    string           `json:"member_id,omitempty"`
	LocalDay    string           `json:"local_day"`
	Window      string           `json:"window,omitempty"`
	Macros      nutrition.Macros `json:"macros"`
	Description string           `json:"description,omitempty"`
	Cuisine     string           `json:"cuisine,omitempty"`
	Source      string           `json:"source"`
	PlanID      string           `json:"plan_id,omitempty"`
	LoggedAt    time.Time        `json:"logged_at"`
}

// DayTotalsDTO is the rolled-up view of one day's consumption
type DayTotalsDTO struct {
	LocalDay string           `json:"local_day"`
	Macros   nutrition.Macros `json:"macros"`
	Meals    int              `json:"meals"`
}

// ProfileService defines the nutrition profile use cases
type ProfileService interface {
	UpsertProfile(ctx context.Context, cmd UpsertProfileCommand) (*nutrition.ProfileSummary, error)
	GetProfile(ctx context.Context, userID string) (*nutrition.ProfileSummary, error)
	DeleteProfile(ctx context.Context, userID string) error
}

// UpsertProfileCommand contains data for creating or replacing a profile
type UpsertProfileCommand struct {
	UserID      string
	MemberID    string
	Mode        nutrition.Mode
	Goal        nutrition.Goal
	Intensity   nutrition.Intensity
	Activity    nutrition.Activity
	EatingStyle nutrition.EatingStyle
	Cuisines    []string
	Consented   bool
}
