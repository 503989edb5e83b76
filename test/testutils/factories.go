// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/macromind/v1/internal/domain/nutrition"
	"github.com/macromind/v1/internal/ports/inbound"
)

// ProfileBuilder provides a fluent interface for building test profiles
type ProfileBuilder struct {
	summary nutrition.ProfileSummary
}

// NewProfileBuilder creates a profile builder with sync-mode defaults
func NewProfileBuilder() *ProfileBuilder {
	faker := gofakeit.New(time.Now().UnixNano())

	return &ProfileBuilder{
		summary: nutrition.ProfileSummary{
			UserID:      fmt.Sprintf("u-%s", faker.LetterN(8)),
			Mode:        nutrition.ModeSync,
			Goal:        nutrition.GoalMaintain,
			Intensity:   nutrition.IntensityStandard,
			Activity:    nutrition.ActivityLight,
			EatingStyle: nutrition.StyleBalanced,
			Cuisines:    []string{"italian", "japanese"},
			Consented:   true,
		},
	}
}

// WithUserID sets the profile owner
func (pb *ProfileBuilder) WithUserID(userID string) *ProfileBuilder {
	pb.summary.UserID = userID
	return pb
}

// WithMode sets the privacy mode
func (pb *ProfileBuilder) WithMode(mode nutrition.Mode) *ProfileBuilder {
	pb.summary.Mode = mode
	return pb
}

// WithGoal sets the nutrition goal
func (pb *ProfileBuilder) WithGoal(goal nutrition.Goal) *ProfileBuilder {
	pb.summary.Goal = goal
	return pb
}

// WithIntensity sets the goal intensity
func (pb *ProfileBuilder) WithIntensity(intensity nutrition.Intensity) *ProfileBuilder {
	pb.summary.Intensity = intensity
	return pb
}

// WithActivity sets the activity level
func (pb *ProfileBuilder) WithActivity(activity nutrition.Activity) *ProfileBuilder {
	pb.summary.Activity = activity
	return pb
}

// WithEatingStyle sets the eating style
func (pb *ProfileBuilder) WithEatingStyle(style nutrition.EatingStyle) *ProfileBuilder {
	pb.summary.EatingStyle = style
	return pb
}

// WithCuisines sets the preferred cuisines
func (pb *ProfileBuilder) WithCuisines(cuisines ...string) *ProfileBuilder {
	pb.summary.Cuisines = cuisines
	return pb
}

// WithConsent sets the behavior analysis consent flag
func (pb *ProfileBuilder) WithConsent(consented bool) *ProfileBuilder {
	pb.summary.Consented = consented
	return pb
}

// Build returns the profile summary
func (pb *ProfileBuilder) Build() nutrition.ProfileSummary {
	return pb.summary
}

// MacrosFactory generates deterministic pseudo-random macro snapshots
type MacrosFactory struct {
	faker *gofakeit.Faker
}

// NewMacrosFactory creates a factory with the given seed
func NewMacrosFactory(seed int64) *MacrosFactory {
	return &MacrosFactory{faker: gofakeit.New(seed)}
}

// Meal returns macros sized like a single plausible meal
func (f *MacrosFactory) Meal() nutrition.Macros {
	return nutrition.Macros{
		Calories: float64(f.faker.IntRange(300, 900)),
		ProteinG: float64(f.faker.IntRange(15, 55)),
		SugarG:   float64(f.faker.IntRange(2, 25)),
		SodiumMg: float64(f.faker.IntRange(200, 1400)),
		FiberG:   float64(f.faker.IntRange(2, 12)),
		CarbsG:   float64(f.faker.IntRange(20, 100)),
		FatG:     float64(f.faker.IntRange(8, 40)),
	}
}

// Day returns macros sized like a mostly-consumed day
func (f *MacrosFactory) Day() nutrition.Macros {
	return nutrition.Macros{
		Calories: float64(f.faker.IntRange(1200, 2400)),
		ProteinG: float64(f.faker.IntRange(60, 140)),
		SugarG:   float64(f.faker.IntRange(15, 60)),
		SodiumMg: float64(f.faker.IntRange(900, 3000)),
		FiberG:   float64(f.faker.IntRange(8, 30)),
		CarbsG:   float64(f.faker.IntRange(100, 280)),
		FatG:     float64(f.faker.IntRange(30, 90)),
	}
}

// AppendLogCommand returns a populated meal-log command for the user
func (f *MacrosFactory) AppendLogCommand(userID string, loggedAt time.Time) inbound.AppendLogCommand {
	return inbound.AppendLogCommand{
		UserID:      userID,
		Macros:      f.Meal(),
		Description: f.faker.Sentence(4),
		Cuisine:     f.faker.RandomString([]string{"italian", "japanese", "mexican", "indian"}),
		LoggedAt:    loggedAt,
	}
}

// BehaviorBuilder provides a fluent interface for building behavior summaries
type BehaviorBuilder struct {
	summary nutrition.BehaviorSummary
}

// NewBehaviorBuilder creates a builder with an unremarkable 14-day pattern
func NewBehaviorBuilder() *BehaviorBuilder {
	return &BehaviorBuilder{
		summary: nutrition.BehaviorSummary{
			DaysObserved:       14,
			AvgCalories:        1950,
			AvgProteinG:        95,
			AvgSugarG:          32,
			AvgSodiumMg:        1800,
			AvgFiberG:          21,
			HighSodiumDaysPct:  0.2,
			HighSugarDaysPct:   0.15,
			LowProteinDaysPct:  0.3,
			LowFiberDaysPct:    0.25,
			LateEatingPct:      0.1,
			OverCalorieDaysPct: 0.2,
			CommonCuisine:      "italian",
			CommonWindow:       "dinner",
		},
	}
}

// WithHighSodium sets a strong high-sodium pattern
func (bb *BehaviorBuilder) WithHighSodium(pct float64) *BehaviorBuilder {
	bb.summary.HighSodiumDaysPct = pct
	return bb
}

// WithLowProtein sets a strong low-protein pattern
func (bb *BehaviorBuilder) WithLowProtein(pct float64) *BehaviorBuilder {
	bb.summary.LowProteinDaysPct = pct
	return bb
}

// WithLateEating sets the late-eating fraction
func (bb *BehaviorBuilder) WithLateEating(pct float64) *BehaviorBuilder {
	bb.summary.LateEatingPct = pct
	return bb
}

// WithCommonCuisine sets the dominant cuisine
func (bb *BehaviorBuilder) WithCommonCuisine(cuisine string) *BehaviorBuilder {
	bb.summary.CommonCuisine = cuisine
	return bb
}

// Build returns the behavior summary
func (bb *BehaviorBuilder) Build() nutrition.BehaviorSummary {
	return bb.summary
}
