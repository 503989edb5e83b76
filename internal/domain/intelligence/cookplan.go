package intelligence

import "math"

// BuildCookPlan sizes a simple home-cooking plan from the intent's
// remaining gaps. The protein portion is derived from the gap (chicken
// breast at roughly 23g protein per 100g) and kept inside a sane
// single-meal range.
func (e *Engine) BuildCookPlan(intent BestNextMealIntent) ModularPrepPlan {
	gap := intent.Context.Gap
	drv := driversFor(gap)

	proteinTarget := gap.ProteinGapG
	if proteinTarget < 35 {
		proteinTarget = 35
	}
	if proteinTarget > 60 {
		proteinTarget = 60
	}
	chickenGrams := math.Round(proteinTarget / 23 * 100)
	if chickenGrams < 160 {
		chickenGrams = 160
	}
	if chickenGrams > 240 {
		chickenGrams = 240
	}

	sear := 200
	searMin := 6
	grainMin := 12
	veggieMin := 8
	restMin := 3

	plan := ModularPrepPlan{
		Dish:         "Pan-seared chicken with greens and grains",
		TotalMinutes: 25,
		Quantities: []Quantity{
			{Ingredient: "chicken breast", Grams: chickenGrams, Notes: "sized from today's protein gap"},
			{Ingredient: "mixed greens", Grams: 150},
			{Ingredient: "cooked grains", Grams: 120, Notes: "rice, quinoa, or farro"},
			{Ingredient: "olive oil", Grams: 10},
			{Ingredient: "herbs and lemon", Grams: 5},
		},
		Steps: []PrepStep{
			{Order: 1, Text: "Pat the chicken dry and season with herbs"},
			{Order: 2, Text: "Sear the chicken over high heat until browned", TempC: &sear, Minutes: &searMin},
			{Order: 3, Text: "Warm the grains while the chicken finishes", Minutes: &grainMin},
			{Order: 4, Text: "Toss the greens with olive oil and lemon", Minutes: &veggieMin},
			{Order: 5, Text: "Rest the chicken, slice, and plate over the grains", Minutes: &restMin},
		},
	}

	if drv.sodiumHigh {
		plan.Constraints = append(plan.Constraints, "season with herbs and lemon instead of salt")
	}
	if drv.sugarHigh {
		plan.Constraints = append(plan.Constraints, "no sweet glazes or sauces")
	}
	if drv.needsProtein {
		plan.Constraints = append(plan.Constraints, "keep the full protein portion")
	}
	if drv.needsFiber {
		plan.Constraints = append(plan.Constraints, "double the greens")
	}
	return plan
}
