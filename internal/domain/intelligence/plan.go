package intelligence

import (
	"fmt"
	"time"
)

// BuildExecutionPlan assembles the final renderable plan from an intent
// and its options. An empty option slice degrades gracefully by
// re-synthesizing from the intent. The plan inherits the intent's expiry.
func (e *Engine) BuildExecutionPlan(intent BestNextMealIntent, options []DishOption, now time.Time) ExecutionPlan {
	if len(options) == 0 {
		options = e.SynthesizeOptions(intent)
	}

	primary := options[0]
	var secondary *DishOption
	if len(options) > 1 {
		secondary = &options[1]
	}

	gap := intent.Context.Gap
	drv := driversFor(gap)

	confidence := clamp01(0.55*gap.Confidence + 0.45*primary.Confidence)

	plan := ExecutionPlan{
		PlanID:    fmt.Sprintf("%s:%d", intent.IntentID, now.Unix()),
		IntentID:  intent.IntentID,
		Primary:   primary,
		Secondary: secondary,
		Meta: PlanMeta{
			Confidence:   confidence,
			ExpiresAt:    intent.ExpiresAt,
			PrimaryRoute: primary.Channel,
		},
	}

	anyHome := primary.Channel == ChannelHome || (secondary != nil && secondary.Channel == ChannelHome)
	if anyHome {
		cook := e.BuildCookPlan(intent)
		plan.CookPlan = &cook
	}

	plan.MicroSteps = e.microSteps(primary, drv)
	plan.Actions = planActions(primary, anyHome)
	return plan
}

func (e *Engine) microSteps(primary DishOption, drv optionDrivers) []string {
	steps := []string{fmt.Sprintf("Go with: %s", primary.Title)}
	steps = append(steps, "Ask for sauce and dressing on the side")
	if drv.sodiumHigh {
		steps = append(steps, "Skip soup, pickles, and cured sides today")
	}
	if drv.sugarHigh {
		steps = append(steps, "Water or unsweetened tea instead of a sweet drink")
	}
	if drv.needsProtein {
		steps = append(steps, "Eat the protein first")
	}
	steps = append(steps, "Log the meal right after eating")

	if max := e.cfg.UX.MaxMicroSteps; max > 0 && len(steps) > max {
		steps = steps[:max]
	}
	return steps
}

func planActions(primary DishOption, anyHome bool) []PlanAction {
	var actions []PlanAction
	if primary.Channel != ChannelHome {
		actions = append(actions, PlanAction{Kind: "open-maps", Label: "Find it nearby"})
	}
	if anyHome {
		actions = append(actions, PlanAction{Kind: "open-cook-plan", Label: "Cook it instead"})
	}
	actions = append(actions, PlanAction{Kind: "log-meal", Label: "Log this meal"})
	return actions
}
