package intelligence

import (
	"fmt"
	"strings"
)

// optionDrivers are the gap signals that shape every option.
type optionDrivers struct {
	needsProtein bool
	needsFiber   bool
	sodiumHigh   bool
	sugarHigh    bool
}

func driversFor(gap MacroGap) optionDrivers {
	return optionDrivers{
		needsProtein: gap.ProteinGapG >= 20,
		needsFiber:   gap.FiberGapG >= 6,
		sodiumHigh:   gap.SodiumRisk == RiskHigh,
		sugarHigh:    gap.SugarRisk == RiskHigh,
	}
}

// SynthesizeOptions turns an intent into a bounded, ordered list of dish
// options. The list is deterministic for a given intent and respects the
// policy's MaxOptions; the home analog of the leading eat-out option is
// always in the running.
func (e *Engine) SynthesizeOptions(intent BestNextMealIntent) []DishOption {
	gap := intent.Context.Gap
	drv := driversFor(gap)
	route := DecideRoute(intent)

	base := clamp01(0.45 + 0.45*gap.Confidence)
	if drv.sodiumHigh || drv.sugarHigh {
		base -= 0.05
	}
	if drv.needsProtein {
		base += 0.03
	}

	plate := e.proteinPlateOption(intent, drv, base)
	salad := e.saladOption(intent, drv, base)
	home := e.homeAnalog(intent, plate, drv)

	eatOut := []DishOption{plate, salad}
	if bowl, ok := e.bowlOption(intent, drv, base); ok {
		eatOut = append(eatOut, bowl)
	}

	var out []DishOption
	if route == ChannelHome {
		out = append([]DishOption{home}, eatOut...)
	} else {
		out = append(eatOut, home)
	}

	max := intent.Policy.MaxOptions
	if max <= 0 {
		max = e.cfg.DefaultMaxOptions
	}
	if len(out) > max {
		out = out[:max]
	}
	for i := range out {
		out[i].Confidence = clamp01(out[i].Confidence)
		if len(out[i].Tags) > e.cfg.UX.MaxTags {
			out[i].Tags = out[i].Tags[:e.cfg.UX.MaxTags]
		}
	}
	return out
}

func (e *Engine) proteinPlateOption(intent BestNextMealIntent, drv optionDrivers, base float64) DishOption {
	cuisine := intent.Context.Cuisine
	title := "Grilled protein plate"
	searchKey := "grilled chicken plate"
	if cuisine != "" {
		title = fmt.Sprintf("%s grilled protein plate", titleCase(cuisine))
		searchKey = fmt.Sprintf("%s grilled chicken", cuisine)
	}

	why := "Lean protein with sides keeps you inside today's numbers"
	if drv.needsProtein {
		why = fmt.Sprintf("Closes most of the %.0fg protein gap in one sitting", intent.Context.Gap.ProteinGapG)
	}

	return DishOption{
		ID:          intent.IntentID + ":opt-plate",
		Title:       title,
		Why:         e.capNote(why),
		Tags:        tagsFor(drv, "plate"),
		Confidence:  base,
		Channel:     ChannelEatOut,
		SearchKey:   searchKey,
		Constraints: e.constraintsFor(drv),
		Handoff: &Handoff{
			MapsQuery:     searchKey + " near me",
			DeliveryQuery: searchKey,
		},
	}
}

func (e *Engine) saladOption(intent BestNextMealIntent, drv optionDrivers, base float64) DishOption {
	searchKey := "protein salad"
	why := "Light on calories, easy to keep clean"
	if drv.needsFiber {
		why = "Greens and legumes chip away at the fiber gap"
	}

	return DishOption{
		ID:          intent.IntentID + ":opt-salad",
		Title:       "Big protein salad",
		Why:         e.capNote(why),
		Tags:        tagsFor(drv, "salad"),
		Confidence:  base - 0.05,
		Channel:     ChannelEatOut,
		SearchKey:   searchKey,
		Constraints: e.constraintsFor(drv),
		Handoff: &Handoff{
			MapsQuery:     searchKey + " near me",
			DeliveryQuery: searchKey,
		},
	}
}

// bowlOption only appears when there is room for a third pick and the day
// actually calls for volume: a real fiber gap or plenty of calories left.
func (e *Engine) bowlOption(intent BestNextMealIntent, drv optionDrivers, base float64) (DishOption, bool) {
	max := intent.Policy.MaxOptions
	if max <= 0 {
		max = e.cfg.DefaultMaxOptions
	}
	if max != 3 || (!drv.needsFiber && intent.Context.Gap.CaloriesRemaining < 550) {
		return DishOption{}, false
	}

	searchKey := "grain bowl"
	return DishOption{
		ID:          intent.IntentID + ":opt-bowl",
		Title:       "Hearty grain bowl",
		Why:         e.capNote("Grains and vegetables fill the day out without junk"),
		Tags:        tagsFor(drv, "bowl"),
		Confidence:  base - 0.08,
		Channel:     ChannelEatOut,
		SearchKey:   searchKey,
		Constraints: e.constraintsFor(drv),
		Handoff: &Handoff{
			MapsQuery:     searchKey + " near me",
			DeliveryQuery: searchKey,
		},
	}, true
}

// homeAnalog mirrors the primary eat-out pick as a cook-at-home option.
// Cooking it yourself means full control over salt and sugar, so it gets
// a small confidence edge.
func (e *Engine) homeAnalog(intent BestNextMealIntent, primary DishOption, drv optionDrivers) DishOption {
	tags := append([]string{"home"}, primary.Tags...)
	return DishOption{
		ID:          intent.IntentID + ":opt-home",
		Title:       "Cook it: " + primary.Title,
		Why:         e.capNote("Same plate at home, with salt and sugar fully under your control"),
		Tags:        tags,
		Confidence:  primary.Confidence + 0.05,
		Channel:     ChannelHome,
		Constraints: e.constraintsFor(drv),
	}
}

func tagsFor(drv optionDrivers, kind string) []string {
	var tags []string
	if drv.needsProtein {
		tags = append(tags, "protein")
	}
	if drv.needsFiber {
		tags = append(tags, "fiber")
	}
	if drv.sodiumHigh {
		tags = append(tags, "low-sodium")
	}
	if drv.sugarHigh {
		tags = append(tags, "low-sugar")
	}
	if len(tags) == 0 {
		tags = []string{kind}
	}
	return tags
}

func (e *Engine) constraintsFor(drv optionDrivers) []string {
	var out []string
	if drv.sodiumHigh {
		out = append(out, "sauce and dressing on the side", "skip cured or brined sides")
	}
	if drv.sugarHigh {
		out = append(out, "no sweetened drinks", "skip dessert")
	}
	if drv.needsProtein {
		out = append(out, "double protein portion")
	}
	if drv.needsFiber {
		out = append(out, "add a vegetable side")
	}
	if len(out) > e.cfg.UX.MaxConstraints {
		out = out[:e.cfg.UX.MaxConstraints]
	}
	return out
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
