package intelligence

import "github.com/macromind/v1/internal/domain/nutrition"

// DecideRoute picks the channel an intent should lead with. Eating style
// is an explicit preference and wins outright; otherwise high intake risk
// or a late-eating pattern at dinner steers home, and low confidence
// falls back to the safer eat-out defaults.
func DecideRoute(intent BestNextMealIntent) Channel {
	switch intent.EatingStyle {
	case nutrition.StyleHomeHeavy:
		return ChannelHome
	case nutrition.StyleEatOutHeavy:
		return ChannelEatOut
	}

	gap := intent.Context.Gap
	if gap.SodiumRisk == RiskHigh || gap.SugarRisk == RiskHigh {
		return ChannelHome
	}

	if intent.Context.TimeWindow == WindowDinner &&
		intent.Context.Behavior != nil &&
		intent.Context.Behavior.LateEatingPct >= 0.6 {
		return ChannelHome
	}

	if gap.Confidence < 0.45 {
		return ChannelEatOut
	}
	return ChannelEatOut
}
