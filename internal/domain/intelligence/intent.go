package intelligence

import (
	"fmt"
	"strings"
	"time"

	"github.com/macromind/v1/internal/domain/nutrition"
)

// WindowAt maps a local clock reading onto the coarse meal slot.
func (e *Engine) WindowAt(now time.Time) TimeWindow {
	hour := now.Hour()
	switch {
	case hour < e.cfg.Windows.BreakfastUntil:
		return WindowBreakfast
	case hour < e.cfg.Windows.LunchUntil:
		return WindowLunch
	case hour < e.cfg.Windows.SnackUntil:
		return WindowSnack
	default:
		return WindowDinner
	}
}

// IntentID derives the stable identity of an intent. Two calls with the
// same mode, day, window, and identity always produce the same ID, so a
// refresh within one window is idempotent.
func IntentID(mode nutrition.Mode, day string, window TimeWindow, userID, memberID string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "intent:%s:%s:%s", mode, day, window)
	if userID != "" {
		fmt.Fprintf(&b, ":u-%s", userID)
	}
	if memberID != "" {
		fmt.Fprintf(&b, ":m-%s", memberID)
	}
	return b.String()
}

// BuildIntent packages a macro gap into the handoff the option pipeline
// consumes. The intent expires after the configured TTL; callers must
// treat a past ExpiresAt as gone.
func (e *Engine) BuildIntent(profile nutrition.ProfileSummary, gap MacroGap, behavior *nutrition.BehaviorSummary, now time.Time) BestNextMealIntent {
	day := now.Format("2006-01-02")
	window := e.WindowAt(now)
	id := IntentID(profile.Mode, day, window, profile.UserID, profile.MemberID)

	var behaviorCommon string
	if behavior != nil {
		behaviorCommon = behavior.CommonCuisine
	}
	cuisine, _ := SelectCuisine(profile.Cuisines, behaviorCommon, CuisineSeed{
		UserID:   profile.UserID,
		MemberID: profile.MemberID,
		IntentID: id,
		Day:      day,
	})

	fallback := FallbackTwoSafeDefaults
	if gap.Confidence < 0.45 {
		fallback = FallbackAskOneQuestion
	}

	return BestNextMealIntent{
		IntentID:    id,
		Mode:        profile.Mode,
		GeneratedAt: now,
		ExpiresAt:   now.Add(time.Duration(e.cfg.IntentTTLMinutes) * time.Minute),
		Context: IntentContext{
			TimeWindow: window,
			Cuisine:    cuisine,
			Goal:       profile.NormalizedGoal(),
			Gap:        gap,
			Behavior:   behavior,
		},
		Policy: DecisionPolicy{
			MaxOptions:              e.cfg.DefaultMaxOptions,
			FallbackIfLowConfidence: fallback,
		},
		UserID:      profile.UserID,
		MemberID:    profile.MemberID,
		EatingStyle: profile.EatingStyle,
	}
}
