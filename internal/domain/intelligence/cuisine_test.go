package intelligence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectCuisine(t *testing.T) {
	seed := CuisineSeed{UserID: "u1", MemberID: "m1", IntentID: "intent:sync:2026-03-01:lunch", Day: "2026-03-01"}

	t.Run("SameInputs_SamePick", func(t *testing.T) {
		candidates := []string{"thai", "mexican", "italian"}

		first, ok1 := SelectCuisine(candidates, "", seed)
		second, ok2 := SelectCuisine(candidates, "", seed)

		require.True(t, ok1)
		require.True(t, ok2)
		assert.Equal(t, first, second)
	})

	t.Run("DifferentDay_CanPickDifferently", func(t *testing.T) {
		candidates := []string{"thai", "mexican", "italian", "japanese", "indian"}

		picks := make(map[string]bool)
		days := []string{"2026-03-01", "2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05", "2026-03-06", "2026-03-07"}
		for _, day := range days {
			s := seed
			s.Day = day
			s.IntentID = "intent:sync:" + day + ":lunch:u-u1:m-m1"
			pick, ok := SelectCuisine(candidates, "", s)
			require.True(t, ok)
			picks[pick] = true
		}

		assert.Greater(t, len(picks), 1, "a week of seeds should not collapse onto one cuisine")
	})

	t.Run("MessyCandidates_NormalizedAndDeduped", func(t *testing.T) {
		candidates := []string{" Thai ", "THAI", "thai"}

		pick, ok := SelectCuisine(candidates, "", seed)

		require.True(t, ok)
		assert.Equal(t, "thai", pick)
	})

	t.Run("EmptyCandidates_NoPick", func(t *testing.T) {
		_, ok := SelectCuisine(nil, "", seed)
		assert.False(t, ok)

		_, ok = SelectCuisine([]string{"  ", ""}, "", seed)
		assert.False(t, ok)
	})

	t.Run("BehaviorCommonCuisine_MovedToFrontDeterministically", func(t *testing.T) {
		candidates := []string{"mexican", "thai", "italian"}

		withCommon, ok := SelectCuisine(candidates, "italian", seed)
		require.True(t, ok)
		again, ok := SelectCuisine(candidates, "italian", seed)
		require.True(t, ok)

		assert.Equal(t, withCommon, again)
		assert.Contains(t, []string{"mexican", "thai", "italian"}, withCommon)
	})

	t.Run("CommonCuisineNotInCandidates_Ignored", func(t *testing.T) {
		candidates := []string{"mexican", "thai"}

		plain, _ := SelectCuisine(candidates, "", seed)
		withStranger, _ := SelectCuisine(candidates, "ethiopian", seed)

		assert.Equal(t, plain, withStranger)
	})
}

func TestFNV1a32_KnownVectors(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
	}{
		{"", 0x811c9dc5},
		{"a", 0xe40c292c},
		{"foobar", 0xbf9cf968},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, fnv1a32(tt.in), "fnv1a32(%q)", tt.in)
	}
}
