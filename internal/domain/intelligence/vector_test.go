package intelligence

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/macromind/v1/internal/domain/nutrition"
)

type DailyVectorTestSuite struct {
	suite.Suite
	engine *Engine
}

func (s *DailyVectorTestSuite) SetupTest() {
	s.engine = NewEngine(DefaultConfig())
}

func TestDailyVectorTestSuite(t *testing.T) {
	suite.Run(t, new(DailyVectorTestSuite))
}

func (s *DailyVectorTestSuite) TestTargetsAndRemaining() {
	s.Run("LoseGoal_UsesBaselineTargets", func() {
		profile := nutrition.ProfileSummary{Mode: nutrition.ModeSync, Goal: nutrition.GoalLose}

		v := s.engine.BuildDailyVector(profile, nutrition.Macros{}, nil, nil)

		s.Equal(float64(1800), v.Targets.Calories)
		s.Equal(float64(130), v.Targets.ProteinG)
		s.Equal(float64(2300), v.Targets.SodiumMg)
	})

	s.Run("HighIntensityActiveProfile_ScalesCaloriesAndProteinInOrder", func() {
		profile := nutrition.ProfileSummary{
			Mode:      nutrition.ModeSync,
			Goal:      nutrition.GoalLose,
			Intensity: nutrition.IntensityHigh,
			Activity:  nutrition.ActivityModerate,
		}

		v := s.engine.BuildDailyVector(profile, nutrition.Macros{}, nil, nil)

		// 1800 * 1.1 = 1980, then 1980 * 1.05 = 2079
		s.Equal(float64(2079), v.Targets.Calories)
		// 130 * 1.1 = 143, then 143 * 1.05 = 150.15 -> 150
		s.Equal(float64(150), v.Targets.ProteinG)
		// Sodium and sugar caps are never scaled.
		s.Equal(float64(2300), v.Targets.SodiumMg)
		s.Equal(float64(40), v.Targets.SugarG)
	})

	s.Run("TargetsOverride_ReplacesOnlyPositiveFields", func() {
		profile := nutrition.ProfileSummary{Mode: nutrition.ModeSync, Goal: nutrition.GoalMaintain}
		override := &nutrition.Macros{Calories: 2000, ProteinG: 140}

		v := s.engine.BuildDailyVector(profile, nutrition.Macros{}, override, nil)

		s.Equal(float64(2000), v.Targets.Calories)
		s.Equal(float64(140), v.Targets.ProteinG)
		s.Equal(float64(2300), v.Targets.SodiumMg)
	})

	s.Run("Remaining_FloorsAtZero", func() {
		profile := nutrition.ProfileSummary{Mode: nutrition.ModeSync, Goal: nutrition.GoalLose}
		consumed := nutrition.Macros{Calories: 2500, ProteinG: 90}

		v := s.engine.BuildDailyVector(profile, consumed, nil, nil)

		s.Equal(float64(0), v.Remaining.Calories)
		s.Equal(float64(40), v.Remaining.ProteinG)
	})

	s.Run("NegativeConsumed_ClampedToZero", func() {
		profile := nutrition.ProfileSummary{Mode: nutrition.ModeSync, Goal: nutrition.GoalLose}
		consumed := nutrition.Macros{Calories: -200, ProteinG: -5}

		v := s.engine.BuildDailyVector(profile, consumed, nil, nil)

		s.Equal(float64(0), v.Consumed.Calories)
		s.Equal(float64(1800), v.Remaining.Calories)
	})
}

func (s *DailyVectorTestSuite) TestClassification() {
	profile := nutrition.ProfileSummary{Mode: nutrition.ModeSync, Goal: nutrition.GoalLose}

	s.Run("LargeProteinGap_SurfacesProteinDeficit", func() {
		consumed := nutrition.Macros{Calories: 1200, ProteinG: 60, FiberG: 25}

		v := s.engine.BuildDailyVector(profile, consumed, nil, nil)

		s.Require().NotNil(v.DeficitOfDay)
		s.Equal(MetricProtein, v.DeficitOfDay.Metric)
		s.Equal(float64(70), v.DeficitOfDay.GapG)
		s.Contains(v.DeficitOfDay.Note, "70g of protein")
	})

	s.Run("ProteinCovered_FiberGapSurfaces", func() {
		consumed := nutrition.Macros{Calories: 1200, ProteinG: 120, FiberG: 10}

		v := s.engine.BuildDailyVector(profile, consumed, nil, nil)

		s.Require().NotNil(v.DeficitOfDay)
		s.Equal(MetricFiber, v.DeficitOfDay.Metric)
		s.Equal(float64(18), v.DeficitOfDay.GapG)
	})

	s.Run("SmallGaps_NoDeficit", func() {
		consumed := nutrition.Macros{Calories: 1600, ProteinG: 110, FiberG: 24}

		v := s.engine.BuildDailyVector(profile, consumed, nil, nil)

		s.Nil(v.DeficitOfDay)
	})

	s.Run("SodiumOverThreshold_SurfacesBeforeSugar", func() {
		consumed := nutrition.Macros{SodiumMg: 2000, SugarG: 38}

		v := s.engine.BuildDailyVector(profile, consumed, nil, nil)

		s.Require().NotNil(v.OverRisk)
		s.Equal(MetricSodium, v.OverRisk.Metric)
		s.InDelta(2000.0/2300.0, v.OverRisk.Pct, 0.001)
	})

	s.Run("OnlySugarOverThreshold_SugarRiskSurfaces", func() {
		consumed := nutrition.Macros{SodiumMg: 500, SugarG: 36}

		v := s.engine.BuildDailyVector(profile, consumed, nil, nil)

		s.Require().NotNil(v.OverRisk)
		s.Equal(MetricSugar, v.OverRisk.Metric)
	})

	s.Run("SugarNearCapWhileSodiumIsTheRisk_SugarWarningSurfaces", func() {
		consumed := nutrition.Macros{SodiumMg: 2100, SugarG: 37}

		v := s.engine.BuildDailyVector(profile, consumed, nil, nil)

		s.Require().NotNil(v.OverRisk)
		s.Equal(MetricSodium, v.OverRisk.Metric)
		s.Require().NotNil(v.Warning)
		s.Equal(MetricSugar, v.Warning.Metric)
	})
}

func (s *DailyVectorTestSuite) TestBehaviorAdaptation() {
	profile := nutrition.ProfileSummary{Mode: nutrition.ModeSync, Goal: nutrition.GoalLose}

	s.Run("SustainedHighSodiumPattern_LowersSodiumThreshold", func() {
		behavior := &nutrition.BehaviorSummary{DaysObserved: 14, HighSodiumDaysPct: 0.7}
		// 1656/2300 = 72%: below the default 80% threshold, above the
		// adapted 70% one.
		consumed := nutrition.Macros{SodiumMg: 1656}

		plain := s.engine.BuildDailyVector(profile, consumed, nil, nil)
		adapted := s.engine.BuildDailyVector(profile, consumed, nil, behavior)

		s.Nil(plain.OverRisk)
		s.Require().NotNil(adapted.OverRisk)
		s.Equal(MetricSodium, adapted.OverRisk.Metric)
	})

	s.Run("SustainedLowProteinPattern_LowersProteinThreshold", func() {
		behavior := &nutrition.BehaviorSummary{DaysObserved: 14, LowProteinDaysPct: 0.65}
		// 112 consumed of 130 leaves 18g: below default 25, above adapted 15.
		consumed := nutrition.Macros{ProteinG: 112, FiberG: 28}

		plain := s.engine.BuildDailyVector(profile, consumed, nil, nil)
		adapted := s.engine.BuildDailyVector(profile, consumed, nil, behavior)

		s.Nil(plain.DeficitOfDay)
		s.Require().NotNil(adapted.DeficitOfDay)
		s.Equal(MetricProtein, adapted.DeficitOfDay.Metric)
	})

	s.Run("WeakPattern_NoAdaptation", func() {
		behavior := &nutrition.BehaviorSummary{DaysObserved: 14, HighSodiumDaysPct: 0.5}
		consumed := nutrition.Macros{SodiumMg: 1656}

		v := s.engine.BuildDailyVector(profile, consumed, nil, behavior)

		s.Nil(v.OverRisk)
	})
}

func (s *DailyVectorTestSuite) TestConfidence() {
	behavior := &nutrition.BehaviorSummary{DaysObserved: 14}
	logged := nutrition.Macros{Calories: 1200}

	tests := []struct {
		name     string
		profile  nutrition.ProfileSummary
		consumed nutrition.Macros
		behavior *nutrition.BehaviorSummary
		want     float64
	}{
		{
			name:    "PrivacyModeNothingLogged",
			profile: nutrition.ProfileSummary{Mode: nutrition.ModePrivacy},
			want:    0.35,
		},
		{
			name:    "SyncModeNothingLogged_StaysNearFloor",
			profile: nutrition.ProfileSummary{Mode: nutrition.ModeSync},
			want:    0.40,
		},
		{
			name:     "PrivacyModeWithCalories",
			profile:  nutrition.ProfileSummary{Mode: nutrition.ModePrivacy},
			consumed: logged,
			want:     0.65,
		},
		{
			name:     "SyncModeWithCalories",
			profile:  nutrition.ProfileSummary{Mode: nutrition.ModeSync},
			consumed: logged,
			want:     0.70,
		},
		{
			name:     "SyncModeCaloriesAndBehavior",
			profile:  nutrition.ProfileSummary{Mode: nutrition.ModeSync},
			consumed: logged,
			behavior: behavior,
			want:     0.85,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			v := s.engine.BuildDailyVector(tt.profile, tt.consumed, nil, tt.behavior)
			s.InDelta(tt.want, v.Confidence, 0.001)
		})
	}
}

func (s *DailyVectorTestSuite) TestComputeMacroGap() {
	s.Run("CarriesGapsRisksAndConfidence", func() {
		profile := nutrition.ProfileSummary{Mode: nutrition.ModeSync, Goal: nutrition.GoalLose}
		consumed := nutrition.Macros{Calories: 1200, ProteinG: 70, FiberG: 12, SodiumMg: 2000, SugarG: 20}

		v := s.engine.BuildDailyVector(profile, consumed, nil, nil)
		gap := ComputeMacroGap(v)

		s.Equal(float64(60), gap.ProteinGapG)
		s.Equal(float64(16), gap.FiberGapG)
		s.Equal(float64(600), gap.CaloriesRemaining)
		s.Equal(float64(0), gap.CaloriesExceeded)
		// 2000/2300 is roughly 87%, the high bucket.
		s.Equal(RiskHigh, gap.SodiumRisk)
		s.Equal(RiskLow, gap.SugarRisk)
		s.Equal(v.Confidence, gap.Confidence)
	})

	s.Run("CaloriesOverTarget_ComputesExceeded", func() {
		profile := nutrition.ProfileSummary{Mode: nutrition.ModeSync, Goal: nutrition.GoalLose}
		consumed := nutrition.Macros{Calories: 2100}

		gap := ComputeMacroGap(s.engine.BuildDailyVector(profile, consumed, nil, nil))

		s.Equal(float64(0), gap.CaloriesRemaining)
		s.Equal(float64(300), gap.CaloriesExceeded)
	})

	s.Run("RiskBucketBoundaries", func() {
		s.Equal(RiskLow, riskBucket(0.64))
		s.Equal(RiskMedium, riskBucket(0.65))
		s.Equal(RiskMedium, riskBucket(0.84))
		s.Equal(RiskHigh, riskBucket(0.85))
		s.Equal(RiskHigh, riskBucket(1.2))
	})
}
