package intelligence

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/macromind/v1/internal/domain/nutrition"
)

type ExecutionPlanTestSuite struct {
	suite.Suite
	engine *Engine
	now    time.Time
}

func (s *ExecutionPlanTestSuite) SetupTest() {
	s.engine = NewEngine(DefaultConfig())
	s.now = time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
}

func TestExecutionPlanTestSuite(t *testing.T) {
	suite.Run(t, new(ExecutionPlanTestSuite))
}

func (s *ExecutionPlanTestSuite) TestBuildExecutionPlan() {
	s.Run("FirstOptionIsPrimarySecondIsSecondary", func() {
		intent := testIntent(gapWithConfidence(0.8), "")
		intent.ExpiresAt = s.now.Add(10 * time.Minute)
		options := s.engine.SynthesizeOptions(intent)

		plan := s.engine.BuildExecutionPlan(intent, options, s.now)

		s.Equal(options[0], plan.Primary)
		s.Require().NotNil(plan.Secondary)
		s.Equal(options[1], *plan.Secondary)
		s.Equal(intent.IntentID, plan.IntentID)
		s.Equal(intent.ExpiresAt, plan.Meta.ExpiresAt)
		s.Equal(options[0].Channel, plan.Meta.PrimaryRoute)
	})

	s.Run("PlanIDBoundToIntentAndInstant", func() {
		intent := testIntent(gapWithConfidence(0.8), "")
		options := s.engine.SynthesizeOptions(intent)

		plan := s.engine.BuildExecutionPlan(intent, options, s.now)

		s.Equal(fmt.Sprintf("%s:%d", intent.IntentID, s.now.Unix()), plan.PlanID)
	})

	s.Run("ConfidenceBlendsIntentAndPrimary", func() {
		intent := testIntent(gapWithConfidence(0.8), "")
		options := s.engine.SynthesizeOptions(intent)

		plan := s.engine.BuildExecutionPlan(intent, options, s.now)

		want := 0.55*0.8 + 0.45*options[0].Confidence
		s.InDelta(want, plan.Meta.Confidence, 0.001)
	})

	s.Run("HomeOptionPresent_CookPlanAttached", func() {
		intent := testIntent(gapWithConfidence(0.8), nutrition.StyleHomeHeavy)
		options := s.engine.SynthesizeOptions(intent)

		plan := s.engine.BuildExecutionPlan(intent, options, s.now)

		s.Require().NotNil(plan.CookPlan)
		s.NotEmpty(plan.CookPlan.Steps)
	})

	s.Run("NoHomeInTopTwo_NoCookPlan", func() {
		intent := testIntent(gapWithConfidence(0.8), "")
		options := s.engine.SynthesizeOptions(intent)
		// Top of the eat-out route is plate then salad.
		s.Require().GreaterOrEqual(len(options), 2)
		s.Require().Equal(ChannelEatOut, options[0].Channel)
		s.Require().Equal(ChannelEatOut, options[1].Channel)

		plan := s.engine.BuildExecutionPlan(intent, options[:2], s.now)

		s.Nil(plan.CookPlan)
	})

	s.Run("MicroStepsBoundedAndAnchored", func() {
		intent := testIntent(gapWithConfidence(0.8), "")
		intent.Context.Gap.SodiumRisk = RiskHigh
		intent.Context.Gap.SugarRisk = RiskHigh
		options := s.engine.SynthesizeOptions(intent)

		plan := s.engine.BuildExecutionPlan(intent, options, s.now)

		s.Require().NotEmpty(plan.MicroSteps)
		s.LessOrEqual(len(plan.MicroSteps), 6)
		s.Contains(plan.MicroSteps[0], plan.Primary.Title)
	})

	s.Run("EmptyOptions_DegradesBySynthesizing", func() {
		intent := testIntent(gapWithConfidence(0.8), "")

		plan := s.engine.BuildExecutionPlan(intent, nil, s.now)

		s.NotEmpty(plan.Primary.ID)
		s.NotEmpty(plan.MicroSteps)
	})

	s.Run("Actions_MatchChannels", func() {
		eatOut := testIntent(gapWithConfidence(0.8), nutrition.StyleEatOutHeavy)
		eatOutPlan := s.engine.BuildExecutionPlan(eatOut, s.engine.SynthesizeOptions(eatOut), s.now)
		s.True(hasAction(eatOutPlan.Actions, "open-maps"))
		s.True(hasAction(eatOutPlan.Actions, "log-meal"))

		home := testIntent(gapWithConfidence(0.8), nutrition.StyleHomeHeavy)
		homePlan := s.engine.BuildExecutionPlan(home, s.engine.SynthesizeOptions(home), s.now)
		s.True(hasAction(homePlan.Actions, "open-cook-plan"))
		s.False(hasAction(homePlan.Actions, "open-maps"))
	})
}

func hasAction(actions []PlanAction, kind string) bool {
	for _, a := range actions {
		if a.Kind == kind {
			return true
		}
	}
	return false
}

func (s *ExecutionPlanTestSuite) TestBuildCookPlan() {
	s.Run("ChickenSizedFromProteinGap", func() {
		intent := testIntent(gapWithConfidence(0.8), "")
		intent.Context.Gap.ProteinGapG = 46

		plan := s.engine.BuildCookPlan(intent)

		// 46g of protein at 23g per 100g of chicken is 200g.
		s.Equal(float64(200), plan.Quantities[0].Grams)
		s.Equal("chicken breast", plan.Quantities[0].Ingredient)
	})

	s.Run("PortionClamped", func() {
		small := testIntent(gapWithConfidence(0.8), "")
		small.Context.Gap.ProteinGapG = 5
		s.Equal(float64(160), s.engine.BuildCookPlan(small).Quantities[0].Grams)

		big := testIntent(gapWithConfidence(0.8), "")
		big.Context.Gap.ProteinGapG = 120
		s.Equal(float64(240), s.engine.BuildCookPlan(big).Quantities[0].Grams)
	})

	s.Run("StepsOrderedWithTimings", func() {
		plan := s.engine.BuildCookPlan(testIntent(gapWithConfidence(0.8), ""))

		s.Len(plan.Steps, 5)
		for i, step := range plan.Steps {
			s.Equal(i+1, step.Order)
		}
		s.Require().NotNil(plan.Steps[1].TempC)
		s.Equal(200, *plan.Steps[1].TempC)
		s.Equal(25, plan.TotalMinutes)
	})

	s.Run("ConstraintsFollowGapFlags", func() {
		intent := testIntent(gapWithConfidence(0.8), "")
		intent.Context.Gap.SodiumRisk = RiskHigh

		plan := s.engine.BuildCookPlan(intent)

		s.Contains(plan.Constraints, "season with herbs and lemon instead of salt")
		s.Contains(plan.Constraints, "keep the full protein portion")
	})
}
