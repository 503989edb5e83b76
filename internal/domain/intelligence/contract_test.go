package intelligence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ContractTestSuite struct {
	suite.Suite
	engine *Engine
}

func (s *ContractTestSuite) SetupTest() {
	s.engine = NewEngine(DefaultConfig())
}

func TestContractTestSuite(t *testing.T) {
	suite.Run(t, new(ContractTestSuite))
}

func (s *ContractTestSuite) TestComputeDailyContract() {
	tests := []struct {
		name       string
		gap        MacroGap
		wantKind   ContractKind
		wantTarget float64
	}{
		{
			name:       "LargeProteinGap_ProteinClose",
			gap:        MacroGap{ProteinGapG: 50, FiberGapG: 15, CaloriesExceeded: 400},
			wantKind:   ContractProteinClose,
			wantTarget: 50,
		},
		{
			name:       "ProteinGapClampedHigh",
			gap:        MacroGap{ProteinGapG: 120},
			wantKind:   ContractProteinClose,
			wantTarget: 90,
		},
		{
			name:       "ProteinBelowCut_FiberWins",
			gap:        MacroGap{ProteinGapG: 30, FiberGapG: 12},
			wantKind:   ContractFiberRescue,
			wantTarget: 12,
		},
		{
			name:       "FiberClampedHigh",
			gap:        MacroGap{FiberGapG: 40},
			wantKind:   ContractFiberRescue,
			wantTarget: 25,
		},
		{
			name:       "CaloriesExceeded_CalorieCap",
			gap:        MacroGap{ProteinGapG: 10, FiberGapG: 4, CaloriesExceeded: 300},
			wantKind:   ContractCalorieCap,
			wantTarget: 300,
		},
		{
			name:       "CaloriesClampedHigh",
			gap:        MacroGap{CaloriesExceeded: 1500},
			wantKind:   ContractCalorieCap,
			wantTarget: 900,
		},
		{
			name:       "QuietDay_CleanExecution",
			gap:        MacroGap{ProteinGapG: 10, FiberGapG: 4, CaloriesExceeded: 100},
			wantKind:   ContractCleanExecution,
			wantTarget: 2,
		},
		{
			name:       "ZeroGap_CleanExecution",
			gap:        MacroGap{},
			wantKind:   ContractCleanExecution,
			wantTarget: 2,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			contract := s.engine.ComputeDailyContract(tt.gap)

			s.Equal(tt.wantKind, contract.Kind)
			s.Equal(tt.wantTarget, contract.Metric.Target)
			s.Equal(ContractDraft, contract.Status)
			s.NotEmpty(contract.Statement)
			s.Len(contract.Playbook, 2)
			s.Equal(0, contract.Progress.Pct)
		})
	}
}

func (s *ContractTestSuite) TestStatementCarriesTarget() {
	contract := s.engine.ComputeDailyContract(MacroGap{ProteinGapG: 50})
	s.Contains(contract.Statement, "50g of protein")
}

func TestEvaluateContractProgress(t *testing.T) {
	contract := DailyContract{
		Kind:   ContractProteinClose,
		Metric: ContractMetric{Name: "protein_g", Operator: ">=", Target: 50, Unit: "g"},
	}

	t.Run("FullProgress", func(t *testing.T) {
		p := EvaluateContractProgress(contract, 50)
		assert.Equal(t, 100, p.Pct)
	})

	t.Run("HalfProgress", func(t *testing.T) {
		p := EvaluateContractProgress(contract, 25)
		assert.Equal(t, 50, p.Pct)
		assert.Equal(t, float64(25), p.Current)
	})

	t.Run("OverTarget_CappedAtHundred", func(t *testing.T) {
		p := EvaluateContractProgress(contract, 80)
		assert.Equal(t, 100, p.Pct)
	})

	t.Run("NegativeReading_TreatedAsZero", func(t *testing.T) {
		p := EvaluateContractProgress(contract, -10)
		assert.Equal(t, 0, p.Pct)
		assert.Equal(t, float64(0), p.Current)
	})

	t.Run("ZeroTarget_NoDivide", func(t *testing.T) {
		broken := contract
		broken.Metric.Target = 0
		p := EvaluateContractProgress(broken, 10)
		assert.Equal(t, 0, p.Pct)
	})
}
