package gorm

import (
	"github.com/macromind/v1/internal/domain/intelligence"
	"github.com/macromind/v1/internal/domain/logbook"
	"github.com/macromind/v1/internal/domain/nutrition"
	"github.com/macromind/v1/internal/ports/outbound"
)

// MealLogToModel converts a domain meal log to its GORM model
func MealLogToModel(log *logbook.MealLog) *MealLogModel {
	macros := log.Macros()
	return &MealLogModel{
		ID:          log.ID(),
		UserID:      log.UserID(),
		MemberID:    log.MemberID(),
		LocalDay:    log.LocalDay(),
		Window:      log.Window(),
		Calories:    macros.Calories,
		ProteinG:    macros.ProteinG,
		SugarG:      macros.SugarG,
		SodiumMg:    macros.SodiumMg,
		FiberG:      macros.FiberG,
		CarbsG:      macros.CarbsG,
		FatG:        macros.FatG,
		Description: log.Description(),
		Cuisine:     log.Cuisine(),
		Source:      string(log.Source()),
		PlanID:      log.PlanID(),
		LoggedAt:    log.LoggedAt(),
		CreatedAt:   log.CreatedAt(),
	}
}

// ModelToMealLog converts a GORM model back to the domain entity
func ModelToMealLog(model *MealLogModel) *logbook.MealLog {
	return logbook.ReconstructMealLog(
		model.ID,
		model.UserID,
		model.MemberID,
		model.LocalDay,
		model.Window,
		nutrition.Macros{
			Calories: model.Calories,
			ProteinG: model.ProteinG,
			SugarG:   model.SugarG,
			SodiumMg: model.SodiumMg,
			FiberG:   model.FiberG,
			CarbsG:   model.CarbsG,
			FatG:     model.FatG,
		},
		model.Description,
		model.Cuisine,
		logbook.Source(model.Source),
		model.PlanID,
		model.LoggedAt,
		model.CreatedAt,
	)
}

// DailyTotalToModel converts a daily total to its GORM model
func DailyTotalToModel(total *outbound.DailyTotal) *DailyTotalModel {
	return &DailyTotalModel{
		UserID:   total.UserID,
		LocalDay: total.LocalDay,
		Calories: total.Macros.Calories,
		ProteinG: total.Macros.ProteinG,
		SugarG:   total.Macros.SugarG,
		SodiumMg: total.Macros.SodiumMg,
		FiberG:   total.Macros.FiberG,
		CarbsG:   total.Macros.CarbsG,
		FatG:     total.Macros.FatG,
		Meals:    total.Meals,
	}
}

// ModelToDailyTotal converts a GORM model back to a daily total
func ModelToDailyTotal(model *DailyTotalModel) *outbound.DailyTotal {
	return &outbound.DailyTotal{
		UserID:   model.UserID,
		LocalDay: model.LocalDay,
		Macros: nutrition.Macros{
			Calories: model.Calories,
			ProteinG: model.ProteinG,
			SugarG:   model.SugarG,
			SodiumMg: model.SodiumMg,
			FiberG:   model.FiberG,
			CarbsG:   model.CarbsG,
			FatG:     model.FatG,
		},
		Meals: model.Meals,
	}
}

// ContractToModel converts a contract record to its GORM model
func ContractToModel(record *outbound.ContractRecord) *ContractModel {
	c := record.Contract
	return &ContractModel{
		ID:                   record.ID,
		UserID:               record.UserID,
		LocalDay:             record.LocalDay,
		Kind:                 string(c.Kind),
		Statement:            c.Statement,
		MetricName:           c.Metric.Name,
		MetricOperator:       c.Metric.Operator,
		MetricTarget:         c.Metric.Target,
		MetricUnit:           c.Metric.Unit,
		BaselineCaloriesOver: record.BaselineCaloriesOver,
		ProgressCurrent:      c.Progress.Current,
		ProgressTarget:       c.Progress.Target,
		ProgressPct:          c.Progress.Pct,
		Playbook:             StringSlice(c.Playbook),
		Status:               string(c.Status),
		CreatedAt:            record.CreatedAt,
		UpdatedAt:            record.UpdatedAt,
	}
}

// ModelToContract converts a GORM model back to a contract record
func ModelToContract(model *ContractModel) *outbound.ContractRecord {
	return &outbound.ContractRecord{
		ID:                   model.ID,
		UserID:               model.UserID,
		LocalDay:             model.LocalDay,
		BaselineCaloriesOver: model.BaselineCaloriesOver,
		Contract: intelligence.DailyContract{
			Kind:      intelligence.ContractKind(model.Kind),
			Statement: model.Statement,
			Metric: intelligence.ContractMetric{
				Name:     model.MetricName,
				Operator: model.MetricOperator,
				Target:   model.MetricTarget,
				Unit:     model.MetricUnit,
			},
			Progress: intelligence.ContractProgress{
				Current: model.ProgressCurrent,
				Target:  model.ProgressTarget,
				Pct:     model.ProgressPct,
			},
			Playbook: []string(model.Playbook),
			Status:   intelligence.ContractStatus(model.Status),
		},
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
