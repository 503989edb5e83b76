package gorm

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/macromind/v1/internal/domain/nutrition"
	"github.com/macromind/v1/internal/ports/outbound"
)

// DailyTotalRepository implements the daily consumed repository using GORM
type DailyTotalRepository struct {
	db *gorm.DB
}

// NewDailyTotalRepository creates a new daily total repository
func NewDailyTotalRepository(db *gorm.DB) outbound.DailyConsumedRepository {
	return &DailyTotalRepository{db: db}
}

// Get returns the total for one user and day, or nil when nothing has
// been logged yet
func (r *DailyTotalRepository) Get(ctx context.Context, userID, localDay string) (*outbound.DailyTotal, error) {
	var model DailyTotalModel

	result := r.db.WithContext(ctx).
		First(&model, "user_id = ? AND local_day = ?", userID, localDay)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ModelToDailyTotal(&model), nil
}

// Upsert writes the total, replacing any existing row for the same key
func (r *DailyTotalRepository) Upsert(ctx context.Context, total *outbound.DailyTotal) error {
	model := DailyTotalToModel(total)

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "local_day"}},
			UpdateAll: true,
		}).
		Create(model)
	return result.Error
}

// Accumulate folds one meal into the day's total with a single additive
// statement, so concurrent appends for the same day never lose a meal
func (r *DailyTotalRepository) Accumulate(ctx context.Context, userID, localDay string, macros nutrition.Macros) error {
	model := &DailyTotalModel{
		UserID:   userID,
		LocalDay: localDay,
		Calories: macros.Calories,
		ProteinG: macros.ProteinG,
		SugarG:   macros.SugarG,
		SodiumMg: macros.SodiumMg,
		FiberG:   macros.FiberG,
		CarbsG:   macros.CarbsG,
		FatG:     macros.FatG,
		Meals:    1,
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "local_day"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"calories":   gorm.Expr("calories + ?", macros.Calories),
				"protein_g":  gorm.Expr("protein_g + ?", macros.ProteinG),
				"sugar_g":    gorm.Expr("sugar_g + ?", macros.SugarG),
				"sodium_mg":  gorm.Expr("sodium_mg + ?", macros.SodiumMg),
				"fiber_g":    gorm.Expr("fiber_g + ?", macros.FiberG),
				"carbs_g":    gorm.Expr("carbs_g + ?", macros.CarbsG),
				"fat_g":      gorm.Expr("fat_g + ?", macros.FatG),
				"meals":      gorm.Expr("meals + 1"),
				"updated_at": time.Now(),
			}),
		}).
		Create(model)
	return result.Error
}

// Range lists a user's totals between fromDay and toDay inclusive
func (r *DailyTotalRepository) Range(ctx context.Context, userID, fromDay, toDay string) ([]*outbound.DailyTotal, error) {
	var models []DailyTotalModel

	result := r.db.WithContext(ctx).
		Where("user_id = ? AND local_day >= ? AND local_day <= ?", userID, fromDay, toDay).
		Order("local_day ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	totals := make([]*outbound.DailyTotal, 0, len(models))
	for i := range models {
		totals = append(totals, ModelToDailyTotal(&models[i]))
	}
	return totals, nil
}
