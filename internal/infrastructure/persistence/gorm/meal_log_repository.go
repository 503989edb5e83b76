package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/macromind/v1/internal/domain/logbook"
	"github.com/macromind/v1/internal/ports/outbound"
)

// MealLogRepository implements the meal log repository interface using GORM
type MealLogRepository struct {
	db *gorm.DB
}

// NewMealLogRepository creates a new meal log repository
func NewMealLogRepository(db *gorm.DB) outbound.MealLogRepository {
	return &MealLogRepository{db: db}
}

// Create persists a new meal log entry
func (r *MealLogRepository) Create(ctx context.Context, log *logbook.MealLog) error {
	model := MealLogToModel(log)

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID finds a meal log by ID
func (r *MealLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*logbook.MealLog, error) {
	var model MealLogModel

	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, logbook.ErrLogNotFound
		}
		return nil, result.Error
	}
	return ModelToMealLog(&model), nil
}

// FindByUserAndDay lists a user's entries for one local day, oldest first
func (r *MealLogRepository) FindByUserAndDay(ctx context.Context, userID, localDay string) ([]*logbook.MealLog, error) {
	var models []MealLogModel

	result := r.db.WithContext(ctx).
		Where("user_id = ? AND local_day = ?", userID, localDay).
		Order("logged_at ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	logs := make([]*logbook.MealLog, 0, len(models))
	for i := range models {
		logs = append(logs, ModelToMealLog(&models[i]))
	}
	return logs, nil
}

// FindByUserSince lists a user's entries from sinceDay onward
func (r *MealLogRepository) FindByUserSince(ctx context.Context, userID, sinceDay string) ([]*logbook.MealLog, error) {
	var models []MealLogModel

	result := r.db.WithContext(ctx).
		Where("user_id = ? AND local_day >= ?", userID, sinceDay).
		Order("logged_at ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	logs := make([]*logbook.MealLog, 0, len(models))
	for i := range models {
		logs = append(logs, ModelToMealLog(&models[i]))
	}
	return logs, nil
}

// CountByUserAndDay counts a user's entries for one local day
func (r *MealLogRepository) CountByUserAndDay(ctx context.Context, userID, localDay string) (int64, error) {
	var count int64

	result := r.db.WithContext(ctx).Model(&MealLogModel{}).
		Where("user_id = ? AND local_day = ?", userID, localDay).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}
