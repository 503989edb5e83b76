package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/macromind/v1/internal/domain/intelligence"
	"github.com/macromind/v1/internal/ports/outbound"
)

// ContractRepository implements the daily contract repository using GORM
type ContractRepository struct {
	db *gorm.DB
}

// NewContractRepository creates a new contract repository
func NewContractRepository(db *gorm.DB) outbound.ContractRepository {
	return &ContractRepository{db: db}
}

// Save persists a contract record
func (r *ContractRepository) Save(ctx context.Context, record *outbound.ContractRecord) error {
	model := ContractToModel(record)

	result := r.db.WithContext(ctx).Save(model)
	return result.Error
}

// FindByUserAndDay returns the contract for one user and day, or nil
// when none has been issued yet
func (r *ContractRepository) FindByUserAndDay(ctx context.Context, userID, localDay string) (*outbound.ContractRecord, error) {
	var model ContractModel

	result := r.db.WithContext(ctx).
		First(&model, "user_id = ? AND local_day = ?", userID, localDay)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ModelToContract(&model), nil
}

// UpdateStatus updates a contract's status and progress in place
func (r *ContractRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status intelligence.ContractStatus, progress intelligence.ContractProgress) error {
	result := r.db.WithContext(ctx).Model(&ContractModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":           string(status),
			"progress_current": progress.Current,
			"progress_target":  progress.Target,
			"progress_pct":     progress.Pct,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("contract not found")
	}
	return nil
}
