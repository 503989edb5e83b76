package gorm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/macromind/v1/internal/domain/nutrition"
	"github.com/macromind/v1/internal/infrastructure/security"
	"github.com/macromind/v1/internal/ports/outbound"
)

// ProfileRepository implements the profile repository using GORM.
// Profile bodies are encrypted before they reach the database.
type ProfileRepository struct {
	db     *gorm.DB
	cipher *security.ProfileCipher
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB, cipher *security.ProfileCipher) outbound.ProfileRepository {
	return &ProfileRepository{db: db, cipher: cipher}
}

// Save creates or replaces the profile for its user
func (r *ProfileRepository) Save(ctx context.Context, profile *nutrition.ProfileSummary) error {
	body, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	encrypted, err := r.cipher.Encrypt(body)
	if err != nil {
		return err
	}

	model := &ProfileModel{
		UserID:        profile.UserID,
		EncryptedBody: encrypted,
	}
	result := r.db.WithContext(ctx).Save(model)
	return result.Error
}

// FindByUserID returns the decrypted profile, or nil when none exists
func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*nutrition.ProfileSummary, error) {
	var model ProfileModel

	result := r.db.WithContext(ctx).First(&model, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	body, err := r.cipher.Decrypt(model.EncryptedBody)
	if err != nil {
		return nil, err
	}
	var profile nutrition.ProfileSummary
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &profile, nil
}

// Delete removes the profile and its encrypted payload
func (r *ProfileRepository) Delete(ctx context.Context, userID string) error {
	result := r.db.WithContext(ctx).Delete(&ProfileModel{}, "user_id = ?", userID)
	return result.Error
}
