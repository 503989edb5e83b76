// Package profile provides the application layer for nutrition profiles.
package profile

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/macromind/v1/internal/domain/nutrition"
	"github.com/macromind/v1/internal/ports/inbound"
	"github.com/macromind/v1/internal/ports/outbound"
	"github.com/macromind/v1/pkg/errors"
)

// ProfileService implements the nutrition profile use cases
type ProfileService struct {
	repo   outbound.ProfileRepository
	logger *zap.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(repo outbound.ProfileRepository, logger *zap.Logger) inbound.ProfileService {
	return &ProfileService{
		repo:   repo,
		logger: logger.Named("profile-service"),
	}
}

// UpsertProfile creates or replaces the caller's profile. Sync mode
// requires explicit consent; without it the profile is stored in
// privacy mode.
func (s *ProfileService) UpsertProfile(ctx context.Context, cmd inbound.UpsertProfileCommand) (*nutrition.ProfileSummary, error) {
	if strings.TrimSpace(cmd.UserID) == "" {
		return nil, errors.NewValidationError("user id is required")
	}
	if err := validateEnums(cmd); err != nil {
		return nil, err
	}

	mode := cmd.Mode
	if mode == "" {
		mode = nutrition.ModePrivacy
	}
	if mode == nutrition.ModeSync && !cmd.Consented {
		mode = nutrition.ModePrivacy
	}

	profile := &nutrition.ProfileSummary{
		UserID:      cmd.UserID,
		MemberID:    cmd.MemberID,
		Mode:        mode,
		Goal:        cmd.Goal,
		Intensity:   cmd.Intensity,
		Activity:    cmd.Activity,
		EatingStyle: cmd.EatingStyle,
		Cuisines:    nutrition.NormalizeCuisines(cmd.Cuisines),
		Consented:   cmd.Consented,
	}

	// Privacy mode keeps only the goal signals. Preferences are dropped,
	// not stored, so nothing downstream can steer on them.
	if mode == nutrition.ModePrivacy {
		profile.EatingStyle = ""
		profile.Cuisines = nil
	}

	if err := s.repo.Save(ctx, profile); err != nil {
		return nil, errors.NewDatabaseError("save profile", err)
	}

	s.logger.Info("Profile saved",
		zap.String("user_id", profile.UserID),
		zap.String("mode", string(profile.Mode)),
		zap.String("goal", string(profile.NormalizedGoal())),
	)
	return profile, nil
}

// GetProfile returns the caller's profile.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*nutrition.ProfileSummary, error) {
	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("find profile", err)
	}
	if profile == nil {
		return nil, errors.NewProfileNotFoundError(userID)
	}
	return profile, nil
}

// DeleteProfile removes the profile and its encrypted payload.
func (s *ProfileService) DeleteProfile(ctx context.Context, userID string) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		return errors.NewDatabaseError("delete profile", err)
	}
	s.logger.Info("Profile deleted", zap.String("user_id", userID))
	return nil
}

func validateEnums(cmd inbound.UpsertProfileCommand) error {
	switch cmd.Mode {
	case "", nutrition.ModePrivacy, nutrition.ModeSync:
	default:
		return errors.NewValidationError("mode must be privacy or sync")
	}
	switch cmd.Goal {
	case "", nutrition.GoalLose, nutrition.GoalMaintain, nutrition.GoalGain:
	default:
		return errors.NewValidationError("goal must be lose, maintain, or gain")
	}
	switch cmd.Intensity {
	case "", nutrition.IntensityLow, nutrition.IntensityStandard, nutrition.IntensityHigh:
	default:
		return errors.NewValidationError("intensity must be low, standard, or high")
	}
	switch cmd.Activity {
	case "", nutrition.ActivitySedentary, nutrition.ActivityLight, nutrition.ActivityModerate, nutrition.ActivityActive:
	default:
		return errors.NewValidationError("activity must be sedentary, light, moderate, or active")
	}
	switch cmd.EatingStyle {
	case "", nutrition.StyleBalanced, nutrition.StyleHomeHeavy, nutrition.StyleEatOutHeavy:
	default:
		return errors.NewValidationError("eating style must be balanced, home-heavy, or eat-out-heavy")
	}
	return nil
}
