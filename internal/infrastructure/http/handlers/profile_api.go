package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/macromind/v1/internal/domain/nutrition"
	"github.com/macromind/v1/internal/infrastructure/http/middleware"
	"github.com/macromind/v1/internal/ports/inbound"
)

// ProfileHandlers handles nutrition profile requests
type ProfileHandlers struct {
	profileService inbound.ProfileService
	logger         *zap.Logger
}

// NewProfileHandlers creates a new profile handlers instance
func NewProfileHandlers(profileService inbound.ProfileService, logger *zap.Logger) *ProfileHandlers {
	return &ProfileHandlers{
		profileService: profileService,
		logger:         logger,
	}
}

// UpsertProfileRequest is the request body for creating or replacing a profile
type UpsertProfileRequest struct {
	MemberID    string   `json:"member_id" binding:"omitempty,max=64"`
	Mode        string   `json:"mode" binding:"omitempty,oneof=privacy sync"`
	Goal        string   `json:"goal" binding:"required,oneof=lose maintain gain"`
	Intensity   string   `json:"intensity" binding:"omitempty,oneof=low standard high"`
	Activity    string   `json:"activity" binding:"omitempty,oneof=sedentary light moderate active"`
	EatingStyle string   `json:"eating_style" binding:"omitempty,oneof=balanced home-heavy eat-out-heavy"`
	Cuisines    []string `json:"cuisines" binding:"omitempty,max=10,dive,max=40"`
	Consented   bool     `json:"consented"`
}

// UpsertProfile handles PUT /api/v1/profile
func (h *ProfileHandlers) UpsertProfile(c *gin.Context) {
	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	cmd := inbound.UpsertProfileCommand{
		UserID:      middleware.GetUserID(c),
		MemberID:    req.MemberID,
		Mode:        nutrition.Mode(req.Mode),
		Goal:        nutrition.Goal(req.Goal),
		Intensity:   nutrition.Intensity(req.Intensity),
		Activity:    nutrition.Activity(req.Activity),
		EatingStyle: nutrition.EatingStyle(req.EatingStyle),
		Cuisines:    req.Cuisines,
		Consented:   req.Consented,
	}

	profile, err := h.profileService.UpsertProfile(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, profile)
}

// GetProfile handles GET /api/v1/profile
func (h *ProfileHandlers) GetProfile(c *gin.Context) {
	profile, err := h.profileService.GetProfile(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, profile)
}

// DeleteProfile handles DELETE /api/v1/profile
func (h *ProfileHandlers) DeleteProfile(c *gin.Context) {
	if err := h.profileService.DeleteProfile(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"deleted": true})
}
