package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/macromind/v1/internal/infrastructure/http/middleware"
	"github.com/macromind/v1/internal/infrastructure/monitoring"
	"github.com/macromind/v1/internal/ports/inbound"
)

// IntelligenceHandlers handles decision-pipeline requests
type IntelligenceHandlers struct {
	intelligenceService inbound.IntelligenceService
	metrics             *monitoring.MetricsCollector
	logger              *zap.Logger
}

// NewIntelligenceHandlers creates a new intelligence handlers instance
func NewIntelligenceHandlers(
	intelligenceService inbound.IntelligenceService,
	metrics *monitoring.MetricsCollector,
	logger *zap.Logger,
) *IntelligenceHandlers {
	return &IntelligenceHandlers{
		intelligenceService: intelligenceService,
		metrics:             metrics,
		logger:              logger,
	}
}

// GetDailyVector handles GET /api/v1/intelligence/vector
func (h *IntelligenceHandlers) GetDailyVector(c *gin.Context) {
	query := inbound.VectorQuery{
		UserID:   middleware.GetUserID(c),
		MemberID: c.Query("member_id"),
		At:       time.Now(),
	}

	start := time.Now()
	vector, err := h.intelligenceService.GetDailyVector(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	h.metrics.ObservePipeline("daily_vector", time.Since(start))

	respondOK(c, vector)
}

// GetBestNextMeal handles GET /api/v1/intelligence/next-meal
func (h *IntelligenceHandlers) GetBestNextMeal(c *gin.Context) {
	query := inbound.NextMealQuery{
		UserID:   middleware.GetUserID(c),
		MemberID: c.Query("member_id"),
		At:       time.Now(),
	}

	start := time.Now()
	result, err := h.intelligenceService.GetBestNextMeal(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	h.metrics.ObservePipeline("best_next_meal", time.Since(start))
	h.metrics.PlanGenerated(string(result.Plan.Meta.PrimaryRoute), result.Plan.Meta.Confidence)

	respondOK(c, result)
}

// GetDailyContract handles GET /api/v1/intelligence/contract
func (h *IntelligenceHandlers) GetDailyContract(c *gin.Context) {
	query := inbound.ContractQuery{
		UserID: middleware.GetUserID(c),
		At:     time.Now(),
	}

	contract, err := h.intelligenceService.GetDailyContract(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	h.metrics.ContractIssued(string(contract.Kind))

	respondOK(c, contract)
}

// RefreshContractProgress handles POST /api/v1/intelligence/contract/refresh
func (h *IntelligenceHandlers) RefreshContractProgress(c *gin.Context) {
	query := inbound.ContractQuery{
		UserID: middleware.GetUserID(c),
		At:     time.Now(),
	}

	contract, err := h.intelligenceService.RefreshContractProgress(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, contract)
}
