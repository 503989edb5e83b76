package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/macromind/v1/internal/domain/nutrition"
	"github.com/macromind/v1/internal/infrastructure/http/middleware"
	"github.com/macromind/v1/internal/infrastructure/monitoring"
	"github.com/macromind/v1/internal/ports/inbound"
	"github.com/macromind/v1/pkg/errors"
)

// LogbookHandlers handles meal logging requests
type LogbookHandlers struct {
	logbookService inbound.LogbookService
	metrics        *monitoring.MetricsCollector
	logger         *zap.Logger
}

// NewLogbookHandlers creates a new logbook handlers instance
func NewLogbookHandlers(
	logbookService inbound.LogbookService,
	metrics *monitoring.MetricsCollector,
	logger *zap.Logger,
) *LogbookHandlers {
	return &LogbookHandlers{
		logbookService: logbookService,
		metrics:        metrics,
		logger:         logger,
	}
}

// AppendLogRequest is the request body for logging one meal
type AppendLogRequest struct {
	MemberID    string           `json:"member_id" binding:"omitempty,max=64"`
	Macros      nutrition.Macros `json:"macros" binding:"required"`
	Description string           `json:"description" binding:"omitempty,max=500"`
	Cuisine     string           `json:"cuisine" binding:"omitempty,max=40"`
	Window      string           `json:"window" binding:"omitempty,oneof=breakfast lunch snack dinner"`
	PlanID      string           `json:"plan_id" binding:"omitempty,max=128"`
	Estimate    bool             `json:"estimate"`
	LoggedAt    *time.Time       `json:"logged_at"`
}

// AppendLog handles POST /api/v1/logs
func (h *LogbookHandlers) AppendLog(c *gin.Context) {
	var req AppendLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	loggedAt := time.Now()
	if req.LoggedAt != nil {
		loggedAt = *req.LoggedAt
	}

	cmd := inbound.AppendLogCommand{
		UserID:      middleware.GetUserID(c),
		MemberID:    req.MemberID,
		Macros:      req.Macros,
		Description: req.Description,
		Cuisine:     req.Cuisine,
		Window:      req.Window,
		PlanID:      req.PlanID,
		Estimate:    req.Estimate,
		LoggedAt:    loggedAt,
	}

	log, err := h.logbookService.AppendLog(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, err)
		return
	}

	h.metrics.MealLogged(log.Source)
	respondCreated(c, log)
}

// GetTodayTotals handles GET /api/v1/logs/today
func (h *LogbookHandlers) GetTodayTotals(c *gin.Context) {
	userID := middleware.GetUserID(c)

	totals, err := h.logbookService.GetTodayTotals(c.Request.Context(), userID, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, totals)
}

// GetLogsForDay handles GET /api/v1/logs/:day
func (h *LogbookHandlers) GetLogsForDay(c *gin.Context) {
	userID := middleware.GetUserID(c)
	day := c.Param("day")
	if _, err := time.Parse("2006-01-02", day); err != nil {
		respondError(c, errors.NewBadRequestError("day must be formatted as YYYY-MM-DD"))
		return
	}

	logs, err := h.logbookService.GetLogsForDay(c.Request.Context(), userID, day)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, logs)
}

// GetBehaviorSummary handles GET /api/v1/logs/behavior
func (h *LogbookHandlers) GetBehaviorSummary(c *gin.Context) {
	userID := middleware.GetUserID(c)

	summary, err := h.logbookService.GetBehaviorSummary(c.Request.Context(), userID, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	if summary == nil {
		respondError(c, errors.NewNotFoundError("behavior summary"))
		return
	}

	respondOK(c, summary)
}
