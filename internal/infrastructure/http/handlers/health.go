package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthHandlers reports process and dependency health
type HealthHandlers struct {
	db      *gorm.DB
	version string
	started time.Time
	logger  *zap.Logger
}

// NewHealthHandlers creates a new health handlers instance
func NewHealthHandlers(db *gorm.DB, version string, logger *zap.Logger) *HealthHandlers {
	return &HealthHandlers{
		db:      db,
		version: version,
		started: time.Now(),
		logger:  logger,
	}
}

// HealthStatus is the health endpoint response body
type HealthStatus struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Uptime  string            `json:"uptime"`
	Checks  map[string]string `json:"checks"`
	Checked time.Time         `json:"checked_at"`
}

// Health handles GET /health
func (h *HealthHandlers) Health(c *gin.Context) {
	status := HealthStatus{
		Status:  "healthy",
		Version: h.version,
		Uptime:  time.Since(h.started).Round(time.Second).String(),
		Checks:  map[string]string{},
		Checked: time.Now(),
	}

	code := http.StatusOK
	if err := h.pingDatabase(); err != nil {
		h.logger.Warn("Database health check failed", zap.Error(err))
		status.Status = "degraded"
		status.Checks["database"] = "unavailable"
		code = http.StatusServiceUnavailable
	} else {
		status.Checks["database"] = "ok"
	}

	c.JSON(code, status)
}

// Ready handles GET /ready for orchestrator readiness probes
func (h *HealthHandlers) Ready(c *gin.Context) {
	if err := h.pingDatabase(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ready": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ready": true})
}

func (h *HealthHandlers) pingDatabase() error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
