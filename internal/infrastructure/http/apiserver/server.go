// Package apiserver wires the REST API server: routes, middleware, and
// lifecycle management for the HTTP listener.
package apiserver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/macromind/v1/internal/infrastructure/config"
	"github.com/macromind/v1/internal/infrastructure/http/handlers"
	"github.com/macromind/v1/internal/infrastructure/http/middleware"
	"github.com/macromind/v1/internal/infrastructure/monitoring"
)

// Server is the HTTP API server
type Server struct {
	config     *config.Config
	httpServer *http.Server
	logger     *zap.Logger
}

// NewServer creates the API server with all routes registered
func NewServer(
	cfg *config.Config,
	logbookHandlers *handlers.LogbookHandlers,
	intelligenceHandlers *handlers.IntelligenceHandlers,
	profileHandlers *handlers.ProfileHandlers,
	healthHandlers *handlers.HealthHandlers,
	metrics *monitoring.MetricsCollector,
	logger *zap.Logger,
) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	if len(cfg.Server.TrustedProxies) > 0 {
		if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
			logger.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	if cfg.Monitoring.EnableTracing {
		router.Use(middleware.Tracing(cfg.App.Name))
	}
	if cfg.Monitoring.EnableMetrics {
		router.Use(metrics.HTTPMiddleware())
	}
	if cfg.RateLimit.Enable {
		router.Use(middleware.RateLimit(cfg.RateLimit.RequestsPerMin, cfg.RateLimit.BurstSize))
	}

	router.GET(cfg.Monitoring.HealthCheckPath, healthHandlers.Health)
	router.GET("/ready", healthHandlers.Ready)
	if cfg.Monitoring.EnableMetrics {
		router.GET(cfg.Monitoring.MetricsPath, gin.WrapH(metrics.Handler()))
	}

	// Production configs must set a real secret; Validate enforces it.
	jwtSecret := cfg.Auth.JWTSecret
	if jwtSecret == "" {
		jwtSecret = "dev-only-jwt-secret"
	}

	api := router.Group("/api/v1")
	api.Use(middleware.Authenticate(jwtSecret, logger))
	{
		api.POST("/logs", logbookHandlers.AppendLog)
		api.GET("/logs/today", logbookHandlers.GetTodayTotals)
		api.GET("/logs/behavior", logbookHandlers.GetBehaviorSummary)
		api.GET("/logs/:day", logbookHandlers.GetLogsForDay)

		api.GET("/intelligence/vector", intelligenceHandlers.GetDailyVector)
		api.GET("/intelligence/next-meal", intelligenceHandlers.GetBestNextMeal)
		api.GET("/intelligence/contract", intelligenceHandlers.GetDailyContract)
		api.POST("/intelligence/contract/refresh", intelligenceHandlers.RefreshContractProgress)

		api.PUT("/profile", profileHandlers.UpsertProfile)
		api.GET("/profile", profileHandlers.GetProfile)
		api.DELETE("/profile", profileHandlers.DeleteProfile)
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &Server{
		config:     cfg,
		httpServer: httpServer,
		logger:     logger,
	}
}

// Start begins serving HTTP requests. It blocks until the listener
// stops, so callers run it in a goroutine.
func (s *Server) Start() error {
	s.logger.Info("Starting API server",
		zap.String("addr", s.httpServer.Addr),
		zap.String("environment", s.config.App.Environment),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("api server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server")
	return s.httpServer.Shutdown(ctx)
}
