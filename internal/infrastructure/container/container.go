// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	appIntelligence "github.com/macromind/v1/internal/application/intelligence"
	"github.com/macromind/v1/internal/application/logbook"
	"github.com/macromind/v1/internal/application/profile"
	"github.com/macromind/v1/internal/domain/intelligence"
	"github.com/macromind/v1/internal/infrastructure/cache"
	"github.com/macromind/v1/internal/infrastructure/config"
	"github.com/macromind/v1/internal/infrastructure/http/apiserver"
	"github.com/macromind/v1/internal/infrastructure/http/handlers"
	"github.com/macromind/v1/internal/infrastructure/monitoring"
	gormRepo "github.com/macromind/v1/internal/infrastructure/persistence/gorm"
	"github.com/macromind/v1/internal/infrastructure/persistence/sqlite"
	"github.com/macromind/v1/internal/infrastructure/security"
	"github.com/macromind/v1/internal/ports/outbound"
	"github.com/macromind/v1/pkg/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	EngineModule,
	RepositoryModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// DatabaseModule provides the SQLite connection through GORM
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		logLevel := gormLogger.Silent
		if cfg.App.Debug {
			logLevel = gormLogger.Info
		}

		db, err := sqlite.SetupDatabase(cfg.Database.Path, logLevel)
		if err != nil {
			return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
		}

		log.Info("Connected to SQLite database",
			zap.String("path", cfg.Database.Path),
			zap.Bool("in_memory", cfg.Database.Path == ":memory:"),
		)

		return db, nil
	},
)

// CacheModule provides the intent cache. Redis when enabled, otherwise
// an in-process store so the pipeline works without external services.
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (outbound.CacheRepository, error) {
		if !cfg.Redis.Enabled {
			log.Info("Redis disabled, using in-memory cache")
			return cache.NewMemoryCacheRepository(), nil
		}

		client, err := cache.NewRedisClient(cfg, log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		return cache.NewRedisCacheRepository(client, log), nil
	},
)

// EngineModule provides the deterministic decision engine, with the
// config file's knobs overlaid on the built-in defaults.
var EngineModule = fx.Provide(
	func(cfg *config.Config) *intelligence.Engine {
		engineCfg := intelligence.DefaultConfig()
		if cfg.Intelligence.IntentTTLMinutes > 0 {
			engineCfg.IntentTTLMinutes = cfg.Intelligence.IntentTTLMinutes
		}
		if cfg.Intelligence.DefaultMaxOptions > 0 {
			engineCfg.DefaultMaxOptions = cfg.Intelligence.DefaultMaxOptions
		}
		if cfg.Intelligence.ProteinDeficitG > 0 {
			engineCfg.Thresholds.ProteinDeficitG = cfg.Intelligence.ProteinDeficitG
		}
		if cfg.Intelligence.FiberDeficitG > 0 {
			engineCfg.Thresholds.FiberDeficitG = cfg.Intelligence.FiberDeficitG
		}
		if cfg.Intelligence.SodiumRiskPct > 0 {
			engineCfg.Thresholds.SodiumRiskPct = cfg.Intelligence.SodiumRiskPct
		}
		if cfg.Intelligence.SugarRiskPct > 0 {
			engineCfg.Thresholds.SugarRiskPct = cfg.Intelligence.SugarRiskPct
		}
		return intelligence.NewEngine(engineCfg)
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*security.ProfileCipher, error) {
		return security.NewProfileCipher(cfg.Auth.ProfileSecret, log)
	},
	gormRepo.NewMealLogRepository,
	gormRepo.NewDailyTotalRepository,
	gormRepo.NewContractRepository,
	gormRepo.NewProfileRepository,
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	func(m *monitoring.MetricsCollector) outbound.IntentCacheRecorder { return m },
	logbook.NewLogbookService,
	appIntelligence.NewIntelligenceService,
	profile.NewProfileService,
)

// HTTPModule provides the HTTP server, handlers, and metrics
var HTTPModule = fx.Provide(
	monitoring.NewMetricsCollector,
	handlers.NewLogbookHandlers,
	handlers.NewIntelligenceHandlers,
	handlers.NewProfileHandlers,
	func(db *gorm.DB, cfg *config.Config, log *zap.Logger) *handlers.HealthHandlers {
		return handlers.NewHealthHandlers(db, cfg.App.Version, log)
	},
	apiserver.NewServer,
)

// LifecycleModule registers startup and shutdown hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks starts the HTTP server on application start and
// drains it, then closes the database, on stop.
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	server *apiserver.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting MacroMind application",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := server.Start(); err != nil {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down MacroMind application")

			if err := server.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			sqlDB, err := db.DB()
			if err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()

			return nil
		},
	})
}
