// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/macromind/v1/internal/domain/intelligence"
	"github.com/macromind/v1/internal/domain/logbook"
	"github.com/macromind/v1/internal/domain/nutrition"
)

// MealLogRepository defines the interface for meal log persistence
type MealLogRepository interface {
	Create(ctx context.Context, log *logbook.MealLog) error
	FindByID(ctx context.Context, id uuid.UUID) (*logbook.MealLog, error)
	FindByUserAndDay(ctx context.Context, userID, localDay string) ([]*logbook.MealLog, error)
	FindByUserSince(ctx context.Context, userID, sinceDay string) ([]*logbook.MealLog, error)
	CountByUserAndDay(ctx context.Context, userID, localDay string) (int64, error)
}

// DailyTotal is the rolled-up consumption for one user on one local day.
type DailyTotal struct {
	UserID   string
	LocalDay string
	Macros   nutrition.Macros
	Meals    int
}

// DailyConsumedRepository defines the interface for per-day consumption
// totals, keyed by (userID, localDay). Accumulate must fold one meal
// into the total atomically; concurrent calls may never lose a meal.
type DailyConsumedRepository interface {
	Get(ctx context.Context, userID, localDay string) (*DailyTotal, error)
	Upsert(ctx context.Context, total *DailyTotal) error
	Accumulate(ctx context.Context, userID, localDay string, macros nutrition.Macros) error
	Range(ctx context.Context, userID, fromDay, toDay string) ([]*DailyTotal, error)
}

// ContractRecord is a persisted daily contract with its lifecycle state.
// BaselineCaloriesOver is the calorie overage already standing when a
// calorie-cap contract was issued; later readings only count overage
// accrued beyond it. Zero for every other contract kind.
type ContractRecord struct {
	ID                   uuid.UUID
	UserID               string
	LocalDay             string
	Contract             intelligence.DailyContract
	BaselineCaloriesOver float64
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ContractRepository defines the interface for daily contract persistence
type ContractRepository interface {
	Save(ctx context.Context, record *ContractRecord) error
	FindByUserAndDay(ctx context.Context, userID, localDay string) (*ContractRecord, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status intelligence.ContractStatus, progress intelligence.ContractProgress) error
}

// ProfileRepository defines the interface for nutrition profile persistence.
// Implementations store the profile body encrypted at rest.
type ProfileRepository interface {
	Save(ctx context.Context, profile *nutrition.ProfileSummary) error
	FindByUserID(ctx context.Context, userID string) (*nutrition.ProfileSummary, error)
	Delete(ctx context.Context, userID string) error
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// IntentCacheRecorder counts cache effectiveness for the decision
// pipeline. A nil recorder is valid and records nothing.
type IntentCacheRecorder interface {
	IntentCacheHit()
	IntentCacheMiss()
}
