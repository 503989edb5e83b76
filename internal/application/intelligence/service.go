// Package intelligence provides the application layer around the
// decision engine: it loads the member's state, runs the pipeline, and
// caches intents for their lifetime.
package intelligence

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/macromind/v1/internal/domain/intelligence"
	"github.com/macromind/v1/internal/domain/nutrition"
	"github.com/macromind/v1/internal/ports/inbound"
	"github.com/macromind/v1/internal/ports/outbound"
	"github.com/macromind/v1/pkg/errors"
)

// IntelligenceService implements the decision-pipeline use cases
type IntelligenceService struct {
	engine       *intelligence.Engine
	profileRepo  outbound.ProfileRepository
	dailyRepo    outbound.DailyConsumedRepository
	logRepo      outbound.MealLogRepository
	contractRepo outbound.ContractRepository
	behavior     inbound.LogbookService
	cache        outbound.CacheRepository
	recorder     outbound.IntentCacheRecorder
	logger       *zap.Logger
}

// NewIntelligenceService creates a new intelligence service
func NewIntelligenceService(
	engine *intelligence.Engine,
	profileRepo outbound.ProfileRepository,
	dailyRepo outbound.DailyConsumedRepository,
	logRepo outbound.MealLogRepository,
	contractRepo outbound.ContractRepository,
	behavior inbound.LogbookService,
	cache outbound.CacheRepository,
	recorder outbound.IntentCacheRecorder,
	logger *zap.Logger,
) inbound.IntelligenceService {
	return &IntelligenceService{
		engine:       engine,
		profileRepo:  profileRepo,
		dailyRepo:    dailyRepo,
		logRepo:      logRepo,
		contractRepo: contractRepo,
		behavior:     behavior,
		cache:        cache,
		recorder:     recorder,
		logger:       logger.Named("intelligence-service"),
	}
}

// GetDailyVector classifies the caller's day against their targets.
func (s *IntelligenceService) GetDailyVector(ctx context.Context, query inbound.VectorQuery) (*intelligence.DailyVector, error) {
	profile, consumed, behavior, err := s.loadState(ctx, query.UserID, query.At)
	if err != nil {
		return nil, err
	}

	vector := s.engine.BuildDailyVector(*profile, consumed, query.TargetsOverride, behavior)
	return &vector, nil
}

// GetBestNextMeal runs the full pipeline. The intent is cached under its
// own ID until it expires, so repeated calls inside one meal window
// return the same recommendation rather than flickering.
func (s *IntelligenceService) GetBestNextMeal(ctx context.Context, query inbound.NextMealQuery) (*inbound.NextMealResult, error) {
	profile, consumed, behavior, err := s.loadState(ctx, query.UserID, query.At)
	if err != nil {
		return nil, err
	}

	vector := s.engine.BuildDailyVector(*profile, consumed, nil, behavior)
	gap := intelligence.ComputeMacroGap(vector)

	intent := s.engine.BuildIntent(*profile, gap, behavior, query.At)
	if cached, ok := s.cachedIntent(ctx, intent.IntentID, query.At); ok {
		intent = cached
		if s.recorder != nil {
			s.recorder.IntentCacheHit()
		}
	} else {
		s.cacheIntent(ctx, intent, query.At)
		if s.recorder != nil {
			s.recorder.IntentCacheMiss()
		}
	}

	options := s.engine.SynthesizeOptions(intent)
	plan := s.engine.BuildExecutionPlan(intent, options, query.At)

	s.logger.Info("Next meal decided",
		zap.String("intent_id", intent.IntentID),
		zap.String("window", string(intent.Context.TimeWindow)),
		zap.String("route", string(plan.Meta.PrimaryRoute)),
		zap.Float64("confidence", plan.Meta.Confidence),
	)

	return &inbound.NextMealResult{
		Intent:  intent,
		Options: options,
		Plan:    plan,
	}, nil
}

// cachedIntent returns the stored intent for this ID when it is still
// alive. Expired or undecodable entries are treated as misses.
func (s *IntelligenceService) cachedIntent(ctx context.Context, intentID string, now time.Time) (intelligence.BestNextMealIntent, bool) {
	var intent intelligence.BestNextMealIntent
	if s.cache == nil {
		return intent, false
	}

	raw, err := s.cache.Get(ctx, intentCacheKey(intentID))
	if err != nil || len(raw) == 0 {
		return intent, false
	}
	if err := json.Unmarshal(raw, &intent); err != nil {
		s.logger.Warn("Dropping undecodable cached intent",
			zap.String("intent_id", intentID),
			zap.Error(err),
		)
		return intelligence.BestNextMealIntent{}, false
	}
	if !intent.ExpiresAt.After(now) {
		return intelligence.BestNextMealIntent{}, false
	}
	return intent, true
}

func (s *IntelligenceService) cacheIntent(ctx context.Context, intent intelligence.BestNextMealIntent, now time.Time) {
	if s.cache == nil {
		return
	}
	ttl := intent.ExpiresAt.Sub(now)
	if ttl <= 0 {
		return
	}
	raw, err := json.Marshal(intent)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, intentCacheKey(intent.IntentID), raw, ttl); err != nil {
		s.logger.Warn("Failed to cache intent",
			zap.String("intent_id", intent.IntentID),
			zap.Error(err),
		)
	}
}

func intentCacheKey(intentID string) string {
	return "macromind:intent:" + intentID
}

// GetDailyContract returns today's contract, computing and persisting a
// fresh one on first request of the day.
func (s *IntelligenceService) GetDailyContract(ctx context.Context, query inbound.ContractQuery) (*intelligence.DailyContract, error) {
	localDay := query.At.Format("2006-01-02")

	record, err := s.contractRepo.FindByUserAndDay(ctx, query.UserID, localDay)
	if err != nil {
		return nil, errors.NewDatabaseError("find daily contract", err)
	}
	if record != nil {
		return &record.Contract, nil
	}

	profile, consumed, behavior, err := s.loadState(ctx, query.UserID, query.At)
	if err != nil {
		return nil, err
	}

	vector := s.engine.BuildDailyVector(*profile, consumed, nil, behavior)
	gap := intelligence.ComputeMacroGap(vector)
	contract := s.engine.ComputeDailyContract(gap)
	contract.Status = intelligence.ContractActive

	record = &outbound.ContractRecord{
		ID:       uuid.New(),
		UserID:   query.UserID,
		LocalDay: localDay,
	}
	if contract.Kind == intelligence.ContractCalorieCap {
		record.BaselineCaloriesOver = gap.CaloriesExceeded
	}
	contract.Progress = s.contractReading(ctx, query.UserID, localDay, contract, consumed, vector.Targets.Calories, record.BaselineCaloriesOver)
	record.Contract = contract
	if err := s.contractRepo.Save(ctx, record); err != nil {
		return nil, errors.NewDatabaseError("save daily contract", err)
	}

	s.logger.Info("Daily contract issued",
		zap.String("user_id", query.UserID),
		zap.String("local_day", localDay),
		zap.String("kind", string(contract.Kind)),
	)
	return &contract, nil
}

// RefreshContractProgress re-reads the active contract against current
// consumption and persists the new progress. A contract that reaches its
// target flips to completed.
func (s *IntelligenceService) RefreshContractProgress(ctx context.Context, query inbound.ContractQuery) (*intelligence.DailyContract, error) {
	localDay := query.At.Format("2006-01-02")

	record, err := s.contractRepo.FindByUserAndDay(ctx, query.UserID, localDay)
	if err != nil {
		return nil, errors.NewDatabaseError("find daily contract", err)
	}
	if record == nil {
		return nil, errors.NewContractNotFoundError(query.UserID, localDay)
	}

	profile, err := s.profileRepo.FindByUserID(ctx, query.UserID)
	if err != nil {
		return nil, errors.NewDatabaseError("find profile", err)
	}
	if profile == nil {
		return nil, errors.NewProfileNotFoundError(query.UserID)
	}

	total, err := s.dailyRepo.Get(ctx, query.UserID, localDay)
	if err != nil {
		return nil, errors.NewDatabaseError("get daily total", err)
	}
	var consumed nutrition.Macros
	if total != nil {
		consumed = total.Macros
	}

	// The calorie overage is read against the member's current daily
	// target, not against the contract's allowance.
	targets := s.engine.BuildDailyVector(*profile, consumed, nil, nil).Targets

	contract := record.Contract
	contract.Progress = s.contractReading(ctx, query.UserID, localDay, contract, consumed, targets.Calories, record.BaselineCaloriesOver)
	if contract.Status == intelligence.ContractActive && contract.Progress.Pct >= 100 {
		contract.Status = intelligence.ContractCompleted
	}

	if err := s.contractRepo.UpdateStatus(ctx, record.ID, contract.Status, contract.Progress); err != nil {
		return nil, errors.NewDatabaseError("update contract progress", err)
	}
	return &contract, nil
}

// contractReading maps the contract's metric onto today's numbers.
func (s *IntelligenceService) contractReading(ctx context.Context, userID, localDay string, contract intelligence.DailyContract, consumed nutrition.Macros, calorieTarget, baselineOver float64) intelligence.ContractProgress {
	var current float64
	switch contract.Metric.Name {
	case "protein_g":
		current = consumed.ProteinG
	case "fiber_g":
		current = consumed.FiberG
	case "calories_over":
		// Progress on a cap contract means staying under it: the reading
		// is the allowance still unspent. Only overage accrued since the
		// contract was issued counts against the allowance; the overage
		// already standing at issuance is the baseline.
		over := consumed.Calories - calorieTarget
		if over < baselineOver {
			over = baselineOver
		}
		remaining := contract.Metric.Target - (over - baselineOver)
		if remaining < 0 {
			remaining = 0
		}
		current = remaining
	case "meals_logged":
		count, err := s.logRepo.CountByUserAndDay(ctx, userID, localDay)
		if err != nil {
			s.logger.Warn("Failed to count meals for contract",
				zap.String("user_id", userID),
				zap.Error(err),
			)
		}
		current = float64(count)
	}
	return intelligence.EvaluateContractProgress(contract, current)
}

// loadState gathers the profile, today's consumption, and the behavior
// summary. Behavior is only attached for consented sync profiles.
func (s *IntelligenceService) loadState(ctx context.Context, userID string, at time.Time) (*nutrition.ProfileSummary, nutrition.Macros, *nutrition.BehaviorSummary, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, nutrition.Macros{}, nil, errors.NewDatabaseError("find profile", err)
	}
	if profile == nil {
		return nil, nutrition.Macros{}, nil, errors.NewProfileNotFoundError(userID)
	}

	var consumed nutrition.Macros
	total, err := s.dailyRepo.Get(ctx, userID, at.Format("2006-01-02"))
	if err != nil {
		return nil, nutrition.Macros{}, nil, errors.NewDatabaseError("get daily total", err)
	}
	if total != nil {
		consumed = total.Macros
	}

	var behavior *nutrition.BehaviorSummary
	if profile.Mode == nutrition.ModeSync && profile.Consented {
		behavior, err = s.behavior.GetBehaviorSummary(ctx, userID, at)
		if err != nil {
			// The pipeline degrades to behavior-free output rather than
			// failing the request.
			s.logger.Warn("Behavior summary unavailable",
				zap.String("user_id", userID),
				zap.Error(err),
			)
			behavior = nil
		}
	}

	return profile, consumed, behavior, nil
}
