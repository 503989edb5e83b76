// Package logbook provides the application layer for meal logging
// This implements the use cases defined in the inbound ports
package logbook

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/macromind/v1/internal/domain/logbook"
	"github.com/macromind/v1/internal/domain/nutrition"
	"github.com/macromind/v1/internal/ports/inbound"
	"github.com/macromind/v1/internal/ports/outbound"
	"github.com/macromind/v1/pkg/errors"
)

// behaviorWindowDays is how far back the behavior summary looks.
const behaviorWindowDays = 14

// LogbookService implements the meal logging use cases
type LogbookService struct {
	logRepo   outbound.MealLogRepository
	dailyRepo outbound.DailyConsumedRepository
	logger    *zap.Logger
}

// NewLogbookService creates a new logbook service
func NewLogbookService(
	logRepo outbound.MealLogRepository,
	dailyRepo outbound.DailyConsumedRepository,
	logger *zap.Logger,
) inbound.LogbookService {
	return &LogbookService{
		logRepo:   logRepo,
		dailyRepo: dailyRepo,
		logger:    logger.Named("logbook-service"),
	}
}

// AppendLog records one meal and folds it into the day's running total.
func (s *LogbookService) AppendLog(ctx context.Context, cmd inbound.AppendLogCommand) (*inbound.MealLogDTO, error) {
	entry, err := logbook.NewMealLog(cmd.UserID, cmd.MemberID, cmd.Macros, cmd.LoggedAt)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if cmd.Description != "" {
		if err := entry.SetDescription(cmd.Description); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if cmd.Cuisine != "" {
		entry.SetCuisine(cmd.Cuisine)
	}
	if cmd.Window != "" {
		entry.SetWindow(cmd.Window)
	}
	if cmd.PlanID != "" {
		entry.AttachPlan(cmd.PlanID)
	}
	if cmd.Estimate {
		entry.MarkEstimate()
	}

	if err := s.logRepo.Create(ctx, entry); err != nil {
		return nil, errors.NewDatabaseError("create meal log", err)
	}

	if err := s.dailyRepo.Accumulate(ctx, entry.UserID(), entry.LocalDay(), entry.Macros()); err != nil {
		// The entry itself is saved; the raw entries stay the source of
		// truth for the day even when the rollup write fails.
		s.logger.Error("Failed to update daily total",
			zap.String("user_id", entry.UserID()),
			zap.String("local_day", entry.LocalDay()),
			zap.Error(err),
		)
	}

	s.logger.Info("Meal logged",
		zap.String("log_id", entry.ID().String()),
		zap.String("user_id", entry.UserID()),
		zap.String("local_day", entry.LocalDay()),
		zap.String("source", string(entry.Source())),
	)

	return entityToDTO(entry), nil
}

// GetTodayTotals returns the rolled-up consumption for the caller's day.
func (s *LogbookService) GetTodayTotals(ctx context.Context, userID string, at time.Time) (*inbound.DayTotalsDTO, error) {
	localDay := at.Format("2006-01-02")

	total, err := s.dailyRepo.Get(ctx, userID, localDay)
	if err != nil {
		return nil, errors.NewDatabaseError("get daily total", err)
	}
	if total == nil {
		return &inbound.DayTotalsDTO{LocalDay: localDay}, nil
	}
	return &inbound.DayTotalsDTO{
		LocalDay: total.LocalDay,
		Macros:   total.Macros,
		Meals:    total.Meals,
	}, nil
}

// GetLogsForDay lists the raw entries behind a day's total.
func (s *LogbookService) GetLogsForDay(ctx context.Context, userID, localDay string) ([]*inbound.MealLogDTO, error) {
	logs, err := s.logRepo.FindByUserAndDay(ctx, userID, localDay)
	if err != nil {
		return nil, errors.NewDatabaseError("find meal logs", err)
	}

	dtos := make([]*inbound.MealLogDTO, 0, len(logs))
	for _, log := range logs {
		dtos = append(dtos, entityToDTO(log))
	}
	return dtos, nil
}

// GetBehaviorSummary rolls the last 14 days of totals into the pattern
// signals the intelligence engine adapts on. Days with no entries do not
// count as observed days. Returns nil when nothing has been logged yet.
func (s *LogbookService) GetBehaviorSummary(ctx context.Context, userID string, at time.Time) (*nutrition.BehaviorSummary, error) {
	toDay := at.Format("2006-01-02")
	fromDay := at.AddDate(0, 0, -behaviorWindowDays+1).Format("2006-01-02")

	totals, err := s.dailyRepo.Range(ctx, userID, fromDay, toDay)
	if err != nil {
		return nil, errors.NewDatabaseError("range daily totals", err)
	}
	if len(totals) == 0 {
		return nil, nil
	}

	logs, err := s.logRepo.FindByUserSince(ctx, userID, fromDay)
	if err != nil {
		return nil, errors.NewDatabaseError("find meal logs", err)
	}

	summary := rollupBehavior(totals, logs)
	return &summary, nil
}

// rollupBehavior derives the 14-day pattern from daily totals plus the
// raw entries. Thresholds mirror the default daily targets for a
// maintain goal, which keeps the summary stable across goal changes.
func rollupBehavior(totals []*outbound.DailyTotal, logs []*logbook.MealLog) nutrition.BehaviorSummary {
	const (
		calorieCap   = 2200.0
		proteinFloor = 80.0
		sodiumCap    = 2300.0
		sugarCap     = 40.0
		fiberFloor   = 20.0
	)

	n := float64(len(totals))
	var sum nutrition.Macros
	var highSodium, highSugar, lowProtein, lowFiber, overCalorie float64
	for _, t := range totals {
		sum = sum.Add(t.Macros)
		if t.Macros.SodiumMg > sodiumCap {
			highSodium++
		}
		if t.Macros.SugarG > sugarCap {
			highSugar++
		}
		if t.Macros.ProteinG < proteinFloor {
			lowProtein++
		}
		if t.Macros.FiberG < fiberFloor {
			lowFiber++
		}
		if t.Macros.Calories > calorieCap {
			overCalorie++
		}
	}

	var late float64
	cuisineCounts := make(map[string]int)
	windowCounts := make(map[string]int)
	for _, log := range logs {
		if log.LoggedAt().Hour() >= 21 {
			late++
		}
		if c := log.Cuisine(); c != "" {
			cuisineCounts[c]++
		}
		if w := log.Window(); w != "" {
			windowCounts[w]++
		}
	}
	var latePct float64
	if len(logs) > 0 {
		latePct = late / float64(len(logs))
	}

	summary := nutrition.BehaviorSummary{
		DaysObserved: len(totals),

		AvgCalories: math.Round(sum.Calories / n),
		AvgProteinG: math.Round(sum.ProteinG / n),
		AvgSugarG:   math.Round(sum.SugarG / n),
		AvgSodiumMg: math.Round(sum.SodiumMg / n),
		AvgFiberG:   math.Round(sum.FiberG / n),

		HighSodiumDaysPct:  highSodium / n,
		HighSugarDaysPct:   highSugar / n,
		LowProteinDaysPct:  lowProtein / n,
		LowFiberDaysPct:    lowFiber / n,
		LateEatingPct:      latePct,
		OverCalorieDaysPct: overCalorie / n,

		CommonCuisine: mostCommon(cuisineCounts),
		CommonWindow:  mostCommon(windowCounts),
	}
	return summary.Sanitize()
}

// mostCommon breaks count ties lexicographically so the rollup stays
// deterministic regardless of map iteration order.
func mostCommon(counts map[string]int) string {
	var best string
	bestCount := 0
	for key, count := range counts {
		if count > bestCount || (count == bestCount && key < best) {
			best = key
			bestCount = count
		}
	}
	return best
}

func entityToDTO(log *logbook.MealLog) *inbound.MealLogDTO {
	return &inbound.MealLogDTO{
		ID:          log.ID(),
		UserID:      log.UserID(),
		MemberID:    log.MemberID(),
		LocalDay:    log.LocalDay(),
		Window:      log.Window(),
		Macros:      log.Macros(),
		Description: log.Description(),
		Cuisine:     log.Cuisine(),
		Source:      string(log.Source()),
		PlanID:      log.PlanID(),
		LoggedAt:    log.LoggedAt(),
	}
}
