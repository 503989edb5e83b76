// Package logbook contains the core domain logic for meal logging.
// A MealLog is an append-only record; totals and behavior summaries are
// derived from it, never edited in place.
package logbook

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/macromind/v1/internal/domain/nutrition"
)

// Source identifies where a log entry came from.
type Source string

const (
	SourceManual   Source = "manual"
	SourcePlan     Source = "plan"
	SourceEstimate Source = "estimate"
)

// MealLog represents one logged eating event.
type MealLog struct {
	id       uuid.UUID
	userID   string
	memberID string

	localDay string
	window   string
	macros   nutrition.Macros

	description string
	cuisine     string
	source      Source
	planID      string

	loggedAt  time.Time
	createdAt time.Time
}

// NewMealLog creates a validated meal log entry. The local day is taken
// from loggedAt so entries around midnight land on the day the member
// actually ate.
func NewMealLog(userID, memberID string, macros nutrition.Macros, loggedAt time.Time) (*MealLog, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrMissingUser
	}
	if macros.IsZero() {
		return nil, ErrEmptyMacros
	}
	if loggedAt.IsZero() {
		return nil, ErrMissingTimestamp
	}

	return &MealLog{
		id:        uuid.New(),
		userID:    userID,
		memberID:  memberID,
		localDay:  loggedAt.Format("2006-01-02"),
		macros:    macros.Clamp(),
		source:    SourceManual,
		loggedAt:  loggedAt,
		createdAt: time.Now(),
	}, nil
}

// ReconstructMealLog rebuilds an entity from persistence without
// re-running creation rules.
func ReconstructMealLog(
	id uuid.UUID,
	userID, memberID, localDay, window string,
	macros nutrition.Macros,
	description, cuisine string,
	source Source,
	planID string,
	loggedAt, createdAt time.Time,
) *MealLog {
	return &MealLog{
		id:          id,
		userID:      userID,
		memberID:    memberID,
		localDay:    localDay,
		window:      window,
		macros:      macros,
		description: description,
		cuisine:     cuisine,
		source:      source,
		planID:      planID,
		loggedAt:    loggedAt,
		createdAt:   createdAt,
	}
}

// SetDescription attaches the free-text meal description.
func (m *MealLog) SetDescription(description string) error {
	if len(description) > 500 {
		return ErrDescriptionTooLong
	}
	m.description = strings.TrimSpace(description)
	return nil
}

// SetCuisine records the cuisine the meal belonged to.
func (m *MealLog) SetCuisine(cuisine string) {
	m.cuisine = strings.ToLower(strings.TrimSpace(cuisine))
}

// SetWindow records the meal slot the entry was logged against.
func (m *MealLog) SetWindow(window string) {
	m.window = window
}

// AttachPlan marks the entry as executed from a recommendation plan.
func (m *MealLog) AttachPlan(planID string) {
	if planID == "" {
		return
	}
	m.planID = planID
	m.source = SourcePlan
}

// MarkEstimate flags the macros as a rough estimate rather than a
// measured entry.
func (m *MealLog) MarkEstimate() {
	if m.source != SourcePlan {
		m.source = SourceEstimate
	}
}

func (m *MealLog) ID() uuid.UUID            { return m.id }
func (m *MealLog) UserID() string           { return m.userID }
func (m *MealLog) MemberID() string         { return m.memberID }
func (m *MealLog) LocalDay() string         { return m.localDay }
func (m *MealLog) Window() string           { return m.window }
func (m *MealLog) Macros() nutrition.Macros { return m.macros }
func (m *MealLog) Description() string      { return m.description }
func (m *MealLog) Cuisine() string          { return m.cuisine }
func (m *MealLog) Source() Source           { return m.source }
func (m *MealLog) PlanID() string           { return m.planID }
func (m *MealLog) LoggedAt() time.Time      { return m.loggedAt }
func (m *MealLog) CreatedAt() time.Time     { return m.createdAt }
