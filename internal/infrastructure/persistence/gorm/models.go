// Package gorm provides GORM model definitions and repository
// implementations for the application
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MealLogModel represents the GORM model for meal log entries
type MealLogModel struct {
	ID       uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID   string    `gorm:"type:varchar(64);not null;index:idx_meal_logs_user_day"`
	MemberID string    `gorm:"type:varchar(64)"`
	LocalDay string    `gorm:"type:char(10);not null;index:idx_meal_logs_user_day"`
	Window   string    `gorm:"type:varchar(20)"`

	Calories float64 `gorm:"default:0"`
	ProteinG float64 `gorm:"column:protein_g;default:0"`
	SugarG   float64 `gorm:"column:sugar_g;default:0"`
	SodiumMg float64 `gorm:"column:sodium_mg;default:0"`
	FiberG   float64 `gorm:"column:fiber_g;default:0"`
	CarbsG   float64 `gorm:"column:carbs_g;default:0"`
	FatG     float64 `gorm:"column:fat_g;default:0"`

	Description string `gorm:"type:varchar(500)"`
	Cuisine     string `gorm:"type:varchar(50)"`
	Source      string `gorm:"type:varchar(20);default:'manual'"`
	PlanID      string `gorm:"type:varchar(255)"`

	LoggedAt  time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}

// DailyTotalModel represents the GORM model for per-day consumption
// totals, keyed by user and local day
type DailyTotalModel struct {
	UserID   string `gorm:"type:varchar(64);primaryKey"`
	LocalDay string `gorm:"type:char(10);primaryKey"`

	Calories float64 `gorm:"default:0"`
	ProteinG float64 `gorm:"column:protein_g;default:0"`
	SugarG   float64 `gorm:"column:sugar_g;default:0"`
	SodiumMg float64 `gorm:"column:sodium_mg;default:0"`
	FiberG   float64 `gorm:"column:fiber_g;default:0"`
	CarbsG   float64 `gorm:"column:carbs_g;default:0"`
	FatG     float64 `gorm:"column:fat_g;default:0"`

	Meals     int `gorm:"default:0"`
	UpdatedAt time.Time
}

// ContractModel represents the GORM model for daily contracts
type ContractModel struct {
	ID       uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID   string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_contracts_user_day"`
	LocalDay string    `gorm:"type:char(10);not null;uniqueIndex:idx_contracts_user_day"`

	Kind      string `gorm:"type:varchar(30);not null"`
	Statement string `gorm:"type:varchar(255);not null"`

	MetricName     string  `gorm:"type:varchar(30);not null"`
	MetricOperator string  `gorm:"type:varchar(4);not null"`
	MetricTarget   float64 `gorm:"not null"`
	MetricUnit     string  `gorm:"type:varchar(10)"`

	BaselineCaloriesOver float64 `gorm:"column:baseline_calories_over;default:0"`

	ProgressCurrent float64 `gorm:"default:0"`
	ProgressTarget  float64 `gorm:"default:0"`
	ProgressPct     int     `gorm:"default:0"`

	Playbook StringSlice `gorm:"type:json"`
	Status   string      `gorm:"type:varchar(20);default:'draft';index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfileModel represents the GORM model for nutrition profiles.
// The profile body is stored as an encrypted blob; only the key and
// timestamps are readable at rest.
type ProfileModel struct {
	UserID        string `gorm:"type:varchar(64);primaryKey"`
	EncryptedBody []byte `gorm:"type:blob;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// StringSlice is a []string stored as a JSON column
type StringSlice []string

// Value implements driver.Valuer
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
	return json.Unmarshal(data, s)
}

// BeforeCreate hook for MealLogModel
func (m *MealLogModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for ContractModel
func (c *ContractModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName methods for custom table names
func (MealLogModel) TableName() string {
	return "meal_logs"
}

func (DailyTotalModel) TableName() string {
	return "daily_totals"
}

func (ContractModel) TableName() string {
	return "daily_contracts"
}

func (ProfileModel) TableName() string {
	return "profiles"
}
