package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// GoalType is the persisted discriminant for a reading goal. Unknown values
// are rejected at the database boundary instead of defaulting.
type GoalType string

const (
	GoalBooksPerYear  GoalType = "books_per_year"
	GoalBooksPerMonth GoalType = "books_per_month"
	GoalPagesPerDay   GoalType = "pages_per_day"
	GoalMinutesPerDay GoalType = "minutes_per_day"
	GoalReadingStreak GoalType = "reading_streak"
)

// GoalTypes lists all variants in display order.
var GoalTypes = []GoalType{
	GoalBooksPerYear,
	GoalBooksPerMonth,
	GoalPagesPerDay,
	GoalMinutesPerDay,
	GoalReadingStreak,
}

func ParseGoalType(s string) (GoalType, error) {
	t := GoalType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown goal type: %q", s)
	}
	return t, nil
}

func (t GoalType) Valid() bool {
	switch t {
	case GoalBooksPerYear, GoalBooksPerMonth, GoalPagesPerDay, GoalMinutesPerDay, GoalReadingStreak:
		return true
	}
	return false
}

// Daily reports whether the goal resets at each day boundary.
func (t GoalType) Daily() bool {
	return t == GoalPagesPerDay || t == GoalMinutesPerDay
}

func (t *GoalType) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into GoalType", src)
	}

	parsed, err := ParseGoalType(s)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}

func (t GoalType) Value() (driver.Value, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("unknown goal type: %q", string(t))
	}
	return string(t), nil
}

// GoalDuration is a preset for computing a goal's end date at creation.
type GoalDuration string

const (
	DurationWeek    GoalDuration = "week"
	DurationMonth   GoalDuration = "month"
	DurationQuarter GoalDuration = "quarter"
	DurationYear    GoalDuration = "year"
	DurationCustom  GoalDuration = "custom"
)

type ReadingGoal struct {
	ID               string    `json:"id" db:"id"`
	ProfileID        string    `json:"profile_id" db:"profile_id"`
	Type             GoalType  `json:"type" db:"type"`
	TargetValue      int       `json:"target_value" db:"target_value"`
	CurrentValue     int       `json:"current_value" db:"current_value"`
	ManualAdjustment int       `json:"manual_adjustment" db:"manual_adjustment"`
	StartDate        time.Time `json:"start_date" db:"start_date"`
	EndDate          time.Time `json:"end_date" db:"end_date"`
	IsCompleted      bool      `json:"is_completed" db:"is_completed"`
	// CompletionOverride marks IsCompleted as user-set. An overridden flag is
	// never re-flipped by baseline recomputation; editing target or dates
	// clears it.
	CompletionOverride bool      `json:"completion_override" db:"completion_override"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// ProgressPercentage is CurrentValue relative to TargetValue, clamped to
// [0, 100]. TargetValue is at least 1 by construction.
func (g *ReadingGoal) ProgressPercentage() float64 {
	if g.TargetValue < 1 {
		return 0
	}
	pct := float64(g.CurrentValue) / float64(g.TargetValue) * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}
