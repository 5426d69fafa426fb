package model

import "time"

// XPPerLevel is the amount of XP between consecutive levels.
const XPPerLevel = 1000

// UserProfile is the single per-installation profile. It owns the goal and
// achievement collections; CurrentStreak and LongestStreak are caches of
// values re-derived from the session ledger on every append.
type UserProfile struct {
	ID              string     `json:"id" db:"id"`
	TotalXP         int        `json:"total_xp" db:"total_xp"`
	CurrentStreak   int        `json:"current_streak" db:"current_streak"`
	LongestStreak   int        `json:"longest_streak" db:"longest_streak"`
	LastReadingDate *time.Time `json:"last_reading_date,omitempty" db:"last_reading_date"`
	StreaksPaused   bool       `json:"streaks_paused" db:"streaks_paused"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

func (p *UserProfile) CurrentLevel() int {
	return p.TotalXP/XPPerLevel + 1
}

func (p *UserProfile) XPForNextLevel() int {
	return p.CurrentLevel() * XPPerLevel
}

func (p *UserProfile) XPProgressPercentage() float64 {
	return float64(p.TotalXP%XPPerLevel) / XPPerLevel * 100
}
