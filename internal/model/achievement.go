package model

import "time"

// AchievementType enumerates the milestone achievements. Each type unlocks
// at most once per profile.
type AchievementType string

const (
	AchievementFirstBook   AchievementType = "first_book"
	AchievementBooks10     AchievementType = "books_10"
	AchievementBooks50     AchievementType = "books_50"
	AchievementBooks100    AchievementType = "books_100"
	AchievementPages100    AchievementType = "pages_100"
	AchievementPages1000   AchievementType = "pages_1000"
	AchievementPages10000  AchievementType = "pages_10000"
	AchievementStreak7     AchievementType = "streak_7"
	AchievementStreak30    AchievementType = "streak_30"
	AchievementStreak100   AchievementType = "streak_100"
	AchievementLevel5      AchievementType = "level_5"
	AchievementLevel10     AchievementType = "level_10"
	AchievementLevel20     AchievementType = "level_20"
	AchievementMarathonDay AchievementType = "marathon_day"
	AchievementDeepSession AchievementType = "deep_session"
)

type Achievement struct {
	ID        string          `json:"id" db:"id"`
	ProfileID string          `json:"profile_id" db:"profile_id"`
	Type      AchievementType `json:"type" db:"type"`
	// UnlockedAt is set once at unlock and never changes.
	UnlockedAt time.Time `json:"unlocked_at" db:"unlocked_at"`
	IsNew      bool      `json:"is_new" db:"is_new"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
