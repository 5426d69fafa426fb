package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shelfmark/shelfmark/internal/model"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
)

type ProfileRepository interface {
	Get() (*model.UserProfile, error)
	Create(profile *model.UserProfile) error
	Update(profile *model.UserProfile) error
}

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// Get returns the installation's profile. There is at most one row.
func (r *profileRepository) Get() (*model.UserProfile, error) {
	var profile model.UserProfile
	err := r.db.Get(&profile, `SELECT * FROM profiles LIMIT 1`)

	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *profileRepository) Create(profile *model.UserProfile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now()
	}
	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = time.Now()
	}

	_, err := r.db.Exec(`
		INSERT INTO profiles (id, total_xp, current_streak, longest_streak, last_reading_date, streaks_paused, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		profile.ID,
		profile.TotalXP,
		profile.CurrentStreak,
		profile.LongestStreak,
		profile.LastReadingDate,
		profile.StreaksPaused,
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	return err
}

func (r *profileRepository) Update(profile *model.UserProfile) error {
	result, err := r.db.Exec(`
		UPDATE profiles
		SET total_xp = $1, current_streak = $2, longest_streak = $3, last_reading_date = $4, streaks_paused = $5, updated_at = $6
		WHERE id = $7
	`,
		profile.TotalXP,
		profile.CurrentStreak,
		profile.LongestStreak,
		profile.LastReadingDate,
		profile.StreaksPaused,
		time.Now(),
		profile.ID,
	)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrProfileNotFound
	}

	return nil
}
