package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/shelfmark/shelfmark/internal/model"
)

type AchievementRepository interface {
	Create(achievement *model.Achievement) error
	ByProfile(profileID string) ([]*model.Achievement, error)
	UnlockedTypes(profileID string) (map[model.AchievementType]bool, error)
	MarkSeen(profileID string) error
}

type achievementRepository struct {
	db *sqlx.DB
}

func NewAchievementRepository(db *sqlx.DB) AchievementRepository {
	return &achievementRepository{db: db}
}

func (r *achievementRepository) Create(achievement *model.Achievement) error {
	query := `INSERT INTO achievements (id, profile_id, type, unlocked_at, is_new, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query,
		achievement.ID,
		achievement.ProfileID,
		achievement.Type,
		achievement.UnlockedAt,
		achievement.IsNew,
		achievement.CreatedAt,
	)

	return err
}

func (r *achievementRepository) ByProfile(profileID string) ([]*model.Achievement, error) {
	var achievements []*model.Achievement
	query := `SELECT * FROM achievements WHERE profile_id = $1 ORDER BY unlocked_at DESC`

	err := r.db.Select(&achievements, query, profileID)
	if err != nil {
		return nil, err
	}

	return achievements, nil
}

// UnlockedTypes returns the set of achievement types already unlocked. The
// evaluator consults this to keep unlocking idempotent; a unique index on
// (profile_id, type) backs it at the database level.
func (r *achievementRepository) UnlockedTypes(profileID string) (map[model.AchievementType]bool, error) {
	var types []model.AchievementType
	query := `SELECT type FROM achievements WHERE profile_id = $1`

	err := r.db.Select(&types, query, profileID)
	if err != nil {
		return nil, err
	}

	unlocked := make(map[model.AchievementType]bool, len(types))
	for _, t := range types {
		unlocked[t] = true
	}

	return unlocked, nil
}

func (r *achievementRepository) MarkSeen(profileID string) error {
	_, err := r.db.Exec(`UPDATE achievements SET is_new = false WHERE profile_id = $1 AND is_new = true`, profileID)
	return err
}
