package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shelfmark/shelfmark/internal/model"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

type GoalRepository interface {
	Create(goal *model.ReadingGoal) error
	ByID(goalID string) (*model.ReadingGoal, error)
	Goals(profileID string) ([]*model.ReadingGoal, error)
	Update(goal *model.ReadingGoal) error
	Delete(goalID string) error
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(goal *model.ReadingGoal) error {
	query := `INSERT INTO goals (id, profile_id, type, target_value, current_value, manual_adjustment,
	                             start_date, end_date, is_completed, completion_override, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.Exec(query,
		goal.ID,
		goal.ProfileID,
		goal.Type,
		goal.TargetValue,
		goal.CurrentValue,
		goal.ManualAdjustment,
		goal.StartDate,
		goal.EndDate,
		goal.IsCompleted,
		goal.CompletionOverride,
		goal.CreatedAt,
		goal.UpdatedAt,
	)

	return err
}

func (r *goalRepository) ByID(goalID string) (*model.ReadingGoal, error) {
	goal := &model.ReadingGoal{}
	query := `SELECT * FROM goals WHERE id = $1`

	err := r.db.Get(goal, query, goalID)
	if err == sql.ErrNoRows {
		return nil, ErrGoalNotFound
	}

	return goal, err
}

func (r *goalRepository) Goals(profileID string) ([]*model.ReadingGoal, error) {
	var goals []*model.ReadingGoal
	query := `SELECT * FROM goals WHERE profile_id = $1 ORDER BY is_completed ASC, end_date ASC`

	err := r.db.Select(&goals, query, profileID)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) Update(goal *model.ReadingGoal) error {
	query := `UPDATE goals
	          SET type = $1, target_value = $2, current_value = $3, manual_adjustment = $4,
	              start_date = $5, end_date = $6, is_completed = $7, completion_override = $8, updated_at = $9
	          WHERE id = $10`

	result, err := r.db.Exec(query,
		goal.Type,
		goal.TargetValue,
		goal.CurrentValue,
		goal.ManualAdjustment,
		goal.StartDate,
		goal.EndDate,
		goal.IsCompleted,
		goal.CompletionOverride,
		time.Now(),
		goal.ID,
	)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}

func (r *goalRepository) Delete(goalID string) error {
	result, err := r.db.Exec(`DELETE FROM goals WHERE id = $1`, goalID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}
