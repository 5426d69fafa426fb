package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shelfmark/shelfmark/internal/model"
	"github.com/shelfmark/shelfmark/internal/repository"
)

var (
	ErrInvalidTarget    = errors.New("target value must be at least 1")
	ErrInvalidDateRange = errors.New("end date must not be before start date")
	ErrUnknownDuration  = errors.New("unknown goal duration")
	ErrNoAvailableTypes = errors.New("no goal types available")
)

// GoalService orchestrates goal creation, edits, completion detection and
// deletion, applying ProgressService results to persisted state.
type GoalService struct {
	repo     repository.GoalRepository
	progress *ProgressService
	profiles *ProfileService
	clock    Clock
}

func NewGoalService(
	repo repository.GoalRepository,
	progress *ProgressService,
	profiles *ProfileService,
	clock Clock,
) *GoalService {
	return &GoalService{
		repo:     repo,
		progress: progress,
		profiles: profiles,
		clock:    clock,
	}
}

// AvailableTypes returns the goal types the user may pick. Streak goals are
// hidden while streaks are paused.
func (s *GoalService) AvailableTypes(profile *model.UserProfile) []model.GoalType {
	types := make([]model.GoalType, 0, len(model.GoalTypes))
	for _, t := range model.GoalTypes {
		if t == model.GoalReadingStreak && profile.StreaksPaused {
			continue
		}
		types = append(types, t)
	}
	return types
}

// resolveType falls back to the first available type when the requested one
// is not currently offered, instead of keeping an invalid selection.
func (s *GoalService) resolveType(profile *model.UserProfile, requested model.GoalType) (model.GoalType, error) {
	available := s.AvailableTypes(profile)
	for _, t := range available {
		if t == requested {
			return requested, nil
		}
	}

	if len(available) == 0 {
		return "", ErrNoAvailableTypes
	}

	slog.Info("goal type unavailable, falling back", "requested", requested, "fallback", available[0])
	return available[0], nil
}

// Create builds a goal starting today. The end date comes from a duration
// preset via calendar-correct addition, or from an explicit custom date that
// must not be in the past.
func (s *GoalService) Create(goalType model.GoalType, targetValue int, duration model.GoalDuration, customEnd *time.Time) (*model.ReadingGoal, error) {
	if targetValue < 1 {
		return nil, ErrInvalidTarget
	}

	profile, err := s.profiles.Profile()
	if err != nil {
		return nil, err
	}

	resolved, err := s.resolveType(profile, goalType)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	start := dayStart(now)

	var end time.Time
	switch duration {
	case model.DurationWeek:
		end = start.AddDate(0, 0, 7)
	case model.DurationMonth:
		end = start.AddDate(0, 1, 0)
	case model.DurationQuarter:
		end = start.AddDate(0, 3, 0)
	case model.DurationYear:
		end = start.AddDate(1, 0, 0)
	case model.DurationCustom:
		if customEnd == nil || dayStart(*customEnd).Before(start) {
			return nil, ErrInvalidDateRange
		}
		end = dayStart(*customEnd)
	default:
		return nil, ErrUnknownDuration
	}

	goal := &model.ReadingGoal{
		ID:          uuid.New().String(),
		ProfileID:   profile.ID,
		Type:        resolved,
		TargetValue: targetValue,
		StartDate:   start,
		EndDate:     end,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// A fresh window usually starts at zero, but books finished earlier today
	// or an ongoing streak count immediately.
	base, err := s.progress.BaseProgress(goal, profile)
	if err != nil {
		return nil, err
	}
	goal.CurrentValue = base

	err = s.repo.Create(goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return goal, nil
}

func (s *GoalService) ByID(goalID string) (*model.ReadingGoal, error) {
	return s.repo.ByID(goalID)
}

func (s *GoalService) Goals() ([]*model.ReadingGoal, error) {
	profile, err := s.profiles.Profile()
	if err != nil {
		return nil, err
	}
	return s.repo.Goals(profile.ID)
}

// Update edits a goal's target and end date. Changing either releases a
// manual completion override, so the next refresh re-derives IsCompleted.
func (s *GoalService) Update(goalID string, targetValue int, endDate time.Time) (*model.ReadingGoal, error) {
	if targetValue < 1 {
		return nil, ErrInvalidTarget
	}

	goal, err := s.repo.ByID(goalID)
	if err != nil {
		return nil, err
	}

	end := dayStart(endDate)
	if end.Before(dayStart(goal.StartDate)) {
		return nil, ErrInvalidDateRange
	}

	changed := goal.TargetValue != targetValue || !goal.EndDate.Equal(end)
	goal.TargetValue = targetValue
	goal.EndDate = end
	if changed {
		goal.CompletionOverride = false
	}

	err = s.refreshGoal(goal)
	if err != nil {
		return nil, err
	}

	err = s.repo.Update(goal)
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// SetCurrentValue applies a direct user edit of the displayed value. The
// manual adjustment is reconciled against the baseline before saving, so the
// edit survives later baseline recomputation.
func (s *GoalService) SetCurrentValue(goalID string, newValue int) (*model.ReadingGoal, error) {
	goal, err := s.repo.ByID(goalID)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.Profile()
	if err != nil {
		return nil, err
	}

	err = s.progress.ReconcileManualEdit(goal, profile, newValue)
	if err != nil {
		return nil, err
	}

	if !goal.CompletionOverride && s.progress.AutoCompletable(goal, goal.CurrentValue) {
		goal.IsCompleted = true
	}

	err = s.repo.Update(goal)
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// SetCompleted toggles completion by explicit user action. The toggle is
// sticky: refresh will not flip it back until target or dates change.
func (s *GoalService) SetCompleted(goalID string, completed bool) (*model.ReadingGoal, error) {
	goal, err := s.repo.ByID(goalID)
	if err != nil {
		return nil, err
	}

	goal.IsCompleted = completed
	goal.CompletionOverride = true

	err = s.repo.Update(goal)
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// Refresh recomputes every goal's displayed value from the ledger and
// auto-completes goals that reached their target. Called after each ledger
// append.
func (s *GoalService) Refresh() error {
	profile, err := s.profiles.Profile()
	if err != nil {
		return err
	}

	goals, err := s.repo.Goals(profile.ID)
	if err != nil {
		return err
	}

	for _, goal := range goals {
		err = s.refreshGoal(goal)
		if err != nil {
			return err
		}

		err = s.repo.Update(goal)
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *GoalService) refreshGoal(goal *model.ReadingGoal) error {
	profile, err := s.profiles.Profile()
	if err != nil {
		return err
	}

	displayed, err := s.progress.DisplayedValue(goal, profile)
	if err != nil {
		return err
	}

	goal.CurrentValue = displayed

	if !goal.CompletionOverride {
		goal.IsCompleted = s.progress.AutoCompletable(goal, displayed)
	}

	return nil
}

func (s *GoalService) Delete(goalID string) error {
	_, err := s.repo.ByID(goalID)
	if err != nil {
		return err
	}

	return s.repo.Delete(goalID)
}
