package service

import (
	"fmt"

	"github.com/shelfmark/shelfmark/internal/model"
	"github.com/shelfmark/shelfmark/internal/repository"
)

// ProgressService computes a goal's auto-tracked baseline from the session
// ledger and reconciles it with the goal's stored manual adjustment. It never
// writes; the goal lifecycle applies its results.
type ProgressService struct {
	sessions repository.SessionRepository
	books    repository.BookRepository
	clock    Clock
}

func NewProgressService(
	sessions repository.SessionRepository,
	books repository.BookRepository,
	clock Clock,
) *ProgressService {
	return &ProgressService{
		sessions: sessions,
		books:    books,
		clock:    clock,
	}
}

// BaseProgress is the goal value derivable purely from logged activity,
// ignoring any manual correction.
func (s *ProgressService) BaseProgress(goal *model.ReadingGoal, profile *model.UserProfile) (int, error) {
	switch goal.Type {
	case model.GoalBooksPerYear, model.GoalBooksPerMonth:
		// End date is inclusive, so the query window extends to the next day.
		events, err := s.books.CompletionEventsInRange(dayStart(goal.StartDate), dayStart(goal.EndDate).AddDate(0, 0, 1))
		if err != nil {
			return 0, err
		}
		return len(events), nil

	case model.GoalPagesPerDay, model.GoalMinutesPerDay:
		// Daily goals read today's sessions only; the date comes from the
		// clock on every call so the value resets at midnight.
		today := dayStart(s.clock.Now())
		sessions, err := s.sessions.SessionsInRange(today, today.AddDate(0, 0, 1))
		if err != nil {
			return 0, err
		}

		total := 0
		for _, session := range sessions {
			if goal.Type == model.GoalPagesPerDay {
				total += session.PagesRead
			} else {
				total += session.MinutesRead
			}
		}
		return total, nil

	case model.GoalReadingStreak:
		return profile.CurrentStreak, nil
	}

	return 0, fmt.Errorf("unknown goal type: %q", goal.Type)
}

// DisplayedValue is the baseline plus the manual adjustment, floored at zero.
// It may exceed the target; overshoot is allowed.
func (s *ProgressService) DisplayedValue(goal *model.ReadingGoal, profile *model.UserProfile) (int, error) {
	base, err := s.BaseProgress(goal, profile)
	if err != nil {
		return 0, err
	}

	value := base + goal.ManualAdjustment
	if value < 0 {
		value = 0
	}

	return value, nil
}

// ReconcileManualEdit records a user-entered current value. The manual
// adjustment is recomputed against the baseline at the time of the edit, so
// later baseline growth stays offset from the user's correction instead of
// overwriting it.
func (s *ProgressService) ReconcileManualEdit(goal *model.ReadingGoal, profile *model.UserProfile, newValue int) error {
	if newValue < 0 {
		newValue = 0
	}

	base, err := s.BaseProgress(goal, profile)
	if err != nil {
		return err
	}

	goal.ManualAdjustment = newValue - base
	goal.CurrentValue = newValue
	return nil
}

// AutoCompletable reports whether the displayed value has reached the target.
func (s *ProgressService) AutoCompletable(goal *model.ReadingGoal, displayed int) bool {
	return displayed >= goal.TargetValue
}
