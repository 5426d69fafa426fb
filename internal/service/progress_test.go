package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark/internal/model"
	"github.com/shelfmark/shelfmark/internal/repository"
)

var (
	_ repository.SessionRepository     = (*fakeSessionRepo)(nil)
	_ repository.BookRepository        = (*fakeBookRepo)(nil)
	_ repository.ProfileRepository     = (*fakeProfileRepo)(nil)
	_ repository.GoalRepository        = (*fakeGoalRepo)(nil)
	_ repository.AchievementRepository = (*fakeAchievementRepo)(nil)
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func finishedBook(id string, completedAt time.Time) *model.Book {
	return &model.Book{
		ID:          id,
		Title:       id,
		Status:      model.BookStatusFinished,
		CompletedAt: &completedAt,
	}
}

func session(id, bookID string, date time.Time, pages, minutes int) *model.ReadingSession {
	return &model.ReadingSession{
		ID:          id,
		BookID:      bookID,
		Date:        date,
		PagesRead:   pages,
		MinutesRead: minutes,
	}
}

func TestBaseProgress(t *testing.T) {
	now := time.Date(2024, time.June, 15, 14, 30, 0, 0, time.UTC)
	clock := &fixedClock{now: now}

	t.Run("books per month counts completions in window", func(t *testing.T) {
		books := &fakeBookRepo{books: []*model.Book{
			finishedBook("in-window-1", day(2024, time.June, 3)),
			finishedBook("in-window-2", day(2024, time.June, 10)),
			finishedBook("before-window", day(2024, time.May, 20)),
		}}
		svc := NewProgressService(&fakeSessionRepo{}, books, clock)

		goal := &model.ReadingGoal{
			Type:        model.GoalBooksPerMonth,
			TargetValue: 4,
			StartDate:   day(2024, time.June, 1),
			EndDate:     day(2024, time.June, 30),
		}

		base, err := svc.BaseProgress(goal, &model.UserProfile{})
		require.NoError(t, err)
		require.Equal(t, 2, base)
	})

	t.Run("end date is inclusive", func(t *testing.T) {
		books := &fakeBookRepo{books: []*model.Book{
			finishedBook("on-end-date", day(2024, time.June, 30)),
		}}
		svc := NewProgressService(&fakeSessionRepo{}, books, clock)

		goal := &model.ReadingGoal{
			Type:        model.GoalBooksPerMonth,
			TargetValue: 1,
			StartDate:   day(2024, time.June, 1),
			EndDate:     day(2024, time.June, 30),
		}

		base, err := svc.BaseProgress(goal, &model.UserProfile{})
		require.NoError(t, err)
		require.Equal(t, 1, base)
	})

	t.Run("pages per day sums only today", func(t *testing.T) {
		sessions := &fakeSessionRepo{sessions: []*model.ReadingSession{
			session("s1", "b1", day(2024, time.June, 15), 20, 30),
			session("s2", "b1", day(2024, time.June, 15), 15, 10),
			session("s3", "b1", day(2024, time.June, 14), 50, 60),
		}}
		svc := NewProgressService(sessions, &fakeBookRepo{}, clock)

		goal := &model.ReadingGoal{Type: model.GoalPagesPerDay, TargetValue: 30}

		base, err := svc.BaseProgress(goal, &model.UserProfile{})
		require.NoError(t, err)
		require.Equal(t, 35, base)
	})

	t.Run("daily goal resets on a new day", func(t *testing.T) {
		sessions := &fakeSessionRepo{sessions: []*model.ReadingSession{
			session("s1", "b1", day(2024, time.June, 15), 80, 0),
		}}
		midnightClock := &fixedClock{now: day(2024, time.June, 16).Add(10 * time.Minute)}
		svc := NewProgressService(sessions, &fakeBookRepo{}, midnightClock)

		goal := &model.ReadingGoal{Type: model.GoalPagesPerDay, TargetValue: 30}

		base, err := svc.BaseProgress(goal, &model.UserProfile{})
		require.NoError(t, err)
		require.Equal(t, 0, base)
	})

	t.Run("minutes per day", func(t *testing.T) {
		sessions := &fakeSessionRepo{sessions: []*model.ReadingSession{
			session("s1", "b1", day(2024, time.June, 15), 10, 25),
			session("s2", "b2", day(2024, time.June, 15), 0, 35),
		}}
		svc := NewProgressService(sessions, &fakeBookRepo{}, clock)

		goal := &model.ReadingGoal{Type: model.GoalMinutesPerDay, TargetValue: 60}

		base, err := svc.BaseProgress(goal, &model.UserProfile{})
		require.NoError(t, err)
		require.Equal(t, 60, base)
	})

	t.Run("reading streak mirrors profile", func(t *testing.T) {
		svc := NewProgressService(&fakeSessionRepo{}, &fakeBookRepo{}, clock)

		goal := &model.ReadingGoal{Type: model.GoalReadingStreak, TargetValue: 30}
		profile := &model.UserProfile{CurrentStreak: 12}

		base, err := svc.BaseProgress(goal, profile)
		require.NoError(t, err)
		require.Equal(t, 12, base)
	})
}

func TestDisplayedValue(t *testing.T) {
	clock := &fixedClock{now: day(2024, time.June, 15)}

	t.Run("adds manual adjustment to baseline", func(t *testing.T) {
		books := &fakeBookRepo{books: []*model.Book{
			finishedBook("b1", day(2024, time.June, 3)),
			finishedBook("b2", day(2024, time.June, 10)),
		}}
		svc := NewProgressService(&fakeSessionRepo{}, books, clock)

		goal := &model.ReadingGoal{
			Type:             model.GoalBooksPerMonth,
			TargetValue:      4,
			ManualAdjustment: 1,
			StartDate:        day(2024, time.June, 1),
			EndDate:          day(2024, time.June, 30),
		}

		value, err := svc.DisplayedValue(goal, &model.UserProfile{})
		require.NoError(t, err)
		require.Equal(t, 3, value)
	})

	t.Run("never goes negative", func(t *testing.T) {
		svc := NewProgressService(&fakeSessionRepo{}, &fakeBookRepo{}, clock)

		goal := &model.ReadingGoal{
			Type:             model.GoalBooksPerMonth,
			TargetValue:      4,
			ManualAdjustment: -5,
			StartDate:        day(2024, time.June, 1),
			EndDate:          day(2024, time.June, 30),
		}

		value, err := svc.DisplayedValue(goal, &model.UserProfile{})
		require.NoError(t, err)
		require.Equal(t, 0, value)
	})

	t.Run("overshoot above target is allowed", func(t *testing.T) {
		svc := NewProgressService(&fakeSessionRepo{}, &fakeBookRepo{}, clock)

		goal := &model.ReadingGoal{
			Type:             model.GoalBooksPerMonth,
			TargetValue:      2,
			ManualAdjustment: 7,
			StartDate:        day(2024, time.June, 1),
			EndDate:          day(2024, time.June, 30),
		}

		value, err := svc.DisplayedValue(goal, &model.UserProfile{})
		require.NoError(t, err)
		require.Equal(t, 7, value)
	})
}

func TestReconcileManualEdit(t *testing.T) {
	clock := &fixedClock{now: day(2024, time.June, 15)}

	t.Run("round trip", func(t *testing.T) {
		books := &fakeBookRepo{books: []*model.Book{
			finishedBook("b1", day(2024, time.June, 3)),
			finishedBook("b2", day(2024, time.June, 10)),
		}}
		svc := NewProgressService(&fakeSessionRepo{}, books, clock)

		goal := &model.ReadingGoal{
			Type:        model.GoalBooksPerMonth,
			TargetValue: 4,
			StartDate:   day(2024, time.June, 1),
			EndDate:     day(2024, time.June, 30),
		}
		profile := &model.UserProfile{}

		err := svc.ReconcileManualEdit(goal, profile, 3)
		require.NoError(t, err)
		require.Equal(t, 1, goal.ManualAdjustment)
		require.Equal(t, 3, goal.CurrentValue)

		// With the baseline unchanged, the displayed value equals the edit.
		value, err := svc.DisplayedValue(goal, profile)
		require.NoError(t, err)
		require.Equal(t, 3, value)
	})

	t.Run("adjustment survives baseline growth", func(t *testing.T) {
		books := &fakeBookRepo{books: []*model.Book{
			finishedBook("b1", day(2024, time.June, 3)),
			finishedBook("b2", day(2024, time.June, 10)),
		}}
		svc := NewProgressService(&fakeSessionRepo{}, books, clock)

		goal := &model.ReadingGoal{
			Type:        model.GoalBooksPerMonth,
			TargetValue: 4,
			StartDate:   day(2024, time.June, 1),
			EndDate:     day(2024, time.June, 30),
		}
		profile := &model.UserProfile{}

		// User corrects 2 -> 3; adjustment becomes +1.
		err := svc.ReconcileManualEdit(goal, profile, 3)
		require.NoError(t, err)

		// A third completion raises the baseline; the correction is kept.
		books.books = append(books.books, finishedBook("b3", day(2024, time.June, 14)))

		value, err := svc.DisplayedValue(goal, profile)
		require.NoError(t, err)
		require.Equal(t, 4, value)
		require.True(t, svc.AutoCompletable(goal, value))
	})

	t.Run("negative edits clamp to zero", func(t *testing.T) {
		svc := NewProgressService(&fakeSessionRepo{}, &fakeBookRepo{}, clock)

		goal := &model.ReadingGoal{
			Type:        model.GoalBooksPerMonth,
			TargetValue: 4,
			StartDate:   day(2024, time.June, 1),
			EndDate:     day(2024, time.June, 30),
		}

		err := svc.ReconcileManualEdit(goal, &model.UserProfile{}, -2)
		require.NoError(t, err)
		require.Equal(t, 0, goal.CurrentValue)
	})
}
