package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark/internal/model"
)

func TestRecomputeStreak(t *testing.T) {
	newService := func(sessions *fakeSessionRepo, now time.Time) *GamificationService {
		return NewGamificationService(sessions, &fakeBookRepo{}, &fixedClock{now: now})
	}

	t.Run("three consecutive days ending today", func(t *testing.T) {
		sessions := &fakeSessionRepo{sessions: []*model.ReadingSession{
			session("s1", "b1", day(2024, time.June, 13), 10, 0),
			session("s2", "b1", day(2024, time.June, 14), 10, 0),
			session("s3", "b1", day(2024, time.June, 15), 10, 0),
		}}
		svc := newService(sessions, day(2024, time.June, 15).Add(20*time.Hour))

		profile := &model.UserProfile{}
		require.NoError(t, svc.RecomputeStreak(profile))
		require.Equal(t, 3, profile.CurrentStreak)
		require.Equal(t, 3, profile.LongestStreak)
	})

	t.Run("no activity today yet keeps the streak", func(t *testing.T) {
		sessions := &fakeSessionRepo{sessions: []*model.ReadingSession{
			session("s1", "b1", day(2024, time.June, 13), 10, 0),
			session("s2", "b1", day(2024, time.June, 14), 10, 0),
		}}
		// It is the 15th and nothing is logged yet; the run ending yesterday
		// still counts.
		svc := newService(sessions, day(2024, time.June, 15).Add(9*time.Hour))

		profile := &model.UserProfile{}
		require.NoError(t, svc.RecomputeStreak(profile))
		require.Equal(t, 2, profile.CurrentStreak)
	})

	t.Run("a full missed day breaks the streak", func(t *testing.T) {
		sessions := &fakeSessionRepo{sessions: []*model.ReadingSession{
			session("s1", "b1", day(2024, time.June, 12), 10, 0),
			session("s2", "b1", day(2024, time.June, 13), 10, 0),
		}}
		svc := newService(sessions, day(2024, time.June, 15).Add(9*time.Hour))

		profile := &model.UserProfile{}
		require.NoError(t, svc.RecomputeStreak(profile))
		require.Equal(t, 0, profile.CurrentStreak)
	})

	t.Run("reset after gap preserves longest", func(t *testing.T) {
		// Days 1,2,3 then a gap on day 4, activity again on day 5.
		sessions := &fakeSessionRepo{sessions: []*model.ReadingSession{
			session("s1", "b1", day(2024, time.June, 1), 10, 0),
			session("s2", "b1", day(2024, time.June, 2), 10, 0),
			session("s3", "b1", day(2024, time.June, 3), 10, 0),
			session("s4", "b1", day(2024, time.June, 5), 10, 0),
		}}
		svc := newService(sessions, day(2024, time.June, 5).Add(12*time.Hour))

		profile := &model.UserProfile{}
		require.NoError(t, svc.RecomputeStreak(profile))
		require.Equal(t, 1, profile.CurrentStreak)
		require.Equal(t, 3, profile.LongestStreak)
	})

	t.Run("longest streak never decreases", func(t *testing.T) {
		sessions := &fakeSessionRepo{sessions: []*model.ReadingSession{
			session("s1", "b1", day(2024, time.June, 15), 10, 0),
		}}
		svc := newService(sessions, day(2024, time.June, 15).Add(12*time.Hour))

		profile := &model.UserProfile{LongestStreak: 40}
		require.NoError(t, svc.RecomputeStreak(profile))
		require.Equal(t, 1, profile.CurrentStreak)
		require.Equal(t, 40, profile.LongestStreak)
	})

	t.Run("multiple sessions on one day count once", func(t *testing.T) {
		sessions := &fakeSessionRepo{sessions: []*model.ReadingSession{
			session("s1", "b1", day(2024, time.June, 14), 10, 0),
			session("s2", "b2", day(2024, time.June, 14), 5, 0),
			session("s3", "b1", day(2024, time.June, 15), 10, 0),
		}}
		svc := newService(sessions, day(2024, time.June, 15).Add(12*time.Hour))

		profile := &model.UserProfile{}
		require.NoError(t, svc.RecomputeStreak(profile))
		require.Equal(t, 2, profile.CurrentStreak)
	})

	t.Run("empty ledger", func(t *testing.T) {
		svc := newService(&fakeSessionRepo{}, day(2024, time.June, 15))

		profile := &model.UserProfile{}
		require.NoError(t, svc.RecomputeStreak(profile))
		require.Equal(t, 0, profile.CurrentStreak)
		require.Equal(t, 0, profile.LongestStreak)
	})
}

func TestReadingAggregates(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	clock := &fixedClock{now: now}

	books := &fakeBookRepo{books: []*model.Book{
		finishedBook("b1", day(2024, time.June, 3)),
		finishedBook("b2", day(2024, time.March, 10)),
		finishedBook("b3", day(2023, time.December, 28)),
		{ID: "b4", Title: "b4", Status: model.BookStatusReading},
	}}
	sessions := &fakeSessionRepo{sessions: []*model.ReadingSession{
		session("s1", "b1", day(2024, time.June, 3), 120, 90),
		session("s2", "b2", day(2024, time.March, 10), 80, 60),
	}}

	svc := NewGamificationService(sessions, books, clock)

	total, err := svc.TotalBooksRead()
	require.NoError(t, err)
	require.Equal(t, 3, total)

	pages, err := svc.TotalPagesRead()
	require.NoError(t, err)
	require.Equal(t, 200, pages)

	thisYear, err := svc.BooksReadThisYear()
	require.NoError(t, err)
	require.Equal(t, 2, thisYear)

	thisMonth, err := svc.BooksReadThisMonth()
	require.NoError(t, err)
	require.Equal(t, 1, thisMonth)
}
