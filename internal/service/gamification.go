package service

import (
	"time"

	"github.com/shelfmark/shelfmark/internal/model"
	"github.com/shelfmark/shelfmark/internal/repository"
)

// XP awards per triggering event.
const (
	XPPerPage       = 1
	XPBookCompleted = 50
	XPStreakDay     = 10
)

// GamificationService derives streak and reading aggregates from the session
// ledger. Streaks are fully re-derived on every ledger append; the profile's
// streak columns are a cache of the last derivation.
type GamificationService struct {
	sessions repository.SessionRepository
	books    repository.BookRepository
	clock    Clock
}

func NewGamificationService(
	sessions repository.SessionRepository,
	books repository.BookRepository,
	clock Clock,
) *GamificationService {
	return &GamificationService{
		sessions: sessions,
		books:    books,
		clock:    clock,
	}
}

func (s *GamificationService) TotalBooksRead() (int, error) {
	return s.books.CountFinished()
}

func (s *GamificationService) TotalPagesRead() (int, error) {
	return s.sessions.TotalPagesRead()
}

func (s *GamificationService) BooksReadThisYear() (int, error) {
	now := s.clock.Now()
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	events, err := s.books.CompletionEventsInRange(start, start.AddDate(1, 0, 0))
	if err != nil {
		return 0, err
	}
	return len(events), nil
}

func (s *GamificationService) BooksReadThisMonth() (int, error) {
	now := s.clock.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	events, err := s.books.CompletionEventsInRange(start, start.AddDate(0, 1, 0))
	if err != nil {
		return 0, err
	}
	return len(events), nil
}

// StreakStatus returns the cached streak pair from the profile.
func (s *GamificationService) StreakStatus(profile *model.UserProfile) (current, longest int) {
	return profile.CurrentStreak, profile.LongestStreak
}

// RecomputeStreak re-derives the streak from the ledger and refreshes the
// profile's cached columns in memory. CurrentStreak is the run of consecutive
// qualifying days ending today or yesterday; a day without activity only
// breaks the streak once a full calendar day has passed. LongestStreak never
// decreases.
func (s *GamificationService) RecomputeStreak(profile *model.UserProfile) error {
	dates, err := s.sessions.AllSessionDates()
	if err != nil {
		return err
	}

	today := utcDay(s.clock.Now())
	profile.CurrentStreak = currentRun(dates, today)

	if longest := longestRun(dates); longest > profile.LongestStreak {
		profile.LongestStreak = longest
	}
	if profile.CurrentStreak > profile.LongestStreak {
		profile.LongestStreak = profile.CurrentStreak
	}

	if len(dates) > 0 {
		last := dates[len(dates)-1]
		profile.LastReadingDate = &last
	}

	return nil
}

// currentRun counts consecutive qualifying days ending on today or, if today
// has no activity yet, yesterday. Days are compared as UTC calendar dates so
// ledger dates and the clock agree regardless of location.
func currentRun(dates []time.Time, today time.Time) int {
	days := make(map[time.Time]bool, len(dates))
	for _, d := range dates {
		days[utcDay(d)] = true
	}

	anchor := today
	if !days[anchor] {
		anchor = today.AddDate(0, 0, -1)
		if !days[anchor] {
			return 0
		}
	}

	run := 0
	for days[anchor] {
		run++
		anchor = anchor.AddDate(0, 0, -1)
	}

	return run
}

// longestRun finds the maximal run of consecutive days anywhere in the
// ledger. dates must be ascending and distinct.
func longestRun(dates []time.Time) int {
	longest, run := 0, 0
	var prev time.Time

	for i, d := range dates {
		day := utcDay(d)
		if i > 0 && day.Sub(prev) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		prev = day
	}

	return longest
}
