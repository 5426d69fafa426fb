package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shelfmark/shelfmark/internal/model"
	"github.com/shelfmark/shelfmark/internal/repository"
)

var (
	ErrEmptySession    = errors.New("session must log pages or minutes")
	ErrNegativeAmounts = errors.New("pages and minutes must not be negative")
	ErrFutureSession   = errors.New("session date must not be in the future")
)

// SessionService appends reading sessions to the ledger and propagates each
// append: streak re-derivation, XP awards, goal refresh, achievement
// evaluation. Awards happen once, here, at event time.
type SessionService struct {
	sessions     repository.SessionRepository
	books        repository.BookRepository
	profiles     *ProfileService
	gamification *GamificationService
	goals        *GoalService
	achievements *AchievementService
	clock        Clock
}

func NewSessionService(
	sessions repository.SessionRepository,
	books repository.BookRepository,
	profiles *ProfileService,
	gamification *GamificationService,
	goals *GoalService,
	achievements *AchievementService,
	clock Clock,
) *SessionService {
	return &SessionService{
		sessions:     sessions,
		books:        books,
		profiles:     profiles,
		gamification: gamification,
		goals:        goals,
		achievements: achievements,
		clock:        clock,
	}
}

// Log appends one session and applies every downstream effect of the append.
// A nil date means today.
func (s *SessionService) Log(bookID string, date *time.Time, pages, minutes int) (*model.ReadingSession, error) {
	if pages < 0 || minutes < 0 {
		return nil, ErrNegativeAmounts
	}
	if pages == 0 && minutes == 0 {
		return nil, ErrEmptySession
	}

	book, err := s.books.ByID(bookID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	day := dayStart(now)
	if date != nil {
		day = dayStart(*date)
	}
	if day.After(dayStart(now)) {
		return nil, ErrFutureSession
	}

	session := &model.ReadingSession{
		ID:          uuid.New().String(),
		BookID:      book.ID,
		Date:        day,
		PagesRead:   pages,
		MinutesRead: minutes,
		CreatedAt:   now,
	}

	err = s.sessions.Create(session)
	if err != nil {
		return nil, fmt.Errorf("failed to log session: %w", err)
	}

	profile, err := s.profiles.Profile()
	if err != nil {
		return nil, err
	}

	// Re-derive the streak from the grown ledger; the previous cached value
	// tells us whether this append extended it.
	previousStreak := profile.CurrentStreak
	err = s.gamification.RecomputeStreak(profile)
	if err != nil {
		return nil, err
	}

	xp := pages * XPPerPage
	if profile.CurrentStreak > previousStreak {
		xp += XPStreakDay
	}
	profile.TotalXP += xp

	err = s.profiles.Update(profile)
	if err != nil {
		return nil, err
	}

	err = s.goals.Refresh()
	if err != nil {
		return nil, err
	}

	_, err = s.achievements.Evaluate(profile)
	if err != nil {
		return nil, err
	}

	return session, nil
}

func (s *SessionService) ByBook(bookID string) ([]*model.ReadingSession, error) {
	return s.sessions.ByBook(bookID)
}

func (s *SessionService) Delete(sessionID string) error {
	_, err := s.sessions.ByID(sessionID)
	if err != nil {
		return err
	}

	err = s.sessions.Delete(sessionID)
	if err != nil {
		return err
	}

	// The ledger shrank; re-derive the cached streak and refresh goals.
	profile, err := s.profiles.Profile()
	if err != nil {
		return err
	}

	err = s.gamification.RecomputeStreak(profile)
	if err != nil {
		return err
	}

	err = s.profiles.Update(profile)
	if err != nil {
		return err
	}

	return s.goals.Refresh()
}
