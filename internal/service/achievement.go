package service

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/shelfmark/shelfmark/internal/model"
	"github.com/shelfmark/shelfmark/internal/repository"
)

// Aggregates are the derived totals the achievement rules check against.
type Aggregates struct {
	BooksRead         int
	PagesRead         int
	CurrentStreak     int
	Level             int
	MaxPagesInDay     int
	MaxSessionMinutes int
}

type achievementRule struct {
	Type model.AchievementType
	Met  func(a Aggregates) bool
}

// Rules are independent; evaluation order does not affect the result set.
var achievementRules = []achievementRule{
	{model.AchievementFirstBook, func(a Aggregates) bool { return a.BooksRead >= 1 }},
	{model.AchievementBooks10, func(a Aggregates) bool { return a.BooksRead >= 10 }},
	{model.AchievementBooks50, func(a Aggregates) bool { return a.BooksRead >= 50 }},
	{model.AchievementBooks100, func(a Aggregates) bool { return a.BooksRead >= 100 }},
	{model.AchievementPages100, func(a Aggregates) bool { return a.PagesRead >= 100 }},
	{model.AchievementPages1000, func(a Aggregates) bool { return a.PagesRead >= 1000 }},
	{model.AchievementPages10000, func(a Aggregates) bool { return a.PagesRead >= 10000 }},
	{model.AchievementStreak7, func(a Aggregates) bool { return a.CurrentStreak >= 7 }},
	{model.AchievementStreak30, func(a Aggregates) bool { return a.CurrentStreak >= 30 }},
	{model.AchievementStreak100, func(a Aggregates) bool { return a.CurrentStreak >= 100 }},
	{model.AchievementLevel5, func(a Aggregates) bool { return a.Level >= 5 }},
	{model.AchievementLevel10, func(a Aggregates) bool { return a.Level >= 10 }},
	{model.AchievementLevel20, func(a Aggregates) bool { return a.Level >= 20 }},
	{model.AchievementMarathonDay, func(a Aggregates) bool { return a.MaxPagesInDay >= 100 }},
	{model.AchievementDeepSession, func(a Aggregates) bool { return a.MaxSessionMinutes >= 180 }},
}

// AchievementService unlocks milestone achievements exactly once each.
type AchievementService struct {
	repo     repository.AchievementRepository
	sessions repository.SessionRepository
	books    repository.BookRepository
	clock    Clock
}

func NewAchievementService(
	repo repository.AchievementRepository,
	sessions repository.SessionRepository,
	books repository.BookRepository,
	clock Clock,
) *AchievementService {
	return &AchievementService{
		repo:     repo,
		sessions: sessions,
		books:    books,
		clock:    clock,
	}
}

// Evaluate checks every rule against current aggregates and unlocks any that
// are met and not yet unlocked. Re-running with no new activity unlocks
// nothing; achievements are never revoked.
func (s *AchievementService) Evaluate(profile *model.UserProfile) ([]*model.Achievement, error) {
	agg, err := s.aggregates(profile)
	if err != nil {
		return nil, err
	}

	unlocked, err := s.repo.UnlockedTypes(profile.ID)
	if err != nil {
		return nil, err
	}

	var newlyUnlocked []*model.Achievement
	now := s.clock.Now()

	for _, rule := range achievementRules {
		if unlocked[rule.Type] || !rule.Met(agg) {
			continue
		}

		achievement := &model.Achievement{
			ID:         uuid.New().String(),
			ProfileID:  profile.ID,
			Type:       rule.Type,
			UnlockedAt: now,
			IsNew:      true,
			CreatedAt:  now,
		}

		err = s.repo.Create(achievement)
		if err != nil {
			return newlyUnlocked, err
		}

		slog.Info("achievement unlocked", "type", rule.Type)
		newlyUnlocked = append(newlyUnlocked, achievement)
	}

	return newlyUnlocked, nil
}

func (s *AchievementService) Achievements(profileID string) ([]*model.Achievement, error) {
	return s.repo.ByProfile(profileID)
}

// MarkSeen clears the is_new flag once the user has viewed their unlocks.
func (s *AchievementService) MarkSeen(profileID string) error {
	return s.repo.MarkSeen(profileID)
}

func (s *AchievementService) aggregates(profile *model.UserProfile) (Aggregates, error) {
	var agg Aggregates
	var err error

	agg.BooksRead, err = s.books.CountFinished()
	if err != nil {
		return agg, err
	}

	agg.PagesRead, err = s.sessions.TotalPagesRead()
	if err != nil {
		return agg, err
	}

	agg.MaxPagesInDay, err = s.sessions.MaxPagesInDay()
	if err != nil {
		return agg, err
	}

	agg.MaxSessionMinutes, err = s.sessions.MaxSessionMinutes()
	if err != nil {
		return agg, err
	}

	agg.CurrentStreak = profile.CurrentStreak
	agg.Level = profile.CurrentLevel()

	return agg, nil
}
