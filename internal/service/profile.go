package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shelfmark/shelfmark/internal/model"
	"github.com/shelfmark/shelfmark/internal/repository"
)

// ProfileService manages the single per-installation profile. A missing
// profile is created with zeroed counters rather than surfaced as an error.
type ProfileService struct {
	repo  repository.ProfileRepository
	clock Clock
}

func NewProfileService(repo repository.ProfileRepository, clock Clock) *ProfileService {
	return &ProfileService{repo: repo, clock: clock}
}

func (s *ProfileService) Profile() (*model.UserProfile, error) {
	profile, err := s.repo.Get()
	if errors.Is(err, repository.ErrProfileNotFound) {
		return s.createDefault()
	}
	if err != nil {
		return nil, err
	}

	return profile, nil
}

func (s *ProfileService) Update(profile *model.UserProfile) error {
	return s.repo.Update(profile)
}

func (s *ProfileService) SetStreaksPaused(paused bool) (*model.UserProfile, error) {
	profile, err := s.Profile()
	if err != nil {
		return nil, err
	}

	profile.StreaksPaused = paused

	err = s.repo.Update(profile)
	if err != nil {
		return nil, err
	}

	return profile, nil
}

func (s *ProfileService) createDefault() (*model.UserProfile, error) {
	now := s.clock.Now()
	profile := &model.UserProfile{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.repo.Create(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to create default profile: %w", err)
	}

	slog.Info("created default profile", "profile_id", profile.ID)
	return profile, nil
}
