package handler

import (
	"log/slog"
	"net/http"

	"github.com/shelfmark/shelfmark/internal/model"
	"github.com/shelfmark/shelfmark/internal/service"
)

type ProfileHandler struct {
	profileService      *service.ProfileService
	gamificationService *service.GamificationService
}

func NewProfileHandler(profileService *service.ProfileService, gamificationService *service.GamificationService) *ProfileHandler {
	return &ProfileHandler{
		profileService:      profileService,
		gamificationService: gamificationService,
	}
}

type profileResponse struct {
	*model.UserProfile
	CurrentLevel         int     `json:"current_level"`
	XPForNextLevel       int     `json:"xp_for_next_level"`
	XPProgressPercentage float64 `json:"xp_progress_percentage"`
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileService.Profile()
	if err != nil {
		slog.Error("failed to load profile", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	respondJSON(w, http.StatusOK, profileResponse{
		UserProfile:          profile,
		CurrentLevel:         profile.CurrentLevel(),
		XPForNextLevel:       profile.XPForNextLevel(),
		XPProgressPercentage: profile.XPProgressPercentage(),
	})
}

type statsResponse struct {
	TotalBooksRead     int `json:"total_books_read"`
	TotalPagesRead     int `json:"total_pages_read"`
	BooksReadThisYear  int `json:"books_read_this_year"`
	BooksReadThisMonth int `json:"books_read_this_month"`
	CurrentStreak      int `json:"current_streak"`
	LongestStreak      int `json:"longest_streak"`
}

// Stats aggregates reading totals and streak state for display surfaces.
func (h *ProfileHandler) Stats(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileService.Profile()
	if err != nil {
		slog.Error("failed to load profile", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	books, err := h.gamificationService.TotalBooksRead()
	if err != nil {
		slog.Error("failed to count books", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load stats")
		return
	}

	pages, err := h.gamificationService.TotalPagesRead()
	if err != nil {
		slog.Error("failed to count pages", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load stats")
		return
	}

	year, err := h.gamificationService.BooksReadThisYear()
	if err != nil {
		slog.Error("failed to count books this year", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load stats")
		return
	}

	month, err := h.gamificationService.BooksReadThisMonth()
	if err != nil {
		slog.Error("failed to count books this month", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load stats")
		return
	}

	current, longest := h.gamificationService.StreakStatus(profile)

	respondJSON(w, http.StatusOK, statsResponse{
		TotalBooksRead:     books,
		TotalPagesRead:     pages,
		BooksReadThisYear:  year,
		BooksReadThisMonth: month,
		CurrentStreak:      current,
		LongestStreak:      longest,
	})
}

type setStreaksPausedRequest struct {
	Paused bool `json:"paused"`
}

func (h *ProfileHandler) SetStreaksPaused(w http.ResponseWriter, r *http.Request) {
	var req setStreaksPausedRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	profile, err := h.profileService.SetStreaksPaused(req.Paused)
	if err != nil {
		slog.Error("failed to update streaks paused", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	respondJSON(w, http.StatusOK, profile)
}
