package handler

import (
	"log/slog"
	"net/http"

	"github.com/shelfmark/shelfmark/internal/service"
)

type AchievementHandler struct {
	achievementService *service.AchievementService
	profileService     *service.ProfileService
}

func NewAchievementHandler(achievementService *service.AchievementService, profileService *service.ProfileService) *AchievementHandler {
	return &AchievementHandler{
		achievementService: achievementService,
		profileService:     profileService,
	}
}

func (h *AchievementHandler) List(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileService.Profile()
	if err != nil {
		slog.Error("failed to load profile", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	achievements, err := h.achievementService.Achievements(profile.ID)
	if err != nil {
		slog.Error("failed to list achievements", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load achievements")
		return
	}

	respondJSON(w, http.StatusOK, achievements)
}

// MarkSeen clears the new-unlock badges once the user has viewed them.
func (h *AchievementHandler) MarkSeen(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileService.Profile()
	if err != nil {
		slog.Error("failed to load profile", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	err = h.achievementService.MarkSeen(profile.ID)
	if err != nil {
		slog.Error("failed to mark achievements seen", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to update achievements")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
