package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/shelfmark/shelfmark/internal/model"
	"github.com/shelfmark/shelfmark/internal/repository"
	"github.com/shelfmark/shelfmark/internal/service"
)

type GoalHandler struct {
	goalService    *service.GoalService
	profileService *service.ProfileService
}

func NewGoalHandler(goalService *service.GoalService, profileService *service.ProfileService) *GoalHandler {
	return &GoalHandler{
		goalService:    goalService,
		profileService: profileService,
	}
}

type goalResponse struct {
	*model.ReadingGoal
	ProgressPercentage float64 `json:"progress_percentage"`
}

func newGoalResponse(goal *model.ReadingGoal) goalResponse {
	return goalResponse{ReadingGoal: goal, ProgressPercentage: goal.ProgressPercentage()}
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	goals, err := h.goalService.Goals()
	if err != nil {
		slog.Error("failed to list goals", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load goals")
		return
	}

	resp := make([]goalResponse, 0, len(goals))
	for _, goal := range goals {
		resp = append(resp, newGoalResponse(goal))
	}

	respondJSON(w, http.StatusOK, resp)
}

func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	goal, err := h.goalService.ByID(r.PathValue("id"))
	if errors.Is(err, repository.ErrGoalNotFound) {
		respondError(w, http.StatusNotFound, "goal not found")
		return
	}
	if err != nil {
		slog.Error("failed to get goal", "error", err, "goal_id", r.PathValue("id"))
		respondError(w, http.StatusInternalServerError, "failed to load goal")
		return
	}

	respondJSON(w, http.StatusOK, newGoalResponse(goal))
}

// AvailableTypes lists the goal types the user may currently choose.
func (h *GoalHandler) AvailableTypes(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileService.Profile()
	if err != nil {
		slog.Error("failed to load profile", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	respondJSON(w, http.StatusOK, h.goalService.AvailableTypes(profile))
}

type createGoalRequest struct {
	Type        string     `json:"type"`
	TargetValue int        `json:"target_value"`
	Duration    string     `json:"duration"`
	EndDate     *time.Time `json:"end_date"`
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	goalType, err := model.ParseGoalType(req.Type)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	goal, err := h.goalService.Create(goalType, req.TargetValue, model.GoalDuration(req.Duration), req.EndDate)
	switch {
	case errors.Is(err, service.ErrInvalidTarget),
		errors.Is(err, service.ErrInvalidDateRange),
		errors.Is(err, service.ErrUnknownDuration):
		respondError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		slog.Error("failed to create goal", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create goal")
		return
	}

	respondJSON(w, http.StatusCreated, newGoalResponse(goal))
}

type updateGoalRequest struct {
	TargetValue int       `json:"target_value"`
	EndDate     time.Time `json:"end_date"`
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateGoalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	goal, err := h.goalService.Update(r.PathValue("id"), req.TargetValue, req.EndDate)
	switch {
	case errors.Is(err, repository.ErrGoalNotFound):
		respondError(w, http.StatusNotFound, "goal not found")
		return
	case errors.Is(err, service.ErrInvalidTarget), errors.Is(err, service.ErrInvalidDateRange):
		respondError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		slog.Error("failed to update goal", "error", err, "goal_id", r.PathValue("id"))
		respondError(w, http.StatusInternalServerError, "failed to update goal")
		return
	}

	respondJSON(w, http.StatusOK, newGoalResponse(goal))
}

type setProgressRequest struct {
	CurrentValue int `json:"current_value"`
}

// SetProgress applies a direct user edit of the goal's current value, e.g.
// from a stepper control.
func (h *GoalHandler) SetProgress(w http.ResponseWriter, r *http.Request) {
	var req setProgressRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	goal, err := h.goalService.SetCurrentValue(r.PathValue("id"), req.CurrentValue)
	if errors.Is(err, repository.ErrGoalNotFound) {
		respondError(w, http.StatusNotFound, "goal not found")
		return
	}
	if err != nil {
		slog.Error("failed to set goal progress", "error", err, "goal_id", r.PathValue("id"))
		respondError(w, http.StatusInternalServerError, "failed to update goal")
		return
	}

	respondJSON(w, http.StatusOK, newGoalResponse(goal))
}

type setCompletedRequest struct {
	Completed bool `json:"completed"`
}

func (h *GoalHandler) SetCompleted(w http.ResponseWriter, r *http.Request) {
	var req setCompletedRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	goal, err := h.goalService.SetCompleted(r.PathValue("id"), req.Completed)
	if errors.Is(err, repository.ErrGoalNotFound) {
		respondError(w, http.StatusNotFound, "goal not found")
		return
	}
	if err != nil {
		slog.Error("failed to toggle goal completion", "error", err, "goal_id", r.PathValue("id"))
		respondError(w, http.StatusInternalServerError, "failed to update goal")
		return
	}

	respondJSON(w, http.StatusOK, newGoalResponse(goal))
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.goalService.Delete(r.PathValue("id"))
	if errors.Is(err, repository.ErrGoalNotFound) {
		respondError(w, http.StatusNotFound, "goal not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete goal", "error", err, "goal_id", r.PathValue("id"))
		respondError(w, http.StatusInternalServerError, "failed to delete goal")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
