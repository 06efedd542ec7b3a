package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"habitLoopAPI/internal/types/weeklyhabit"
	"habitLoopAPI/middleware"
	"habitLoopAPI/services"
)

type WeeklyHabitHandler struct {
	weeklyHabitService *services.WeeklyHabitService
}

func NewWeeklyHabitHandler(weeklyHabitService *services.WeeklyHabitService) *WeeklyHabitHandler {
	return &WeeklyHabitHandler{
		weeklyHabitService: weeklyHabitService,
	}
}

// GetWeeklyHabit returns {"weekly_habit": null} when the user has none.
func (h *WeeklyHabitHandler) GetWeeklyHabit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	wh, err := h.weeklyHabitService.GetWeeklyHabit(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load weekly habit")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"weekly_habit": wh})
}

func (h *WeeklyHabitHandler) CreateWeeklyHabit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req weeklyhabit.CreateWeeklyHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.weeklyHabitService.CreateWeeklyHabit(ctx, userID, &req)
	if err != nil {
		middleware.CountHabitMutation("create_weekly_habit", mutationOutcome(err))
		respondWithDomainError(w, err)
		return
	}

	middleware.CountHabitMutation("create_weekly_habit", "ok")
	respondWithJSON(w, http.StatusCreated, created)
}

func (h *WeeklyHabitHandler) UpdateWeeklyHabit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	habitID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid weekly habit id")
		return
	}

	var req weeklyhabit.UpdateWeeklyHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.weeklyHabitService.UpdateWeeklyHabit(ctx, userID, habitID, &req)
	if err != nil {
		middleware.CountHabitMutation("update_weekly_habit", mutationOutcome(err))
		respondWithDomainError(w, err)
		return
	}

	middleware.CountHabitMutation("update_weekly_habit", "ok")
	respondWithJSON(w, http.StatusOK, updated)
}

func (h *WeeklyHabitHandler) DeleteWeeklyHabit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	habitID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid weekly habit id")
		return
	}

	if err := h.weeklyHabitService.DeleteWeeklyHabit(ctx, userID, habitID); err != nil {
		middleware.CountHabitMutation("delete_weekly_habit", mutationOutcome(err))
		respondWithDomainError(w, err)
		return
	}

	middleware.CountHabitMutation("delete_weekly_habit", "ok")
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Weekly habit deleted successfully"})
}
