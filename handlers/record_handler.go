package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"habitLoopAPI/internal/types/record"
	"habitLoopAPI/middleware"
	"habitLoopAPI/services"
)

type RecordHandler struct {
	recordService *services.RecordService
}

func NewRecordHandler(recordService *services.RecordService) *RecordHandler {
	return &RecordHandler{
		recordService: recordService,
	}
}

// ListRecords accepts optional ?from=YYYY-MM-DD&to=YYYY-MM-DD bounds, or
// ?date= for a single day.
func (h *RecordHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	from, to := dateRange(r)

	records, err := h.recordService.ListRecords(ctx, userID, from, to)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load habit records")
		return
	}

	respondWithJSON(w, http.StatusOK, records)
}

func (h *RecordHandler) UpsertRecord(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req record.UpsertRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	upserted, err := h.recordService.UpsertRecord(ctx, userID, &req)
	if err != nil {
		middleware.CountHabitMutation("upsert_record", mutationOutcome(err))
		respondWithDomainError(w, err)
		return
	}

	middleware.CountHabitMutation("upsert_record", "ok")
	respondWithJSON(w, http.StatusOK, upserted)
}

func (h *RecordHandler) ListWeeklyRecords(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	from, to := dateRange(r)

	records, err := h.recordService.ListWeeklyRecords(ctx, userID, from, to)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load weekly habit records")
		return
	}

	respondWithJSON(w, http.StatusOK, records)
}

func (h *RecordHandler) UpsertWeeklyRecord(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req record.UpsertWeeklyRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	upserted, err := h.recordService.UpsertWeeklyRecord(ctx, userID, &req)
	if err != nil {
		middleware.CountHabitMutation("upsert_weekly_record", mutationOutcome(err))
		respondWithDomainError(w, err)
		return
	}

	middleware.CountHabitMutation("upsert_weekly_record", "ok")
	respondWithJSON(w, http.StatusOK, upserted)
}

func dateRange(r *http.Request) (from, to string) {
	if date := r.URL.Query().Get("date"); date != "" {
		return date, date
	}
	return r.URL.Query().Get("from"), r.URL.Query().Get("to")
}
