package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habitLoopAPI/internal/policy"
	"habitLoopAPI/middleware"
)

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := context.WithValue(req.Context(), middleware.ClerkIDKey, "user_test123")
	return req.WithContext(ctx)
}

func TestListHabits_Unauthenticated(t *testing.T) {
	handler := NewHabitHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/habits", nil)
	rr := httptest.NewRecorder()

	handler.ListHabits(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	var response map[string]string
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Contains(t, response["error"], "not authenticated")
}

func TestCreateHabit_InvalidBody(t *testing.T) {
	handler := NewHabitHandler(nil)

	req := authedRequest(http.MethodPost, "/api/v1/habits", "{not json")
	rr := httptest.NewRecorder()

	handler.CreateHabit(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRenameHabit_InvalidID(t *testing.T) {
	handler := NewHabitHandler(nil)

	req := authedRequest(http.MethodPatch, "/api/v1/habits/not-a-uuid/rename", `{"name":"Read"}`)
	req = mux.SetURLVars(req, map[string]string{"id": "not-a-uuid"})
	rr := httptest.NewRecorder()

	handler.RenameHabit(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDeleteHabit_InvalidID(t *testing.T) {
	handler := NewHabitHandler(nil)

	req := authedRequest(http.MethodDelete, "/api/v1/habits/123", "")
	req = mux.SetURLVars(req, map[string]string{"id": "123"})
	rr := httptest.NewRecorder()

	handler.DeleteHabit(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRespondWithDomainError_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", policy.ErrNotFound, http.StatusNotFound},
		{"validation", &policy.Error{Kind: policy.KindEmpty, Message: "habit name cannot be empty"}, http.StatusBadRequest},
		{"limit", &policy.Error{Kind: policy.KindLimitReached, Message: "maximum 2 habits allowed"}, http.StatusBadRequest},
		{"duplicate", &policy.Error{Kind: policy.KindDuplicateName, Message: "a habit with this name already exists"}, http.StatusBadRequest},
		{"already exists", &policy.Error{Kind: policy.KindAlreadyExists, Message: "user already has a weekly habit"}, http.StatusBadRequest},
		{"internal", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			respondWithDomainError(rr, tt.err)
			assert.Equal(t, tt.want, rr.Code)
		})
	}
}

func TestGetQuote(t *testing.T) {
	handler := NewQuoteHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/quote", nil)
	rr := httptest.NewRecorder()

	handler.GetQuote(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var response map[string]string
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.NotEmpty(t, response["text"])
	assert.NotEmpty(t, response["author"])
}
