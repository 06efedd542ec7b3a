package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpsertRecord_Unauthenticated(t *testing.T) {
	handler := NewRecordHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/habit-records", nil)
	rr := httptest.NewRecorder()

	handler.UpsertRecord(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestUpsertRecord_InvalidBody(t *testing.T) {
	handler := NewRecordHandler(nil)

	req := authedRequest(http.MethodPost, "/api/v1/habit-records", "not json")
	rr := httptest.NewRecorder()

	handler.UpsertRecord(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpsertWeeklyRecord_InvalidBody(t *testing.T) {
	handler := NewRecordHandler(nil)

	req := authedRequest(http.MethodPost, "/api/v1/weekly-habit-records", `{"date": 5}`)
	rr := httptest.NewRecorder()

	handler.UpsertWeeklyRecord(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestListRecords_DateRangeParsing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/habit-records?date=2024-01-05", nil)
	from, to := dateRange(req)
	assert.Equal(t, "2024-01-05", from)
	assert.Equal(t, "2024-01-05", to)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/habit-records?from=2024-01-01&to=2024-01-31", nil)
	from, to = dateRange(req)
	assert.Equal(t, "2024-01-01", from)
	assert.Equal(t, "2024-01-31", to)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/habit-records", nil)
	from, to = dateRange(req)
	assert.Empty(t, from)
	assert.Empty(t, to)
}

func TestGetMonth_InvalidMonth(t *testing.T) {
	handler := NewCalendarHandler(nil)

	req := authedRequest(http.MethodGet, "/api/v1/calendar?year=2024&month=13", "")
	rr := httptest.NewRecorder()

	handler.GetMonth(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetMonth_Unauthenticated(t *testing.T) {
	handler := NewCalendarHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/calendar", nil)
	rr := httptest.NewRecorder()

	handler.GetMonth(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
