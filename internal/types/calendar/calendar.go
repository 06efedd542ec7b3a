package calendar

import "habitLoopAPI/internal/types/streak"

// MonthDay is one calendar day of the month view. Completed maps habit ID to
// that day's record status; habits without a record for the day are absent.
type MonthDay struct {
	Date      string          `json:"date"`
	Completed map[string]bool `json:"completed"`
	IsToday   bool            `json:"is_today"`
}

type MonthResponse struct {
	Year    int                              `json:"year"`
	Month   int                              `json:"month"`
	Days    []*MonthDay                      `json:"days"`
	Streaks map[string]streak.FailureStreaks `json:"streaks"`
}
