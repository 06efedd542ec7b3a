package record

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-day format used everywhere in the API.
const DateLayout = "2006-01-02"

// HabitRecord is one day's pass/fail entry for a daily habit. There is at
// most one per (user, habit, date); upserts are last-write-wins on Status.
type HabitRecord struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	HabitID   uuid.UUID `json:"habit_id" db:"habit_id"`
	Date      string    `json:"date" db:"date"`
	Status    bool      `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// WeeklyHabitRecord is the weekly-habit counterpart, meaningful only on
// dates the weekly habit is scheduled.
type WeeklyHabitRecord struct {
	ID            uuid.UUID `json:"id" db:"id"`
	UserID        string    `json:"user_id" db:"user_id"`
	WeeklyHabitID uuid.UUID `json:"weekly_habit_id" db:"weekly_habit_id"`
	Date          string    `json:"date" db:"date"`
	Status        bool      `json:"status" db:"status"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

type UpsertRecordRequest struct {
	HabitID uuid.UUID `json:"habit_id"`
	Date    string    `json:"date"`
	Status  bool      `json:"status"`
}

type UpsertWeeklyRecordRequest struct {
	WeeklyHabitID uuid.UUID `json:"weekly_habit_id"`
	Date          string    `json:"date"`
	Status        bool      `json:"status"`
}
