package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	streakengine "habitLoopAPI/internal/streak"
	"habitLoopAPI/internal/types/calendar"
	"habitLoopAPI/internal/types/record"
	"habitLoopAPI/internal/types/streak"
)

type CalendarService struct {
	db           *pgxpool.Pool
	habitService *HabitService
}

func NewCalendarService(db *pgxpool.Pool, habitService *HabitService) *CalendarService {
	return &CalendarService{db: db, habitService: habitService}
}

// GetMonth assembles the month view: per-day completion status for each of
// the user's habits plus per-habit failure streaks. Streaks always run from
// each habit's creation date through today, not just the requested month, so
// the numbers match regardless of which month is displayed.
func (s *CalendarService) GetMonth(ctx context.Context, userID string, year, month int, today time.Time) (*calendar.MonthResponse, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("invalid month: %d", month)
	}

	habits, err := s.habitService.ListHabits(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx,
		`SELECT habit_id, to_char(date, 'YYYY-MM-DD'), status
		 FROM habit_records
		 WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}
	defer rows.Close()

	// habit id -> date -> status
	statusByHabit := map[string]map[string]bool{}
	for rows.Next() {
		var habitID, date string
		var status bool
		if err := rows.Scan(&habitID, &date, &status); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		if statusByHabit[habitID] == nil {
			statusByHabit[habitID] = map[string]bool{}
		}
		statusByHabit[habitID][date] = status
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	todayStr := today.Format(record.DateLayout)

	days := []*calendar.MonthDay{}
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format(record.DateLayout)
		day := &calendar.MonthDay{
			Date:      dateStr,
			Completed: map[string]bool{},
			IsToday:   dateStr == todayStr,
		}
		for habitID, byDate := range statusByHabit {
			if status, ok := byDate[dateStr]; ok {
				day.Completed[habitID] = status
			}
		}
		days = append(days, day)
	}

	resp := &calendar.MonthResponse{
		Year:    year,
		Month:   month,
		Days:    days,
		Streaks: map[string]streak.FailureStreaks{},
	}
	for _, h := range habits {
		resp.Streaks[h.ID.String()] = streakengine.Compute(statusByHabit[h.ID.String()], h.CreatedAt, today)
	}

	return resp, nil
}
