package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"habitLoopAPI/internal/policy"
	"habitLoopAPI/internal/types/record"
)

type RecordService struct {
	db *pgxpool.Pool
}

func NewRecordService(db *pgxpool.Pool) *RecordService {
	return &RecordService{db: db}
}

// ListRecords returns the user's daily-habit records, optionally narrowed to
// one date or a date range (YYYY-MM-DD strings, empty means unbounded).
func (s *RecordService) ListRecords(ctx context.Context, userID, from, to string) ([]*record.HabitRecord, error) {
	query := `
	SELECT id, user_id, habit_id, to_char(date, 'YYYY-MM-DD'), status, created_at, updated_at
	FROM habit_records
	WHERE user_id = $1
	  AND ($2 = '' OR date >= $2::date)
	  AND ($3 = '' OR date <= $3::date)
	ORDER BY date ASC
	`

	rows, err := s.db.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list habit records: %w", err)
	}
	defer rows.Close()

	records := []*record.HabitRecord{}
	for rows.Next() {
		r := &record.HabitRecord{}
		if err := rows.Scan(&r.ID, &r.UserID, &r.HabitID, &r.Date, &r.Status, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan habit record: %w", err)
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

// UpsertRecord writes one day's status for a habit, keyed by
// (user, habit, date). Repeating the same upsert is a no-op; a different
// status wins last-write.
func (s *RecordService) UpsertRecord(ctx context.Context, userID string, req *record.UpsertRecordRequest) (*record.HabitRecord, error) {
	if _, err := time.Parse(record.DateLayout, req.Date); err != nil {
		return nil, &policy.Error{Kind: policy.KindInvalidValue, Message: "date must be YYYY-MM-DD"}
	}

	// Ownership check doubles as the existence check; cross-owner habits
	// look absent.
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM habits WHERE id = $1 AND user_id = $2)`,
		req.HabitID, userID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check habit ownership: %w", err)
	}
	if !exists {
		return nil, policy.ErrNotFound
	}

	query := `
	INSERT INTO habit_records (id, user_id, habit_id, date, status, created_at, updated_at)
	VALUES ($1, $2, $3, $4::date, $5, now(), now())
	ON CONFLICT (user_id, habit_id, date)
	DO UPDATE SET status = EXCLUDED.status, updated_at = now()
	RETURNING id, user_id, habit_id, to_char(date, 'YYYY-MM-DD'), status, created_at, updated_at
	`

	r := &record.HabitRecord{}
	err = s.db.QueryRow(ctx, query, uuid.New(), userID, req.HabitID, req.Date, req.Status).
		Scan(&r.ID, &r.UserID, &r.HabitID, &r.Date, &r.Status, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert habit record: %w", err)
	}

	return r, nil
}

// ListWeeklyRecords returns the user's weekly-habit records in a date range.
func (s *RecordService) ListWeeklyRecords(ctx context.Context, userID, from, to string) ([]*record.WeeklyHabitRecord, error) {
	query := `
	SELECT id, user_id, weekly_habit_id, to_char(date, 'YYYY-MM-DD'), status, created_at, updated_at
	FROM weekly_habit_records
	WHERE user_id = $1
	  AND ($2 = '' OR date >= $2::date)
	  AND ($3 = '' OR date <= $3::date)
	ORDER BY date ASC
	`

	rows, err := s.db.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list weekly habit records: %w", err)
	}
	defer rows.Close()

	records := []*record.WeeklyHabitRecord{}
	for rows.Next() {
		r := &record.WeeklyHabitRecord{}
		if err := rows.Scan(&r.ID, &r.UserID, &r.WeeklyHabitID, &r.Date, &r.Status, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan weekly habit record: %w", err)
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

// UpsertWeeklyRecord is the weekly counterpart. The date must fall on one of
// the habit's scheduled weekdays.
func (s *RecordService) UpsertWeeklyRecord(ctx context.Context, userID string, req *record.UpsertWeeklyRecordRequest) (*record.WeeklyHabitRecord, error) {
	date, err := time.Parse(record.DateLayout, req.Date)
	if err != nil {
		return nil, &policy.Error{Kind: policy.KindInvalidValue, Message: "date must be YYYY-MM-DD"}
	}

	var days []int
	err = s.db.QueryRow(ctx,
		`SELECT days FROM weekly_habits WHERE id = $1 AND user_id = $2`,
		req.WeeklyHabitID, userID,
	).Scan(&days)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, policy.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get weekly habit: %w", err)
	}

	if !policy.IsScheduledOn(days, date) {
		return nil, &policy.Error{Kind: policy.KindInvalidValue, Message: "weekly habit is not scheduled on this date"}
	}

	query := `
	INSERT INTO weekly_habit_records (id, user_id, weekly_habit_id, date, status, created_at, updated_at)
	VALUES ($1, $2, $3, $4::date, $5, now(), now())
	ON CONFLICT (user_id, weekly_habit_id, date)
	DO UPDATE SET status = EXCLUDED.status, updated_at = now()
	RETURNING id, user_id, weekly_habit_id, to_char(date, 'YYYY-MM-DD'), status, created_at, updated_at
	`

	r := &record.WeeklyHabitRecord{}
	err = s.db.QueryRow(ctx, query, uuid.New(), userID, req.WeeklyHabitID, req.Date, req.Status).
		Scan(&r.ID, &r.UserID, &r.WeeklyHabitID, &r.Date, &r.Status, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert weekly habit record: %w", err)
	}

	return r, nil
}
