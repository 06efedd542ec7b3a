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
	"habitLoopAPI/internal/types/weeklyhabit"
)

type WeeklyHabitService struct {
	db *pgxpool.Pool
}

func NewWeeklyHabitService(db *pgxpool.Pool) *WeeklyHabitService {
	return &WeeklyHabitService{db: db}
}

// GetWeeklyHabit returns the user's weekly habit, or nil when none exists.
func (s *WeeklyHabitService) GetWeeklyHabit(ctx context.Context, userID string) (*weeklyhabit.WeeklyHabit, error) {
	wh := &weeklyhabit.WeeklyHabit{}
	err := s.db.QueryRow(ctx,
		`SELECT id, user_id, title, days, created_at, updated_at FROM weekly_habits WHERE user_id = $1`,
		userID,
	).Scan(&wh.ID, &wh.UserID, &wh.Title, &wh.Days, &wh.CreatedAt, &wh.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get weekly habit: %w", err)
	}
	return wh, nil
}

// CreateWeeklyHabit enforces uniqueness-of-existence and the total habit
// quota under the same per-user advisory lock the daily path uses. The
// weekly_habits table also carries UNIQUE (user_id) as a backstop.
func (s *WeeklyHabitService) CreateWeeklyHabit(ctx context.Context, userID string, req *weeklyhabit.CreateWeeklyHabitRequest) (*weeklyhabit.WeeklyHabit, error) {
	title, err := policy.ValidateWeeklyTitle(req.Title)
	if err != nil {
		return nil, err
	}
	days, err := policy.ValidateWeekdaySet(req.Days)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, userID); err != nil {
		return nil, fmt.Errorf("failed to acquire user lock: %w", err)
	}

	dailyCount, weeklyCount, err := countHabits(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if weeklyCount > 0 {
		return nil, &policy.Error{Kind: policy.KindAlreadyExists, Message: "user already has a weekly habit"}
	}
	if !policy.CanCreateWeeklyHabit(dailyCount, weeklyCount) {
		return nil, &policy.Error{Kind: policy.KindLimitReached, Message: fmt.Sprintf("maximum %d habits allowed in total", policy.MaxTotalHabits)}
	}

	now := time.Now()
	wh := &weeklyhabit.WeeklyHabit{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Days:      days,
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := `
	INSERT INTO weekly_habits (id, user_id, title, days, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, user_id, title, days, created_at, updated_at
	`

	err = tx.QueryRow(ctx, query, wh.ID, wh.UserID, wh.Title, wh.Days, wh.CreatedAt, wh.UpdatedAt).
		Scan(&wh.ID, &wh.UserID, &wh.Title, &wh.Days, &wh.CreatedAt, &wh.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create weekly habit: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit weekly habit creation: %w", err)
	}

	return wh, nil
}

// UpdateWeeklyHabit applies a partial update; title and day set are
// independently optional.
func (s *WeeklyHabitService) UpdateWeeklyHabit(ctx context.Context, userID string, habitID uuid.UUID, req *weeklyhabit.UpdateWeeklyHabitRequest) (*weeklyhabit.WeeklyHabit, error) {
	wh := &weeklyhabit.WeeklyHabit{}
	err := s.db.QueryRow(ctx,
		`SELECT id, user_id, title, days, created_at, updated_at FROM weekly_habits WHERE id = $1 AND user_id = $2`,
		habitID, userID,
	).Scan(&wh.ID, &wh.UserID, &wh.Title, &wh.Days, &wh.CreatedAt, &wh.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, policy.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get weekly habit: %w", err)
	}

	if req.Title != nil {
		title, err := policy.ValidateWeeklyTitle(*req.Title)
		if err != nil {
			return nil, err
		}
		wh.Title = title
	}
	if req.Days != nil {
		days, err := policy.ValidateWeekdaySet(*req.Days)
		if err != nil {
			return nil, err
		}
		wh.Days = days
	}

	err = s.db.QueryRow(ctx,
		`UPDATE weekly_habits SET title = $1, days = $2, updated_at = now()
		 WHERE id = $3 AND user_id = $4
		 RETURNING id, user_id, title, days, created_at, updated_at`,
		wh.Title, wh.Days, habitID, userID,
	).Scan(&wh.ID, &wh.UserID, &wh.Title, &wh.Days, &wh.CreatedAt, &wh.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, policy.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update weekly habit: %w", err)
	}

	return wh, nil
}

// DeleteWeeklyHabit removes the weekly habit and its records in one
// transaction.
func (s *WeeklyHabitService) DeleteWeeklyHabit(ctx context.Context, userID string, habitID uuid.UUID) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM weekly_habit_records WHERE weekly_habit_id = $1 AND user_id = $2`,
		habitID, userID,
	); err != nil {
		return fmt.Errorf("failed to delete weekly habit records: %w", err)
	}

	tag, err := tx.Exec(ctx,
		`DELETE FROM weekly_habits WHERE id = $1 AND user_id = $2`,
		habitID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete weekly habit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return policy.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit weekly habit deletion: %w", err)
	}

	return nil
}
