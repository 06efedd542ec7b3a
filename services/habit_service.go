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
	streakengine "habitLoopAPI/internal/streak"
	"habitLoopAPI/internal/types/habit"
	"habitLoopAPI/internal/types/streak"
)

type HabitService struct {
	db *pgxpool.Pool
}

func NewHabitService(db *pgxpool.Pool) *HabitService {
	return &HabitService{db: db}
}

func (s *HabitService) ListHabits(ctx context.Context, userID string) ([]*habit.Habit, error) {
	query := `
	SELECT id, user_id, name, color, created_at
	FROM habits
	WHERE user_id = $1
	ORDER BY created_at ASC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	defer rows.Close()

	habits := []*habit.Habit{}
	for rows.Next() {
		h := &habit.Habit{}
		if err := rows.Scan(&h.ID, &h.UserID, &h.Name, &h.Color, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		habits = append(habits, h)
	}

	return habits, rows.Err()
}

// CreateHabit validates the name, then runs the quota check and insert in one
// transaction. The per-user advisory lock serializes concurrent creates for
// the same owner so two requests cannot both pass the quota check.
func (s *HabitService) CreateHabit(ctx context.Context, userID string, req *habit.CreateHabitRequest) (*habit.Habit, error) {
	name, err := policy.ValidateHabitName(req.Name)
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
	if !policy.CanCreateDailyHabit(dailyCount, weeklyCount) {
		return nil, &policy.Error{Kind: policy.KindLimitReached, Message: fmt.Sprintf("maximum %d habits allowed", policy.MaxDailyHabits)}
	}

	otherNames, err := habitNames(ctx, tx, userID, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if policy.IsDuplicateName(name, otherNames) {
		return nil, &policy.Error{Kind: policy.KindDuplicateName, Message: "a habit with this name already exists"}
	}

	h := &habit.Habit{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Color:     req.Color,
		CreatedAt: time.Now(),
	}

	query := `
	INSERT INTO habits (id, user_id, name, color, created_at)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, user_id, name, color, created_at
	`

	err = tx.QueryRow(ctx, query, h.ID, h.UserID, h.Name, h.Color, h.CreatedAt).
		Scan(&h.ID, &h.UserID, &h.Name, &h.Color, &h.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit habit creation: %w", err)
	}

	return h, nil
}

// RenameHabit re-validates the name and re-checks uniqueness against the
// user's other habits. Cross-owner access surfaces as not found.
func (s *HabitService) RenameHabit(ctx context.Context, userID string, habitID uuid.UUID, req *habit.RenameHabitRequest) (*habit.Habit, error) {
	name, err := policy.ValidateHabitName(req.Name)
	if err != nil {
		return nil, err
	}

	h := &habit.Habit{}
	err = s.db.QueryRow(ctx,
		`SELECT id, user_id, name, color, created_at FROM habits WHERE id = $1 AND user_id = $2`,
		habitID, userID,
	).Scan(&h.ID, &h.UserID, &h.Name, &h.Color, &h.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, policy.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get habit: %w", err)
	}

	if h.Name == name {
		return h, nil
	}

	otherNames, err := habitNames(ctx, s.db, userID, habitID)
	if err != nil {
		return nil, err
	}
	if policy.IsDuplicateName(name, otherNames) {
		return nil, &policy.Error{Kind: policy.KindDuplicateName, Message: "a habit with this name already exists"}
	}

	err = s.db.QueryRow(ctx,
		`UPDATE habits SET name = $1 WHERE id = $2 AND user_id = $3
		 RETURNING id, user_id, name, color, created_at`,
		name, habitID, userID,
	).Scan(&h.ID, &h.UserID, &h.Name, &h.Color, &h.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, policy.ErrNotFound
		}
		return nil, fmt.Errorf("failed to rename habit: %w", err)
	}

	return h, nil
}

// DeleteHabit removes the habit and cascades its completion records in one
// transaction.
func (s *HabitService) DeleteHabit(ctx context.Context, userID string, habitID uuid.UUID) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM habit_records WHERE habit_id = $1 AND user_id = $2`,
		habitID, userID,
	); err != nil {
		return fmt.Errorf("failed to delete habit records: %w", err)
	}

	tag, err := tx.Exec(ctx,
		`DELETE FROM habits WHERE id = $1 AND user_id = $2`,
		habitID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return policy.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit habit deletion: %w", err)
	}

	return nil
}

// GetFailureStreaks loads the habit's full record history and computes its
// failure streaks from the habit's creation date through today.
func (s *HabitService) GetFailureStreaks(ctx context.Context, userID string, habitID uuid.UUID, today time.Time) (*streak.FailureStreaks, error) {
	h := &habit.Habit{}
	err := s.db.QueryRow(ctx,
		`SELECT id, user_id, name, color, created_at FROM habits WHERE id = $1 AND user_id = $2`,
		habitID, userID,
	).Scan(&h.ID, &h.UserID, &h.Name, &h.Color, &h.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, policy.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get habit: %w", err)
	}

	rows, err := s.db.Query(ctx,
		`SELECT to_char(date, 'YYYY-MM-DD'), status FROM habit_records WHERE habit_id = $1 AND user_id = $2`,
		habitID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch habit records: %w", err)
	}
	defer rows.Close()

	statusByDate := map[string]bool{}
	for rows.Next() {
		var date string
		var status bool
		if err := rows.Scan(&date, &status); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		statusByDate[date] = status
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}

	result := streakengine.Compute(statusByDate, h.CreatedAt, today)
	return &result, nil
}

// PurgeUserData removes everything a user owns. Called from the Clerk
// user.deleted webhook.
func (s *HabitService) PurgeUserData(ctx context.Context, userID string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, table := range []string{"habit_records", "weekly_habit_records", "device_tokens", "habits", "weekly_habits"} {
		if _, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("failed to purge %s: %w", table, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit purge: %w", err)
	}

	return nil
}

// querier lets the count/name helpers run on a pool or inside a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func countHabits(ctx context.Context, q querier, userID string) (daily int, weekly int, err error) {
	err = q.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM habits WHERE user_id = $1),
			(SELECT COUNT(*) FROM weekly_habits WHERE user_id = $1)`,
		userID,
	).Scan(&daily, &weekly)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count habits: %w", err)
	}
	return daily, weekly, nil
}

func habitNames(ctx context.Context, q querier, userID string, exclude uuid.UUID) ([]string, error) {
	rows, err := q.Query(ctx,
		`SELECT name FROM habits WHERE user_id = $1 AND id <> $2`,
		userID, exclude,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list habit names: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan habit name: %w", err)
		}
		names = append(names, name)
	}

	return names, rows.Err()
}
