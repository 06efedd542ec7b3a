package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habitLoopAPI/internal/policy"
	"habitLoopAPI/internal/types/habit"
	"habitLoopAPI/internal/types/record"
	"habitLoopAPI/internal/types/weeklyhabit"
)

func TestCreateHabit_QuotaEnforced(t *testing.T) {
	pool := setupTestDB(t)
	userID := testUserID(t, pool)
	ctx := context.Background()

	s := NewHabitService(pool)

	_, err := s.CreateHabit(ctx, userID, &habit.CreateHabitRequest{Name: "Read"})
	require.NoError(t, err)
	_, err = s.CreateHabit(ctx, userID, &habit.CreateHabitRequest{Name: "Meditate"})
	require.NoError(t, err)

	_, err = s.CreateHabit(ctx, userID, &habit.CreateHabitRequest{Name: "Run"})
	assert.True(t, policy.IsKind(err, policy.KindLimitReached))
}

func TestCreateHabit_DuplicateNameCaseInsensitive(t *testing.T) {
	pool := setupTestDB(t)
	userID := testUserID(t, pool)
	ctx := context.Background()

	s := NewHabitService(pool)

	_, err := s.CreateHabit(ctx, userID, &habit.CreateHabitRequest{Name: "Read"})
	require.NoError(t, err)

	_, err = s.CreateHabit(ctx, userID, &habit.CreateHabitRequest{Name: "  read "})
	assert.True(t, policy.IsKind(err, policy.KindDuplicateName))
}

func TestRenameHabit_CrossOwnerLooksAbsent(t *testing.T) {
	pool := setupTestDB(t)
	userID := testUserID(t, pool)
	ctx := context.Background()

	s := NewHabitService(pool)

	created, err := s.CreateHabit(ctx, userID, &habit.CreateHabitRequest{Name: "Read"})
	require.NoError(t, err)

	// Another user renaming this habit must see not-found, not forbidden.
	_, err = s.RenameHabit(ctx, "user_someone_else", created.ID, &habit.RenameHabitRequest{Name: "Steal"})
	assert.True(t, policy.IsKind(err, policy.KindNotFound))
}

func TestUpsertRecord_IdempotentAndLastWriteWins(t *testing.T) {
	pool := setupTestDB(t)
	userID := testUserID(t, pool)
	ctx := context.Background()

	habits := NewHabitService(pool)
	records := NewRecordService(pool)

	h, err := habits.CreateHabit(ctx, userID, &habit.CreateHabitRequest{Name: "Read"})
	require.NoError(t, err)

	req := &record.UpsertRecordRequest{HabitID: h.ID, Date: "2024-01-03", Status: true}

	first, err := records.UpsertRecord(ctx, userID, req)
	require.NoError(t, err)
	second, err := records.UpsertRecord(ctx, userID, req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.Status)

	req.Status = false
	third, err := records.UpsertRecord(ctx, userID, req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, third.ID)
	assert.False(t, third.Status)
}

func TestDeleteHabit_CascadesRecords(t *testing.T) {
	pool := setupTestDB(t)
	userID := testUserID(t, pool)
	ctx := context.Background()

	habits := NewHabitService(pool)
	records := NewRecordService(pool)

	h, err := habits.CreateHabit(ctx, userID, &habit.CreateHabitRequest{Name: "Read"})
	require.NoError(t, err)

	_, err = records.UpsertRecord(ctx, userID, &record.UpsertRecordRequest{
		HabitID: h.ID, Date: time.Now().Format(record.DateLayout), Status: true,
	})
	require.NoError(t, err)

	require.NoError(t, habits.DeleteHabit(ctx, userID, h.ID))

	remaining, err := records.ListRecords(ctx, userID, "", "")
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestWeeklyHabit_SingletonAndSchedule(t *testing.T) {
	pool := setupTestDB(t)
	userID := testUserID(t, pool)
	ctx := context.Background()

	weekly := NewWeeklyHabitService(pool)
	records := NewRecordService(pool)

	wh, err := weekly.CreateWeeklyHabit(ctx, userID, &weeklyhabit.CreateWeeklyHabitRequest{
		Title: "Gym",
		Days:  []int{3, 3, 1},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, wh.Days)

	_, err = weekly.CreateWeeklyHabit(ctx, userID, &weeklyhabit.CreateWeeklyHabitRequest{
		Title: "Swim",
		Days:  []int{5},
	})
	assert.True(t, policy.IsKind(err, policy.KindAlreadyExists))

	// 2024-01-09 is a Tuesday; the habit runs Monday and Wednesday.
	_, err = records.UpsertWeeklyRecord(ctx, userID, &record.UpsertWeeklyRecordRequest{
		WeeklyHabitID: wh.ID, Date: "2024-01-09", Status: true,
	})
	assert.True(t, policy.IsKind(err, policy.KindInvalidValue))

	// 2024-01-08 is a Monday.
	_, err = records.UpsertWeeklyRecord(ctx, userID, &record.UpsertWeeklyRecordRequest{
		WeeklyHabitID: wh.ID, Date: "2024-01-08", Status: true,
	})
	assert.NoError(t, err)
}

func TestGetFailureStreaks_NewHabitAllMisses(t *testing.T) {
	pool := setupTestDB(t)
	userID := testUserID(t, pool)
	ctx := context.Background()

	habits := NewHabitService(pool)

	h, err := habits.CreateHabit(ctx, userID, &habit.CreateHabitRequest{Name: "Read"})
	require.NoError(t, err)

	// Created today with no records: exactly one failure day so far.
	streaks, err := habits.GetFailureStreaks(ctx, userID, h.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, streaks.CurrentFailureStreak)
	assert.Equal(t, 1, streaks.LongestFailureStreak)
}
