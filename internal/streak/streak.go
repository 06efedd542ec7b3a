// Package streak computes failure-streak statistics for a habit from its
// completion history. The computation is pure: the caller supplies "today",
// and nothing here touches the clock or the database.
//
// Every calendar day from the habit's start date through today is evaluated
// exactly once. A day counts as a failure unless a record for that exact
// date exists with status true, so sparse histories read as runs of misses.
package streak

import (
	"time"

	"github.com/google/uuid"

	"habitLoopAPI/internal/types/record"
	"habitLoopAPI/internal/types/streak"
)

// Compute scans the canonical day sequence from start through today and
// returns the trailing and longest runs of failure days. A start after today
// yields an empty sequence and zero streaks. Records dated outside the
// sequence never appear in statusByDate lookups and are therefore ignored.
func Compute(statusByDate map[string]bool, start, today time.Time) streak.FailureStreaks {
	start = truncateToDay(start)
	today = truncateToDay(today)

	var result streak.FailureStreaks
	if start.After(today) {
		return result
	}

	run := 0
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		if statusByDate[d.Format(record.DateLayout)] {
			run = 0
			continue
		}
		run++
		if run > result.LongestFailureStreak {
			result.LongestFailureStreak = run
		}
	}

	// Trailing run ending at today; zero if today itself succeeded.
	for d := today; !d.Before(start); d = d.AddDate(0, 0, -1) {
		if statusByDate[d.Format(record.DateLayout)] {
			break
		}
		result.CurrentFailureStreak++
	}

	return result
}

// ComputeForHabit filters records down to habitID and runs Compute. The
// upsert key (user, habit, date) guarantees at most one record per date, so
// building the map is a plain overwrite.
func ComputeForHabit(records []record.HabitRecord, habitID uuid.UUID, start, today time.Time) streak.FailureStreaks {
	statusByDate := make(map[string]bool, len(records))
	for _, r := range records {
		if r.HabitID == habitID {
			statusByDate[r.Date] = r.Status
		}
	}
	return Compute(statusByDate, start, today)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
