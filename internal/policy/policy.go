// Package policy is the admission-control core for habit creation and
// weekly-habit scheduling. Everything here is a pure function over values the
// caller already holds; quota atomicity against concurrent creates belongs to
// the storage layer, which re-checks these predicates inside a transaction.
package policy

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// MaxDailyHabits is the daily-habit quota per user.
	MaxDailyHabits = 2
	// MaxTotalHabits caps daily habits plus the single weekly habit.
	MaxTotalHabits = 3

	MaxHabitNameLen   = 50
	MaxWeeklyTitleLen = 64
)

// CanCreateDailyHabit reports whether a user with the given habit counts may
// create another daily habit.
func CanCreateDailyHabit(dailyCount, weeklyCount int) bool {
	return dailyCount < MaxDailyHabits && dailyCount+weeklyCount < MaxTotalHabits
}

// CanCreateWeeklyHabit reports whether a user may create a weekly habit.
// Only one weekly habit may exist per user.
func CanCreateWeeklyHabit(dailyCount, weeklyCount int) bool {
	return weeklyCount == 0 && dailyCount+weeklyCount < MaxTotalHabits
}

// ValidateHabitName trims raw and enforces the 1..50 length bounds.
func ValidateHabitName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", newError(KindEmpty, "habit name cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxHabitNameLen {
		return "", newError(KindTooLong, fmt.Sprintf("habit name too long (max %d characters)", MaxHabitNameLen))
	}
	return name, nil
}

// ValidateWeeklyTitle trims raw and enforces the 1..64 length bounds.
func ValidateWeeklyTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", newError(KindEmpty, "title cannot be empty")
	}
	if utf8.RuneCountInString(title) > MaxWeeklyTitleLen {
		return "", newError(KindTooLong, fmt.Sprintf("title too long (max %d characters)", MaxWeeklyTitleLen))
	}
	return title, nil
}

// ValidateWeekdaySet deduplicates and sorts raw. Values must be weekday IDs
// in 1..7 (Monday=1) and at least one day must be present.
func ValidateWeekdaySet(raw []int) ([]int, error) {
	if len(raw) == 0 {
		return nil, newError(KindEmpty, "at least one day must be selected")
	}
	seen := make(map[int]bool, len(raw))
	days := make([]int, 0, len(raw))
	for _, d := range raw {
		if d < 1 || d > 7 {
			return nil, newError(KindInvalidValue, fmt.Sprintf("invalid weekday %d (must be 1-7)", d))
		}
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	sort.Ints(days)
	return days, nil
}

// WeekdayID maps a date to the Monday=1 .. Sunday=7 convention. Go's native
// weekday has Sunday=0.
func WeekdayID(t time.Time) int {
	return (int(t.Weekday())+6)%7 + 1
}

// IsScheduledOn reports whether a weekly habit with the given day set is due
// on date.
func IsScheduledOn(days []int, date time.Time) bool {
	id := WeekdayID(date)
	for _, d := range days {
		if d == id {
			return true
		}
	}
	return false
}

// IsDuplicateName compares candidate against the other habit names a user
// owns: trim both sides, compare case-insensitively. Callers exclude the
// entity being renamed from others.
func IsDuplicateName(candidate string, others []string) bool {
	candidate = strings.TrimSpace(candidate)
	for _, other := range others {
		if strings.EqualFold(candidate, strings.TrimSpace(other)) {
			return true
		}
	}
	return false
}
