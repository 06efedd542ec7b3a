package streak

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habitLoopAPI/internal/types/record"
)

func day(s string) time.Time {
	t, err := time.Parse(record.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCompute_EmptyRecordsAllFailures(t *testing.T) {
	// No records at all: every day in the range is a miss.
	got := Compute(nil, day("2024-01-01"), day("2024-01-05"))

	assert.Equal(t, 5, got.LongestFailureStreak)
	assert.Equal(t, 5, got.CurrentFailureStreak)
}

func TestCompute_AllDaysSucceeded(t *testing.T) {
	statusByDate := map[string]bool{}
	for d := day("2024-01-01"); !d.After(day("2024-01-07")); d = d.AddDate(0, 0, 1) {
		statusByDate[d.Format(record.DateLayout)] = true
	}

	got := Compute(statusByDate, day("2024-01-01"), day("2024-01-07"))

	assert.Equal(t, 0, got.LongestFailureStreak)
	assert.Equal(t, 0, got.CurrentFailureStreak)
}

func TestCompute_SuccessMidRange(t *testing.T) {
	// Jan 1-5 with a single success on Jan 3: failures on 1,2,4,5.
	// Both maximal runs have length 2, and the trailing run is Jan 4-5.
	statusByDate := map[string]bool{"2024-01-03": true}

	got := Compute(statusByDate, day("2024-01-01"), day("2024-01-05"))

	assert.Equal(t, 2, got.LongestFailureStreak)
	assert.Equal(t, 2, got.CurrentFailureStreak)
}

func TestCompute_SuccessTodayZeroesCurrent(t *testing.T) {
	statusByDate := map[string]bool{"2024-01-05": true}

	got := Compute(statusByDate, day("2024-01-01"), day("2024-01-05"))

	assert.Equal(t, 4, got.LongestFailureStreak)
	assert.Equal(t, 0, got.CurrentFailureStreak)
}

func TestCompute_ExplicitFalseRecordIsFailure(t *testing.T) {
	// A stored status=false record counts the same as no record.
	statusByDate := map[string]bool{
		"2024-01-02": false,
		"2024-01-04": true,
	}

	got := Compute(statusByDate, day("2024-01-01"), day("2024-01-05"))

	assert.Equal(t, 3, got.LongestFailureStreak)
	assert.Equal(t, 1, got.CurrentFailureStreak)
}

func TestCompute_StartAfterToday(t *testing.T) {
	got := Compute(map[string]bool{"2024-02-01": true}, day("2024-02-01"), day("2024-01-05"))

	assert.Equal(t, 0, got.LongestFailureStreak)
	assert.Equal(t, 0, got.CurrentFailureStreak)
}

func TestCompute_SingleDayRange(t *testing.T) {
	got := Compute(nil, day("2024-01-05"), day("2024-01-05"))
	assert.Equal(t, 1, got.LongestFailureStreak)
	assert.Equal(t, 1, got.CurrentFailureStreak)

	got = Compute(map[string]bool{"2024-01-05": true}, day("2024-01-05"), day("2024-01-05"))
	assert.Equal(t, 0, got.LongestFailureStreak)
	assert.Equal(t, 0, got.CurrentFailureStreak)
}

func TestCompute_FutureRecordsIgnored(t *testing.T) {
	// A success recorded after today must not shrink either streak.
	without := Compute(nil, day("2024-01-01"), day("2024-01-05"))
	with := Compute(map[string]bool{"2024-01-09": true}, day("2024-01-01"), day("2024-01-05"))

	assert.Equal(t, without, with)
}

func TestCompute_IgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)
	today := time.Date(2024, 1, 5, 0, 1, 0, 0, time.UTC)

	got := Compute(map[string]bool{"2024-01-03": true}, start, today)

	assert.Equal(t, 2, got.LongestFailureStreak)
	assert.Equal(t, 2, got.CurrentFailureStreak)
}

func TestCompute_SuccessInsideRunNeverIncreasesLongest(t *testing.T) {
	start, today := day("2024-03-01"), day("2024-03-20")
	base := Compute(map[string]bool{"2024-03-10": true}, start, today)

	// Insert an extra success strictly inside the leading failure run.
	narrowed := Compute(map[string]bool{
		"2024-03-05": true,
		"2024-03-10": true,
	}, start, today)

	assert.LessOrEqual(t, narrowed.LongestFailureStreak, base.LongestFailureStreak)
	assert.LessOrEqual(t, narrowed.CurrentFailureStreak, base.CurrentFailureStreak)
}

func TestComputeForHabit_FiltersByHabit(t *testing.T) {
	habitID := uuid.New()
	otherID := uuid.New()

	records := []record.HabitRecord{
		{HabitID: habitID, Date: "2024-01-03", Status: true},
		// Another habit's success on the last day must not count.
		{HabitID: otherID, Date: "2024-01-05", Status: true},
	}

	got := ComputeForHabit(records, habitID, day("2024-01-01"), day("2024-01-05"))

	assert.Equal(t, 2, got.LongestFailureStreak)
	assert.Equal(t, 2, got.CurrentFailureStreak)
}

func TestComputeForHabit_UpsertIdempotent(t *testing.T) {
	habitID := uuid.New()
	once := []record.HabitRecord{
		{HabitID: habitID, Date: "2024-01-02", Status: true},
	}
	twice := []record.HabitRecord{
		{HabitID: habitID, Date: "2024-01-02", Status: true},
		{HabitID: habitID, Date: "2024-01-02", Status: true},
	}

	require.Equal(t,
		ComputeForHabit(once, habitID, day("2024-01-01"), day("2024-01-05")),
		ComputeForHabit(twice, habitID, day("2024-01-01"), day("2024-01-05")),
	)
}
