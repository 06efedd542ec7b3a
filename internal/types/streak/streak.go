package streak

// FailureStreaks is the derived statistic rendered next to each habit: the
// trailing run of missed days and the longest such run since tracking began.
type FailureStreaks struct {
	CurrentFailureStreak int `json:"current_failure_streak"`
	LongestFailureStreak int `json:"longest_failure_streak"`
}
