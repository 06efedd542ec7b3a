package weeklyhabit

import (
	"time"

	"github.com/google/uuid"
)

// WeeklyHabit is tracked only on its scheduled weekdays. Each user owns at
// most one. Days uses the Monday=1 .. Sunday=7 convention and is stored
// sorted with duplicates removed.
type WeeklyHabit struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Days      []int     `json:"days" db:"days"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type CreateWeeklyHabitRequest struct {
	Title string `json:"title"`
	Days  []int  `json:"days"`
}

// UpdateWeeklyHabitRequest carries a partial update. Title and Days are
// independently optional.
type UpdateWeeklyHabitRequest struct {
	Title *string `json:"title,omitempty"`
	Days  *[]int  `json:"days,omitempty"`
}
