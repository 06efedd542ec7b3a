package habit

import (
	"time"

	"github.com/google/uuid"
)

// Habit is a daily habit tracked with one pass/fail record per calendar day.
type Habit struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Color     *string   `json:"color,omitempty" db:"color"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CreateHabitRequest struct {
	Name  string  `json:"name"`
	Color *string `json:"color,omitempty"`
}

type RenameHabitRequest struct {
	Name string `json:"name"`
}
