package model

import "time"

// Task defines the XP rule for an activity. TimeMultiplier is stored for
// duration-weighted XP but is not applied by the current rule; XP per
// completion is BaseXP regardless of time spent.
type Task struct {
	ID             int64     `json:"id"`
	AdminID        int64     `json:"admin_id"`
	TaskName       string    `json:"task_name"`
	BaseXP         int       `json:"base_xp"`
	TimeMultiplier float64   `json:"time_multiplier"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
