package model

import "time"

// ActivityEntry is one immutable row of the activity ledger. XPEarned is
// frozen at write time; deleting the referenced task or user later does not
// change it. TaskName is joined in for display and is empty if the task has
// since been deleted.
type ActivityEntry struct {
	ID        int64     `json:"id"`
	AdminID   int64     `json:"admin_id"`
	UserID    int64     `json:"user_id"`
	TaskID    int64     `json:"task_id"`
	TaskName  string    `json:"task_name,omitempty"`
	Date      string    `json:"date"`
	TimeSpent int       `json:"time_spent"`
	XPEarned  int       `json:"xp_earned"`
	BonusXP   int       `json:"bonus_xp"`
	CreatedAt time.Time `json:"created_at"`
}
