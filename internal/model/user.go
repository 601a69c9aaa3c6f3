package model

import "time"

// User is a child tracked by an admin. CurrentLevel and TotalXP are only
// ever written by the progression engine.
type User struct {
	ID           int64     `json:"id"`
	AdminID      int64     `json:"admin_id"`
	Name         string    `json:"name"`
	CurrentLevel int       `json:"current_level"`
	TotalXP      int       `json:"total_xp"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RosterSummary aggregates a tenant's roster for the dashboard.
type RosterSummary struct {
	HighestLevel int `json:"highest_level"`
	AverageXP    int `json:"average_xp"`
	UserCount    int `json:"user_count"`
}
