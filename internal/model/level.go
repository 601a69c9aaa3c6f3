package model

// Level is one rung of a tenant's ladder, keyed by (Level, AdminID).
// CumulativeXP is the total XP needed to reach this level from zero and is
// the quantity compared against a user's TotalXP; XPRequired is the
// increment over the previous level.
type Level struct {
	Level        int    `json:"level"`
	AdminID      int64  `json:"admin_id"`
	XPRequired   int    `json:"xp_required"`
	CumulativeXP int    `json:"cumulative_xp"`
	Reward       string `json:"reward"`
}
