package model

// SmallReward is an entry in the shared incentive pool. Drawing one is
// advisory and never removes it from the pool.
type SmallReward struct {
	ID     int64  `json:"id"`
	Reward string `json:"reward"`
}
