// Package progression converts logged activity into XP and levels.
//
// XP and level derivation are pure functions over catalog state; LogActivity
// orchestrates the atomic triple: append a ledger row, increment the user's
// total XP, and recompute the level — all in one transaction.
package progression

import (
	"errors"
	"time"

	"github.com/mossery/chorequest/internal/model"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrTaskNotFound = errors.New("task not found")
	ErrInvalidInput = errors.New("invalid input")
)

// XPForTask derives the XP earned for completing a task. The rule is
// duration-independent: time spent is recorded for history only and the
// task's time multiplier is stored but not applied.
func XPForTask(task *model.Task, timeSpent int) int {
	return task.BaseXP
}

// LevelForXP returns the highest level whose cumulative threshold is within
// totalXP, or 0 if none qualifies. Levels must be ordered by ascending
// cumulative XP, as LevelStore.List returns them.
func LevelForXP(levels []model.Level, totalXP int) int {
	current := 0
	for _, l := range levels {
		if l.CumulativeXP > totalXP {
			break
		}
		current = l.Level
	}
	return current
}

// Progress describes how far a user is toward the next level.
type Progress struct {
	CurrentLevel int     `json:"current_level"`
	TotalXP      int     `json:"total_xp"`
	NextLevel    int     `json:"next_level,omitempty"`
	XPToNext     int     `json:"xp_to_next_level"`
	Fraction     float64 `json:"fraction"`
}

// NextProgress computes the projection shown on progress bars. The fraction
// is always within [0, 1]; past the top of the ladder it reports 1 with
// nothing left to earn.
func NextProgress(levels []model.Level, totalXP int) Progress {
	p := Progress{
		CurrentLevel: LevelForXP(levels, totalXP),
		TotalXP:      totalXP,
	}

	var next *model.Level
	for i := range levels {
		if levels[i].CumulativeXP > totalXP {
			next = &levels[i]
			break
		}
	}
	if next == nil {
		p.Fraction = 1
		return p
	}

	p.NextLevel = next.Level
	p.XPToNext = next.CumulativeXP - totalXP
	p.Fraction = float64(totalXP) / float64(next.CumulativeXP)
	if p.Fraction < 0 {
		p.Fraction = 0
	}
	if p.Fraction > 1 {
		p.Fraction = 1
	}
	return p
}

// validDate reports whether date is a YYYY-MM-DD calendar date.
func validDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}
