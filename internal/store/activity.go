package store

import (
	"database/sql"
	"fmt"

	"github.com/mossery/chorequest/internal/model"
)

// ActivityStore reads the append-only ledger. Writes happen only through
// progression.Service, which appends inside the same transaction that
// updates the user's XP and level.
type ActivityStore struct {
	db *sql.DB
}

func NewActivityStore(db *sql.DB) *ActivityStore {
	return &ActivityStore{db: db}
}

func scanActivity(scanner interface{ Scan(...any) error }) (*model.ActivityEntry, error) {
	var e model.ActivityEntry
	var taskName sql.NullString
	err := scanner.Scan(
		&e.ID, &e.AdminID, &e.UserID, &e.TaskID, &taskName,
		&e.Date, &e.TimeSpent, &e.XPEarned, &e.BonusXP, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.TaskName = taskName.String
	return &e, nil
}

// Deleted tasks leave the ledger row intact, so the join is left outer and
// task_name comes back NULL for them.
const activityQuery = `
	SELECT a.id, a.admin_id, a.user_id, a.task_id, t.task_name,
	       a.date, a.time_spent, a.xp_earned, a.bonus_xp, a.created_at
	FROM activity_log a
	LEFT JOIN tasks t ON a.task_id = t.id AND t.admin_id = a.admin_id`

// ListByUserAndDate returns a user's entries for one date (YYYY-MM-DD).
func (s *ActivityStore) ListByUserAndDate(adminID, userID int64, date string) ([]model.ActivityEntry, error) {
	rows, err := s.db.Query(
		activityQuery+` WHERE a.admin_id = ? AND a.user_id = ? AND a.date = ? ORDER BY a.id ASC`,
		adminID, userID, date,
	)
	if err != nil {
		return nil, fmt.Errorf("list activities by date: %w", err)
	}
	defer rows.Close()
	return collectActivities(rows)
}

// ListByUser returns all of a user's entries, most recent date first.
func (s *ActivityStore) ListByUser(adminID, userID int64) ([]model.ActivityEntry, error) {
	rows, err := s.db.Query(
		activityQuery+` WHERE a.admin_id = ? AND a.user_id = ? ORDER BY a.date DESC, a.id DESC`,
		adminID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()
	return collectActivities(rows)
}

func collectActivities(rows *sql.Rows) ([]model.ActivityEntry, error) {
	var entries []model.ActivityEntry
	for rows.Next() {
		e, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}
