package progression

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/mossery/chorequest/internal/model"
)

// Service owns the write path of the ledger. Reads go through the stores.
type Service struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewService(db *sql.DB, logger *slog.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Result reports the outcome of logging one activity.
type Result struct {
	Entry        *model.ActivityEntry `json:"entry"`
	XPEarned     int                  `json:"xp_earned"`
	TotalXP      int                  `json:"total_xp"`
	CurrentLevel int                  `json:"current_level"`
	LeveledUp    bool                 `json:"leveled_up"`
}

// LogActivity appends a ledger row, adds xp_earned + bonus_xp to the user's
// total, and recomputes the level against the tenant's ladder, atomically.
// The task and user must belong to adminID. On any failure the whole triple
// rolls back.
func (s *Service) LogActivity(adminID, userID, taskID int64, date string, timeSpent, bonusXP int) (*Result, error) {
	if timeSpent < 0 {
		return nil, fmt.Errorf("%w: time_spent must be >= 0", ErrInvalidInput)
	}
	if bonusXP < 0 {
		return nil, fmt.Errorf("%w: bonus_xp must be >= 0", ErrInvalidInput)
	}
	if !validDate(date) {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	task, err := taskInTenant(tx, adminID, taskID)
	if err != nil {
		return nil, err
	}

	var oldLevel int
	err = tx.QueryRow(
		`SELECT current_level FROM users WHERE id = ? AND admin_id = ?`,
		userID, adminID,
	).Scan(&oldLevel)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	xpEarned := XPForTask(task, timeSpent)

	result, err := tx.Exec(
		`INSERT INTO activity_log (admin_id, user_id, task_id, date, time_spent, xp_earned, bonus_xp)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		adminID, userID, taskID, date, timeSpent, xpEarned, bonusXP,
	)
	if err != nil {
		return nil, fmt.Errorf("insert activity: %w", err)
	}
	entryID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	// Relative increment: concurrent logs for the same user never lose
	// updates regardless of interleaving.
	if _, err := tx.Exec(
		`UPDATE users SET total_xp = total_xp + ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND admin_id = ?`,
		xpEarned+bonusXP, userID, adminID,
	); err != nil {
		return nil, fmt.Errorf("increment total xp: %w", err)
	}

	var totalXP int
	if err := tx.QueryRow(
		`SELECT total_xp FROM users WHERE id = ? AND admin_id = ?`,
		userID, adminID,
	).Scan(&totalXP); err != nil {
		return nil, fmt.Errorf("reread total xp: %w", err)
	}

	levels, err := levelsInTenant(tx, adminID)
	if err != nil {
		return nil, err
	}
	newLevel := LevelForXP(levels, totalXP)
	if _, err := tx.Exec(
		`UPDATE users SET current_level = ? WHERE id = ? AND admin_id = ?`,
		newLevel, userID, adminID,
	); err != nil {
		return nil, fmt.Errorf("update level: %w", err)
	}

	entry := &model.ActivityEntry{
		ID:        entryID,
		AdminID:   adminID,
		UserID:    userID,
		TaskID:    taskID,
		TaskName:  task.TaskName,
		Date:      date,
		TimeSpent: timeSpent,
		XPEarned:  xpEarned,
		BonusXP:   bonusXP,
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	if newLevel > oldLevel {
		s.logger.Info("level up", "admin_id", adminID, "user_id", userID, "level", newLevel)
	}

	return &Result{
		Entry:        entry,
		XPEarned:     xpEarned,
		TotalXP:      totalXP,
		CurrentLevel: newLevel,
		LeveledUp:    newLevel > oldLevel,
	}, nil
}

// UserProgress is the read-only projection for a user's progress display.
func (s *Service) UserProgress(adminID, userID int64) (*Progress, error) {
	var totalXP int
	err := s.db.QueryRow(
		`SELECT total_xp FROM users WHERE id = ? AND admin_id = ?`,
		userID, adminID,
	).Scan(&totalXP)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT level, admin_id, xp_required, cumulative_xp, reward FROM levels
		 WHERE admin_id = ? ORDER BY cumulative_xp ASC, level ASC`,
		adminID,
	)
	if err != nil {
		return nil, fmt.Errorf("list levels: %w", err)
	}
	defer rows.Close()

	var levels []model.Level
	for rows.Next() {
		var l model.Level
		if err := rows.Scan(&l.Level, &l.AdminID, &l.XPRequired, &l.CumulativeXP, &l.Reward); err != nil {
			return nil, fmt.Errorf("scan level: %w", err)
		}
		levels = append(levels, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate levels: %w", err)
	}

	p := NextProgress(levels, totalXP)
	return &p, nil
}

func taskInTenant(tx *sql.Tx, adminID, taskID int64) (*model.Task, error) {
	var t model.Task
	err := tx.QueryRow(
		`SELECT id, admin_id, task_name, base_xp, time_multiplier FROM tasks WHERE id = ? AND admin_id = ?`,
		taskID, adminID,
	).Scan(&t.ID, &t.AdminID, &t.TaskName, &t.BaseXP, &t.TimeMultiplier)
	if err == sql.ErrNoRows {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &t, nil
}

func levelsInTenant(tx *sql.Tx, adminID int64) ([]model.Level, error) {
	rows, err := tx.Query(
		`SELECT level, admin_id, xp_required, cumulative_xp, reward FROM levels
		 WHERE admin_id = ? ORDER BY cumulative_xp ASC, level ASC`,
		adminID,
	)
	if err != nil {
		return nil, fmt.Errorf("list levels: %w", err)
	}
	defer rows.Close()

	var levels []model.Level
	for rows.Next() {
		var l model.Level
		if err := rows.Scan(&l.Level, &l.AdminID, &l.XPRequired, &l.CumulativeXP, &l.Reward); err != nil {
			return nil, fmt.Errorf("scan level: %w", err)
		}
		levels = append(levels, l)
	}
	return levels, rows.Err()
}
