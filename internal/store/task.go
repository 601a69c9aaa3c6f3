package store

import (
	"database/sql"
	"fmt"

	"github.com/mossery/chorequest/internal/model"
)

type TaskStore struct {
	db *sql.DB
}

func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db}
}

func scanTask(scanner interface{ Scan(...any) error }) (*model.Task, error) {
	var t model.Task
	err := scanner.Scan(&t.ID, &t.AdminID, &t.TaskName, &t.BaseXP, &t.TimeMultiplier, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

const taskCols = `id, admin_id, task_name, base_xp, time_multiplier, created_at, updated_at`

func (s *TaskStore) Create(adminID int64, name string, baseXP int, timeMultiplier float64) (*model.Task, error) {
	result, err := s.db.Exec(
		`INSERT INTO tasks (admin_id, task_name, base_xp, time_multiplier) VALUES (?, ?, ?, ?)`,
		adminID, name, baseXP, timeMultiplier,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(adminID, id)
}

// GetByID returns the task, or nil if it does not exist or belongs to a
// different tenant.
func (s *TaskStore) GetByID(adminID, id int64) (*model.Task, error) {
	row := s.db.QueryRow(`SELECT `+taskCols+` FROM tasks WHERE id = ? AND admin_id = ?`, id, adminID)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

func (s *TaskStore) List(adminID int64) ([]model.Task, error) {
	rows, err := s.db.Query(`SELECT `+taskCols+` FROM tasks WHERE admin_id = ? ORDER BY task_name ASC`, adminID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (s *TaskStore) Update(adminID, id int64, name string, baseXP int, timeMultiplier float64) (*model.Task, error) {
	_, err := s.db.Exec(
		`UPDATE tasks SET task_name = ?, base_xp = ?, time_multiplier = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND admin_id = ?`,
		name, baseXP, timeMultiplier, id, adminID,
	)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return s.GetByID(adminID, id)
}

func (s *TaskStore) Delete(adminID, id int64) error {
	_, err := s.db.Exec(`DELETE FROM tasks WHERE id = ? AND admin_id = ?`, id, adminID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
