package store

import (
	"database/sql"
	"fmt"
	"math"

	"github.com/mossery/chorequest/internal/model"
)

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func scanUser(scanner interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	err := scanner.Scan(&u.ID, &u.AdminID, &u.Name, &u.CurrentLevel, &u.TotalXP, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

const userCols = `id, admin_id, name, current_level, total_xp, created_at, updated_at`

func (s *UserStore) Create(adminID int64, name string) (*model.User, error) {
	result, err := s.db.Exec(
		`INSERT INTO users (admin_id, name) VALUES (?, ?)`,
		adminID, name,
	)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(adminID, id)
}

// GetByID returns the user, or nil if it does not exist or belongs to a
// different tenant.
func (s *UserStore) GetByID(adminID, id int64) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE id = ? AND admin_id = ?`, id, adminID)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *UserStore) List(adminID int64) ([]model.User, error) {
	rows, err := s.db.Query(`SELECT `+userCols+` FROM users WHERE admin_id = ? ORDER BY name ASC`, adminID)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (s *UserStore) Update(adminID, id int64, name string) (*model.User, error) {
	_, err := s.db.Exec(
		`UPDATE users SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND admin_id = ?`,
		name, id, adminID,
	)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return s.GetByID(adminID, id)
}

func (s *UserStore) Delete(adminID, id int64) error {
	_, err := s.db.Exec(`DELETE FROM users WHERE id = ? AND admin_id = ?`, id, adminID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// Summary computes roster-wide dashboard metrics for one tenant.
func (s *UserStore) Summary(adminID int64) (*model.RosterSummary, error) {
	var sum model.RosterSummary
	var avg sql.NullFloat64
	var highest sql.NullInt64
	err := s.db.QueryRow(
		`SELECT COUNT(*), MAX(current_level), AVG(total_xp) FROM users WHERE admin_id = ?`,
		adminID,
	).Scan(&sum.UserCount, &highest, &avg)
	if err != nil {
		return nil, fmt.Errorf("roster summary: %w", err)
	}
	if highest.Valid {
		sum.HighestLevel = int(highest.Int64)
	}
	if avg.Valid {
		sum.AverageXP = int(math.Round(avg.Float64))
	}
	return &sum, nil
}
