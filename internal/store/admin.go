package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mossery/chorequest/internal/model"
)

var (
	// ErrDuplicateUsername is returned when registering a username that
	// already exists.
	ErrDuplicateUsername = errors.New("username already taken")

	// ErrNotAuthenticated is returned for both an unknown username and a
	// wrong password; callers must not be able to tell which.
	ErrNotAuthenticated = errors.New("invalid username or password")
)

// dummyHash is compared against when the username is unknown so that
// authentication takes the same time either way.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type AdminStore struct {
	db *sql.DB
}

func NewAdminStore(db *sql.DB) *AdminStore {
	return &AdminStore{db: db}
}

func scanAdmin(scanner interface{ Scan(...any) error }) (*model.Admin, error) {
	var a model.Admin
	err := scanner.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

const adminCols = `id, username, password_hash, created_at`

// Register creates a tenant and seeds its default level ladder in a single
// transaction. Returns ErrDuplicateUsername if the username exists.
func (s *AdminStore) Register(username, password string) (*model.Admin, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`INSERT INTO admins (username, password_hash) VALUES (?, ?)`,
		username, string(hash),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("insert admin: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	if err := seedDefaultLevels(tx, id); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetByID(id)
}

// Authenticate verifies credentials and returns the admin. Unknown usernames
// and wrong passwords both yield ErrNotAuthenticated, and a bcrypt compare
// runs in either case.
func (s *AdminStore) Authenticate(username, password string) (*model.Admin, error) {
	a, err := s.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if a == nil {
		bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return nil, ErrNotAuthenticated
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, ErrNotAuthenticated
	}
	return a, nil
}

func (s *AdminStore) GetByID(id int64) (*model.Admin, error) {
	row := s.db.QueryRow(`SELECT `+adminCols+` FROM admins WHERE id = ?`, id)
	a, err := scanAdmin(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return a, nil
}

func (s *AdminStore) GetByUsername(username string) (*model.Admin, error) {
	row := s.db.QueryRow(`SELECT `+adminCols+` FROM admins WHERE username = ?`, username)
	a, err := scanAdmin(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get admin by username: %w", err)
	}
	return a, nil
}
