package store

import (
	"database/sql"
	"fmt"

	"github.com/mossery/chorequest/internal/model"
)

// defaultLevels is the ladder seeded for every new tenant. It is only a
// registration convenience; admins can add or edit levels afterward, and
// level-up logic always reads the persisted table.
var defaultLevels = []model.Level{
	{Level: 1, XPRequired: 100, CumulativeXP: 100, Reward: "Reward: Gift card $5"},
	{Level: 2, XPRequired: 200, CumulativeXP: 300, Reward: "Reward: Extra 30 minutes screen time"},
	{Level: 3, XPRequired: 300, CumulativeXP: 600, Reward: "Reward: Choice of dinner for one night"},
	{Level: 4, XPRequired: 400, CumulativeXP: 1000, Reward: "Reward: Movie night choice"},
	{Level: 5, XPRequired: 500, CumulativeXP: 1500, Reward: "Reward: New book or toy"},
	{Level: 6, XPRequired: 600, CumulativeXP: 2100, Reward: "Reward: Trip to the local park"},
	{Level: 7, XPRequired: 700, CumulativeXP: 2800, Reward: "Reward: $10 cash bonus"},
	{Level: 8, XPRequired: 800, CumulativeXP: 3600, Reward: "Reward: Day out at the zoo"},
	{Level: 9, XPRequired: 900, CumulativeXP: 4500, Reward: "Reward: Video game"},
	{Level: 10, XPRequired: 1000, CumulativeXP: 5500, Reward: "Reward: Weekend family trip"},
}

// seedDefaultLevels inserts the default ladder for a new tenant inside the
// caller's transaction.
func seedDefaultLevels(tx *sql.Tx, adminID int64) error {
	for _, l := range defaultLevels {
		if _, err := tx.Exec(
			`INSERT INTO levels (level, admin_id, xp_required, cumulative_xp, reward) VALUES (?, ?, ?, ?, ?)`,
			l.Level, adminID, l.XPRequired, l.CumulativeXP, l.Reward,
		); err != nil {
			return fmt.Errorf("seed level %d: %w", l.Level, err)
		}
	}
	return nil
}

type LevelStore struct {
	db *sql.DB
}

func NewLevelStore(db *sql.DB) *LevelStore {
	return &LevelStore{db: db}
}

func scanLevel(scanner interface{ Scan(...any) error }) (*model.Level, error) {
	var l model.Level
	err := scanner.Scan(&l.Level, &l.AdminID, &l.XPRequired, &l.CumulativeXP, &l.Reward)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

const levelCols = `level, admin_id, xp_required, cumulative_xp, reward`

// List returns a tenant's ladder ordered by ascending cumulative threshold.
func (s *LevelStore) List(adminID int64) ([]model.Level, error) {
	rows, err := s.db.Query(
		`SELECT `+levelCols+` FROM levels WHERE admin_id = ? ORDER BY cumulative_xp ASC, level ASC`,
		adminID,
	)
	if err != nil {
		return nil, fmt.Errorf("list levels: %w", err)
	}
	defer rows.Close()

	var levels []model.Level
	for rows.Next() {
		l, err := scanLevel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan level: %w", err)
		}
		levels = append(levels, *l)
	}
	return levels, rows.Err()
}

func (s *LevelStore) Get(adminID int64, level int) (*model.Level, error) {
	row := s.db.QueryRow(
		`SELECT `+levelCols+` FROM levels WHERE level = ? AND admin_id = ?`,
		level, adminID,
	)
	l, err := scanLevel(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get level: %w", err)
	}
	return l, nil
}

func (s *LevelStore) Add(adminID int64, level, xpRequired, cumulativeXP int, reward string) (*model.Level, error) {
	_, err := s.db.Exec(
		`INSERT INTO levels (level, admin_id, xp_required, cumulative_xp, reward) VALUES (?, ?, ?, ?, ?)`,
		level, adminID, xpRequired, cumulativeXP, reward,
	)
	if err != nil {
		return nil, fmt.Errorf("insert level: %w", err)
	}
	return s.Get(adminID, level)
}

// Update edits an existing level's thresholds and reward. Users who already
// hold the level are not touched; their level is recomputed on their next
// XP-changing event.
func (s *LevelStore) Update(adminID int64, level, xpRequired, cumulativeXP int, reward string) (*model.Level, error) {
	_, err := s.db.Exec(
		`UPDATE levels SET xp_required = ?, cumulative_xp = ?, reward = ? WHERE level = ? AND admin_id = ?`,
		xpRequired, cumulativeXP, reward, level, adminID,
	)
	if err != nil {
		return nil, fmt.Errorf("update level: %w", err)
	}
	return s.Get(adminID, level)
}
