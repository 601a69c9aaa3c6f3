package store

import (
	"database/sql"
	"fmt"

	"github.com/mossery/chorequest/internal/model"
)

// SmallRewardStore manages the shared, tenant-independent incentive pool.
type SmallRewardStore struct {
	db *sql.DB
}

func NewSmallRewardStore(db *sql.DB) *SmallRewardStore {
	return &SmallRewardStore{db: db}
}

func (s *SmallRewardStore) Add(reward string) (*model.SmallReward, error) {
	result, err := s.db.Exec(`INSERT INTO small_rewards (reward) VALUES (?)`, reward)
	if err != nil {
		return nil, fmt.Errorf("insert small reward: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return &model.SmallReward{ID: id, Reward: reward}, nil
}

func (s *SmallRewardStore) List() ([]model.SmallReward, error) {
	rows, err := s.db.Query(`SELECT id, reward FROM small_rewards ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list small rewards: %w", err)
	}
	defer rows.Close()

	var rewards []model.SmallReward
	for rows.Next() {
		var r model.SmallReward
		if err := rows.Scan(&r.ID, &r.Reward); err != nil {
			return nil, fmt.Errorf("scan small reward: %w", err)
		}
		rewards = append(rewards, r)
	}
	return rewards, rows.Err()
}

func (s *SmallRewardStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM small_rewards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete small reward: %w", err)
	}
	return nil
}
