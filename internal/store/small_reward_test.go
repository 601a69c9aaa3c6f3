package store

import "testing"

func TestSmallRewardAddListDelete(t *testing.T) {
	srs := NewSmallRewardStore(openTestDB(t))

	r1, err := srs.Add("Piece of candy")
	if err != nil {
		t.Fatalf("add reward: %v", err)
	}
	if _, err := srs.Add("Choose dessert"); err != nil {
		t.Fatalf("add reward: %v", err)
	}

	rewards, err := srs.List()
	if err != nil {
		t.Fatalf("list rewards: %v", err)
	}
	if len(rewards) != 2 {
		t.Fatalf("len = %d, want 2", len(rewards))
	}
	if rewards[0].Reward != "Piece of candy" {
		t.Errorf("rewards[0] = %q", rewards[0].Reward)
	}

	if err := srs.Delete(r1.ID); err != nil {
		t.Fatalf("delete reward: %v", err)
	}
	rewards, err = srs.List()
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(rewards) != 1 || rewards[0].Reward != "Choose dessert" {
		t.Errorf("after delete = %+v", rewards)
	}
}

func TestSmallRewardListEmpty(t *testing.T) {
	srs := NewSmallRewardStore(openTestDB(t))

	rewards, err := srs.List()
	if err != nil {
		t.Fatalf("list rewards: %v", err)
	}
	if len(rewards) != 0 {
		t.Errorf("len = %d, want 0", len(rewards))
	}
}
