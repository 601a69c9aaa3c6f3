package reward

import (
	"math/rand"
	"testing"

	"github.com/mossery/chorequest/internal/model"
)

func pool(names ...string) []model.SmallReward {
	rewards := make([]model.SmallReward, len(names))
	for i, n := range names {
		rewards[i] = model.SmallReward{ID: int64(i + 1), Reward: n}
	}
	return rewards
}

func TestPickEmptyPool(t *testing.T) {
	p := NewPicker(rand.New(rand.NewSource(1)))

	if _, ok := p.Pick(nil); ok {
		t.Error("Pick(nil) = ok, want false")
	}
	if _, ok := p.Pick([]model.SmallReward{}); ok {
		t.Error("Pick(empty) = ok, want false")
	}
}

func TestPickReturnsPoolMember(t *testing.T) {
	p := NewPicker(rand.New(rand.NewSource(1)))
	rewards := pool("candy", "dessert", "game time")

	members := map[string]bool{"candy": true, "dessert": true, "game time": true}
	for i := 0; i < 100; i++ {
		picked, ok := p.Pick(rewards)
		if !ok {
			t.Fatal("Pick returned false on non-empty pool")
		}
		if !members[picked] {
			t.Fatalf("picked %q, not in pool", picked)
		}
	}
}

func TestPickDeterministicUnderFixedSeed(t *testing.T) {
	rewards := pool("candy", "dessert", "game time", "sticker")

	var first []string
	p1 := NewPicker(rand.New(rand.NewSource(42)))
	for i := 0; i < 20; i++ {
		picked, _ := p1.Pick(rewards)
		first = append(first, picked)
	}

	p2 := NewPicker(rand.New(rand.NewSource(42)))
	for i := 0; i < 20; i++ {
		picked, _ := p2.Pick(rewards)
		if picked != first[i] {
			t.Fatalf("draw %d differs: %q vs %q", i, picked, first[i])
		}
	}
}

func TestPickDoesNotConsume(t *testing.T) {
	p := NewPicker(rand.New(rand.NewSource(1)))
	rewards := pool("candy")

	for i := 0; i < 5; i++ {
		picked, ok := p.Pick(rewards)
		if !ok || picked != "candy" {
			t.Fatalf("draw %d: %q, %v", i, picked, ok)
		}
	}
	if len(rewards) != 1 {
		t.Errorf("pool size changed to %d", len(rewards))
	}
}
