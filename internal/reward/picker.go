// Package reward draws small incentive rewards from the shared pool.
package reward

import (
	"math/rand"
	"sync"

	"github.com/mossery/chorequest/internal/model"
)

// Picker selects a reward uniformly at random. The randomness source is
// injected so draws are deterministic under a fixed seed in tests.
type Picker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewPicker(rng *rand.Rand) *Picker {
	return &Picker{rng: rng}
}

// Pick returns one entry from the pool, or false if the pool is empty.
// Drawing never consumes the entry; repeated draws may repeat.
func (p *Picker) Pick(pool []model.SmallReward) (string, bool) {
	if len(pool) == 0 {
		return "", false
	}
	p.mu.Lock()
	i := p.rng.Intn(len(pool))
	p.mu.Unlock()
	return pool[i].Reward, true
}
