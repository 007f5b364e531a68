package utils

import (
	"math/rand"
	"sync"
	"time"
)

// Rand is the subset of *rand.Rand the game code draws from.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// LockedRand makes a *rand.Rand safe to share between request goroutines.
type LockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewLockedRand(seed int64) *LockedRand {
	return &LockedRand{rng: rand.New(rand.NewSource(seed))}
}

// NewTimeSeededRand is what the server wires in production.
func NewTimeSeededRand() *LockedRand {
	return NewLockedRand(time.Now().UnixNano())
}

func (r *LockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

func (r *LockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

// Shuffle is an in-place Fisher-Yates shuffle.
func Shuffle[T any](rng Rand, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
