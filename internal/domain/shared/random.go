package shared

import (
	"math/rand/v2"
	"sync"
	"time"
)

// RandomSource supplies the randomness used by roster generation, crowd spawning and
// drone identification. Injecting it keeps games reproducible under a fixed seed.
type RandomSource interface {
	// Float64 returns a value in [0.0, 1.0)
	Float64() float64
	// IntN returns a value in [0, n). n must be positive.
	IntN(n int) int
}

// SeededRandom is a RandomSource backed by a PCG generator.
// It is safe for concurrent use.
type SeededRandom struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededRandom creates a deterministic source. Seed 0 picks a time-based seed.
func NewSeededRandom(seed uint64) *SeededRandom {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &SeededRandom{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *SeededRandom) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *SeededRandom) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// Shuffle permutes n elements in place using Fisher-Yates over the given source
func Shuffle(rng RandomSource, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		swap(i, j)
	}
}
