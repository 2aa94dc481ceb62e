package economy

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"
	"sync"
)

// Dice is the engine's source of randomness. Injected so tests can pin
// every draw.
type Dice interface {
	// IntBetween returns a uniform random integer in [lo, hi], both
	// bounds inclusive.
	IntBetween(lo, hi int) int

	// Magnitude draws the random floor-space quantity for a
	// repeat-symbol factor: uniform over (0, factor], rounded to 3
	// decimals, never below 0.001. Expected value scales linearly with
	// the factor.
	Magnitude(factor int) float64
}

// Roller is the production Dice backed by math/rand. Safe for concurrent
// use; command handlers roll from multiple goroutines.
type Roller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRoller creates a Roller from the given seed.
func NewRoller(seed int64) *Roller {
	return &Roller{rng: rand.New(rand.NewSource(seed))}
}

// NewSeed generates a seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

func (r *Roller) IntBetween(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo + r.rng.Intn(hi-lo+1)
}

func (r *Roller) Magnitude(factor int) float64 {
	if factor < 1 {
		factor = 1
	}
	r.mu.Lock()
	v := (1 - r.rng.Float64()) * float64(factor) // (0, factor]
	r.mu.Unlock()

	v = math.Round(v*1000) / 1000
	if v < 0.001 {
		v = 0.001
	}
	return v
}
