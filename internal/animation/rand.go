package animation

import (
	"math/rand"
	"time"
)

// Rand is the randomness the scene draws from. *rand.Rand satisfies it.
type Rand interface {
	Float32() float32
}

// Clock provides wall-clock time for the blade sway.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// NewRand returns a generator seeded with seed, or with the current time when
// seed is 0.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
