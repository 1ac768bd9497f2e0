package generator

import (
	"math/rand/v2"
)

// RandomSource is the randomness the sampler needs. *rand.Rand satisfies it.
type RandomSource interface {
	// IntN returns a uniform value in [0, n). n is always > 0.
	IntN(n int) int
}

// NewRandomSource returns a source seeded with seed; equal seeds give equal draws.
func NewRandomSource(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewUnseededSource returns a source seeded from the runtime's entropy.
func NewUnseededSource() RandomSource {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// sample draws n distinct elements of pool uniformly without replacement
// using a partial Fisher-Yates shuffle over a copy. The result keeps draw order.
func sample(rnd RandomSource, pool []string, n int) []string {
	buf := append([]string(nil), pool...)
	for i := 0; i < n; i++ {
		j := i + rnd.IntN(len(buf)-i)
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf[:n]
}
