// Package noise provides the error-injection primitives used by the eval
// driver and the correction tests: a binary symmetric channel and
// exact-weight error patterns.
package noise

import (
	"math/rand"
)

// BSC implements a binary symmetric channel with flip probability p.
type BSC struct {
	p   float64
	rng *rand.Rand
}

func NewBSC(p float64, rng *rand.Rand) *BSC { return &BSC{p: p, rng: rng} }

// Flip reports whether a single bit transmission gets inverted.
func (b *BSC) Flip() bool {
	if b.p <= 0 {
		return false
	}
	if b.p >= 1 {
		return true
	}
	return b.rng.Float64() < b.p
}

// Corrupt passes each bit through the channel in place and returns the
// number of flips.
func (b *BSC) Corrupt(bits []bool) int {
	flips := 0
	for i := range bits {
		if b.Flip() {
			bits[i] = !bits[i]
			flips++
		}
	}
	return flips
}

// CorruptBytes passes each bit of data through the channel in place and
// returns the number of flips.
func (b *BSC) CorruptBytes(data []byte) int {
	flips := 0
	for i := range data {
		for j := 0; j < 8; j++ {
			if b.Flip() {
				data[i] ^= 1 << uint(j)
				flips++
			}
		}
	}
	return flips
}

// Pattern returns w distinct positions in [0, n), for injecting an
// exact-weight error pattern.
func Pattern(rng *rand.Rand, n, w int) []int {
	if w > n {
		w = n
	}
	return rng.Perm(n)[:w]
}
