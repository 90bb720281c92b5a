// Package pcg is a small PCG-XSH-RR generator: 64-bit state, 32-bit output.
//
// It exists so that a seed reproduces the same piece sequence and target layout
// on every platform. The output permutation is applied to the freshly advanced
// state, which differs from the reference C implementation; sequences from other
// PCG libraries will not line up.
package pcg

import (
	"fmt"
	"math/bits"
)

const (
	multiplier = 6364136223846793005
	// DefaultIncrement is used by New. Any odd value is a valid stream.
	DefaultIncrement = 1442695040888963407
)

// Source is not safe for concurrent use.
type Source struct {
	state uint64
	inc   uint64
}

// New seeds a generator on the default stream.
func New(seed uint64) *Source {
	return &Source{
		state: DefaultIncrement + seed,
		inc:   DefaultIncrement,
	}
}

// NewWithStream seeds a generator on the stream selected by stream.
func NewWithStream(seed, stream uint64) *Source {
	inc := stream<<1 | 1
	return &Source{
		state: inc + seed,
		inc:   inc,
	}
}

// Next returns the next 32 uniformly distributed bits.
func (s *Source) Next() uint32 {
	s.state = s.state*multiplier + s.inc
	xorshifted := uint32((s.state ^ (s.state >> 18)) >> 27)
	rot := int(s.state >> 59)
	return bits.RotateLeft32(xorshifted, -rot)
}

// NextBounded returns a uniform value in [0, bound). Values below the rejection
// threshold are redrawn, so the result carries no modulo bias.
func (s *Source) NextBounded(bound uint32) uint32 {
	if bound == 0 {
		panic("pcg: bound must be positive")
	}
	threshold := -bound % bound
	for {
		v := s.Next()
		if v >= threshold {
			return v % bound
		}
	}
}

// NextBoundedInt returns a uniform value in [0, n).
func (s *Source) NextBoundedInt(n int) int {
	if n <= 0 || uint64(n) > 1<<32-1 {
		panic(fmt.Sprintf("pcg: bound %d out of range", n))
	}
	return int(s.NextBounded(uint32(n)))
}
