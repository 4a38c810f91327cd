// Package sampling implements deterministic sampling of integers and floats
// from a keyed stream of bytes, for reproducible tests and benchmarks.
package sampling

import (
	"encoding/binary"
	"fmt"
	"math/bits"
)

// Source draws values from the bytes of a PRNG.
type Source struct {
	prng PRNG
	buf  [8]byte
}

// NewSource returns a Source reading from prng.
func NewSource(prng PRNG) *Source {
	return &Source{prng: prng}
}

// NewSourceFromKey returns a Source over a new KeyedPRNG seeded with key.
func NewSourceFromKey(key []byte) (*Source, error) {
	prng, err := NewKeyedPRNG(key)
	if err != nil {
		return nil, fmt.Errorf("cannot NewSourceFromKey: %w", err)
	}
	return NewSource(prng), nil
}

// Uint64 returns a value in [0, 0xFFFFFFFFFFFFFFFF].
func (s *Source) Uint64() uint64 {
	if _, err := s.prng.Read(s.buf[:]); err != nil {
		// Sanity check, this error should not happen.
		panic(err)
	}
	return binary.LittleEndian.Uint64(s.buf[:])
}

// Intn returns a value in [0, n-1]. It panics if n <= 0.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		panic(fmt.Errorf("invalid argument: n=%d must be positive", n))
	}
	mask := uint64(1)<<uint(bits.Len64(uint64(n-1))) - 1
	for {
		if v := s.Uint64() & mask; v < uint64(n) {
			return int(v)
		}
	}
}

// Float64 returns a value in [min, max).
func (s *Source) Float64(min, max float64) float64 {
	f := float64(s.Uint64()>>11) / (1 << 53)
	return min + f*(max-min)
}

// Float64Slice returns n values in [min, max).
func (s *Source) Float64Slice(n int, min, max float64) (v []float64) {
	v = make([]float64, n)
	for i := range v {
		v[i] = s.Float64(min, max)
	}
	return
}
