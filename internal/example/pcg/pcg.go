// Package pcg is a small permuted congruential generator. Its output is
// fixed forever by its seed, unlike math/rand across Go releases, so that
// example models never change.
package pcg

type Src [2]uint64

func New(bits1, bits2 uint64) *Src {
	return &Src{bits1, bits2 | 1}
}

func (s *Src) Uint32() uint32 {
	var (
		x = s[0]
		y = uint32(x >> 59)
		z = uint32((x>>18 ^ x) >> 27)
	)
	s[0] = s[1] + x*6364136223846793005
	return z>>y | z<<(-y&31)
}

// Below is uniform in [0, n).
func (s *Src) Below(n uint32) uint32 {
	for min := -n % n; ; {
		r := s.Uint32()
		if r >= min {
			return r % n
		}
	}
}

// Float is uniform in [lo, hi) with 24 random bits, so every value is
// exact in float32.
func (s *Src) Float(lo, hi float64) float64 {
	const bits = 24
	u := float64(s.Uint32()>>(32-bits)) / (1 << bits)
	return float64(float32(lo + (hi-lo)*u))
}
