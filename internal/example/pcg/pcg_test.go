package pcg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequenceIsFixed(t *testing.T) {
	a, b := New(1, 2), New(1, 2)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Uint32(), b.Uint32())
	}
	assert.NotEqual(t, prefix(New(1, 2), 8), prefix(New(3, 2), 8))
}

func prefix(s *Src, n int) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = s.Uint32()
	}
	return out
}

func TestBelowAndFloat(t *testing.T) {
	s := New(7, 7)
	seen := make(map[uint32]bool)
	for i := 0; i < 1000; i++ {
		n := s.Below(5)
		assert.Less(t, n, uint32(5))
		seen[n] = true

		f := s.Float(-0.5, 0.5)
		assert.GreaterOrEqual(t, f, -0.5)
		assert.Less(t, f, 0.5)
		assert.Equal(t, f, float64(float32(f)))
	}
	assert.Len(t, seen, 5)
}
