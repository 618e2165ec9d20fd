package nmsrc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	s := New()
	assert.Equal(t, "view1", s.Name("view"))
	assert.Equal(t, "view2", s.Name("view"))
	assert.Equal(t, "work1", s.Name("work"))
}

func TestClaimAndUnique(t *testing.T) {
	s := New()
	s.Claim("x", "x1")
	assert.Equal(t, "x2", s.Unique("x"))
	assert.Equal(t, "errs", s.Unique("errs"))
	assert.Equal(t, "errs1", s.Unique("errs"))
	assert.Equal(t, "x3", s.Name("x"))
}
