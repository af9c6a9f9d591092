package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddVector(t *testing.T) {
	start := Point{1.5, 5.3}
	c := NewVector(-3.5, -2.3)
	p2 := start.AddVector(c)

	if p2.X != -2 || p2.Y != 3 {
		t.Fatalf("Expected resulting point to be (-2, 3), got %+v", p2)
	}
}

func TestTikZ(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		p   Point
		exp string
	}{
		{Point{}, "(0, 0)"},
		{Point{X: 1.5, Y: -2}, "(1.5, -2)"},
		{Point{X: 0.1, Y: 1e-3}, "(0.1, 0.001)"},
		{Point{X: -0.0, Y: 3}, "(0, 3)"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.exp, tc.p.TikZ())
	}
}
