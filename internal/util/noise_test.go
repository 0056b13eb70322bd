package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeightNoiseDeterministic(t *testing.T) {
	a := NewHeightNoise(42)
	b := NewHeightNoise(42)

	for i := 0; i < 20; i++ {
		x := float64(i) * 0.37
		y := float64(i) * -0.21
		assert.Equal(t, a.Noise2D(x, y), b.Noise2D(x, y), "одинаковый сид должен давать одинаковый шум")
	}
}

func TestHeightNoiseRange(t *testing.T) {
	n := NewHeightNoise(7)
	for x := -10; x <= 10; x++ {
		for y := -10; y <= 10; y++ {
			v := n.Noise2D(float64(x)*0.13, float64(y)*0.13)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}
