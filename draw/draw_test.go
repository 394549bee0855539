package draw

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreMultipliedClearColorOpaqueIsUnchanged(t *testing.T) {
	got := PreMultipliedClearColor([4]float32{0.5, 0.5, 0.5, 1.0})
	assert.Equal(t, [4]float32{0.5, 0.5, 0.5, 1.0}, got)
}

func TestPreMultipliedClearColorScalesRGBByAlpha(t *testing.T) {
	got := PreMultipliedClearColor([4]float32{1, 1, 1, 0.25})
	assert.Equal(t, [4]float32{0.25, 0.25, 0.25, 0.25}, got)
}

func TestPreMultipliedClearColorZeroAlphaZeroesRGB(t *testing.T) {
	got := PreMultipliedClearColor([4]float32{0.9, 0.2, 0.7, 0})
	assert.Equal(t, [4]float32{0, 0, 0, 0}, got)
}
