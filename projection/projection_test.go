package projection

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestNewPerspectiveRejectsNonPositiveParams(t *testing.T) {
	cases := []struct {
		name                   string
		fov, aspect, near, far float32
	}{
		{"fov", 0, 1, 0.1, 100},
		{"fov negative", -1, 1, 0.1, 100},
		{"aspect", 1, 0, 0.1, 100},
		{"near", 1, 1, 0, 100},
		{"far", 1, 1, 0.1, 0},
		{"near equals far", 1, 1, 10, 10},
		{"near exceeds far", 1, 1, 100, 10},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewPerspective(c.fov, c.aspect, c.near, c.far)
			assert.Error(t, err)
		})
	}
}

func TestNewPerspectiveRejectsNonFiniteParams(t *testing.T) {
	nan := math32.NaN()
	inf := math32.Inf(1)
	cases := []struct {
		name                   string
		fov, aspect, near, far float32
	}{
		{"fov NaN", nan, 1, 0.1, 100},
		{"aspect NaN", 1, nan, 0.1, 100},
		{"near NaN", 1, 1, nan, 100},
		{"far NaN", 1, 1, 0.1, nan},
		{"fov +Inf", inf, 1, 0.1, 100},
		{"far +Inf", 1, 1, 0.1, inf},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewPerspective(c.fov, c.aspect, c.near, c.far)
			assert.Error(t, err)
		})
	}
}

func TestNewPerspectiveAcceptsValidParams(t *testing.T) {
	p, err := NewPerspective(1.2, 16.0/9.0, 0.1, 100)
	assert.NoError(t, err)
	assert.NotNil(t, p)
}

func TestPerspectiveSetAspectRejectsNonPositive(t *testing.T) {
	p, err := NewPerspective(1.2, 1.0, 0.1, 100)
	assert.NoError(t, err)
	assert.Error(t, p.SetAspect(0))
	assert.Error(t, p.SetAspect(-1))
	assert.Error(t, p.SetAspect(math32.NaN()))
	assert.Error(t, p.SetAspect(math32.Inf(1)))
}

func TestPerspectiveSetAspectRebuildsMatrix(t *testing.T) {
	p, err := NewPerspective(1.2, 1.0, 0.1, 100)
	assert.NoError(t, err)
	before := p.Matrix()
	assert.NoError(t, p.SetAspect(2.0))
	after := p.Matrix()
	assert.NotEqual(t, before, after)
}

func TestNewOrthographicRejectsNonPositiveParams(t *testing.T) {
	cases := []struct {
		name                     string
		height, aspect, near, far float32
	}{
		{"height", 0, 1, 0.1, 100},
		{"aspect", 10, 0, 0.1, 100},
		{"near", 10, 1, 0, 100},
		{"far", 10, 1, 0.1, 0},
		{"near equals far", 10, 1, 10, 10},
		{"near exceeds far", 10, 1, 100, 10},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewOrthographic(c.height, c.aspect, c.near, c.far)
			assert.Error(t, err)
		})
	}
}

func TestNewOrthographicRejectsNonFiniteParams(t *testing.T) {
	nan := math32.NaN()
	inf := math32.Inf(1)
	cases := []struct {
		name                      string
		height, aspect, near, far float32
	}{
		{"height NaN", nan, 1, 0.1, 100},
		{"aspect NaN", 10, nan, 0.1, 100},
		{"near NaN", 10, 1, nan, 100},
		{"far NaN", 10, 1, 0.1, nan},
		{"height +Inf", inf, 1, 0.1, 100},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewOrthographic(c.height, c.aspect, c.near, c.far)
			assert.Error(t, err)
		})
	}
}

func TestNewOrthographicAcceptsValidParams(t *testing.T) {
	o, err := NewOrthographic(10, 1.0, 0.1, 100)
	assert.NoError(t, err)
	assert.NotNil(t, o)
}

func TestOrthographicSetAspectRejectsNonPositive(t *testing.T) {
	o, err := NewOrthographic(10, 1.0, 0.1, 100)
	assert.NoError(t, err)
	assert.Error(t, o.SetAspect(0))
	assert.Error(t, o.SetAspect(-1))
	assert.Error(t, o.SetAspect(math32.NaN()))
	assert.Error(t, o.SetAspect(math32.Inf(1)))
}

func TestOrthographicSetAspectRebuildsMatrix(t *testing.T) {
	o, err := NewOrthographic(10, 1.0, 0.1, 100)
	assert.NoError(t, err)
	before := o.Matrix()
	assert.NoError(t, o.SetAspect(2.0))
	after := o.Matrix()
	assert.NotEqual(t, before, after)
}
