// Package projection implements the Perspective and Orthographic projection
// types a Viewer installs on its graph root, including the validation
// contract constructors must enforce synchronously.
package projection

import (
	"fmt"
	"sync"

	"github.com/chewxy/math32"

	"github.com/perryiv/wgsg-go/common"
)

// Projection is implemented by Perspective and Orthographic. Matrix returns
// the current 4x4 projection matrix (rebuilt as soon as a parameter
// changes); SetAspect updates the aspect ratio in response to a viewport
// resize.
type Projection interface {
	Matrix() [16]float32
	SetAspect(aspect float32) error
}

// invalidInput reports a constructor-time InvalidInput failure: a bad
// parameter caught synchronously at the API boundary, never as a panic
// surfacing from deep inside matrix math.
func invalidInput(format string, args ...any) error {
	return fmt.Errorf("projection: invalid input: "+format, args...)
}

// finite reports whether x is neither NaN nor +/-Inf. Plain <=/>= comparisons
// never catch NaN, so every numeric bound below checks this first.
func finite(x float32) bool {
	return !math32.IsNaN(x) && !math32.IsInf(x, 0)
}

// Perspective is a standard symmetric perspective projection.
type Perspective struct {
	mu sync.Mutex

	fov, aspect, near, far float32
	matrix                 [16]float32
}

var _ Projection = (*Perspective)(nil)

// NewPerspective validates fov (radians), aspect, near, and far, then builds
// the initial matrix. Returns InvalidInput if any of fov/aspect/near/far is
// non-positive, or if near >= far.
func NewPerspective(fov, aspect, near, far float32) (*Perspective, error) {
	if err := validatePerspective(fov, aspect, near, far); err != nil {
		return nil, err
	}
	p := &Perspective{fov: fov, aspect: aspect, near: near, far: far}
	p.rebuild()
	return p, nil
}

func validatePerspective(fov, aspect, near, far float32) error {
	if !finite(fov) || fov <= 0 {
		return invalidInput("fov must be a finite positive number, got %v", fov)
	}
	if !finite(aspect) || aspect <= 0 {
		return invalidInput("aspect must be a finite positive number, got %v", aspect)
	}
	if !finite(near) || near <= 0 {
		return invalidInput("near must be a finite positive number, got %v", near)
	}
	if !finite(far) || far <= 0 {
		return invalidInput("far must be a finite positive number, got %v", far)
	}
	if near >= far {
		return invalidInput("near (%v) must be less than far (%v)", near, far)
	}
	return nil
}

func (p *Perspective) rebuild() {
	common.Perspective(p.matrix[:], p.fov, p.aspect, p.near, p.far)
}

// Matrix returns the current projection matrix.
func (p *Perspective) Matrix() [16]float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.matrix
}

// SetAspect updates the aspect ratio and rebuilds the matrix. Returns
// InvalidInput if aspect is non-positive.
func (p *Perspective) SetAspect(aspect float32) error {
	if !finite(aspect) || aspect <= 0 {
		return invalidInput("aspect must be a finite positive number, got %v", aspect)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.aspect = aspect
	p.rebuild()
	return nil
}

// Orthographic is a symmetric (about the view axis) orthographic projection
// whose horizontal extent scales with aspect.
type Orthographic struct {
	mu sync.Mutex

	height, aspect, near, far float32
	matrix                    [16]float32
}

var _ Projection = (*Orthographic)(nil)

// NewOrthographic validates height, aspect, near, and far, then builds the
// initial matrix. height is the vertical view-space extent; horizontal
// extent is height*aspect.
func NewOrthographic(height, aspect, near, far float32) (*Orthographic, error) {
	if !finite(height) || height <= 0 {
		return nil, invalidInput("height must be a finite positive number, got %v", height)
	}
	if !finite(aspect) || aspect <= 0 {
		return nil, invalidInput("aspect must be a finite positive number, got %v", aspect)
	}
	if !finite(near) || near <= 0 {
		return nil, invalidInput("near must be a finite positive number, got %v", near)
	}
	if !finite(far) || far <= 0 {
		return nil, invalidInput("far must be a finite positive number, got %v", far)
	}
	if near >= far {
		return nil, invalidInput("near (%v) must be less than far (%v)", near, far)
	}
	o := &Orthographic{height: height, aspect: aspect, near: near, far: far}
	o.rebuild()
	return o, nil
}

func (o *Orthographic) rebuild() {
	halfHeight := o.height / 2
	halfWidth := halfHeight * o.aspect
	common.Orthographic(o.matrix[:], -halfWidth, halfWidth, -halfHeight, halfHeight, o.near, o.far)
}

// Matrix returns the current projection matrix.
func (o *Orthographic) Matrix() [16]float32 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.matrix
}

// SetAspect updates the aspect ratio and rebuilds the matrix.
func (o *Orthographic) SetAspect(aspect float32) error {
	if !finite(aspect) || aspect <= 0 {
		return invalidInput("aspect must be a finite positive number, got %v", aspect)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.aspect = aspect
	o.rebuild()
	return nil
}
