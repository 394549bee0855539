package scenegraph

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/perryiv/wgsg-go/buffer"
	"github.com/perryiv/wgsg-go/common"
)

// validRadius reports whether radius is a finite positive number. Plain
// <=0 comparisons never catch NaN, so this is checked explicitly alongside
// the sign check wherever a radius is accepted.
func validRadius(radius float32) bool {
	return !math32.IsNaN(radius) && !math32.IsInf(radius, 0) && radius > 0
}

// icosahedronVertices are the 12 vertices of a unit icosahedron, unnormalised.
var icosahedronVertices = func() [12]common.Vec3 {
	const phi = 1.6180339887498949
	raw := [12]common.Vec3{
		{-1, phi, 0}, {1, phi, 0}, {-1, -phi, 0}, {1, -phi, 0},
		{0, -1, phi}, {0, 1, phi}, {0, -1, -phi}, {0, 1, -phi},
		{phi, 0, -1}, {phi, 0, 1}, {-phi, 0, -1}, {-phi, 0, 1},
	}
	for i := range raw {
		raw[i] = raw[i].Normalize()
	}
	return raw
}()

// icosahedronFaces are the 20 triangular faces of the icosahedron, each a
// triple of indices into icosahedronVertices, wound counter-clockwise when
// viewed from outside.
var icosahedronFaces = [20][3]int{
	{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
	{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
	{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
	{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
}

// EstimateSphereSizes reports the number of vertices (and, equivalently,
// indices) generateUnitSphere will emit for the given subdivision depth:
// 60*4^numSubdivisions, since each of the icosahedron's 20 faces subdivides
// into 4^n leaf triangles and every leaf triangle emits its own 3 vertex
// entries rather than sharing them with neighbours.
func EstimateSphereSizes(numSubdivisions int) (numPoints, numIndices int) {
	n := 60
	for i := 0; i < numSubdivisions; i++ {
		n *= 4
	}
	return n, n
}

// generateUnitSphere recursively subdivides the icosahedron numSubdivisions
// times and emits, for every leaf triangle, three freshly-appended vertex
// entries (no sharing across triangles, even where positions coincide). This
// is why an original icosahedron vertex — touched by exactly 5 faces —
// reappears exactly 5 times in the output regardless of depth, while
// interior edge midpoints reappear more often.
func generateUnitSphere(numSubdivisions int) (points, normals []float32, indices []uint32) {
	numPoints, _ := EstimateSphereSizes(numSubdivisions)
	points = make([]float32, 0, numPoints*3)
	normals = make([]float32, 0, numPoints*3)

	emit := func(a, b, c common.Vec3) {
		for _, v := range [3]common.Vec3{a, b, c} {
			points = append(points, v.X, v.Y, v.Z)
			normals = append(normals, v.X, v.Y, v.Z)
		}
	}

	var subdivide func(a, b, c common.Vec3, depth int)
	subdivide = func(a, b, c common.Vec3, depth int) {
		if depth == 0 {
			emit(a, b, c)
			return
		}
		ab := a.Add(b).Normalize()
		bc := b.Add(c).Normalize()
		ca := c.Add(a).Normalize()
		subdivide(a, ab, ca, depth-1)
		subdivide(ab, b, bc, depth-1)
		subdivide(ca, bc, c, depth-1)
		subdivide(ab, bc, ca, depth-1)
	}

	for _, face := range icosahedronFaces {
		subdivide(icosahedronVertices[face[0]], icosahedronVertices[face[1]], icosahedronVertices[face[2]], numSubdivisions)
	}

	indices = make([]uint32, len(points)/3)
	for i := range indices {
		indices[i] = uint32(i)
	}

	return points, normals, indices
}

// Sphere is a parametric Geometry: points, normals, and an indexed triangle
// list are regenerated by Update whenever the sphere's parameters change.
type Sphere struct {
	Geometry

	center          common.Vec3
	radius          float32
	numSubdivisions int
	paramsDirty     bool

	wireframe *buffer.IndexArray
}

var _ Element = (*Sphere)(nil)

// NewSphere returns a Sphere at center with the given radius and
// subdivision depth. Panics with an InvalidInput-style error if radius is
// not positive or numSubdivisions is negative; constructor-time validation
// is synchronous per the error-handling contract shapes share with
// projections.
func NewSphere(center common.Vec3, radius float32, numSubdivisions int) *Sphere {
	if !validRadius(radius) {
		panic(fmt.Errorf("scenegraph: sphere radius must be a finite positive number, got %v", radius))
	}
	if numSubdivisions < 0 {
		panic(fmt.Errorf("scenegraph: sphere numSubdivisions must be non-negative, got %d", numSubdivisions))
	}

	s := &Sphere{center: center, radius: radius, numSubdivisions: numSubdivisions}
	initNode(&s.Node, KindSphere)
	s.paramsDirty = true
	return s
}

// Accept calls v.VisitSphere.
func (s *Sphere) Accept(v Visitor) {
	v.VisitSphere(s)
}

// Center returns the sphere's center in local space.
func (s *Sphere) Center() common.Vec3 {
	return s.center
}

// Radius returns the sphere's radius.
func (s *Sphere) Radius() float32 {
	return s.radius
}

// SetCenter moves the sphere and marks it dirty for regeneration.
func (s *Sphere) SetCenter(center common.Vec3) {
	s.center = center
	s.paramsDirty = true
	s.SetDirty()
}

// SetRadius resizes the sphere and marks it dirty for regeneration.
func (s *Sphere) SetRadius(radius float32) {
	if !validRadius(radius) {
		panic(fmt.Errorf("scenegraph: sphere radius must be a finite positive number, got %v", radius))
	}
	s.radius = radius
	s.paramsDirty = true
	s.SetDirty()
}

// Update regenerates the sphere's points, normals, and index buffer if its
// parameters have changed since the last call. A no-op otherwise, matching
// Geometry.Update's contract.
func (s *Sphere) Update() {
	if !s.paramsDirty {
		return
	}

	points, normals, indices := generateUnitSphere(s.numSubdivisions)
	for i := 0; i < len(points); i += 3 {
		points[i+0] = s.center.X + points[i+0]*s.radius
		points[i+1] = s.center.Y + points[i+1]*s.radius
		points[i+2] = s.center.Z + points[i+2]*s.radius
	}

	s.Points = buffer.NewFloat32Array(points, buffer.UsageVertex)
	s.Normals = buffer.NewFloat32Array(normals, buffer.UsageVertex)
	s.SetPrimitiveSets([]PrimitiveSet{
		NewIndexedPrimitiveSet(wgpu.PrimitiveTopologyTriangleList, buffer.NewIndexArray32(indices)),
	})
	s.wireframe = buffer.NewIndexArray32(common.MakeTriangleEdges(points, indices))

	s.paramsDirty = false
	s.SetDirty()
}

// WireframeIndices returns the unique-edge index buffer derived from this
// sphere's current geometry, for callers that want to draw a LineList
// overlay alongside the solid triangle list. nil until the first Update.
func (s *Sphere) WireframeIndices() *buffer.IndexArray {
	return s.wireframe
}

// GetBoundingBox returns [center-radius, center+radius] componentwise,
// without requiring Update to have been called.
func (s *Sphere) GetBoundingBox() common.Box3 {
	return common.BoxFromSphere(s.center, s.radius)
}

// GetBoundingSphere returns the sphere's own center/radius directly.
func (s *Sphere) GetBoundingSphere() common.BoundingSphere {
	return common.BoundingSphere{Center: s.center, Radius: s.radius}
}
