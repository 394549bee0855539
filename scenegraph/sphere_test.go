package scenegraph

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"github.com/perryiv/wgsg-go/common"
)

func TestEstimateSphereSizesMatchesFormula(t *testing.T) {
	for n := 0; n <= 3; n++ {
		expected := 60
		for i := 0; i < n; i++ {
			expected *= 4
		}
		points, indices := EstimateSphereSizes(n)
		assert.Equal(t, expected, points)
		assert.Equal(t, expected, indices)
	}
}

func TestGenerateUnitSphereVertexProperties(t *testing.T) {
	const depth = 2
	points, _, indices := generateUnitSphere(depth)

	expectedPoints, expectedIndices := EstimateSphereSizes(depth)
	assert.Equal(t, expectedPoints*3, len(points))
	assert.Equal(t, expectedIndices, len(indices))

	numVerts := len(points) / 3
	occurrences := make(map[[3]float32]int)
	for i := 0; i < numVerts; i++ {
		v := [3]float32{points[i*3], points[i*3+1], points[i*3+2]}
		occurrences[v]++
		assert.LessOrEqual(t, v[0], float32(1.0))
		assert.GreaterOrEqual(t, v[0], float32(-1.0))
		assert.LessOrEqual(t, v[1], float32(1.0))
		assert.GreaterOrEqual(t, v[1], float32(-1.0))
		assert.LessOrEqual(t, v[2], float32(1.0))
		assert.GreaterOrEqual(t, v[2], float32(-1.0))
	}
	for _, idx := range indices {
		assert.Less(t, int(idx), numVerts)
		assert.GreaterOrEqual(t, int(idx), 0)
	}

	for _, v := range icosahedronVertices {
		key := [3]float32{v.X, v.Y, v.Z}
		assert.GreaterOrEqual(t, occurrences[key], 5, "icosahedron vertex should reappear at least 5 times")
	}
}

func TestSphereBoundingBoxFromConstructorParams(t *testing.T) {
	center := common.Vec3{X: 1, Y: 2, Z: 3}
	s := NewSphere(center, 2.0, 1)

	box := s.GetBoundingBox()
	assert.InDelta(t, -1.0, box.Min.X, 1e-7)
	assert.InDelta(t, 0.0, box.Min.Y, 1e-7)
	assert.InDelta(t, 1.0, box.Min.Z, 1e-7)
	assert.InDelta(t, 3.0, box.Max.X, 1e-7)
	assert.InDelta(t, 4.0, box.Max.Y, 1e-7)
	assert.InDelta(t, 5.0, box.Max.Z, 1e-7)
}

func TestSphereUpdateRegeneratesOnlyWhenDirty(t *testing.T) {
	s := NewSphere(common.Vec3{}, 1.0, 0)
	s.Update()
	sets := s.PrimitiveSets()
	assert.Len(t, sets, 1)
	assert.True(t, sets[0].Indexed)
	assert.Equal(t, 60, sets[0].NumIndices())

	points := s.Points
	s.Update()
	assert.Same(t, points, s.Points, "Update should be a no-op when not dirty")
}

func TestSphereUpdatePopulatesWireframeIndices(t *testing.T) {
	s := NewSphere(common.Vec3{}, 1.0, 0)
	assert.Nil(t, s.WireframeIndices())

	s.Update()
	wireframe := s.WireframeIndices()
	assert.NotNil(t, wireframe)
	assert.Greater(t, wireframe.Len(), 0)
	assert.Equal(t, 0, wireframe.Len()%2)
}

func TestSphereConstructorRejectsInvalidParams(t *testing.T) {
	assert.Panics(t, func() { NewSphere(common.Vec3{}, 0, 1) })
	assert.Panics(t, func() { NewSphere(common.Vec3{}, -1, 1) })
	assert.Panics(t, func() { NewSphere(common.Vec3{}, 1, -1) })
	assert.Panics(t, func() { NewSphere(common.Vec3{}, math32.NaN(), 1) })
	assert.Panics(t, func() { NewSphere(common.Vec3{}, math32.Inf(1), 1) })
}

func TestSphereSetRadiusRejectsInvalidParams(t *testing.T) {
	s := NewSphere(common.Vec3{}, 1.0, 0)
	assert.Panics(t, func() { s.SetRadius(0) })
	assert.Panics(t, func() { s.SetRadius(-1) })
	assert.Panics(t, func() { s.SetRadius(math32.NaN()) })
	assert.Panics(t, func() { s.SetRadius(math32.Inf(1)) })
}
