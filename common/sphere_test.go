package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundingSphereIntersectsLine(t *testing.T) {
	s := BoundingSphere{Center: Vec3{}, Radius: 1}
	// Passes straight through the center.
	assert.True(t, s.IntersectsLine(Vec3{X: 0, Y: 0, Z: -2}, Vec3{X: 0, Y: 0, Z: 2}))
	// Closest approach is (1,1,0), at distance sqrt(2) from the origin, well
	// outside the unit sphere.
	assert.False(t, s.IntersectsLine(Vec3{X: 1, Y: 1, Z: -1}, Vec3{X: 1, Y: 1, Z: 3}))
}

func TestBoundingSphereContainsPointAgreesWithSquaredDistance(t *testing.T) {
	s := BoundingSphere{Center: Vec3{X: 1, Y: 1, Z: 1}, Radius: 2}
	inside := Vec3{X: 2, Y: 1, Z: 1}
	outside := Vec3{X: 10, Y: 10, Z: 10}

	assert.Equal(t, inside.Sub(s.Center).LengthSquared() <= s.Radius*s.Radius, s.ContainsPoint(inside))
	assert.Equal(t, outside.Sub(s.Center).LengthSquared() <= s.Radius*s.Radius, s.ContainsPoint(outside))
	assert.True(t, s.ContainsPoint(inside))
	assert.False(t, s.ContainsPoint(outside))
}

func TestBoxFromSphere(t *testing.T) {
	box := BoxFromSphere(Vec3{X: 1, Y: 2, Z: 3}, 2)
	assert.Equal(t, Vec3{X: -1, Y: 0, Z: 1}, box.Min)
	assert.Equal(t, Vec3{X: 3, Y: 4, Z: 5}, box.Max)
}
