package common

import "github.com/chewxy/math32"

// BoundingSphere is a math primitive value type: a sphere described by a
// center and radius. Distinct from the scene-graph Sphere node, which is a
// renderable shape that happens to compute one of these as its bounds.
type BoundingSphere struct {
	Center Vec3
	Radius float32
}

// ContainsPoint reports whether point lies within (or on) the sphere.
// Agrees with the squared-distance definition |P-C|^2 <= R^2.
func (s BoundingSphere) ContainsPoint(point Vec3) bool {
	d := point.Sub(s.Center)
	return d.LengthSquared() <= s.Radius*s.Radius
}

// IntersectsLine reports whether the infinite sphere intersects the segment
// from a to b.
func (s BoundingSphere) IntersectsLine(a, b Vec3) bool {
	d := b.Sub(a)
	f := a.Sub(s.Center)

	aCoef := d.Dot(d)
	bCoef := 2 * f.Dot(d)
	cCoef := f.Dot(f) - s.Radius*s.Radius

	discriminant := bCoef*bCoef - 4*aCoef*cCoef
	if discriminant < 0 {
		return false
	}
	if aCoef == 0 {
		// Degenerate (zero-length) segment: treat as a point test.
		return s.ContainsPoint(a)
	}

	sqrtDisc := math32.Sqrt(discriminant)
	t1 := (-bCoef - sqrtDisc) / (2 * aCoef)
	t2 := (-bCoef + sqrtDisc) / (2 * aCoef)

	inRange := func(t float32) bool { return t >= 0 && t <= 1 }
	return inRange(t1) || inRange(t2) || (t1 < 0 && t2 > 1)
}

// Bounds returns the axis-aligned box enclosing the sphere.
func (s BoundingSphere) Bounds() Box3 {
	return BoxFromSphere(s.Center, s.Radius)
}
