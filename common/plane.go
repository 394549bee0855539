package common

// Plane represents a plane in 3D space using the equation ax + by + cz + d = 0
// where (a, b, c) is the normal and d is the signed distance from the origin.
// Retained as a pure math primitive; this module does not perform frustum
// extraction or culling with it.
type Plane struct {
	Normal   Vec3
	Distance float32
}

// Normalized returns p with its normal scaled to unit length and Distance
// scaled to match. The zero-normal plane is returned unchanged.
func (p Plane) Normalized() Plane {
	l := p.Normal.Length()
	if l == 0 {
		return p
	}
	inv := 1.0 / l
	return Plane{
		Normal:   p.Normal.Scale(inv),
		Distance: p.Distance * inv,
	}
}

// DistanceToPoint returns the signed distance from point to the plane;
// positive values lie on the side the normal points toward.
func (p Plane) DistanceToPoint(point Vec3) float32 {
	return p.Normal.Dot(point) + p.Distance
}
