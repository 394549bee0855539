package common

// Line is a finite segment between two points; a math primitive used for
// intersection queries (e.g. against a BoundingSphere).
type Line struct {
	A, B Vec3
}

// Length returns the Euclidean length of the segment.
func (l Line) Length() float32 {
	return l.B.Sub(l.A).Length()
}

// IntersectsSphere reports whether the segment intersects s.
func (l Line) IntersectsSphere(s BoundingSphere) bool {
	return s.IntersectsLine(l.A, l.B)
}
