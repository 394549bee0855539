package common

import "github.com/chewxy/math32"

// Vec3 is a 3-component vector value type used throughout the math
// primitives (positions, normals, directions).
type Vec3 struct {
	X, Y, Z float32
}

// Add returns the componentwise sum of v and o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns the componentwise difference v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product v x o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// LengthSquared returns the squared length of v, avoiding a square root.
func (v Vec3) LengthSquared() float32 {
	return v.Dot(v)
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.LengthSquared())
}

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged rather than dividing by zero.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1.0 / l)
}

// Min returns the componentwise minimum of v and o.
func (v Vec3) Min(o Vec3) Vec3 {
	return Vec3{min32(v.X, o.X), min32(v.Y, o.Y), min32(v.Z, o.Z)}
}

// Max returns the componentwise maximum of v and o.
func (v Vec3) Max(o Vec3) Vec3 {
	return Vec3{max32(v.X, o.X), max32(v.Y, o.Y), max32(v.Z, o.Z)}
}

// TransformPoint applies a column-major 4x4 matrix to point as an affine
// transform (implicit w=1, result read back at w=1 without a perspective
// divide). Suitable for model matrices; not for projection matrices.
func TransformPoint(matrix []float32, point Vec3) Vec3 {
	return Vec3{
		X: matrix[0]*point.X + matrix[4]*point.Y + matrix[8]*point.Z + matrix[12],
		Y: matrix[1]*point.X + matrix[5]*point.Y + matrix[9]*point.Z + matrix[13],
		Z: matrix[2]*point.X + matrix[6]*point.Y + matrix[10]*point.Z + matrix[14],
	}
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
