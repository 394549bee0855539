package common

import "github.com/chewxy/math32"

// Box3 is an axis-aligned bounding box. An invalidated box (as returned by
// InvalidBox3, with Min > Max on every axis) contains no points until grown.
// The zero value is not invalidated: it is the valid box at the origin.
type Box3 struct {
	Min Vec3
	Max Vec3
}

// InvalidBox3 returns a box in the invalidated state: growing it by a single
// point yields min == max == point.
func InvalidBox3() Box3 {
	inf := math32.Inf(1)
	return Box3{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// Valid reports whether the box has been grown by at least one point.
func (b Box3) Valid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z
}

// Grow returns the box expanded to include point.
func (b Box3) Grow(point Vec3) Box3 {
	if !b.Valid() {
		return Box3{Min: point, Max: point}
	}
	return Box3{Min: b.Min.Min(point), Max: b.Max.Max(point)}
}

// Union returns the smallest box containing both b and o.
func (b Box3) Union(o Box3) Box3 {
	if !o.Valid() {
		return b
	}
	if !b.Valid() {
		return o
	}
	return Box3{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Center returns the midpoint of the box.
func (b Box3) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// ContainsPoint reports whether point lies within the box, inclusive.
func (b Box3) ContainsPoint(point Vec3) bool {
	return point.X >= b.Min.X && point.X <= b.Max.X &&
		point.Y >= b.Min.Y && point.Y <= b.Max.Y &&
		point.Z >= b.Min.Z && point.Z <= b.Max.Z
}

// BoxFromSphere returns the axis-aligned box [center-radius, center+radius].
func BoxFromSphere(center Vec3, radius float32) Box3 {
	r := Vec3{radius, radius, radius}
	return Box3{Min: center.Sub(r), Max: center.Add(r)}
}
