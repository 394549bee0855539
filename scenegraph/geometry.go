package scenegraph

import (
	"github.com/perryiv/wgsg-go/buffer"
	"github.com/perryiv/wgsg-go/common"
)

// Geometry is a concrete shape leaf: vertex positions plus optional
// normals, colours, and texture coordinates, and one or more primitive sets
// describing how to draw them.
type Geometry struct {
	Node

	Points    *buffer.Float32Array
	Normals   *buffer.Float32Array
	Colors    *buffer.Float32Array
	TexCoords *buffer.Float32Array

	primitiveSets []PrimitiveSet
}

var _ Element = (*Geometry)(nil)

// NewGeometry returns an empty Geometry. Set Points and call AddPrimitiveSet
// before it is usable.
func NewGeometry() *Geometry {
	g := &Geometry{}
	initNode(&g.Node, KindGeometry)
	return g
}

// Accept calls v.VisitGeometry.
func (g *Geometry) Accept(v Visitor) {
	v.VisitGeometry(g)
}

// AddPrimitiveSet appends a primitive set and raises the dirty flag.
func (g *Geometry) AddPrimitiveSet(p PrimitiveSet) {
	g.mu.Lock()
	g.primitiveSets = append(g.primitiveSets, p)
	g.mu.Unlock()
	g.SetDirty()
}

// PrimitiveSets returns the geometry's primitive sets in insertion order.
func (g *Geometry) PrimitiveSets() []PrimitiveSet {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]PrimitiveSet, len(g.primitiveSets))
	copy(out, g.primitiveSets)
	return out
}

// SetPrimitiveSets replaces the geometry's primitive sets wholesale.
func (g *Geometry) SetPrimitiveSets(sets []PrimitiveSet) {
	g.mu.Lock()
	g.primitiveSets = sets
	g.mu.Unlock()
	g.SetDirty()
}

// GetBoundingBox returns the axis-aligned box enclosing Points, recomputing
// if dirty.
func (g *Geometry) GetBoundingBox() common.Box3 {
	g.ensureGeometryBounds()
	box, _ := g.cachedBounds()
	return box
}

// GetBoundingSphere returns a sphere enclosing Points, recomputing if dirty.
func (g *Geometry) GetBoundingSphere() common.BoundingSphere {
	g.ensureGeometryBounds()
	_, sphere := g.cachedBounds()
	return sphere
}

func (g *Geometry) ensureGeometryBounds() {
	if !g.Dirty() {
		return
	}
	box := common.InvalidBox3()
	if g.Points != nil {
		data := g.Points.Data()
		for i := 0; i+2 < len(data); i += 3 {
			box = box.Grow(common.Vec3{X: data[i], Y: data[i+1], Z: data[i+2]})
		}
	}
	center := box.Center()
	radius := center.Sub(box.Max).Length()
	g.setBounds(box, common.BoundingSphere{Center: center, Radius: radius})
}

// Update is a no-op for plain Geometry; Sphere overrides it to regenerate
// its points/normals/indices when dirty.
func (g *Geometry) Update() {}

// PointsArray returns the vertex position array the draw traversal binds at
// slot 0, or nil if unset.
func (g *Geometry) PointsArray() *buffer.Float32Array {
	return g.Points
}

// NormalsArray returns the vertex normal array the draw traversal binds at
// slot 1 when present, or nil if unset.
func (g *Geometry) NormalsArray() *buffer.Float32Array {
	return g.Normals
}

// ColorsArray returns the vertex color array the draw traversal binds at
// slot 2 when present, or nil if unset.
func (g *Geometry) ColorsArray() *buffer.Float32Array {
	return g.Colors
}

// TexCoordsArray returns the vertex texture coordinate array the draw
// traversal binds at slot 3 when present, or nil if unset.
func (g *Geometry) TexCoordsArray() *buffer.Float32Array {
	return g.TexCoords
}
