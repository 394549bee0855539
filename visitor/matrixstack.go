// Package visitor provides the matrix-stack helper for traversals that need
// to track the current model and projection matrices while walking the
// scene graph. It does not implement scenegraph.Visitor itself — the cull
// traversal holds a MatrixStack and implements the interface directly. The
// draw traversal walks the render graph, not the scene, and does not use it.
package visitor

import "github.com/perryiv/wgsg-go/common"

// MatrixStack tracks the current model and projection matrices during a
// depth-first walk, with explicit push/pop around Transform and Projection
// nodes. Strictly single-threaded: one traversal, no concurrent pushes.
type MatrixStack struct {
	model      [16]float32
	modelStack [][16]float32

	projection      [16]float32
	projectionStack [][16]float32
}

// NewMatrixStack returns a stack initialised to identity matrices for both
// model and projection, with empty stacks.
func NewMatrixStack() *MatrixStack {
	s := &MatrixStack{}
	common.Identity(s.model[:])
	common.Identity(s.projection[:])
	return s
}

// Model returns the current model matrix.
func (s *MatrixStack) Model() [16]float32 {
	return s.model
}

// Projection returns the current projection matrix.
func (s *MatrixStack) Projection() [16]float32 {
	return s.projection
}

// PushTransform snapshots the current model matrix, then replaces it with
// current * matrix. Callers must pair every PushTransform with a
// PopTransform once the subtree recursion returns.
func (s *MatrixStack) PushTransform(matrix [16]float32) {
	s.modelStack = append(s.modelStack, s.model)
	var next [16]float32
	common.Mul4(next[:], s.model[:], matrix[:])
	s.model = next
}

// PopTransform restores the model matrix snapshotted by the matching
// PushTransform.
func (s *MatrixStack) PopTransform() {
	n := len(s.modelStack)
	s.model = s.modelStack[n-1]
	s.modelStack = s.modelStack[:n-1]
}

// PushProjection snapshots the current projection matrix, then replaces it
// with matrix outright (projection nodes replace rather than compose).
func (s *MatrixStack) PushProjection(matrix [16]float32) {
	s.projectionStack = append(s.projectionStack, s.projection)
	s.projection = matrix
}

// PopProjection restores the projection matrix snapshotted by the matching
// PushProjection.
func (s *MatrixStack) PopProjection() {
	n := len(s.projectionStack)
	s.projection = s.projectionStack[n-1]
	s.projectionStack = s.projectionStack[:n-1]
}
