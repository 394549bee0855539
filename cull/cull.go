// Package cull implements the traversal that flattens a scene into a render
// graph: a single depth-first walk that maintains model/projection matrix
// stacks and, for every shape it encounters, inserts it into the graph
// bucket its effective render-state selects. This is not frustum or
// occlusion culling — no spatial rejection happens here.
package cull

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/perryiv/wgsg-go/graph"
	"github.com/perryiv/wgsg-go/scenegraph"
	"github.com/perryiv/wgsg-go/state"
	"github.com/perryiv/wgsg-go/visitor"
)

// Visitor walks a scene graph and builds a render graph. One Visitor
// serves one surface; Run resets its graph before each traversal.
type Visitor struct {
	stack         *visitor.MatrixStack
	root          *graph.Root
	defaultState  *state.State
	surfaceFormat wgpu.TextureFormat
}

var _ scenegraph.Visitor = (*Visitor)(nil)

// New returns a cull Visitor targeting root, using defaultState for shapes
// with no explicit state reference and surfaceFormat to derive pipeline
// keys.
func New(root *graph.Root, defaultState *state.State, surfaceFormat wgpu.TextureFormat) *Visitor {
	return &Visitor{
		stack:         visitor.NewMatrixStack(),
		root:          root,
		defaultState:  defaultState,
		surfaceFormat: surfaceFormat,
	}
}

// Run resets the render graph and walks scene, rebuilding it. scene may be
// nil, producing an empty graph.
func (v *Visitor) Run(scene scenegraph.Element) {
	v.root.Reset()
	if scene == nil {
		return
	}
	scene.Accept(v)
}

// VisitGroup recurses into every child in insertion order.
func (v *Visitor) VisitGroup(n *scenegraph.Node) {
	n.ForEachChild(func(c scenegraph.Element) {
		c.Accept(v)
	})
}

// VisitTransform composes n's matrix onto the current model matrix for the
// duration of the recursion into its children, then restores it.
func (v *Visitor) VisitTransform(n *scenegraph.Node) {
	v.stack.PushTransform(n.Matrix())
	n.ForEachChild(func(c scenegraph.Element) {
		c.Accept(v)
	})
	v.stack.PopTransform()
}

// VisitProjection replaces the current projection matrix with n's for the
// duration of the recursion into its children, then restores it. Nested
// projection nodes fully replace the outer one; there is no accumulation.
func (v *Visitor) VisitProjection(n *scenegraph.Node) {
	v.stack.PushProjection(n.Matrix())
	n.ForEachChild(func(c scenegraph.Element) {
		c.Accept(v)
	})
	v.stack.PopProjection()
}

// VisitGeometry inserts g into the render graph under its effective state's
// bucket path.
func (v *Visitor) VisitGeometry(g *scenegraph.Geometry) {
	v.insert(g, g.State())
}

// VisitSphere regenerates s's geometry if dirty, then inserts it under its
// effective state's bucket path.
func (v *Visitor) VisitSphere(s *scenegraph.Sphere) {
	s.Update()
	v.insert(s, s.State())
}

// insert resolves shape's effective state (falling back to defaultState)
// and appends shape to the bucket path layer -> bin -> pipeline ->
// projMatrixGroup -> modelMatrixGroup -> stateGroup.
func (v *Visitor) insert(shape scenegraph.Element, explicitState *state.State) {
	effective := explicitState
	if effective == nil {
		effective = v.defaultState
	}

	key := effective.PipelineKey(v.surfaceFormat)
	layer := v.root.Layer(effective.Layer)
	bin := layer.Bin(effective.Bin)
	pipelineBucket := bin.Pipeline(key, effective)
	projGroup := pipelineBucket.ProjMatrixGroup(v.stack.Projection())
	modelGroup := projGroup.ModelMatrixGroup(v.stack.Model())
	stateGroup := modelGroup.StateGroup(effective)
	stateGroup.Append(shape)
}
