// Package scenegraph implements the retained-mode node model: a polymorphic
// tree of groups, transforms, projections, and shapes that a visitor walks
// once per frame.
//
// Group, Transform, and ProjectionNode are all represented by the same
// underlying Node type, tagged by Kind; the differences between them are
// cosmetic (an optional matrix, a different Accept dispatch target), not
// structural. Geometry and Sphere are distinct types because they carry
// substantially different data (vertex arrays vs. parametric fields).
package scenegraph

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/perryiv/wgsg-go/common"
	"github.com/perryiv/wgsg-go/state"
)

// nextID hands out process-unique node identifiers. 0 is never issued.
var nextID uint64

func newID() uint64 {
	return atomic.AddUint64(&nextID, 1)
}

// Kind tags a node's role for visitor dispatch.
type Kind int

const (
	KindGroup Kind = iota
	KindTransform
	KindProjection
	KindGeometry
	KindSphere
)

// Element is implemented by everything that can be a child in the scene
// graph: Node itself (Group/Transform/ProjectionNode), Geometry, and Sphere.
type Element interface {
	Accept(Visitor)
	header() *Node
}

// Visitor is implemented by every traversal (cull, draw, or a test helper).
// Node.Accept and the shape types' Accept dispatch to the method matching
// their Kind.
type Visitor interface {
	VisitGroup(n *Node)
	VisitTransform(n *Node)
	VisitProjection(n *Node)
	VisitGeometry(g *Geometry)
	VisitSphere(s *Sphere)
}

// ErrCycle is returned by AddChild when the candidate child is an ancestor
// of the node it would be added to.
var ErrCycle = errors.New("scenegraph: node is an ancestor of prospective child")

// Node is the common header for Group, Transform, and ProjectionNode, and is
// embedded by Geometry and Sphere for identity, dirty tracking, cached
// bounds, and the state reference. Matrix is meaningful only for
// KindTransform (model-local) and KindProjection (projection) nodes.
type Node struct {
	mu sync.Mutex

	id     uint64
	kind   Kind
	name   string
	parent *Node
	state  *state.State
	matrix [16]float32

	dirty  bool
	bounds common.Box3
	sphere common.BoundingSphere

	children []Element
}

// initNode initialises an already-allocated Node in place. Used both by
// newNode (Group/Transform/ProjectionNode) and by Geometry/Sphere's
// constructors, which embed Node by value and must not copy a Node struct
// once its mutex has been used.
func initNode(n *Node, kind Kind) {
	n.id = newID()
	n.kind = kind
	n.dirty = true
	n.bounds = common.InvalidBox3()
	common.Identity(n.matrix[:])
}

func newNode(kind Kind) *Node {
	n := &Node{}
	initNode(n, kind)
	return n
}

// NewGroup returns an empty Group node.
func NewGroup() *Node {
	return newNode(KindGroup)
}

// NewTransform returns a Transform node carrying matrix as its model-local
// transformation. matrix must have length 16 (column-major 4x4).
func NewTransform(matrix []float32) *Node {
	n := newNode(KindTransform)
	copy(n.matrix[:], matrix)
	return n
}

// NewProjectionNode returns a ProjectionNode carrying matrix as the
// projection matrix it installs for its subtree.
func NewProjectionNode(matrix []float32) *Node {
	n := newNode(KindProjection)
	copy(n.matrix[:], matrix)
	return n
}

func (n *Node) header() *Node {
	return n
}

// ID returns this node's process-unique identifier.
func (n *Node) ID() uint64 {
	return n.id
}

// Kind reports the node's role.
func (n *Node) Kind() Kind {
	return n.kind
}

// Matrix returns the node's 4x4 matrix (identity for KindGroup).
func (n *Node) Matrix() [16]float32 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.matrix
}

// SetMatrix replaces the node's matrix and raises the dirty flag.
func (n *Node) SetMatrix(matrix []float32) {
	n.mu.Lock()
	copy(n.matrix[:], matrix)
	n.mu.Unlock()
	n.SetDirty()
}

// Name returns the node's display name, empty if never set.
func (n *Node) Name() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.name
}

// SetName sets the node's display name.
func (n *Node) SetName(name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.name = name
}

// State returns the node's render-state reference, or nil if unset.
func (n *Node) State() *state.State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// SetState assigns the render-state reference used when this node acts as a
// shape's state. Raises the dirty flag.
func (n *Node) SetState(s *state.State) {
	n.mu.Lock()
	n.state = s
	n.mu.Unlock()
	n.SetDirty()
}

// Parent returns the node's current parent, or nil at the scene root.
func (n *Node) Parent() *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.parent
}

func (n *Node) setParent(p *Node) {
	n.mu.Lock()
	n.parent = p
	n.mu.Unlock()
}

// IsAncestorOf reports whether n is an ancestor of candidate, walking
// candidate's parent chain.
func (n *Node) IsAncestorOf(candidate *Node) bool {
	for p := candidate.Parent(); p != nil; p = p.Parent() {
		if p == n {
			return true
		}
	}
	return false
}

// SetDirty marks this node's cached bounds stale and propagates up the
// parent chain; a no-op if already dirty, since the ancestor chain above an
// already-dirty node is already dirty too.
func (n *Node) SetDirty() {
	n.mu.Lock()
	already := n.dirty
	n.dirty = true
	n.mu.Unlock()
	if already {
		return
	}
	if p := n.Parent(); p != nil {
		p.SetDirty()
	}
}

// Dirty reports whether this node's cached bounds are stale.
func (n *Node) Dirty() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.dirty
}

func (n *Node) clearDirty() {
	n.mu.Lock()
	n.dirty = false
	n.mu.Unlock()
}

func (n *Node) setBounds(box common.Box3, sphere common.BoundingSphere) {
	n.mu.Lock()
	n.bounds = box
	n.sphere = sphere
	n.mu.Unlock()
	n.clearDirty()
}

func (n *Node) cachedBounds() (common.Box3, common.BoundingSphere) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.bounds, n.sphere
}

// AddChild appends child to n. Returns ErrCycle if child is already an
// ancestor of n. Unlinks child from any previous parent first. Valid on any
// Node (Group/Transform/ProjectionNode); Geometry and Sphere accept it too
// via embedding but gain no behaviour from it since nothing ever walks a
// shape's children.
func (n *Node) AddChild(child Element) error {
	h := child.header()
	if h.IsAncestorOf(n) {
		return ErrCycle
	}
	if prev := h.Parent(); prev != nil {
		prev.RemoveChild(child)
	}

	n.mu.Lock()
	n.children = append(n.children, child)
	n.mu.Unlock()

	h.setParent(n)
	n.SetDirty()
	return nil
}

// RemoveChild removes child from n's children. No-op if child is not a
// direct child.
func (n *Node) RemoveChild(child Element) {
	n.mu.Lock()
	idx := -1
	for i, c := range n.children {
		if c == child {
			idx = i
			break
		}
	}
	if idx < 0 {
		n.mu.Unlock()
		return
	}
	n.children = append(n.children[:idx], n.children[idx+1:]...)
	n.mu.Unlock()

	child.header().setParent(nil)
	n.SetDirty()
}

// ForEachChild invokes callback for each child in insertion order.
func (n *Node) ForEachChild(callback func(Element)) {
	n.mu.Lock()
	children := make([]Element, len(n.children))
	copy(children, n.children)
	n.mu.Unlock()

	for _, c := range children {
		callback(c)
	}
}

// NumChildren reports the current child count.
func (n *Node) NumChildren() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.children)
}

// GetBoundingBox returns the union of descendant bounds (transformed by this
// node's matrix if it is a Transform), recomputing if dirty.
func (n *Node) GetBoundingBox() common.Box3 {
	n.ensureBounds()
	box, _ := n.cachedBounds()
	return box
}

// GetBoundingSphere returns a sphere enclosing GetBoundingBox, recomputing
// if dirty.
func (n *Node) GetBoundingSphere() common.BoundingSphere {
	n.ensureBounds()
	_, sphere := n.cachedBounds()
	return sphere
}

func (n *Node) ensureBounds() {
	if !n.Dirty() {
		return
	}
	box := common.InvalidBox3()
	n.ForEachChild(func(c Element) {
		box = box.Union(boundsOf(c))
	})
	if n.kind == KindTransform {
		box = transformBox(box, n.matrix[:])
	}
	center := box.Center()
	radius := center.Sub(box.Max).Length()
	n.setBounds(box, common.BoundingSphere{Center: center, Radius: radius})
}

// boundsOf returns an element's bounding box, dispatching to the concrete
// type's own accessor.
func boundsOf(e Element) common.Box3 {
	switch t := e.(type) {
	case *Node:
		return t.GetBoundingBox()
	case *Geometry:
		return t.GetBoundingBox()
	case *Sphere:
		return t.GetBoundingBox()
	default:
		return common.InvalidBox3()
	}
}

// transformBox returns the axis-aligned box enclosing box's eight corners
// after transformation by matrix.
func transformBox(box common.Box3, matrix []float32) common.Box3 {
	if !box.Valid() {
		return box
	}
	corners := [8]common.Vec3{
		{box.Min.X, box.Min.Y, box.Min.Z}, {box.Max.X, box.Min.Y, box.Min.Z},
		{box.Min.X, box.Max.Y, box.Min.Z}, {box.Max.X, box.Max.Y, box.Min.Z},
		{box.Min.X, box.Min.Y, box.Max.Z}, {box.Max.X, box.Min.Y, box.Max.Z},
		{box.Min.X, box.Max.Y, box.Max.Z}, {box.Max.X, box.Max.Y, box.Max.Z},
	}
	out := common.InvalidBox3()
	for _, c := range corners {
		out = out.Grow(common.TransformPoint(matrix, c))
	}
	return out
}

// Accept dispatches to the visitor method matching n's Kind. Valid only for
// KindGroup, KindTransform, and KindProjection; Geometry and Sphere provide
// their own Accept.
func (n *Node) Accept(v Visitor) {
	switch n.kind {
	case KindGroup:
		v.VisitGroup(n)
	case KindTransform:
		v.VisitTransform(n)
	case KindProjection:
		v.VisitProjection(n)
	}
}
