package scenegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/perryiv/wgsg-go/buffer"
	"github.com/perryiv/wgsg-go/common"
)

func TestNodeIDsArePositiveAndUnique(t *testing.T) {
	a := NewGroup()
	b := NewGroup()
	assert.Greater(t, a.ID(), uint64(0))
	assert.Greater(t, b.ID(), uint64(0))
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestAddChildRejectsCycle(t *testing.T) {
	root := NewGroup()
	child := NewGroup()
	require := assert.New(t)
	require.NoError(root.AddChild(child))
	err := child.AddChild(root)
	require.ErrorIs(err, ErrCycle)
}

func TestAddChildUnlinksFromPreviousParent(t *testing.T) {
	first := NewGroup()
	second := NewGroup()
	child := NewGroup()

	assert.NoError(t, first.AddChild(child))
	assert.Equal(t, 1, first.NumChildren())

	assert.NoError(t, second.AddChild(child))
	assert.Equal(t, 0, first.NumChildren())
	assert.Equal(t, 1, second.NumChildren())
	assert.Equal(t, second, child.Parent())
}

func TestSetDirtyPropagatesToAncestorsOnce(t *testing.T) {
	root := NewGroup()
	mid := NewGroup()
	leaf := NewGroup()
	assert.NoError(t, root.AddChild(mid))
	assert.NoError(t, mid.AddChild(leaf))

	root.clearDirty()
	mid.clearDirty()
	leaf.clearDirty()

	leaf.SetDirty()
	assert.True(t, root.Dirty())
	assert.True(t, mid.Dirty())
	assert.True(t, leaf.Dirty())
}

func TestTransformBoundsUnionOfChildren(t *testing.T) {
	transform := NewTransform([]float32{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		5, 0, 0, 1,
	})
	g := NewGeometry()
	g.Points = buffer.NewFloat32Array([]float32{-1, -1, -1, 1, 1, 1}, buffer.UsageVertex)
	assert.NoError(t, transform.AddChild(g))

	box := transform.GetBoundingBox()
	assert.InDelta(t, 4.0, box.Min.X, 1e-6)
	assert.InDelta(t, -1.0, box.Min.Y, 1e-6)
	assert.InDelta(t, 6.0, box.Max.X, 1e-6)
	assert.InDelta(t, 1.0, box.Max.Y, 1e-6)
}

func TestIsAncestorOf(t *testing.T) {
	root := NewGroup()
	mid := NewGroup()
	leaf := NewGroup()
	assert.NoError(t, root.AddChild(mid))
	assert.NoError(t, mid.AddChild(leaf))

	assert.True(t, root.IsAncestorOf(leaf))
	assert.True(t, mid.IsAncestorOf(leaf))
	assert.False(t, leaf.IsAncestorOf(root))
}

func TestBoxGrowFromInvalid(t *testing.T) {
	box := common.InvalidBox3()
	p := common.Vec3{X: 1, Y: 2, Z: 3}
	box = box.Grow(p)
	assert.Equal(t, p, box.Min)
	assert.Equal(t, p, box.Max)
}

func TestBoxGrowByTwoPoints(t *testing.T) {
	box := common.InvalidBox3()
	box = box.Grow(common.Vec3{X: 3, Y: -1, Z: 0})
	box = box.Grow(common.Vec3{X: -2, Y: 5, Z: 1})
	assert.Equal(t, common.Vec3{X: -2, Y: -1, Z: 0}, box.Min)
	assert.Equal(t, common.Vec3{X: 3, Y: 5, Z: 1}, box.Max)
}
