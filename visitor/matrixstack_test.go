package visitor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/perryiv/wgsg-go/common"
)

func translation(dx, dy, dz float32) [16]float32 {
	var m [16]float32
	common.Identity(m[:])
	m[12], m[13], m[14] = dx, dy, dz
	return m
}

func translationOf(m [16]float32) (float32, float32, float32) {
	return m[12], m[13], m[14]
}

// TestMatrixStackingChainOfTransforms walks root -> t1(+10x) -> t2(+10y) ->
// t3(+10z) -> leaf, recording the model matrix at the moment each node is
// visited, before that node's own push is applied. A depth-first visitor
// with one Transform node per level produces exactly one recording per
// node plus the leaf, five in total.
func TestMatrixStackingChainOfTransforms(t *testing.T) {
	s := NewMatrixStack()

	var snapshots [][16]float32
	visit := func() { snapshots = append(snapshots, s.Model()) }

	visit() // root

	visit() // t1, before its own push
	s.PushTransform(translation(10, 0, 0))

	visit() // t2, before its own push
	s.PushTransform(translation(0, 10, 0))

	visit() // t3, before its own push
	s.PushTransform(translation(0, 0, 10))

	visit() // leaf

	s.PopTransform()
	s.PopTransform()
	s.PopTransform()

	assert.Len(t, snapshots, 5)

	expected := [][3]float32{
		{0, 0, 0},
		{0, 0, 0},
		{10, 0, 0},
		{10, 10, 0},
		{10, 10, 10},
	}
	for i, want := range expected {
		x, y, z := translationOf(snapshots[i])
		assert.Equal(t, want, [3]float32{x, y, z}, "snapshot %d", i)
	}

	// The stack must be balanced: popping back to root restores identity.
	final := s.Model()
	assert.Equal(t, common.Vec3{}, common.Vec3{X: final[12], Y: final[13], Z: final[14]})
}

func TestPushPopTransformRestoresPriorMatrix(t *testing.T) {
	s := NewMatrixStack()
	before := s.Model()

	s.PushTransform(translation(1, 2, 3))
	assert.NotEqual(t, before, s.Model())

	s.PopTransform()
	assert.Equal(t, before, s.Model())
}

func TestPushProjectionReplacesRatherThanComposes(t *testing.T) {
	s := NewMatrixStack()
	first := translation(1, 0, 0)
	second := translation(0, 1, 0)

	s.PushProjection(first)
	assert.Equal(t, first, s.Projection())

	s.PushProjection(second)
	assert.Equal(t, second, s.Projection(), "nested projection should replace, not compose")

	s.PopProjection()
	assert.Equal(t, first, s.Projection())

	s.PopProjection()
	identity := s.Projection()
	var want [16]float32
	common.Identity(want[:])
	assert.Equal(t, want, identity)
}
