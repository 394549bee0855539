package cull

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"

	"github.com/perryiv/wgsg-go/common"
	"github.com/perryiv/wgsg-go/graph"
	"github.com/perryiv/wgsg-go/gpu/pipeline"
	"github.com/perryiv/wgsg-go/gpu/shader"
	"github.com/perryiv/wgsg-go/scenegraph"
	"github.com/perryiv/wgsg-go/state"
)

func testState(name string, opts ...state.Option) *state.State {
	vertex := shader.New(name, shader.StageVertex, "// vertex")
	fragment := shader.New(name, shader.StageFragment, "// fragment")
	return state.New(name, vertex, fragment, opts...)
}

func translation(dx, dy, dz float32) []float32 {
	var m [16]float32
	common.Identity(m[:])
	m[12], m[13], m[14] = dx, dy, dz
	return m[:]
}

func onlyLayer(root *graph.Root) *graph.Layer {
	var layer *graph.Layer
	root.ForEachLayer(func(_ int, l *graph.Layer) { layer = l })
	return layer
}

func onlyBin(layer *graph.Layer) *graph.Bin {
	var bin *graph.Bin
	layer.ForEachBin(func(_ int, b *graph.Bin) { bin = b })
	return bin
}

func onlyPipeline(bin *graph.Bin) *graph.Pipeline {
	var p *graph.Pipeline
	bin.ForEachPipeline(func(_ pipeline.Key, pl *graph.Pipeline) { p = pl })
	return p
}

func onlyProjGroup(p *graph.Pipeline) *graph.ProjMatrixGroup {
	var g *graph.ProjMatrixGroup
	p.ForEachProjMatrixGroup(func(_ [16]float32, pg *graph.ProjMatrixGroup) { g = pg })
	return g
}

func onlyModelGroup(g *graph.ProjMatrixGroup) *graph.ModelMatrixGroup {
	var m *graph.ModelMatrixGroup
	g.ForEachModelMatrixGroup(func(_ [16]float32, mg *graph.ModelMatrixGroup) { m = mg })
	return m
}

func onlyStateGroup(m *graph.ModelMatrixGroup) *graph.StateGroup {
	var sg *graph.StateGroup
	m.ForEachStateGroup(func(_ string, g *graph.StateGroup) { sg = g })
	return sg
}

func TestRunOnNilSceneProducesEmptyGraph(t *testing.T) {
	root := graph.NewRoot()
	v := New(root, testState("default"), wgpu.TextureFormatBGRA8Unorm)

	v.Run(nil)
	assert.Equal(t, 0, root.NumLayers())
}

func TestRunInsertsShapeUnderCurrentModelMatrix(t *testing.T) {
	root := graph.NewRoot()
	def := testState("default")
	v := New(root, def, wgpu.TextureFormatBGRA8Unorm)

	transform := scenegraph.NewTransform(translation(1, 2, 3))
	sphere := scenegraph.NewSphere(common.Vec3{}, 1.0, 0)
	assert.NoError(t, transform.AddChild(sphere))

	v.Run(transform)

	stateGroup := onlyStateGroup(onlyModelGroup(onlyProjGroup(onlyPipeline(onlyBin(onlyLayer(root))))))
	assert.Equal(t, 1, stateGroup.NumShapes())
	assert.Same(t, sphere, stateGroup.Shapes[0])

	modelGroup := onlyModelGroup(onlyProjGroup(onlyPipeline(onlyBin(onlyLayer(root)))))
	assert.Equal(t, translation(1, 2, 3), modelGroup.Matrix[:])
}

func TestRunResetsGraphBetweenRuns(t *testing.T) {
	root := graph.NewRoot()
	def := testState("default")
	v := New(root, def, wgpu.TextureFormatBGRA8Unorm)

	sphere := scenegraph.NewSphere(common.Vec3{}, 1.0, 0)
	v.Run(sphere)
	assert.Equal(t, 1, root.NumLayers())

	v.Run(nil)
	assert.Equal(t, 0, root.NumLayers())
}

// TestRunPartitionsShapesByEffectiveState exercises the scenario where two
// shapes with distinct layer/bin states land in distinct buckets, while a
// shape with no explicit state falls back to the default.
func TestRunPartitionsShapesByEffectiveState(t *testing.T) {
	root := graph.NewRoot()
	def := testState("default")
	v := New(root, def, wgpu.TextureFormatBGRA8Unorm)

	background := testState("background", state.WithLayer(-1))
	overlay := testState("overlay", state.WithLayer(1), state.WithBin(2))

	group := scenegraph.NewGroup()

	plain := scenegraph.NewSphere(common.Vec3{}, 1.0, 0)
	behind := scenegraph.NewSphere(common.Vec3{}, 1.0, 0)
	behind.SetState(background)
	front := scenegraph.NewSphere(common.Vec3{}, 1.0, 0)
	front.SetState(overlay)

	assert.NoError(t, group.AddChild(plain))
	assert.NoError(t, group.AddChild(behind))
	assert.NoError(t, group.AddChild(front))

	v.Run(group)

	assert.Equal(t, 3, root.NumLayers())

	var layerKeys []int
	root.ForEachLayer(func(layer int, _ *graph.Layer) { layerKeys = append(layerKeys, layer) })
	assert.Equal(t, []int{-1, 0, 1}, layerKeys)
}
