package graph

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"

	"github.com/perryiv/wgsg-go/common"
	"github.com/perryiv/wgsg-go/gpu/pipeline"
	"github.com/perryiv/wgsg-go/gpu/shader"
	"github.com/perryiv/wgsg-go/scenegraph"
	"github.com/perryiv/wgsg-go/state"
)

func testState() *state.State {
	vertex := shader.New("solid", shader.StageVertex, "// vertex")
	fragment := shader.New("solid", shader.StageFragment, "// fragment")
	return state.New("solid", vertex, fragment)
}

// TestRenderGraphStructureForFourSpheresSharedState exercises the scenario
// where four shapes at distinct offsets, sharing one render-state and one
// projection/model matrix pair, all land in a single state group.
func TestRenderGraphStructureForFourSpheresSharedState(t *testing.T) {
	root := NewRoot()
	s := testState()

	var identity [16]float32
	common.Identity(identity[:])

	key := s.PipelineKey(wgpu.TextureFormatBGRA8Unorm)

	sg := root.
		Layer(s.Layer).
		Bin(s.Bin).
		Pipeline(key, s).
		ProjMatrixGroup(identity).
		ModelMatrixGroup(identity).
		StateGroup(s)

	shapes := make([]scenegraph.Element, 4)
	for i := range shapes {
		shapes[i] = scenegraph.NewSphere(common.Vec3{X: float32(2 * i)}, 1.0, 0)
		sg.Append(shapes[i])
	}

	assert.Equal(t, 1, root.NumLayers())
	var layer *Layer
	root.ForEachLayer(func(_ int, l *Layer) { layer = l })
	assert.Equal(t, 1, layer.NumBins())

	var bin *Bin
	layer.ForEachBin(func(_ int, b *Bin) { bin = b })
	assert.Equal(t, 1, bin.NumPipelines())

	var pl *Pipeline
	bin.ForEachPipeline(func(_ pipeline.Key, p *Pipeline) { pl = p })
	assert.Equal(t, 1, pl.NumProjMatrices())

	var projGroup *ProjMatrixGroup
	pl.ForEachProjMatrixGroup(func(_ [16]float32, g *ProjMatrixGroup) { projGroup = g })
	assert.Equal(t, 1, projGroup.NumModelMatrices())

	var modelGroup *ModelMatrixGroup
	projGroup.ForEachModelMatrixGroup(func(_ [16]float32, m *ModelMatrixGroup) { modelGroup = m })
	assert.Equal(t, 1, modelGroup.NumStateGroups())

	var stateGroup *StateGroup
	modelGroup.ForEachStateGroup(func(_ string, g *StateGroup) { stateGroup = g })
	assert.Equal(t, 4, stateGroup.NumShapes())
	assert.Equal(t, shapes, stateGroup.Shapes)
}

func TestLayersAndBinsVisitedInAscendingKeyOrder(t *testing.T) {
	root := NewRoot()
	root.Layer(3)
	root.Layer(1)
	root.Layer(2)

	var order []int
	root.ForEachLayer(func(layer int, _ *Layer) { order = append(order, layer) })
	assert.Equal(t, []int{1, 2, 3}, order)

	layer := root.Layer(1)
	layer.Bin(5)
	layer.Bin(-2)
	layer.Bin(0)

	var binOrder []int
	layer.ForEachBin(func(bin int, _ *Bin) { binOrder = append(binOrder, bin) })
	assert.Equal(t, []int{-2, 0, 5}, binOrder)
}

func TestPipelinesVisitedInFirstInsertionOrder(t *testing.T) {
	bin := newBin()
	s := testState()
	keyA := pipeline.Key{ShaderName: "a"}
	keyB := pipeline.Key{ShaderName: "b"}

	bin.Pipeline(keyB, s)
	bin.Pipeline(keyA, s)

	var order []pipeline.Key
	bin.ForEachPipeline(func(key pipeline.Key, _ *Pipeline) { order = append(order, key) })
	assert.Equal(t, []pipeline.Key{keyB, keyA}, order)
}

func TestResetClearsAllLayers(t *testing.T) {
	root := NewRoot()
	root.Layer(0)
	assert.Equal(t, 1, root.NumLayers())

	root.Reset()
	assert.Equal(t, 0, root.NumLayers())
}
