// Package graph implements the render graph: the six-level nested bucket
// hierarchy the cull traversal builds and the draw traversal walks in
// canonical order. Layer and Bin are ordered by ascending integer key;
// every level below them preserves first-insertion order.
package graph

import (
	"sort"

	"github.com/perryiv/wgsg-go/gpu/pipeline"
	"github.com/perryiv/wgsg-go/scenegraph"
	"github.com/perryiv/wgsg-go/state"
)

// Root is the render graph's top level: a scene's entire visible work for
// one frame, partitioned by layer.
type Root struct {
	layers    map[int]*Layer
	layerKeys []int
}

// NewRoot returns an empty render graph.
func NewRoot() *Root {
	return &Root{layers: make(map[int]*Layer)}
}

// Reset clears every layer, ready for the next frame's cull traversal.
// Bucket objects themselves are not reused across frames; this is a
// correctness simplification, not a requirement — the graph's structural
// determinism is what tests observe, not identity reuse across frames.
func (r *Root) Reset() {
	r.layers = make(map[int]*Layer)
	r.layerKeys = nil
}

// Layer returns the bucket for the given layer key, creating it on first
// use.
func (r *Root) Layer(layer int) *Layer {
	if l, ok := r.layers[layer]; ok {
		return l
	}
	l := newLayer()
	r.layers[layer] = l
	r.layerKeys = append(r.layerKeys, layer)
	return l
}

// NumLayers reports the number of distinct layers present.
func (r *Root) NumLayers() int {
	return len(r.layers)
}

// ForEachLayer visits every layer in ascending key order.
func (r *Root) ForEachLayer(cb func(layer int, l *Layer)) {
	keys := append([]int(nil), r.layerKeys...)
	sort.Ints(keys)
	for _, k := range keys {
		cb(k, r.layers[k])
	}
}

// Layer partitions a layer's shapes into bins, its secondary sort key.
type Layer struct {
	bins    map[int]*Bin
	binKeys []int
}

func newLayer() *Layer {
	return &Layer{bins: make(map[int]*Bin)}
}

// Bin returns the bucket for the given bin key, creating it on first use.
func (l *Layer) Bin(bin int) *Bin {
	if b, ok := l.bins[bin]; ok {
		return b
	}
	b := newBin()
	l.bins[bin] = b
	l.binKeys = append(l.binKeys, bin)
	return b
}

// NumBins reports the number of distinct bins present.
func (l *Layer) NumBins() int {
	return len(l.bins)
}

// ForEachBin visits every bin in ascending key order.
func (l *Layer) ForEachBin(cb func(bin int, b *Bin)) {
	keys := append([]int(nil), l.binKeys...)
	sort.Ints(keys)
	for _, k := range keys {
		cb(k, l.bins[k])
	}
}

// Bin partitions shapes by pipeline key, in first-insertion order.
type Bin struct {
	pipelines    map[pipeline.Key]*Pipeline
	pipelineKeys []pipeline.Key
}

func newBin() *Bin {
	return &Bin{pipelines: make(map[pipeline.Key]*Pipeline)}
}

// Pipeline returns the bucket for the given pipeline key, creating it (and
// assigning it the render-state that first produced the key) on first use.
func (b *Bin) Pipeline(key pipeline.Key, s *state.State) *Pipeline {
	if p, ok := b.pipelines[key]; ok {
		return p
	}
	p := newPipeline(s)
	b.pipelines[key] = p
	b.pipelineKeys = append(b.pipelineKeys, key)
	return p
}

// NumPipelines reports the number of distinct pipeline keys present.
func (b *Bin) NumPipelines() int {
	return len(b.pipelines)
}

// ForEachPipeline visits every pipeline bucket in first-insertion order.
func (b *Bin) ForEachPipeline(cb func(key pipeline.Key, p *Pipeline)) {
	for _, k := range b.pipelineKeys {
		cb(k, b.pipelines[k])
	}
}

// Pipeline partitions shapes by projection matrix, in first-insertion
// order. It also carries the render-state that first produced its pipeline
// key, since the draw traversal needs a State to derive the compiled
// pipeline from.
type Pipeline struct {
	State *state.State

	projGroups map[[16]float32]*ProjMatrixGroup
	projKeys   [][16]float32
}

func newPipeline(s *state.State) *Pipeline {
	return &Pipeline{State: s, projGroups: make(map[[16]float32]*ProjMatrixGroup)}
}

// ProjMatrixGroup returns the bucket for the given projection matrix,
// creating it on first use.
func (p *Pipeline) ProjMatrixGroup(matrix [16]float32) *ProjMatrixGroup {
	if g, ok := p.projGroups[matrix]; ok {
		return g
	}
	g := newProjMatrixGroup(matrix)
	p.projGroups[matrix] = g
	p.projKeys = append(p.projKeys, matrix)
	return g
}

// NumProjMatrices reports the number of distinct projection matrices
// present.
func (p *Pipeline) NumProjMatrices() int {
	return len(p.projGroups)
}

// ForEachProjMatrixGroup visits every projection-matrix group in
// first-insertion order.
func (p *Pipeline) ForEachProjMatrixGroup(cb func(matrix [16]float32, g *ProjMatrixGroup)) {
	for _, k := range p.projKeys {
		cb(k, p.projGroups[k])
	}
}

// ProjMatrixGroup partitions shapes by model matrix, in first-insertion
// order.
type ProjMatrixGroup struct {
	Matrix [16]float32

	modelGroups map[[16]float32]*ModelMatrixGroup
	modelKeys   [][16]float32
}

func newProjMatrixGroup(matrix [16]float32) *ProjMatrixGroup {
	return &ProjMatrixGroup{Matrix: matrix, modelGroups: make(map[[16]float32]*ModelMatrixGroup)}
}

// ModelMatrixGroup returns the bucket for the given model matrix, creating
// it on first use.
func (g *ProjMatrixGroup) ModelMatrixGroup(matrix [16]float32) *ModelMatrixGroup {
	if m, ok := g.modelGroups[matrix]; ok {
		return m
	}
	m := newModelMatrixGroup(matrix)
	g.modelGroups[matrix] = m
	g.modelKeys = append(g.modelKeys, matrix)
	return m
}

// NumModelMatrices reports the number of distinct model matrices present.
func (g *ProjMatrixGroup) NumModelMatrices() int {
	return len(g.modelGroups)
}

// ForEachModelMatrixGroup visits every model-matrix group in first-insertion
// order.
func (g *ProjMatrixGroup) ForEachModelMatrixGroup(cb func(matrix [16]float32, m *ModelMatrixGroup)) {
	for _, k := range g.modelKeys {
		cb(k, g.modelGroups[k])
	}
}

// ModelMatrixGroup partitions shapes by render-state name, in
// first-insertion order.
type ModelMatrixGroup struct {
	Matrix [16]float32

	stateGroups map[string]*StateGroup
	stateKeys   []string
}

func newModelMatrixGroup(matrix [16]float32) *ModelMatrixGroup {
	return &ModelMatrixGroup{Matrix: matrix, stateGroups: make(map[string]*StateGroup)}
}

// StateGroup returns the bucket for the given state, creating it on first
// use.
func (g *ModelMatrixGroup) StateGroup(s *state.State) *StateGroup {
	if sg, ok := g.stateGroups[s.Name]; ok {
		return sg
	}
	sg := newStateGroup(s)
	g.stateGroups[s.Name] = sg
	g.stateKeys = append(g.stateKeys, s.Name)
	return sg
}

// NumStateGroups reports the number of distinct state groups present.
func (g *ModelMatrixGroup) NumStateGroups() int {
	return len(g.stateGroups)
}

// ForEachStateGroup visits every state group in first-insertion order.
func (g *ModelMatrixGroup) ForEachStateGroup(cb func(name string, sg *StateGroup)) {
	for _, k := range g.stateKeys {
		cb(k, g.stateGroups[k])
	}
}

// StateGroup is the innermost bucket: an ordered list of shapes sharing one
// render-state, in scene-graph traversal order.
type StateGroup struct {
	State  *state.State
	Shapes []scenegraph.Element
}

func newStateGroup(s *state.State) *StateGroup {
	return &StateGroup{State: s}
}

// Append adds shape to the end of this state group's shape list.
func (sg *StateGroup) Append(shape scenegraph.Element) {
	sg.Shapes = append(sg.Shapes, shape)
}

// NumShapes reports the number of shapes in this group.
func (sg *StateGroup) NumShapes() int {
	return len(sg.Shapes)
}
