// Package draw implements the draw traversal: it walks a render graph in
// canonical order, opens exactly one render pass, binds pipelines and
// uniforms at the appropriate bucket levels, applies render-state hooks
// around each state group, and emits one indexed draw call per indexed
// primitive set. Array (non-indexed) primitive sets are not drawn.
package draw

import (
	"log"

	"github.com/perryiv/wgsg-go/buffer"
	"github.com/perryiv/wgsg-go/graph"
	"github.com/perryiv/wgsg-go/gpu"
	"github.com/perryiv/wgsg-go/gpu/pipeline"
	"github.com/perryiv/wgsg-go/scenegraph"
	"github.com/perryiv/wgsg-go/state"
)

// Drawer walks a render graph and issues its draw calls against a gpu
// Context. One Drawer serves one surface.
type Drawer struct {
	ctx      *gpu.Context
	uniforms *gpu.UniformCache

	buildPipeline func(key pipeline.Key, s *state.State) *pipeline.Pipeline
}

// New returns a Drawer issuing draw calls against ctx, using buildPipeline
// to construct a *pipeline.Pipeline the first time a given key is seen
// (s supplies the shader pair and topology; fixed-function options such as
// blend state and cull mode are chosen by buildPipeline).
func New(ctx *gpu.Context, buildPipeline func(key pipeline.Key, s *state.State) *pipeline.Pipeline) *Drawer {
	return &Drawer{
		ctx:           ctx,
		uniforms:      gpu.NewUniformCache(ctx.Device()),
		buildPipeline: buildPipeline,
	}
}

// PreMultipliedClearColor returns c with its RGB channels premultiplied by
// its alpha channel, the form the surface's colour attachment clear value
// requires under alphaMode=premultiplied.
func PreMultipliedClearColor(c [4]float32) [4]float32 {
	return [4]float32{c[0] * c[3], c[1] * c[3], c[2] * c[3], c[3]}
}

// Run walks root, issuing one render pass against the current surface
// texture. Returns without drawing (after still clearing the surface) if
// root is nil.
func (d *Drawer) Run(root *graph.Root) error {
	if err := d.ctx.BeginFrame(); err != nil {
		return err
	}

	if root != nil {
		root.ForEachLayer(func(_ int, layer *graph.Layer) {
			layer.ForEachBin(func(_ int, bin *graph.Bin) {
				d.drawBin(bin)
			})
		})
	}

	return d.ctx.EndFrame()
}

func (d *Drawer) drawBin(bin *graph.Bin) {
	bin.ForEachPipeline(func(key pipeline.Key, p *graph.Pipeline) {
		built, err := d.ctx.Pipeline(key, func() *pipeline.Pipeline {
			return d.buildPipeline(key, p.State)
		})
		if err != nil {
			log.Printf("draw: pipeline build failed for %+v: %v", key, err)
			return
		}
		d.ctx.BindPipeline(built)

		p.ForEachProjMatrixGroup(func(proj [16]float32, pg *graph.ProjMatrixGroup) {
			pg.ForEachModelMatrixGroup(func(model [16]float32, mg *graph.ModelMatrixGroup) {
				d.drawModelMatrixGroup(proj, model, mg)
			})
		})
	})
}

func (d *Drawer) drawModelMatrixGroup(proj, model [16]float32, mg *graph.ModelMatrixGroup) {
	uniforms, err := d.uniforms.Get(d.ctx.Queue(), proj, model)
	if err != nil {
		log.Printf("draw: uniform buffer allocation failed: %v", err)
		return
	}
	d.ctx.BindGroup(0, uniforms.BindGroup())

	mg.ForEachStateGroup(func(_ string, sg *graph.StateGroup) {
		sg.State.Apply(sg.State, proj[:], model[:])
		for _, shape := range sg.Shapes {
			d.drawShape(shape)
		}
		sg.State.Reset(sg.State)
	})
}

// drawable is satisfied by scenegraph.Geometry and scenegraph.Sphere: a
// mandatory points array to bind at vertex slot 0, optional normal/color/
// texcoord arrays to bind at slots 1-3 when present, plus the primitive
// sets to draw from them.
type drawable interface {
	PointsArray() *buffer.Float32Array
	NormalsArray() *buffer.Float32Array
	ColorsArray() *buffer.Float32Array
	TexCoordsArray() *buffer.Float32Array
	PrimitiveSets() []scenegraph.PrimitiveSet
}

// optionalVertexSlots pairs each optional attribute array with the vertex
// buffer slot the indexed draw contract reserves for it.
var optionalVertexSlots = []struct {
	slot uint32
	get  func(drawable) *buffer.Float32Array
}{
	{1, drawable.NormalsArray},
	{2, drawable.ColorsArray},
	{3, drawable.TexCoordsArray},
}

func (d *Drawer) drawShape(shape scenegraph.Element) {
	g, ok := shape.(drawable)
	if !ok {
		return
	}

	points := g.PointsArray()
	if points == nil {
		log.Printf("draw: shape has no points buffer, skipping")
		return
	}
	vertexBuffer, err := points.Materialize(d.ctx.Device(), d.ctx.Queue())
	if err != nil || vertexBuffer == nil {
		log.Printf("draw: missing mandatory vertex buffer, skipping primitive: %v", err)
		return
	}

	for _, opt := range optionalVertexSlots {
		array := opt.get(g)
		if array == nil {
			continue
		}
		buf, err := array.Materialize(d.ctx.Device(), d.ctx.Queue())
		if err != nil || buf == nil {
			log.Printf("draw: optional vertex buffer at slot %d failed to materialize, skipping it: %v", opt.slot, err)
			continue
		}
		d.ctx.BindVertexBuffer(opt.slot, buf)
	}

	for _, set := range g.PrimitiveSets() {
		if !set.Indexed || set.Indices == nil || set.NumIndices() == 0 {
			continue
		}
		indexBuffer, err := set.Indices.Materialize(d.ctx.Device(), d.ctx.Queue())
		if err != nil || indexBuffer == nil {
			log.Printf("draw: missing mandatory index buffer, skipping primitive: %v", err)
			continue
		}
		d.ctx.DrawIndexed(vertexBuffer, indexBuffer, set.Indices.IndexFormat(), uint32(set.NumIndices()))
	}
}
