// Package pipeline wraps a wgpu.RenderPipeline together with the state
// needed to derive its cache key and to configure the fixed-function stages
// (depth test, blending, culling, topology) at registration time. There is
// no compute pipeline support: this module issues render passes only.
package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/perryiv/wgsg-go/gpu/shader"
)

// Key identifies a pipeline in the process-wide cache. Two states that
// produce the same Key are assumed to be able to share a compiled
// wgpu.RenderPipeline.
type Key struct {
	ShaderName    string
	Topology      wgpu.PrimitiveTopology
	SurfaceFormat wgpu.TextureFormat
}

// Pipeline pairs a vertex+fragment shader pair with the fixed-function
// state needed to build a wgpu.RenderPipeline, plus the compiled pipeline
// itself once registered.
type Pipeline struct {
	key      Key
	vertex   *shader.Shader
	fragment *shader.Shader

	depthTestEnabled    bool
	depthWriteEnabled   bool
	depthBias           int32
	depthBiasSlopeScale float32
	blendEnabled        bool
	blendState          *wgpu.BlendState
	cullMode            wgpu.CullMode
	topology            wgpu.PrimitiveTopology
	frontFace           wgpu.FrontFace
	writeMask           wgpu.ColorWriteMask

	compiled *wgpu.RenderPipeline
}

// Option configures a Pipeline at construction time.
type Option func(*Pipeline)

// WithDepthTest toggles the depth test and depth write stages.
func WithDepthTest(test, write bool) Option {
	return func(p *Pipeline) {
		p.depthTestEnabled = test
		p.depthWriteEnabled = write
	}
}

// WithDepthBias sets a constant and slope-scaled depth bias, typically used
// to avoid z-fighting between coplanar geometry.
func WithDepthBias(bias int32, slopeScale float32) Option {
	return func(p *Pipeline) {
		p.depthBias = bias
		p.depthBiasSlopeScale = slopeScale
	}
}

// WithBlend enables alpha blending using state. A nil state disables
// blending for this pipeline.
func WithBlend(enabled bool, state *wgpu.BlendState) Option {
	return func(p *Pipeline) {
		p.blendEnabled = enabled
		p.blendState = state
	}
}

// WithCullMode overrides the default CullModeNone.
func WithCullMode(mode wgpu.CullMode) Option {
	return func(p *Pipeline) { p.cullMode = mode }
}

// WithFrontFace overrides the default CCW winding.
func WithFrontFace(face wgpu.FrontFace) Option {
	return func(p *Pipeline) { p.frontFace = face }
}

// WithWriteMask overrides the default ColorWriteMaskAll.
func WithWriteMask(mask wgpu.ColorWriteMask) Option {
	return func(p *Pipeline) { p.writeMask = mask }
}

// New builds a Pipeline for the given vertex/fragment shader pair and
// surface format. topology and the shader's Name together form the cache
// key returned by Key(). The returned Pipeline is not yet backed by a
// compiled wgpu.RenderPipeline; call Compile once a Device is available.
func New(vertex, fragment *shader.Shader, topology wgpu.PrimitiveTopology, surfaceFormat wgpu.TextureFormat, opts ...Option) *Pipeline {
	p := &Pipeline{
		key: Key{
			ShaderName:    vertex.Name(),
			Topology:      topology,
			SurfaceFormat: surfaceFormat,
		},
		vertex:            vertex,
		fragment:          fragment,
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		cullMode:          wgpu.CullModeNone,
		topology:          topology,
		frontFace:         wgpu.FrontFaceCCW,
		writeMask:         wgpu.ColorWriteMaskAll,
		blendEnabled:      true,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Key returns this pipeline's cache key.
func (p *Pipeline) Key() Key {
	return p.key
}

// Vertex returns the vertex shader.
func (p *Pipeline) Vertex() *shader.Shader {
	return p.vertex
}

// Fragment returns the fragment shader.
func (p *Pipeline) Fragment() *shader.Shader {
	return p.fragment
}

// Topology returns the primitive topology this pipeline draws.
func (p *Pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

// Compiled returns the compiled wgpu.RenderPipeline, or nil if Compile has
// not yet been called.
func (p *Pipeline) Compiled() *wgpu.RenderPipeline {
	return p.compiled
}

// Compile creates the backing wgpu.RenderPipeline if it does not already
// exist. Idempotent: repeated calls after the first are no-ops.
func (p *Pipeline) Compile(device *wgpu.Device, depthFormat wgpu.TextureFormat, sampleCount uint32) error {
	if p.compiled != nil {
		return nil
	}

	vertexModule, err := p.vertex.Compile(device)
	if err != nil {
		return err
	}
	fragmentModule, err := p.fragment.Compile(device)
	if err != nil {
		return err
	}

	var blend *wgpu.BlendState
	if p.blendEnabled {
		blend = p.blendState
	}

	depthCompare := wgpu.CompareFunctionAlways
	if p.depthTestEnabled {
		depthCompare = wgpu.CompareFunctionLess
	}

	descriptor := &wgpu.RenderPipelineDescriptor{
		Label: p.key.ShaderName,
		Vertex: wgpu.VertexState{
			Module:     vertexModule,
			EntryPoint: p.vertex.EntryPoint(),
			Buffers:    p.vertex.VertexLayouts(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     fragmentModule,
			EntryPoint: p.fragment.EntryPoint(),
			Targets: []wgpu.ColorTargetState{{
				Format:    p.key.SurfaceFormat,
				WriteMask: p.writeMask,
				Blend:     blend,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.topology,
			FrontFace: p.frontFace,
			CullMode:  p.cullMode,
		},
		Multisample: wgpu.MultisampleState{
			Count: sampleCount,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:              depthFormat,
			DepthWriteEnabled:   p.depthWriteEnabled,
			DepthCompare:        depthCompare,
			DepthBias:           p.depthBias,
			DepthBiasSlopeScale: p.depthBiasSlopeScale,
			StencilFront:        wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilBack:         wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		},
	}

	compiled, err := device.CreateRenderPipeline(descriptor)
	if err != nil {
		return err
	}
	p.compiled = compiled
	return nil
}
