// Package shader defines an opaque handle to a compiled shader module plus
// the metadata a pipeline needs to derive a pipeline key and bind group
// layouts. Shader source text is supplied by the caller; this package never
// parses or introspects WGSL.
package shader

import "github.com/cogentcore/webgpu/wgpu"

// Stage identifies which programmable stage a Shader targets.
type Stage int

const (
	// StageVertex marks a vertex shader.
	StageVertex Stage = iota
	// StageFragment marks a fragment shader.
	StageFragment
)

// Shader is an opaque reference to WGSL source plus the metadata a pipeline
// needs to build a wgpu.ShaderModule and derive a pipeline key. Two Shaders
// with the same Name are assumed by the pipeline cache to be interchangeable.
type Shader struct {
	name                string
	stage               Stage
	source              string
	entryPoint          string
	vertexLayouts       []wgpu.VertexBufferLayout
	bindGroupLayouts    map[int]wgpu.BindGroupLayoutDescriptor
	module              *wgpu.ShaderModule
}

// Option configures a Shader at construction time.
type Option func(*Shader)

// WithVertexLayouts attaches the vertex buffer layouts this shader expects
// at binding slot 0, 1, 2, ... Ignored for shaders of any other stage.
func WithVertexLayouts(layouts ...wgpu.VertexBufferLayout) Option {
	return func(s *Shader) {
		if s.stage == StageVertex {
			s.vertexLayouts = layouts
		}
	}
}

// WithBindGroupLayout registers the bind group layout this shader expects
// at the given group index.
func WithBindGroupLayout(group int, descriptor wgpu.BindGroupLayoutDescriptor) Option {
	return func(s *Shader) {
		if s.bindGroupLayouts == nil {
			s.bindGroupLayouts = make(map[int]wgpu.BindGroupLayoutDescriptor)
		}
		s.bindGroupLayouts[group] = descriptor
	}
}

// WithEntryPoint overrides the default entry point name ("vs_main" for
// vertex shaders, "fs_main" for fragment shaders).
func WithEntryPoint(name string) Option {
	return func(s *Shader) { s.entryPoint = name }
}

// New builds a Shader handle. name identifies the shader for pipeline
// caching and logging; source is the raw WGSL text; stage selects the
// programmable stage it targets. The wgpu.ShaderModule is not created here —
// call Compile once a Device is available.
func New(name string, stage Stage, source string, opts ...Option) *Shader {
	s := &Shader{
		name:   name,
		stage:  stage,
		source: source,
	}
	if stage == StageVertex {
		s.entryPoint = "vs_main"
	} else {
		s.entryPoint = "fs_main"
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the shader's cache-key identifier.
func (s *Shader) Name() string {
	return s.name
}

// Stage returns the programmable stage this shader targets.
func (s *Shader) Stage() Stage {
	return s.stage
}

// Source returns the raw WGSL source text.
func (s *Shader) Source() string {
	return s.source
}

// EntryPoint returns the entry point function name within Source.
func (s *Shader) EntryPoint() string {
	return s.entryPoint
}

// VertexLayouts returns the vertex buffer layouts this shader expects.
// Empty for fragment shaders.
func (s *Shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

// BindGroupLayoutDescriptor returns the layout descriptor registered for
// group, and whether one was registered at all.
func (s *Shader) BindGroupLayoutDescriptor(group int) (wgpu.BindGroupLayoutDescriptor, bool) {
	d, ok := s.bindGroupLayouts[group]
	return d, ok
}

// BindGroupLayoutDescriptors returns every registered group index, in no
// particular order.
func (s *Shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayouts
}

// Compile creates (or returns the already-created) wgpu.ShaderModule for
// this shader on device. Idempotent.
func (s *Shader) Compile(device *wgpu.Device) (*wgpu.ShaderModule, error) {
	if s.module != nil {
		return s.module, nil
	}
	module, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          s.name,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: s.source},
	})
	if err != nil {
		return nil, err
	}
	s.module = module
	return module, nil
}

// Module returns the compiled module, or nil if Compile has not been called.
func (s *Shader) Module() *wgpu.ShaderModule {
	return s.module
}
