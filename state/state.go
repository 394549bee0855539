// Package state defines the render-state value object: a named bucket key
// plus the shader/topology pair a pipeline is built from, and the optional
// apply/reset hooks the draw traversal invokes around a state group's
// shapes.
package state

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/perryiv/wgsg-go/gpu/pipeline"
	"github.com/perryiv/wgsg-go/gpu/shader"
)

// ApplyFunc is invoked once before the draws of every shape sharing a state,
// with the currently bound projection and model matrices.
type ApplyFunc func(s *State, projMatrix, modelMatrix []float32)

// ResetFunc is invoked once after the draws of every shape sharing a state.
type ResetFunc func(s *State)

// State is a value object identified by a stable name, used both as the
// innermost render-graph bucket key and as the carrier for the shader pair,
// topology, and draw-order fields a shape's pipeline is built from.
type State struct {
	Name     string
	Layer    int
	Bin      int
	Clipped  bool
	Vertex   *shader.Shader
	Fragment *shader.Shader
	Topology wgpu.PrimitiveTopology

	Apply ApplyFunc
	Reset ResetFunc
}

// Option configures a State at construction time.
type Option func(*State)

// WithLayer overrides the default layer of 0.
func WithLayer(layer int) Option {
	return func(s *State) { s.Layer = layer }
}

// WithBin overrides the default bin of 0.
func WithBin(bin int) Option {
	return func(s *State) { s.Bin = bin }
}

// WithClipped marks the state as belonging to the clipped bucket split.
func WithClipped(clipped bool) Option {
	return func(s *State) { s.Clipped = clipped }
}

// WithTopology overrides the default TriangleList topology.
func WithTopology(topology wgpu.PrimitiveTopology) Option {
	return func(s *State) { s.Topology = topology }
}

// WithApplyReset attaches the apply/reset hooks invoked around this state's
// shapes during the draw traversal.
func WithApplyReset(apply ApplyFunc, reset ResetFunc) Option {
	return func(s *State) {
		s.Apply = apply
		s.Reset = reset
	}
}

// New constructs a State. name is the stable bucket key; two states sharing
// a name within one frame are assumed interchangeable. vertex and fragment
// must not be nil.
func New(name string, vertex, fragment *shader.Shader, opts ...Option) *State {
	s := &State{
		Name:     name,
		Vertex:   vertex,
		Fragment: fragment,
		Topology: wgpu.PrimitiveTopologyTriangleList,
		Apply:    func(*State, []float32, []float32) {},
		Reset:    func(*State) {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PipelineKey derives the tuple this state's pipeline is cached under. Two
// states with the same key share a compiled pipeline even if their names
// differ.
func (s *State) PipelineKey(surfaceFormat wgpu.TextureFormat) pipeline.Key {
	return pipeline.Key{
		ShaderName:    s.Vertex.Name(),
		Topology:      s.Topology,
		SurfaceFormat: surfaceFormat,
	}
}

// Default returns the fallback state used by shapes with no explicit state
// reference: layer 0, bin 0, unclipped, a solid-colour shader pair.
func Default(vertex, fragment *shader.Shader) *State {
	return New("default", vertex, fragment)
}
