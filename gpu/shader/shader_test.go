package shader

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestNewVertexShaderDefaultEntryPoint(t *testing.T) {
	s := New("solid", StageVertex, "// vertex source")
	assert.Equal(t, "solid", s.Name())
	assert.Equal(t, StageVertex, s.Stage())
	assert.Equal(t, "// vertex source", s.Source())
	assert.Equal(t, "vs_main", s.EntryPoint())
	assert.Nil(t, s.Module())
}

func TestNewFragmentShaderDefaultEntryPoint(t *testing.T) {
	s := New("solid", StageFragment, "// fragment source")
	assert.Equal(t, "fs_main", s.EntryPoint())
}

func TestWithEntryPointOverride(t *testing.T) {
	s := New("solid", StageVertex, "", WithEntryPoint("main"))
	assert.Equal(t, "main", s.EntryPoint())
}

func TestWithVertexLayoutsOnlyAppliesToVertexShaders(t *testing.T) {
	layout := wgpu.VertexBufferLayout{ArrayStride: 12}
	s := New("solid", StageVertex, "", WithVertexLayouts(layout))
	assert.Equal(t, []wgpu.VertexBufferLayout{layout}, s.VertexLayouts())

	f := New("solid", StageFragment, "", WithVertexLayouts(layout))
	assert.Empty(t, f.VertexLayouts())
}

func TestBindGroupLayoutRegistration(t *testing.T) {
	descriptor := wgpu.BindGroupLayoutDescriptor{Label: "frame"}
	s := New("solid", StageVertex, "", WithBindGroupLayout(0, descriptor))

	got, ok := s.BindGroupLayoutDescriptor(0)
	assert.True(t, ok)
	assert.Equal(t, descriptor, got)

	_, ok = s.BindGroupLayoutDescriptor(1)
	assert.False(t, ok)

	assert.Len(t, s.BindGroupLayoutDescriptors(), 1)
}
