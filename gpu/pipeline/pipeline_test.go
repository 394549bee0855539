package pipeline

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"

	"github.com/perryiv/wgsg-go/gpu/shader"
)

func testShaderPair() (*shader.Shader, *shader.Shader) {
	vertex := shader.New("solid", shader.StageVertex, "// vertex")
	fragment := shader.New("solid", shader.StageFragment, "// fragment")
	return vertex, fragment
}

func TestNewKeyDerivation(t *testing.T) {
	vertex, fragment := testShaderPair()
	p := New(vertex, fragment, wgpu.PrimitiveTopologyTriangleList, wgpu.TextureFormatBGRA8Unorm)

	assert.Equal(t, Key{
		ShaderName:    "solid",
		Topology:      wgpu.PrimitiveTopologyTriangleList,
		SurfaceFormat: wgpu.TextureFormatBGRA8Unorm,
	}, p.Key())
	assert.Equal(t, vertex, p.Vertex())
	assert.Equal(t, fragment, p.Fragment())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Nil(t, p.Compiled())
}

func TestNewDefaultsDepthAndBlendEnabled(t *testing.T) {
	vertex, fragment := testShaderPair()
	p := New(vertex, fragment, wgpu.PrimitiveTopologyTriangleList, wgpu.TextureFormatBGRA8Unorm)

	assert.True(t, p.depthTestEnabled)
	assert.True(t, p.depthWriteEnabled)
	assert.True(t, p.blendEnabled)
	assert.NotNil(t, p.blendState)
	assert.Equal(t, wgpu.CullModeNone, p.cullMode)
	assert.Equal(t, wgpu.FrontFaceCCW, p.frontFace)
	assert.Equal(t, wgpu.ColorWriteMaskAll, p.writeMask)
}

func TestWithDepthTestDisables(t *testing.T) {
	vertex, fragment := testShaderPair()
	p := New(vertex, fragment, wgpu.PrimitiveTopologyTriangleList, wgpu.TextureFormatBGRA8Unorm,
		WithDepthTest(false, false))

	assert.False(t, p.depthTestEnabled)
	assert.False(t, p.depthWriteEnabled)
}

func TestWithBlendDisabled(t *testing.T) {
	vertex, fragment := testShaderPair()
	p := New(vertex, fragment, wgpu.PrimitiveTopologyTriangleList, wgpu.TextureFormatBGRA8Unorm,
		WithBlend(false, nil))

	assert.False(t, p.blendEnabled)
	assert.Nil(t, p.blendState)
}

func TestWithCullModeAndFrontFaceAndWriteMask(t *testing.T) {
	vertex, fragment := testShaderPair()
	p := New(vertex, fragment, wgpu.PrimitiveTopologyTriangleList, wgpu.TextureFormatBGRA8Unorm,
		WithCullMode(wgpu.CullModeBack),
		WithFrontFace(wgpu.FrontFaceCW),
		WithWriteMask(wgpu.ColorWriteMaskRed),
	)

	assert.Equal(t, wgpu.CullModeBack, p.cullMode)
	assert.Equal(t, wgpu.FrontFaceCW, p.frontFace)
	assert.Equal(t, wgpu.ColorWriteMaskRed, p.writeMask)
}

func TestWithDepthBias(t *testing.T) {
	vertex, fragment := testShaderPair()
	p := New(vertex, fragment, wgpu.PrimitiveTopologyTriangleList, wgpu.TextureFormatBGRA8Unorm,
		WithDepthBias(4, 1.5))

	assert.Equal(t, int32(4), p.depthBias)
	assert.Equal(t, float32(1.5), p.depthBiasSlopeScale)
}
