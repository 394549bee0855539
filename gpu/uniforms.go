package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/perryiv/wgsg-go/common"
)

// FrameUniforms owns the bind group 0 uniform buffers one drawable expects:
// binding 0 is the projection matrix, binding 1 is the model matrix. Both
// are 4x4 float32 matrices.
//
// A single shared FrameUniforms cannot serve every draw call in a frame:
// queue.WriteBuffer executes on the GPU timeline in call order, while the
// frame's draw commands all live in one command buffer submitted once at
// EndFrame, after every WriteBuffer call has already landed. Sharing one
// buffer would leave every draw reading whichever matrix was written last.
// The draw traversal therefore keeps one FrameUniforms per distinct
// (projection matrix, model matrix) pair it encounters (see UniformCache),
// persisted across frames, so each pair's bind group points at its own
// buffers.
type FrameUniforms struct {
	projectionBuffer *wgpu.Buffer
	modelBuffer      *wgpu.Buffer
	layout           *wgpu.BindGroupLayout
	bindGroup        *wgpu.BindGroup
}

const matrixByteSize = 16 * 4

// BindGroupLayoutDescriptor is the layout every shader pair must declare for
// group 0 to be compatible with NewFrameUniforms' bind group.
func BindGroupLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageVertex,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
			},
		},
	}
}

// NewFrameUniforms creates the projection/model uniform buffers and their
// bind group on device.
func NewFrameUniforms(device *wgpu.Device) (*FrameUniforms, error) {
	layout, err := device.CreateBindGroupLayout(BindGroupLayoutDescriptor())
	if err != nil {
		return nil, err
	}

	projectionBuffer, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Size:  matrixByteSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	modelBuffer, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Size:  matrixByteSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}

	bindGroup, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: projectionBuffer, Size: matrixByteSize},
			{Binding: 1, Buffer: modelBuffer, Size: matrixByteSize},
		},
	})
	if err != nil {
		return nil, err
	}

	return &FrameUniforms{
		projectionBuffer: projectionBuffer,
		modelBuffer:      modelBuffer,
		layout:           layout,
		bindGroup:        bindGroup,
	}, nil
}

// BindGroup returns the bind group to bind at group index 0.
func (u *FrameUniforms) BindGroup() *wgpu.BindGroup {
	return u.bindGroup
}

// SetProjection uploads matrix as the current projection matrix.
func (u *FrameUniforms) SetProjection(queue *wgpu.Queue, matrix []float32) {
	queue.WriteBuffer(u.projectionBuffer, 0, common.SliceToBytes(matrix))
}

// SetModel uploads matrix as the current model matrix.
func (u *FrameUniforms) SetModel(queue *wgpu.Queue, matrix []float32) {
	queue.WriteBuffer(u.modelBuffer, 0, common.SliceToBytes(matrix))
}

// Release frees the underlying GPU objects.
func (u *FrameUniforms) Release() {
	u.bindGroup.Release()
	u.layout.Release()
	u.modelBuffer.Release()
	u.projectionBuffer.Release()
}

// uniformKey identifies a distinct (projection matrix, model matrix) pair.
// The draw traversal uses one FrameUniforms per key, since every draw call
// in a frame shares one command buffer submitted after all of the frame's
// WriteBuffer calls have already executed.
type uniformKey struct {
	proj  [16]float32
	model [16]float32
}

// UniformCache hands out one FrameUniforms per distinct (projection, model)
// matrix pair, creating it on first use and reusing it across frames —
// render-graph buckets are themselves keyed by matrix value (see the graph
// package), so the same pair recurring frame to frame is the common case,
// not an edge case.
type UniformCache struct {
	device  *wgpu.Device
	entries map[uniformKey]*FrameUniforms
}

// NewUniformCache returns an empty cache bound to device.
func NewUniformCache(device *wgpu.Device) *UniformCache {
	return &UniformCache{device: device, entries: make(map[uniformKey]*FrameUniforms)}
}

// Get returns the FrameUniforms for (proj, model), creating and uploading
// it on first use.
func (c *UniformCache) Get(queue *wgpu.Queue, proj, model [16]float32) (*FrameUniforms, error) {
	key := uniformKey{proj: proj, model: model}
	if u, ok := c.entries[key]; ok {
		return u, nil
	}
	u, err := NewFrameUniforms(c.device)
	if err != nil {
		return nil, err
	}
	u.SetProjection(queue, proj[:])
	u.SetModel(queue, model[:])
	c.entries[key] = u
	return u, nil
}

// Reset releases every cached FrameUniforms and empties the cache. Nothing in
// this module calls it: Viewer.Recover replaces the Drawer, and with it the
// cache, without releasing the old entries.
func (c *UniformCache) Reset() {
	for _, u := range c.entries {
		u.Release()
	}
	c.entries = make(map[uniformKey]*FrameUniforms)
}
