package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/perryiv/wgsg-go/gpu/pipeline"
)

// BeginFrame acquires the next swapchain texture and opens a single render
// pass against it. It returns ErrFrameInProgress if a prior frame's texture
// has not yet been presented; exactly one render pass is produced per call,
// matching the one-pass-per-frame contract the draw traversal relies on.
func (c *Context) BeginFrame() error {
	if c.frame != nil {
		return ErrFrameInProgress
	}

	surfaceTexture, err := c.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	view := surfaceTexture.CreateView(nil)

	encoder, err := c.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}

	c.passDescriptor.ColorAttachments[0].View = view

	pass := encoder.BeginRenderPass(c.passDescriptor)

	c.frame = &frameState{
		encoder: encoder,
		pass:    pass,
		surface: surfaceTexture,
		view:    view,
	}
	return nil
}

// Viewport sets the active viewport and scissor rect for the current frame.
func (c *Context) Viewport(x, y, width, height float32) {
	if c.frame == nil {
		return
	}
	c.frame.pass.SetViewport(x, y, width, height, 0, 1)
	c.frame.pass.SetScissorRect(uint32(x), uint32(y), uint32(width), uint32(height))
}

// BindPipeline binds p as the active pipeline for subsequent draw calls.
func (c *Context) BindPipeline(p *pipeline.Pipeline) {
	c.frame.pass.SetPipeline(p.Compiled())
}

// BindGroup binds bindGroup at the given group index.
func (c *Context) BindGroup(group uint32, bindGroup *wgpu.BindGroup) {
	c.frame.pass.SetBindGroup(group, bindGroup, nil)
}

// BindVertexBuffer binds buf at the given vertex buffer slot for the
// current frame's render pass. The draw traversal uses this for the
// optional normal/color/texcoord attributes (slots 1-3); slot 0 is always
// bound by DrawIndexed itself.
func (c *Context) BindVertexBuffer(slot uint32, buf *wgpu.Buffer) {
	c.frame.pass.SetVertexBuffer(slot, buf, 0, wgpu.WholeSize)
}

// DrawIndexed issues one indexed draw call against the currently bound
// pipeline, vertex buffer, and index buffer. Callers wanting the optional
// normal/color/texcoord attributes bound must call BindVertexBuffer for
// slots 1-3 before this.
func (c *Context) DrawIndexed(vertexBuffer *wgpu.Buffer, indexBuffer *wgpu.Buffer, indexFormat wgpu.IndexFormat, indexCount uint32) {
	pass := c.frame.pass
	pass.SetVertexBuffer(0, vertexBuffer, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(indexBuffer, indexFormat, 0, wgpu.WholeSize)
	pass.DrawIndexed(indexCount, 1, 0, 0, 0)
}

// EndFrame closes the render pass, submits the command buffer, and presents
// the swapchain texture. The frame handle is cleared regardless of error so
// a failed frame does not permanently wedge BeginFrame.
func (c *Context) EndFrame() error {
	f := c.frame
	c.frame = nil
	if f == nil {
		return nil
	}

	f.pass.End()
	commandBuffer, err := f.encoder.Finish(nil)
	f.encoder.Release()
	if err != nil {
		f.view.Release()
		return err
	}

	c.queue.Submit(commandBuffer)
	commandBuffer.Release()

	c.surface.Present()
	f.view.Release()

	return nil
}
