// Package gpu wraps the explicit GPU object model (instance, adapter,
// device, queue, surface) and the per-frame render pass lifecycle used by
// the draw traversal. It owns the process-wide pipeline cache and the
// uniform buffers used to upload projection and model matrices.
package gpu

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/perryiv/wgsg-go/common"
	"github.com/perryiv/wgsg-go/gpu/pipeline"
)

// ErrFrameInProgress is returned by BeginFrame when a previous frame's
// surface texture has not yet been presented.
var ErrFrameInProgress = errors.New("gpu: previous frame surface not yet presented")

// ErrDeviceLost identifies a lost GPU device. The device-lost callback
// reports a loss through LostHandler's reason and message, not through this
// value, and no function in this package returns it.
var ErrDeviceLost = errors.New("gpu: device lost")

// SurfaceDescriptor carries whatever platform handle wgpu needs to create a
// Surface; it is a thin passthrough to wgpu.SurfaceDescriptor so this
// package stays windowing-library agnostic.
type SurfaceDescriptor = wgpu.SurfaceDescriptor

// LostHandler is invoked when the device reports itself lost. reason and
// message come directly from the driver.
type LostHandler func(reason wgpu.DeviceLostReason, message string)

// Context owns the explicit GPU objects for one surface: instance, adapter,
// device, queue, swapchain configuration, depth buffer, and the render
// pipeline cache. One Context serves one Viewer.
type Context struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface

	width, height uint32
	surfaceFormat wgpu.TextureFormat
	depthFormat   wgpu.TextureFormat
	sampleCount   uint32

	depthTexture     *wgpu.Texture
	depthTextureView *wgpu.TextureView

	passDescriptor *wgpu.RenderPassDescriptor

	pipelines map[pipeline.Key]*pipeline.Pipeline

	onLost LostHandler

	frame *frameState
}

type frameState struct {
	encoder *wgpu.CommandEncoder
	pass    *wgpu.RenderPassEncoder
	surface *wgpu.SurfaceTexture
	view    *wgpu.TextureView
}

// New creates the instance, surface, adapter, and device, and requests a
// queue. forceFallbackAdapter requests a software adapter, useful for CI.
func New(descriptor *SurfaceDescriptor, forceFallbackAdapter bool, sampleCount uint32, onLost LostHandler) (*Context, error) {
	runtime.LockOSThread()

	instance := wgpu.CreateInstance(nil)

	surface := instance.CreateSurface(descriptor)

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface:    surface,
		ForceFallbackAdapter: forceFallbackAdapter,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: request adapter: %w", err)
	}

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.Limits{MaxBindGroups: 8},
		},
		DeviceLostCallback: func(reason wgpu.DeviceLostReason, message string) {
			if onLost != nil {
				onLost(reason, message)
			}
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: request device: %w", err)
	}

	sampleCount = common.Coalesce(sampleCount, 1)

	return &Context{
		instance:    instance,
		adapter:     adapter,
		device:      device,
		queue:       device.GetQueue(),
		surface:     surface,
		sampleCount: sampleCount,
		depthFormat: wgpu.TextureFormatDepth24Plus,
		onLost:      onLost,
		pipelines:   make(map[pipeline.Key]*pipeline.Pipeline),
	}, nil
}

// Device returns the underlying wgpu.Device.
func (c *Context) Device() *wgpu.Device {
	return c.device
}

// Queue returns the underlying wgpu.Queue.
func (c *Context) Queue() *wgpu.Queue {
	return c.queue
}

// SurfaceFormat returns the format the surface was configured with.
func (c *Context) SurfaceFormat() wgpu.TextureFormat {
	return c.surfaceFormat
}

// Configure (re)configures the surface at the given pixel dimensions,
// rebuilding the depth buffer and cached render pass descriptor while keeping
// any clear colour set by SetClearColor. Call this on first use and again on
// every resize.
func (c *Context) Configure(width, height uint32) error {
	c.width, c.height = width, height

	caps := c.surface.GetCapabilities(c.adapter)
	c.surfaceFormat = caps.Formats[0]

	c.surface.Configure(c.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      c.surfaceFormat,
		Width:       width,
		Height:      height,
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   wgpu.CompositeAlphaModePreMultiplied,
	})

	if c.depthTextureView != nil {
		c.depthTextureView.Release()
	}
	if c.depthTexture != nil {
		c.depthTexture.Release()
	}

	depthTexture, err := c.device.CreateTexture(&wgpu.TextureDescriptor{
		Size:          wgpu.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		Format:        c.depthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
		SampleCount:   c.sampleCount,
		MipLevelCount: 1,
	})
	if err != nil {
		return fmt.Errorf("gpu: create depth texture: %w", err)
	}
	c.depthTexture = depthTexture
	c.depthTextureView = depthTexture.CreateView(nil)

	clearValue := wgpu.Color{R: 0, G: 0, B: 0, A: 0}
	if c.passDescriptor != nil {
		clearValue = c.passDescriptor.ColorAttachments[0].ClearValue
	}
	c.passDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: clearValue,
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            c.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}

	return nil
}

// SetClearColor overrides the premultiplied clear colour used on the next
// frame's colour attachment.
func (c *Context) SetClearColor(premultiplied wgpu.Color) {
	if c.passDescriptor != nil {
		c.passDescriptor.ColorAttachments[0].ClearValue = premultiplied
	}
}

// Pipeline returns the cached pipeline for key, compiling and caching it via
// build if absent.
func (c *Context) Pipeline(key pipeline.Key, build func() *pipeline.Pipeline) (*pipeline.Pipeline, error) {
	if p, ok := c.pipelines[key]; ok {
		return p, nil
	}
	p := build()
	if err := p.Compile(c.device, c.depthFormat, c.sampleCount); err != nil {
		return nil, err
	}
	c.pipelines[key] = p
	return p, nil
}

// InvalidatePipelines drops the entire pipeline cache, forcing every
// pipeline to recompile on next use. Called after device-lost recovery.
func (c *Context) InvalidatePipelines() {
	c.pipelines = make(map[pipeline.Key]*pipeline.Pipeline)
}
