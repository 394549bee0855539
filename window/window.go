// Package window provides a minimal platform window: it owns the native
// surface handle a gpu.Context configures against, pumps the host event
// loop, and forwards input and resize events to callbacks the application
// registers. It has no knowledge of scene graphs, render graphs, or the
// viewer package — a demo wires a Window to a viewer.Viewer itself.
package window

import (
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

// UpdateCallback is invoked once per ProcessMessages call, after events for
// that iteration have been pumped.
type UpdateCallback func()

// ResizeCallback receives the new framebuffer size in pixels.
type ResizeCallback func(width, height int)

// ScrollCallback receives the vertical scroll delta for one event.
type ScrollCallback func(deltaY float32)

// KeyCallback receives a platform key code.
type KeyCallback func(key uint32)

// MouseButtonCallback receives the cursor position, in pixels, at the time
// of the button event.
type MouseButtonCallback func(x, y int32)

// MouseMoveCallback receives the cursor's current position in pixels.
type MouseMoveCallback func(x, y int32)

// Window is a native, resizable window suitable as a WebGPU render target.
type Window interface {
	SetUpdateCallback(cb UpdateCallback)
	SetResizeCallback(cb ResizeCallback)
	SetScrollCallback(cb ScrollCallback)
	SetKeyDownCallback(cb KeyCallback)
	SetKeyUpCallback(cb KeyCallback)
	SetMiddleMouseDownCallback(cb MouseButtonCallback)
	SetMiddleMouseUpCallback(cb MouseButtonCallback)
	SetMouseMoveCallback(cb MouseMoveCallback)

	// SurfaceDescriptor returns the platform-specific descriptor a
	// gpu.Context uses to create its rendering surface.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	IsRunning() bool
	Close() error

	// ProcessMessages pumps one iteration of the host event loop and
	// invokes the update callback, if set. Returns false once the window
	// should close.
	ProcessMessages() bool

	Width() int
	Height() int
}

// engineWindow is the platform-independent half of Window; newPlatformWindow
// fills in internalWindow with the platform backend.
type engineWindow struct {
	title                         string
	width, height       int
	maxWidth, maxHeight int
	minWidth, minHeight int
	internalWindow      interface{}

	onUpdate          UpdateCallback
	onResize          ResizeCallback
	onScroll          ScrollCallback
	onKeyDown         KeyCallback
	onKeyUp           KeyCallback
	onMiddleMouseDown MouseButtonCallback
	onMiddleMouseUp   MouseButtonCallback
	onMouseMove       MouseMoveCallback
}

var _ Window = (*engineWindow)(nil)

// NewWindow creates a platform window configured by opts, applying the same
// defaults for any dimension left unset: 1280x720 default size, 600x200
// minimum, 1600x1200 maximum.
func NewWindow(opts ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:     "wgsg",
		width:     1280,
		height:    720,
		maxWidth:  1600,
		maxHeight: 1200,
		minWidth:  600,
		minHeight: 200,
	}
	for _, opt := range opts {
		opt(w)
	}

	runtime.LockOSThread()
	if err := newPlatformWindow(w); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *engineWindow) SetUpdateCallback(cb UpdateCallback)     { w.onUpdate = cb }
func (w *engineWindow) SetResizeCallback(cb ResizeCallback)     { w.onResize = cb }
func (w *engineWindow) SetScrollCallback(cb ScrollCallback)     { w.onScroll = cb }
func (w *engineWindow) SetKeyDownCallback(cb KeyCallback)       { w.onKeyDown = cb }
func (w *engineWindow) SetKeyUpCallback(cb KeyCallback)         { w.onKeyUp = cb }

func (w *engineWindow) SetMiddleMouseDownCallback(cb MouseButtonCallback) {
	w.onMiddleMouseDown = cb
}

func (w *engineWindow) SetMiddleMouseUpCallback(cb MouseButtonCallback) {
	w.onMiddleMouseUp = cb
}

func (w *engineWindow) SetMouseMoveCallback(cb MouseMoveCallback) { w.onMouseMove = cb }

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() bool {
	running := platformProcessMessages(w)
	if w.onUpdate != nil {
		w.onUpdate()
	}
	runtime.Gosched()
	return running
}

func (w *engineWindow) Width() int  { return w.width }
func (w *engineWindow) Height() int { return w.height }
