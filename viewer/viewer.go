// Package viewer owns one surface's GPU context, scene, projection, and
// render graph, and schedules per-frame traversal. It is the one package in
// this module that is not strictly single-threaded internally — scheduling
// requests can arrive from another goroutine (e.g. a host animation-frame
// callback) — but the render itself, once started, runs update -> cull ->
// draw -> submit synchronously with no suspension points.
package viewer

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/perryiv/wgsg-go/cull"
	"github.com/perryiv/wgsg-go/draw"
	"github.com/perryiv/wgsg-go/gpu"
	"github.com/perryiv/wgsg-go/gpu/pipeline"
	"github.com/perryiv/wgsg-go/graph"
	"github.com/perryiv/wgsg-go/internal/profiler"
	"github.com/perryiv/wgsg-go/projection"
	"github.com/perryiv/wgsg-go/scenegraph"
	"github.com/perryiv/wgsg-go/state"
)

// ErrRenderInProgress is returned by Render when a previous call is still
// running.
var ErrRenderInProgress = errors.New("viewer: a render is already in progress")

// ErrInvalidViewport is returned by SetViewport for negative or zero
// dimensions.
var ErrInvalidViewport = errors.New("viewer: viewport width and height must be positive and non-negative origin")

// Viewport is an integer pixel rectangle.
type Viewport struct {
	X, Y, Width, Height int
}

// BuildPipeline constructs a *pipeline.Pipeline the first time a given
// pipeline key is encountered. Supplied by the application, since only it
// knows how to turn a render-state's shader pair into fixed-function
// pipeline options (blend state, cull mode, depth test).
type BuildPipeline func(key pipeline.Key, s *state.State) *pipeline.Pipeline

// Viewer owns a canvas-bound surface, its root scene node, a projection, a
// default render-state, and the render graph built for it every frame.
type Viewer struct {
	mu sync.Mutex

	ctx           *gpu.Context
	buildPipeline BuildPipeline
	defaultState  *state.State
	profiler      *profiler.Profiler

	scene       scenegraph.Element
	proj        projection.Projection
	viewport    Viewport
	graphRoot   *graph.Root
	cullVisitor *cull.Visitor
	drawer      *draw.Drawer

	rendering    bool
	pendingToken bool

	lost      bool
	lastFrame time.Time
}

// New creates a Viewer against an already-configured gpu.Context. defaultState
// is used by shapes with no explicit state reference.
func New(ctx *gpu.Context, defaultState *state.State, buildPipeline BuildPipeline) (*Viewer, error) {
	persp, err := projection.NewPerspective(0.785398, 1.0, 0.1, 1000.0)
	if err != nil {
		return nil, fmt.Errorf("viewer: default projection: %w", err)
	}

	root := graph.NewRoot()
	v := &Viewer{
		ctx:           ctx,
		buildPipeline: buildPipeline,
		defaultState:  defaultState,
		profiler:      profiler.New(),
		proj:          persp,
		graphRoot:     root,
		cullVisitor:   cull.New(root, defaultState, ctx.SurfaceFormat()),
		drawer:        draw.New(ctx, buildPipeline),
	}
	return v, nil
}

// SetScene replaces the scene graph root. A nil scene renders an empty
// frame (clears the surface, draws nothing).
func (v *Viewer) SetScene(scene scenegraph.Element) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.scene = scene
}

// SetProjection replaces the active projection. A nil projection restores
// the default 45-degree perspective.
func (v *Viewer) SetProjection(proj projection.Projection) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if proj == nil {
		persp, err := projection.NewPerspective(0.785398, v.aspectLocked(), 0.1, 1000.0)
		if err == nil {
			proj = persp
		}
	}
	v.proj = proj
}

func (v *Viewer) aspectLocked() float32 {
	if v.viewport.Height <= 0 {
		return 1.0
	}
	return float32(v.viewport.Width) / float32(v.viewport.Height)
}

// SetViewport resizes the surface and notifies the active projection of its
// new aspect ratio. Rejects negative origin or non-positive dimensions.
func (v *Viewer) SetViewport(vp Viewport) error {
	if vp.X < 0 || vp.Y < 0 || vp.Width <= 0 || vp.Height <= 0 {
		return ErrInvalidViewport
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	v.viewport = vp
	if err := v.ctx.Configure(uint32(vp.Width), uint32(vp.Height)); err != nil {
		return err
	}
	if v.proj != nil {
		return v.proj.SetAspect(float32(vp.Width) / float32(vp.Height))
	}
	return nil
}

// NotifyDeviceLost marks the viewer's device as lost. The next Render call
// returns without drawing; a subsequent call to Recover with a fresh
// gpu.Context resumes rendering with an empty pipeline cache.
func (v *Viewer) NotifyDeviceLost() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lost = true
}

// Recover installs a newly (re-)initialised gpu.Context after a device-lost
// event, invalidating every cached pipeline and uniform buffer so the next
// frame rebuilds them lazily.
func (v *Viewer) Recover(ctx *gpu.Context) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.ctx = ctx
	v.ctx.InvalidatePipelines()
	v.cullVisitor = cull.New(v.graphRoot, v.defaultState, ctx.SurfaceFormat())
	v.drawer = draw.New(ctx, v.buildPipeline)
	v.lost = false
}

// RequestRender hands a render callback to schedule, keeping at most one
// pending token: repeated calls before that callback runs are coalesced into
// one render. Typically schedule is a host animation-frame hook.
func (v *Viewer) RequestRender(schedule func(func())) {
	v.mu.Lock()
	if v.pendingToken {
		v.mu.Unlock()
		return
	}
	v.pendingToken = true
	v.mu.Unlock()

	schedule(func() {
		v.mu.Lock()
		v.pendingToken = false
		v.mu.Unlock()
		_ = v.Render()
	})
}

// CancelRender drops any pending render token requested via RequestRender.
// Has no effect on a render already in progress.
func (v *Viewer) CancelRender() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pendingToken = false
}

// Render runs one synchronous frame: update -> cull -> draw -> submit.
// Returns ErrRenderInProgress if another Render call has not yet returned.
// If the device has been marked lost, returns immediately without drawing.
func (v *Viewer) Render() error {
	v.mu.Lock()
	if v.rendering {
		v.mu.Unlock()
		return ErrRenderInProgress
	}
	if v.lost {
		v.mu.Unlock()
		return nil
	}
	v.rendering = true
	scene := v.scene
	v.mu.Unlock()

	defer func() {
		v.mu.Lock()
		v.rendering = false
		v.mu.Unlock()
	}()

	v.lastFrame = time.Now()

	// Dirty shapes (e.g. a Sphere whose parameters changed) are regenerated
	// as the cull traversal reaches them, so a separate top-level update
	// pass is unnecessary here.
	v.cullVisitor.Run(scene)

	if err := v.drawer.Run(v.graphRoot); err != nil {
		if errors.Is(err, gpu.ErrDeviceLost) {
			v.NotifyDeviceLost()
			return nil
		}
		return err
	}

	v.profiler.Tick()
	return nil
}

// SurfaceDescriptor is re-exported so callers building a Viewer do not need
// to import gpu directly just to create the surface it wraps.
type SurfaceDescriptor = wgpu.SurfaceDescriptor
