// Command demo wires a small scene graph (a group holding a handful of
// transformed spheres) through a GLFW window to a GPU surface, using the
// viewer package to schedule and run one frame per window update.
package main

import (
	"log"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/perryiv/wgsg-go/common"
	"github.com/perryiv/wgsg-go/draw"
	"github.com/perryiv/wgsg-go/gpu"
	"github.com/perryiv/wgsg-go/gpu/pipeline"
	"github.com/perryiv/wgsg-go/gpu/shader"
	"github.com/perryiv/wgsg-go/scenegraph"
	"github.com/perryiv/wgsg-go/state"
	"github.com/perryiv/wgsg-go/viewer"
	"github.com/perryiv/wgsg-go/window"
)

// navState tracks which WASD/QE keys are currently held, and the
// accumulated pan offset they drive. This is deliberately the entire
// navigation model the demo carries — the core modules promise nothing
// beyond an opaque view/model matrix, so the demo owns panning itself.
type navState struct {
	held   map[uint32]bool
	offset common.Vec3
}

func newNavState() *navState {
	return &navState{held: make(map[uint32]bool)}
}

func (n *navState) step(speed float32) {
	if n.held[common.KeyA] {
		n.offset.X -= speed
	}
	if n.held[common.KeyD] {
		n.offset.X += speed
	}
	if n.held[common.KeyW] {
		n.offset.Y += speed
	}
	if n.held[common.KeyS] {
		n.offset.Y -= speed
	}
	if n.held[common.KeyQ] {
		n.offset.Z -= speed
	}
	if n.held[common.KeyE] {
		n.offset.Z += speed
	}
}

func main() {
	cfg, err := loadConfig("demo.yaml")
	if err != nil {
		log.Fatalf("demo: %v", err)
	}

	win, err := window.NewWindow(
		window.WithTitle(cfg.Title),
		window.WithWidth(cfg.Width),
		window.WithHeight(cfg.Height),
	)
	if err != nil {
		log.Fatalf("demo: create window: %v", err)
	}

	// Forward-declared so the device-lost callback can reach the viewer it
	// is installed alongside; the callback is only ever invoked after New
	// below returns, once v has been assigned.
	var v *viewer.Viewer

	ctx, err := gpu.New(win.SurfaceDescriptor(), false, 1, func(reason wgpu.DeviceLostReason, message string) {
		log.Printf("demo: device lost (%v): %s", reason, message)
		if v != nil {
			v.NotifyDeviceLost()
		}
	})
	if err != nil {
		log.Fatalf("demo: create gpu context: %v", err)
	}
	if err := ctx.Configure(uint32(win.Width()), uint32(win.Height())); err != nil {
		log.Fatalf("demo: configure surface: %v", err)
	}
	premultiplied := draw.PreMultipliedClearColor([4]float32{cfg.Clear.R, cfg.Clear.G, cfg.Clear.B, cfg.Clear.A})
	ctx.SetClearColor(wgpu.Color{
		R: float64(premultiplied[0]), G: float64(premultiplied[1]),
		B: float64(premultiplied[2]), A: float64(premultiplied[3]),
	})

	defaultState := buildDefaultState()

	v, err = viewer.New(ctx, defaultState, buildPipeline)
	if err != nil {
		log.Fatalf("demo: create viewer: %v", err)
	}
	if err := v.SetViewport(viewer.Viewport{Width: win.Width(), Height: win.Height()}); err != nil {
		log.Fatalf("demo: set viewport: %v", err)
	}
	navRoot, scene := buildScene(defaultState)
	v.SetScene(scene)

	win.SetResizeCallback(func(width, height int) {
		if width <= 0 || height <= 0 {
			return
		}
		if err := v.SetViewport(viewer.Viewport{Width: width, Height: height}); err != nil {
			log.Printf("demo: resize: %v", err)
		}
	})

	nav := newNavState()
	win.SetKeyDownCallback(func(key uint32) { nav.held[key] = true })
	win.SetKeyUpCallback(func(key uint32) { nav.held[key] = false })

	log.Println("demo: running, WASD/QE pans the scene, Escape quits")
	for win.ProcessMessages() {
		nav.step(0.05)

		var matrix [16]float32
		common.Identity(matrix[:])
		matrix[12], matrix[13], matrix[14] = nav.offset.X, nav.offset.Y, nav.offset.Z
		navRoot.SetMatrix(matrix[:])

		v.RequestRender(func(render func()) { render() })
	}
}

// buildDefaultState constructs the one render-state every shape in this
// demo shares: a compiled solid-colour shader pair with the uniform bind
// group layout the draw traversal's FrameUniforms expects at group 0.
func buildDefaultState() *state.State {
	vertexLayout := wgpu.VertexBufferLayout{
		ArrayStride: 3 * 4,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
		},
	}

	vertex := shader.New("demo_solid", shader.StageVertex, solidVertexShaderSource,
		shader.WithVertexLayouts(vertexLayout),
		shader.WithBindGroupLayout(0, gpu.BindGroupLayoutDescriptor()),
	)
	fragment := shader.New("demo_solid", shader.StageFragment, solidFragmentShaderSource)

	return state.New("solid", vertex, fragment)
}

// buildPipeline is the viewer.BuildPipeline hook: it turns a render-state's
// shader pair and topology into a fixed-function pipeline description.
func buildPipeline(key pipeline.Key, s *state.State) *pipeline.Pipeline {
	return pipeline.New(s.Vertex, s.Fragment, key.Topology, key.SurfaceFormat)
}

// buildScene constructs a group holding four spheres at different offsets,
// all with subdivision depth 2 and all sharing defaultState, wrapped in a navRoot
// Transform the caller repositions every frame in response to WASD/QE.
func buildScene(defaultState *state.State) (navRoot *scenegraph.Node, scene scenegraph.Element) {
	var identity [16]float32
	common.Identity(identity[:])
	navRoot = scenegraph.NewTransform(identity[:])

	offsets := []common.Vec3{
		{X: -3, Y: 0, Z: 0},
		{X: -1, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 3, Y: 0, Z: 0},
	}

	for i, offset := range offsets {
		sphere := scenegraph.NewSphere(common.Vec3{}, 0.8, 2)
		sphere.SetState(defaultState)

		var matrix [16]float32
		common.Identity(matrix[:])
		matrix[12], matrix[13], matrix[14] = offset.X, offset.Y, offset.Z
		transform := scenegraph.NewTransform(matrix[:])

		if err := transform.AddChild(sphere); err != nil {
			log.Fatalf("demo: add sphere %d: %v", i, err)
		}
		if err := navRoot.AddChild(transform); err != nil {
			log.Fatalf("demo: add transform %d: %v", i, err)
		}
	}

	return navRoot, navRoot
}
