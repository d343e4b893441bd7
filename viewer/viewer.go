// Package viewer is the layout-to-scene synchronization engine: it owns
// the force simulation, binds graph entities to renderable primitives,
// synchronizes solved positions into the scene after every step, and
// drives rendering in static or dynamic mode.
//
// A View and everything it owns is confined to a single goroutine; the
// frame loop in driver.go interleaves simulation steps, rendering, and
// externally submitted events on that goroutine.
package viewer

import (
	"context"
	"fmt"
	"log"

	"github.com/toposcope/toposcope/ingest"
	"github.com/toposcope/toposcope/models"
	"github.com/toposcope/toposcope/physics"
	"github.com/toposcope/toposcope/render"
	"github.com/toposcope/toposcope/scene"
	"github.com/toposcope/toposcope/theme"
)

// Depth planes for the two primitive kinds. Nodes render in front of
// links, so a node is never occluded by link geometry.
const (
	LinkDepth = 0.0
	NodeDepth = 1.0
)

// hoverScale is the uniform scale applied to a node while hovered.
const hoverScale = 2.0

// View is the single owned aggregate of all mutable viewer state: graph,
// simulation, scene, camera, and viewport. Every handler (tick, resize,
// pointer) operates on one View instance.
type View struct {
	opts     Options
	overlay  Overlay
	renderer render.Renderer

	graph  *models.Graph
	scene  *scene.Scene
	camera *scene.Camera
	sim    *physics.Simulation
	theme  *theme.Theme

	// Viewport pixel size and the aspect ratio preserved across resizes.
	width, height float64
	ratio         float64

	bound      bool
	nodeShapes []*scene.Primitive
	linkShapes []*scene.Primitive

	// Shared by all node primitives; mutating these restyles every node.
	nodeGeometry *scene.CircleGeometry
	nodeMaterial *scene.Material

	// Entity currently shown in the info overlay, for toggle-on-reclick.
	infoEntity any

	// Frame bookkeeping. renderWanted is the "exactly one render next
	// frame" flag consumed by the loop; frames counts completed renders.
	renderWanted bool
	frames       int
	lastFrame    []byte

	stopped bool
	events  chan func()
}

// New constructs a view from options. The graph is not loaded yet; call
// Load (or Run, which loads first).
func New(opts Options, renderer render.Renderer, overlay Overlay) (*View, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if overlay == nil {
		overlay = NopOverlay{}
	}
	th, err := theme.Resolve(opts.Theme)
	if err != nil {
		// Visual degradation beats a hard failure: fall back to the
		// default theme and keep going.
		log.Printf("viewer: %v, using %q", err, theme.DefaultName)
		th, _ = theme.Resolve(theme.DefaultName)
	}

	v := &View{
		opts:     opts,
		overlay:  overlay,
		renderer: renderer,
		scene:    scene.New(),
		camera:   scene.NewCamera(opts.Width, opts.Height),
		theme:    th,
		width:    opts.Width,
		height:   opts.Height,
		ratio:    opts.Width / opts.Height,
		events:   make(chan func(), 64),
	}
	v.scene.Background = th.Background
	if opts.OnInit != nil {
		opts.OnInit()
	}
	return v, nil
}

// Graph returns the loaded graph, or nil before Load.
func (v *View) Graph() *models.Graph { return v.graph }

// Scene returns the primitive registry.
func (v *View) Scene() *scene.Scene { return v.scene }

// Camera returns the active camera.
func (v *View) Camera() *scene.Camera { return v.camera }

// Viewport returns the current viewport size in pixels.
func (v *View) Viewport() (width, height float64) { return v.width, v.height }

// Theme returns the active theme.
func (v *View) Theme() *theme.Theme { return v.theme }

// Frames returns the number of frames rendered so far.
func (v *View) Frames() int { return v.frames }

// LastFrame returns the most recently rendered frame bytes.
func (v *View) LastFrame() []byte { return v.lastFrame }

// Load fetches (or takes over) the graph, validates it, resolves link
// endpoints, and binds it into the scene. Load errors are fatal: nothing
// is rendered.
func (v *View) Load(ctx context.Context) error {
	var g *models.Graph
	var err error
	if v.opts.Data != nil {
		g = v.opts.Data
		if err := g.Validate(); err != nil {
			return err
		}
	} else {
		g, err = ingest.Fetch(ctx, v.opts.URL)
		if err != nil {
			return err
		}
	}
	return v.LoadGraph(g)
}

// LoadGraph installs an already constructed graph, overriding any fetched
// data, and binds it.
func (v *View) LoadGraph(g *models.Graph) error {
	if err := g.ResolveLinks(); err != nil {
		return err
	}
	v.graph = g

	// Binding happens exactly once per load; clear first so a reload
	// cannot duplicate primitives.
	v.scene.Clear()
	v.bound = false
	v.Bind()

	if v.opts.Metadata {
		v.overlay.ShowMetadata(g)
	}
	if v.opts.OnLoad != nil {
		v.opts.OnLoad(g)
	}
	return nil
}

// SetTheme switches the color table without rendering. An unknown name
// leaves the previous theme active.
func (v *View) SetTheme(name string) {
	th, err := theme.Resolve(name)
	if err != nil {
		log.Printf("viewer: %v, keeping %q", err, v.theme.Name)
		return
	}
	v.theme = th
	v.scene.Background = th.Background
	if v.nodeMaterial != nil {
		// One shared material: this recolors every node.
		v.nodeMaterial.Color = th.NodeColor
	}
	for _, p := range v.linkShapes {
		if p.Hovered() {
			p.Material.Color = th.LinkHoveredColor
		} else {
			p.Material.Color = th.LinkColor
		}
	}
}

// SwitchTheme switches the theme and re-renders in one step.
func (v *View) SwitchTheme(name string) {
	v.SetTheme(name)
	if err := v.renderNow(); err != nil {
		log.Printf("viewer: render after theme switch: %v", err)
	}
}

// Do submits fn to run on the view's goroutine at the next frame
// boundary. Pointer and resize events from other goroutines go through
// here so all state stays single-threaded.
func (v *View) Do(fn func()) {
	select {
	case v.events <- fn:
	default:
		// Event queue full; drop rather than block the producer. The
		// next event will carry fresher state anyway.
	}
}

// requestRender schedules exactly one render for the next frame. Multiple
// requests between frames coalesce.
func (v *View) requestRender() {
	v.renderWanted = true
}

// RequestRender schedules a coalesced render for the next frame. External
// collaborators (the interaction controller, embedding servers) use this;
// call it on the view's goroutine, via Do if necessary.
func (v *View) RequestRender() {
	v.requestRender()
}

// renderNow renders a frame immediately, bypassing frame scheduling.
// Interaction feedback uses this so it is perceived as instantaneous.
func (v *View) renderNow() error {
	if v.renderer == nil {
		return nil
	}
	frame, err := v.renderer.Render(v.scene, v.camera, int(v.width), int(v.height))
	if err != nil {
		// No degraded rendering path exists; propagate.
		return fmt.Errorf("render: %w", err)
	}
	v.lastFrame = frame
	v.frames++
	v.renderWanted = false
	return nil
}
