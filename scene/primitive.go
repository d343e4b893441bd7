// Package scene holds the renderable side of the viewer: primitives bound
// to graph entities, their geometry and materials, the orthographic camera,
// and CPU-side hit testing. The renderer draws a Scene through a Camera;
// it never reaches back into the graph.
package scene

import (
	"math"

	"github.com/toposcope/toposcope/models"
)

// Kind discriminates the two primitive shapes.
type Kind int

const (
	KindNode Kind = iota
	KindLink
)

// Vec3 is a position in world space.
type Vec3 struct {
	X, Y, Z float64
}

// Material is the visual state of a primitive. Node primitives share one
// material instance, so recoloring it recolors every node; link primitives
// each own a material so hover feedback can recolor a single link.
type Material struct {
	Color string // hex color, e.g. "#4285F4"
}

// CircleGeometry is the shared node shape. All node primitives of a theme
// reference one instance.
type CircleGeometry struct {
	Radius   float64
	Segments int
}

// LineGeometry is a per-link shape connecting two endpoints. Endpoints are
// recomputed after every simulation step; the dirty flag and bounds must
// be refreshed before any hit test can trust the geometry.
type LineGeometry struct {
	From, To Vec3

	dirty      bool
	minX, minY float64
	maxX, maxY float64
}

// SetEndpoints updates the line's endpoints, marks the geometry dirty, and
// recomputes its bounding box.
func (g *LineGeometry) SetEndpoints(from, to Vec3) {
	g.From = from
	g.To = to
	g.dirty = true
	g.recomputeBounds()
	g.dirty = false
}

func (g *LineGeometry) recomputeBounds() {
	g.minX = math.Min(g.From.X, g.To.X)
	g.maxX = math.Max(g.From.X, g.To.X)
	g.minY = math.Min(g.From.Y, g.To.Y)
	g.maxY = math.Max(g.From.Y, g.To.Y)
}

// Bounds returns the axis-aligned bounding box of the line.
func (g *LineGeometry) Bounds() (minX, minY, maxX, maxY float64) {
	return g.minX, g.minY, g.maxX, g.maxY
}

// Primitive is one renderable object in the scene. Exactly one of Circle
// or Line is set, matching Kind. The Node/Link back-references are weak:
// they exist for pick resolution only and never control lifetime.
type Primitive struct {
	Kind     Kind
	Position Vec3
	Scale    float64
	Circle   *CircleGeometry
	Line     *LineGeometry
	Material *Material

	Node *models.Node
	Link *models.Link

	// Interaction handlers, attached by the entity binder.
	OnClick      func()
	OnHoverEnter func()
	OnHoverLeave func()

	hovered bool
}

// Hovered reports whether the primitive is in the hovered state.
func (p *Primitive) Hovered() bool { return p.hovered }

// SetHovered transitions the hover state, firing the enter or leave
// handler exactly once per transition. Repeated calls with the same value
// fire nothing.
func (p *Primitive) SetHovered(hovered bool) {
	if p.hovered == hovered {
		return
	}
	p.hovered = hovered
	if hovered {
		if p.OnHoverEnter != nil {
			p.OnHoverEnter()
		}
	} else if p.OnHoverLeave != nil {
		p.OnHoverLeave()
	}
}
