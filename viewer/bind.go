package viewer

import (
	"log"

	"github.com/toposcope/toposcope/models"
	"github.com/toposcope/toposcope/scene"
)

// nodeRadius is the node circle radius in world units when DefaultStyle
// sizing is active.
const nodeRadius = 5.0

// Bind maps every graph entity to a renderable primitive and registers it
// with the scene: links first (back plane), then nodes (front plane).
// Nodes share a single geometry/material pair; links each own a geometry
// and a material. Binding must happen exactly once per load; binding again
// without clearing the scene duplicates primitives.
func (v *View) Bind() {
	if v.graph == nil {
		return
	}
	if v.bound {
		log.Printf("viewer: re-binding without clear duplicates primitives")
	}

	v.linkShapes = make([]*scene.Primitive, 0, len(v.graph.Links))
	for _, l := range v.graph.Links {
		p := &scene.Primitive{
			Kind:     scene.KindLink,
			Line:     &scene.LineGeometry{},
			Material: &scene.Material{Color: v.theme.LinkColor},
			Link:     l,
			Scale:    1,
		}
		v.attachLinkHandlers(p, l)
		v.scene.Add(p)
		v.linkShapes = append(v.linkShapes, p)
	}

	v.nodeGeometry = &scene.CircleGeometry{Radius: nodeRadius, Segments: 32}
	v.nodeMaterial = &scene.Material{Color: v.theme.NodeColor}
	v.nodeShapes = make([]*scene.Primitive, 0, len(v.graph.Nodes))
	for _, n := range v.graph.Nodes {
		p := &scene.Primitive{
			Kind:     scene.KindNode,
			Position: scene.Vec3{X: n.X, Y: n.Y, Z: NodeDepth},
			Scale:    v.nodeScale(n),
			Circle:   v.nodeGeometry,
			Material: v.nodeMaterial,
			Node:     n,
		}
		v.attachNodeHandlers(p, n)
		v.scene.Add(p)
		v.nodeShapes = append(v.nodeShapes, p)
	}

	v.bound = true
	v.Sync()
}

// attachNodeHandlers wires the three interaction handlers for a node
// primitive. The click strategy (caller-supplied callback versus the
// built-in info overlay) is resolved here, once, not re-checked per
// event.
func (v *View) attachNodeHandlers(p *scene.Primitive, n *models.Node) {
	click := v.opts.OnClickNode
	if click == nil {
		click = func(n *models.Node) { v.toggleNodeInfo(p, n) }
	}
	p.OnClick = func() { click(n) }

	// Hover scaling multiplies the node's base scale so sized nodes keep
	// their proportions while hovered.
	base := v.nodeScale(n)
	p.OnHoverEnter = func() {
		p.Scale = base * hoverScale
		x, y := scene.Project(p.Position, v.camera, v.width, v.height)
		v.overlay.ShowTooltip(x, y, nodeLabel(n))
		if err := v.renderNow(); err != nil {
			log.Printf("viewer: hover render: %v", err)
		}
	}
	p.OnHoverLeave = func() {
		p.Scale = base
		v.overlay.HideTooltip()
		if err := v.renderNow(); err != nil {
			log.Printf("viewer: hover render: %v", err)
		}
	}
}

// nodeScale returns the base scale of a node primitive. DefaultStyle keeps
// every node at the uniform radius; otherwise Node.Size scales the shared
// geometry per node, which is how discovery sources emphasize hubs.
func (v *View) nodeScale(n *models.Node) float64 {
	if v.opts.DefaultStyle || n.Size <= 0 {
		return 1
	}
	return n.Size
}

// attachLinkHandlers wires handlers for a link primitive. Hover recolors
// the link's own material to the theme's hovered color.
func (v *View) attachLinkHandlers(p *scene.Primitive, l *models.Link) {
	click := v.opts.OnClickLink
	if click == nil {
		click = func(l *models.Link) { v.toggleLinkInfo(p, l) }
	}
	p.OnClick = func() { click(l) }

	p.OnHoverEnter = func() {
		p.Material.Color = v.theme.LinkHoveredColor
		if err := v.renderNow(); err != nil {
			log.Printf("viewer: hover render: %v", err)
		}
	}
	p.OnHoverLeave = func() {
		p.Material.Color = v.theme.LinkColor
		if err := v.renderNow(); err != nil {
			log.Printf("viewer: hover render: %v", err)
		}
	}
}

// toggleNodeInfo is the built-in click behavior: open or update the info
// overlay, or close it when the same node is clicked while shown. Closing
// also ends the hover session so the leave handler is not lost behind the
// disappearing panel.
func (v *View) toggleNodeInfo(p *scene.Primitive, n *models.Node) {
	if v.overlay.InfoVisible() && v.infoEntity == n {
		v.overlay.HideInfo()
		v.infoEntity = nil
		p.SetHovered(false)
		return
	}
	v.overlay.ShowNodeInfo(n)
	v.infoEntity = n
}

func (v *View) toggleLinkInfo(p *scene.Primitive, l *models.Link) {
	if v.overlay.InfoVisible() && v.infoEntity == l {
		v.overlay.HideInfo()
		v.infoEntity = nil
		p.SetHovered(false)
		return
	}
	v.overlay.ShowLinkInfo(l)
	v.infoEntity = l
}

func nodeLabel(n *models.Node) string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}
