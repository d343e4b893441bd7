package render

import (
	"bytes"
	"fmt"

	"github.com/toposcope/toposcope/scene"
)

// SVGRenderer emits frames as vector graphics, drawing the same projected
// primitives as the raster backend.
type SVGRenderer struct{}

// Name returns the name of the renderer.
func (r *SVGRenderer) Name() string { return "svg" }

// Render creates an SVG representation of the scene.
func (r *SVGRenderer) Render(s *scene.Scene, c *scene.Camera, width, height int) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, s.Background))

	vw, vh := float64(width), float64(height)
	for _, p := range drawOrder(s) {
		switch p.Kind {
		case scene.KindLink:
			if p.Line == nil || p.Material == nil {
				continue
			}
			x1, y1 := scene.Project(p.Line.From, c, vw, vh)
			x2, y2 := scene.Project(p.Line.To, c, vw, vh)
			buf.WriteString(fmt.Sprintf(
				`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.1f"/>`+"\n",
				x1, y1, x2, y2, p.Material.Color, linkStrokeWidth))
		case scene.KindNode:
			if p.Circle == nil || p.Material == nil {
				continue
			}
			cx, cy := scene.Project(p.Position, c, vw, vh)
			radius := p.Circle.Radius * p.Scale * c.PixelsPerUnit(vw)
			buf.WriteString(fmt.Sprintf(
				`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`+"\n",
				cx, cy, radius, p.Material.Color))
		}
	}

	buf.WriteString(`</svg>`)
	return buf.Bytes(), nil
}
