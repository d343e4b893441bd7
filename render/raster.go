package render

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"golang.org/x/image/vector"

	"github.com/toposcope/toposcope/scene"
)

// linkStrokeWidth is the on-screen width of link lines, in pixels.
const linkStrokeWidth = 1.5

// RasterRenderer rasterizes frames to PNG using an anti-aliased scanline
// rasterizer.
type RasterRenderer struct{}

// Name returns the name of the renderer.
func (r *RasterRenderer) Name() string { return "raster" }

// Render draws the scene into an RGBA buffer and encodes it as PNG.
func (r *RasterRenderer) Render(s *scene.Scene, c *scene.Camera, width, height int) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	bg := uniform(s.Background)
	draw.Draw(img, img.Bounds(), bg, image.Point{}, draw.Src)

	vw, vh := float64(width), float64(height)
	for _, p := range drawOrder(s) {
		switch p.Kind {
		case scene.KindLink:
			r.drawLink(img, p, c, vw, vh)
		case scene.KindNode:
			r.drawNode(img, p, c, vw, vh)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *RasterRenderer) drawLink(img *image.RGBA, p *scene.Primitive, c *scene.Camera, vw, vh float64) {
	if p.Line == nil || p.Material == nil {
		return
	}
	x1, y1 := scene.Project(p.Line.From, c, vw, vh)
	x2, y2 := scene.Project(p.Line.To, c, vw, vh)

	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	// Perpendicular half-width offset turns the segment into a quad.
	nx := -dy / length * linkStrokeWidth / 2
	ny := dx / length * linkStrokeWidth / 2

	ras := vector.NewRasterizer(img.Bounds().Dx(), img.Bounds().Dy())
	ras.DrawOp = draw.Over
	ras.MoveTo(float32(x1+nx), float32(y1+ny))
	ras.LineTo(float32(x2+nx), float32(y2+ny))
	ras.LineTo(float32(x2-nx), float32(y2-ny))
	ras.LineTo(float32(x1-nx), float32(y1-ny))
	ras.ClosePath()
	ras.Draw(img, img.Bounds(), uniform(p.Material.Color), image.Point{})
}

func (r *RasterRenderer) drawNode(img *image.RGBA, p *scene.Primitive, c *scene.Camera, vw, vh float64) {
	if p.Circle == nil || p.Material == nil {
		return
	}
	cx, cy := scene.Project(p.Position, c, vw, vh)
	radius := p.Circle.Radius * p.Scale * c.PixelsPerUnit(vw)
	if radius <= 0 {
		return
	}
	segments := p.Circle.Segments
	if segments < 8 {
		segments = 32
	}

	ras := vector.NewRasterizer(img.Bounds().Dx(), img.Bounds().Dy())
	ras.DrawOp = draw.Over
	ras.MoveTo(float32(cx+radius), float32(cy))
	for i := 1; i < segments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		ras.LineTo(float32(cx+radius*math.Cos(angle)), float32(cy+radius*math.Sin(angle)))
	}
	ras.ClosePath()
	ras.Draw(img, img.Bounds(), uniform(p.Material.Color), image.Point{})
}

func uniform(hex string) *image.Uniform {
	cr, cg, cb := parseHexColor(hex)
	return image.NewUniform(color.RGBA{R: cr, G: cg, B: cb, A: 0xff})
}
