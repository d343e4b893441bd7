// Package render draws a scene through a camera. The rest of the system
// treats a Renderer as an opaque service: the viewer schedules renders and
// hands over the scene and camera, nothing more.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/toposcope/toposcope/scene"
)

// Renderer rasterizes one frame of a scene viewed through a camera into an
// encoded image.
type Renderer interface {
	// Render draws the scene and returns the encoded frame.
	Render(s *scene.Scene, c *scene.Camera, width, height int) ([]byte, error)

	// Name returns the name of the renderer.
	Name() string
}

// New returns the renderer for the given format.
func New(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "png":
		return &RasterRenderer{}, nil
	case "svg":
		return &SVGRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported frame format: %s", format)
	}
}

// drawOrder returns the scene's primitives sorted back to front, so link
// geometry at depth zero never occludes nodes in their forward plane.
func drawOrder(s *scene.Scene) []*scene.Primitive {
	prims := append([]*scene.Primitive(nil), s.Primitives()...)
	sort.SliceStable(prims, func(i, j int) bool {
		return prims[i].Position.Z < prims[j].Position.Z
	})
	return prims
}

// parseHexColor parses "#rgb" or "#rrggbb" into 8-bit components.
func parseHexColor(hex string) (r, g, b uint8) {
	hex = strings.TrimPrefix(hex, "#")
	switch len(hex) {
	case 3:
		return parseHexDigit(hex[0]) * 17, parseHexDigit(hex[1]) * 17, parseHexDigit(hex[2]) * 17
	case 6:
		return parseHexByte(hex[0:2]), parseHexByte(hex[2:4]), parseHexByte(hex[4:6])
	}
	return 0, 0, 0
}

func parseHexDigit(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

func parseHexByte(s string) uint8 {
	var result uint8
	for i := 0; i < len(s); i++ {
		result = result*16 + parseHexDigit(s[i])
	}
	return result
}
