package scene

import "math"

// linkPickTolerance is the pick slop around a link line, in pixels.
const linkPickTolerance = 3.0

// Pick returns the primitive under the given screen position, or nil.
// Nodes take priority over links regardless of distance, since nodes
// render in a depth plane in front of links. Among primitives of the same
// kind the closest hit wins.
func Pick(s *Scene, c *Camera, x, y, viewportWidth, viewportHeight float64) *Primitive {
	var best *Primitive
	bestDist := math.Inf(1)
	bestKind := KindLink

	for _, p := range s.Primitives() {
		var dist float64
		var hit bool
		switch p.Kind {
		case KindNode:
			dist, hit = pickNode(p, c, x, y, viewportWidth, viewportHeight)
		case KindLink:
			dist, hit = pickLink(p, c, x, y, viewportWidth, viewportHeight)
		}
		if !hit {
			continue
		}
		// A node beats any link; otherwise nearest wins.
		if best == nil ||
			(p.Kind == KindNode && bestKind == KindLink) ||
			(p.Kind == bestKind && dist < bestDist) {
			best = p
			bestDist = dist
			bestKind = p.Kind
		}
	}
	return best
}

func pickNode(p *Primitive, c *Camera, x, y, vw, vh float64) (float64, bool) {
	if p.Circle == nil {
		return 0, false
	}
	px, py := Project(p.Position, c, vw, vh)
	radius := p.Circle.Radius * p.Scale * c.PixelsPerUnit(vw)
	dx := x - px
	dy := y - py
	dist := math.Sqrt(dx*dx + dy*dy)
	return dist, dist <= radius
}

func pickLink(p *Primitive, c *Camera, x, y, vw, vh float64) (float64, bool) {
	if p.Line == nil {
		return 0, false
	}
	x1, y1 := Project(p.Line.From, c, vw, vh)
	x2, y2 := Project(p.Line.To, c, vw, vh)
	dist := pointSegmentDistance(x, y, x1, y1, x2, y2)
	return dist, dist <= linkPickTolerance
}

// pointSegmentDistance returns the distance from (px, py) to the segment
// (x1, y1)-(x2, y2).
func pointSegmentDistance(px, py, x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	len2 := dx*dx + dy*dy
	if len2 == 0 {
		return math.Hypot(px-x1, py-y1)
	}
	t := ((px-x1)*dx + (py-y1)*dy) / len2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(px-(x1+t*dx), py-(y1+t*dy))
}
