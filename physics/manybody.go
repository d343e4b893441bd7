package physics

import (
	"math"

	"github.com/toposcope/toposcope/models"
)

// ManyBodyForce applies mutual repulsion between all node pairs using a
// Barnes-Hut quadtree approximation. Negative strength repels, positive
// attracts.
type ManyBodyForce struct {
	nodes []*models.Node

	// Strength of the charge on every node. The default -30 repels.
	Strength float64

	// Theta is the Barnes-Hut accuracy parameter: a quadtree cell whose
	// width over distance ratio is below theta is treated as a single
	// body. Lower values are more accurate and slower.
	Theta float64

	// DistanceMin clamps how close two bodies can appear to be, avoiding
	// unbounded forces between near-coincident nodes.
	DistanceMin float64

	// DistanceMax limits the reach of the force; bodies farther apart
	// contribute nothing.
	DistanceMax float64
}

// NewManyBodyForce creates a repulsive many-body force with the standard
// parameters.
func NewManyBodyForce() *ManyBodyForce {
	return &ManyBodyForce{
		Strength:    -30,
		Theta:       0.9,
		DistanceMin: 1,
		DistanceMax: math.Inf(1),
	}
}

// Initialize records the node set.
func (f *ManyBodyForce) Initialize(nodes []*models.Node) {
	f.nodes = nodes
}

// Apply rebuilds the quadtree from current positions and accumulates the
// approximated repulsion into each node's velocity.
func (f *ManyBodyForce) Apply(alpha float64) {
	if len(f.nodes) < 2 {
		return
	}
	tree := buildQuadtree(f.nodes)
	if tree == nil {
		return
	}
	maxDist2 := f.DistanceMax * f.DistanceMax
	minDist2 := f.DistanceMin * f.DistanceMin
	for i, n := range f.nodes {
		fx, fy := tree.accumulate(i, n.X, n.Y, f.Theta, maxDist2, minDist2)
		n.VX += fx * f.Strength * alpha
		n.VY += fy * f.Strength * alpha
	}
}

// quadCell is one node of the Barnes-Hut quadtree. A leaf holds the index
// of a single body; an internal cell holds its children's aggregate center
// of mass.
type quadCell struct {
	x, y, size float64 // square bounds: origin and side length

	centerX, centerY float64
	mass             float64

	body   int // body index if leaf, -1 otherwise
	isLeaf bool

	nw, ne, sw, se *quadCell
}

func newQuadCell(x, y, size float64) *quadCell {
	return &quadCell{x: x, y: y, size: size, isLeaf: true, body: -1}
}

func (c *quadCell) insert(i int, px, py, m float64) {
	if c.isLeaf && c.body == -1 {
		c.body = i
		c.centerX = px
		c.centerY = py
		c.mass = m
		return
	}

	if c.isLeaf {
		if px == c.centerX && py == c.centerY {
			// Coincident bodies share a leaf; merging mass avoids an
			// endless split.
			c.mass += m
			return
		}
		// Occupied leaf: split into quadrants and push the resident down.
		c.isLeaf = false
		oldBody, oldX, oldY, oldMass := c.body, c.centerX, c.centerY, c.mass
		c.body = -1
		half := c.size / 2
		c.nw = newQuadCell(c.x, c.y, half)
		c.ne = newQuadCell(c.x+half, c.y, half)
		c.sw = newQuadCell(c.x, c.y+half, half)
		c.se = newQuadCell(c.x+half, c.y+half, half)
		c.quadrantFor(oldX, oldY).insert(oldBody, oldX, oldY, oldMass)
	}

	total := c.mass + m
	c.centerX = (c.centerX*c.mass + px*m) / total
	c.centerY = (c.centerY*c.mass + py*m) / total
	c.mass = total

	c.quadrantFor(px, py).insert(i, px, py, m)
}

func (c *quadCell) quadrantFor(px, py float64) *quadCell {
	half := c.size / 2
	if px < c.x+half {
		if py < c.y+half {
			return c.nw
		}
		return c.sw
	}
	if py < c.y+half {
		return c.ne
	}
	return c.se
}

// accumulate walks the tree computing the inverse-square contribution on
// body i at (px, py). The returned vector is unscaled by strength/alpha.
func (c *quadCell) accumulate(i int, px, py, theta, maxDist2, minDist2 float64) (float64, float64) {
	if c.mass == 0 || (c.isLeaf && c.body == i) {
		return 0, 0
	}

	dx := c.centerX - px
	dy := c.centerY - py
	dist2 := dx*dx + dy*dy

	if c.isLeaf || c.size*c.size < theta*theta*dist2 {
		if dist2 > maxDist2 {
			return 0, 0
		}
		if dist2 < minDist2 {
			dist2 = minDist2
		}
		w := c.mass / dist2
		dist := math.Sqrt(dist2)
		if dist == 0 {
			return 0, 0
		}
		return dx / dist * w, dy / dist * w
	}

	fx, fy := 0.0, 0.0
	for _, child := range []*quadCell{c.nw, c.ne, c.sw, c.se} {
		if child == nil {
			continue
		}
		cx, cy := child.accumulate(i, px, py, theta, maxDist2, minDist2)
		fx += cx
		fy += cy
	}
	return fx, fy
}

// buildQuadtree constructs a square quadtree covering all node positions.
func buildQuadtree(nodes []*models.Node) *quadCell {
	if len(nodes) == 0 {
		return nil
	}
	minX, maxX := nodes[0].X, nodes[0].X
	minY, maxY := nodes[0].Y, nodes[0].Y
	for _, n := range nodes[1:] {
		minX = math.Min(minX, n.X)
		maxX = math.Max(maxX, n.X)
		minY = math.Min(minY, n.Y)
		maxY = math.Max(maxY, n.Y)
	}

	size := math.Max(maxX-minX, maxY-minY)
	if size == 0 {
		size = 1
	}
	// Pad to keep bodies off the exact boundary.
	pad := size * 0.05
	root := newQuadCell(minX-pad, minY-pad, size+2*pad)
	for i, n := range nodes {
		root.insert(i, n.X, n.Y, 1.0)
	}
	return root
}
