package physics

import "github.com/toposcope/toposcope/models"

// CenterForce translates the node set so its mean position sits at the
// configured center. Unlike the other forces it adjusts positions
// directly, keeping the layout anchored without injecting energy.
type CenterForce struct {
	nodes []*models.Node

	X, Y float64

	// Strength in (0, 1] softens the correction per step.
	Strength float64
}

// NewCenterForce creates a centering force anchored at the origin.
func NewCenterForce(x, y float64) *CenterForce {
	return &CenterForce{X: x, Y: y, Strength: 1.0}
}

// Initialize records the node set.
func (f *CenterForce) Initialize(nodes []*models.Node) {
	f.nodes = nodes
}

// Apply shifts every node by the offset between the configured center and
// the current centroid.
func (f *CenterForce) Apply(alpha float64) {
	if len(f.nodes) == 0 {
		return
	}
	var sx, sy float64
	for _, n := range f.nodes {
		sx += n.X
		sy += n.Y
	}
	count := float64(len(f.nodes))
	dx := (sx/count - f.X) * f.Strength
	dy := (sy/count - f.Y) * f.Strength
	for _, n := range f.nodes {
		n.X -= dx
		n.Y -= dy
	}
}
