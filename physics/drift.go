package physics

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/toposcope/toposcope/models"
)

// DriftForce adds a slow noise-driven current to node velocities, giving a
// dynamic layout a subtle organic motion after it has settled. It is never
// used in static mode, where convergence must be reproducible.
type DriftForce struct {
	nodes []*models.Node
	noise opensimplex.Noise

	// Scale is the spatial frequency of the noise field.
	Scale float64

	// Amount is the velocity magnitude injected per step.
	Amount float64

	t float64
}

// NewDriftForce creates a drift force from the given seed.
func NewDriftForce(seed int64) *DriftForce {
	return &DriftForce{
		noise:  opensimplex.New(seed),
		Scale:  0.03,
		Amount: 0.05,
	}
}

// Initialize records the node set.
func (f *DriftForce) Initialize(nodes []*models.Node) {
	f.nodes = nodes
}

// Apply samples a flow field at each node's position and nudges its
// velocity along the field, advancing the field's time coordinate.
func (f *DriftForce) Apply(alpha float64) {
	for _, n := range f.nodes {
		fx := f.noise.Eval3(n.X*f.Scale, n.Y*f.Scale, f.t)
		fy := f.noise.Eval3(n.X*f.Scale+100, n.Y*f.Scale+100, f.t)
		n.VX += fx * f.Amount
		n.VY += fy * f.Amount
	}
	f.t += 0.01
}
