package physics

import (
	"math"

	"github.com/toposcope/toposcope/models"
)

// LinkForce pulls linked nodes toward a configured distance, acting like a
// spring between each link's endpoints. Link endpoints must be resolved to
// node references before the force is initialized.
type LinkForce struct {
	links []*models.Link

	// Distance is the rest length of every link spring.
	Distance float64

	// Strength in (0, 1] applies uniformly to every link. When zero, each
	// link's strength defaults to 1/min(degree(source), degree(target)),
	// which keeps highly connected nodes from being over-constrained.
	Strength float64

	// Iterations is the number of relaxation passes per step. More
	// iterations produce a stiffer layout.
	Iterations int

	count    map[*models.Node]int
	bias     []float64
	strength []float64
}

// NewLinkForce creates a link force over the given resolved links.
func NewLinkForce(links []*models.Link) *LinkForce {
	return &LinkForce{
		links:      links,
		Distance:   30,
		Iterations: 1,
	}
}

// SetLinks replaces the link set. Takes effect at the next Initialize.
func (f *LinkForce) SetLinks(links []*models.Link) {
	f.links = links
}

// Initialize computes per-link bias and strength from node degrees.
func (f *LinkForce) Initialize(nodes []*models.Node) {
	f.count = make(map[*models.Node]int, len(nodes))
	for _, l := range f.links {
		if !l.Resolved() {
			continue
		}
		f.count[l.From]++
		f.count[l.To]++
	}

	f.bias = make([]float64, len(f.links))
	f.strength = make([]float64, len(f.links))
	for i, l := range f.links {
		if !l.Resolved() {
			continue
		}
		cf := float64(f.count[l.From])
		ct := float64(f.count[l.To])
		f.bias[i] = cf / (cf + ct)
		if f.Strength > 0 {
			f.strength[i] = f.Strength
		} else {
			f.strength[i] = 1 / math.Min(cf, ct)
		}
	}
}

// Apply relaxes every link spring toward its rest length, distributing the
// correction between the endpoints according to their degree bias.
func (f *LinkForce) Apply(alpha float64) {
	iterations := f.Iterations
	if iterations < 1 {
		iterations = 1
	}
	for k := 0; k < iterations; k++ {
		for i, l := range f.links {
			if !l.Resolved() {
				continue
			}
			from, to := l.From, l.To
			dx := to.X + to.VX - from.X - from.VX
			dy := to.Y + to.VY - from.Y - from.VY
			if dx == 0 && dy == 0 {
				// Coincident endpoints: nudge deterministically so the
				// spring has a direction to act along.
				dx = 1e-6 * float64(i+1)
				dy = -1e-6 * float64(i+1)
			}
			dist := math.Sqrt(dx*dx + dy*dy)
			scale := (dist - f.Distance) / dist * alpha * f.strength[i]
			dx *= scale
			dy *= scale
			bias := f.bias[i]
			to.VX -= dx * bias
			to.VY -= dy * bias
			from.VX += dx * (1 - bias)
			from.VY += dy * (1 - bias)
		}
	}
}
