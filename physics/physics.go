// Package physics implements the force simulation that computes the 2D
// layout of a topology graph: link attraction, many-body repulsion with a
// Barnes-Hut quadtree, centering, and an optional ambient drift.
//
// The simulation advances in discrete steps driven by a cooling parameter
// alpha. Each step interpolates alpha toward its target, applies every
// registered force, then integrates velocities into positions with
// velocity decay. For fixed parameters and input the step sequence is
// fully deterministic.
package physics

import (
	"math"

	"github.com/toposcope/toposcope/models"
)

// Default cooling schedule. alphaDecay is chosen so that alpha decays from
// 1 below alphaMin in roughly 300 steps, the settling phase the dynamic
// layout animates through.
const (
	DefaultAlphaMin      = 0.001
	DefaultVelocityDecay = 0.4

	// Phyllotaxis seeding constants for nodes without initial positions.
	initialRadius = 10.0
)

var initialAngle = math.Pi * (3 - math.Sqrt(5))

// Force is a single contributor to the simulation. Initialize is called
// whenever the node set changes; Apply adjusts node velocities (or
// positions, for the center force) for one step at the given alpha.
type Force interface {
	Initialize(nodes []*models.Node)
	Apply(alpha float64)
}

// Simulation owns the node set and the active forces, and advances the
// layout one discrete step at a time. It is not safe for concurrent use;
// the viewer drives it from a single goroutine.
type Simulation struct {
	nodes  []*models.Node
	forces []namedForce

	alpha         float64
	alphaMin      float64
	alphaDecay    float64
	alphaTarget   float64
	velocityDecay float64

	running bool
	onTick  []func()
}

type namedForce struct {
	name  string
	force Force
}

// NewSimulation creates a simulation with the default cooling schedule and
// no forces.
func NewSimulation() *Simulation {
	return &Simulation{
		alpha:         1.0,
		alphaMin:      DefaultAlphaMin,
		alphaDecay:    1 - math.Pow(DefaultAlphaMin, 1.0/300),
		alphaTarget:   0,
		velocityDecay: DefaultVelocityDecay,
	}
}

// SetNodes binds the node set into the simulation and re-initializes every
// force. Nodes without a position are seeded deterministically on a
// phyllotaxis spiral so repeated runs produce identical layouts.
func (s *Simulation) SetNodes(nodes []*models.Node) {
	s.nodes = nodes
	for i, n := range nodes {
		if n.X == 0 && n.Y == 0 {
			radius := initialRadius * math.Sqrt(0.5+float64(i))
			angle := float64(i) * initialAngle
			n.X = radius * math.Cos(angle)
			n.Y = radius * math.Sin(angle)
		}
	}
	for _, nf := range s.forces {
		nf.force.Initialize(s.nodes)
	}
}

// Nodes returns the bound node set.
func (s *Simulation) Nodes() []*models.Node { return s.nodes }

// AddForce registers a force under a name, replacing any force previously
// registered under the same name. Forces apply in registration order.
func (s *Simulation) AddForce(name string, f Force) {
	f.Initialize(s.nodes)
	for i, nf := range s.forces {
		if nf.name == name {
			s.forces[i].force = f
			return
		}
	}
	s.forces = append(s.forces, namedForce{name: name, force: f})
}

// Force returns the force registered under name, or nil.
func (s *Simulation) Force(name string) Force {
	for _, nf := range s.forces {
		if nf.name == name {
			return nf.force
		}
	}
	return nil
}

// Alpha returns the current cooling parameter.
func (s *Simulation) Alpha() float64 { return s.alpha }

// SetAlpha sets the current cooling parameter.
func (s *Simulation) SetAlpha(a float64) { s.alpha = a }

// AlphaMin returns the alpha threshold below which the simulation is
// considered converged.
func (s *Simulation) AlphaMin() float64 { return s.alphaMin }

// SetAlphaMin sets the convergence threshold.
func (s *Simulation) SetAlphaMin(m float64) { s.alphaMin = m }

// AlphaDecay returns the per-step cooling rate.
func (s *Simulation) AlphaDecay() float64 { return s.alphaDecay }

// SetAlphaDecay sets the per-step cooling rate.
func (s *Simulation) SetAlphaDecay(d float64) { s.alphaDecay = d }

// SetAlphaTarget sets the value alpha is interpolated toward each step.
// A target above alphaMin keeps the simulation running indefinitely.
func (s *Simulation) SetAlphaTarget(t float64) { s.alphaTarget = t }

// SetVelocityDecay sets the per-step velocity damping (friction).
func (s *Simulation) SetVelocityDecay(d float64) { s.velocityDecay = d }

// Running reports whether the simulation clock is running (dynamic mode).
func (s *Simulation) Running() bool { return s.running }

// Restart marks the simulation running, restarting only the internal
// clock. Alpha is left where it is, so a pre-rolled simulation resumes
// from its settled state; callers that want a fresh settling phase call
// SetAlpha(1) themselves.
func (s *Simulation) Restart() {
	s.running = true
}

// Stop halts the simulation clock. Step may still be called manually.
func (s *Simulation) Stop() {
	s.running = false
}

// OnTick registers a callback invoked after every completed step.
func (s *Simulation) OnTick(fn func()) {
	s.onTick = append(s.onTick, fn)
}

// Step advances the simulation one discrete step: cool alpha, apply all
// forces, integrate velocities with damping, then fire tick callbacks.
// It returns false once alpha has decayed below alphaMin.
func (s *Simulation) Step() bool {
	s.alpha += (s.alphaTarget - s.alpha) * s.alphaDecay

	for _, nf := range s.forces {
		nf.force.Apply(s.alpha)
	}

	damping := 1 - s.velocityDecay
	for _, n := range s.nodes {
		n.VX *= damping
		n.VY *= damping
		n.X += n.VX
		n.Y += n.VY
	}

	for _, fn := range s.onTick {
		fn()
	}

	return s.alpha >= s.alphaMin
}

// ConvergenceSteps returns the number of steps after which alpha decays
// below alphaMin: ceil(log(alphaMin) / log(1 - alphaDecay)). The count is
// a pure function of the cooling schedule, which makes static layout work
// bounded and deterministic.
func (s *Simulation) ConvergenceSteps() int {
	return int(math.Ceil(math.Log(s.alphaMin) / math.Log(1-s.alphaDecay)))
}

// Converge runs Step exactly ConvergenceSteps times with no intermediate
// observation, leaving the layout visually settled.
func (s *Simulation) Converge() {
	n := s.ConvergenceSteps()
	for i := 0; i < n; i++ {
		s.Step()
	}
}
