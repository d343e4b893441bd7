package viewer

import (
	"context"
	"time"

	"github.com/toposcope/toposcope/physics"
)

// preRollSteps is the number of synchronous steps dynamic mode runs
// before its first frame when the initial settling animation is disabled.
const preRollSteps = 200

// frameInterval approximates a 60Hz display callback. The dynamic loop
// performs at most one simulation step and one render per interval.
const frameInterval = time.Second / 60

// driftAlphaTarget keeps alpha above the convergence threshold so a
// drifting layout never stops stepping.
const driftAlphaTarget = 0.05

// newSimulation builds the simulation from the view's options: link
// springs, Barnes-Hut repulsion, and centering, in that order.
func (v *View) newSimulation() *physics.Simulation {
	sim := physics.NewSimulation()
	sim.SetNodes(v.graph.Nodes)

	link := physics.NewLinkForce(v.graph.Links)
	link.Distance = v.opts.LinkDistance
	link.Strength = v.opts.LinkStrength
	sim.AddForce("link", link)

	charge := physics.NewManyBodyForce()
	charge.Theta = v.opts.Theta
	charge.DistanceMax = v.opts.DistanceMax
	sim.AddForce("charge", charge)

	sim.AddForce("center", physics.NewCenterForce(0, 0))
	return sim
}

// RunStatic runs the simulation to convergence synchronously: exactly
// ConvergenceSteps steps with no intermediate rendering, then one
// position sync and one render. The simulation is discarded afterwards.
func (v *View) RunStatic() error {
	sim := v.newSimulation()
	sim.Converge()
	v.sim = nil

	v.Sync()
	if err := v.renderNow(); err != nil {
		return err
	}
	if v.opts.OnEnd != nil {
		v.opts.OnEnd()
	}
	return nil
}

// StartDynamic prepares the animated layout: optional settling pre-roll,
// a per-step callback that syncs positions and schedules exactly one
// render for the next frame, and a restarted simulation clock. The frame
// loop (Loop) then advances it.
func (v *View) StartDynamic() {
	sim := v.newSimulation()

	if v.opts.InitialAnimation {
		sim.SetAlpha(1)
	} else {
		// Skip the visible settling animation. Restart below starts the
		// clock without touching alpha, so the cooling from these steps
		// carries over and the first visible frame is already settled.
		for i := 0; i < preRollSteps; i++ {
			sim.Step()
		}
	}

	if v.opts.Drift {
		sim.AddForce("drift", physics.NewDriftForce(time.Now().UnixNano()))
		sim.SetAlphaTarget(driftAlphaTarget)
	}

	sim.OnTick(func() {
		v.Sync()
		v.requestRender()
	})
	sim.Restart()
	v.sim = sim
}

// Step advances the dynamic layout by one frame: one simulation step if
// the clock is running, then any coalesced render. Exposed for callers
// that drive frames themselves (tests, servers with their own cadence).
func (v *View) Step() error {
	if v.sim != nil && v.sim.Running() {
		if !v.sim.Step() && v.sim.Alpha() < v.sim.AlphaMin() {
			v.sim.Stop()
			if v.opts.OnEnd != nil {
				v.opts.OnEnd()
			}
		}
	}
	if v.renderWanted {
		return v.renderNow()
	}
	return nil
}

// Loop is the explicit frame loop for dynamic mode: one iteration per
// display interval, interleaved with externally submitted events. The
// stop flag (Stop) deterministically cancels future frames; context
// cancellation does the same from outside.
func (v *View) Loop(ctx context.Context) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-v.events:
			fn()
		case <-ticker.C:
			if v.stopped {
				return nil
			}
			if err := v.Step(); err != nil {
				return err
			}
		}
	}
}

// Stop raises the loop's stop flag. Call it via Do when invoking from
// another goroutine.
func (v *View) Stop() {
	v.stopped = true
}

// Run loads the graph and drives the configured layout mode. Static mode
// returns once the converged frame is rendered; dynamic mode blocks in
// the frame loop until stopped or canceled.
func (v *View) Run(ctx context.Context) error {
	if err := v.Load(ctx); err != nil {
		return err
	}
	if v.opts.Static {
		return v.RunStatic()
	}
	v.StartDynamic()
	return v.Loop(ctx)
}
