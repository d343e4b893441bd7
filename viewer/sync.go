package viewer

import "github.com/toposcope/toposcope/scene"

// Sync copies solved node positions into the primitives and recomputes
// link geometry from the updated endpoints. It runs after every
// simulation step (dynamic) or once after convergence (static), and is
// idempotent: with unchanged positions it leaves the scene bit-identical.
func (v *View) Sync() {
	if v.graph == nil {
		return
	}

	for i, n := range v.graph.Nodes {
		if i >= len(v.nodeShapes) {
			break
		}
		v.nodeShapes[i].Position = scene.Vec3{X: n.X, Y: n.Y, Z: NodeDepth}
	}

	for i, l := range v.graph.Links {
		if i >= len(v.linkShapes) || !l.Resolved() {
			continue
		}
		// SetEndpoints marks the geometry dirty and refreshes its bounds
		// so hit testing can trust it again.
		v.linkShapes[i].Line.SetEndpoints(
			scene.Vec3{X: l.From.X, Y: l.From.Y, Z: LinkDepth},
			scene.Vec3{X: l.To.X, Y: l.To.Y, Z: LinkDepth},
		)
	}
}
