package scene

// Scene is the registry of primitives the renderer draws and the
// interaction controller picks against. Order is insertion order; links
// are expected to be added before nodes so nodes draw on top, though depth
// separation is what actually guarantees it.
type Scene struct {
	primitives []*Primitive

	// Background is the clear color of the viewport.
	Background string
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{Background: "#111111"}
}

// Add registers a primitive with the scene.
func (s *Scene) Add(p *Primitive) {
	s.primitives = append(s.primitives, p)
}

// Remove unregisters a primitive.
func (s *Scene) Remove(p *Primitive) {
	for i, q := range s.primitives {
		if q == p {
			s.primitives = append(s.primitives[:i], s.primitives[i+1:]...)
			return
		}
	}
}

// Clear removes every primitive. The binder must clear before re-binding,
// otherwise primitives are duplicated.
func (s *Scene) Clear() {
	s.primitives = nil
}

// Primitives returns the registered primitives in insertion order.
func (s *Scene) Primitives() []*Primitive {
	return s.primitives
}

// Len returns the number of registered primitives.
func (s *Scene) Len() int {
	return len(s.primitives)
}
