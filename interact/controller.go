// Package interact turns raw pointer input into camera motion and
// primitive events. The controller owns the hover and drag state machines
// and mutates the camera directly; everything it picks or fires goes
// through the handlers the entity binder attached to the primitives.
package interact

import (
	"log"
	"math"

	"github.com/toposcope/toposcope/scene"
)

// Default interaction tuning.
const (
	// DefaultDragThreshold is how far, in pixels, the pointer may travel
	// between press and release and still count as a click.
	DefaultDragThreshold = 3.0

	DefaultMinZoom = 0.1
	DefaultMaxZoom = 50.0

	// wheelZoomStep is the zoom factor per wheel notch.
	wheelZoomStep = 1.1
)

// Controller routes pointer input to a scene viewed through a camera.
// It is not safe for concurrent use; drive it from the frame loop.
type Controller struct {
	Scene  *scene.Scene
	Camera *scene.Camera

	// Viewport size in pixels, kept current by the owner on resize.
	Width  float64
	Height float64

	MinZoom       float64
	MaxZoom       float64
	DragThreshold float64

	// RequestRender schedules a redraw after the camera moved. Optional.
	RequestRender func()

	hovered *scene.Primitive

	pressed bool
	moved   bool
	downX   float64
	downY   float64
	lastX   float64
	lastY   float64
}

// NewController creates a controller with default zoom limits and click
// threshold.
func NewController(s *scene.Scene, c *scene.Camera, width, height float64) *Controller {
	return &Controller{
		Scene:         s,
		Camera:        c,
		Width:         width,
		Height:        height,
		MinZoom:       DefaultMinZoom,
		MaxZoom:       DefaultMaxZoom,
		DragThreshold: DefaultDragThreshold,
	}
}

// PointerDown begins a press. Whether it ends as a click or a pan is
// decided by how far the pointer moves before PointerUp.
func (c *Controller) PointerDown(x, y float64) {
	c.pressed = true
	c.moved = false
	c.downX, c.downY = x, y
	c.lastX, c.lastY = x, y
}

// PointerMove pans the camera while pressed, or updates hover state
// otherwise. Panning keeps the world point under the pointer fixed by
// shifting the camera by the world-space delta of the motion.
func (c *Controller) PointerMove(x, y float64) {
	if c.pressed {
		if math.Hypot(x-c.downX, y-c.downY) > c.DragThreshold {
			c.moved = true
		}
		wx1, wy1 := scene.Unproject(c.lastX, c.lastY, c.Camera, c.Width, c.Height)
		wx2, wy2 := scene.Unproject(x, y, c.Camera, c.Width, c.Height)
		c.Camera.Position.X -= wx2 - wx1
		c.Camera.Position.Y -= wy2 - wy1
		c.lastX, c.lastY = x, y
		c.render()
		return
	}

	c.lastX, c.lastY = x, y
	c.setHovered(c.pick(x, y))
}

// PointerUp ends a press. A press that never left the drag threshold is a
// click on whatever is under the pointer; anything else was a pan and
// fires nothing.
func (c *Controller) PointerUp(x, y float64) {
	wasClick := c.pressed && !c.moved
	c.pressed = false
	c.moved = false
	if !wasClick {
		return
	}
	if p := c.pick(x, y); p != nil && p.OnClick != nil {
		p.OnClick()
	}
}

// PointerLeave clears hover and any in-flight press when the pointer
// leaves the viewport.
func (c *Controller) PointerLeave() {
	c.pressed = false
	c.moved = false
	c.setHovered(nil)
}

// Wheel zooms by whole notches, positive away from the user (zoom out).
// The world point under the pointer stays fixed: after the zoom changes,
// the camera shifts by however far that point moved.
func (c *Controller) Wheel(x, y, delta float64) {
	zoom := c.Camera.Zoom * math.Pow(wheelZoomStep, -delta)
	zoom = math.Max(c.MinZoom, math.Min(c.MaxZoom, zoom))
	if zoom == c.Camera.Zoom {
		return
	}

	wx, wy := scene.Unproject(x, y, c.Camera, c.Width, c.Height)
	c.Camera.Zoom = zoom
	ax, ay := scene.Unproject(x, y, c.Camera, c.Width, c.Height)
	c.Camera.Position.X += wx - ax
	c.Camera.Position.Y += wy - ay
	c.render()
}

// Resize updates the viewport size the controller unprojects against.
func (c *Controller) Resize(width, height float64) {
	c.Width = width
	c.Height = height
}

// Hovered returns the currently hovered primitive, or nil.
func (c *Controller) Hovered() *scene.Primitive { return c.hovered }

// setHovered transitions hover from the old primitive to the new one.
// Primitive.SetHovered guarantees each handler fires once per transition.
func (c *Controller) setHovered(p *scene.Primitive) {
	if c.hovered == p {
		return
	}
	if c.hovered != nil {
		c.hovered.SetHovered(false)
	}
	c.hovered = p
	if p != nil {
		p.SetHovered(true)
	}
}

// pick hit-tests the scene, recovering from handler-free panics so a bad
// geometry can never take down the frame loop.
func (c *Controller) pick(x, y float64) (p *scene.Primitive) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("interact: pick at (%.0f, %.0f) panicked: %v", x, y, r)
			p = nil
		}
	}()
	return scene.Pick(c.Scene, c.Camera, x, y, c.Width, c.Height)
}

func (c *Controller) render() {
	if c.RequestRender != nil {
		c.RequestRender()
	}
}
