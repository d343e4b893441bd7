package interact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toposcope/toposcope/scene"
)

// testView builds an 800x600 scene with a single radius-5 node at the
// world origin, which projects to screen (400, 300) at one pixel per
// world unit.
func testView() (*Controller, *scene.Primitive) {
	s := scene.New()
	p := &scene.Primitive{
		Kind:     scene.KindNode,
		Scale:    1,
		Circle:   &scene.CircleGeometry{Radius: 5, Segments: 32},
		Material: &scene.Material{Color: "#ffffff"},
	}
	s.Add(p)
	c := NewController(s, scene.NewCamera(800, 600), 800, 600)
	return c, p
}

func TestHoverFiresOncePerTransition(t *testing.T) {
	c, p := testView()
	var enters, leaves int
	p.OnHoverEnter = func() { enters++ }
	p.OnHoverLeave = func() { leaves++ }

	c.PointerMove(400, 300)
	c.PointerMove(401, 300) // still inside
	assert.Equal(t, 1, enters)
	assert.Equal(t, 0, leaves)
	assert.Same(t, p, c.Hovered())

	c.PointerMove(500, 300)
	c.PointerMove(600, 300)
	assert.Equal(t, 1, enters)
	assert.Equal(t, 1, leaves)
	assert.Nil(t, c.Hovered())
}

func TestClickOnNodeBoundary(t *testing.T) {
	c, p := testView()
	var clicks int
	p.OnClick = func() { clicks++ }

	// 4px off center is inside the 5px radius.
	c.PointerDown(404, 300)
	c.PointerUp(404, 300)
	assert.Equal(t, 1, clicks)

	// 6px off center is outside.
	c.PointerDown(406, 300)
	c.PointerUp(406, 300)
	assert.Equal(t, 1, clicks)
}

func TestDragSuppressesClick(t *testing.T) {
	c, p := testView()
	var clicks int
	p.OnClick = func() { clicks++ }

	c.PointerDown(400, 300)
	c.PointerMove(410, 300)
	c.PointerUp(410, 300)
	assert.Equal(t, 0, clicks)

	// Motion within the threshold still clicks.
	c.PointerDown(400, 300)
	c.PointerMove(402, 300)
	c.PointerUp(402, 300)
	assert.Equal(t, 1, clicks)
}

func TestPanShiftsCameraByWorldDelta(t *testing.T) {
	c, _ := testView()
	var renders int
	c.RequestRender = func() { renders++ }

	// At one pixel per world unit, dragging 80px right moves the camera
	// 80 world units left so the content follows the pointer.
	c.PointerDown(400, 300)
	c.PointerMove(480, 300)
	assert.InDelta(t, -80, c.Camera.Position.X, 1e-9)
	assert.InDelta(t, 0, c.Camera.Position.Y, 1e-9)
	assert.Equal(t, 1, renders)
}

func TestWheelZoomsAboutPointer(t *testing.T) {
	c, _ := testView()

	wx, wy := scene.Unproject(200, 150, c.Camera, c.Width, c.Height)
	c.Wheel(200, 150, -1)
	require.InDelta(t, wheelZoomStep, c.Camera.Zoom, 1e-9)

	// The world point under the pointer must not move.
	ax, ay := scene.Unproject(200, 150, c.Camera, c.Width, c.Height)
	assert.InDelta(t, wx, ax, 1e-9)
	assert.InDelta(t, wy, ay, 1e-9)
}

func TestWheelZoomClamped(t *testing.T) {
	c, _ := testView()

	for i := 0; i < 100; i++ {
		c.Wheel(400, 300, 1)
	}
	assert.Equal(t, c.MinZoom, c.Camera.Zoom)

	for i := 0; i < 200; i++ {
		c.Wheel(400, 300, -1)
	}
	assert.Equal(t, c.MaxZoom, c.Camera.Zoom)
}

func TestPickPanicRecovered(t *testing.T) {
	c, _ := testView()
	c.Scene = nil // forces a panic inside the hit test

	assert.NotPanics(t, func() { c.PointerMove(400, 300) })
	assert.Nil(t, c.Hovered())
}

func TestPointerLeaveClearsState(t *testing.T) {
	c, p := testView()
	var leaves int
	p.OnHoverLeave = func() { leaves++ }

	c.PointerMove(400, 300)
	require.Same(t, p, c.Hovered())

	c.PointerDown(400, 300)
	c.PointerLeave()
	assert.Nil(t, c.Hovered())
	assert.Equal(t, 1, leaves)

	// The interrupted press must not click on the next release.
	var clicks int
	p.OnClick = func() { clicks++ }
	c.PointerUp(400, 300)
	assert.Equal(t, 0, clicks)
}
