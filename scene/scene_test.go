package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectCenterAndCorners(t *testing.T) {
	c := NewCamera(800, 600)

	// World origin projects to the viewport center.
	x, y := Project(Vec3{}, c, 800, 600)
	assert.InDelta(t, 400, x, 1e-9)
	assert.InDelta(t, 300, y, 1e-9)

	// +Y in world space is up, so it maps to a smaller screen Y.
	_, yTop := Project(Vec3{Y: 300}, c, 800, 600)
	assert.InDelta(t, 0, yTop, 1e-9)

	// Frustum right edge maps to the right viewport edge.
	xRight, _ := Project(Vec3{X: 400}, c, 800, 600)
	assert.InDelta(t, 800, xRight, 1e-9)
}

func TestProjectUnprojectRoundTrip(t *testing.T) {
	c := NewCamera(800, 600)
	c.Zoom = 2.5
	c.Position.X = 17
	c.Position.Y = -4

	x, y := Project(Vec3{X: 31, Y: 12}, c, 1024, 768)
	wx, wy := Unproject(x, y, c, 1024, 768)
	assert.InDelta(t, 31, wx, 1e-9)
	assert.InDelta(t, 12, wy, 1e-9)
}

func TestSceneRegistry(t *testing.T) {
	s := New()
	a := &Primitive{Kind: KindNode}
	b := &Primitive{Kind: KindLink}
	s.Add(a)
	s.Add(b)
	require.Equal(t, 2, s.Len())

	s.Remove(a)
	require.Equal(t, 1, s.Len())
	assert.Same(t, b, s.Primitives()[0])

	s.Clear()
	assert.Zero(t, s.Len())
}

func TestHoverTransitionsFireOnce(t *testing.T) {
	enters, leaves := 0, 0
	p := &Primitive{
		Kind:         KindNode,
		OnHoverEnter: func() { enters++ },
		OnHoverLeave: func() { leaves++ },
	}

	p.SetHovered(true)
	p.SetHovered(true) // no duplicate enter while inside
	assert.Equal(t, 1, enters)
	assert.Equal(t, 0, leaves)

	p.SetHovered(false)
	p.SetHovered(false)
	assert.Equal(t, 1, enters)
	assert.Equal(t, 1, leaves)
}

func TestPickNodePriorityOverLink(t *testing.T) {
	s := New()
	c := NewCamera(800, 600)

	link := &Primitive{Kind: KindLink, Line: &LineGeometry{}}
	link.Line.SetEndpoints(Vec3{X: -100}, Vec3{X: 100})
	s.Add(link)

	node := &Primitive{
		Kind:   KindNode,
		Scale:  1,
		Circle: &CircleGeometry{Radius: 5},
	}
	s.Add(node)

	// Pointer at the viewport center sits on both the node and the link;
	// the node wins because nodes render in front.
	got := Pick(s, c, 400, 300, 800, 600)
	assert.Same(t, node, got)

	// Away from the node but still on the line, the link is picked.
	got = Pick(s, c, 480, 300, 800, 600)
	assert.Same(t, link, got)

	// Off both: nothing.
	assert.Nil(t, Pick(s, c, 480, 200, 800, 600))
}

func TestPickNodeBoundary(t *testing.T) {
	s := New()
	c := NewCamera(800, 600)
	node := &Primitive{Kind: KindNode, Scale: 1, Circle: &CircleGeometry{Radius: 5}}
	s.Add(node)

	// Radius 5 world units at zoom 1 over a matching viewport is 5px.
	assert.Same(t, node, Pick(s, c, 404, 300, 800, 600))
	assert.Nil(t, Pick(s, c, 406, 300, 800, 600))
}

func TestLineGeometryBounds(t *testing.T) {
	g := &LineGeometry{}
	g.SetEndpoints(Vec3{X: 3, Y: -2}, Vec3{X: -1, Y: 7})
	minX, minY, maxX, maxY := g.Bounds()
	assert.Equal(t, -1.0, minX)
	assert.Equal(t, -2.0, minY)
	assert.Equal(t, 3.0, maxX)
	assert.Equal(t, 7.0, maxY)
}
