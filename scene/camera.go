package scene

// Camera is an orthographic camera over the layout plane. Width and Height
// are the frustum extents in world units at zoom 1; Position pans the view
// center. The viewport manager mutates the frustum on resize, and the
// projection utility and renderer read it.
type Camera struct {
	Position Vec3
	Width    float64
	Height   float64
	Zoom     float64
	Near     float64
	Far      float64
}

// NewCamera creates a camera with the given frustum extents, centered on
// the origin and looking down the Z axis.
func NewCamera(width, height float64) *Camera {
	return &Camera{
		Position: Vec3{Z: 100},
		Width:    width,
		Height:   height,
		Zoom:     1,
		Near:     0.1,
		Far:      1000,
	}
}

// SetFrustum replaces the frustum extents.
func (c *Camera) SetFrustum(width, height float64) {
	c.Width = width
	c.Height = height
}

// Ratio returns the frustum aspect ratio.
func (c *Camera) Ratio() float64 {
	return c.Width / c.Height
}

// ProjectNDC maps a world position to normalized device coordinates in
// [-1, 1] on both axes, with +Y up.
func (c *Camera) ProjectNDC(p Vec3) (x, y float64) {
	x = (p.X - c.Position.X) * 2 * c.Zoom / c.Width
	y = (p.Y - c.Position.Y) * 2 * c.Zoom / c.Height
	return x, y
}

// Project converts a world position to pixel coordinates for a viewport of
// the given size. Screen Y grows downward while NDC Y grows upward, so the
// Y axis is inverted. Pure function of its inputs; callers clamp to the
// viewport themselves if they need to.
func Project(p Vec3, c *Camera, viewportWidth, viewportHeight float64) (x, y float64) {
	nx, ny := c.ProjectNDC(p)
	x = (nx + 1) / 2 * viewportWidth
	y = (1 - ny) / 2 * viewportHeight
	return x, y
}

// Unproject maps pixel coordinates back to a world position on the layout
// plane. Inverse of Project for z = 0.
func Unproject(x, y float64, c *Camera, viewportWidth, viewportHeight float64) (wx, wy float64) {
	nx := x/viewportWidth*2 - 1
	ny := 1 - y/viewportHeight*2
	wx = nx*c.Width/(2*c.Zoom) + c.Position.X
	wy = ny*c.Height/(2*c.Zoom) + c.Position.Y
	return wx, wy
}

// PixelsPerUnit returns the screen-pixel length of one world unit for a
// viewport of the given width.
func (c *Camera) PixelsPerUnit(viewportWidth float64) float64 {
	return viewportWidth * c.Zoom / c.Width
}
