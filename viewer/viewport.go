package viewer

import "log"

// Resize fits the viewport to the given bounds while preserving the
// original aspect ratio: whichever dimension is the binding constraint
// wins. The camera frustum and renderer buffer follow the new size, and
// one frame is rendered immediately so no stale frame stays visible.
func (v *View) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}

	scale := width / v.opts.Width
	if s := height / v.opts.Height; s < scale {
		scale = s
	}
	v.width = v.opts.Width * scale
	v.height = v.opts.Height * scale

	v.camera.SetFrustum(v.width, v.height)

	if err := v.renderNow(); err != nil {
		log.Printf("viewer: render after resize: %v", err)
	}
}
