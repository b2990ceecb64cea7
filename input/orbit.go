package input

import (
	"math"

	"lightlab/scene"
)

// OrbitController turns left-drag into camera orbit and the scroll wheel
// into zoom around the camera target.
type OrbitController struct {
	Camera *scene.OrbitCamera

	// RotateSpeed is radians per pixel of drag.
	RotateSpeed float32
	// ZoomBase is the distance factor per scroll notch.
	ZoomBase float64
	Enabled  bool
}

func NewOrbitController(camera *scene.OrbitCamera) *OrbitController {
	return &OrbitController{
		Camera:      camera,
		RotateSpeed: 0.005,
		ZoomBase:    0.95,
		Enabled:     true,
	}
}

// Update applies this frame's mouse input. It reports whether the camera
// moved.
func (c *OrbitController) Update(im *Manager) bool {
	if !c.Enabled {
		return false
	}
	moved := false

	// Skip the press frame so the jump from the previous cursor position
	// is not applied.
	if im.IsMouseDown(MouseLeft) && !im.IsMousePressed(MouseLeft) {
		dx := float32(im.MouseDeltaX)
		dy := float32(im.MouseDeltaY)
		if dx != 0 || dy != 0 {
			c.Camera.Orbit(-dx*c.RotateSpeed, dy*c.RotateSpeed)
			moved = true
		}
	}

	if im.ScrollDelta != 0 {
		c.Camera.Zoom(float32(math.Pow(c.ZoomBase, im.ScrollDelta)))
		moved = true
	}
	return moved
}
