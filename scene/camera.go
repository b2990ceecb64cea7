package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a perspective camera that looks from Position toward Target.
type Camera struct {
	Position    mgl32.Vec3
	Target      mgl32.Vec3
	Up          mgl32.Vec3
	FOV         float32 // vertical, radians
	AspectRatio float32
	NearPlane   float32
	FarPlane    float32

	// Cached matrices
	viewMatrix       mgl32.Mat4
	projectionMatrix mgl32.Mat4
	dirty            bool
}

func NewCamera(fov, aspectRatio, nearPlane, farPlane float32) *Camera {
	return &Camera{
		Position:    mgl32.Vec3{0, 0, 1},
		Target:      mgl32.Vec3{},
		Up:          mgl32.Vec3{0, 1, 0},
		FOV:         fov,
		AspectRatio: aspectRatio,
		NearPlane:   nearPlane,
		FarPlane:    farPlane,
		dirty:       true,
	}
}

func (c *Camera) UpdateAspectRatio(width, height float32) {
	if height > 0 {
		c.AspectRatio = width / height
		c.dirty = true
	}
}

func (c *Camera) SetPosition(pos mgl32.Vec3) {
	c.Position = pos
	c.dirty = true
}

func (c *Camera) LookAt(target mgl32.Vec3) {
	c.Target = target
	c.dirty = true
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	if c.dirty {
		c.updateMatrices()
	}
	return c.viewMatrix
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	if c.dirty {
		c.updateMatrices()
	}
	return c.projectionMatrix
}

func (c *Camera) updateMatrices() {
	c.viewMatrix = mgl32.LookAtV(c.Position, c.Target, c.Up)
	c.projectionMatrix = mgl32.Perspective(c.FOV, c.AspectRatio, c.NearPlane, c.FarPlane)
	c.dirty = false
}

// OrbitCamera moves a Camera on a sphere around Target.
type OrbitCamera struct {
	*Camera
	Distance    float32
	Yaw         float32
	Pitch       float32
	MinDistance float32
	MaxDistance float32
}

// NewOrbitCamera derives yaw, pitch and distance from the camera's current
// position relative to its target.
func NewOrbitCamera(camera *Camera, minDistance, maxDistance float32) *OrbitCamera {
	offset := camera.Position.Sub(camera.Target)
	d := offset.Len()
	c := &OrbitCamera{
		Camera:      camera,
		Distance:    d,
		MinDistance: minDistance,
		MaxDistance: maxDistance,
	}
	if d > 0 {
		c.Pitch = float32(math.Asin(float64(offset.Y() / d)))
		c.Yaw = float32(math.Atan2(float64(offset.X()), float64(offset.Z())))
	}
	c.UpdatePosition()
	return c
}

func (c *OrbitCamera) UpdatePosition() {
	c.Pitch = mgl32.Clamp(c.Pitch, -1.5, 1.5)
	c.Distance = mgl32.Clamp(c.Distance, c.MinDistance, c.MaxDistance)

	// Calculate position from spherical coordinates
	cosPitch := float32(math.Cos(float64(c.Pitch)))
	sinPitch := float32(math.Sin(float64(c.Pitch)))
	cosYaw := float32(math.Cos(float64(c.Yaw)))
	sinYaw := float32(math.Sin(float64(c.Yaw)))

	offset := mgl32.Vec3{
		c.Distance * cosPitch * sinYaw,
		c.Distance * sinPitch,
		c.Distance * cosPitch * cosYaw,
	}

	c.SetPosition(c.Target.Add(offset))
}

func (c *OrbitCamera) Orbit(deltaYaw, deltaPitch float32) {
	c.Yaw += deltaYaw
	c.Pitch += deltaPitch
	c.UpdatePosition()
}

// Zoom scales the distance to the target; factors below 1 move closer.
func (c *OrbitCamera) Zoom(factor float32) {
	if factor <= 0 {
		return
	}
	c.Distance *= factor
	c.UpdatePosition()
}
