package scene

import (
	"lightlab/core"

	"github.com/go-gl/mathgl/mgl32"
)

// Light types
const (
	LightTypePoint = iota
	LightTypeHemisphere
)

// Light is a physically based light source. Point lights take their
// position from Node; intensity is in candela for point lights and in
// lux-equivalent units for hemisphere lights.
type Light struct {
	Type        int
	Node        *Node
	Color       core.Color
	GroundColor core.Color // hemisphere only
	Intensity   float32
	Distance    float32 // point only; 0 means no cutoff
	Decay       float32 // point only
	CastShadow  bool
}

// NewPointLight creates a point light with its own node at the origin.
func NewPointLight(color core.Color, intensity, distance, decay float32) *Light {
	return &Light{
		Type:      LightTypePoint,
		Node:      NewNode("PointLight"),
		Color:     color,
		Intensity: intensity,
		Distance:  distance,
		Decay:     decay,
	}
}

// NewHemisphereLight creates a sky/ground ambient light. Its sky
// direction is world +Y.
func NewHemisphereLight(sky, ground core.Color, intensity float32) *Light {
	return &Light{
		Type:        LightTypeHemisphere,
		Color:       sky,
		GroundColor: ground,
		Intensity:   intensity,
	}
}

// Position returns the light's world-space position.
func (l *Light) Position() mgl32.Vec3 {
	if l.Node == nil {
		return mgl32.Vec3{}
	}
	return l.Node.GetWorldMatrix().Col(3).Vec3()
}
