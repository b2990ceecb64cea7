package scene

import "lightlab/core"

// Material is a metallic-roughness standard surface. Texture fields may be
// assigned at any time; set NeedsUpdate afterwards so the renderer
// recomputes its shading state before the next draw.
type Material struct {
	Name      string
	Color     core.Color // base color, multiplied with Map
	Roughness float32    // multiplied with RoughnessMap.G
	Metalness float32    // multiplied with MetalnessMap.B

	Emissive          core.Color
	EmissiveIntensity float32

	Map          *Texture // sRGB base color
	NormalMap    *Texture // tangent-space normals
	RoughnessMap *Texture
	MetalnessMap *Texture
	BumpMap      *Texture // height in R, scaled by BumpScale
	BumpScale    float32

	// NeedsUpdate asks the renderer to rebuild shading state for this
	// material. Version increases each time the renderer consumes it.
	NeedsUpdate bool
	Version     uint32
}

// NewStandardMaterial returns a white, fully rough, non-metallic material.
func NewStandardMaterial(name string) *Material {
	return &Material{
		Name:              name,
		Color:             core.ColorWhite,
		Roughness:         1,
		Metalness:         0,
		Emissive:          core.ColorBlack,
		EmissiveIntensity: 1,
		BumpScale:         1,
	}
}

// CommitUpdate clears NeedsUpdate and bumps Version. It reports whether
// an update was pending.
func (m *Material) CommitUpdate() bool {
	if !m.NeedsUpdate {
		return false
	}
	m.NeedsUpdate = false
	m.Version++
	return true
}

// Textures returns the assigned texture maps.
func (m *Material) Textures() []*Texture {
	var out []*Texture
	for _, t := range []*Texture{m.Map, m.NormalMap, m.RoughnessMap, m.MetalnessMap, m.BumpMap} {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}
