package opengl

import (
	"math"

	"lightlab/core"
	"lightlab/scene"
)

// Texture slots of the main program. Each slot samples from the texture
// unit with the same index; the shadow cube sits after them.
const (
	slotColor = iota
	slotNormal
	slotRoughness
	slotMetalness
	slotBump
	slotCount

	shadowUnit = slotCount
)

// MaterialState is the shading state resolved for a material at its last
// recompute. Draws read maps from here rather than from the material, so
// a texture assigned without NeedsUpdate is not sampled until the next
// recompute.
type MaterialState struct {
	Version uint32
	// Shadows records whether shadow lookups were compiled in.
	Shadows bool
	Maps    [slotCount]*scene.Texture
}

// ResolveMaterial snapshots m's maps, uploading textures that have no GPU
// object yet. A map whose upload fails is left unbound.
func ResolveMaterial(m *scene.Material, shadows bool, upload func(*scene.Texture) error) MaterialState {
	st := MaterialState{Version: m.Version, Shadows: shadows}
	maps := [slotCount]*scene.Texture{m.Map, m.NormalMap, m.RoughnessMap, m.MetalnessMap, m.BumpMap}
	for i, tex := range maps {
		if tex == nil {
			continue
		}
		if !tex.Uploaded() {
			if err := upload(tex); err != nil {
				core.Logger().Warn("texture upload failed", "material", m.Name, "texture", tex.Name, "err", err)
				continue
			}
		}
		st.Maps[i] = tex
	}
	return st
}

// Bound reports how many maps the state samples.
func (st *MaterialState) Bound() int {
	n := 0
	for _, t := range st.Maps {
		if t != nil {
			n++
		}
	}
	return n
}

// linearRGB decodes an sRGB color to linear components scaled by k.
func linearRGB(c core.Color, k float32) (r, g, b float32) {
	return srgbToLinear(c.R) * k, srgbToLinear(c.G) * k, srgbToLinear(c.B) * k
}

func srgbToLinear(c float32) float32 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return float32(math.Pow((float64(c)+0.055)/1.055, 2.4))
}
