package renderer

import (
	"lightlab/core"
	"lightlab/internal/opengl"
	"lightlab/scene"
)

// materialCache holds the shading state resolved for each material. A
// material is recomputed the first time it is seen and whenever its
// NeedsUpdate flag is set; the flag is consumed by the recompute.
type materialCache struct {
	states map[*scene.Material]*opengl.MaterialState
	upload func(*scene.Texture) error
}

func newMaterialCache(upload func(*scene.Texture) error) *materialCache {
	return &materialCache{
		states: make(map[*scene.Material]*opengl.MaterialState),
		upload: upload,
	}
}

// refresh recomputes every new or flagged material and returns how many
// were recomputed.
func (c *materialCache) refresh(mats []*scene.Material, shadows bool) int {
	n := 0
	for _, m := range mats {
		_, known := c.states[m]
		if !m.CommitUpdate() && known {
			continue
		}
		st := opengl.ResolveMaterial(m, shadows, c.upload)
		c.states[m] = &st
		n++
		core.Logger().Debug("material recomputed", "name", m.Name, "version", m.Version,
			"maps", st.Bound(), "shadows", shadows)
	}
	return n
}

func (c *materialCache) state(m *scene.Material) *opengl.MaterialState {
	if m == nil {
		return nil
	}
	return c.states[m]
}

// release frees every texture bound by a cached state once and forgets
// all states.
func (c *materialCache) release(free func(*scene.Texture)) {
	done := make(map[*scene.Texture]bool)
	for m, st := range c.states {
		for _, tex := range st.Maps {
			if tex != nil && !done[tex] {
				done[tex] = true
				free(tex)
			}
		}
		delete(c.states, m)
	}
}
