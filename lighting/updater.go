package lighting

import (
	"math"
	"time"
)

// RenderSettings is the part of the renderer the Updater drives.
type RenderSettings interface {
	SetExposure(exposure float32)
	SetShadowsEnabled(enabled bool)
}

// Frame summarizes the values derived by one Update call.
type Frame struct {
	Exposure          float32
	ShadowsEnabled    bool
	ShadowEdge        bool
	BulbIntensity     float32
	EmissiveIntensity float32
	HemiIntensity     float32
	BulbHeight        float32
}

// Updater applies Params to a Rig once per frame.
type Updater struct {
	params *Params
	rig    *Rig

	// previousShadows latches the shadow flag of the last frame. It starts
	// false, so the first frame with shadows on counts as a change.
	previousShadows bool
}

func NewUpdater(params *Params, rig *Rig) *Updater {
	return &Updater{params: params, rig: rig}
}

// ToneMappingExposure maps the [0,1] slider onto the renderer exposure.
func ToneMappingExposure(slider float32) float32 {
	return float32(math.Pow(float64(slider), 5))
}

// EmissiveIntensity converts a bulb intensity to the emissive intensity of
// its visible sphere (radius 0.02).
func EmissiveIntensity(intensity float32) float32 {
	return intensity / (bulbRadius * bulbRadius)
}

// BulbHeight returns the bulb's Y position at wall-clock time now.
func BulbHeight(now time.Time) float32 {
	t := float64(now.UnixMilli()) * 0.0005
	return float32(math.Cos(t)*0.75 + 1.25)
}

// Update derives this frame's light state from the params, writes it into
// the rig and settings, and returns what it applied.
func (u *Updater) Update(settings RenderSettings, now time.Time) Frame {
	p := u.params
	r := u.rig
	var f Frame

	f.Exposure = ToneMappingExposure(p.Exposure())
	settings.SetExposure(f.Exposure)

	f.ShadowsEnabled = p.ShadowsEnabled()
	settings.SetShadowsEnabled(f.ShadowsEnabled)
	r.Bulb.CastShadow = f.ShadowsEnabled

	if f.ShadowsEnabled != u.previousShadows {
		for _, m := range r.SurfaceMaterials() {
			m.NeedsUpdate = true
		}
		u.previousShadows = f.ShadowsEnabled
		f.ShadowEdge = true
	}

	f.BulbIntensity = float32(p.BulbTable().Lookup(p.BulbPower()))
	r.Bulb.Intensity = f.BulbIntensity

	f.EmissiveIntensity = EmissiveIntensity(f.BulbIntensity)
	r.BulbMaterial.EmissiveIntensity = f.EmissiveIntensity

	f.HemiIntensity = float32(p.HemiTable().Lookup(p.HemiIrradiance()))
	r.Hemi.Intensity = f.HemiIntensity

	f.BulbHeight = BulbHeight(now)
	r.Bulb.Node.SetPositionY(f.BulbHeight)

	return f
}
