package lighting

import (
	"math"
	"testing"
	"time"

	"lightlab/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// recordingSettings captures what the Updater writes to the renderer.
type recordingSettings struct {
	exposure float32
	shadows  bool
	calls    int
}

func (s *recordingSettings) SetExposure(e float32)    { s.exposure = e; s.calls++ }
func (s *recordingSettings) SetShadowsEnabled(b bool) { s.shadows = b }

// pendingTextures holds load requests until the test fires them.
type pendingTextures struct {
	paths     []string
	callbacks []func(*scene.Texture)
}

func (p *pendingTextures) Load(path string, onLoad func(*scene.Texture)) {
	p.paths = append(p.paths, path)
	p.callbacks = append(p.callbacks, onLoad)
}

func newTestRig() (*Rig, *pendingTextures) {
	tex := &pendingTextures{}
	return BuildRig("assets", 1.5, tex), tex
}

func relClose(a, b float64) bool {
	if b == 0 {
		return a == 0
	}
	return math.Abs(a-b)/math.Abs(b) < 1e-6
}

func TestPresetTablesKeepDeclarationOrder(t *testing.T) {
	if got := BulbLuminousPowers.Label(0); got != "110000 lm (1000W)" {
		t.Errorf("bulb[0]: expected 110000 lm (1000W), got %q", got)
	}
	if got := BulbLuminousPowers.Lookup("Off"); got != 0 {
		t.Errorf("Lookup(Off): expected 0, got %v", got)
	}
	if BulbLuminousPowers.Len() != 8 || HemiLuminousIrradiances.Len() != 11 {
		t.Errorf("table sizes: expected 8 / 11, got %d / %d", BulbLuminousPowers.Len(), HemiLuminousIrradiances.Len())
	}
	if got := HemiLuminousIrradiances.Index("50000 lx (Direct Sun)"); got != 10 {
		t.Errorf("Index: expected 10, got %d", got)
	}
	if got := HemiLuminousIrradiances.Index("nope"); got != -1 {
		t.Errorf("Index(unknown): expected -1, got %d", got)
	}
}

func TestLookupUnknownLabelPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Lookup: expected panic for unknown label")
		}
	}()
	BulbLuminousPowers.Lookup("9000 lm")
}

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	if !p.ShadowsEnabled() || p.Exposure() != 0.5 {
		t.Errorf("defaults: expected shadows on and exposure 0.5, got %v / %v", p.ShadowsEnabled(), p.Exposure())
	}
	if p.BulbPower() != "180 lm (25W)" {
		t.Errorf("default bulb: expected 180 lm (25W), got %q", p.BulbPower())
	}
	if p.HemiIrradiance() != "350 lx (Office Room)" {
		t.Errorf("default hemi: expected 350 lx (Office Room), got %q", p.HemiIrradiance())
	}
}

func TestParamsSetters(t *testing.T) {
	p := DefaultParams()
	p.SetExposure(3)
	if p.Exposure() != 1 {
		t.Errorf("SetExposure: expected clamp to 1, got %v", p.Exposure())
	}
	p.SetExposure(-1)
	if p.Exposure() != 0 {
		t.Errorf("SetExposure: expected clamp to 0, got %v", p.Exposure())
	}

	defer func() {
		if recover() == nil {
			t.Error("SetBulbPower: expected panic for a label outside the table")
		}
	}()
	p.SetBulbPower("50 lx (Living Room)")
}

func TestExposureCurve(t *testing.T) {
	cases := []struct{ in, want float32 }{{0, 0}, {1, 1}, {0.5, 0.03125}}
	for _, c := range cases {
		if got := ToneMappingExposure(c.in); got != c.want {
			t.Errorf("ToneMappingExposure(%v): expected %v, got %v", c.in, c.want, got)
		}
	}

	rig, _ := newTestRig()
	p := DefaultParams()
	u := NewUpdater(p, rig)
	s := &recordingSettings{}
	for i := 0; i <= 20; i++ {
		x := float32(i) / 20
		p.SetExposure(x)
		u.Update(s, time.Unix(0, 0))
		want := math.Pow(float64(x), 5)
		if math.Abs(float64(s.exposure)-want) > 1e-6 {
			t.Errorf("exposure(%v): expected %v, got %v", x, want, s.exposure)
		}
	}
}

func TestShadowEdgeMarksMaterialsOnce(t *testing.T) {
	rig, _ := newTestRig()
	p := DefaultParams()
	u := NewUpdater(p, rig)
	s := &recordingSettings{}

	sequence := []bool{false, false, true, true, false}
	for i, on := range sequence {
		for _, m := range rig.SurfaceMaterials() {
			m.CommitUpdate()
		}
		p.SetShadowsEnabled(on)
		f := u.Update(s, time.Unix(0, 0))

		wantEdge := i == 2 || i == 4
		if f.ShadowEdge != wantEdge {
			t.Errorf("frame %d: expected edge %v, got %v", i, wantEdge, f.ShadowEdge)
		}
		for _, m := range rig.SurfaceMaterials() {
			if m.NeedsUpdate != wantEdge {
				t.Errorf("frame %d: %s NeedsUpdate expected %v, got %v", i, m.Name, wantEdge, m.NeedsUpdate)
			}
		}
		if s.shadows != on || rig.Bulb.CastShadow != on {
			t.Errorf("frame %d: expected shadows %v on renderer and bulb, got %v / %v", i, on, s.shadows, rig.Bulb.CastShadow)
		}
	}
}

func TestFirstFrameWithShadowsIsAnEdge(t *testing.T) {
	rig, _ := newTestRig()
	u := NewUpdater(DefaultParams(), rig)
	if f := u.Update(&recordingSettings{}, time.Now()); !f.ShadowEdge {
		t.Error("Update: expected the first frame with default shadows to flag materials")
	}
	if rig.BulbMaterial.NeedsUpdate {
		t.Error("Update: bulb material must not be flagged on a shadow edge")
	}
}

func TestBulbEmissiveIntensity(t *testing.T) {
	rig, _ := newTestRig()
	p := DefaultParams()
	u := NewUpdater(p, rig)
	s := &recordingSettings{}

	for _, label := range BulbLuminousPowers.Labels() {
		p.SetBulbPower(label)
		u.Update(s, time.Unix(0, 0))
		value := BulbLuminousPowers.Lookup(label)
		if float64(rig.Bulb.Intensity) != value {
			t.Errorf("%s: expected intensity %v, got %v", label, value, rig.Bulb.Intensity)
		}
		if !relClose(float64(rig.BulbMaterial.EmissiveIntensity), value/0.0004) {
			t.Errorf("%s: expected emissive %v, got %v", label, value/0.0004, rig.BulbMaterial.EmissiveIntensity)
		}
	}

	p.SetBulbPower("800 lm (60W)")
	f := u.Update(s, time.Unix(0, 0))
	if f.EmissiveIntensity != 2000000 {
		t.Errorf("800 lm: expected emissive 2000000, got %v", f.EmissiveIntensity)
	}
}

func TestBulbHeight(t *testing.T) {
	rig, _ := newTestRig()
	u := NewUpdater(DefaultParams(), rig)
	s := &recordingSettings{}

	for _, ms := range []int64{0, 1, 1000, 3141, 6283, 12566, 1700000000123} {
		now := time.UnixMilli(ms)
		u.Update(s, now)
		want := math.Cos(float64(ms)*0.0005)*0.75 + 1.25
		got := rig.Bulb.Position().Y()
		if math.Abs(float64(got)-want) > 1e-5 {
			t.Errorf("t=%dms: expected y=%v, got %v", ms, want, got)
		}
		if got < 0.5-1e-6 || got > 2.0+1e-6 {
			t.Errorf("t=%dms: y=%v outside [0.5, 2.0]", ms, got)
		}
		pos := rig.Bulb.Position()
		if pos.X() != 0 || pos.Z() != 0 {
			t.Errorf("t=%dms: expected x/z fixed at 0, got %v", ms, pos)
		}
	}
}

func TestBulbMeshFollowsLight(t *testing.T) {
	rig, _ := newTestRig()
	u := NewUpdater(DefaultParams(), rig)
	u.Update(&recordingSettings{}, time.UnixMilli(0))

	mesh := rig.Bulb.Node.Children[0]
	if y := mesh.GetWorldMatrix().Col(3).Y(); math.Abs(float64(y)-2.0) > 1e-5 {
		t.Errorf("bulb mesh: expected y=2 at t=0, got %v", y)
	}
}

func TestHemiIntensityTracksSelection(t *testing.T) {
	rig, _ := newTestRig()
	p := DefaultParams()
	u := NewUpdater(p, rig)
	s := &recordingSettings{}

	for _, label := range HemiLuminousIrradiances.Labels() {
		p.SetHemiIrradiance(label)
		f := u.Update(s, time.Unix(0, 0))
		want := float32(HemiLuminousIrradiances.Lookup(label))
		if rig.Hemi.Intensity != want || f.HemiIntensity != want {
			t.Errorf("%s: expected %v in the same frame, got %v", label, want, rig.Hemi.Intensity)
		}
	}
}

func TestRigLayout(t *testing.T) {
	rig, tex := newTestRig()

	if len(tex.paths) != 7 {
		t.Errorf("BuildRig: expected 7 texture requests, got %d", len(tex.paths))
	}
	if p := rig.Camera.Position; p != (mgl32.Vec3{-4, 2, 4}) {
		t.Errorf("camera: expected (-4, 2, 4), got %v", p)
	}
	if got := rig.Cubes[0].Transform.Position; got != (mgl32.Vec3{-0.5, 0.25, -1}) {
		t.Errorf("cube 1: expected (-0.5, 0.25, -1), got %v", got)
	}
	if got := rig.Cubes[1].Transform.Position; got != (mgl32.Vec3{7, 0.25, 0}) {
		t.Errorf("cube 2: expected (7, 0.25, 0), got %v", got)
	}
	// Cube 3 keeps its default placement; its move was applied to cube 2.
	if got := rig.Cubes[2].Transform.Position; got != (mgl32.Vec3{}) {
		t.Errorf("cube 3: expected origin, got %v", got)
	}
	if rig.Cubes[2].CastShadow {
		t.Error("cube 3: expected no shadow casting")
	}

	n := rig.Floor.GetWorldMatrix()
	up := n.Mul4x1(mgl32.Vec4{0, 0, 1, 0}).Vec3()
	if math.Abs(float64(up.Y())-1) > 1e-5 {
		t.Errorf("floor: expected normal facing +Y, got %v", up)
	}
	if len(rig.Scene.Materials()) != 4 {
		t.Errorf("Materials: expected floor, cube, ball and bulb, got %d", len(rig.Scene.Materials()))
	}
}

// snapshot captures the texture-related state of a material.
type snapshot struct {
	maps        [5]*scene.Texture
	needsUpdate bool
}

func snap(m *scene.Material) snapshot {
	return snapshot{
		maps:        [5]*scene.Texture{m.Map, m.NormalMap, m.RoughnessMap, m.MetalnessMap, m.BumpMap},
		needsUpdate: m.NeedsUpdate,
	}
}

func TestTextureCallbacksAreOrderIndependent(t *testing.T) {
	textures := make([]*scene.Texture, len(textureBindings))
	for i := range textures {
		textures[i] = scene.NewTexture(textureBindings[i].file)
	}

	run := func(order []int, twice bool) *Rig {
		rig, pending := newTestRig()
		for _, i := range order {
			pending.callbacks[i](textures[i])
			if twice {
				pending.callbacks[i](textures[i])
			}
		}
		return rig
	}

	forward := []int{0, 1, 2, 3, 4, 5, 6}
	interleaved := []int{6, 3, 0, 5, 4, 1, 2}

	a := run(forward, false)
	b := run(interleaved, false)
	c := run(forward, true)
	for name, pair := range map[string][2]*Rig{"interleaved": {a, b}, "repeated": {a, c}} {
		for i, m := range pair[0].SurfaceMaterials() {
			if snap(m) != snap(pair[1].SurfaceMaterials()[i]) {
				t.Errorf("%s: material %s differs", name, m.Name)
			}
		}
	}

	if a.FloorMaterial.Map != textures[0] || a.CubeMaterial.BumpMap != textures[4] || a.BallMaterial.MetalnessMap != textures[6] {
		t.Error("callbacks: textures landed in the wrong slots")
	}
	floor := textures[0]
	if floor.Wrap != scene.WrapRepeat || floor.Repeat != (mgl32.Vec2{30, 30}) || !floor.SRGB || floor.Anisotropy != 4 {
		t.Errorf("floor base color: unexpected sampling %+v", floor)
	}
	if textures[1].SRGB {
		t.Error("floor normal map must stay linear")
	}
	if textures[5].Wrap != scene.WrapClamp {
		t.Error("earth map: expected clamp wrapping")
	}
}
