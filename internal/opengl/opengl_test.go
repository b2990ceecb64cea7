package opengl

import (
	"errors"
	"math"
	"testing"

	"lightlab/core"
	"lightlab/scene"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSRGBToLinear(t *testing.T) {
	cases := []struct {
		in, want float32
	}{
		{0, 0},
		{1, 1},
		{0.04045, 0.04045 / 12.92},
		{0.5, 0.21404},
	}
	for _, c := range cases {
		if got := srgbToLinear(c.in); math.Abs(float64(got-c.want)) > 1e-4 {
			t.Errorf("srgbToLinear(%v): expected %v, got %v", c.in, c.want, got)
		}
	}

	r, g, b := linearRGB(core.ColorWhite, 800)
	if r != 800 || g != 800 || b != 800 {
		t.Errorf("linearRGB: expected white scaled to 800, got %v %v %v", r, g, b)
	}
}

func TestResolveMaterialUploadsPendingMaps(t *testing.T) {
	m := scene.NewStandardMaterial("floor")
	m.Map = &scene.Texture{Name: "diffuse", Pixels: []byte{1, 2, 3, 4}, Width: 1, Height: 1}
	m.BumpMap = &scene.Texture{Name: "bump", GLID: 7}
	m.Version = 3

	var uploads []string
	next := uint32(10)
	upload := func(tex *scene.Texture) error {
		uploads = append(uploads, tex.Name)
		tex.GLID = next
		next++
		return nil
	}

	st := ResolveMaterial(m, true, upload)
	if len(uploads) != 1 || uploads[0] != "diffuse" {
		t.Errorf("ResolveMaterial: expected one upload of diffuse, got %v", uploads)
	}
	if st.Maps[slotColor] != m.Map || st.Maps[slotBump] != m.BumpMap {
		t.Error("ResolveMaterial: expected color and bump slots bound")
	}
	if st.Maps[slotNormal] != nil || st.Bound() != 2 {
		t.Errorf("ResolveMaterial: expected 2 bound maps, got %d", st.Bound())
	}
	if !st.Shadows || st.Version != 3 {
		t.Errorf("ResolveMaterial: expected shadows on at version 3, got %v / %d", st.Shadows, st.Version)
	}

	// Already uploaded maps are not uploaded again.
	uploads = nil
	ResolveMaterial(m, false, upload)
	if len(uploads) != 0 {
		t.Errorf("ResolveMaterial: expected no uploads, got %v", uploads)
	}
}

func TestResolveMaterialSkipsFailedUpload(t *testing.T) {
	m := scene.NewStandardMaterial("cube")
	m.RoughnessMap = &scene.Texture{Name: "broken"}
	st := ResolveMaterial(m, false, func(*scene.Texture) error { return errors.New("no pixels") })
	if st.Maps[slotRoughness] != nil {
		t.Error("ResolveMaterial: expected failed map left unbound")
	}
}

func TestCheckPixels(t *testing.T) {
	cases := []struct {
		name string
		tex  *scene.Texture
		ok   bool
	}{
		{"nil", nil, false},
		{"empty", &scene.Texture{Name: "e"}, false},
		{"short", &scene.Texture{Name: "s", Width: 2, Height: 2, Pixels: make([]byte, 12)}, false},
		{"exact", &scene.Texture{Name: "x", Width: 2, Height: 2, Pixels: make([]byte, 16)}, true},
	}
	for _, c := range cases {
		if err := checkPixels(c.tex); (err == nil) != c.ok {
			t.Errorf("checkPixels(%s): expected ok=%v, got %v", c.name, c.ok, err)
		}
	}
}

func TestFaceViewProjCentersFaceDirection(t *testing.T) {
	light := mgl32.Vec3{0, 1.25, 0}
	for face, f := range cubeFaces {
		vp := FaceViewProj(face, light, 30)
		clip := vp.Mul4x1(light.Add(f.dir.Mul(2)).Vec4(1))
		if clip.W() <= 0 {
			t.Errorf("face %d: expected point in front of the light, got w=%v", face, clip.W())
			continue
		}
		ndc := clip.Vec3().Mul(1 / clip.W())
		if math.Abs(float64(ndc.X())) > 1e-4 || math.Abs(float64(ndc.Y())) > 1e-4 {
			t.Errorf("face %d: expected face direction at the centre, got %v", face, ndc)
		}
		if ndc.Z() <= -1 || ndc.Z() >= 1 {
			t.Errorf("face %d: expected depth inside the clip range, got %v", face, ndc.Z())
		}
	}
}

func TestRasterizeLines(t *testing.T) {
	if RasterizeLines(nil) != nil {
		t.Error("RasterizeLines(nil): expected nil image")
	}

	img := RasterizeLines([]string{"Controls [H]", "> exposure 0.50"})
	wantH := 2*13 + 2*textPadding
	wantW := len("> exposure 0.50")*7 + 2*textPadding
	if img.Rect.Dy() != wantH || img.Rect.Dx() != wantW {
		t.Errorf("RasterizeLines: expected %dx%d, got %dx%d", wantW, wantH, img.Rect.Dx(), img.Rect.Dy())
	}

	// Some glyph pixel must be brighter than the panel background.
	lit := false
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] > textBackground.R+0x40 {
			lit = true
			break
		}
	}
	if !lit {
		t.Error("RasterizeLines: expected glyph pixels on the panel")
	}
}
