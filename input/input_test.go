package input

import (
	"math"
	"testing"

	"lightlab/core"
	"lightlab/scene"

	"github.com/go-gl/mathgl/mgl32"
)

type fakeSource struct {
	keys    map[int]bool
	buttons map[int]bool
	x, y    float64
	scroll  core.ScrollCallback
}

func newFakeSource() *fakeSource {
	return &fakeSource{keys: map[int]bool{}, buttons: map[int]bool{}}
}

func (f *fakeSource) IsKeyPressed(key int) bool                { return f.keys[key] }
func (f *fakeSource) IsMouseButtonPressed(button int) bool     { return f.buttons[button] }
func (f *fakeSource) GetCursorPos() (float64, float64)         { return f.x, f.y }
func (f *fakeSource) SetScrollCallback(cb core.ScrollCallback) { f.scroll = cb }

func TestKeyPressIsEdgeTriggered(t *testing.T) {
	src := newFakeSource()
	im := NewManager(src)

	src.keys[core.KeyH] = true
	im.Update()
	if !im.IsKeyPressed(core.KeyH) {
		t.Error("IsKeyPressed: expected true on the frame the key goes down")
	}
	im.Update()
	if im.IsKeyPressed(core.KeyH) {
		t.Error("IsKeyPressed: expected false while the key is held")
	}
	if !im.IsKeyDown(core.KeyH) {
		t.Error("IsKeyDown: expected true while the key is held")
	}
	src.keys[core.KeyH] = false
	im.Update()
	if im.IsKeyDown(core.KeyH) {
		t.Error("IsKeyDown: expected false after release")
	}
	if im.IsKeyPressed(-1) || im.IsKeyDown(4096) {
		t.Error("out of range keys must report false")
	}
}

func TestMouseDeltaAndScroll(t *testing.T) {
	src := newFakeSource()
	src.x, src.y = 100, 100
	im := NewManager(src)
	im.Update()
	if im.MouseDeltaX != 0 || im.MouseDeltaY != 0 {
		t.Errorf("first frame: expected zero delta, got (%v, %v)", im.MouseDeltaX, im.MouseDeltaY)
	}

	src.x, src.y = 110, 95
	src.scroll(0, 1)
	src.scroll(0, 2)
	im.Update()
	if im.MouseDeltaX != 10 || im.MouseDeltaY != -5 {
		t.Errorf("delta: expected (10, -5), got (%v, %v)", im.MouseDeltaX, im.MouseDeltaY)
	}
	if im.ScrollDelta != 3 {
		t.Errorf("ScrollDelta: expected 3, got %v", im.ScrollDelta)
	}
	im.EndFrame()
	if im.ScrollDelta != 0 {
		t.Errorf("EndFrame: expected scroll reset, got %v", im.ScrollDelta)
	}
}

func newOrbit() *scene.OrbitCamera {
	cam := scene.NewCamera(mgl32.DegToRad(50), 1, 0.1, 100)
	cam.SetPosition(mgl32.Vec3{-4, 2, 4})
	return scene.NewOrbitCamera(cam, 1, 20)
}

func TestOrbitControllerDrag(t *testing.T) {
	src := newFakeSource()
	im := NewManager(src)
	orbit := newOrbit()
	ctrl := NewOrbitController(orbit)
	yaw := orbit.Yaw

	src.buttons[MouseLeft] = true
	src.x = 50
	im.Update()
	if ctrl.Update(im) {
		t.Error("Update: expected no movement on the press frame")
	}

	src.x = 70
	im.Update()
	if !ctrl.Update(im) {
		t.Fatal("Update: expected drag to move the camera")
	}
	want := yaw - 20*ctrl.RotateSpeed
	if math.Abs(float64(orbit.Yaw-want)) > 1e-6 {
		t.Errorf("Yaw: expected %v, got %v", want, orbit.Yaw)
	}
	if math.Abs(float64(orbit.Distance-6)) > 1e-4 {
		t.Errorf("Distance: expected 6 after orbit, got %v", orbit.Distance)
	}
}

func TestOrbitControllerZoomClamps(t *testing.T) {
	src := newFakeSource()
	im := NewManager(src)
	orbit := newOrbit()
	ctrl := NewOrbitController(orbit)

	src.scroll(0, 500)
	im.Update()
	ctrl.Update(im)
	im.EndFrame()
	if orbit.Distance != 1 {
		t.Errorf("zoom in: expected distance clamped to 1, got %v", orbit.Distance)
	}

	src.scroll(0, -500)
	im.Update()
	ctrl.Update(im)
	if orbit.Distance != 20 {
		t.Errorf("zoom out: expected distance clamped to 20, got %v", orbit.Distance)
	}

	ctrl.Enabled = false
	src.scroll(0, 1)
	im.Update()
	if ctrl.Update(im) {
		t.Error("Update: disabled controller must not move the camera")
	}
}
