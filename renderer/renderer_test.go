package renderer

import (
	"testing"
	"time"

	"lightlab/scene"
)

func TestFrameStatsRefreshesOncePerInterval(t *testing.T) {
	s := NewFrameStats()
	t0 := time.Unix(1700000000, 0)
	if s.Tick(t0) {
		t.Error("Tick: expected first tick to only start the window")
	}
	refreshed := 0
	for i := 1; i <= 100; i++ {
		if s.Tick(t0.Add(time.Duration(i) * 10 * time.Millisecond)) {
			refreshed++
			if i != 100 {
				t.Errorf("Tick: expected refresh at frame 100, got %d", i)
			}
		}
	}
	if refreshed != 1 {
		t.Fatalf("Tick: expected one refresh, got %d", refreshed)
	}
	if fps := s.FPS(); fps < 99.9 || fps > 100.1 {
		t.Errorf("FPS: expected 100, got %v", fps)
	}
	if ft := s.FrameTime(); ft != 10*time.Millisecond {
		t.Errorf("FrameTime: expected 10ms, got %v", ft)
	}
	if got, want := s.Line(), "100 FPS  10.00 ms"; got != want {
		t.Errorf("Line: expected %q, got %q", want, got)
	}
}

type fakeUploader struct {
	uploads int
}

func (f *fakeUploader) upload(tex *scene.Texture) error {
	f.uploads++
	tex.GLID = uint32(f.uploads)
	return nil
}

func TestMaterialCacheConsumesNeedsUpdate(t *testing.T) {
	up := &fakeUploader{}
	c := newMaterialCache(up.upload)
	m := scene.NewStandardMaterial("floor")

	if n := c.refresh([]*scene.Material{m}, false); n != 1 {
		t.Errorf("refresh: expected unseen material recomputed, got %d", n)
	}
	if n := c.refresh([]*scene.Material{m}, false); n != 0 {
		t.Errorf("refresh: expected clean material skipped, got %d", n)
	}

	// A map assigned without the flag stays unseen.
	m.Map = &scene.Texture{Name: "tile", Pixels: make([]byte, 4), Width: 1, Height: 1}
	c.refresh([]*scene.Material{m}, false)
	if c.state(m).Maps[0] != nil || up.uploads != 0 {
		t.Error("refresh: expected unflagged map not sampled")
	}

	m.NeedsUpdate = true
	if n := c.refresh([]*scene.Material{m}, true); n != 1 {
		t.Errorf("refresh: expected flagged material recomputed, got %d", n)
	}
	st := c.state(m)
	if m.NeedsUpdate {
		t.Error("refresh: expected NeedsUpdate cleared")
	}
	if st.Maps[0] != m.Map || up.uploads != 1 {
		t.Errorf("refresh: expected map uploaded and bound, got %d uploads", up.uploads)
	}
	if !st.Shadows || st.Version != 1 {
		t.Errorf("refresh: expected shadows on at version 1, got %v / %d", st.Shadows, st.Version)
	}
}

func TestMaterialCacheShadowToggleNeedsFlag(t *testing.T) {
	c := newMaterialCache((&fakeUploader{}).upload)
	m := scene.NewStandardMaterial("cube")
	c.refresh([]*scene.Material{m}, false)

	c.refresh([]*scene.Material{m}, true)
	if c.state(m).Shadows {
		t.Error("refresh: expected shadow change ignored until the material is flagged")
	}
	m.NeedsUpdate = true
	c.refresh([]*scene.Material{m}, true)
	if !c.state(m).Shadows {
		t.Error("refresh: expected shadows picked up after flag")
	}
	if c.state(nil) != nil {
		t.Error("state(nil): expected nil")
	}
}

func TestMaterialCacheReleaseFreesSharedMapsOnce(t *testing.T) {
	up := &fakeUploader{}
	c := newMaterialCache(up.upload)
	shared := &scene.Texture{Name: "shared", Pixels: make([]byte, 4), Width: 1, Height: 1}
	a := scene.NewStandardMaterial("a")
	b := scene.NewStandardMaterial("b")
	a.Map, b.BumpMap = shared, shared
	c.refresh([]*scene.Material{a, b}, false)

	freed := map[*scene.Texture]int{}
	c.release(func(tex *scene.Texture) { freed[tex]++ })
	if freed[shared] != 1 || len(freed) != 1 {
		t.Errorf("release: expected shared map freed once, got %v", freed)
	}
	if c.state(a) != nil || c.state(b) != nil {
		t.Error("release: expected states dropped")
	}
}
