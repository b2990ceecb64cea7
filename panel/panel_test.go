package panel

import (
	"math"
	"strings"
	"testing"

	"lightlab/core"
	"lightlab/lighting"
)

// pressed reports the given keys as pressed for exactly one frame.
type pressed map[int]bool

func (p pressed) IsKeyPressed(key int) bool { return p[key] }
func (p pressed) IsKeyDown(key int) bool    { return p[key] }

func newPanel() (*Panel, *lighting.Params) {
	params := lighting.DefaultParams()
	return New(params, lighting.BulbLuminousPowers, lighting.HemiLuminousIrradiances), params
}

func TestChoicesOfferExactlyTheTableLabels(t *testing.T) {
	p, _ := newPanel()
	hemi := p.Widgets[0].(*Choice)
	bulb := p.Widgets[1].(*Choice)

	want := lighting.BulbLuminousPowers.Labels()
	if len(bulb.Options()) != len(want) {
		t.Fatalf("bulb options: expected %d, got %d", len(want), len(bulb.Options()))
	}
	for i := range want {
		if bulb.Options()[i] != want[i] {
			t.Errorf("bulb option %d: expected %q, got %q", i, want[i], bulb.Options()[i])
		}
	}
	if len(hemi.Options()) != lighting.HemiLuminousIrradiances.Len() {
		t.Errorf("hemi options: expected %d, got %d", lighting.HemiLuminousIrradiances.Len(), len(hemi.Options()))
	}
}

func TestStepWritesBackImmediately(t *testing.T) {
	p, params := newPanel()

	// Row 1 is the bulb; default is index 5.
	p.HandleInput(pressed{core.KeyDown: true})
	if !p.HandleInput(pressed{core.KeyRight: true}) {
		t.Error("HandleInput: expected a change")
	}
	if params.BulbPower() != "20 lm (4W)" {
		t.Errorf("bulb: expected 20 lm (4W), got %q", params.BulbPower())
	}
	p.HandleInput(pressed{core.KeyRight: true})
	p.HandleInput(pressed{core.KeyRight: true})
	if params.BulbPower() != "Off" {
		t.Errorf("bulb: expected to stop at Off, got %q", params.BulbPower())
	}
}

func TestExposureSliderClamps(t *testing.T) {
	p, params := newPanel()
	p.Selected = 2

	p.HandleInput(pressed{core.KeyRight: true})
	if math.Abs(float64(params.Exposure())-0.51) > 1e-5 {
		t.Errorf("exposure: expected 0.51, got %v", params.Exposure())
	}
	for i := 0; i < 10; i++ {
		p.HandleInput(pressed{core.KeyRight: true, core.KeyLeftShift: true})
	}
	if params.Exposure() != 1 {
		t.Errorf("exposure: expected clamp at 1, got %v", params.Exposure())
	}
	for i := 0; i < 20; i++ {
		p.HandleInput(pressed{core.KeyLeft: true, core.KeyLeftShift: true})
	}
	if params.Exposure() != 0 {
		t.Errorf("exposure: expected clamp at 0, got %v", params.Exposure())
	}
}

func TestShadowsCheckbox(t *testing.T) {
	p, params := newPanel()
	p.HandleInput(pressed{core.KeyUp: true})
	if p.Selected != 3 {
		t.Fatalf("Up from the first row: expected wrap to 3, got %d", p.Selected)
	}
	p.HandleInput(pressed{core.KeyEnter: true})
	if params.ShadowsEnabled() {
		t.Error("shadows: expected off after toggle")
	}
	p.HandleInput(pressed{core.KeyLeft: true})
	if !params.ShadowsEnabled() {
		t.Error("shadows: expected on after second toggle")
	}
}

func TestHiddenPanelIgnoresInput(t *testing.T) {
	p, params := newPanel()
	p.HandleInput(pressed{core.KeyH: true})
	if p.Visible {
		t.Fatal("H: expected panel hidden")
	}
	before := params.HemiIrradiance()
	p.HandleInput(pressed{core.KeyRight: true})
	if params.HemiIrradiance() != before {
		t.Error("hidden panel must not change values")
	}
	if lines := p.Lines(); len(lines) != 1 {
		t.Errorf("Lines: expected a single hint line, got %d", len(lines))
	}
}

func TestLinesShowSelection(t *testing.T) {
	p, _ := newPanel()
	lines := p.Lines()
	if len(lines) != 5 {
		t.Fatalf("Lines: expected header plus 4 rows, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[1], ">") || !strings.Contains(lines[1], "350 lx (Office Room)") {
		t.Errorf("Lines: expected selected hemisphere row, got %q", lines[1])
	}
	if !strings.Contains(lines[4], "[x]") {
		t.Errorf("Lines: expected shadows checked, got %q", lines[4])
	}
}

func TestOverlayText(t *testing.T) {
	var o Overlay
	if o.GetText() != "" {
		t.Error("GetText: expected empty text")
	}
	o.AddLine("FPS: %d", 60)
	o.AddLine("frame %.1f ms", 16.7)
	if got := o.GetText(); got != "FPS: 60\nframe 16.7 ms\n" {
		t.Errorf("GetText: got %q", got)
	}
}
