package panel

import (
	"lightlab/core"
	"lightlab/lighting"
)

// KeyState is the edge-triggered keyboard view the panel reads.
// *input.Manager implements it.
type KeyState interface {
	IsKeyPressed(key int) bool
	IsKeyDown(key int) bool
}

// Panel is a keyboard-driven list of widgets bound to lighting.Params.
// Up/Down select a row, Left/Right change it (hold Shift for coarse steps),
// Enter/Space activate it and H shows or hides the panel.
type Panel struct {
	Widgets  []Widget
	Selected int
	Visible  bool

	overlay Overlay
}

// New binds a panel to params. The choice widgets offer exactly the labels
// of bulbTable and hemiTable.
func New(params *lighting.Params, bulbTable, hemiTable *lighting.PresetTable) *Panel {
	return &Panel{
		Widgets: []Widget{
			NewChoice("hemiIrradiance", hemiTable.Labels(), params.HemiIrradiance, params.SetHemiIrradiance),
			NewChoice("bulbPower", bulbTable.Labels(), params.BulbPower, params.SetBulbPower),
			NewSlider("exposure", 0, 1, 0.01, params.Exposure, params.SetExposure),
			NewCheckbox("shadows", params.ShadowsEnabled, params.SetShadowsEnabled),
		},
		Visible: true,
	}
}

// HandleInput applies this frame's key presses. Changes are written to the
// bound params immediately. It reports whether any value changed.
func (p *Panel) HandleInput(keys KeyState) bool {
	if keys.IsKeyPressed(core.KeyH) {
		p.Visible = !p.Visible
	}
	if !p.Visible || len(p.Widgets) == 0 {
		return false
	}

	if keys.IsKeyPressed(core.KeyDown) {
		p.Selected = (p.Selected + 1) % len(p.Widgets)
	}
	if keys.IsKeyPressed(core.KeyUp) {
		p.Selected = (p.Selected + len(p.Widgets) - 1) % len(p.Widgets)
	}

	w := p.Widgets[p.Selected]
	before := w.Value()
	coarse := keys.IsKeyDown(core.KeyLeftShift) || keys.IsKeyDown(core.KeyRightShift)
	if keys.IsKeyPressed(core.KeyRight) {
		w.Step(1, coarse)
	}
	if keys.IsKeyPressed(core.KeyLeft) {
		w.Step(-1, coarse)
	}
	if keys.IsKeyPressed(core.KeyEnter) || keys.IsKeyPressed(core.KeySpace) {
		w.Activate()
	}

	changed := w.Value() != before
	if changed {
		core.Logger().Debug("panel value changed", "widget", w.Name(), "value", w.Value())
	}
	return changed
}

// Lines renders the panel as HUD text, one widget per line with the
// selected row marked. A hidden panel renders a single hint line.
func (p *Panel) Lines() []string {
	p.overlay.Clear()
	if !p.Visible {
		p.overlay.AddLine("Controls [H]")
		return p.overlay.Lines()
	}
	p.overlay.AddLine("Controls [H]  up/down select, left/right change")
	for i, w := range p.Widgets {
		marker := " "
		if i == p.Selected {
			marker = ">"
		}
		p.overlay.AddLine("%s %-15s %s", marker, w.Name(), w.Value())
	}
	return p.overlay.Lines()
}
