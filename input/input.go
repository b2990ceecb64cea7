package input

import (
	"lightlab/core"
)

// Source is the polled device state. *core.Window implements it.
type Source interface {
	IsKeyPressed(key int) bool
	IsMouseButtonPressed(button int) bool
	GetCursorPos() (float64, float64)
	SetScrollCallback(cb core.ScrollCallback)
}

// GLFW mouse button numbers.
const (
	MouseLeft   = 0
	MouseRight  = 1
	MouseMiddle = 2
)

// watchedKeys are the keys polled every frame. Other keys always read as up.
var watchedKeys = []int{
	core.KeyEscape, core.KeyH, core.KeySpace, core.KeyEnter, core.KeyTab,
	core.KeyUp, core.KeyDown, core.KeyLeft, core.KeyRight,
	core.KeyPageUp, core.KeyPageDown,
	core.KeyLeftBracket, core.KeyRightBracket,
	core.KeyLeftShift, core.KeyRightShift,
}

var watchedButtons = []int{MouseLeft, MouseRight, MouseMiddle}

// edges holds this frame's and last frame's down state for a set of codes.
type edges struct {
	now, prev map[int]bool
}

func newEdges() edges {
	return edges{now: map[int]bool{}, prev: map[int]bool{}}
}

func (e edges) poll(codes []int, down func(int) bool) {
	for _, c := range codes {
		e.prev[c] = e.now[c]
		e.now[c] = down(c)
	}
}

func (e edges) down(code int) bool    { return e.now[code] }
func (e edges) pressed(code int) bool { return e.now[code] && !e.prev[code] }

// Manager snapshots mouse and keyboard state once per frame so that
// handlers can ask for both held state and press edges.
type Manager struct {
	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64
	// ScrollDelta accumulates wheel movement until EndFrame.
	ScrollDelta float64
	ShiftDown   bool

	source  Source
	keys    edges
	buttons edges
	primed  bool
}

func NewManager(source Source) *Manager {
	im := &Manager{
		source:  source,
		keys:    newEdges(),
		buttons: newEdges(),
	}
	source.SetScrollCallback(func(_, yoff float64) {
		im.ScrollDelta += yoff
	})
	return im
}

// Update polls the source. Call it once per frame after PollEvents.
func (im *Manager) Update() {
	x, y := im.source.GetCursorPos()
	if !im.primed {
		im.MouseX, im.MouseY = x, y
		im.primed = true
	}
	im.MouseDeltaX, im.MouseDeltaY = x-im.MouseX, y-im.MouseY
	im.MouseX, im.MouseY = x, y

	im.buttons.poll(watchedButtons, im.source.IsMouseButtonPressed)
	im.keys.poll(watchedKeys, im.source.IsKeyPressed)
	im.ShiftDown = im.keys.down(core.KeyLeftShift) || im.keys.down(core.KeyRightShift)
}

// EndFrame clears the accumulated scroll.
func (im *Manager) EndFrame() {
	im.ScrollDelta = 0
}

func (im *Manager) IsMouseDown(button int) bool    { return im.buttons.down(button) }
func (im *Manager) IsMousePressed(button int) bool { return im.buttons.pressed(button) }
func (im *Manager) IsKeyDown(key int) bool         { return im.keys.down(key) }

// IsKeyPressed reports a key that went down this frame.
func (im *Manager) IsKeyPressed(key int) bool { return im.keys.pressed(key) }
