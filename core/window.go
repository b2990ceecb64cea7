package core

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// GLFW and the GL context must stay on the main thread.
func init() {
	runtime.LockOSThread()
}

// Window owns the GLFW window and its OpenGL 4.1 core context. Width and
// Height track the framebuffer size in pixels, which differs from the
// requested size on high-DPI displays.
type Window struct {
	Handle *glfw.Window
	Width  int
	Height int

	onResize []ResizeCallback
}

type WindowConfig struct {
	Width      int
	Height     int
	Title      string
	Resizable  bool
	VSync      bool
	Fullscreen bool
}

func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:     1280,
		Height:    720,
		Title:     "Light Lab",
		Resizable: true,
		VSync:     true,
	}
}

// ResizeCallback receives the new framebuffer size in pixels.
type ResizeCallback func(width, height int)

// ScrollCallback receives wheel offsets; yoff is positive when scrolling up.
type ScrollCallback func(xoff, yoff float64)

// NewWindow opens a window and makes its context current on the calling
// thread.
func NewWindow(config WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	hints := []struct {
		hint  glfw.Hint
		value int
	}{
		{glfw.ContextVersionMajor, 4},
		{glfw.ContextVersionMinor, 1},
		{glfw.OpenGLProfile, glfw.OpenGLCoreProfile},
		{glfw.OpenGLForwardCompatible, glfw.True},
		{glfw.ScaleToMonitor, glfw.True},
		{glfw.Resizable, glfwBool(config.Resizable)},
	}
	for _, h := range hints {
		glfw.WindowHint(h.hint, h.value)
	}

	var monitor *glfw.Monitor
	if config.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}
	handle, err := glfw.CreateWindow(config.Width, config.Height, config.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	handle.MakeContextCurrent()
	glfw.SwapInterval(glfwBool(config.VSync))

	w := &Window{Handle: handle}
	w.Width, w.Height = handle.GetFramebufferSize()
	handle.SetFramebufferSizeCallback(w.framebufferResized)
	return w, nil
}

func (w *Window) framebufferResized(_ *glfw.Window, width, height int) {
	w.Width, w.Height = width, height
	Logger().Debug("framebuffer resized", "width", width, "height", height)
	for _, cb := range w.onResize {
		cb(width, height)
	}
}

// OnResize registers cb to run whenever the framebuffer size changes.
// Callbacks fire on the main thread during PollEvents.
func (w *Window) OnResize(cb ResizeCallback) {
	w.onResize = append(w.onResize, cb)
}

func (w *Window) ShouldClose() bool     { return w.Handle.ShouldClose() }
func (w *Window) SetShouldClose(v bool) { w.Handle.SetShouldClose(v) }
func (w *Window) PollEvents()           { glfw.PollEvents() }
func (w *Window) SwapBuffers()          { w.Handle.SwapBuffers() }

// PixelRatio reports framebuffer pixels per screen coordinate.
func (w *Window) PixelRatio() float32 {
	if x, _ := w.Handle.GetContentScale(); x > 0 {
		return x
	}
	return 1
}

// Destroy closes the window and shuts GLFW down.
func (w *Window) Destroy() {
	w.Handle.Destroy()
	glfw.Terminate()
}

func (w *Window) IsKeyPressed(key int) bool {
	return w.Handle.GetKey(glfw.Key(key)) == glfw.Press
}

func (w *Window) IsMouseButtonPressed(button int) bool {
	return w.Handle.GetMouseButton(glfw.MouseButton(button)) == glfw.Press
}

// GetCursorPos returns the cursor position in screen coordinates.
func (w *Window) GetCursorPos() (float64, float64) {
	return w.Handle.GetCursorPos()
}

func (w *Window) SetScrollCallback(cb ScrollCallback) {
	w.Handle.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		cb(xoff, yoff)
	})
}

func glfwBool(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

// Key codes used by the demo, mirrored from GLFW so that packages polling
// input do not import glfw themselves.
const (
	KeySpace        = int(glfw.KeySpace)
	KeyH            = int(glfw.KeyH)
	KeyLeftBracket  = int(glfw.KeyLeftBracket)
	KeyRightBracket = int(glfw.KeyRightBracket)
	KeyEscape       = int(glfw.KeyEscape)
	KeyEnter        = int(glfw.KeyEnter)
	KeyTab          = int(glfw.KeyTab)
	KeyRight        = int(glfw.KeyRight)
	KeyLeft         = int(glfw.KeyLeft)
	KeyDown         = int(glfw.KeyDown)
	KeyUp           = int(glfw.KeyUp)
	KeyPageUp       = int(glfw.KeyPageUp)
	KeyPageDown     = int(glfw.KeyPageDown)
	KeyLeftShift    = int(glfw.KeyLeftShift)
	KeyRightShift   = int(glfw.KeyRightShift)
)
