package renderer

import (
	"fmt"
	"time"

	"lightlab/core"
	"lightlab/internal/opengl"
	"lightlab/scene"
)

// textCmd is a queued DrawText call, flushed in Present().
type textCmd struct {
	lines []string
	x, y  float32
}

// Options configures optional render features.
type Options struct {
	// ShadowMapSize is the resolution of each point-shadow cube face.
	ShadowMapSize int
	// ShadowFar bounds the distance a shadow can be cast over.
	ShadowFar float32
}

func DefaultOptions() Options {
	return Options{ShadowMapSize: 512, ShadowFar: 30}
}

// RenderEngine is the high-level renderer that drives the OpenGL backend.
type RenderEngine struct {
	gl     *opengl.Renderer
	window *core.Window
	Scene  *scene.Scene

	shadowsEnabled bool
	exposure       float32

	materials *materialCache
	Stats     *FrameStats

	// Per-frame stats (populated during Render)
	lastObjects   int
	lastTriangles int

	// Queued text commands, flushed in Present() after the HDR blit
	textQueue []textCmd
}

// NewRenderEngine initialises the OpenGL backend for window. The shadow
// cube and HDR target are optional: if either fails to initialise the
// engine logs a warning and renders without it.
func NewRenderEngine(window *core.Window, opts Options) (*RenderEngine, error) {
	glRenderer, err := opengl.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenGL renderer: %w", err)
	}
	glRenderer.SetViewport(window.Width, window.Height)

	if opts.ShadowMapSize > 0 {
		if err := glRenderer.EnableShadows(opts.ShadowMapSize, opts.ShadowFar); err != nil {
			core.Logger().Warn("shadows unavailable", "err", err)
		}
	}
	if err := glRenderer.EnablePostProcess(window.Width, window.Height); err != nil {
		core.Logger().Warn("tone mapping unavailable", "err", err)
	}

	core.Logger().Info("render engine initialized",
		"width", window.Width, "height", window.Height,
		"shadow_size", opts.ShadowMapSize, "shadow_map", glRenderer.HasShadowMap())

	return &RenderEngine{
		gl:        glRenderer,
		window:    window,
		exposure:  1,
		materials: newMaterialCache(opengl.UploadTexture),
		Stats:     NewFrameStats(),
	}, nil
}

func (re *RenderEngine) SetScene(s *scene.Scene) {
	re.Scene = s
}

// SetExposure sets the tone-mapping exposure for subsequent frames.
func (re *RenderEngine) SetExposure(exp float32) {
	re.exposure = exp
	re.gl.SetExposure(exp)
}

// Exposure returns the current tone-mapping exposure.
func (re *RenderEngine) Exposure() float32 { return re.exposure }

// SetShadowsEnabled turns shadow rendering on or off. Materials pick up
// the change at their next recompute.
func (re *RenderEngine) SetShadowsEnabled(enabled bool) {
	if enabled != re.shadowsEnabled {
		core.Logger().Debug("shadows toggled", "enabled", enabled)
	}
	re.shadowsEnabled = enabled
}

// ShadowsEnabled reports the current shadow setting.
func (re *RenderEngine) ShadowsEnabled() bool { return re.shadowsEnabled }

// Render recomputes flagged materials, draws the shadow cube when shadows
// are on and a point light casts them, then draws every visible mesh.
func (re *RenderEngine) Render() error {
	if re.Scene == nil || re.Scene.Camera == nil {
		return fmt.Errorf("no scene or camera")
	}

	re.materials.refresh(re.Scene.Materials(), re.shadowsEnabled)

	var shadowLight *scene.Light
	for _, l := range re.Scene.Lights {
		if l != nil && l.Type == scene.LightTypePoint {
			shadowLight = l
			break
		}
	}

	nodes := re.Scene.GetVisibleNodes()

	doShadows := re.shadowsEnabled && re.gl.HasShadowMap() && shadowLight != nil && shadowLight.CastShadow
	if doShadows {
		re.renderShadowCube(shadowLight, nodes)
	}

	cam := re.Scene.Camera
	re.gl.BeginFrame(re.Scene.Background, re.Scene.Lights, cam.Position, doShadows)

	view := cam.GetViewMatrix()
	proj := cam.GetProjectionMatrix()

	objects, triangles := 0, 0
	for _, node := range nodes {
		model := node.GetWorldMatrix()
		mvp := proj.Mul4(view).Mul4(model)
		re.gl.DrawMesh(node.Mesh, re.materials.state(node.Mesh.Material), mvp, model, node.ReceiveShadow)
		objects++
		triangles += len(node.Mesh.Indices) / 3
	}
	re.lastObjects = objects
	re.lastTriangles = triangles
	return nil
}

func (re *RenderEngine) renderShadowCube(light *scene.Light, nodes []*scene.Node) {
	re.gl.BeginShadowPass(light.Position())
	for face := 0; face < 6; face++ {
		vp := re.gl.BeginShadowFace(face)
		for _, node := range nodes {
			if !node.CastShadow {
				continue
			}
			model := node.GetWorldMatrix()
			re.gl.DrawMeshShadow(node.Mesh, vp.Mul4(model), model)
		}
	}
	re.gl.EndShadowPass()
}

// Present resolves the HDR target to the screen, flushes queued text on
// top and ticks the frame stats. The frame host swaps buffers afterwards.
func (re *RenderEngine) Present() {
	re.gl.BlitPostProcess()

	if len(re.textQueue) > 0 {
		sw := float32(re.window.Width)
		sh := float32(re.window.Height)
		scale := re.window.PixelRatio()
		for _, cmd := range re.textQueue {
			re.gl.DrawText(cmd.lines, cmd.x*scale, cmd.y*scale, scale, sw, sh)
		}
		re.textQueue = re.textQueue[:0]
	}

	re.Stats.Tick(time.Now())
}

// DrawText queues lines to be drawn in the next Present() with their
// panel's top-left at (x, y) in window coordinates. Text is drawn after
// tone mapping.
func (re *RenderEngine) DrawText(lines []string, x, y int) {
	if len(lines) == 0 {
		return
	}
	re.textQueue = append(re.textQueue, textCmd{
		lines: append([]string(nil), lines...),
		x:     float32(x),
		y:     float32(y),
	})
}

// Resize updates the viewport, the HDR target and the camera aspect for a
// new framebuffer size.
func (re *RenderEngine) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	re.gl.SetViewport(width, height)
	re.gl.ResizePostProcess(width, height)
	if re.Scene != nil && re.Scene.Camera != nil {
		re.Scene.Camera.UpdateAspectRatio(float32(width), float32(height))
	}
}

// DrawStats returns stats from the most recent Render call.
func (re *RenderEngine) DrawStats() (objects, triangles int) {
	return re.lastObjects, re.lastTriangles
}

// Destroy frees uploaded textures and the GL backend. The window is left
// to its owner.
func (re *RenderEngine) Destroy() {
	re.materials.release(opengl.DeleteTexture)
	re.gl.Destroy()
}
