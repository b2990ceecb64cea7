package opengl

import (
	"fmt"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"lightlab/core"
	"lightlab/scene"
)

var defaultMaterial = scene.NewStandardMaterial("default")

// Renderer is the OpenGL rendering backend.
type Renderer struct {
	program uint32

	mvpLoc   int32
	modelLoc int32

	cameraPosLoc int32

	hasPointLightLoc      int32
	pointLightPosLoc      int32
	pointLightRadianceLoc int32
	pointLightDistanceLoc int32
	pointLightDecayLoc    int32

	hemiSkyLoc    int32
	hemiGroundLoc int32

	shadowsOnLoc     int32
	receiveShadowLoc int32
	shadowCubeLoc    int32
	shadowFarLoc     int32

	matColorLoc     int32
	matRoughnessLoc int32
	matMetalnessLoc int32
	matEmissiveLoc  int32
	bumpScaleLoc    int32

	mapLoc       [slotCount]int32
	hasMapLoc    [slotCount]int32
	mapRepeatLoc [slotCount]int32

	// Cube shadow depth program
	shadowProg        uint32
	shadowLightMVPLoc int32
	shadowModelLoc    int32
	shadowLightPosLoc int32
	shadowFarDepthLoc int32

	shadowMap   *ShadowMap
	shadowLight mgl32.Vec3

	postProcess  *PostProcessFBO
	textRenderer *TextRenderer

	// 1×1 white texture bound to unused sampler slots
	whiteTex uint32

	viewportW int32
	viewportH int32

	meshes meshCache
}

// NewRenderer initialises OpenGL.
// Must be called after the GLFW window context is made current.
func NewRenderer() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	core.Logger().Info("OpenGL context",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))

	prog, err := newProgram(vertSrc, fragSrc)
	if err != nil {
		return nil, fmt.Errorf("main shader compile: %w", err)
	}

	shadowProg, err := newProgram(depthVertSrc, depthFragSrc)
	if err != nil {
		return nil, fmt.Errorf("depth shader compile: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Enable(gl.TEXTURE_CUBE_MAP_SEAMLESS)

	r := &Renderer{
		program:    prog,
		shadowProg: shadowProg,

		mvpLoc:   uniform(prog, "mvp"),
		modelLoc: uniform(prog, "model"),

		cameraPosLoc: uniform(prog, "cameraPos"),

		hasPointLightLoc:      uniform(prog, "hasPointLight"),
		pointLightPosLoc:      uniform(prog, "pointLightPos"),
		pointLightRadianceLoc: uniform(prog, "pointLightRadiance"),
		pointLightDistanceLoc: uniform(prog, "pointLightDistance"),
		pointLightDecayLoc:    uniform(prog, "pointLightDecay"),

		hemiSkyLoc:    uniform(prog, "hemiSky"),
		hemiGroundLoc: uniform(prog, "hemiGround"),

		shadowsOnLoc:     uniform(prog, "shadowsOn"),
		receiveShadowLoc: uniform(prog, "receiveShadow"),
		shadowCubeLoc:    uniform(prog, "shadowCube"),
		shadowFarLoc:     uniform(prog, "shadowFar"),

		matColorLoc:     uniform(prog, "matColor"),
		matRoughnessLoc: uniform(prog, "matRoughness"),
		matMetalnessLoc: uniform(prog, "matMetalness"),
		matEmissiveLoc:  uniform(prog, "matEmissive"),
		bumpScaleLoc:    uniform(prog, "bumpScale"),

		shadowLightMVPLoc: uniform(shadowProg, "lightMVP"),
		shadowModelLoc:    uniform(shadowProg, "model"),
		shadowLightPosLoc: uniform(shadowProg, "lightPos"),
		shadowFarDepthLoc: uniform(shadowProg, "far"),

		meshes: meshCache{},
	}

	gl.UseProgram(prog)
	for i := 0; i < slotCount; i++ {
		r.mapLoc[i] = uniform(prog, fmt.Sprintf("maps[%d]", i))
		r.hasMapLoc[i] = uniform(prog, fmt.Sprintf("hasMap[%d]", i))
		r.mapRepeatLoc[i] = uniform(prog, fmt.Sprintf("mapRepeat[%d]", i))
		gl.Uniform1i(r.mapLoc[i], int32(i))
	}
	gl.Uniform1i(r.shadowCubeLoc, shadowUnit)

	white := [4]byte{255, 255, 255, 255}
	gl.GenTextures(1, &r.whiteTex)
	gl.BindTexture(gl.TEXTURE_2D, r.whiteTex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, 1, 1, 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&white[0]))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return r, nil
}

// SetViewport resizes the OpenGL viewport and stores the dimensions for
// restoring after the shadow pass.
func (r *Renderer) SetViewport(width, height int) {
	r.viewportW = int32(width)
	r.viewportH = int32(height)
	gl.Viewport(0, 0, int32(width), int32(height))
}

// EnablePostProcess creates the HDR target used for tone mapping.
func (r *Renderer) EnablePostProcess(width, height int) error {
	pp, err := NewPostProcessFBO(width, height)
	if err != nil {
		return err
	}
	r.postProcess = pp
	return nil
}

// ResizePostProcess reallocates the HDR target.
func (r *Renderer) ResizePostProcess(width, height int) {
	if r.postProcess != nil {
		r.postProcess.Resize(width, height)
	}
}

// SetExposure sets the tone-mapping exposure.
func (r *Renderer) SetExposure(exp float32) {
	if r.postProcess != nil {
		r.postProcess.Exposure = exp
	}
}

// BlitPostProcess resolves the HDR target to the default framebuffer.
func (r *Renderer) BlitPostProcess() {
	if r.postProcess != nil {
		r.postProcess.Blit()
	}
}

// EnableShadows creates the point-light depth cube.
func (r *Renderer) EnableShadows(size int, far float32) error {
	if r.shadowMap != nil {
		r.shadowMap.Destroy()
	}
	sm, err := NewShadowMap(size, far)
	if err != nil {
		return err
	}
	r.shadowMap = sm
	return nil
}

// HasShadowMap reports whether the shadow cube has been created.
func (r *Renderer) HasShadowMap() bool {
	return r.shadowMap != nil
}

// BeginShadowPass binds the depth cube framebuffer for a light at lightPos.
func (r *Renderer) BeginShadowPass(lightPos mgl32.Vec3) {
	if r.shadowMap == nil {
		return
	}
	r.shadowLight = lightPos
	gl.BindFramebuffer(gl.FRAMEBUFFER, r.shadowMap.FBO)
	gl.Viewport(0, 0, r.shadowMap.Size, r.shadowMap.Size)
	gl.Disable(gl.CULL_FACE)
	gl.UseProgram(r.shadowProg)
	gl.Uniform3f(r.shadowLightPosLoc, lightPos.X(), lightPos.Y(), lightPos.Z())
	gl.Uniform1f(r.shadowFarDepthLoc, r.shadowMap.Far)
}

// BeginShadowFace selects and clears one cube face and returns its
// view-projection matrix.
func (r *Renderer) BeginShadowFace(face int) mgl32.Mat4 {
	r.shadowMap.BindFace(face)
	return FaceViewProj(face, r.shadowLight, r.shadowMap.Far)
}

// DrawMeshShadow draws a mesh into the current cube face.
func (r *Renderer) DrawMeshShadow(mesh *scene.Mesh, lightMVP, model mgl32.Mat4) {
	if r.shadowMap == nil {
		return
	}
	gpu := r.meshes.get(mesh)
	if gpu == nil {
		return
	}
	gl.UniformMatrix4fv(r.shadowLightMVPLoc, 1, false, (*float32)(unsafe.Pointer(&lightMVP[0])))
	gl.UniformMatrix4fv(r.shadowModelLoc, 1, false, (*float32)(unsafe.Pointer(&model[0])))
	gpu.draw(len(mesh.Vertices))
}

// EndShadowPass restores the default framebuffer and viewport.
func (r *Renderer) EndShadowPass() {
	if r.shadowMap == nil {
		return
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, r.viewportW, r.viewportH)
	gl.Enable(gl.CULL_FACE)
}

// BeginFrame clears the target and sets per-frame light and camera
// uniforms. The first point light and the first hemisphere light are
// used; hasShadows should be true only when the cube was drawn this frame.
func (r *Renderer) BeginFrame(background core.Color, lights []*scene.Light, camPos mgl32.Vec3, hasShadows bool) {
	if r.postProcess != nil {
		gl.BindFramebuffer(gl.FRAMEBUFFER, r.postProcess.FBO)
		gl.Viewport(0, 0, r.postProcess.Width, r.postProcess.Height)
	} else {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		gl.Viewport(0, 0, r.viewportW, r.viewportH)
	}
	br, bg, bb := linearRGB(background, 1)
	gl.ClearColor(br, bg, bb, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.program)
	gl.Uniform3f(r.cameraPosLoc, camPos.X(), camPos.Y(), camPos.Z())

	var point, hemi *scene.Light
	for _, l := range lights {
		switch {
		case l == nil:
		case l.Type == scene.LightTypePoint && point == nil:
			point = l
		case l.Type == scene.LightTypeHemisphere && hemi == nil:
			hemi = l
		}
	}

	if point != nil {
		p := point.Position()
		rr, rg, rb := linearRGB(point.Color, point.Intensity)
		gl.Uniform1i(r.hasPointLightLoc, 1)
		gl.Uniform3f(r.pointLightPosLoc, p.X(), p.Y(), p.Z())
		gl.Uniform3f(r.pointLightRadianceLoc, rr, rg, rb)
		gl.Uniform1f(r.pointLightDistanceLoc, point.Distance)
		gl.Uniform1f(r.pointLightDecayLoc, point.Decay)
	} else {
		gl.Uniform1i(r.hasPointLightLoc, 0)
	}

	if hemi != nil {
		sr, sg, sb := linearRGB(hemi.Color, hemi.Intensity)
		gr, gg, gb := linearRGB(hemi.GroundColor, hemi.Intensity)
		gl.Uniform3f(r.hemiSkyLoc, sr, sg, sb)
		gl.Uniform3f(r.hemiGroundLoc, gr, gg, gb)
	} else {
		gl.Uniform3f(r.hemiSkyLoc, 0, 0, 0)
		gl.Uniform3f(r.hemiGroundLoc, 0, 0, 0)
	}

	if hasShadows && r.shadowMap != nil {
		gl.Uniform1i(r.shadowsOnLoc, 1)
		gl.Uniform1f(r.shadowFarLoc, r.shadowMap.Far)
		gl.ActiveTexture(gl.TEXTURE0 + shadowUnit)
		gl.BindTexture(gl.TEXTURE_CUBE_MAP, r.shadowMap.CubeTex)
	} else {
		gl.Uniform1i(r.shadowsOnLoc, 0)
	}
}

// DrawMesh draws mesh with the shading state resolved for its material.
// A nil state draws the material's scalar terms with no maps.
func (r *Renderer) DrawMesh(mesh *scene.Mesh, state *MaterialState, mvp, model mgl32.Mat4, receiveShadow bool) {
	gpu := r.meshes.get(mesh)
	if gpu == nil {
		return
	}

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.mvpLoc, 1, false, (*float32)(unsafe.Pointer(&mvp[0])))
	gl.UniformMatrix4fv(r.modelLoc, 1, false, (*float32)(unsafe.Pointer(&model[0])))

	mat := mesh.Material
	if mat == nil {
		mat = defaultMaterial
	}
	r.applyMaterial(mat, state)

	if receiveShadow && state != nil && state.Shadows {
		gl.Uniform1i(r.receiveShadowLoc, 1)
	} else {
		gl.Uniform1i(r.receiveShadowLoc, 0)
	}

	gpu.draw(len(mesh.Vertices))
}

func (r *Renderer) applyMaterial(mat *scene.Material, state *MaterialState) {
	cr, cg, cb := linearRGB(mat.Color, 1)
	er, eg, eb := linearRGB(mat.Emissive, mat.EmissiveIntensity)
	gl.Uniform3f(r.matColorLoc, cr, cg, cb)
	gl.Uniform1f(r.matRoughnessLoc, mat.Roughness)
	gl.Uniform1f(r.matMetalnessLoc, mat.Metalness)
	gl.Uniform3f(r.matEmissiveLoc, er, eg, eb)
	gl.Uniform1f(r.bumpScaleLoc, mat.BumpScale)

	for i := 0; i < slotCount; i++ {
		var tex *scene.Texture
		if state != nil {
			tex = state.Maps[i]
		}
		gl.ActiveTexture(gl.TEXTURE0 + uint32(i))
		if tex != nil && tex.GLID != 0 {
			gl.BindTexture(gl.TEXTURE_2D, tex.GLID)
			gl.Uniform1i(r.hasMapLoc[i], 1)
			gl.Uniform2f(r.mapRepeatLoc[i], tex.Repeat.X(), tex.Repeat.Y())
		} else {
			gl.BindTexture(gl.TEXTURE_2D, r.whiteTex)
			gl.Uniform1i(r.hasMapLoc[i], 0)
			gl.Uniform2f(r.mapRepeatLoc[i], 1, 1)
		}
	}
}

// DrawText draws lines into the default framebuffer with the panel's
// top-left at pixel (x, y). scale magnifies the 7×13 glyphs.
func (r *Renderer) DrawText(lines []string, x, y, scale, screenW, screenH float32) {
	if r.textRenderer == nil {
		tr, err := newTextRenderer()
		if err != nil {
			core.Logger().Warn("text renderer init failed", "err", err)
			return
		}
		r.textRenderer = tr
	}
	r.textRenderer.draw(lines, x, y, scale, screenW, screenH)
}

func (r *Renderer) Destroy() {
	r.meshes.releaseAll()
	if r.shadowMap != nil {
		r.shadowMap.Destroy()
	}
	if r.postProcess != nil {
		r.postProcess.Destroy()
	}
	if r.textRenderer != nil {
		r.textRenderer.destroy()
	}
	if r.whiteTex != 0 {
		gl.DeleteTextures(1, &r.whiteTex)
	}
	gl.DeleteProgram(r.program)
	gl.DeleteProgram(r.shadowProg)
}
