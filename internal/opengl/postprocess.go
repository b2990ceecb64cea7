package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"lightlab/core"
)

// PostProcessFBO is an HDR off-screen render target resolved to the
// default framebuffer with exposure, Reinhard tone mapping and sRGB
// output encoding.
type PostProcessFBO struct {
	FBO      uint32
	ColorTex uint32 // RGBA16F
	DepthTex uint32
	Width    int32
	Height   int32

	prog    uint32
	hdrLoc  int32
	expLoc  int32
	quadVAO uint32

	// Exposure multiplies linear radiance before tone mapping.
	Exposure float32
}

// The resolve pass draws one oversized triangle generated from
// gl_VertexID, so it needs an empty VAO and no vertex buffer.
const ppVertSrc = `
#version 410 core
out vec2 vUV;
void main() {
    vUV = vec2((gl_VertexID << 1) & 2, gl_VertexID & 2);
    gl_Position = vec4(vUV * 2.0 - 1.0, 0.0, 1.0);
}
` + "\x00"

const ppFragSrc = `
#version 410 core
in  vec2 vUV;
out vec4 fragColor;

uniform sampler2D hdrBuffer;
uniform float exposure;

vec3 linearToSRGB(vec3 c) {
    vec3 lo = c * 12.92;
    vec3 hi = 1.055 * pow(c, vec3(1.0 / 2.4)) - 0.055;
    return mix(hi, lo, vec3(lessThanEqual(c, vec3(0.0031308))));
}

void main() {
    vec3 hdr = texture(hdrBuffer, vUV).rgb * exposure;
    vec3 mapped = clamp(hdr / (vec3(1.0) + hdr), 0.0, 1.0);
    fragColor = vec4(linearToSRGB(mapped), 1.0);
}
` + "\x00"

// NewPostProcessFBO compiles the resolve shader and allocates the HDR
// target at width×height.
func NewPostProcessFBO(width, height int) (*PostProcessFBO, error) {
	prog, err := newProgram(ppVertSrc, ppFragSrc)
	if err != nil {
		return nil, fmt.Errorf("tone map shader: %w", err)
	}
	pp := &PostProcessFBO{
		prog:     prog,
		hdrLoc:   uniform(prog, "hdrBuffer"),
		expLoc:   uniform(prog, "exposure"),
		Exposure: 1,
	}
	gl.UseProgram(prog)
	gl.Uniform1i(pp.hdrLoc, 0)
	gl.GenVertexArrays(1, &pp.quadVAO)

	if err := pp.allocFBO(width, height); err != nil {
		pp.Destroy()
		return nil, err
	}
	return pp, nil
}

func (pp *PostProcessFBO) allocFBO(width, height int) error {
	pp.Width = int32(max(width, 1))
	pp.Height = int32(max(height, 1))

	pp.ColorTex = pp.attachment(gl.RGBA16F, gl.RGBA, gl.HALF_FLOAT, gl.LINEAR)
	pp.DepthTex = pp.attachment(gl.DEPTH_COMPONENT32F, gl.DEPTH_COMPONENT, gl.FLOAT, gl.NEAREST)

	gl.GenFramebuffers(1, &pp.FBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, pp.FBO)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, pp.ColorTex, 0)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, pp.DepthTex, 0)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("HDR target %dx%d incomplete: status=0x%X", pp.Width, pp.Height, status)
	}
	return nil
}

// attachment allocates an empty clamped texture of the target size.
func (pp *PostProcessFBO) attachment(internal int32, format, xtype uint32, filter int32) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, pp.Width, pp.Height, 0, format, xtype, nil)
	for _, p := range [][2]uint32{
		{gl.TEXTURE_MIN_FILTER, uint32(filter)},
		{gl.TEXTURE_MAG_FILTER, uint32(filter)},
		{gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE},
		{gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE},
	} {
		gl.TexParameteri(gl.TEXTURE_2D, p[0], int32(p[1]))
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

func (pp *PostProcessFBO) freeFBO() {
	if pp.FBO != 0 {
		gl.DeleteFramebuffers(1, &pp.FBO)
	}
	for _, tex := range []*uint32{&pp.ColorTex, &pp.DepthTex} {
		if *tex != 0 {
			gl.DeleteTextures(1, tex)
		}
		*tex = 0
	}
	pp.FBO = 0
}

// Resize recreates the HDR target at the new pixel dimensions.
func (pp *PostProcessFBO) Resize(width, height int) {
	if int32(width) == pp.Width && int32(height) == pp.Height {
		return
	}
	pp.freeFBO()
	if err := pp.allocFBO(width, height); err != nil {
		core.Logger().Warn("post-process resize failed", "width", width, "height", height, "err", err)
	}
}

func (pp *PostProcessFBO) Destroy() {
	pp.freeFBO()
	if pp.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &pp.quadVAO)
		pp.quadVAO = 0
	}
	if pp.prog != 0 {
		gl.DeleteProgram(pp.prog)
		pp.prog = 0
	}
}

// Blit tone-maps the HDR colour attachment onto the default framebuffer.
// Depth testing and culling are suspended for the pass and restored after.
func (pp *PostProcessFBO) Blit() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, pp.Width, pp.Height)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	defer gl.Enable(gl.CULL_FACE)
	defer gl.Enable(gl.DEPTH_TEST)

	gl.UseProgram(pp.prog)
	gl.Uniform1f(pp.expLoc, pp.Exposure)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, pp.ColorTex)
	gl.BindVertexArray(pp.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)
}
