package opengl

import (
	"fmt"
	"math"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// ShadowNear is the near plane of every cube face projection.
const ShadowNear float32 = 0.05

// ShadowMap is an omnidirectional depth cube for a point light. Each face
// stores distance-to-light divided by Far, so the main pass compares
// linear distances instead of projected depth.
type ShadowMap struct {
	FBO     uint32
	CubeTex uint32
	Size    int32
	Far     float32
}

// cubeFace directions and up vectors in GL cube map face order.
var cubeFaces = [6]struct{ dir, up mgl32.Vec3 }{
	{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, -1, 0}},
	{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, -1, 0}},
	{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}},
	{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{0, 0, -1}},
	{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, -1, 0}},
	{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, -1, 0}},
}

// NewShadowMap creates a size×size depth cube and its framebuffer.
func NewShadowMap(size int, far float32) (*ShadowMap, error) {
	sm := &ShadowMap{Size: int32(size), Far: far}

	gl.GenTextures(1, &sm.CubeTex)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, sm.CubeTex)
	for face := uint32(0); face < 6; face++ {
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+face, 0, gl.DEPTH_COMPONENT32F,
			int32(size), int32(size), 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)

	gl.GenFramebuffers(1, &sm.FBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, sm.FBO)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_CUBE_MAP_POSITIVE_X, sm.CubeTex, 0)
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		sm.Destroy()
		return nil, fmt.Errorf("shadow FBO incomplete: status=0x%X", status)
	}

	return sm, nil
}

// BindFace attaches one cube face as the depth target and clears it.
func (sm *ShadowMap) BindFace(face int) {
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT,
		gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(face), sm.CubeTex, 0)
	gl.Clear(gl.DEPTH_BUFFER_BIT)
}

// FaceViewProj returns the view-projection matrix for one cube face seen
// from lightPos, with a 90° field of view.
func FaceViewProj(face int, lightPos mgl32.Vec3, far float32) mgl32.Mat4 {
	f := cubeFaces[face]
	view := mgl32.LookAtV(lightPos, lightPos.Add(f.dir), f.up)
	proj := mgl32.Perspective(math.Pi/2, 1, ShadowNear, far)
	return proj.Mul4(view)
}

// Destroy frees GPU resources.
func (sm *ShadowMap) Destroy() {
	if sm.FBO != 0 {
		gl.DeleteFramebuffers(1, &sm.FBO)
		sm.FBO = 0
	}
	if sm.CubeTex != 0 {
		gl.DeleteTextures(1, &sm.CubeTex)
		sm.CubeTex = 0
	}
}
