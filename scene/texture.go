package scene

import "github.com/go-gl/mathgl/mgl32"

// WrapMode selects how UVs outside [0,1] are sampled.
type WrapMode int

const (
	WrapClamp WrapMode = iota
	WrapRepeat
)

// Texture holds CPU-side pixel data for a 2D texture plus its sampling
// parameters. GLID is set by the OpenGL backend after upload.
type Texture struct {
	Name   string
	Width  int
	Height int
	// Pixels in RGBA8 format, 4 bytes per pixel. Rows run bottom-to-top
	// when FlipY was set at decode time.
	Pixels []byte
	// GLID is the OpenGL texture object ID, set by opengl.UploadTexture.
	GLID uint32

	Wrap       WrapMode
	Repeat     mgl32.Vec2
	Anisotropy float32
	SRGB       bool
	FlipY      bool
}

// NewTexture returns an empty texture with default sampling: clamped,
// repeat 1x1, no anisotropy, linear color, flipped rows.
func NewTexture(name string) *Texture {
	return &Texture{
		Name:       name,
		Wrap:       WrapClamp,
		Repeat:     mgl32.Vec2{1, 1},
		Anisotropy: 1,
		FlipY:      true,
	}
}

// Uploaded reports whether the texture has a GPU object.
func (t *Texture) Uploaded() bool {
	return t.GLID != 0
}
