package opengl

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const textPadding = 6

// textBackground is the translucent panel behind overlay text.
var textBackground = color.RGBA{R: 0x1a, G: 0x1a, B: 0x1a, A: 0xd0}

// RasterizeLines renders lines top to bottom onto a translucent panel with
// the 7×13 bitmap face. It returns nil for no lines.
func RasterizeLines(lines []string) *image.RGBA {
	if len(lines) == 0 {
		return nil
	}
	face := basicfont.Face7x13
	width := 0
	for _, line := range lines {
		if w := font.MeasureString(face, line).Ceil(); w > width {
			width = w
		}
	}
	lineHeight := face.Height
	w := width + 2*textPadding
	h := len(lines)*lineHeight + 2*textPadding

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: textBackground}, image.Point{}, draw.Src)

	d := font.Drawer{Dst: img, Src: image.White, Face: face}
	for i, line := range lines {
		d.Dot = fixed.P(textPadding, textPadding+face.Ascent+i*lineHeight)
		d.DrawString(line)
	}
	return img
}

// TextRenderer draws overlay text as a single textured quad. The texture
// is rebuilt only when the text changes.
type TextRenderer struct {
	prog    uint32
	rectLoc int32
	texLoc  int32
	vao     uint32
	tex     uint32

	cached string
	w, h   int
}

func newTextRenderer() (*TextRenderer, error) {
	prog, err := newProgram(textVertSrc, textFragSrc)
	if err != nil {
		return nil, fmt.Errorf("text shader: %w", err)
	}
	tr := &TextRenderer{
		prog:    prog,
		rectLoc: gl.GetUniformLocation(prog, gl.Str("rect\x00")),
		texLoc:  gl.GetUniformLocation(prog, gl.Str("glyphs\x00")),
	}
	gl.GenVertexArrays(1, &tr.vao)
	gl.GenTextures(1, &tr.tex)
	gl.BindTexture(gl.TEXTURE_2D, tr.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tr, nil
}

func (tr *TextRenderer) upload(lines []string) {
	key := strings.Join(lines, "\n")
	if key == tr.cached && tr.w > 0 {
		return
	}
	img := RasterizeLines(lines)
	tr.cached = key
	if img == nil {
		tr.w, tr.h = 0, 0
		return
	}
	tr.w, tr.h = img.Rect.Dx(), img.Rect.Dy()
	gl.BindTexture(gl.TEXTURE_2D, tr.tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(tr.w), int32(tr.h), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// draw places the panel's top-left corner at pixel (x, y) from the top-left
// of a screenW×screenH framebuffer, magnified by scale.
func (tr *TextRenderer) draw(lines []string, x, y, scale, screenW, screenH float32) {
	tr.upload(lines)
	if tr.w == 0 || screenW <= 0 || screenH <= 0 {
		return
	}
	left := x/screenW*2 - 1
	top := 1 - y/screenH*2
	right := (x+float32(tr.w)*scale)/screenW*2 - 1
	bottom := 1 - (y+float32(tr.h)*scale)/screenH*2

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.UseProgram(tr.prog)
	gl.Uniform4f(tr.rectLoc, left, top, right, bottom)
	gl.Uniform1i(tr.texLoc, 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tr.tex)
	gl.BindVertexArray(tr.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)

	gl.Disable(gl.BLEND)
	gl.Enable(gl.CULL_FACE)
	gl.Enable(gl.DEPTH_TEST)
}

func (tr *TextRenderer) destroy() {
	if tr.tex != 0 {
		gl.DeleteTextures(1, &tr.tex)
		tr.tex = 0
	}
	if tr.vao != 0 {
		gl.DeleteVertexArrays(1, &tr.vao)
		tr.vao = 0
	}
	if tr.prog != 0 {
		gl.DeleteProgram(tr.prog)
		tr.prog = 0
	}
}
