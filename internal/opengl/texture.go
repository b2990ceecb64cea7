package opengl

import (
	"fmt"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"lightlab/core"
	"lightlab/scene"
)

// EXT_texture_filter_anisotropic enums; core only from GL 4.6.
const (
	textureMaxAnisotropy    = 0x84FE
	maxTextureMaxAnisotropy = 0x84FF
)

// maxAnisotropy is queried once per context; 0 means unsupported.
var maxAnisotropy float32 = -1

// checkPixels rejects textures whose pixel buffer cannot back an RGBA8
// image of the declared size.
func checkPixels(tex *scene.Texture) error {
	switch {
	case tex == nil:
		return fmt.Errorf("nil texture")
	case tex.Width <= 0 || tex.Height <= 0:
		return fmt.Errorf("texture %q: invalid size %dx%d", tex.Name, tex.Width, tex.Height)
	case len(tex.Pixels) < tex.Width*tex.Height*4:
		return fmt.Errorf("texture %q: %d bytes for %dx%d", tex.Name, len(tex.Pixels), tex.Width, tex.Height)
	}
	return nil
}

// samplerParams maps the texture's sampling settings to GL enums.
func samplerParams(tex *scene.Texture) (internal, wrap int32) {
	internal, wrap = gl.RGBA8, gl.CLAMP_TO_EDGE
	if tex.SRGB {
		internal = gl.SRGB8_ALPHA8
	}
	if tex.Wrap == scene.WrapRepeat {
		wrap = gl.REPEAT
	}
	return internal, wrap
}

// UploadTexture creates a mipmapped GL texture from tex and stores its
// name in tex.GLID. Wrap, SRGB and Anisotropy are read at upload time.
// The GL context must be current.
func UploadTexture(tex *scene.Texture) error {
	if err := checkPixels(tex); err != nil {
		return err
	}
	internal, wrap := samplerParams(tex)

	gl.GenTextures(1, &tex.GLID)
	gl.BindTexture(gl.TEXTURE_2D, tex.GLID)
	defer gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(tex.Width), int32(tex.Height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&tex.Pixels[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	if tex.Anisotropy > 1 {
		if limit := anisotropyLimit(); limit > 1 {
			gl.TexParameterf(gl.TEXTURE_2D, textureMaxAnisotropy, min(tex.Anisotropy, limit))
		}
	}

	core.Logger().Debug("texture uploaded", "name", tex.Name, "id", tex.GLID,
		"width", tex.Width, "height", tex.Height, "srgb", tex.SRGB, "anisotropy", tex.Anisotropy)
	return nil
}

// DeleteTexture frees an uploaded texture and zeroes its GLID.
func DeleteTexture(tex *scene.Texture) {
	if tex == nil || tex.GLID == 0 {
		return
	}
	gl.DeleteTextures(1, &tex.GLID)
	tex.GLID = 0
}

func anisotropyLimit() float32 {
	if maxAnisotropy < 0 {
		maxAnisotropy = 0
		gl.GetFloatv(maxTextureMaxAnisotropy, &maxAnisotropy)
		// Drain INVALID_ENUM when the extension is missing.
		if gl.GetError() != gl.NO_ERROR {
			maxAnisotropy = 0
		}
	}
	return maxAnisotropy
}
