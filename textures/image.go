package textures

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"lightlab/core"
	"lightlab/scene"
)

// DecodeFile reads an image file into a new RGBA8 texture named after
// path. With flipY the rows are stored bottom-to-top, matching OpenGL's
// texture origin.
func DecodeFile(path string, flipY bool) (*scene.Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	tex := FromImage(path, img, flipY)
	core.Logger().Debug("texture decoded", "path", path, "format", format, "width", tex.Width, "height", tex.Height)
	return tex, nil
}

// FromImage converts any image.Image to an RGBA8 texture.
func FromImage(name string, img image.Image, flipY bool) *scene.Texture {
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	width, height := rgba.Rect.Dx(), rgba.Rect.Dy()
	rowBytes := width * 4
	pixels := make([]byte, rowBytes*height)
	for y := 0; y < height; y++ {
		srcRow := rgba.Pix[y*rgba.Stride : y*rgba.Stride+rowBytes]
		dstY := y
		if flipY {
			dstY = height - 1 - y
		}
		copy(pixels[dstY*rowBytes:(dstY+1)*rowBytes], srcRow)
	}

	tex := scene.NewTexture(name)
	tex.Width = width
	tex.Height = height
	tex.Pixels = pixels
	tex.FlipY = flipY
	return tex
}
