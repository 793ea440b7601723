package gfx

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// BindTexture makes tex the 2D texture of texture unit unit.
func BindTexture(gl GL, tex Texture, unit int) {
	gl.ActiveTexture(Enum(TEXTURE0 + unit))
	gl.BindTexture(TEXTURE_2D, tex)
}

// DeleteTexture releases tex.
func DeleteTexture(gl GL, tex Texture) {
	if tex.Valid() {
		gl.DeleteTexture(tex)
	}
}

// CreateTexture uploads img into a new texture bound at unit, with nearest
// filtering. Call this from the goroutine that owns the context.
func CreateTexture(gl GL, img image.Image, unit int) (Texture, error) {
	tex, err := newSampledTexture(gl, unit, "create texture")
	if err != nil {
		return Texture{}, err
	}
	uploadImage(gl, toNRGBA(img))
	return tex, nil
}

// newSampledTexture creates a texture, binds it at unit and sets nearest
// filtering.
func newSampledTexture(gl GL, unit int, call string) (Texture, error) {
	gl.ActiveTexture(Enum(TEXTURE0 + unit))
	tex := gl.CreateTexture()
	if !tex.Valid() {
		return Texture{}, creationFailed(call)
	}
	gl.BindTexture(TEXTURE_2D, tex)
	gl.TexParameteri(TEXTURE_2D, TEXTURE_MIN_FILTER, NEAREST)
	gl.TexParameteri(TEXTURE_2D, TEXTURE_MAG_FILTER, NEAREST)
	return tex, nil
}

// placeholderPixel is the single opaque black pixel a texture holds until
// its image arrives.
var placeholderPixel = []byte{0, 0, 0, 255}

func uploadPlaceholder(gl GL) {
	gl.TexImage2D(TEXTURE_2D, 0, RGBA, 1, 1, RGBA, UNSIGNED_BYTE, placeholderPixel)
}

// uploadImage replaces the storage of the bound texture with img.
func uploadImage(gl GL, img *image.NRGBA) {
	b := img.Bounds()
	gl.TexImage2D(TEXTURE_2D, 0, RGBA, b.Dx(), b.Dy(), RGBA, UNSIGNED_BYTE, img.Pix)
}

// toNRGBA returns img as tightly packed, non-premultiplied RGBA8 with its
// origin at (0,0).
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) && n.Stride == 4*n.Rect.Dx() {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return dst
}
