package output

import (
	"image"
	"image/color"
	"image/png"
	"io"

	errorsmod "cosmossdk.io/errors"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// ToImage converts the framebuffer to an 8-bit RGBA image with the same quantization as the PPM writers
func ToImage(fb *renderer.Framebuffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for j := 0; j < fb.Height; j++ {
		for i := 0; i < fb.Width; i++ {
			r, g, b := fb.RGB8(i, j)
			img.SetRGBA(i, j, color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255})
		}
	}
	return img
}

// WritePNG writes the framebuffer as a PNG image
func WritePNG(w io.Writer, fb *renderer.Framebuffer) error {
	if err := png.Encode(w, ToImage(fb)); err != nil {
		return errorsmod.Wrap(core.ErrOutput, err.Error())
	}
	return nil
}
