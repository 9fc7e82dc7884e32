package renderer

import "github.com/df07/go-sphere-raytracer/pkg/core"

// Framebuffer holds the averaged linear color of every pixel in row-major order,
// row 0 at the top of the image
type Framebuffer struct {
	Width  int
	Height int
	Pixels []core.Color
}

// NewFramebuffer allocates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Color, width*height),
	}
}

// At returns the linear color of pixel (i, j)
func (fb *Framebuffer) At(i, j int) core.Color {
	return fb.Pixels[j*fb.Width+i]
}

// Set stores the linear color of pixel (i, j)
func (fb *Framebuffer) Set(i, j int, c core.Color) {
	fb.Pixels[j*fb.Width+i] = c
}

// RGB8 returns the gamma-corrected, clamped 8-bit channels of pixel (i, j)
func (fb *Framebuffer) RGB8(i, j int) (r, g, b int) {
	return core.Quantize(fb.At(i, j))
}
