package output

import (
	"bufio"
	"fmt"
	"io"

	errorsmod "cosmossdk.io/errors"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// WritePPM writes the framebuffer as a plain-text P3 PPM: a header followed by one
// "r g b" line per pixel, rows top to bottom, gamma corrected and clamped to [0, 255]
func WritePPM(w io.Writer, fb *renderer.Framebuffer) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", fb.Width, fb.Height); err != nil {
		return errorsmod.Wrap(core.ErrOutput, err.Error())
	}

	for j := 0; j < fb.Height; j++ {
		for i := 0; i < fb.Width; i++ {
			r, g, b := fb.RGB8(i, j)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", r, g, b); err != nil {
				return errorsmod.Wrap(core.ErrOutput, err.Error())
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return errorsmod.Wrap(core.ErrOutput, err.Error())
	}
	return nil
}

// WritePPMBinary writes the framebuffer as a binary P6 PPM
func WritePPMBinary(w io.Writer, fb *renderer.Framebuffer) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", fb.Width, fb.Height); err != nil {
		return errorsmod.Wrap(core.ErrOutput, err.Error())
	}

	buf := make([]byte, 0, fb.Width*3)
	for j := 0; j < fb.Height; j++ {
		buf = buf[:0]
		for i := 0; i < fb.Width; i++ {
			r, g, b := fb.RGB8(i, j)
			buf = append(buf, byte(r), byte(g), byte(b))
		}
		if _, err := bw.Write(buf); err != nil {
			return errorsmod.Wrap(core.ErrOutput, err.Error())
		}
	}

	if err := bw.Flush(); err != nil {
		return errorsmod.Wrap(core.ErrOutput, err.Error())
	}
	return nil
}
