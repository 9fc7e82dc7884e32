package output

import (
	"io"
	"path/filepath"
	"strings"

	errorsmod "cosmossdk.io/errors"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// Supported image formats
const (
	FormatPPM       = "ppm" // Plain-text P3
	FormatPPMBinary = "p6"  // Binary P6
	FormatPNG       = "png"
)

// Formats lists every supported format name
func Formats() []string {
	return []string{FormatPPM, FormatPPMBinary, FormatPNG}
}

// Encode writes the framebuffer to w in the named format
func Encode(w io.Writer, fb *renderer.Framebuffer, format string) error {
	switch strings.ToLower(format) {
	case FormatPPM:
		return WritePPM(w, fb)
	case FormatPPMBinary:
		return WritePPMBinary(w, fb)
	case FormatPNG:
		return WritePNG(w, fb)
	default:
		return errorsmod.Wrapf(core.ErrUnsupportedFormat, "%q (supported: %s)", format, strings.Join(Formats(), ", "))
	}
}

// ContentType returns the MIME type for a supported format
func ContentType(format string) (string, error) {
	switch strings.ToLower(format) {
	case FormatPPM, FormatPPMBinary:
		return "image/x-portable-pixmap", nil
	case FormatPNG:
		return "image/png", nil
	default:
		return "", errorsmod.Wrapf(core.ErrUnsupportedFormat, "%q", format)
	}
}

// FormatFromPath infers the format from a file extension, falling back to fallback
func FormatFromPath(path, fallback string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG
	case ".ppm":
		if strings.ToLower(fallback) == FormatPPMBinary {
			return FormatPPMBinary
		}
		return FormatPPM
	default:
		return fallback
	}
}
