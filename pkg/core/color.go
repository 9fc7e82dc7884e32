package core

import "math"

// intensity is the displayable channel range before quantisation
var intensity = NewInterval(0.000, 0.999)

// LinearToGamma converts a linear channel value to gamma-2 display space
func LinearToGamma(linear float64) float64 {
	if linear > 0 {
		return math.Sqrt(linear)
	}
	return 0
}

// Quantize converts an averaged linear color to 8-bit display channels:
// gamma-2 correction, clamp to [0, 0.999], then scale by 256 and truncate.
func Quantize(pixelColor Color) (r, g, b int) {
	r = int(256 * intensity.Clamp(LinearToGamma(pixelColor.X)))
	g = int(256 * intensity.Clamp(LinearToGamma(pixelColor.Y)))
	b = int(256 * intensity.Clamp(LinearToGamma(pixelColor.Z)))
	return r, g, b
}
