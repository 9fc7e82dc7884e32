package renderer

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width           int           // Image width in pixels
	Height          int           // Image height in pixels
	TotalPixels     int           // Total number of pixels rendered
	SamplesPerPixel int           // Samples taken for each pixel
	TotalSamples    int           // Total number of camera samples taken
	RaysCast        int64         // Intersection queries issued, including bounces
	Workers         int           // Scanline workers used
	Elapsed         time.Duration // Wall-clock render time
	MeanLuminance   float64       // Mean pixel luminance of the linear image
	StdDevLuminance float64       // Sample standard deviation of pixel luminance
}

// RaysPerSecond returns the ray throughput of the render
func (rs RenderStats) RaysPerSecond() float64 {
	if rs.Elapsed <= 0 {
		return 0
	}
	return float64(rs.RaysCast) / rs.Elapsed.Seconds()
}

// LuminanceStats returns the mean and standard deviation of pixel luminance
func LuminanceStats(fb *Framebuffer) (mean, stdDev float64) {
	if fb == nil || len(fb.Pixels) == 0 {
		return 0, 0
	}

	luminances := make([]float64, len(fb.Pixels))
	for i, pixel := range fb.Pixels {
		luminances[i] = pixel.Luminance()
	}

	if len(luminances) < 2 {
		return luminances[0], 0
	}
	return stat.MeanStdDev(luminances, nil)
}
