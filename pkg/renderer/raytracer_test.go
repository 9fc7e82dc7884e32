package renderer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// recordingLogger captures formatted log lines
type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func testWorld() *geometry.HittableList {
	return geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewColor(0.8, 0.8, 0.0))),
		geometry.NewSphere(core.NewVec3(0, 0, -1.2), 0.5, material.NewLambertian(core.NewColor(0.1, 0.2, 0.5))),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), -0.4, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 0.3)),
	)
}

func TestRender_EmptyWorldIsSky(t *testing.T) {
	config := unitCameraConfig(2)
	config.SamplesPerPixel = 4
	camera := NewCamera(config)

	fb, stats := camera.Render(geometry.NewHittableList())

	if fb.Width != 2 || fb.Height != 2 || len(fb.Pixels) != 4 {
		t.Fatalf("Expected 2x2 framebuffer, got %dx%d with %d pixels", fb.Width, fb.Height, len(fb.Pixels))
	}

	// Jitter keeps top-row rays above the horizon and bottom-row rays below it
	for i := 0; i < 2; i++ {
		top, bottom := fb.At(i, 0), fb.At(i, 1)
		if math.Abs(top.Z-1) > tolerance || math.Abs(bottom.Z-1) > tolerance {
			t.Errorf("Sky blue channel should always be 1, got top %v bottom %v", top, bottom)
		}
		if top.X >= bottom.X {
			t.Errorf("Column %d: upper pixel should be bluer than lower, got top %v bottom %v", i, top, bottom)
		}
	}

	if stats.TotalPixels != 4 || stats.TotalSamples != 16 {
		t.Errorf("Expected 4 pixels and 16 samples, got %d and %d", stats.TotalPixels, stats.TotalSamples)
	}
	if stats.RaysCast != 16 {
		t.Errorf("Every sample should cast exactly one ray into an empty world, got %d", stats.RaysCast)
	}
}

func TestRender_ZeroDepthIsBlack(t *testing.T) {
	config := unitCameraConfig(4)
	config.MaxDepth = 0
	camera := NewCamera(config)

	fb, stats := camera.Render(testWorld())

	for idx, pixel := range fb.Pixels {
		if pixel != core.NewColor(0, 0, 0) {
			t.Fatalf("Pixel %d should be black with no bounces, got %v", idx, pixel)
		}
	}
	if stats.RaysCast != 0 {
		t.Errorf("Expected no rays cast at depth 0, got %d", stats.RaysCast)
	}
	if stats.MeanLuminance != 0 || stats.StdDevLuminance != 0 {
		t.Errorf("Expected zero luminance statistics, got mean %f stddev %f", stats.MeanLuminance, stats.StdDevLuminance)
	}
}

func TestRender_DeterministicAcrossWorkerCounts(t *testing.T) {
	config := unitCameraConfig(16)
	config.AspectRatio = 16.0 / 9.0
	config.SamplesPerPixel = 3
	config.MaxDepth = 8
	config.Seed = 1234

	var reference *Framebuffer
	for _, workers := range []int{1, 2, 7} {
		config.Workers = workers
		fb, stats := NewCamera(config).Render(testWorld())

		if stats.Workers != workers {
			t.Errorf("Expected %d workers, got %d", workers, stats.Workers)
		}
		if reference == nil {
			reference = fb
			continue
		}
		for idx := range fb.Pixels {
			if fb.Pixels[idx] != reference.Pixels[idx] {
				t.Fatalf("Workers=%d: pixel %d differs: %v vs %v", workers, idx, fb.Pixels[idx], reference.Pixels[idx])
			}
		}
	}
}

func TestRender_SeedChangesImage(t *testing.T) {
	config := unitCameraConfig(8)
	config.SamplesPerPixel = 2

	config.Seed = 1
	first, _ := NewCamera(config).Render(testWorld())
	config.Seed = 2
	second, _ := NewCamera(config).Render(testWorld())

	for idx := range first.Pixels {
		if first.Pixels[idx] != second.Pixels[idx] {
			return
		}
	}
	t.Error("Expected different seeds to produce different noise")
}

func TestRenderContext_Cancelled(t *testing.T) {
	config := unitCameraConfig(8)
	camera := NewCamera(config)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fb, stats, err := camera.RenderContext(ctx, testWorld())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if fb == nil || fb.Width != 8 || fb.Height != 8 {
		t.Errorf("Expected an allocated partial framebuffer, got %+v", fb)
	}
	if stats.TotalPixels != 0 {
		t.Errorf("No scanline should run after cancellation, got %d pixels", stats.TotalPixels)
	}
}

func TestRender_ReportsProgress(t *testing.T) {
	config := unitCameraConfig(3)
	logger := &recordingLogger{}
	camera := NewCamera(config)
	camera.SetLogger(logger)

	camera.Render(geometry.NewHittableList())

	var progress []string
	for _, line := range logger.lines {
		if strings.HasPrefix(line, "Scanlines remaining:") {
			progress = append(progress, strings.TrimSpace(line))
		}
	}

	expected := []string{
		"Scanlines remaining: 3",
		"Scanlines remaining: 2",
		"Scanlines remaining: 1",
		"Scanlines remaining: 0",
	}
	if strings.Join(progress, "|") != strings.Join(expected, "|") {
		t.Errorf("Expected progress %v, got %v", expected, progress)
	}
	if !strings.HasPrefix(logger.lines[len(logger.lines)-1], "Done.") {
		t.Errorf("Expected a completion line, got %q", logger.lines[len(logger.lines)-1])
	}
}

func TestRender_RepeatableRenders(t *testing.T) {
	config := unitCameraConfig(6)
	config.SamplesPerPixel = 3
	config.MaxDepth = 5
	camera := NewCamera(config)
	world := testWorld()

	fb, _ := camera.Render(world)
	fb2, _ := camera.Render(world)

	for idx := range fb.Pixels {
		if fb.Pixels[idx] != fb2.Pixels[idx] {
			t.Fatalf("Repeated renders should be identical, pixel %d: %v vs %v", idx, fb.Pixels[idx], fb2.Pixels[idx])
		}
	}
}

func TestFramebufferRGB8(t *testing.T) {
	fb := NewFramebuffer(2, 1)
	fb.Set(0, 0, core.NewColor(0.25, 0, 1))
	fb.Set(1, 0, core.NewColor(4, -1, 0.0625))

	tests := []struct {
		i       int
		r, g, b int
	}{
		{0, 128, 0, 255},
		{1, 255, 0, 64},
	}

	for _, tt := range tests {
		r, g, b := fb.RGB8(tt.i, 0)
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("Pixel %d: expected (%d,%d,%d), got (%d,%d,%d)", tt.i, tt.r, tt.g, tt.b, r, g, b)
		}
	}
}

func TestLuminanceStats(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.Set(0, 0, core.NewColor(1, 1, 1))
	fb.Set(1, 0, core.NewColor(1, 1, 1))

	mean, stdDev := LuminanceStats(fb)
	if mean < 0.5-tolerance || mean > 0.5+tolerance {
		t.Errorf("Expected mean luminance 0.5, got %f", mean)
	}
	// Sample standard deviation of {1, 1, 0, 0}
	expected := 0.5773502691896258
	if stdDev < expected-1e-9 || stdDev > expected+1e-9 {
		t.Errorf("Expected stddev %f, got %f", expected, stdDev)
	}

	single := NewFramebuffer(1, 1)
	single.Set(0, 0, core.NewColor(1, 1, 1))
	if _, sd := LuminanceStats(single); sd != 0 {
		t.Errorf("Single pixel should have zero deviation, got %f", sd)
	}
}
