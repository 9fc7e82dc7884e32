package renderer

import (
	"context"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/geometry"
)

// Render renders the full image of world
func (c *Camera) Render(world geometry.Hittable) (*Framebuffer, RenderStats) {
	fb, stats, _ := c.RenderContext(context.Background(), world)
	return fb, stats
}

// RenderContext renders the full image of world, one scanline per task.
// Every row draws from its own seeded stream, so the output is identical for any worker count.
// On cancellation the partially filled framebuffer is returned together with ctx.Err().
func (c *Camera) RenderContext(ctx context.Context, world geometry.Hittable) (*Framebuffer, RenderStats, error) {
	c.Initialize()
	start := time.Now()

	width, height := c.config.ImageWidth, c.imageHeight
	fb := NewFramebuffer(width, height)

	pool := NewWorkerPool(c, world, fb, c.config.Workers)
	pool.Start()

	// Feed rows top to bottom; Stop closes the result queue once workers drain
	go func() {
		defer pool.Stop()
		for j := 0; j < height; j++ {
			if err := pool.SubmitTask(ctx, ScanlineTask{Row: j}); err != nil {
				return
			}
		}
	}()

	samples := max(1, c.config.SamplesPerPixel)
	stats := RenderStats{
		Width:           width,
		Height:          height,
		SamplesPerPixel: samples,
		Workers:         pool.GetNumWorkers(),
	}

	progressStep := max(1, height/10)
	remaining := height
	c.logger.Printf("Scanlines remaining: %d\n", remaining)
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		remaining--
		stats.RaysCast += result.RaysCast
		stats.TotalPixels += width
		if remaining%progressStep == 0 {
			c.logger.Printf("Scanlines remaining: %d\n", remaining)
		}
	}

	stats.TotalSamples = stats.TotalPixels * samples
	stats.Elapsed = time.Since(start)
	stats.MeanLuminance, stats.StdDevLuminance = LuminanceStats(fb)

	if err := ctx.Err(); err != nil && remaining > 0 {
		return fb, stats, err
	}

	c.logger.Printf("Done. %dx%d, %d samples/pixel, %d rays in %v\n",
		width, height, samples, stats.RaysCast, stats.Elapsed.Round(time.Millisecond))
	return fb, stats, nil
}
