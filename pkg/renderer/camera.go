package renderer

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
)

// shadowAcneEpsilon is the lower bound of the accepted ray parameter for every bounce
const shadowAcneEpsilon = 0.001

// CameraConfig contains all parameters for creating a camera
type CameraConfig struct {
	AspectRatio     float64     // Ratio of image width over height
	ImageWidth      int         // Rendered image width in pixels
	SamplesPerPixel int         // Number of random samples per pixel
	MaxDepth        int         // Maximum number of ray bounces into the scene
	VFov            float64     // Vertical field of view in degrees
	LookFrom        core.Point3 // Camera position
	LookAt          core.Point3 // Point the camera is looking at
	ViewUp          core.Vec3   // Camera-relative "up" direction
	DefocusAngle    float64     // Variation angle of rays through each pixel, in degrees (0 = pinhole)
	FocusDistance   float64     // Distance to the plane of perfect focus (0 = distance to LookAt)
	Seed            int64       // Base seed for per-scanline random streams
	Workers         int         // Parallel scanline workers (0 = use CPU count)
}

// DefaultCameraConfig returns sensible default values
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		AspectRatio:     1.0,
		ImageWidth:      100,
		SamplesPerPixel: 10,
		MaxDepth:        10,
		VFov:            90,
		LookFrom:        core.NewVec3(0, 0, 0),
		LookAt:          core.NewVec3(0, 0, -1),
		ViewUp:          core.NewVec3(0, 1, 0),
		DefocusAngle:    0,
		FocusDistance:   10,
		Seed:            42,
		Workers:         0,
	}
}

// MergeCameraConfig overlays the non-zero fields of override onto base
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base

	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.ImageWidth != 0 {
		result.ImageWidth = override.ImageWidth
	}
	if override.SamplesPerPixel != 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.LookFrom != (core.Vec3{}) {
		result.LookFrom = override.LookFrom
	}
	if override.LookAt != (core.Vec3{}) {
		result.LookAt = override.LookAt
	}
	if override.ViewUp != (core.Vec3{}) {
		result.ViewUp = override.ViewUp
	}
	if override.DefocusAngle != 0 {
		result.DefocusAngle = override.DefocusAngle
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}
	if override.Seed != 0 {
		result.Seed = override.Seed
	}
	if override.Workers != 0 {
		result.Workers = override.Workers
	}

	return result
}

// Camera generates rays for rendering and resolves their colors against a world.
// Derived geometry is recomputed from the config by Initialize at the start of every render.
type Camera struct {
	config CameraConfig
	logger core.Logger

	imageHeight       int
	pixelSamplesScale float64
	center            core.Point3
	pixel00Loc        core.Point3
	pixelDeltaU       core.Vec3
	pixelDeltaV       core.Vec3
	u, v, w           core.Vec3
	defocusDiskU      core.Vec3
	defocusDiskV      core.Vec3
}

// NewCamera creates a camera with initialized geometry
func NewCamera(config CameraConfig) *Camera {
	camera := &Camera{
		config: config,
		logger: NewNopLogger(),
	}
	camera.Initialize()
	return camera
}

// SetLogger sets the logger used for progress reporting
func (c *Camera) SetLogger(logger core.Logger) {
	if logger == nil {
		logger = NewNopLogger()
	}
	c.logger = logger
}

// ImageWidth returns the rendered image width in pixels
func (c *Camera) ImageWidth() int {
	return c.config.ImageWidth
}

// ImageHeight returns the rendered image height in pixels
func (c *Camera) ImageHeight() int {
	return c.imageHeight
}

// Initialize recomputes all derived geometry from the configuration
func (c *Camera) Initialize() {
	cfg := c.config

	c.imageHeight = max(1, int(float64(cfg.ImageWidth)/cfg.AspectRatio))
	c.pixelSamplesScale = 1.0 / float64(max(1, cfg.SamplesPerPixel))
	c.center = cfg.LookFrom

	focusDistance := cfg.FocusDistance
	if focusDistance <= 0 {
		focusDistance = cfg.LookFrom.Subtract(cfg.LookAt).Length()
	}

	// Viewport dimensions
	theta := core.DegreesToRadians(cfg.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * focusDistance
	viewportWidth := viewportHeight * float64(cfg.ImageWidth) / float64(c.imageHeight)

	// Orthonormal camera basis
	c.w = cfg.LookFrom.Subtract(cfg.LookAt).UnitVector()
	c.u = cfg.ViewUp.Cross(c.w).UnitVector()
	c.v = c.w.Cross(c.u)

	// Vectors across the horizontal and down the vertical viewport edges
	viewportU := c.u.Multiply(viewportWidth)
	viewportV := c.v.Negate().Multiply(viewportHeight)

	c.pixelDeltaU = viewportU.Divide(float64(cfg.ImageWidth))
	c.pixelDeltaV = viewportV.Divide(float64(c.imageHeight))

	viewportUpperLeft := c.center.
		Subtract(c.w.Multiply(focusDistance)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	c.pixel00Loc = viewportUpperLeft.Add(c.pixelDeltaU.Add(c.pixelDeltaV).Multiply(0.5))

	c.defocusDiskU = core.Vec3{}
	c.defocusDiskV = core.Vec3{}
	if cfg.DefocusAngle > 0 {
		defocusRadius := focusDistance * math.Tan(core.DegreesToRadians(cfg.DefocusAngle/2))
		c.defocusDiskU = c.u.Multiply(defocusRadius)
		c.defocusDiskV = c.v.Multiply(defocusRadius)
	}
}

// GetRay returns a ray from the defocus disk through a random point in the
// square surrounding pixel (i, j)
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	offset := sampleSquare(sampler)
	pixelSample := c.pixel00Loc.
		Add(c.pixelDeltaU.Multiply(float64(i) + offset.X)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offset.Y))

	rayOrigin := c.center
	if c.config.DefocusAngle > 0 {
		rayOrigin = c.defocusDiskSample(sampler)
	}

	return core.NewRay(rayOrigin, pixelSample.Subtract(rayOrigin))
}

// sampleSquare returns a random offset in the [-0.5, 0.5) unit square
func sampleSquare(sampler core.Sampler) core.Vec2 {
	s := sampler.Get2D()
	return core.NewVec2(s.X-0.5, s.Y-0.5)
}

// defocusDiskSample returns a random point on the camera's defocus disk
func (c *Camera) defocusDiskSample(sampler core.Sampler) core.Point3 {
	p := core.RandomInUnitDisk(sampler)
	return c.center.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
}

// RayColor returns the radiance carried back along ray after at most depth bounces
func (c *Camera) RayColor(ray core.Ray, depth int, world geometry.Hittable, sampler core.Sampler) core.Color {
	var rays int64
	return c.rayColor(ray, depth, world, sampler, &rays)
}

func (c *Camera) rayColor(ray core.Ray, depth int, world geometry.Hittable, sampler core.Sampler, rays *int64) core.Color {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.NewColor(0, 0, 0)
	}

	*rays++
	hit, isHit := world.Hit(ray, core.NewInterval(shadowAcneEpsilon, math.Inf(1)))
	if !isHit {
		return BackgroundColor(ray)
	}

	if hit.Material == nil {
		return core.NewColor(0, 0, 0)
	}

	scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
	if !didScatter {
		return core.NewColor(0, 0, 0) // Material absorbed the ray
	}

	return scatter.Attenuation.MultiplyVec(c.rayColor(scatter.Scattered, depth-1, world, sampler, rays))
}

// BackgroundColor returns the sky gradient for a ray that escapes the scene:
// white at the bottom blending to sky blue at the top
func BackgroundColor(ray core.Ray) core.Color {
	unitDirection := ray.Direction.UnitVector()
	a := 0.5 * (unitDirection.Y + 1.0)
	white := core.NewColor(1.0, 1.0, 1.0)
	skyBlue := core.NewColor(0.5, 0.7, 1.0)
	return white.Multiply(1.0 - a).Add(skyBlue.Multiply(a))
}

// samplePixel averages SamplesPerPixel jittered samples for pixel (i, j)
func (c *Camera) samplePixel(i, j int, world geometry.Hittable, sampler core.Sampler, rays *int64) core.Color {
	pixelColor := core.NewColor(0, 0, 0)
	samples := max(1, c.config.SamplesPerPixel)
	for sample := 0; sample < samples; sample++ {
		ray := c.GetRay(i, j, sampler)
		pixelColor = pixelColor.Add(c.rayColor(ray, c.config.MaxDepth, world, sampler, rays))
	}
	return pixelColor.Multiply(c.pixelSamplesScale)
}

// renderScanline fills row j of the framebuffer and returns the number of rays cast
func (c *Camera) renderScanline(j int, world geometry.Hittable, fb *Framebuffer, sampler core.Sampler) int64 {
	var rays int64
	for i := 0; i < fb.Width; i++ {
		fb.Set(i, j, c.samplePixel(i, j, world, sampler, &rays))
	}
	return rays
}

// scanlineSampler returns the independent random stream for row j
func (c *Camera) scanlineSampler(j int) core.Sampler {
	return core.NewSeededSampler(c.config.Seed + int64(j))
}
