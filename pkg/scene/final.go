package scene

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

const finalDescription = "Random field of small spheres around three large ones, with depth of field"

// finalSceneSeed fixes the sphere layout independently of the render seed
const finalSceneSeed = 1

// NewFinalScene creates the random sphere field: a 22x22 grid of jittered small
// spheres plus one large glass, diffuse and mirror sphere
func NewFinalScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		AspectRatio:     16.0 / 9.0,
		ImageWidth:      400,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		VFov:            20,
		LookFrom:        core.NewVec3(13, 2, 3),
		LookAt:          core.NewVec3(0, 0, 0),
		ViewUp:          core.NewVec3(0, 1, 0),
		DefocusAngle:    0.6,
		FocusDistance:   10.0,
		Seed:            42,
	}

	s := newScene("final", finalDescription, defaultCameraConfig, cameraOverrides)

	groundMaterial := material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))
	s.World.Add(NewGroundSphere(0, 0, 0, 1000, groundMaterial))

	sampler := core.NewSeededSampler(finalSceneSeed)
	clearing := core.NewVec3(4, 0.2, 0)

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(float64(a)+0.9*sampler.Get1D(), 0.2, float64(b)+0.9*sampler.Get1D())

			// Keep the area in front of the large spheres clear
			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			var sphereMaterial material.Material
			switch {
			case chooseMat < 0.8:
				albedo := core.RandomColor(sampler).MultiplyVec(core.RandomColor(sampler))
				sphereMaterial = material.NewLambertian(albedo)
			case chooseMat < 0.95:
				albedo := core.RandomVec3(sampler, 0.5, 1)
				fuzz := core.RandomRange(sampler, 0, 0.5)
				sphereMaterial = material.NewMetal(albedo, fuzz)
			default:
				sphereMaterial = material.NewDielectric(1.5)
			}
			s.World.Add(geometry.NewSphere(center, 0.2, sphereMaterial))
		}
	}

	s.World.Add(geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)))
	s.World.Add(geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewColor(0.4, 0.2, 0.1))))
	s.World.Add(geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewColor(0.7, 0.6, 0.5), 0.0)))

	return s
}
