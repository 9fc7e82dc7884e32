package scene

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

const ringDescription = "A glass and a mirror sphere inside a ring of 24 colored diffuse spheres"

// ringStepDegrees is the angular spacing of the ring spheres
const ringStepDegrees = 15

// NewRingScene creates a ring of small diffuse spheres whose size and color vary with their angle
func NewRingScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		AspectRatio:     2.0,
		ImageWidth:      600,
		SamplesPerPixel: 10,
		MaxDepth:        50,
		VFov:            20,
		LookFrom:        core.NewVec3(10, 2.5, 5),
		LookAt:          core.NewVec3(-4, 0, -2),
		ViewUp:          core.NewVec3(0, 1, 0),
		DefocusAngle:    0.2,
		FocusDistance:   0.0, // Auto-calculate focus distance
		Seed:            42,
	}

	s := newScene("ring", ringDescription, defaultCameraConfig, cameraOverrides)

	s.World.Add(NewGroundSphere(0, 0, 0, 1000, material.NewLambertian(core.NewColor(0.88, 0.96, 0.7))))
	s.World.Add(geometry.NewSphere(core.NewVec3(1.5, 1, 0), 1, material.NewDielectric(1.5)))
	s.World.Add(geometry.NewSphere(core.NewVec3(-1.5, 1, 0), 1, material.NewMetal(core.NewColor(0.8, 0.9, 0.8), 0)))

	const ringRadius = 3.0
	for deg := 0; deg < 360; deg += ringStepDegrees {
		theta := core.DegreesToRadians(float64(deg))
		x, z := math.Sin(theta), math.Cos(theta)
		radius := 0.33 + x*z/9

		albedo := core.NewColor(math.Max(0, x), 0.5+x*z/2, math.Max(0, z))
		s.World.Add(geometry.NewSphere(core.NewVec3(ringRadius*x, radius, ringRadius*z), radius, material.NewLambertian(albedo)))
	}

	return s
}
