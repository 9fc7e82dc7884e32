package scene

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

const (
	materialsDescription = "Diffuse, hollow glass and fuzzy metal spheres side by side on a diffuse ground"
	defocusDescription   = "The materials scene seen from above with a shallow depth of field"
)

// addMaterialSpheres adds the three-sphere material showcase.
// The glass sphere contains a negative-radius sphere, which turns it into a thin hollow shell.
func addMaterialSpheres(world *geometry.HittableList) {
	materialGround := material.NewLambertian(core.NewColor(0.8, 0.8, 0.0))
	materialCenter := material.NewLambertian(core.NewColor(0.1, 0.2, 0.5))
	materialLeft := material.NewDielectric(1.5)
	materialRight := material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 1.0)

	world.Add(NewGroundSphere(0.0, -0.5, -1.0, 100.0, materialGround))
	world.Add(geometry.NewSphere(core.NewVec3(0.0, 0.0, -1.2), 0.5, materialCenter))
	world.Add(geometry.NewSphere(core.NewVec3(-1.0, 0.0, -1.0), 0.5, materialLeft))
	world.Add(geometry.NewSphere(core.NewVec3(-1.0, 0.0, -1.0), -0.4, materialLeft))
	world.Add(geometry.NewSphere(core.NewVec3(1.0, 0.0, -1.0), 0.5, materialRight))
}

// NewMaterialsScene creates the material showcase seen head-on through a pinhole camera
func NewMaterialsScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		AspectRatio:     16.0 / 9.0,
		ImageWidth:      400,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		VFov:            90,
		LookFrom:        core.NewVec3(0, 0, 0),
		LookAt:          core.NewVec3(0, 0, -1),
		ViewUp:          core.NewVec3(0, 1, 0),
		FocusDistance:   1.0,
		Seed:            42,
	}

	s := newScene("materials", materialsDescription, defaultCameraConfig, cameraOverrides)
	addMaterialSpheres(s.World)
	return s
}

// NewDefocusScene creates the material showcase from a distant viewpoint focused on the center sphere
func NewDefocusScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		AspectRatio:     16.0 / 9.0,
		ImageWidth:      400,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		VFov:            20,
		LookFrom:        core.NewVec3(-2, 2, 1),
		LookAt:          core.NewVec3(0, 0, -1),
		ViewUp:          core.NewVec3(0, 1, 0),
		DefocusAngle:    10.0,
		FocusDistance:   3.4,
		Seed:            42,
	}

	s := newScene("defocus", defocusDescription, defaultCameraConfig, cameraOverrides)
	addMaterialSpheres(s.World)
	return s
}
