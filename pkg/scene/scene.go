package scene

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name        string
	Description string
	World       *geometry.HittableList // Objects in the scene
	Camera      renderer.CameraConfig  // Camera and sampling settings tuned for this scene
}

// NewCamera creates a camera for the scene with any overrides applied on top of its defaults
func (s *Scene) NewCamera(overrides ...renderer.CameraConfig) *renderer.Camera {
	config := s.Camera
	for _, override := range overrides {
		config = renderer.MergeCameraConfig(config, override)
	}
	return renderer.NewCamera(config)
}

// newScene builds a scene whose camera starts from defaults and takes the first override, if any
func newScene(name, description string, defaults renderer.CameraConfig, cameraOverrides []renderer.CameraConfig) *Scene {
	cameraConfig := defaults
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(defaults, cameraOverrides[0])
	}

	return &Scene{
		Name:        name,
		Description: description,
		World:       geometry.NewHittableList(),
		Camera:      cameraConfig,
	}
}

// NewGroundSphere creates the huge sphere used as a floor, with its top at y = top
func NewGroundSphere(x, top, z, radius float64, mat material.Material) *geometry.Sphere {
	return geometry.NewSphere(core.NewVec3(x, top-radius, z), radius, mat)
}
