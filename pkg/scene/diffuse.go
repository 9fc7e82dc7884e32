package scene

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

const diffuseDescription = "A single grey diffuse sphere resting on a diffuse ground"

// NewDiffuseScene creates the minimal scene rendered with the stock camera defaults
func NewDiffuseScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	s := newScene("diffuse", diffuseDescription, renderer.DefaultCameraConfig(), cameraOverrides)

	grey := material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))
	s.World.Add(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, grey))
	s.World.Add(NewGroundSphere(0, -0.5, -1, 100, grey))

	return s
}
